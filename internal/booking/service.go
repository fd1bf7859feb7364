package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shayrooms/hotel-booking-backend/internal/event"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/apperror"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/dates"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/mail"
	"github.com/shayrooms/hotel-booking-backend/internal/room"
)

// CreateRequest carries the raw booking submission. Dates stay as wire strings
// so the service owns every validation step and its error message.
type CreateRequest struct {
	RoomName      string
	RoomID        string
	UserID        string
	FromDate      string
	ToDate        string
	TotalAmount   float64
	TotalDays     int
	TransactionID string
}

// InvoiceIssuer issues the invoice for a committed booking. Wired in the
// container to the invoice service; kept as a function type so this package
// does not depend on the invoice package.
type InvoiceIssuer func(ctx context.Context, bookingID, userID string) error

// Dispatcher queues best-effort work to run after the booking has committed.
type Dispatcher interface {
	Submit(name string, fn func(ctx context.Context) error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Cancel(ctx context.Context, bookingID, userID string) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	ListAll(ctx context.Context) ([]*Booking, error)
}

type service struct {
	repo        Repository
	roomService room.Service
	ledger      room.Ledger
	dispatcher  Dispatcher
	mailer      mail.Mailer
	issue       InvoiceIssuer
	events      event.Publisher
}

func NewService(
	repo Repository,
	roomService room.Service,
	ledger room.Ledger,
	dispatcher Dispatcher,
	mailer mail.Mailer,
	issue InvoiceIssuer,
	events event.Publisher,
) Service {
	return &service{
		repo:        repo,
		roomService: roomService,
		ledger:      ledger,
		dispatcher:  dispatcher,
		mailer:      mailer,
		issue:       issue,
		events:      events,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. All fields present.
	if req.RoomName == "" || req.RoomID == "" || req.UserID == "" ||
		req.FromDate == "" || req.ToDate == "" || req.TotalAmount == 0 || req.TotalDays == 0 {
		return nil, ErrMissingFields
	}

	// 2. Strict DD-MM-YYYY parsing.
	from, err := dates.Parse(req.FromDate)
	if err != nil {
		return nil, apperror.Newf(http.StatusBadRequest,
			"invalid from date format %q: please use DD-MM-YYYY", req.FromDate)
	}
	to, err := dates.Parse(req.ToDate)
	if err != nil {
		return nil, apperror.Newf(http.StatusBadRequest,
			"invalid to date format %q: please use DD-MM-YYYY", req.ToDate)
	}

	// 3. Check-in strictly before check-out.
	if !from.Before(to) {
		return nil, ErrDateOrder
	}

	// 4. No past check-ins.
	if from.Before(dates.Today()) {
		return nil, ErrCheckInPast
	}

	// 5. Room must exist.
	if _, err := s.roomService.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	// 6. Date range must be free.
	free, conflict, err := s.ledger.IsFree(ctx, req.RoomID, from, to)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, conflictError(conflict.FromDate, conflict.ToDate)
	}

	// 7. Server-side day count must match the client's.
	if got := dates.DayCount(from, to); got != req.TotalDays {
		return nil, apperror.Newf(http.StatusBadRequest,
			"total days mismatch: expected %d days but received %d days", got, req.TotalDays)
	}

	b := &Booking{
		RoomID:        req.RoomID,
		UserID:        req.UserID,
		FromDate:      from,
		ToDate:        to,
		TotalDays:     req.TotalDays,
		TotalAmount:   req.TotalAmount,
		TransactionID: req.TransactionID,
		Status:        StatusBooked,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// The reservation is the conditional write: the ledger's exclusion
	// constraint decides the race that the IsFree pre-check cannot. On
	// conflict the uncommitted booking row is discarded.
	if err := s.ledger.Reserve(ctx, b.RoomID, b.ID, from, to); err != nil {
		if derr := s.repo.Discard(ctx, b.ID); derr != nil {
			log.Printf("failed to discard booking %s after reservation failure: %v", b.ID, derr)
		}
		if errors.Is(err, room.ErrRangeConflict) {
			return nil, conflictError(from, to)
		}
		return nil, err
	}

	// Reload with the joined room and user columns for the response and the
	// side effects below.
	created, err := s.repo.GetByID(ctx, b.ID)
	if err != nil {
		// The booking is committed; fall back to what we have.
		log.Printf("failed to reload booking %s: %v", b.ID, err)
		created = b
	}

	s.queueSideEffects(created)

	return created, nil
}

// queueSideEffects schedules invoice issuance, the confirmation email and the
// confirmed event. All three run off the request path; failures are logged by
// the dispatcher and never affect the committed booking.
func (s *service) queueSideEffects(b *Booking) {
	bookingID, userID := b.ID, b.UserID
	s.dispatcher.Submit("invoice:"+bookingID, func(ctx context.Context) error {
		return s.issue(ctx, bookingID, userID)
	})

	confirmation := *b
	s.dispatcher.Submit("booking-confirmation-mail:"+bookingID, func(ctx context.Context) error {
		return s.sendConfirmationMail(ctx, &confirmation)
	})

	ev := event.BookingConfirmedEvent{
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		RoomName:    b.RoomName,
		UserID:      b.UserID,
		UserEmail:   b.UserEmail,
		FromDate:    dates.Format(b.FromDate),
		ToDate:      dates.Format(b.ToDate),
		TotalDays:   b.TotalDays,
		TotalAmount: b.TotalAmount,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.dispatcher.Submit("booking-confirmed-event:"+bookingID, func(ctx context.Context) error {
		return s.events.PublishBookingConfirmed(ctx, ev)
	})
}

func (s *service) sendConfirmationMail(ctx context.Context, b *Booking) error {
	if b.UserEmail == "" {
		return nil
	}

	fromStr := dates.Format(b.FromDate)
	toStr := dates.Format(b.ToDate)

	html := fmt.Sprintf(`<h2>Your booking is confirmed</h2>
<p>Hi %s,</p>
<p>Your booking details:</p>
<ul>
  <li>Room: <strong>%s</strong></li>
  <li>From: <strong>%s</strong></li>
  <li>To: <strong>%s</strong></li>
  <li>Total days: <strong>%d</strong></li>
  <li>Total amount: <strong>%.2f</strong></li>
  <li>Booking ID: <strong>%s</strong></li>
</ul>
<p>Thank you for booking with us!</p>`,
		b.UserName, b.RoomName, fromStr, toStr, b.TotalDays, b.TotalAmount, b.ID)

	return s.mailer.Send(ctx, mail.Message{
		To:      b.UserEmail,
		Subject: fmt.Sprintf("Booking confirmed: %s (%s - %s)", b.RoomName, fromStr, toStr),
		HTML:    html,
	})
}

func (s *service) Cancel(ctx context.Context, bookingID, userID string) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	// Ownership is part of the lookup contract: a booking belonging to someone
	// else is reported exactly like a missing one.
	if b.UserID != userID {
		return ErrNotFound
	}

	if b.Status == StatusCancelled {
		return nil
	}

	// No retroactive cancellation once the stay has begun.
	if b.FromDate.Before(dates.Today()) {
		return ErrAlreadyBegun
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, StatusCancelled); err != nil {
		return err
	}

	if err := s.ledger.Release(ctx, b.RoomID, b.ID); err != nil {
		// The status flip is the source of truth; a failed release leaves a
		// stale interval that blocks the room until repaired, so it is loud.
		return fmt.Errorf("booking %s cancelled but interval release failed: %w", b.ID, err)
	}

	ev := event.BookingCancelledEvent{
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		UserID:      b.UserID,
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.dispatcher.Submit("booking-cancelled-event:"+b.ID, func(ctx context.Context) error {
		return s.events.PublishBookingCancelled(ctx, ev)
	})

	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]*Booking, error) {
	return s.repo.ListAll(ctx)
}

func conflictError(from, to time.Time) error {
	return apperror.Newf(http.StatusConflict,
		"room is already booked from %s to %s", dates.Format(from), dates.Format(to))
}
