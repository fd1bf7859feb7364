package invoice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"

	"github.com/shopspring/decimal"

	"github.com/shayrooms/hotel-booking-backend/internal/booking"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/dates"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/mail"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/storage"
)

const createAttempts = 3

type Service interface {
	// Generate produces the invoice for a booking owned by userID. Calling it
	// again for the same booking returns the existing invoice unchanged.
	Generate(ctx context.Context, bookingID, userID string) (*Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]*Invoice, error)
}

type service struct {
	repo     Repository
	bookings booking.Service
	store    storage.Storage
	mailer   mail.Mailer
	taxRate  decimal.Decimal
	currency string
}

func NewService(
	repo Repository,
	bookings booking.Service,
	store storage.Storage,
	mailer mail.Mailer,
	taxRate float64,
	currency string,
) Service {
	return &service{
		repo:     repo,
		bookings: bookings,
		store:    store,
		mailer:   mailer,
		taxRate:  decimal.NewFromFloat(taxRate),
		currency: currency,
	}
}

func (s *service) Generate(ctx context.Context, bookingID, userID string) (*Invoice, error) {
	// Ownership gates everything, including the idempotent path: an invoice
	// must never be readable through someone else's booking id.
	bkg, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bkg.UserID != userID {
		return nil, ErrBookingNotFound
	}

	if existing, err := s.repo.GetByBookingID(ctx, bookingID); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	amount := decimal.NewFromFloat(bkg.TotalAmount)
	taxAmount, totalWithTax := ComputeTax(amount, s.taxRate)

	var inv *Invoice
	for attempt := 0; attempt < createAttempts; attempt++ {
		number := NewInvoiceNumber()
		candidate := &Invoice{
			InvoiceNumber: number,
			UserID:        bkg.UserID,
			BookingID:     bkg.ID,
			Amount:        amount,
			TaxRate:       s.taxRate,
			TaxAmount:     taxAmount,
			TotalWithTax:  totalWithTax,
			PDFPath:       path.Join("invoices", number+".pdf"),
		}

		pdfBytes, err := RenderPDF(candidate, bkg, s.currency)
		if err != nil {
			return nil, err
		}
		if err := s.store.Save(ctx, candidate.PDFPath, bytes.NewReader(pdfBytes)); err != nil {
			return nil, fmt.Errorf("store invoice pdf failed: %w", err)
		}

		err = s.repo.Create(ctx, candidate)
		if err == nil {
			inv = candidate
			break
		}

		if derr := s.store.Delete(ctx, candidate.PDFPath); derr != nil {
			log.Printf("invoice: remove orphan pdf %s: %v", candidate.PDFPath, derr)
		}
		if errors.Is(err, ErrDuplicateBooking) {
			// Lost a race with a concurrent generate; the winner's record stands.
			return s.repo.GetByBookingID(ctx, bookingID)
		}
		if errors.Is(err, ErrNumberTaken) {
			continue
		}
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("could not allocate a unique invoice number after %d attempts", createAttempts)
	}

	if err := s.emailInvoice(ctx, inv, bkg); err != nil {
		log.Printf("invoice: email %s to %s: %v", inv.InvoiceNumber, bkg.UserEmail, err)
	}
	return inv, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]*Invoice, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) emailInvoice(ctx context.Context, inv *Invoice, bkg *booking.Booking) error {
	pdf, err := s.store.Get(ctx, inv.PDFPath)
	if err != nil {
		return err
	}
	defer pdf.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(pdf); err != nil {
		return err
	}

	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your invoice <b>%s</b> for the stay at <b>%s</b> (%s to %s) is attached.</p><p>Total paid: %s %s</p>",
		bkg.UserName, inv.InvoiceNumber, bkg.RoomName,
		dates.Format(bkg.FromDate), dates.Format(bkg.ToDate),
		s.currency, inv.TotalWithTax.StringFixed(2),
	)
	return s.mailer.Send(ctx, mail.Message{
		To:      bkg.UserEmail,
		Subject: fmt.Sprintf("Invoice %s for your booking", inv.InvoiceNumber),
		HTML:    html,
		Attachments: []mail.Attachment{{
			Filename:    inv.InvoiceNumber + ".pdf",
			ContentType: "application/pdf",
			Content:     buf.Bytes(),
		}},
	})
}
