package invoice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shayrooms/hotel-booking-backend/internal/booking"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/mail"
)

// ==== Fakes ====

type fakeRepo struct {
	byBooking map[string]*Invoice
	byNumber  map[string]bool
	seq       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byBooking: map[string]*Invoice{}, byNumber: map[string]bool{}}
}

func (r *fakeRepo) Create(_ context.Context, inv *Invoice) error {
	if _, ok := r.byBooking[inv.BookingID]; ok {
		return ErrDuplicateBooking
	}
	if r.byNumber[inv.InvoiceNumber] {
		return ErrNumberTaken
	}
	r.seq++
	inv.ID = fmt.Sprintf("inv-%d", r.seq)
	inv.CreatedAt = time.Now().UTC()
	cp := *inv
	r.byBooking[inv.BookingID] = &cp
	r.byNumber[inv.InvoiceNumber] = true
	return nil
}

func (r *fakeRepo) GetByBookingID(_ context.Context, bookingID string) (*Invoice, error) {
	inv, ok := r.byBooking[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID string) ([]*Invoice, error) {
	var out []*Invoice
	for _, inv := range r.byBooking {
		if inv.UserID == userID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeBookings struct {
	bookings map[string]*booking.Booking
}

func (s *fakeBookings) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return b, nil
}

func (s *fakeBookings) Create(context.Context, booking.CreateRequest) (*booking.Booking, error) {
	return nil, nil
}
func (s *fakeBookings) Cancel(context.Context, string, string) error { return nil }
func (s *fakeBookings) ListByUser(context.Context, string) ([]*booking.Booking, error) {
	return nil, nil
}
func (s *fakeBookings) ListAll(context.Context) ([]*booking.Booking, error) { return nil, nil }

type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{files: map[string][]byte{}} }

func (s *memStorage) Save(_ context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *memStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// ==== Harness ====

func testBooking() *booking.Booking {
	from, _ := time.Parse("02-01-2006", "05-01-2099")
	to, _ := time.Parse("02-01-2006", "08-01-2099")
	return &booking.Booking{
		ID:          "b-1",
		RoomID:      "room-1",
		RoomName:    "Deluxe Suite",
		RentPerDay:  1000,
		UserID:      "user-1",
		UserName:    "Asha",
		UserEmail:   "asha@example.com",
		FromDate:    from,
		ToDate:      to,
		TotalDays:   3,
		TotalAmount: 3000,
		Status:      booking.StatusBooked,
	}
}

func newInvoiceService(repo Repository, store *memStorage, mailer *fakeMailer) Service {
	bookings := &fakeBookings{bookings: map[string]*booking.Booking{"b-1": testBooking()}}
	return NewService(repo, bookings, store, mailer, 0.18, "INR")
}

// ==== Tests ====

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("computes tax and stores the pdf", func(t *testing.T) {
		repo := newFakeRepo()
		store := newMemStorage()
		mailer := &fakeMailer{}
		svc := newInvoiceService(repo, store, mailer)

		inv, err := svc.Generate(ctx, "b-1", "user-1")
		require.NoError(t, err)

		// 3 nights at 1000 with 18% GST.
		assert.Equal(t, "3000.00", inv.Amount.StringFixed(2))
		assert.Equal(t, "540.00", inv.TaxAmount.StringFixed(2))
		assert.Equal(t, "3540.00", inv.TotalWithTax.StringFixed(2))

		assert.Regexp(t, regexp.MustCompile(`^INV-\d+-\d{3}$`), inv.InvoiceNumber)
		assert.Equal(t, "invoices/"+inv.InvoiceNumber+".pdf", inv.PDFPath)
		assert.Equal(t, "/"+inv.PDFPath, inv.URL())

		pdf, ok := store.files[inv.PDFPath]
		require.True(t, ok, "pdf must be written to storage")
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "stored file must be a PDF")
	})

	t.Run("emails the pdf as attachment", func(t *testing.T) {
		repo := newFakeRepo()
		store := newMemStorage()
		mailer := &fakeMailer{}
		svc := newInvoiceService(repo, store, mailer)

		inv, err := svc.Generate(ctx, "b-1", "user-1")
		require.NoError(t, err)

		require.Len(t, mailer.sent, 1)
		msg := mailer.sent[0]
		assert.Equal(t, "asha@example.com", msg.To)
		assert.Contains(t, msg.Subject, inv.InvoiceNumber)
		require.Len(t, msg.Attachments, 1)
		assert.Equal(t, inv.InvoiceNumber+".pdf", msg.Attachments[0].Filename)
		assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
		assert.NotEmpty(t, msg.Attachments[0].Content)
	})

	t.Run("second generate returns the same invoice", func(t *testing.T) {
		repo := newFakeRepo()
		store := newMemStorage()
		mailer := &fakeMailer{}
		svc := newInvoiceService(repo, store, mailer)

		first, err := svc.Generate(ctx, "b-1", "user-1")
		require.NoError(t, err)

		second, err := svc.Generate(ctx, "b-1", "user-1")
		require.NoError(t, err)

		assert.Equal(t, first.InvoiceNumber, second.InvoiceNumber)
		assert.Len(t, store.files, 1, "no second pdf")
		assert.Len(t, mailer.sent, 1, "no second email")
	})

	t.Run("email failure does not fail generation", func(t *testing.T) {
		repo := newFakeRepo()
		store := newMemStorage()
		mailer := &fakeMailer{err: errors.New("smtp: connection refused")}
		svc := newInvoiceService(repo, store, mailer)

		inv, err := svc.Generate(ctx, "b-1", "user-1")
		require.NoError(t, err)
		assert.NotNil(t, inv)

		// The record and the pdf exist even though the email was lost.
		stored, err := repo.GetByBookingID(ctx, "b-1")
		require.NoError(t, err)
		assert.Equal(t, inv.InvoiceNumber, stored.InvoiceNumber)
	})

	t.Run("someone else's booking looks missing", func(t *testing.T) {
		svc := newInvoiceService(newFakeRepo(), newMemStorage(), &fakeMailer{})

		_, err := svc.Generate(ctx, "b-1", "user-2")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("existing invoice is not served to a non-owner", func(t *testing.T) {
		repo := newFakeRepo()
		store := newMemStorage()
		svc := newInvoiceService(repo, store, &fakeMailer{})

		_, err := svc.Generate(ctx, "b-1", "user-1")
		require.NoError(t, err)

		// The idempotent lookup must sit behind the same ownership gate as
		// first-time generation.
		inv, err := svc.Generate(ctx, "b-1", "user-2")
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.Nil(t, inv)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := newInvoiceService(newFakeRepo(), newMemStorage(), &fakeMailer{})

		_, err := svc.Generate(ctx, "b-404", "user-1")
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})
}

func TestComputeTax(t *testing.T) {
	rate := decimal.NewFromFloat(0.18)

	cases := []struct {
		amount    string
		wantTax   string
		wantTotal string
	}{
		{"3000", "540.00", "3540.00"},
		{"999.99", "180.00", "1179.99"},
		{"0.01", "0.00", "0.01"},
		{"12345.67", "2222.22", "14567.89"},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		require.NoError(t, err)

		tax, total := ComputeTax(amount, rate)
		assert.Equal(t, tc.wantTax, tax.StringFixed(2), "tax on %s", tc.amount)
		assert.Equal(t, tc.wantTotal, total.StringFixed(2), "total on %s", tc.amount)
	}
}

func TestNewInvoiceNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d{13,}-\d{3}$`)
	for i := 0; i < 10; i++ {
		assert.Regexp(t, pattern, NewInvoiceNumber())
	}
}
