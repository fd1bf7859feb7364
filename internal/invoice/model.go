package invoice

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "invoice not found")
	ErrBookingNotFound = apperror.New(http.StatusNotFound, "booking not found")
)

// Invoice is the tax record for one booking. At most one invoice exists per
// booking; the record is immutable once written.
type Invoice struct {
	ID            string
	InvoiceNumber string
	UserID        string
	BookingID     string
	Amount        decimal.Decimal // pre-tax base (the booking's total amount)
	TaxRate       decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalWithTax  decimal.Decimal
	PDFPath       string
	CreatedAt     time.Time
}

// URL returns the public path the generated PDF is served under.
func (i *Invoice) URL() string {
	return "/" + i.PDFPath
}

// ComputeTax applies the rate to the pre-tax amount, rounding money values to
// two places. Exact decimal arithmetic: 3000 at 0.18 is 540.00, not 539.99….
func ComputeTax(amount, rate decimal.Decimal) (taxAmount, totalWithTax decimal.Decimal) {
	taxAmount = amount.Mul(rate).Round(2)
	totalWithTax = amount.Add(taxAmount).Round(2)
	return taxAmount, totalWithTax
}

// NewInvoiceNumber produces a candidate invoice number. Uniqueness is enforced
// by the database; callers retry with a fresh candidate on collision.
func NewInvoiceNumber() string {
	return fmt.Sprintf("INV-%d-%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
