package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/shayrooms/hotel-booking-backend/internal/booking"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/dates"
)

var hundred = decimal.NewFromInt(100)

// RenderPDF lays out the invoice document for one booking and returns the
// finished PDF bytes.
func RenderPDF(inv *Invoice, bkg *booking.Booking, currency string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(inv.InvoiceNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Booking Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Invoice No: %s", inv.InvoiceNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", dates.Format(inv.CreatedAt)), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Billed To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, bkg.UserName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, bkg.UserEmail, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Stay Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	detail := func(label, value string) {
		pdf.CellFormat(55, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}
	detail("Room", bkg.RoomName)
	detail("Check-in", dates.Format(bkg.FromDate))
	detail("Check-out", dates.Format(bkg.ToDate))
	detail("Nights", fmt.Sprintf("%d", bkg.TotalDays))
	detail("Rate per day", fmt.Sprintf("%s %.2f", currency, bkg.RentPerDay))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Charges", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	amountRow := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Helvetica", "B", 11)
		}
		pdf.CellFormat(120, 7, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, value, "1", 1, "R", false, 0, "")
		if bold {
			pdf.SetFont("Helvetica", "", 11)
		}
	}
	amountRow("Room charges", fmt.Sprintf("%s %s", currency, inv.Amount.StringFixed(2)), false)
	amountRow(fmt.Sprintf("GST (%s%%)", inv.TaxRate.Mul(hundred).String()), fmt.Sprintf("%s %s", currency, inv.TaxAmount.StringFixed(2)), false)
	amountRow("Total", fmt.Sprintf("%s %s", currency, inv.TotalWithTax.StringFixed(2)), true)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Thank you for booking with us.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf failed: %w", err)
	}
	return buf.Bytes(), nil
}
