package http

import (
	"github.com/shayrooms/hotel-booking-backend/internal/invoice"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/dates"
)

type GenerateInvoiceRequest struct {
	BookingID string `json:"bookingid" binding:"required,uuid"`
	UserID    string `json:"userid" binding:"required,uuid"`
}

type InvoiceResponse struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoicenumber"`
	BookingID     string `json:"bookingid"`
	UserID        string `json:"userid"`
	Amount        string `json:"amount"`
	TaxRate       string `json:"taxrate"`
	TaxAmount     string `json:"taxamount"`
	TotalWithTax  string `json:"totalwithtax"`
	PDFURL        string `json:"pdfurl"`
	CreatedAt     string `json:"createdat"`
}

func NewInvoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		BookingID:     inv.BookingID,
		UserID:        inv.UserID,
		Amount:        inv.Amount.StringFixed(2),
		TaxRate:       inv.TaxRate.String(),
		TaxAmount:     inv.TaxAmount.StringFixed(2),
		TotalWithTax:  inv.TotalWithTax.StringFixed(2),
		PDFURL:        inv.URL(),
		CreatedAt:     dates.Format(inv.CreatedAt),
	}
}
