package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shayrooms/hotel-booking-backend/internal/invoice"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/request"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service invoice.Service
}

func NewHandler(service invoice.Service) *Handler {
	return &Handler{service: service}
}

// GenerateInvoice creates (or returns the already generated) invoice for a
// booking and responds with the public URL of its PDF.
func (h *Handler) GenerateInvoice(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bookingid and userid are required"})
		return
	}

	inv, err := h.service.Generate(c.Request.Context(), req.BookingID, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "invoice generated successfully",
		"invoice": NewInvoiceResponse(inv),
		"pdfUrl":  inv.URL(),
	})
}

func (h *Handler) GetInvoicesByUserID(c *gin.Context) {
	var req request.ByUserIDBody
	if err := c.ShouldBindJSON(&req); err != nil || req.Resolve() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "userid is required"})
		return
	}

	invoices, err := h.service.ListByUser(c.Request.Context(), req.Resolve())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = NewInvoiceResponse(inv)
	}

	response.OK(c, gin.H{"invoices": items})
}
