package http

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shayrooms/hotel-booking-backend/internal/payment"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

// CreateOrder creates a gateway order. The body is {"amount": n, ...}; every
// key besides amount is forwarded as order notes, so the client can attach
// arbitrary metadata (room id, user id) without a schema change here.
func (h *Handler) CreateOrder(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Amounts travel in the currency's minor unit, so a fractional value is a
	// client bug, not something to truncate.
	amountRaw, ok := body["amount"].(float64)
	if !ok || amountRaw != math.Trunc(amountRaw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	delete(body, "amount")

	order, err := h.service.CreateOrder(c.Request.Context(), int64(amountRaw), body)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "order id, payment id and signature are required"})
		return
	}

	if err := h.service.VerifyPayment(req.OrderID, req.PaymentID, req.Signature); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "payment verified successfully")
}

func (h *Handler) CreatePaymentLink(c *gin.Context) {
	var req CreatePaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	link, err := h.service.CreatePaymentLink(c.Request.Context(), req.Amount, req.Description, req.Customer, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *Handler) FetchPaymentLinkStatus(c *gin.Context) {
	status, err := h.service.FetchPaymentLinkStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
