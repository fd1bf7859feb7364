package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shayrooms/hotel-booking-backend/internal/booking"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/request"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// BookRoom creates a booking. Field presence is validated by the service so
// the "all booking fields are required" contract covers every field uniformly.
func (h *Handler) BookRoom(c *gin.Context) {
	var req BookRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		RoomName:      req.RoomName,
		RoomID:        req.RoomID,
		UserID:        req.UserID,
		FromDate:      req.FromDate,
		ToDate:        req.ToDate,
		TotalAmount:   req.TotalAmount,
		TotalDays:     req.TotalDays,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "room booked successfully",
		"booking": NewBookingResponse(b),
	})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bookingid and userid are required"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), req.BookingID, req.UserID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "booking cancelled successfully")
}

func (h *Handler) GetBookingsByUserID(c *gin.Context) {
	var req request.ByUserIDBody
	if err := c.ShouldBindJSON(&req); err != nil || req.Resolve() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "userid is required"})
		return
	}

	bookings, err := h.service.ListByUser(c.Request.Context(), req.Resolve())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	response.OK(c, gin.H{"bookings": items})
}

// GetAllBookings lists every booking for the admin panel.
func (h *Handler) GetAllBookings(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	response.OK(c, gin.H{"bookings": items})
}
