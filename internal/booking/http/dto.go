package http

import (
	"github.com/shayrooms/hotel-booking-backend/internal/booking"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/dates"
)

// BookRoomRequest mirrors the legacy wire format, including the historical
// "totalammount" spelling the browser client still sends.
type BookRoomRequest struct {
	RoomName      string  `json:"roomname"`
	RoomID        string  `json:"roomid"`
	UserID        string  `json:"userid"`
	FromDate      string  `json:"fromdate"`
	ToDate        string  `json:"todate"`
	TotalAmount   float64 `json:"totalammount"`
	TotalDays     int     `json:"totaldays"`
	TransactionID string  `json:"transactionid"`
}

type CancelBookingRequest struct {
	BookingID string `json:"bookingid" binding:"required,uuid"`
	UserID    string `json:"userid" binding:"required,uuid"`
}

type BookingResponse struct {
	ID            string  `json:"id"`
	RoomID        string  `json:"roomid"`
	RoomName      string  `json:"roomname"`
	UserID        string  `json:"userid"`
	FromDate      string  `json:"fromdate"`
	ToDate        string  `json:"todate"`
	TotalDays     int     `json:"totaldays"`
	TotalAmount   float64 `json:"totalammount"`
	TransactionID string  `json:"transactionid"`
	Status        string  `json:"status"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		RoomID:        b.RoomID,
		RoomName:      b.RoomName,
		UserID:        b.UserID,
		FromDate:      dates.Format(b.FromDate),
		ToDate:        dates.Format(b.ToDate),
		TotalDays:     b.TotalDays,
		TotalAmount:   b.TotalAmount,
		TransactionID: b.TransactionID,
		Status:        string(b.Status),
	}
}
