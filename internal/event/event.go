// Package event publishes booking lifecycle events to RabbitMQ so downstream
// consumers (audit log, analytics) can react without touching the primary
// database. Publishing is best-effort end to end.
package event

// BookingConfirmedEvent is published when a room booking is successfully committed.
type BookingConfirmedEvent struct {
	BookingID   string  `json:"booking_id"`
	RoomID      string  `json:"room_id"`
	RoomName    string  `json:"room_name"`
	UserID      string  `json:"user_id"`
	UserEmail   string  `json:"user_email"`
	FromDate    string  `json:"from_date"`
	ToDate      string  `json:"to_date"`
	TotalDays   int     `json:"total_days"`
	TotalAmount float64 `json:"total_amount"`
	ConfirmedAt string  `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a booking is cancelled by its owner.
type BookingCancelledEvent struct {
	BookingID   string `json:"booking_id"`
	RoomID      string `json:"room_id"`
	UserID      string `json:"user_id"`
	CancelledAt string `json:"cancelled_at"`
}
