package booking

import (
	"net/http"
	"time"

	"github.com/shayrooms/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrMissingFields = apperror.New(http.StatusBadRequest, "all booking fields are required")
	ErrDateOrder     = apperror.New(http.StatusBadRequest, "check-in date must be before check-out date")
	ErrCheckInPast   = apperror.New(http.StatusBadRequest, "check-in date cannot be in the past")
	ErrRoomNotFound  = apperror.New(http.StatusNotFound, "room not found")
	ErrNotFound      = apperror.New(http.StatusNotFound, "booking not found or unauthorized")
	ErrAlreadyBegun  = apperror.New(http.StatusBadRequest, "cannot cancel a booking that has already started")
)

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
)

// Booking is a confirmed stay. Created only through Service.Create; the only
// permitted mutation afterwards is flipping Status to cancelled. Rows are
// never hard-deleted once a create has been acknowledged.
type Booking struct {
	ID            string
	RoomID        string
	RoomName      string
	RentPerDay    float64
	UserID        string
	UserName      string
	UserEmail     string
	FromDate      time.Time
	ToDate        time.Time
	TotalDays     int
	TotalAmount   float64
	TransactionID string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
