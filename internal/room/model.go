package room

import (
	"net/http"
	"time"

	"github.com/shayrooms/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "room not found")
	ErrInvalidImage  = apperror.New(http.StatusBadRequest, "uploaded file is not a supported image")
	ErrImageNotFound = apperror.New(http.StatusNotFound, "room image not found")
)

// Room is a bookable hotel room.
type Room struct {
	ID          string
	Name        string
	Type        string
	RentPerDay  float64
	MaxCount    int
	PhoneNumber string
	Description string
	ImageURLs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Image is a stored room photo.
type Image struct {
	ID            string
	RoomID        string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	CreatedAt     time.Time
}

// URL returns the public path the router serves the image under.
func (i Image) URL() string {
	return "/roomimages/" + i.StoragePath
}

// Interval is one active reservation window on a room, half-open: the stay
// occupies [FromDate, ToDate), so back-to-back bookings share a changeover day.
type Interval struct {
	BookingID string
	RoomID    string
	FromDate  time.Time
	ToDate    time.Time
}

// Overlaps reports whether the interval shares at least one night with [from, to).
func (i Interval) Overlaps(from, to time.Time) bool {
	return i.FromDate.Before(to) && from.Before(i.ToDate)
}
