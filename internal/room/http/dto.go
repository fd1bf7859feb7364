package http

import (
	"github.com/shayrooms/hotel-booking-backend/internal/room"
)

// GetRoomByIDRequest carries the room id in the body, matching the legacy client.
type GetRoomByIDRequest struct {
	RoomID string `json:"roomid" binding:"required,uuid"`
}

type RoomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	RentPerDay  float64  `json:"rentperday"`
	MaxCount    int      `json:"maxcount"`
	PhoneNumber string   `json:"phonenumber"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"imageurls"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	imageURLs := r.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		RentPerDay:  r.RentPerDay,
		MaxCount:    r.MaxCount,
		PhoneNumber: r.PhoneNumber,
		Description: r.Description,
		ImageURLs:   imageURLs,
	}
}

type ImageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func NewImageResponse(img *room.Image) ImageResponse {
	return ImageResponse{
		ID:  img.ID,
		URL: img.URL(),
	}
}
