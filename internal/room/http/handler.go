package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/dates"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/response"
	"github.com/shayrooms/hotel-booking-backend/internal/room"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

// GetAll lists rooms. Optional fromdate/todate query parameters (DD-MM-YYYY)
// restrict the result to rooms free for that window.
func (h *Handler) GetAll(c *gin.Context) {
	var from, to time.Time

	fromStr := c.Query("fromdate")
	toStr := c.Query("todate")
	if fromStr != "" && toStr != "" {
		var err error
		from, err = dates.Parse(fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		to, err = dates.Parse(toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if !from.Before(to) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "fromdate must be before todate"})
			return
		}
	}

	rooms, err := h.service.List(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}

	response.OK(c, gin.H{"rooms": items})
}

// GetByID returns a single room; the id travels in the body per the legacy API.
func (h *Handler) GetByID(c *gin.Context) {
	var req GetRoomByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "roomid is required"})
		return
	}

	rm, err := h.service.GetByID(c.Request.Context(), req.RoomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"room": NewRoomResponse(rm)})
}

// UploadImage stores a room photo. Admin only.
func (h *Handler) UploadImage(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	img, err := h.service.AddImage(c.Request.Context(), roomID, header)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewImageResponse(img))
}
