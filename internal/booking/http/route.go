package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.POST("/bookroom", h.BookRoom)
	group.POST("/cancelbooking", h.CancelBooking)
	group.POST("/getbookingsbyuserid", h.GetBookingsByUserID)

	group.GET("/getallbookings", authMiddleware, adminMiddleware, h.GetAllBookings)
}
