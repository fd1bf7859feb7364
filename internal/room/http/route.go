package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	group.GET("/getallrooms", h.GetAll)
	group.POST("/getroombyid", h.GetByID)

	group.POST("/:id/images", authMiddleware, adminMiddleware, h.UploadImage)
}
