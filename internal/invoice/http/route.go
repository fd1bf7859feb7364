package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/invoice")

	group.POST("/generateinvoice", h.GenerateInvoice)
	group.POST("/getinvoicesbyuserid", h.GetInvoicesByUserID)
}
