package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, paymentLimiter gin.HandlerFunc) {
	group := g.Group("/payment")
	group.Use(paymentLimiter)

	group.POST("/create-order", h.CreateOrder)
	group.POST("/verify-payment", h.VerifyPayment)
	group.POST("/create-payment-link", h.CreatePaymentLink)
	group.GET("/payment-link/:id", h.FetchPaymentLinkStatus)
}
