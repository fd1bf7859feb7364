package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/apperror"
)

// ErrorResponse is the JSON envelope used by legacy client endpoints.
// The public site expects {"success": false, "message": ...} on failures.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error sends a JSON error response.
// AppErrors determine their own status code; anything else becomes a 500
// with the internal detail logged, never echoed to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Success: false, Message: appErr.Message})
		return
	}

	log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Message: "internal server error"})
}
