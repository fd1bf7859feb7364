package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends a {"success": true, ...} envelope merged with extra fields.
// The browser client keys off the success flag rather than the status code.
func OK(c *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Message sends a success envelope with only a human-readable message.
func Message(c *gin.Context, msg string) {
	OK(c, gin.H{"message": msg})
}
