package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ValidateAuthInput rejects malformed credential payloads before the
// handler runs. ShouldBindBodyWith buffers the body so the handler can
// bind it again.
func ValidateAuthInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username" binding:"required,min=4,max=20"`
			Password string `json:"password" binding:"required,password"`
		}

		if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			c.Abort()
			return
		}

		c.Next()
	}
}
