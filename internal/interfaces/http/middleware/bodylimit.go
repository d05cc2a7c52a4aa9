package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civilregistry/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. Signed
// documents arrive base64-encoded in JSON bodies, so the limit must leave
// headroom above the raw PDF size.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size"))
			return
		}

		// Wrap the body with a limited reader for streaming requests
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
