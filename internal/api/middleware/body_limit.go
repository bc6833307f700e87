package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marvinpacsands/Project-List-Designers/pkg/response"
)

// BodyLimit caps request bodies at maxBytes. Requests that declare a larger
// Content-Length are rejected before the handler runs; bodies without a
// declared length are cut off by http.MaxBytesReader and fail to decode.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
