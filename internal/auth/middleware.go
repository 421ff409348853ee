package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shareit/shareit-backend/internal/pkg/request"
	"github.com/shareit/shareit-backend/internal/pkg/response"
)

// ParseUserID validates a raw X-Sharer-User-Id value.
func ParseUserID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// RequireUserID is a Gin middleware that reads the caller identity from X-Sharer-User-Id.
// The header is trusted; it is set by the gateway in front of the service.
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(request.UserIDHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
				Error: "missing " + request.UserIDHeader + " header",
			})
			return
		}

		id, ok := ParseUserID(header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
				Error: request.UserIDHeader + " must be a positive integer",
			})
			return
		}

		SetUserID(c, id)
		c.Next()
	}
}
