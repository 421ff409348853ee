package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shareit/shareit-backend/internal/auth"
	"github.com/shareit/shareit-backend/internal/pkg/request"
)

func TestRequireUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", auth.RequireUserID(), func(c *gin.Context) {
		c.String(http.StatusOK, strconv.FormatInt(auth.GetUserID(c), 10))
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "valid", header: "42", wantCode: http.StatusOK, wantBody: "42"},
		{name: "padded", header: " 7 ", wantCode: http.StatusOK, wantBody: "7"},
		{name: "missing", header: "", wantCode: http.StatusBadRequest},
		{name: "zero", header: "0", wantCode: http.StatusBadRequest},
		{name: "negative", header: "-3", wantCode: http.StatusBadRequest},
		{name: "text", header: "abc", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(request.UserIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), request.UserIDHeader)
			}
		})
	}
}

func TestGetUserIDWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, int64(0), auth.GetUserID(c))
}
