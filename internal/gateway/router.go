package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shareit/shareit-backend/internal/api"
	"github.com/shareit/shareit-backend/internal/auth"
	bookingHttp "github.com/shareit/shareit-backend/internal/booking/http"
	itemHttp "github.com/shareit/shareit-backend/internal/item/http"
	itemRequestHttp "github.com/shareit/shareit-backend/internal/itemrequest/http"
	"github.com/shareit/shareit-backend/internal/pkg/metrics"
	"github.com/shareit/shareit-backend/internal/pkg/response"
	"github.com/shareit/shareit-backend/internal/pkg/validate"
	userHttp "github.com/shareit/shareit-backend/internal/user/http"
)

// RateLimit answers 429 once the shared token bucket is empty.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}

// NewRouter exposes the core routes, validating each request before relaying it.
func NewRouter(cfg Config, h *Handler, log *zap.Logger, m *metrics.HTTP) *gin.Engine {
	validate.Register()

	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.RequestLogger(log))
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g := r.Group("", RateLimit(cfg.RPS, cfg.Burst))
	identity := auth.RequireUserID()

	users := g.Group("/users")
	{
		users.POST("", CheckJSON[userHttp.CreateUserRequest](nil), h.Relay)
		users.GET("", h.Relay)
		users.GET("/:id", CheckID, h.Relay)
		users.PATCH("/:id", CheckID, CheckJSON[userHttp.UpdateUserRequest](nil), h.Relay)
		users.DELETE("/:id", CheckID, h.Relay)
	}

	items := g.Group("/items", identity)
	{
		items.POST("", CheckJSON[itemHttp.CreateItemBody](nil), h.Relay)
		items.GET("", CheckPage, h.Relay)
		items.GET("/search", CheckPage, CheckQuery[itemHttp.SearchQuery](), h.Relay)
		items.GET("/:id", CheckID, h.Relay)
		items.PATCH("/:id", CheckID, CheckJSON[itemHttp.UpdateItemBody](nil), h.Relay)
		items.DELETE("/:id", CheckID, h.Relay)
		items.POST("/:id/comment", CheckID, CheckJSON[itemHttp.CommentBody](nil), h.Relay)
	}

	bookings := g.Group("/bookings", identity)
	{
		bookings.POST("", CheckJSON(h.checkBookingWindow), h.Relay)
		bookings.GET("", CheckBookingList, h.Relay)
		bookings.GET("/owner", CheckBookingList, h.Relay)
		bookings.GET("/:id", CheckID, h.Relay)
		bookings.PATCH("/:id", CheckID, CheckQuery[bookingHttp.ApproveQuery](), h.Relay)
	}

	requests := g.Group("/requests", identity)
	{
		requests.POST("", CheckJSON[itemRequestHttp.CreateRequestBody](nil), h.Relay)
		requests.GET("", h.Relay)
		requests.GET("/all", CheckPage, h.Relay)
		requests.GET("/:id", CheckID, h.Relay)
	}

	return r
}
