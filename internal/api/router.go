package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shareit/shareit-backend/internal/auth"
	"github.com/shareit/shareit-backend/internal/booking"
	bookingHttp "github.com/shareit/shareit-backend/internal/booking/http"
	"github.com/shareit/shareit-backend/internal/item"
	itemHttp "github.com/shareit/shareit-backend/internal/item/http"
	"github.com/shareit/shareit-backend/internal/itemrequest"
	itemRequestHttp "github.com/shareit/shareit-backend/internal/itemrequest/http"
	"github.com/shareit/shareit-backend/internal/pkg/metrics"
	"github.com/shareit/shareit-backend/internal/pkg/request"
	"github.com/shareit/shareit-backend/internal/pkg/validate"
	"github.com/shareit/shareit-backend/internal/user"
	userHttp "github.com/shareit/shareit-backend/internal/user/http"
)

// Config holds all dependencies required by the router.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Log          *zap.Logger
	Metrics      *metrics.HTTP

	UserService        user.Service
	ItemService        item.Service
	BookingService     booking.Service
	ItemRequestService itemrequest.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (recovery, request id, logging, metrics, CORS) and registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	validate.Register()

	r := gin.New()

	r.Use(gin.Recovery(), RequestID(), RequestLogger(cfg.Log))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // gateway
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", request.UserIDHeader, RequestIDHeader}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	identity := auth.RequireUserID()

	root := &r.RouterGroup
	userHttp.RegisterRoutes(root, userHttp.NewHandler(cfg.UserService))
	itemHttp.RegisterRoutes(root, itemHttp.NewHandler(cfg.ItemService), identity)
	bookingHttp.RegisterRoutes(root, bookingHttp.NewHandler(cfg.BookingService), identity)
	itemRequestHttp.RegisterRoutes(root, itemRequestHttp.NewHandler(cfg.ItemRequestService), identity)

	return r
}
