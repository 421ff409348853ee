package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/shareit/shareit-backend/internal/api"
	"github.com/shareit/shareit-backend/internal/booking"
	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/itemrequest"
	"github.com/shareit/shareit-backend/internal/pkg/metrics"
	"github.com/shareit/shareit-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	DBPool       *pgxpool.Pool
	Log          *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router  *gin.Engine
	Metrics *metrics.HTTP
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, log)

	// Item Request Module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService, log)

	// Item Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userService, requestService, log)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, userService, itemService, log)

	httpMetrics := metrics.New("shareit")

	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Log:                log,
		Metrics:            httpMetrics,
		UserService:        userService,
		ItemService:        itemService,
		BookingService:     bookingService,
		ItemRequestService: requestService,
	})

	return &Container{
		Router:  router,
		Metrics: httpMetrics,
	}
}
