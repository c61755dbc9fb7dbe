package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shareit-backend/internal/api"
	"shareit-backend/internal/booking"
	"shareit-backend/internal/item"
	"shareit-backend/internal/itemrequest"
	"shareit-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Redis        *redis.Client
	UserCacheTTL time.Duration
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)
	if cfg.Redis != nil {
		userService = user.NewCachingService(userService, cfg.Redis, cfg.UserCacheTTL, cfg.Logger)
	}

	// ItemRequest repository doubles as the item module's request directory.
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)

	// Booking repository doubles as the item module's booking source.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, commentRepo, userService, requestRepo, bookingRepo)

	// ItemRequest Module
	requestService := itemrequest.NewService(requestRepo, userService, itemService)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, itemService, userService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ItemService:    itemService,
		RequestService: requestService,
		BookingService: bookingService,
		Logger:         cfg.Logger,
	}

	return &Container{
		Router: api.NewRouter(routerParams),
	}
}
