package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shareit-backend/internal/booking"
	bookingHttp "shareit-backend/internal/booking/http"
	"shareit-backend/internal/identity"
	"shareit-backend/internal/item"
	itemHttp "shareit-backend/internal/item/http"
	"shareit-backend/internal/itemrequest"
	requestHttp "shareit-backend/internal/itemrequest/http"
	"shareit-backend/internal/user"
	userHttp "shareit-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	ItemService    item.Service
	RequestService itemrequest.Service
	BookingService booking.Service

	Logger *zap.Logger
}

// NewRouter initializes the HTTP router engine.
// It assembles the global middleware (request id, logging, CORS) and
// registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(RequestID(), RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.UserIDHeader}
	r.Use(cors.New(corsConfig))

	// identityMiddleware: resolves the acting user from the sharer header.
	identityMiddleware := identity.Required()

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, identityMiddleware)
		requestHttp.RegisterRoutes(root, requestHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, identityMiddleware)
	}

	return r
}
