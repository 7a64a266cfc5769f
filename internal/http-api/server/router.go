package server

import (
	"log/slog"
	"time"

	"bookhub/internal/cache"
	"bookhub/internal/http-api/handler"
	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/repository"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// Deps is everything the HTTP API needs to serve requests.
type Deps struct {
	Store  repository.Store
	Cache  cache.Cache
	Logger *slog.Logger

	BooksCacheTTL      time.Duration
	ExposeErrorDetails bool

	// JWTSecret enables the admin routes when set.
	JWTSecret string
	// ReserveLimiter throttles reservation attempts per client. Nil disables it.
	ReserveLimiter *middleware.IPRateLimiter
}

// NewRouter wires services and handlers onto a gin engine.
func NewRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	bookSvc := service.NewBookService(deps.Store.Books(), deps.Cache, deps.BooksCacheTTL, logger)
	reservationSvc := service.NewReservationService(deps.Store, logger)

	handler.NewHealthHandler(deps.Store).RegisterRoutes(r)

	books := r.Group("/books")

	var admin gin.HandlerFunc
	if deps.JWTSecret != "" {
		admin = middleware.RequireAdmin([]byte(deps.JWTSecret))
	}
	handler.NewBookHandler(bookSvc).RegisterRoutes(books, admin)

	var reserveMW []gin.HandlerFunc
	if deps.ReserveLimiter != nil {
		reserveMW = append(reserveMW, middleware.RateLimit(deps.ReserveLimiter))
	}
	handler.NewReservationHandler(reservationSvc, logger, deps.ExposeErrorDetails).RegisterRoutes(books, reserveMW...)

	return r
}
