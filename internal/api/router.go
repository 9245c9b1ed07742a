package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/api/handler"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/api/middleware"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// Deps carries everything the router needs to register routes.
type Deps struct {
	Mongo         *mongo.Database
	Redis         *redis.Client
	JWTSecret     string
	Logger        zerolog.Logger
	Auth          ports.AuthService
	Users         ports.UserService
	Catalog       ports.CatalogService
	Circulation   ports.CirculationService
	Fines         ports.FineService
	Reservations  ports.ReservationService
	Notifications ports.NotificationService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("booksphere"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	profileHandler := handler.NewProfileHandler(d.Users)
	bookHandler := handler.NewBookHandler(d.Catalog)
	circulationHandler := handler.NewCirculationHandler(d.Circulation)
	fineHandler := handler.NewFineHandler(d.Fines)
	reservationHandler := handler.NewReservationHandler(d.Reservations)
	notificationHandler := handler.NewNotificationHandler(d.Notifications)

	auth := middleware.Auth(d.JWTSecret)
	adminOnly := middleware.RBAC(string(domain.RoleAdmin))
	anyRole := middleware.RBAC(string(domain.RoleAdmin), string(domain.RoleStudent))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", auth, anyRole)

	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Update)
	v1.POST("/users/:id/deactivate", profileHandler.Deactivate, adminOnly)

	v1.GET("/books", bookHandler.List)
	v1.GET("/books/:id", bookHandler.Get)
	v1.POST("/books", bookHandler.Add, adminOnly)

	v1.POST("/transactions/borrow", circulationHandler.Borrow)
	v1.POST("/transactions/:id/return", circulationHandler.Return)
	v1.GET("/transactions", circulationHandler.List)
	v1.GET("/transactions/:id", circulationHandler.Get)

	v1.GET("/fines", fineHandler.List)
	v1.POST("/fines/damage", fineHandler.IssueDamage, adminOnly)
	v1.POST("/fines/:id/pay", fineHandler.Pay)
	v1.POST("/fines/:id/waive", fineHandler.Waive, adminOnly)

	v1.POST("/reservations", reservationHandler.Reserve)
	v1.GET("/reservations", reservationHandler.List)
	v1.POST("/reservations/:id/ready", reservationHandler.MarkReady, adminOnly)
	v1.DELETE("/reservations/:id", reservationHandler.Cancel)

	v1.GET("/notifications", notificationHandler.List)
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
