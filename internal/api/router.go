package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staysmart/hospitality-platform/internal/api/handler"
	"github.com/staysmart/hospitality-platform/internal/api/middleware"
	"github.com/staysmart/hospitality-platform/internal/core/domain"
	"github.com/staysmart/hospitality-platform/pkg/logger"
)

// Deps carries everything the router needs: the handlers built in main plus
// the raw connections used by the readiness probe.
type Deps struct {
	Auth      *handler.AuthHandler
	Property  *handler.PropertyHandler
	Inventory *handler.InventoryHandler
	Chat      *handler.ChatHandler
	Upload    *handler.UploadHandler

	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hospitality"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.With("api"))

	auth := middleware.Auth(deps.JWTSecret)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	v1 := e.Group("/v1")

	// --- Public surface: login, registration, search, chat, uploads ---
	v1.POST("/auth/login", deps.Auth.Login)
	v1.POST("/properties", deps.Property.Register)
	v1.GET("/properties/search", deps.Property.Search)
	v1.POST("/uploads/licence", deps.Upload.UploadLicence)
	v1.POST("/chat", deps.Chat.Chat)

	// Guests book without an account.
	v1.GET("/properties/:id/availability", deps.Inventory.GetAvailability)
	v1.POST("/properties/:id/bookings", deps.Inventory.Book)

	// --- Admin surface ---
	admin := v1.Group("/admin", auth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/properties/pending", deps.Property.ListPending)
	admin.POST("/properties/approve", deps.Property.Approve)
	admin.DELETE("/properties/:id", deps.Property.Reject)

	// --- Property surface: owner and staff, scoped to their own property ---
	scoped := v1.Group("/properties/:id", auth,
		middleware.RBAC(domain.RoleAdmin, domain.RoleOwner, domain.RoleStaff),
		middleware.PropertyScope())
	scoped.POST("/room-types", deps.Inventory.AddRoomType)
	scoped.GET("/bookings", deps.Inventory.ListBookings)
	scoped.DELETE("/bookings/:bookingID", deps.Inventory.CancelBooking)
	scoped.GET("/stats", deps.Inventory.Stats)

	// Staff management is owner-only.
	owners := v1.Group("/properties/:id/staff", auth,
		middleware.RBAC(domain.RoleAdmin, domain.RoleOwner),
		middleware.PropertyScope())
	owners.POST("", deps.Property.AddStaff)
	owners.GET("", deps.Property.ListStaff)

	return e
}
