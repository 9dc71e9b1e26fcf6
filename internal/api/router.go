package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/resolvenow/complaint-system/internal/api/handler"
	"github.com/resolvenow/complaint-system/internal/api/middleware"
	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

// RouterConfig carries everything the HTTP layer needs. Services and
// repositories are built by the caller so the router stays agnostic of the
// configured storage backend. Mongo and Redis are nil when the in-memory
// backend is active; they only feed the readiness probe.
type RouterConfig struct {
	AuthService      ports.AuthService
	ComplaintService ports.ComplaintService
	Events           ports.EventRepository
	JWTSecret        string
	Mongo            *mongo.Database
	Redis            *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("resolvenow"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	complaintHandler := handler.NewComplaintHandler(cfg.ComplaintService, cfg.Events)
	healthHandler := handler.NewHealthHandler(cfg.Mongo, cfg.Redis)
	authRequired := middleware.Auth(cfg.JWTSecret)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleAgent)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.SignIn)
	e.POST("/auth/logout", authHandler.SignOut, authRequired)
	e.GET("/auth/session", authHandler.Session)

	// --- Complaint routes ---
	v1 := e.Group("/v1", authRequired)
	v1.POST("/complaints", complaintHandler.Create)
	v1.GET("/complaints", complaintHandler.List)
	v1.GET("/complaints/:id", complaintHandler.Get)
	v1.PUT("/complaints/:id/assign", complaintHandler.Assign, staffOnly)
	v1.PUT("/complaints/:id/status", complaintHandler.UpdateStatus, staffOnly)
	v1.POST("/complaints/:id/messages", complaintHandler.SendMessage)
	v1.GET("/complaints/:id/messages", complaintHandler.ListMessages)
	v1.GET("/complaints/:id/events", complaintHandler.Events)
	v1.GET("/stats", complaintHandler.Stats, staffOnly)
	v1.GET("/agents", complaintHandler.ListAgents, staffOnly)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
