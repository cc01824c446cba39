package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/practicewell/records-system/docs"
	"github.com/practicewell/records-system/internal/api/handler"
	"github.com/practicewell/records-system/internal/api/middleware"
	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/ports"
	"github.com/practicewell/records-system/internal/core/service"
	"github.com/practicewell/records-system/internal/infrastructure/config"
	mongodb "github.com/practicewell/records-system/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit dispatcher is constructed in main (its workers outlive any
// single request) and injected here as the handlers' AuditRecorder.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	audit handler.AuditRecorder,
	auditRepo ports.AuditRepository,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("records"))

	// --- Dependencies ---
	therapistRepo := mongodb.NewTherapistRepository(db)
	clientRepo := mongodb.NewClientRepository(db)

	authService := service.NewAuthService(therapistRepo, cfg.JWTSecret, cfg.TokenTTL)
	clientService := service.NewClientService(clientRepo, log)
	therapistService := service.NewTherapistService(therapistRepo, log)

	authHandler := handler.NewAuthHandler(authService, audit, cfg.TokenTTL, cfg.Production())
	clientHandler := handler.NewClientHandler(clientService, audit)
	therapistHandler := handler.NewTherapistHandler(therapistService, audit)
	auditHandler := handler.NewAuditHandler(auditRepo)

	apiGuard := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes (public) ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)

	// --- Client records (any authenticated role; ownership enforced in the service) ---
	clients := e.Group("/api/clients", apiGuard)
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.PATCH("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Admin: therapist accounts and audit trail ---
	admin := e.Group("/api/admin", apiGuard, adminOnly)
	admin.GET("/therapists", therapistHandler.List)
	admin.POST("/therapists", therapistHandler.Create)
	admin.PATCH("/therapists/:id", therapistHandler.Update)
	admin.PUT("/therapists/:id", therapistHandler.Update)
	admin.DELETE("/therapists/:id", therapistHandler.Delete)
	admin.GET("/audit", auditHandler.List)

	// --- Browser navigation ---
	// The SPA shell is served elsewhere; these stubs exist so the edge
	// guard has real routes to protect and redirect from.
	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, `<!DOCTYPE html><title>PracticeWell</title><p>Sign in to continue.</p>`)
	})
	pages := e.Group("/clients", middleware.EdgeGuard(cfg.JWTSecret, "/"))
	pages.GET("", func(c echo.Context) error {
		return c.HTML(http.StatusOK, `<!DOCTYPE html><title>Clients</title><p>Client roster.</p>`)
	})
	pages.GET("/*", func(c echo.Context) error {
		return c.HTML(http.StatusOK, `<!DOCTYPE html><title>Clients</title><p>Client roster.</p>`)
	})

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
