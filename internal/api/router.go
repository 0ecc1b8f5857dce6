package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/posyandu/lansia-health/internal/api/handler"
	"github.com/posyandu/lansia-health/internal/api/middleware"
	"github.com/posyandu/lansia-health/internal/core/domain"
	"github.com/posyandu/lansia-health/internal/core/ports"
	"github.com/posyandu/lansia-health/internal/core/service"
	mongodb "github.com/posyandu/lansia-health/internal/infrastructure/db/mongo"
	redisdb "github.com/posyandu/lansia-health/internal/infrastructure/db/redis"
	"github.com/posyandu/lansia-health/internal/infrastructure/ratelimit"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the login rate limiter then falls back to the in-memory
// store.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("lansia"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	checkupRepo := mongodb.NewCheckupRepository(db)

	var limitStore ports.RateLimitStore
	if rdb != nil {
		limitStore = redisdb.NewRateLimitStore(rdb)
	} else {
		limitStore = ratelimit.NewMemoryStore()
	}

	credentials := service.NewCredentialStore()
	tokens := service.NewTokenService(jwtSecret)
	limiter := service.NewRateLimiter(limitStore, 0, 0, log)
	codec := service.NewIdentityCodec()

	authService := service.NewAuthService(userRepo, credentials, tokens, limiter, 24*time.Hour, log)
	profileService := service.NewProfileService(profileRepo, codec, log)
	checkupService := service.NewCheckupService(checkupRepo, profileRepo, log)
	reportService := service.NewReportService(checkupRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	checkupHandler := handler.NewCheckupHandler(checkupService)
	reportHandler := handler.NewReportHandler(reportService)

	authGate := middleware.Auth(tokens, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleKader)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register, authGate, adminOnly)

	// --- Profile & checkup routes ---
	v1 := e.Group("/v1", authGate, anyRole)
	v1.POST("/profiles", profileHandler.Create)
	v1.GET("/profiles", profileHandler.List)
	v1.GET("/profiles/:id", profileHandler.Get)
	v1.PUT("/profiles/:id", profileHandler.Update)
	v1.DELETE("/profiles/:id", profileHandler.Delete, adminOnly)
	v1.GET("/profiles/:id/qr", profileHandler.QR)
	v1.POST("/qr/scan", profileHandler.Scan)

	v1.POST("/profiles/:id/checkups", checkupHandler.Create)
	v1.GET("/profiles/:id/checkups", checkupHandler.List)
	v1.GET("/checkups/:id", checkupHandler.Get)

	v1.GET("/reports/monthly", reportHandler.Monthly, adminOnly)

	// --- Health probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
