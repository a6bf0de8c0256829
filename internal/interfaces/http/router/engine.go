package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig selects the global middleware of the HTTP engine. Zero
// values disable the optional pieces.
type EngineConfig struct {
	Logger      *zap.Logger
	Tracing     middleware.TracingConfig
	Security    middleware.SecurityConfig
	CORS        middleware.CORSConfig
	MaxBodySize int64
	// RateLimiter, when set, limits every request per client IP
	RateLimiter *middleware.RateLimiter
	// Metrics, when set, instruments requests and serves MetricsPath
	Metrics     *middleware.HTTPMetrics
	MetricsPath string
	Profiling   middleware.ProfilingConfig
	Swagger   middleware.SwaggerConfig
	// SwaggerAuth guards the docs when Swagger.RequireAuth is set
	SwaggerAuth []gin.HandlerFunc
	// TrustedProxies are passed to gin; nil trusts none
	TrustedProxies []string
}

// NewEngine builds the gin engine with the global middleware chain and the
// operational endpoints (/health, metrics, /swagger). API routes are added
// with NewRouter on the returned engine.
func NewEngine(cfg EngineConfig, system *handler.SystemHandler) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}
	engine.HandleMethodNotAllowed = true

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(cfg.Tracing))
	engine.Use(middleware.SecureWithConfig(cfg.Security))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.Middleware(metricsPath, "/health"))
	}
	engine.Use(middleware.Profiling(cfg.Profiling))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Resource not found", c.GetString(middleware.RequestIDKey)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeBadRequest, "Method not allowed", c.GetString(middleware.RequestIDKey)))
	})

	if system != nil {
		engine.GET("/health", system.Health)
	}
	if cfg.Metrics != nil {
		engine.GET(metricsPath, cfg.Metrics.Handler())
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, cfg.SwaggerAuth...),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	return engine
}

// APIMiddleware is the chain every /api route runs after the global one:
// the cart session cookie, optional authentication and span attributes
func APIMiddleware(cartSession middleware.CartSessionConfig, optionalAuth gin.HandlerFunc) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{middleware.CartSession(cartSession)}
	if optionalAuth != nil {
		chain = append(chain, optionalAuth)
	}
	return append(chain, middleware.TracingAttributes())
}
