package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	identityapp "github.com/storefront/backend/internal/application/identity"
	reportapp "github.com/storefront/backend/internal/application/report"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/scheduler"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/storefront/backend/docs"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Storefront API
//	@version		1.0
//	@description	Catalog, session cart, checkout and order management for a single-shop storefront.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// OTLP log export has to exist before the logger so it can be teed in
	var logOpts []logger.Option
	var logProvider *telemetry.LoggerProvider
	if cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled {
		logProvider, err = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Environment:       cfg.App.Env,
			Insecure:          cfg.Telemetry.Insecure,
		}, zap.NewNop())
		if err != nil {
			panic("Failed to initialize log exporter: " + err.Error())
		}
		logOpts = append(logOpts, logger.WithTee(logProvider.ZapCore(logger.ParseLevel(cfg.Log.Level))))
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, logOpts...)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tel := setupTelemetry(ctx, cfg, log)
	tel.logs = logProvider
	defer tel.shutdown(log)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL && !cfg.App.IsProduction()))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err := plugin.Register(db.DB); err != nil {
			log.Warn("Database tracing unavailable", zap.Error(err))
		}
	}
	if tel.meters.IsEnabled() {
		dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, tel.meters.Meter("storefront/db"), cfg.Telemetry.DBSlowQueryThresh, log)
		if err != nil {
			log.Warn("Database metrics unavailable", zap.Error(err))
		} else {
			defer dbMetrics.Stop()
		}
	}

	// Redis backs the token blacklist and checkout idempotency when configured
	var redisClient *redis.Client
	redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
	switch {
	case errors.Is(err, cache.ErrRedisDisabled):
		log.Info("Redis disabled, using in-memory token blacklist")
	case err != nil:
		if cfg.Checkout.RequireRedis {
			log.Fatal("Redis required but unavailable", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory fallbacks", zap.Error(err))
	default:
		defer func() {
			_ = redisClient.Close()
		}()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var blacklist auth.TokenBlacklist
	var storeFactory *cache.IdempotencyStoreFactory
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		storeFactory = cache.NewIdempotencyStoreFactory(redisClient, cache.WithLogger(log))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		storeFactory = cache.NewIdempotencyStoreFactory(nil,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(!cfg.Checkout.RequireRedis))
	}
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	var images catalogapp.ImageStorage
	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3ObjectStorage(ctx, cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Warn("Image bucket check failed", zap.String("bucket", s3.Bucket()), zap.Error(err))
		}
		images = s3
	} else {
		log.Info("Object storage not configured, product images disabled")
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)
	userService := identityapp.NewUserService(userRepo, log)
	storefrontService := catalogapp.NewStorefrontService(productRepo, categoryRepo, images, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, images, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	cartService := cartapp.NewCartService(cartRepo, productRepo, log)
	orderService := tradeapp.NewOrderService(orderRepo, txScope, log)
	importService := catalogapp.NewProductImportService(productRepo, categoryRepo, log)
	reportService := reportapp.NewReportService(persistence.NewGormSalesReportRepository(db.DB), log)

	checkoutOpts := []tradeapp.CheckoutOption{tradeapp.WithIdempotency(idempotencyStore, cfg.Checkout.IdempotencyTTL)}
	if tel.business != nil {
		checkoutOpts = append(checkoutOpts, tradeapp.WithCheckoutMetrics(tel.business))
		cartService.SetMetrics(tel.business)
		eventBus.Subscribe(tel.business)
	}
	checkoutService := tradeapp.NewCheckoutService(txScope, log, checkoutOpts...)

	if images != nil {
		eventBus.Subscribe(catalogapp.NewProductImageCleanupHandler(images, log))
	}
	userService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	importService.SetEventPublisher(eventBus)
	checkoutService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	if cfg.Scheduler.Enabled {
		jobs := scheduler.New(scheduler.Config{JobTimeout: cfg.Scheduler.JobTimeout}, log)
		if err := jobs.Register(scheduler.CartPurgeJobName, cfg.Scheduler.CartPurgeCron,
			scheduler.NewCartPurgeJob(cartService, cfg.Scheduler.CartMaxAge, log)); err != nil {
			log.Fatal("Failed to schedule cart purge", zap.Error(err))
		}
		jobs.Start()
		defer func() {
			if err := jobs.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.String("cart_purge_cron", cfg.Scheduler.CartPurgeCron),
			zap.Duration("cart_max_age", cfg.Scheduler.CartMaxAge),
		)
	}

	// Handlers
	systemHandler := handler.NewSystemHandler(version)
	systemHandler.AddCheck("database", db.Ping)
	if redisClient != nil {
		systemHandler.AddCheck("redis", func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}
	handlers := router.Handlers{
		Catalog:     handler.NewCatalogHandler(storefrontService),
		Cart:        handler.NewCartHandler(cartService),
		Auth:        handler.NewAuthHandler(authService),
		Account:     handler.NewAccountHandler(userService),
		Checkout:    handler.NewCheckoutHandler(cartService, checkoutService),
		Orders:      handler.NewOrderHandler(orderService),
		System:      systemHandler,
		Products:    handler.NewProductHandler(productService),
		Categories:  handler.NewCategoryHandler(categoryService),
		AdminCarts:  handler.NewAdminCartHandler(cartService),
		AdminOrders: handler.NewAdminOrderHandler(orderService),
		Import:      handler.NewProductImportHandler(importService),
		Reports:     handler.NewReportHandler(reportService),
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	requireAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	guards := router.Guards{
		Authenticated: []gin.HandlerFunc{requireAuth},
		Staff:         []gin.HandlerFunc{middleware.RequireStaff()},
	}

	engineCfg := router.EngineConfig{
		Logger: log,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
			SkipPaths:   []string{"/health", cfg.Metrics.Path},
		},
		Security: securityConfig(cfg),
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		MaxBodySize: cfg.HTTP.MaxBodySize,
		MetricsPath: cfg.Metrics.Path,
		Profiling: middleware.ProfilingConfig{
			Enabled:          tel.profiler.IsEnabled(),
			SkipPaths:        []string{"/health", cfg.Metrics.Path},
			SkipPathPrefixes: []string{"/swagger"},
		},
		Swagger: middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.App.IsProduction(),
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		},
		SwaggerAuth:    []gin.HandlerFunc{requireAuth, middleware.RequireStaff()},
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		go limiter.Run(ctx)
		engineCfg.RateLimiter = limiter
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		go limiter.Run(ctx)
		guards.Credentials = []gin.HandlerFunc{middleware.RateLimit(limiter)}
	}
	if cfg.Metrics.Enabled {
		engineCfg.Metrics = middleware.NewHTTPMetrics("storefront")
	}

	engine := router.NewEngine(engineCfg, systemHandler)
	apiRouter := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(router.APIMiddleware(cartSessionConfig(cfg.Cookie),
			middleware.OptionalJWTAuthMiddleware(jwtService, blacklist))...)
	for _, g := range router.StorefrontRoutes(handlers, guards) {
		apiRouter.Register(g)
	}
	apiRouter.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func cartSessionConfig(c config.CookieConfig) middleware.CartSessionConfig {
	return middleware.CartSessionConfig{
		CookieName: c.SessionName,
		MaxAge:     c.MaxAge,
		Domain:     c.Domain,
		Path:       c.Path,
		Secure:     c.Secure,
		SameSite:   middleware.ParseSameSite(c.SameSite),
	}
}

func securityConfig(cfg *config.Config) middleware.SecurityConfig {
	sec := middleware.DefaultSecurityConfig()
	// HSTS only makes sense behind HTTPS, which secure cookies imply
	sec.HSTSEnabled = cfg.App.IsProduction() && cfg.Cookie.Secure
	return sec
}
