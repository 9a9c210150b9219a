package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	adminapp "github.com/tradelink/backend/internal/application/admin"
	catalogapp "github.com/tradelink/backend/internal/application/catalog"
	identityapp "github.com/tradelink/backend/internal/application/identity"
	invoiceapp "github.com/tradelink/backend/internal/application/invoice"
	notificationapp "github.com/tradelink/backend/internal/application/notification"
	orderapp "github.com/tradelink/backend/internal/application/order"
	reportapp "github.com/tradelink/backend/internal/application/report"
	"github.com/tradelink/backend/internal/infrastructure/auth"
	"github.com/tradelink/backend/internal/infrastructure/config"
	"github.com/tradelink/backend/internal/infrastructure/event"
	infrainvoice "github.com/tradelink/backend/internal/infrastructure/invoice"
	"github.com/tradelink/backend/internal/infrastructure/logger"
	"github.com/tradelink/backend/internal/infrastructure/persistence"
	"github.com/tradelink/backend/internal/infrastructure/sms"
	"github.com/tradelink/backend/internal/infrastructure/telemetry"
	"github.com/tradelink/backend/internal/interfaces/http/handler"
	"github.com/tradelink/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TradeLink backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry: profiling, tracing, log export, metrics
	profiler, err := telemetry.StartProfiler(cfg.Profiling, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer profiler.Stop()

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, profiler.IsEnabled(), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracing", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer func() {
		if err := loggerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down log export", zap.Error(err))
		}
	}()
	if loggerProvider.IsEnabled() {
		// Every log line from here on goes to stdout and the collector
		otelCore := loggerProvider.ZapCore(cfg.Telemetry.ServiceName)
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelCore)
		}))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.Open(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if tracerProvider.IsEnabled() {
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Database.DBName, log); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	timelineRepo := persistence.NewGormTimelineRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	orderMetrics, err := telemetry.NewOrderMetrics(meterProvider.Meter("tradelink/orders"), log)
	if err != nil {
		log.Fatal("Failed to initialize order metrics", zap.Error(err))
	}

	// Token issuing and revocation
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
	}

	// Invoice rendering and artifact storage
	renderer, err := infrainvoice.NewChromedpRenderer(&infrainvoice.ChromedpConfig{
		DefaultTimeout: cfg.Invoice.RenderTimeout,
		ExecPath:       cfg.Invoice.ChromePath,
		NoSandbox:      true,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	var store infrainvoice.ArtifactStore
	if cfg.Invoice.Storage == "s3" {
		store, err = infrainvoice.NewS3Store(cfg.Invoice, log)
	} else {
		store, err = infrainvoice.NewFileSystemStore(cfg.Invoice.BaseDir, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize invoice storage", zap.Error(err))
	}

	invoiceGenerator := invoiceapp.NewGenerator(userRepo, renderer, store, log)

	// Event bus and notification fan-out
	eventBus := event.NewInMemoryEventBus(log)
	smsSender := sms.NewSender(cfg.SMS, log)
	orderNotifier := notificationapp.NewOrderNotifier(userRepo, smsSender, log)
	orderNotifier.SetMetrics(orderMetrics)
	eventBus.Subscribe(orderNotifier)
	log.Info("Order notifier registered", zap.Strings("events", orderNotifier.EventTypes()))

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	authService.SetEventPublisher(eventBus)

	productService := catalogapp.NewProductService(productRepo, log)
	productService.SetEventPublisher(eventBus)

	orderService := orderapp.NewService(orderRepo, productRepo, timelineRepo, uow, invoiceGenerator, log)
	orderService.SetEventPublisher(eventBus)
	orderService.SetMetrics(orderMetrics)

	statsService := reportapp.NewStatsService(orderRepo)

	adminService := adminapp.NewService(userRepo, productRepo, orderRepo, log)

	// HTTP layer
	mode := gin.DebugMode
	if cfg.App.Env == "production" {
		mode = gin.ReleaseMode
	}
	engine := router.New(router.Config{
		Logger:      log,
		JWTService:  jwtService,
		Blacklist:   blacklist,
		Mode:        mode,
		ServiceName: cfg.Telemetry.ServiceName,
		Tracing:     tracerProvider.IsEnabled(),
	},
		handler.NewAuthHandler(authService, log),
		handler.NewProductHandler(productService, log),
		handler.NewOrderHandler(orderService, log),
		handler.NewStatsHandler(statsService, log),
		handler.NewAdminHandler(adminService, log),
	)
	handler.NewHealthHandler(db.DB, version).RegisterRoutes(engine)

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
