package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradelink/backend/internal/infrastructure/auth"
	"github.com/tradelink/backend/internal/infrastructure/logger"
	"github.com/tradelink/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar is implemented by handlers that register their own routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config carries everything the router needs to assemble the engine
type Config struct {
	Logger      *zap.Logger
	JWTService  *auth.JWTService
	Blacklist   auth.TokenBlacklist
	Mode        string
	ServiceName string
	Tracing     bool
}

// publicPaths are reachable without a token
var publicPaths = []string{
	"/api/v1/auth/register",
	"/api/v1/auth/login",
	"/api/v1/auth/refresh",
}

// New assembles the gin engine with common middleware and the /api/v1 group
func New(cfg Config, registrars ...RouteRegistrar) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	if cfg.Tracing {
		engine.Use(middleware.Tracing(cfg.ServiceName), middleware.TraceAttributes())
	}
	engine.Use(
		logger.RequestLogger(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.CORS(),
	)

	v1 := engine.Group("/api/v1")
	v1.Use(middleware.JWTAuth(middleware.JWTConfig{
		Service:   cfg.JWTService,
		Blacklist: cfg.Blacklist,
		SkipPaths: publicPaths,
	}))

	for _, registrar := range registrars {
		registrar.RegisterRoutes(v1)
	}

	return engine
}
