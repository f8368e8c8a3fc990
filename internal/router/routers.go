package router

import (
	"github.com/gin-gonic/gin"

	"github.com/careerlane/jobportal/config"
	"github.com/careerlane/jobportal/internal/constants"
	"github.com/careerlane/jobportal/internal/handler"
	"github.com/careerlane/jobportal/internal/middleware"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Job    *handler.JobHandler
	Health *handler.HealthHandler
}

// SetupRouter wires middleware and all route groups
func SetupRouter(cfg *config.Config, handlers Handlers, auth *middleware.JWTMiddleware) *gin.Engine {
	if cfg.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	r.GET("/health", handlers.Health.Health)

	v1 := r.Group("/api/v1")
	v1.GET("/health", handlers.Health.Health)
	registerUserRoutes(v1, handlers, auth)
	registerJobRoutes(v1, handlers, auth)

	return r
}
