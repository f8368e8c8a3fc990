package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/careerlane/jobportal/config"
	"github.com/careerlane/jobportal/internal/handler"
	"github.com/careerlane/jobportal/internal/middleware"
	"github.com/careerlane/jobportal/internal/repository"
	"github.com/careerlane/jobportal/internal/router"
	"github.com/careerlane/jobportal/internal/service"
	"github.com/careerlane/jobportal/pkg/database"
	"github.com/careerlane/jobportal/pkg/hashing"
	"github.com/careerlane/jobportal/pkg/logger"
	"github.com/careerlane/jobportal/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Redis is optional; without it stats are computed on every request.
	cache, err := redis.NewClient(cfg.Redis)
	if err != nil {
		logger.GetLogger().Warn("Redis unavailable, running without stats cache", zap.Error(err))
		cache = nil
	} else {
		defer cache.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Services
	hasher := hashing.NewHasher(runtime.GOMAXPROCS(0), bcrypt.DefaultCost)
	tokenService := service.NewTokenService(cfg.JWT)
	userService := service.NewUserService(userRepo, tokenRepo, tokenService, hasher)
	jobService := service.NewJobService(jobRepo, cache, cfg.Redis.CacheTTL)

	// Handlers
	handlers := router.Handlers{
		Auth:   handler.NewAuthHandler(userService, cfg.JWT),
		User:   handler.NewUserHandler(userService),
		Job:    handler.NewJobHandler(jobService),
		Health: handler.NewHealthHandler(db, cache),
	}

	jwtMiddleware := middleware.NewJWTMiddleware(tokenService)

	r := router.SetupRouter(cfg, handlers, jwtMiddleware)

	// Expired sessions accumulate otherwise; sweep them in the background.
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go sweepExpiredSessions(sweeperCtx, tokenRepo)

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", cfg.App.Port),
		)
		if err := r.Run(":" + cfg.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", cfg.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}

func sweepExpiredSessions(ctx context.Context, tokens repository.TokenRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := tokens.DeleteExpired(ctx)
			if err != nil {
				logger.GetLogger().Warn("Failed to sweep expired sessions", zap.Error(err))
				continue
			}
			if deleted > 0 {
				logger.GetLogger().Info("Expired sessions swept",
					zap.Int64("deleted", deleted),
				)
			}
		}
	}
}
