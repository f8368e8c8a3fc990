package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careerlane/jobportal/internal/constants"
	"github.com/careerlane/jobportal/pkg/redis"
)

// HealthHandler reports liveness and dependency readiness
type HealthHandler struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewHealthHandler(db *gorm.DB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health reports the status of the service and its dependencies
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	checks := gin.H{
		"service": "ok",
	}
	status := http.StatusOK

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			checks["redis"] = "unreachable"
		} else {
			checks["redis"] = "ok"
		}
	}

	message := "healthy"
	if status != http.StatusOK {
		message = "degraded"
	}
	c.JSON(status, constants.NewResponse(status, checks, message))
}
