package router

import (
	"github.com/gin-gonic/gin"

	"github.com/careerlane/jobportal/internal/middleware"
)

// registerJobRoutes wires job posting endpoints, all owner-scoped
func registerJobRoutes(v1 *gin.RouterGroup, handlers Handlers, auth *middleware.JWTMiddleware) {
	job := v1.Group("/job")
	job.Use(auth.RequireAuth())
	{
		job.POST("/create-job", handlers.Job.Create)
		job.GET("/get-job", handlers.Job.List)
		job.PATCH("/update-job/:jobId", handlers.Job.Update)
		job.DELETE("/delete-job/:jobId", handlers.Job.Delete)
		job.GET("/stats", handlers.Job.Stats)
	}
}
