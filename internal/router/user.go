package router

import (
	"github.com/gin-gonic/gin"

	"github.com/careerlane/jobportal/internal/middleware"
)

// registerUserRoutes wires account and session endpoints
func registerUserRoutes(v1 *gin.RouterGroup, handlers Handlers, auth *middleware.JWTMiddleware) {
	user := v1.Group("/user")
	{
		user.POST("/register", handlers.Auth.Register)
		user.POST("/login", handlers.Auth.Login)
		user.POST("/refresh-token", handlers.Auth.Refresh)

		protected := user.Group("")
		protected.Use(auth.RequireAuth())
		{
			protected.POST("/logout", handlers.Auth.Logout)
			protected.POST("/change-password", handlers.User.ChangePassword)
			protected.POST("/update-details", handlers.User.UpdateDetails)
		}
	}
}
