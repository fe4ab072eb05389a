package routes

import (
	"github.com/Jenaru0/SIGIM/controllers"
	"github.com/Jenaru0/SIGIM/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the staff authentication routes.
func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.RegisterStaff)
		auth.POST("/login", controllers.LoginStaff)
		auth.GET("/me", middlewares.AuthMiddleware(), controllers.GetMe)
		auth.POST("/logout", controllers.LogoutStaff)
	}
}
