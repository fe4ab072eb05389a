package routes

import (
	"github.com/Jenaru0/SIGIM/controllers"
	"github.com/Jenaru0/SIGIM/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the staff panel routes, all behind the session check.
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin", middlewares.AuthMiddleware())
	{
		admin.GET("/incidents", controllers.ListIncidents)
		admin.GET("/incidents/:id", controllers.GetIncident)
		admin.PATCH("/incidents/:id/advance", controllers.AdvanceIncident)
		admin.POST("/incidents/:id/resolve", controllers.ResolveIncident)
		admin.GET("/stats", controllers.GetDashboardStats)
	}
}
