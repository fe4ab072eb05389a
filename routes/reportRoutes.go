package routes

import (
	"github.com/Jenaru0/SIGIM/controllers"
	"github.com/Jenaru0/SIGIM/middlewares"

	"github.com/gin-gonic/gin"
)

// ReportRoutes sets up the citizen-facing routes: submission, ticket
// tracking, map data and the geocoding helpers for the location step.
func ReportRoutes(r *gin.Engine) {
	report := r.Group("/api/report")
	{
		report.POST("", middlewares.ReportCooldown(), controllers.CreateReport)
		report.GET("/ticket/:ticketId", controllers.GetReportByTicket)
		report.GET("/recent", controllers.RecentReports)
	}

	geocode := r.Group("/api/geocode")
	{
		geocode.GET("/search", controllers.SearchAddress)
		geocode.GET("/reverse", controllers.ReverseGeocode)
	}
}
