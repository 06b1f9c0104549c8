package events

import (
	"seatforge/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse events.
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.GetAllEvents)
		publicEvents.GET("/:eventId", controller.GetEvent)
		publicEvents.GET("/upcoming", controller.GetUpcomingEvents)
	}

	// Admin routes - only admins create, update, delete and publish events.
	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)
		adminEvents.PUT("/:eventId", controller.UpdateEvent)
		adminEvents.DELETE("/:eventId", controller.DeleteEvent)
		adminEvents.POST("/:eventId/publish", controller.PublishEvent)
		adminEvents.GET("", controller.GetAllEvents)
		adminEvents.GET("/:eventId", controller.GetEvent)
	}
}
