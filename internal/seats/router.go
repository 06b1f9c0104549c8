package seats

import (
	"github.com/gin-gonic/gin"
)

// SetupSeatRoutes wires the read-only seat status/plan surface (§6). Holds
// themselves (POST /seats/hold, DELETE /seats/release) are owned by
// internal/holds, registered separately in api/routes/router.go — kept
// unauthenticated here since event seat plans are public browsing data,
// matching the teacher's unauthenticated section-browsing routes.
func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	events := rg.Group("/seats/event")
	{
		events.GET("/:eventId/status", controller.GetStatus)
		events.GET("/:eventId/plan", controller.GetPlan)
	}
}
