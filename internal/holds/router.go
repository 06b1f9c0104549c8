package holds

import (
	"time"

	"seatforge/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// SetupHoldRoutes wires the hold grant/release surface (§6), applying
// the per-session grant-rate limit ahead of the handler.
func SetupHoldRoutes(rg *gin.RouterGroup, controller *Controller, rateLimiter *ratelimit.RateLimiter, maxGrantsPerMinute int) {
	seats := rg.Group("/seats")
	{
		seats.POST("/hold", ratelimit.SessionMiddleware(rateLimiter, maxGrantsPerMinute, time.Minute), controller.Hold)
		seats.DELETE("/release", controller.Release)
	}
}
