package realtime

import "github.com/gin-gonic/gin"

// SetupRealtimeRoutes wires the websocket subscription endpoint.
func SetupRealtimeRoutes(rg *gin.RouterGroup, handler *Handler) {
	rg.GET("/realtime/event/:eventId", handler.Subscribe)
}
