package payments

import "github.com/gin-gonic/gin"

// SetupPaymentRoutes wires the provider webhook endpoint.
func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/payments/webhook", controller.Webhook)
}
