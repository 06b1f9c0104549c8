package orders

import "github.com/gin-gonic/gin"

// SetupOrderRoutes wires the checkout surface (§6).
func SetupOrderRoutes(rg *gin.RouterGroup, controller *Controller) {
	ordersGroup := rg.Group("/orders")
	{
		ordersGroup.POST("/checkout-intent", controller.CreateCheckoutIntent)
		ordersGroup.GET("/:id", controller.GetOrder)
		ordersGroup.POST("/:id/finalize", controller.Finalize)
	}
}
