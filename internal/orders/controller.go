package orders

import (
	"net/http"

	"seatforge/internal/shared/apperr"
	"seatforge/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateCheckoutIntent implements POST /orders/checkout-intent (§6).
func (c *Controller) CreateCheckoutIntent(ctx *gin.Context) {
	var req CheckoutIntentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperr.Wrap(apperr.InvalidInput, "invalid request body", err))
		return
	}

	order, err := c.service.CreateCheckoutIntent(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "checkout intent created", order, nil)
}

// GetOrder implements GET /orders/{id} (§6).
func (c *Controller) GetOrder(ctx *gin.Context) {
	id := ctx.Param("id")
	order, err := c.service.GetOrder(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "order retrieved", order, nil)
}

// Finalize implements POST /orders/{id}/finalize (§6).
func (c *Controller) Finalize(ctx *gin.Context) {
	id := ctx.Param("id")
	order, err := c.service.FinalizeOrder(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "order finalized", order, nil)
}
