package holds

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

// Hold implements POST /seats/hold (§6).
func (c *Controller) Hold(ctx *gin.Context) {
	var req HoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperr.Wrap(apperr.InvalidInput, "invalid request body", err))
		return
	}

	hold, err := c.service.HoldSeats(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "hold granted", hold, nil)
}

// Release implements DELETE /seats/release (§6).
func (c *Controller) Release(ctx *gin.Context) {
	var req ReleaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperr.Wrap(apperr.InvalidInput, "invalid request body", err))
		return
	}

	if err := c.service.ReleaseHold(ctx.Request.Context(), req); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "hold released", nil, nil)
}
