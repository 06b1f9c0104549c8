package seats

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

// GetStatus implements GET /seats/event/{eventId}/status (§6).
func (c *Controller) GetStatus(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	if eventID == "" {
		response.RespondError(ctx, apperr.New(apperr.InvalidInput, "event id is required"))
		return
	}

	availability, err := c.service.GetAvailability(ctx.Request.Context(), eventID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "seat availability retrieved", availability.Seats, nil)
}

// GetPlan implements GET /seats/event/{eventId}/plan (§6).
func (c *Controller) GetPlan(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	if eventID == "" {
		response.RespondError(ctx, apperr.New(apperr.InvalidInput, "event id is required"))
		return
	}

	plan, err := c.service.GetSeatPlan(ctx.Request.Context(), eventID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "seat plan retrieved", plan, nil)
}
