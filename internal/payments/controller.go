package payments

import (
	"io"
	"net/http"

	"seatforge/internal/shared/apperr"
	"seatforge/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Controller handles the provider-signed webhook callback (§6).
type Controller struct {
	provider Provider
	onEvent  func(ctx *gin.Context, event *WebhookEvent) error
}

// NewController takes a callback rather than a narrow interface type so
// the caller (api/routes/router.go) can close over whichever
// orders.Service methods the webhook needs without this package having
// to describe orders.Service's shape itself.
func NewController(provider Provider, onEvent func(ctx *gin.Context, event *WebhookEvent) error) *Controller {
	return &Controller{provider: provider, onEvent: onEvent}
}

// Webhook implements POST /payments/webhook (§6): verifies the raw body
// signature, then dispatches succeeded/failed to the Checkout Coordinator.
func (c *Controller) Webhook(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		response.RespondError(ctx, apperr.Wrap(apperr.InvalidInput, "failed to read webhook body", err))
		return
	}

	signature := ctx.GetHeader("X-Payment-Signature")
	event, err := c.provider.VerifyWebhook(body, signature)
	if err != nil {
		response.RespondError(ctx, apperr.Wrap(apperr.Unauthenticated, "webhook signature verification failed", err))
		return
	}

	if err := c.onEvent(ctx, event); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "webhook processed", nil, nil)
}
