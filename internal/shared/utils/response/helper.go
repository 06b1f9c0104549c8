package response

import (
	"seatforge/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps an apperr.Kind to its documented HTTP status (§7) and
// writes the standard envelope, centralizing what the teacher did via ad
// hoc err.Error() string comparisons scattered across controllers.
func RespondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	var details interface{}
	var ae *apperr.Error
	if e, ok := err.(*apperr.Error); ok {
		ae = e
	}
	if ae != nil && ae.Details != nil {
		details = ae.Details
	}
	RespondJSON(c, "error", kind.HTTPStatus(), err.Error(), nil, details)
}
