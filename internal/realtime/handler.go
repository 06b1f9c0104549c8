package realtime

import (
	"net/http"
	"time"

	"seatforge/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// TokenValidator is the narrow slice of internal/auth this package
// depends on — only the handshake needs it, so the realtime package
// never imports the rest of internal/auth's surface.
type TokenValidator interface {
	ValidateToken(tokenString string) (UserID string, err error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Event rooms are public browsing surfaces (same as the seat plan
	// endpoints), so any origin may subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub  *Hub
	auth TokenValidator
}

func NewHandler(hub *Hub, auth TokenValidator) *Handler {
	return &Handler{hub: hub, auth: auth}
}

// Subscribe upgrades GET /realtime/event/{eventId} to a websocket and
// joins the caller to that event's broadcast room (§6 WebSocket surface).
func (h *Handler) Subscribe(c *gin.Context) {
	eventID := c.Param("eventId")
	if eventID == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "event id is required", nil, nil)
		return
	}

	sessionID := c.Query("sessionId")
	token := c.Query("token")

	var userID string
	if token != "" && h.auth != nil {
		if uid, err := h.auth.ValidateToken(token); err == nil {
			userID = uid
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := newClient(h.hub, conn, eventID, sessionID, userID)
	h.hub.register <- client

	client.send <- Message{
		Type:      TypeJoinedEvent,
		EventID:   eventID,
		Payload:   ViewersPayload{Count: h.hub.ViewerCount(eventID)},
		EmittedAt: time.Now(),
	}

	go client.writePump()
	go client.readPump()
}
