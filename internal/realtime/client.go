package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one websocket connection subscribed to a single event room.
// SessionID/UserID identify the handshake (§6: clients supply auth.token
// and auth.sessionId; sessionId is generated client-side and persists
// across reconnects when unauthenticated).
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan Message
	eventID   string
	sessionID string
	userID    string
}

func newClient(hub *Hub, conn *websocket.Conn, eventID, sessionID, userID string) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan Message, 32),
		eventID:   eventID,
		sessionID: sessionID,
		userID:    userID,
	}
}

// readPump drains control frames (pings/close) from the client. This
// connection never receives application messages from the client, so
// any payload frame is simply discarded.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump fans queued messages out to the socket and keeps the
// connection alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
