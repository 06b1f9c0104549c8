package realtime

import (
	"context"
	"sync"

	"seatforge/pkg/logger"
)

// Sink is the narrow broadcast surface the Hold Arbiter and Checkout
// Coordinator depend on — consuming packages never see *Hub or any
// websocket detail, following the adapter-injection idiom the rest of
// this codebase uses to keep domain packages decoupled from transport.
type Sink interface {
	Broadcast(ctx context.Context, eventID string, msg Message)
}

// Hub fans messages out to every client subscribed to an event's room.
// One goroutine owns room membership; clients register/unregister and
// broadcasts flow through channels rather than shared-state locking,
// the conventional shape for a gorilla/websocket hub.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex // guards reads of rooms from ViewerCount; the hub goroutine owns writes
	log        *logger.Logger
}

type roomMessage struct {
	eventID string
	msg     Message
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 256),
		rooms:      make(map[string]map[*Client]bool),
		log:        log,
	}
}

// Run drives the hub loop until ctx is cancelled. Call it in its own
// goroutine from server startup.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, clients := range h.rooms {
				for c := range clients {
					close(c.send)
				}
			}
			h.rooms = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[c.eventID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[c.eventID] = room
			}
			room[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[c.eventID]; ok {
				if _, present := room[c]; present {
					delete(room, c)
					close(c.send)
					if len(room) == 0 {
						delete(h.rooms, c.eventID)
					}
				}
			}
			h.mu.Unlock()

		case rm := <-h.broadcast:
			h.mu.Lock()
			room := h.rooms[rm.eventID]
			subscriberCount := len(room)
			for c := range room {
				select {
				case c.send <- rm.msg:
				default:
					// slow consumer: drop it rather than block the hub loop
					delete(room, c)
					close(c.send)
				}
			}
			h.mu.Unlock()
			h.log.LogBroadcastEmitted(ctx, rm.eventID, rm.msg.Type, subscriberCount)
		}
	}
}

// Broadcast implements Sink.
func (h *Hub) Broadcast(ctx context.Context, eventID string, msg Message) {
	select {
	case h.broadcast <- roomMessage{eventID: eventID, msg: msg}:
	case <-ctx.Done():
	}
}

// ViewerCount returns the number of clients currently subscribed to an
// event's room, used to populate the ViewersPayload sent with
// TypeJoinedEvent.
func (h *Hub) ViewerCount(eventID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[eventID])
}
