// internal/app/realtime/hub.go

// Package realtime fans comment and adoption events out to connected
// WebSocket clients. Delivery is fire-and-forget: the workflow never
// waits on, or fails because of, the relay.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is the wire shape of one relayed notification.
type Event struct {
	Name      string      `json:"event"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub tracks connected clients and broadcasts events to them. A slow
// client whose send buffer is full is dropped rather than allowed to
// stall the broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	events     chan []byte

	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan []byte, 256),
		log:        log,
	}
}

// Run is the hub's event loop. Start it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			h.log.Debug("realtime client connected", zap.Int("clients", h.ClientCount()))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case data := <-h.events:
			h.broadcast(data)
		}
	}
}

// Emit queues an event for every connected client. It never blocks the
// caller; if the hub's queue is full the event is dropped and logged.
func (h *Hub) Emit(name string, payload interface{}) {
	data, err := json.Marshal(Event{
		Name:      name,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		h.log.Warn("realtime event marshal failed", zap.String("event", name), zap.Error(err))
		return
	}
	select {
	case h.events <- data:
	default:
		h.log.Warn("realtime event dropped, queue full", zap.String("event", name))
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow client; drop it on the next loop pass.
			go func(c *Client) { h.unregister <- c }(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
