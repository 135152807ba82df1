package ws

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Hub owns every open connection and serializes their input onto a single
// goroutine, so handlers never see two commands at once.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Incoming   chan *ClientMessage
	mu         sync.RWMutex
	nextID     int

	// done is closed when Run returns.
	done chan struct{}

	// OnMessage is called for each incoming client message.
	OnMessage func(cm *ClientMessage)
	// OnDisconnect is called when a client disconnects.
	OnDisconnect func(client *Client)
}

// Stats is a point-in-time view of the hub for health reporting.
type Stats struct {
	Clients  int   `json:"clients"`
	Dropped  int64 `json:"dropped"`
	Accepted int   `json:"accepted"`
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Incoming:   make(chan *ClientMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and input until ctx is cancelled, then
// closes every remaining connection's send queue.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			slog.Info("client connected", "client", client.ID)

		case client := <-h.Unregister:
			if !h.remove(client) {
				continue
			}
			slog.Info("client disconnected", "client", client.ID, "dropped", client.Dropped())
			if h.OnDisconnect != nil {
				h.OnDisconnect(client)
			}

		case cm := <-h.Incoming:
			if h.OnMessage != nil {
				h.OnMessage(cm)
			}
		}
	}
}

func (h *Hub) remove(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.Clients[client]; !ok {
		return false
	}
	delete(h.Clients, client)
	client.closeSend()
	return true
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.Clients {
		c.closeSend()
		delete(h.Clients, c)
	}
	slog.Info("hub stopped")
}

// Done is closed once the hub has stopped.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// NextClientID returns an ID for a new connection. IDs are not reused
// after disconnects.
func (h *Hub) NextClientID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	return fmt.Sprintf("client-%d", h.nextID)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}

// Stats sums connection counters across connected clients.
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s := Stats{Clients: len(h.Clients), Accepted: h.nextID}
	for c := range h.Clients {
		s.Dropped += c.Dropped()
	}
	return s
}
