package main

import (
	"encoding/json"
	"sync"

	"github.com/aandres44/c04s/internal/searchqueue"
)

// Hub fans searchqueue.Event out to every connected WebSocket client.
// It implements searchqueue.Hub.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

// Client is one registered WebSocket connection's outbound mailbox.
type Client struct {
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Publish implements searchqueue.Hub: it fans e out to every
// registered client, dropping it for any client whose send buffer is
// full rather than blocking the worker goroutine.
func (h *Hub) Publish(e searchqueue.Event) {
	data, err := json.Marshal(wsMessage{Type: "queue", Payload: mustMarshal(e)})
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Register adds c to the broadcast set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// Unregister removes c from the broadcast set and closes its mailbox.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
