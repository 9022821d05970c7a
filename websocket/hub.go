package websocket

import (
	"log"
	"os"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/aprovacriativos/aprova_backend/models"
)

// Client represents one connected dashboard, subscribed to the events
// of a single client account.
type Client struct {
	ID       string
	ClientID string
	Conn     *websocket.Conn
}

// Hub maintains the set of connected dashboards and fans portal events
// out to everyone watching the same client account.
type Hub struct {
	subscribers map[string]map[string]*Client // clientID -> connection id -> client
	register    chan *Client
	unregister  chan *Client
	mu          sync.RWMutex
	logger      *log.Logger
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      log.New(os.Stdout, "[WS-HUB] ", log.LstdFlags),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			byID, ok := h.subscribers[client.ClientID]
			if !ok {
				byID = make(map[string]*Client)
				h.subscribers[client.ClientID] = byID
			}
			byID[client.ID] = client
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if byID, ok := h.subscribers[client.ClientID]; ok {
				if _, ok := byID[client.ID]; ok {
					delete(byID, client.ID)
					if len(byID) == 0 {
						delete(h.subscribers, client.ClientID)
					}
				}
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes a portal event to every dashboard watching the
// event's client account. Slow or broken connections are skipped; the
// dashboard reloads its state on reconnect anyway.
func (h *Hub) Broadcast(event models.PortalEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.subscribers[event.ClientID] {
		if err := client.Conn.WriteJSON(event); err != nil {
			h.logger.Printf("write to dashboard %s failed: %v", client.ID, err)
		}
	}
}
