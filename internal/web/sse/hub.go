package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/hangbot/internal/model"
)

// Hub fans messages out to the SSE clients watching one conversation
type Hub struct {
	key     model.ConversationKey
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a new Hub for a conversation
func NewHub(key model.ConversationKey, logger *slog.Logger) *Hub {
	return &Hub{
		key:        key,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("conversation", string(key))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Debug("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("player_id", string(client.playerID)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("sse client unregistered",
					slog.String("player_id", string(client.playerID)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse message dropped - client buffer full",
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Debug("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name, id and data
func (h *Hub) BroadcastEvent(eventName, id, data string) {
	h.Broadcast(formatSSEMessage(eventName, id, data))
}

// Close shuts down the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message. Each line of data gets its own
// "data: " prefix; an empty id is omitted.
func formatSSEMessage(eventName, id, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	if id != "" {
		b.WriteString("id: " + id + "\n")
	}
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits a string into lines, dropping carriage returns and a
// trailing newline
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// HubManager manages hubs for all conversations
type HubManager struct {
	hubs   map[model.ConversationKey]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.ConversationKey]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a conversation, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(key model.ConversationKey) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[key]; ok {
		return hub
	}

	hub := NewHub(key, m.logger)
	m.hubs[key] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a conversation, or nil if it doesn't exist
func (m *HubManager) GetHub(key model.ConversationKey) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[key]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(key model.ConversationKey) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[key]; ok {
		hub.Close()
		delete(m.hubs, key)
		m.logger.Info("sse hub removed", slog.String("conversation", string(key)))
	}
}

// CleanupEmptyHubs removes hubs with no clients
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removedCount := 0
	for key, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, key)
			removedCount++
		}
	}
	if removedCount > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removedCount))
	}
}

// CloseAll shuts down every hub
func (m *HubManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, key)
	}
}
