// Package spectate streams farm snapshots to read-only websocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/plus3/bloodfarm/farm"
)

// Frame is the JSON message sent to spectators for each published snapshot.
type Frame struct {
	Session  uuid.UUID     `json:"session"`
	Snapshot farm.Snapshot `json:"snapshot"`
}

// Hub maintains the set of connected spectators and broadcasts frames to
// them. Spectators that cannot keep up are disconnected.
type Hub struct {
	session    uuid.UUID
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	logger     *slog.Logger
}

// NewHub creates a hub publishing frames for session.
func NewHub(session uuid.UUID, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		session:    session,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With("session", session),
	}
}

// Run handles registrations and broadcasts until ctx is cancelled. Every
// connected spectator is disconnected when Run returns.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for client := range h.clients {
			delete(h.clients, client)
			close(client.send)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("spectator hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("spectator connected", "remote", client.conn.RemoteAddr().String())
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("spectator disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("dropping slow spectator")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish encodes snapshot as a Frame and queues it for every spectator.
// It never blocks: when the hub is backed up the frame is dropped.
func (h *Hub) Publish(snapshot farm.Snapshot) {
	payload, err := json.Marshal(Frame{Session: h.session, Snapshot: snapshot})
	if err != nil {
		h.logger.Error("failed to encode frame", "error", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Debug("hub busy, frame dropped", "step", snapshot.Step)
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
