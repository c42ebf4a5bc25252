package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pathways-backend-go/internal/models"
)

const (
	FeedMetrics  = "metrics"
	FeedActivity = "activity"

	feedWriteTimeout = 5 * time.Second
)

// FeedEvent is the envelope pushed to admin websocket clients.
type FeedEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// FeedConn is the part of a websocket connection the hub writes to.
type FeedConn interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
	Close() error
}

var _ FeedConn = (*websocket.Conn)(nil)

// AdminHub fans metric samples and activity entries out to admin dashboards.
type AdminHub struct {
	logger *slog.Logger
	ch     chan FeedEvent

	mu      sync.Mutex
	clients map[FeedConn]struct{}
}

func NewAdminHub(logger *slog.Logger) *AdminHub {
	return &AdminHub{
		logger:  logger,
		ch:      make(chan FeedEvent, 64),
		clients: map[FeedConn]struct{}{},
	}
}

func (h *AdminHub) Run(ctx context.Context) {
	for {
		select {
		case event := <-h.ch:
			h.deliver(event)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *AdminHub) deliver(event FeedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug("admin feed client dropped", "error", err)
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *AdminHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

// Broadcast drops the event when the hub is saturated.
func (h *AdminHub) Broadcast(event FeedEvent) {
	select {
	case h.ch <- event:
	default:
		h.logger.Warn("admin feed saturated, event dropped", "type", event.Type)
	}
}

func (h *AdminHub) BroadcastMetrics(sample models.ServerMetricSample) {
	h.Broadcast(FeedEvent{Type: FeedMetrics, Data: sample})
}

func (h *AdminHub) BroadcastActivity(entry models.ActivityLog) {
	h.Broadcast(FeedEvent{Type: FeedActivity, Data: entry})
}

func (h *AdminHub) Add(conn FeedConn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *AdminHub) Remove(conn FeedConn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func (h *AdminHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
