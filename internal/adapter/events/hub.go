package events

import (
	"context"
	"sync"

	"sentilytics/internal/domain/analysis"
)

// Hub is an in-process Stream used when no NATS server is configured
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func([]byte)
}

var (
	_ analysis.ViewPublisher = (*Hub)(nil)
	_ Stream                 = (*Hub)(nil)
)

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[int]func([]byte)),
	}
}

// PublishView implements analysis.ViewPublisher
func (h *Hub) PublishView(_ context.Context, view analysis.View) error {
	data, err := encodeView(view)
	if err != nil {
		return err
	}

	h.mu.RLock()
	handlers := make([]func([]byte), 0, len(h.subs[view.SessionID]))
	for _, fn := range h.subs[view.SessionID] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(data)
	}
	return nil
}

// SubscribeViews implements Stream
func (h *Hub) SubscribeViews(sessionID string, fn func(data []byte)) (func() error, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[int]func([]byte))
	}
	h.subs[sessionID][id] = fn

	return func() error {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[sessionID], id)
		if len(h.subs[sessionID]) == 0 {
			delete(h.subs, sessionID)
		}
		return nil
	}, nil
}
