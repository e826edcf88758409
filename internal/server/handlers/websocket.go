// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"sentilytics/internal/adapter/events"
	"sentilytics/internal/service/listening"
	"sentilytics/pkg/logger"
)

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 4096,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// viewClient streams the views of one session to one WebSocket peer
type viewClient struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	sessionID string

	// mu guards lastVersion, the newest view version queued so far
	mu          sync.Mutex
	lastVersion uint64

	config    WebSocketConfig
	log       logger.Logger
}

// ViewWebSocketHandler streams every re-derived view of a session
func ViewWebSocketHandler(sessions *listening.Manager, stream events.Stream, log logger.Logger) http.HandlerFunc {
	log = log.WithComponent("ViewWebSocket")

	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "id")
		s, err := sessions.Get(sessionID)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Session not found")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("Failed to upgrade to WebSocket", "error", err)
			return
		}

		client := &viewClient{
			conn:      conn,
			send:      make(chan []byte, 64),
			done:      make(chan struct{}),
			sessionID: sessionID,
			config:    DefaultWebSocketConfig(),
			log:       log.With("session_id", sessionID),
		}

		unsubscribe, err := stream.SubscribeViews(sessionID, client.deliver)
		if err != nil {
			client.log.Error("Failed to subscribe to views", "error", err)
			client.close()
			return
		}

		go client.writePump()
		go func() {
			client.readPump()
			if err := unsubscribe(); err != nil {
				client.log.Warn("Failed to unsubscribe", "error", err)
			}
		}()

		// Subscribed first, so nothing is missed; offer drops the welcome if a
		// newer view already arrived.
		view := s.View()
		welcome, _ := json.Marshal(events.Message{
			Type:      events.TypeWelcome,
			SessionID: sessionID,
			Version:   view.Version,
			View:      &view,
			Time:      time.Now().UTC(),
		})
		client.offer(view.Version, welcome)

		client.log.Info("View stream connected")
	}
}

// deliver queues a published view message
func (c *viewClient) deliver(data []byte) {
	var header struct {
		Version uint64 `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		c.log.Warn("Dropping malformed view message", "error", err)
		return
	}
	c.offer(header.Version, data)
}

// offer queues data unless a view at least as new was queued before.
// Unversioned messages always pass.
func (c *viewClient) offer(version uint64, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if version != 0 {
		if version <= c.lastVersion {
			return
		}
		c.lastVersion = version
	}
	c.enqueue(data)
}

// enqueue drops the message when the peer is too slow to keep up
func (c *viewClient) enqueue(data []byte) {
	select {
	case <-c.done:
	case c.send <- data:
	default:
		c.log.Warn("Dropping view for slow client")
	}
}

// readPump consumes control frames until the peer goes away
func (c *viewClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("WebSocket error", "error", err)
			}
			return
		}
	}
}

// writePump writes queued views and keeps the connection alive
func (c *viewClient) writePump() {
	ticker := time.NewTicker(c.config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *viewClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
		c.log.Info("View stream closed")
	})
}
