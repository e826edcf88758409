// internal/adapter/events/events.go

// Package events distributes re-derived views to live subscribers
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"sentilytics/internal/domain/analysis"
)

// Message types
const (
	TypeWelcome = "welcome"
	TypeView    = "view"
)

// Message is the envelope sent to view subscribers
type Message struct {
	Type      string         `json:"type"`
	SessionID string         `json:"session_id"`
	Version   uint64         `json:"version,omitempty"`
	View      *analysis.View `json:"view,omitempty"`
	Time      time.Time      `json:"time"`
}

// Stream delivers the encoded view messages of one session to fn until the
// returned function is called
type Stream interface {
	SubscribeViews(sessionID string, fn func(data []byte)) (unsubscribe func() error, err error)
}

// ViewSubject returns the subject views of a session are published on
func ViewSubject(topic, sessionID string) string {
	return fmt.Sprintf("%s.session.%s.view", topic, sessionID)
}

func encodeView(view analysis.View) ([]byte, error) {
	data, err := json.Marshal(Message{
		Type:      TypeView,
		SessionID: view.SessionID,
		Version:   view.Version,
		View:      &view,
		Time:      time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("error marshaling view: %w", err)
	}
	return data, nil
}
