// internal/adapter/events/nats.go

package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"sentilytics/internal/domain/analysis"
)

// Conn is the part of *nats.Conn used here
type Conn interface {
	Publish(subj string, data []byte) error
	Subscribe(subj string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// NATSPublisher publishes views on the event bus
type NATSPublisher struct {
	conn  Conn
	topic string
}

var (
	_ analysis.ViewPublisher = (*NATSPublisher)(nil)
	_ Stream                 = (*NATSPublisher)(nil)
)

// NewNATSPublisher creates a publisher rooted at topic
func NewNATSPublisher(conn Conn, topic string) *NATSPublisher {
	return &NATSPublisher{
		conn:  conn,
		topic: topic,
	}
}

// PublishView implements analysis.ViewPublisher
func (p *NATSPublisher) PublishView(_ context.Context, view analysis.View) error {
	data, err := encodeView(view)
	if err != nil {
		return err
	}

	subject := ViewSubject(p.topic, view.SessionID)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("error publishing to %s: %w", subject, err)
	}
	return nil
}

// SubscribeViews implements Stream
func (p *NATSPublisher) SubscribeViews(sessionID string, fn func(data []byte)) (func() error, error) {
	subject := ViewSubject(p.topic, sessionID)
	sub, err := p.conn.Subscribe(subject, func(msg *nats.Msg) {
		fn(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	return sub.Unsubscribe, nil
}
