package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"

	"sentilytics/internal/domain/analysis"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	f.subject = subj
	f.data = data
	return f.err
}

func (f *fakeConn) Subscribe(string, nats.MsgHandler) (*nats.Subscription, error) {
	return nil, errors.New("not supported")
}

func TestViewSubject(t *testing.T) {
	t.Parallel()

	if got := ViewSubject("sentilytics", "abc"); got != "sentilytics.session.abc.view" {
		t.Errorf("subject = %q", got)
	}
}

func TestNATSPublisherPublishView(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	p := NewNATSPublisher(conn, "sentilytics")

	view := analysis.View{SessionID: "abc", Query: "pixel", TopKeyword: "camera"}
	if err := p.PublishView(context.Background(), view); err != nil {
		t.Fatalf("PublishView: %v", err)
	}
	if conn.subject != "sentilytics.session.abc.view" {
		t.Errorf("subject = %q", conn.subject)
	}

	var msg Message
	if err := json.Unmarshal(conn.data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != TypeView || msg.SessionID != "abc" || msg.View == nil || msg.View.TopKeyword != "camera" {
		t.Errorf("message = %+v", msg)
	}
}

func TestNATSPublisherErrors(t *testing.T) {
	t.Parallel()

	p := NewNATSPublisher(&fakeConn{err: nats.ErrConnectionClosed}, "t")
	if err := p.PublishView(context.Background(), analysis.View{SessionID: "x"}); !errors.Is(err, nats.ErrConnectionClosed) {
		t.Errorf("err = %v", err)
	}
	if _, err := p.SubscribeViews("x", func([]byte) {}); err == nil {
		t.Error("expected subscribe error")
	}
}

func TestHub(t *testing.T) {
	t.Parallel()

	h := NewHub()
	var got [][]byte
	unsubscribe, err := h.SubscribeViews("abc", func(data []byte) { got = append(got, data) })
	if err != nil {
		t.Fatalf("SubscribeViews: %v", err)
	}

	_ = h.PublishView(context.Background(), analysis.View{SessionID: "abc"})
	_ = h.PublishView(context.Background(), analysis.View{SessionID: "other"})
	if len(got) != 1 {
		t.Fatalf("received %d messages, want 1", len(got))
	}

	if err := unsubscribe(); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	_ = h.PublishView(context.Background(), analysis.View{SessionID: "abc"})
	if len(got) != 1 {
		t.Errorf("received after unsubscribe")
	}
}
