// Package feed consumes the backend's live-update push channel: a single
// WebSocket endpoint broadcasting events for all conversations. The channel is
// best-effort; malformed payloads are dropped, and a transport error ends the
// subscription without reconnecting (the caller re-subscribes if it wants to).
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/inboxkit/inboxkit/internal/api"
)

// Event is the wire frame pushed by the backend.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EventMessageCreated is the only event type the toolkit acts on.
const EventMessageCreated = "message_created"

// Subscriber dials the live-update feed.
type Subscriber struct {
	URL    string
	Dialer *websocket.Dialer
}

// New builds a subscriber for the given ws(s):// URL.
func New(wsURL string) *Subscriber {
	return &Subscriber{URL: wsURL, Dialer: websocket.DefaultDialer}
}

// Subscribe opens one connection and delivers decoded messages to handler, in
// transport order, one at a time. The handler runs on the read goroutine, so
// each event is processed to completion before the next is read.
func (s *Subscriber) Subscribe(ctx context.Context, handler func(api.Message)) (*Subscription, error) {
	conn, resp, err := s.Dialer.DialContext(ctx, s.URL, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, err
	}

	sub := &Subscription{conn: conn, done: make(chan struct{})}
	go sub.readLoop(handler)
	return sub, nil
}

// Subscription is one open feed connection.
type Subscription struct {
	conn      *websocket.Conn
	closeOnce sync.Once
	closed    bool

	mu   sync.Mutex
	err  error
	done chan struct{}
}

func (sub *Subscription) readLoop(handler func(api.Message)) {
	defer close(sub.done)
	for {
		_, data, err := sub.conn.ReadMessage()
		if err != nil {
			sub.mu.Lock()
			if !sub.closed {
				sub.err = err
			}
			sub.mu.Unlock()
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			slog.Debug("feed: dropping malformed frame", "error", err)
			continue
		}
		if ev.Type != EventMessageCreated {
			continue
		}
		var msg api.Message
		if err := json.Unmarshal(ev.Data, &msg); err != nil {
			slog.Debug("feed: dropping malformed message payload", "error", err)
			continue
		}
		handler(msg)
	}
}

// Close tears down the connection. Idempotent.
func (sub *Subscription) Close() error {
	sub.closeOnce.Do(func() {
		sub.mu.Lock()
		sub.closed = true
		sub.mu.Unlock()
		sub.conn.Close()
	})
	return nil
}

// Done is closed when the read loop exits, whether by Close or by a transport
// failure.
func (sub *Subscription) Done() <-chan struct{} { return sub.done }

// Err reports the transport error that ended the subscription, or nil after a
// deliberate Close. Feed failures are non-fatal: thread state stays usable,
// just without live updates.
func (sub *Subscription) Err() error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.err
}
