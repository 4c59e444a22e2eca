// Package transport carries the wire event feed over a websocket
// connection and hands ordered, parsed events to the caller.
//
// The feed does not decide reconnect timing; backoff policy belongs to
// the caller, which invokes Redial when it wants a new connection. The
// feed's job is delivering events in arrival order plus the lifecycle
// signals the processor's reconciliation depends on.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/codes"

	"github.com/lverhagen/agentlink/client/events"
)

// Feed is one logical event stream, surviving redials.
type Feed struct {
	url    string
	header http.Header
	dialer *websocket.Dialer

	onEvent func(events.Event)
	onError func(error)

	connMu        sync.Mutex
	conn          *websocket.Conn
	everConnected bool

	closeOnce sync.Once
	closed    chan struct{}
}

// Dial opens the feed and starts delivering events. The first successful
// connection emits a connected signal; later Redial calls emit
// reconnected.
func Dial(ctx context.Context, url string, opts ...Option) (*Feed, error) {
	feed := &Feed{
		url:     url,
		header:  http.Header{},
		dialer:  websocket.DefaultDialer,
		onEvent: func(events.Event) {},
		onError: func(error) {},
		closed:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(feed)
	}

	if err := feed.connect(ctx); err != nil {
		return nil, err
	}
	return feed, nil
}

// Redial re-establishes the connection after a disconnect and emits the
// reconnected signal that makes the next full history authoritative.
func (f *Feed) Redial(ctx context.Context) error {
	return f.connect(ctx)
}

func (f *Feed) connect(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "connect event feed")
	defer span.End()

	conn, response, err := f.dialer.DialContext(ctx, f.url, f.header)
	if err != nil {
		err = fmt.Errorf("failed to open socket connection to event feed: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if response != nil && response.Body != nil {
		response.Body.Close()
	}

	f.connMu.Lock()
	f.conn = conn
	first := !f.everConnected
	f.everConnected = true
	f.connMu.Unlock()

	if first {
		f.onEvent(events.NewConnected())
	} else {
		f.onEvent(events.NewReconnected())
	}

	go f.readAndDeliver(ctx, conn)
	return nil
}

func (f *Feed) readAndDeliver(ctx context.Context, conn *websocket.Conn) {
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			f.connMu.Lock()
			if f.conn == conn {
				f.conn = nil
			}
			f.connMu.Unlock()
			conn.Close()

			select {
			case <-f.closed:
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					logger.Warn("event feed read failed", "error", err)
				}
				f.onEvent(events.NewDisconnected())
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		event, err := events.Parse(msg)
		if err != nil {
			logger.Warn("failed to parse feed event", "error", err)
			f.onError(err)
			continue
		}
		f.onEvent(event)
	}
}

// Send writes one outbound payload.
func (f *Feed) Send(payload []byte) error {
	f.connMu.Lock()
	defer f.connMu.Unlock()

	if f.conn == nil {
		return fmt.Errorf("event feed is not connected")
	}
	if err := f.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("failed to write to event feed: %w", err)
	}
	return nil
}

// Close shuts the feed down for good; no disconnected signal is emitted
// for a deliberate close.
func (f *Feed) Close() error {
	var err error
	f.closeOnce.Do(func() {
		close(f.closed)
		f.connMu.Lock()
		conn := f.conn
		f.conn = nil
		f.connMu.Unlock()

		if conn != nil {
			deadline := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteMessage(websocket.CloseMessage, deadline)
			err = conn.Close()
		}
	})
	return err
}
