package transport

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/lverhagen/agentlink/client/events"
)

type Option func(*Feed)

// WithAuthToken sends a bearer token on the upgrade request.
func WithAuthToken(token string) Option {
	return func(f *Feed) {
		f.header.Set("Authorization", "Bearer "+token)
	}
}

// WithHeader adds an upgrade request header.
func WithHeader(key, value string) Option {
	return func(f *Feed) {
		f.header.Set(key, value)
	}
}

// WithHeaderMap merges a full header set into the upgrade request.
func WithHeaderMap(header http.Header) Option {
	return func(f *Feed) {
		for key, values := range header {
			for _, value := range values {
				f.header.Add(key, value)
			}
		}
	}
}

// WithEventCallback sets the consumer for parsed events and lifecycle
// signals. Events are delivered in arrival order from a single reader
// goroutine, so the callback may dispatch into the processor directly.
func WithEventCallback(callback func(events.Event)) Option {
	return func(f *Feed) {
		if callback != nil {
			f.onEvent = callback
		}
	}
}

// WithErrorCallback sets the consumer for malformed frames. The feed
// keeps reading after reporting one.
func WithErrorCallback(callback func(error)) Option {
	return func(f *Feed) {
		if callback != nil {
			f.onError = callback
		}
	}
}

// WithDialer overrides the websocket dialer.
func WithDialer(dialer *websocket.Dialer) Option {
	return func(f *Feed) {
		if dialer != nil {
			f.dialer = dialer
		}
	}
}
