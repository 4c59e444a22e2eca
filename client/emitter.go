package processing

import (
	"context"
	"sync"

	"github.com/lverhagen/agentlink/client/events"
)

// Notification is delivered to observers after every applied event.
type Notification struct {
	Kind      events.Kind
	SessionID string
	// Session is the post-event snapshot; nil for events not scoped to a
	// session and for teardown of an unknown session.
	Session *SessionSnapshot
	// SessionDeleted marks the terminal notification for a session.
	SessionDeleted bool
	Warnings       []Warning
	// Err carries the recoverable dispatch error, if the event raised one.
	Err error
}

// notifier fans notifications out to subscribers without ever blocking
// dispatch: each subscriber gets a buffered channel and a delivery
// goroutine, and a full buffer drops the notification rather than
// stalling ingestion.
type notifier struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]chan Notification
	buffer      int
}

func newNotifier(buffer int) *notifier {
	return &notifier{subscribers: map[int]chan Notification{}, buffer: buffer}
}

func (n *notifier) subscribe(fn func(Notification)) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	ch := make(chan Notification, n.buffer)
	n.subscribers[id] = ch
	n.mu.Unlock()

	go func() {
		for notification := range ch {
			fn(notification)
		}
	}()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if ch, ok := n.subscribers[id]; ok {
			delete(n.subscribers, id)
			close(ch)
		}
	}
}

func (n *notifier) publish(notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subscribers {
		select {
		case ch <- notification:
		default:
			droppedNotifications.Add(context.Background(), 1)
		}
	}
}

func (n *notifier) close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, ch := range n.subscribers {
		delete(n.subscribers, id)
		close(ch)
	}
}
