package events

import "time"

type Kind string

type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}

// SessionRef carries the session scoping fields shared by every
// session-scoped wire event, including subsession lineage.
type SessionRef struct {
	SessionID       string `json:"session_id"`
	Role            string `json:"role,omitempty"`
	ParentSessionID string `json:"parent_session_id,omitempty"`
	UserSessionID   string `json:"user_session_id,omitempty"`
}

func (r SessionRef) Session() string { return r.SessionID }

// SessionScoped is implemented by events that address a specific session.
type SessionScoped interface {
	Session() string
}
