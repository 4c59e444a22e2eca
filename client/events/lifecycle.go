package events

const (
	// KindConnected identifies the first successful transport connection.
	KindConnected Kind = "connected"
	// KindReconnected identifies a re-established transport connection.
	KindReconnected Kind = "reconnected"
	// KindDisconnected identifies loss of the transport connection.
	KindDisconnected Kind = "disconnected"
	// KindAvatarConnected identifies avatar/voice binding for a session.
	KindAvatarConnected Kind = "avatar_connected"
)

// Connected marks the first successful transport connection.
type Connected struct{ Base }

// NewConnected creates a connected lifecycle signal.
func NewConnected() Connected {
	return Connected{Base: NewBase(KindConnected)}
}

// Reconnected marks a re-established transport connection. The next full
// history per known session is authoritative after this signal.
type Reconnected struct{ Base }

// NewReconnected creates a reconnected lifecycle signal.
func NewReconnected() Reconnected {
	return Reconnected{Base: NewBase(KindReconnected)}
}

// Disconnected marks loss of the transport connection.
type Disconnected struct{ Base }

// NewDisconnected creates a disconnected lifecycle signal.
func NewDisconnected() Disconnected {
	return Disconnected{Base: NewBase(KindDisconnected)}
}

// AvatarConnected binds an avatar and its media session to a chat session.
type AvatarConnected struct {
	Base
	SessionRef
	AvatarID        string `json:"avatar_id"`
	AvatarSessionID string `json:"avatar_session_id,omitempty"`
}
