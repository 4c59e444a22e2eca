package events

import "encoding/json"

const (
	// KindHistory identifies an authoritative full message-list snapshot.
	KindHistory Kind = "history"
	// KindChatSessionChanged identifies a full session replace pushed by the
	// runtime outside of an explicit resync.
	KindChatSessionChanged Kind = "chat_session_changed"
	// KindHistoryDelta identifies an append-only message batch.
	KindHistoryDelta Kind = "history_delta"
	// KindChatSessionDeleted identifies explicit session teardown.
	KindChatSessionDeleted Kind = "chat_session_deleted"
)

// AgentConfiguration carries the tool permission patterns of the agent
// serving a session.
type AgentConfiguration struct {
	BlockedToolPatterns []string `json:"blocked_tool_patterns,omitempty"`
	AllowedToolPatterns []string `json:"allowed_tool_patterns,omitempty"`
}

// History is a full replace of a session's message list and vendor. It is
// the authoritative resync point after reconnection.
//
// Messages stay in their vendor wire shape until the session's vendor is
// known; the processor resolves them through the vendor adapter.
type History struct {
	Base
	SessionRef
	Vendor             string              `json:"vendor"`
	Messages           []json.RawMessage   `json:"messages"`
	AgentConfiguration *AgentConfiguration `json:"agent_configuration,omitempty"`
	Metadata           map[string]string   `json:"metadata,omitempty"`
}

// HistoryDelta appends messages to a session's existing list, never
// replacing it.
type HistoryDelta struct {
	Base
	SessionRef
	Messages []json.RawMessage `json:"messages"`
}

// ChatSessionDeleted tears down a session.
type ChatSessionDeleted struct {
	Base
	SessionRef
}
