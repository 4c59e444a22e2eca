package processing

import (
	"github.com/jinzhu/copier"

	"github.com/lverhagen/agentlink/client/messages"
	"github.com/lverhagen/agentlink/client/toolpolicy"
	"github.com/lverhagen/agentlink/client/tools"
)

// InteractionSnapshot is the read-only view of one assistant-turn
// lifecycle.
type InteractionSnapshot struct {
	ID        string
	Open      bool
	Text      string
	Thought   string
	ToolCalls []ToolCallRecord
	Marker    InteractionMarker
	// Incomplete flags content cut short by cancellation or resync; it is
	// retained for display but must be labeled as partial.
	Incomplete bool
	Recovered  bool
}

// SessionSnapshot is the read-only view of one session, emitted to
// observers after every applied event. Snapshots are deep copies; mutating
// one never touches live processor state.
type SessionSnapshot struct {
	SessionID string
	Vendor    messages.Vendor

	Messages []messages.Message

	OpenInteraction *InteractionSnapshot
	Interactions    []InteractionSnapshot
	RecoveryBuffer  *InteractionSnapshot

	ToolCatalog []tools.Tool
	AgentConfig *toolpolicy.AgentConfig

	AvatarID        string
	AvatarSessionID string
	Metadata        map[string]string

	Media []MediaArtifact

	TurnPhase   TurnPhase
	Subsessions []SubsessionFrame

	ParentSessionID string
	SubAgentType    string

	Synced bool
}

// ReadyForInput reports whether new user input should be offered. Only
// user_turn_start flips this on.
func (s *SessionSnapshot) ReadyForInput() bool {
	return s.TurnPhase == PhaseAwaitingUser
}

func snapshotInteraction(state *interactionState) *InteractionSnapshot {
	if state == nil {
		return nil
	}
	snapshot := &InteractionSnapshot{
		ID:         state.ID,
		Open:       state.Open,
		Text:       state.Text,
		Thought:    state.Thought,
		Marker:     state.Marker,
		Incomplete: state.incomplete(),
		Recovered:  state.Recovered,
	}
	for _, record := range state.ToolCalls {
		var copied ToolCallRecord
		if err := copier.CopyWithOption(&copied, record, copier.Option{DeepCopy: true}); err != nil {
			copied = *record
		}
		snapshot.ToolCalls = append(snapshot.ToolCalls, copied)
	}
	return snapshot
}

func snapshotSession(state *sessionState) *SessionSnapshot {
	if state == nil {
		return nil
	}

	snapshot := &SessionSnapshot{
		SessionID:       state.ID,
		Vendor:          state.Vendor,
		OpenInteraction: snapshotInteraction(state.Open),
		RecoveryBuffer:  snapshotInteraction(state.Recovery),
		ToolCatalog:     state.Catalog.Tools(),
		AvatarID:        state.AvatarID,
		AvatarSessionID: state.AvatarSessionID,
		TurnPhase:       state.Phase,
		ParentSessionID: state.ParentSessionID,
		SubAgentType:    state.SubAgentType,
		Synced:          state.Synced,
	}

	if err := copier.CopyWithOption(&snapshot.Messages, &state.Messages, copier.Option{DeepCopy: true}); err != nil {
		snapshot.Messages = append([]messages.Message(nil), state.Messages...)
	}
	if err := copier.CopyWithOption(&snapshot.Media, &state.Media, copier.Option{DeepCopy: true}); err != nil {
		snapshot.Media = append([]MediaArtifact(nil), state.Media...)
	}
	if err := copier.CopyWithOption(&snapshot.Metadata, &state.Metadata, copier.Option{DeepCopy: true}); err != nil {
		snapshot.Metadata = map[string]string{}
	}
	snapshot.Subsessions = append([]SubsessionFrame(nil), state.Subsessions...)

	for _, interaction := range state.Log {
		snapshot.Interactions = append(snapshot.Interactions, *snapshotInteraction(interaction))
	}

	if state.AgentConfig != nil {
		config := toolpolicy.AgentConfig{
			BlockedToolPatterns: append([]string(nil), state.AgentConfig.BlockedToolPatterns...),
			AllowedToolPatterns: append([]string(nil), state.AgentConfig.AllowedToolPatterns...),
		}
		snapshot.AgentConfig = &config
	}

	return snapshot
}
