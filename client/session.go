package processing

import (
	"github.com/lverhagen/agentlink/client/mediatrust"
	"github.com/lverhagen/agentlink/client/messages"
	"github.com/lverhagen/agentlink/client/toolpolicy"
	"github.com/lverhagen/agentlink/client/tools"
)

// MediaArtifact is one classified render-media artifact retained on a
// session.
type MediaArtifact struct {
	ID             string
	ContentType    string
	Content        string
	URL            string
	SentByClass    string
	SentByFunction string
	Trust          mediatrust.Trust
	Warnings       []string
}

// sessionState is the live state of one session. It is owned exclusively
// by the processor; observers only ever see deep-copied snapshots.
type sessionState struct {
	ID     string
	Vendor messages.Vendor

	Messages []messages.Message

	Open     *interactionState
	Log      []*interactionState
	Recovery *interactionState

	toolCallsByID map[string]*ToolCallRecord

	Catalog     *tools.Catalog
	AgentConfig *toolpolicy.AgentConfig

	AvatarID        string
	AvatarSessionID string
	Metadata        map[string]string

	Media []MediaArtifact

	Phase       TurnPhase
	Subsessions []SubsessionFrame

	ParentSessionID string
	SubAgentType    string

	// Synced marks that at least one full history has been applied; until
	// then the session is provisional and delta events are reported as
	// premature.
	Synced bool
	// AwaitingResync marks that a reconnect happened and the next full
	// history is authoritative for this session.
	AwaitingResync bool
}

func newSessionState(id string) *sessionState {
	return &sessionState{
		ID:            id,
		toolCallsByID: map[string]*ToolCallRecord{},
		Catalog:       tools.NewCatalog(),
		Metadata:      map[string]string{},
	}
}

// accumulator returns the interaction that should receive delta content:
// the open one, or the recovery buffer (created on demand) when none is
// open.
func (s *sessionState) accumulator() (interaction *interactionState, recovered bool) {
	if s.Open != nil {
		return s.Open, false
	}
	if s.Recovery == nil {
		s.Recovery = newRecoveryInteraction()
	}
	return s.Recovery, true
}

// toolCall finds or creates the record for a tool call id, attaching new
// records to the delta accumulator in arrival order.
func (s *sessionState) toolCall(id string) (record *ToolCallRecord, created bool) {
	if record, ok := s.toolCallsByID[id]; ok {
		return record, false
	}
	record = &ToolCallRecord{ID: id}
	s.toolCallsByID[id] = record
	interaction, _ := s.accumulator()
	interaction.ToolCalls = append(interaction.ToolCalls, record)
	return record, true
}

// closeOpenInteraction closes the open interaction (if any) and moves it
// to the audit log. Completed interactions synthesize conversation
// messages from their accumulated content.
func (s *sessionState) closeOpenInteraction(marker InteractionMarker) *interactionState {
	open := s.Open
	if open == nil {
		return nil
	}
	open.close(marker)
	s.Open = nil
	s.Log = append(s.Log, open)

	if marker == MarkerCompleted {
		if open.Thought != "" {
			s.Messages = append(s.Messages, messages.Message{
				Role: messages.RoleAssistantThought,
				Text: open.Thought,
			})
		}
		if open.Text != "" {
			s.Messages = append(s.Messages, messages.Message{
				Role: messages.RoleAssistant,
				Text: open.Text,
			})
		}
	}
	return open
}

// dropDeltaState discards interaction and tool-call state accumulated
// purely from deltas. Messages committed by prior full history, the tool
// catalog, agent configuration, and avatar binding all survive.
func (s *sessionState) dropDeltaState() {
	if s.Open != nil {
		s.closeOpenInteraction(MarkerInterrupted)
	}
	s.Recovery = nil
	s.toolCallsByID = map[string]*ToolCallRecord{}
}
