package processing

// TurnPhase tracks whose turn it is within one session.
type TurnPhase string

const (
	// PhaseAwaitingUser: the system is ready for new user input. Entered
	// only on user_turn_start, which is the authoritative readiness
	// signal.
	PhaseAwaitingUser TurnPhase = "awaiting_user"
	// PhaseAwaitingAssistant: user input committed, waiting for the
	// assistant to open an interaction.
	PhaseAwaitingAssistant TurnPhase = "awaiting_assistant"
	// PhaseAssistantTurn: an interaction opened; remains until the next
	// user_turn_start even after the interaction closes.
	PhaseAssistantTurn TurnPhase = "assistant_turn"
)

// SubsessionFrame is one entry in a session's stack of nested
// subsessions.
type SubsessionFrame struct {
	SessionID       string
	ParentSessionID string
	SubAgentType    string
}

// pushFrame records a nested subsession on its parent.
func (s *sessionState) pushFrame(frame SubsessionFrame) {
	s.Subsessions = append(s.Subsessions, frame)
}

// popFrame removes the frame for sessionID. Only an explicit
// subsession_ended pops; cancellation never does, so in-flight nested
// state survives a partial cancel.
func (s *sessionState) popFrame(sessionID string) bool {
	for i := len(s.Subsessions) - 1; i >= 0; i-- {
		if s.Subsessions[i].SessionID == sessionID {
			s.Subsessions = append(s.Subsessions[:i], s.Subsessions[i+1:]...)
			return true
		}
	}
	return false
}
