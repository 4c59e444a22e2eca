package events

const (
	// KindUserTurnStart identifies readiness for new user input.
	KindUserTurnStart Kind = "user_turn_start"
	// KindUserTurnEnd identifies committed user input awaiting the assistant.
	KindUserTurnEnd Kind = "user_turn_end"
	// KindSubsessionStarted identifies a nested session frame push.
	KindSubsessionStarted Kind = "subsession_started"
	// KindSubsessionEnded identifies a nested session frame pop.
	KindSubsessionEnded Kind = "subsession_ended"
)

// UserTurnStart is the authoritative signal that the system is ready for
// new user input. No input should be offered to the user before it.
type UserTurnStart struct {
	Base
	SessionRef
}

// UserTurnEnd marks the user's input as committed for this turn.
type UserTurnEnd struct {
	Base
	SessionRef
}

// SubsessionStarted pushes a nested session frame. SessionID names the new
// child session; lineage fields point back at the parent.
type SubsessionStarted struct {
	Base
	SessionRef
	SubAgentType string `json:"sub_agent_type,omitempty"`
}

// SubsessionEnded pops the nested session frame for SessionID.
type SubsessionEnded struct {
	Base
	SessionRef
}
