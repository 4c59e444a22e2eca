package events

const (
	// KindTextDelta identifies a streamed assistant text increment.
	KindTextDelta Kind = "text_delta"
	// KindThoughtDelta identifies a streamed assistant reasoning increment.
	KindThoughtDelta Kind = "thought_delta"
	// KindInteraction identifies an assistant-turn open/close boundary.
	KindInteraction Kind = "interaction"
	// KindCancelled identifies a forced close of the open interaction.
	KindCancelled Kind = "cancelled"
)

// TextDelta carries a streamed assistant text increment. Valid only while
// an interaction is open; content is appended in arrival order.
type TextDelta struct {
	Base
	SessionRef
	Content string `json:"content"`
}

// ThoughtDelta carries a streamed assistant reasoning increment.
type ThoughtDelta struct {
	Base
	SessionRef
	Content string `json:"content"`
}

// Interaction opens (Started=true) or closes (Started=false) one
// assistant-turn lifecycle.
type Interaction struct {
	Base
	SessionRef
	ID      string `json:"id"`
	Started bool   `json:"started"`
}

// Cancelled force-closes the currently open interaction. Partially
// accumulated text and thought are retained but flagged incomplete.
type Cancelled struct {
	Base
	SessionRef
}
