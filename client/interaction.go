package processing

import "github.com/google/uuid"

// InteractionMarker is the terminal state of a closed interaction.
type InteractionMarker string

const (
	// MarkerCompleted: closed by a matching interaction(started=false).
	MarkerCompleted InteractionMarker = "completed"
	// MarkerCancelled: force-closed by a cancelled event; accumulated
	// content is incomplete.
	MarkerCancelled InteractionMarker = "cancelled"
	// MarkerInterrupted: closed during reconnection reconciliation; the
	// authoritative history superseded it.
	MarkerInterrupted InteractionMarker = "interrupted"
)

// interactionState accumulates one assistant-turn lifecycle. Fields stay
// exported for deep-copy into snapshots.
type interactionState struct {
	ID      string
	Open    bool
	Text    string
	Thought string

	// ToolCalls in arrival order; the session keeps an id index into the
	// same records.
	ToolCalls []*ToolCallRecord

	Marker InteractionMarker
	// Recovered marks the synthetic buffer that catches deltas arriving
	// with no open interaction.
	Recovered bool
}

func newInteraction(id string) *interactionState {
	return &interactionState{ID: id, Open: true}
}

func newRecoveryInteraction() *interactionState {
	return &interactionState{ID: uuid.NewString(), Open: true, Recovered: true}
}

// close marks the interaction terminal. Content accumulated so far is
// retained for audit regardless of the marker.
func (i *interactionState) close(marker InteractionMarker) {
	i.Open = false
	i.Marker = marker
}

// incomplete reports whether the accumulated content should be flagged as
// partial for display.
func (i *interactionState) incomplete() bool {
	return i.Marker == MarkerCancelled || i.Marker == MarkerInterrupted
}
