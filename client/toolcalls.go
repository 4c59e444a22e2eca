package processing

import (
	"encoding/json"
	"fmt"
)

// ToolCallStatus is the lifecycle state of one tool invocation.
type ToolCallStatus string

const (
	// ToolCallSelected: chosen by the agent, not yet executing.
	ToolCallSelected ToolCallStatus = "selected"
	// ToolCallActive: executing.
	ToolCallActive ToolCallStatus = "active"
	// ToolCallCompleted: finished with a result attached.
	ToolCallCompleted ToolCallStatus = "completed"
	// ToolCallCompletedNoResult: finished, but the completion event carried
	// no result. Kept distinct so the omission stays visible.
	ToolCallCompletedNoResult ToolCallStatus = "completed-no-result"
)

// ToolCallRecord is one tool invocation tracked through its lifecycle.
type ToolCallRecord struct {
	ID     string
	Name   string
	Input  json.RawMessage
	Status ToolCallStatus
	Result json.RawMessage
}

// advance applies a lifecycle transition. The only valid order is
// selected -> active -> completed; an out-of-order transition is
// reported through the returned warning. Invalid completions still apply
// so results are never dropped; other invalid transitions keep the prior
// state.
func (r *ToolCallRecord) advance(next ToolCallStatus) *Warning {
	valid := false
	switch next {
	case ToolCallSelected:
		valid = r.Status == ""
	case ToolCallActive:
		valid = r.Status == ToolCallSelected
	case ToolCallCompleted, ToolCallCompletedNoResult:
		valid = r.Status == ToolCallActive
	}

	previous := r.Status
	if valid || next == ToolCallCompleted || next == ToolCallCompletedNoResult {
		r.Status = next
	}
	if valid {
		return nil
	}
	return &Warning{
		Code:    WarningInvalidToolTransition,
		Message: fmt.Sprintf("tool call %q moved %s -> %s", r.ID, previous, next),
	}
}
