package events

import "encoding/json"

const (
	// KindToolSelectDelta identifies tool calls chosen by the agent.
	KindToolSelectDelta Kind = "tool_select_delta"
	// KindToolCall identifies tool execution start or completion.
	KindToolCall Kind = "tool_call"
	// KindToolCatalog identifies replacement of the advertised tool set.
	KindToolCatalog Kind = "tool_catalog"
)

// ToolCallRef names one tool invocation on the wire.
type ToolCallRef struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input,omitempty"`
}

// ToolResult carries the output of one completed tool invocation.
type ToolResult struct {
	ID      string          `json:"id"`
	Content json.RawMessage `json:"content,omitempty"`
}

// ToolSelectDelta announces tool calls the agent has selected but not yet
// started executing.
type ToolSelectDelta struct {
	Base
	SessionRef
	ToolCalls []ToolCallRef `json:"tool_calls"`
}

// ToolCall marks execution start (Active=true) or completion
// (Active=false) of previously selected tool calls. Completions carry the
// matching results.
type ToolCall struct {
	Base
	SessionRef
	Active      bool          `json:"active"`
	ToolCalls   []ToolCallRef `json:"tool_calls"`
	ToolResults []ToolResult  `json:"tool_results,omitempty"`
}

// ToolDescriptor describes one tool advertised by the runtime.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Schemas     json.RawMessage `json:"schemas,omitempty"`
}

// ToolCatalog replaces the set of tools advertised for a session.
type ToolCatalog struct {
	Base
	SessionRef
	Tools []ToolDescriptor `json:"tools"`
}
