package processing

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/lverhagen/agentlink/client/messages"
)

type outboundEnvelope struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	Message   json.RawMessage `json:"message"`
}

// ComposeUserMessage builds an outbound user-message payload in the
// session's vendor wire shape, ready to hand to the transport. The
// session must have been established by a full history so its vendor is
// known.
func (p *Processor) ComposeUserMessage(sessionID, text string) (json.RawMessage, error) {
	p.mu.Lock()
	state, ok := p.sessions[sessionID]
	var vendor messages.Vendor
	if ok {
		vendor = state.Vendor
	}
	p.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown session %q", ErrInvalidSessionID, sessionID)
	}
	if vendor == "" {
		return nil, fmt.Errorf("%w: session %q", ErrSessionNotEstablished, sessionID)
	}

	wire, err := ToWireFormat(messages.Message{
		ID:   uuid.NewString(),
		Role: messages.RoleUser,
		Text: text,
	}, vendor)
	if err != nil {
		return nil, err
	}
	return json.Marshal(outboundEnvelope{
		Type:      "user_message",
		SessionID: sessionID,
		Message:   wire,
	})
}

// ComposeToolResult builds an outbound result payload for a client-executed
// tool call, in the session's vendor wire shape.
func (p *Processor) ComposeToolResult(sessionID, toolCallID string, result json.RawMessage) (json.RawMessage, error) {
	p.mu.Lock()
	state, ok := p.sessions[sessionID]
	var vendor messages.Vendor
	if ok {
		vendor = state.Vendor
	}
	p.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown session %q", ErrInvalidSessionID, sessionID)
	}
	if vendor == "" {
		return nil, fmt.Errorf("%w: session %q", ErrSessionNotEstablished, sessionID)
	}

	wire, err := ToWireFormat(messages.Message{
		ID:   uuid.NewString(),
		Role: messages.RoleUser,
		Blocks: []messages.Block{{
			Type:       messages.BlockToolResult,
			ToolUseID:  toolCallID,
			ToolResult: result,
		}},
	}, vendor)
	if err != nil {
		return nil, err
	}
	return json.Marshal(outboundEnvelope{
		Type:      "tool_result",
		SessionID: sessionID,
		Message:   wire,
	})
}
