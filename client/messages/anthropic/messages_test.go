package anthropic

import (
	"encoding/json"
	"testing"

	"github.com/lverhagen/agentlink/client/messages"
)

func TestRoundTripPlainText(t *testing.T) {
	original := messages.Message{Role: messages.RoleUser, Text: "hello there"}

	wire, err := ToWire(original)
	if err != nil {
		t.Fatalf("to wire failed: %v", err)
	}
	restored, err := FromWire(wire)
	if err != nil {
		t.Fatalf("from wire failed: %v", err)
	}

	if restored.Role != original.Role {
		t.Fatalf("expected role %q, got %q", original.Role, restored.Role)
	}
	if restored.Text != original.Text {
		t.Fatalf("expected text %q, got %q", original.Text, restored.Text)
	}
	if restored.IsStructured() {
		t.Fatalf("expected plain text message, got blocks: %+v", restored.Blocks)
	}
}

func TestRoundTripStructuredContentPreservesOrderAndText(t *testing.T) {
	original := messages.Message{
		Role: messages.RoleAssistant,
		Blocks: []messages.Block{
			{Type: messages.BlockText, Text: "let me check"},
			{
				Type:         messages.BlockToolUse,
				ToolUseID:    "call-1",
				ToolUseName:  "search",
				ToolUseInput: json.RawMessage(`{"query":"weather"}`),
			},
			{
				Type:       messages.BlockToolResult,
				ToolUseID:  "call-1",
				ToolResult: json.RawMessage(`{"summary":"sunny"}`),
			},
			{Type: messages.BlockText, Text: "it is sunny"},
		},
	}

	wire, err := ToWire(original)
	if err != nil {
		t.Fatalf("to wire failed: %v", err)
	}
	restored, err := FromWire(wire)
	if err != nil {
		t.Fatalf("from wire failed: %v", err)
	}

	if restored.Role != original.Role {
		t.Fatalf("expected role %q, got %q", original.Role, restored.Role)
	}
	if len(restored.Blocks) != len(original.Blocks) {
		t.Fatalf("expected %d blocks, got %d", len(original.Blocks), len(restored.Blocks))
	}
	for i, want := range original.Blocks {
		got := restored.Blocks[i]
		if got.Type != want.Type {
			t.Fatalf("block %d: expected type %q, got %q", i, want.Type, got.Type)
		}
		if got.Text != want.Text {
			t.Fatalf("block %d: expected text %q, got %q", i, want.Text, got.Text)
		}
		if got.ToolUseID != want.ToolUseID || got.ToolUseName != want.ToolUseName {
			t.Fatalf("block %d: tool identity mismatch: %+v", i, got)
		}
	}
	if restored.PlainText() != original.PlainText() {
		t.Fatalf("expected plain text %q, got %q", original.PlainText(), restored.PlainText())
	}
}

func TestRoundTripImageBlock(t *testing.T) {
	original := messages.Message{
		Role: messages.RoleUser,
		Blocks: []messages.Block{
			{Type: messages.BlockImage, Image: &messages.ImageSource{MediaType: "image/png", Data: "aGVsbG8="}},
		},
	}

	wire, err := ToWire(original)
	if err != nil {
		t.Fatalf("to wire failed: %v", err)
	}
	restored, err := FromWire(wire)
	if err != nil {
		t.Fatalf("from wire failed: %v", err)
	}

	if len(restored.Blocks) != 1 || restored.Blocks[0].Image == nil {
		t.Fatalf("expected one image block, got %+v", restored.Blocks)
	}
	image := restored.Blocks[0].Image
	if image.MediaType != "image/png" || image.Data != "aGVsbG8=" {
		t.Fatalf("unexpected image source: %+v", image)
	}
}

func TestFromWireAcceptsThoughtRole(t *testing.T) {
	restored, err := FromWire(json.RawMessage(`{"role":"assistant (thought)","content":"pondering"}`))
	if err != nil {
		t.Fatalf("from wire failed: %v", err)
	}
	if restored.Role != messages.RoleAssistantThought {
		t.Fatalf("expected thought role, got %q", restored.Role)
	}
}
