// Package messages holds the vendor-agnostic conversation message model.
//
// Wire shapes differ per vendor family; the subpackages anthropic and
// openai convert between this model and their respective wire forms.
package messages

import (
	"encoding/json"
	"fmt"
)

// Vendor names the upstream model family whose wire shape a session's
// messages are serialized into. It is a session-level property; individual
// messages never carry it.
type Vendor string

const (
	VendorAnthropic Vendor = "anthropic"
	VendorOpenAI    Vendor = "openai"
)

// ParseVendor maps a wire vendor tag onto the closed vendor set.
func ParseVendor(raw string) (Vendor, error) {
	switch Vendor(raw) {
	case VendorAnthropic:
		return VendorAnthropic, nil
	case VendorOpenAI:
		return VendorOpenAI, nil
	default:
		return "", fmt.Errorf("unsupported vendor %q", raw)
	}
}

// Role describes who a message is from.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleAssistantThought tags assistant reasoning surfaced as its own
	// message rather than inline content.
	RoleAssistantThought Role = "assistant (thought)"
)

// Message is one turn of conversation content. Content is either a plain
// string (Text, with Blocks nil) or an ordered sequence of typed blocks
// (Blocks, with Text empty). Messages are immutable once appended to a
// session; a full history replace is the only way to swap them out.
type Message struct {
	ID     string
	Role   Role
	Text   string
	Blocks []Block
}

// IsStructured reports whether the message carries block content rather
// than a plain string.
func (m Message) IsStructured() bool {
	return len(m.Blocks) > 0
}

// PlainText flattens the message to display text: the string content, or
// the concatenation of its text blocks.
func (m Message) PlainText() string {
	if !m.IsStructured() {
		return m.Text
	}
	text := ""
	for _, block := range m.Blocks {
		if block.Type == BlockText {
			text += block.Text
		}
	}
	return text
}

// BlockType discriminates message content blocks.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
	BlockImage      BlockType = "image"
)

// Block is one typed content block. Fields beyond Type are populated
// per-type: Text for text blocks, the ToolUse* fields for tool_use,
// ToolUseID/ToolResult for tool_result, Image for image blocks.
type Block struct {
	Type BlockType

	Text string

	ToolUseID    string
	ToolUseName  string
	ToolUseInput json.RawMessage

	ToolResult json.RawMessage

	Image *ImageSource
}

// ImageSource carries inline image content.
type ImageSource struct {
	MediaType string
	Data      string
}
