// Package openai converts between the vendor-agnostic message model and
// the openai-family wire shape, where structured content is carried as
// string-coerced JSON.
package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lverhagen/agentlink/client/messages"
)

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireItem struct {
	Type string `json:"type"`

	Text string `json:"text,omitempty"`

	CallID    string `json:"call_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	Output    string `json:"output,omitempty"`

	ImageURL string `json:"image_url,omitempty"`
}

const (
	itemTypeText               = "text"
	itemTypeFunctionCall       = "function_call"
	itemTypeFunctionCallOutput = "function_call_output"
	itemTypeImage              = "image_url"
)

// ToWire serializes a message into the openai wire shape. Structured
// content becomes a JSON-encoded item array in the content string; plain
// text passes through untouched.
func ToWire(m messages.Message) (json.RawMessage, error) {
	wire := wireMessage{Role: string(m.Role), Content: m.Text}

	if m.IsStructured() {
		items := make([]wireItem, 0, len(m.Blocks))
		for _, block := range m.Blocks {
			item, err := toWireItem(block)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		coerced, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("failed to coerce content blocks: %w", err)
		}
		wire.Content = string(coerced)
	}

	return json.Marshal(wire)
}

func toWireItem(block messages.Block) (wireItem, error) {
	switch block.Type {
	case messages.BlockText:
		return wireItem{Type: itemTypeText, Text: block.Text}, nil
	case messages.BlockToolUse:
		return wireItem{
			Type:      itemTypeFunctionCall,
			CallID:    block.ToolUseID,
			Name:      block.ToolUseName,
			Arguments: string(block.ToolUseInput),
		}, nil
	case messages.BlockToolResult:
		return wireItem{
			Type:   itemTypeFunctionCallOutput,
			CallID: block.ToolUseID,
			Output: string(block.ToolResult),
		}, nil
	case messages.BlockImage:
		if block.Image == nil {
			return wireItem{}, fmt.Errorf("image block without source")
		}
		return wireItem{
			Type:     itemTypeImage,
			ImageURL: "data:" + block.Image.MediaType + ";base64," + block.Image.Data,
		}, nil
	default:
		return wireItem{}, fmt.Errorf("unsupported block type %q", block.Type)
	}
}

// FromWire decodes an openai wire message. A content string holding a
// coerced item array is restored into blocks; anything else stays plain
// text.
func FromWire(raw json.RawMessage) (messages.Message, error) {
	var wire wireMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		return messages.Message{}, fmt.Errorf("failed to decode message: %w", err)
	}

	message := messages.Message{Role: messages.Role(wire.Role)}

	items, ok := coercedItems(wire.Content)
	if !ok {
		message.Text = wire.Content
		return message, nil
	}

	for _, item := range items {
		block, err := fromWireItem(item)
		if err != nil {
			return messages.Message{}, err
		}
		message.Blocks = append(message.Blocks, block)
	}
	return message, nil
}

// coercedItems recognizes a content string that holds a string-coerced
// item array. Every element must carry a known type tag; otherwise the
// content is treated as user text that merely looks like JSON.
func coercedItems(content string) ([]wireItem, bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}

	var items []wireItem
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	for _, item := range items {
		switch item.Type {
		case itemTypeText, itemTypeFunctionCall, itemTypeFunctionCallOutput, itemTypeImage:
		default:
			return nil, false
		}
	}
	return items, true
}

func fromWireItem(item wireItem) (messages.Block, error) {
	switch item.Type {
	case itemTypeText:
		return messages.Block{Type: messages.BlockText, Text: item.Text}, nil
	case itemTypeFunctionCall:
		return messages.Block{
			Type:         messages.BlockToolUse,
			ToolUseID:    item.CallID,
			ToolUseName:  item.Name,
			ToolUseInput: json.RawMessage(item.Arguments),
		}, nil
	case itemTypeFunctionCallOutput:
		return messages.Block{
			Type:       messages.BlockToolResult,
			ToolUseID:  item.CallID,
			ToolResult: json.RawMessage(item.Output),
		}, nil
	case itemTypeImage:
		block := messages.Block{Type: messages.BlockImage}
		if source, ok := parseDataURL(item.ImageURL); ok {
			block.Image = source
		}
		return block, nil
	default:
		return messages.Block{}, fmt.Errorf("unsupported item type %q", item.Type)
	}
}

func parseDataURL(url string) (*messages.ImageSource, bool) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return nil, false
	}
	mediaType, data, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, false
	}
	return &messages.ImageSource{MediaType: mediaType, Data: data}, true
}
