// Package anthropic converts between the vendor-agnostic message model
// and the anthropic-family wire shape, where structured content is an
// array of typed blocks.
package anthropic

import (
	"encoding/json"
	"fmt"

	"github.com/lverhagen/agentlink/client/messages"
)

type wireMessage struct {
	Role string `json:"role"`
	// Content is either a JSON string or an array of wire blocks.
	Content json.RawMessage `json:"content"`
}

type wireBlock struct {
	Type string `json:"type"`

	Text string `json:"text,omitempty"`

	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`

	Source *wireImageSource `json:"source,omitempty"`
}

type wireImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

const (
	blockTypeText       = "text"
	blockTypeToolUse    = "tool_use"
	blockTypeToolResult = "tool_result"
	blockTypeImage      = "image"
)

// ToWire serializes a message into the anthropic wire shape.
func ToWire(m messages.Message) (json.RawMessage, error) {
	wire := wireMessage{Role: string(m.Role)}

	if !m.IsStructured() {
		content, err := json.Marshal(m.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to encode text content: %w", err)
		}
		wire.Content = content
		return json.Marshal(wire)
	}

	blocks := make([]wireBlock, 0, len(m.Blocks))
	for _, block := range m.Blocks {
		converted, err := toWireBlock(block)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, converted)
	}
	content, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content blocks: %w", err)
	}
	wire.Content = content
	return json.Marshal(wire)
}

func toWireBlock(block messages.Block) (wireBlock, error) {
	switch block.Type {
	case messages.BlockText:
		return wireBlock{Type: blockTypeText, Text: block.Text}, nil
	case messages.BlockToolUse:
		return wireBlock{
			Type:  blockTypeToolUse,
			ID:    block.ToolUseID,
			Name:  block.ToolUseName,
			Input: block.ToolUseInput,
		}, nil
	case messages.BlockToolResult:
		return wireBlock{
			Type:      blockTypeToolResult,
			ToolUseID: block.ToolUseID,
			Content:   block.ToolResult,
		}, nil
	case messages.BlockImage:
		if block.Image == nil {
			return wireBlock{}, fmt.Errorf("image block without source")
		}
		return wireBlock{
			Type: blockTypeImage,
			Source: &wireImageSource{
				Type:      "base64",
				MediaType: block.Image.MediaType,
				Data:      block.Image.Data,
			},
		}, nil
	default:
		return wireBlock{}, fmt.Errorf("unsupported block type %q", block.Type)
	}
}

// FromWire decodes an anthropic wire message into the vendor-agnostic
// model. String content maps onto Text; block arrays map onto Blocks in
// wire order.
func FromWire(raw json.RawMessage) (messages.Message, error) {
	var wire wireMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		return messages.Message{}, fmt.Errorf("failed to decode message: %w", err)
	}

	message := messages.Message{Role: messages.Role(wire.Role)}
	if len(wire.Content) == 0 {
		return message, nil
	}

	var text string
	if err := json.Unmarshal(wire.Content, &text); err == nil {
		message.Text = text
		return message, nil
	}

	var blocks []wireBlock
	if err := json.Unmarshal(wire.Content, &blocks); err != nil {
		return messages.Message{}, fmt.Errorf("failed to decode content blocks: %w", err)
	}
	for _, block := range blocks {
		converted, err := fromWireBlock(block)
		if err != nil {
			return messages.Message{}, err
		}
		message.Blocks = append(message.Blocks, converted)
	}
	return message, nil
}

func fromWireBlock(block wireBlock) (messages.Block, error) {
	switch block.Type {
	case blockTypeText:
		return messages.Block{Type: messages.BlockText, Text: block.Text}, nil
	case blockTypeToolUse:
		return messages.Block{
			Type:         messages.BlockToolUse,
			ToolUseID:    block.ID,
			ToolUseName:  block.Name,
			ToolUseInput: block.Input,
		}, nil
	case blockTypeToolResult:
		return messages.Block{
			Type:       messages.BlockToolResult,
			ToolUseID:  block.ToolUseID,
			ToolResult: block.Content,
		}, nil
	case blockTypeImage:
		converted := messages.Block{Type: messages.BlockImage}
		if block.Source != nil {
			converted.Image = &messages.ImageSource{
				MediaType: block.Source.MediaType,
				Data:      block.Source.Data,
			}
		}
		return converted, nil
	default:
		return messages.Block{}, fmt.Errorf("unsupported block type %q", block.Type)
	}
}
