package processing

import (
	"encoding/json"
	"fmt"

	"github.com/lverhagen/agentlink/client/messages"
	"github.com/lverhagen/agentlink/client/messages/anthropic"
	"github.com/lverhagen/agentlink/client/messages/openai"
)

// ToWireFormat serializes a message into the wire shape of a vendor
// family. Pure function; the vendor comes from the owning session, never
// from the message itself.
func ToWireFormat(message messages.Message, vendor messages.Vendor) (json.RawMessage, error) {
	switch vendor {
	case messages.VendorAnthropic:
		return anthropic.ToWire(message)
	case messages.VendorOpenAI:
		return openai.ToWire(message)
	default:
		return nil, fmt.Errorf("%w: cannot serialize for vendor %q", ErrVendorMismatch, vendor)
	}
}

// FromWireFormat decodes a vendor wire message into the vendor-agnostic
// model.
func FromWireFormat(raw json.RawMessage, vendor messages.Vendor) (messages.Message, error) {
	switch vendor {
	case messages.VendorAnthropic:
		return anthropic.FromWire(raw)
	case messages.VendorOpenAI:
		return openai.FromWire(raw)
	default:
		return messages.Message{}, fmt.Errorf("%w: cannot decode for vendor %q", ErrVendorMismatch, vendor)
	}
}

func decodeWireMessages(raw []json.RawMessage, vendor messages.Vendor) ([]messages.Message, error) {
	decoded := make([]messages.Message, 0, len(raw))
	for i, wire := range raw {
		message, err := FromWireFormat(wire, vendor)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		decoded = append(decoded, message)
	}
	return decoded, nil
}
