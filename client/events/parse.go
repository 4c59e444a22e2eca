package events

import (
	"encoding/json"
	"fmt"
)

// KindUnrecognized tags wire records whose discriminator this client does
// not know.
const KindUnrecognized Kind = "unrecognized"

// Unrecognized preserves a wire record with an unknown discriminator. The
// raw payload is retained so callers can log or forward it.
type Unrecognized struct {
	Base
	WireType string
	Raw      json.RawMessage
}

// Parse decodes one wire record into its typed event. Records with an
// unknown discriminator decode into Unrecognized rather than failing;
// only a payload that cannot be decoded at all is an error.
func Parse(raw []byte) (Event, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("failed to parse event envelope: %w", err)
	}

	kind := Kind(head.Type)
	switch kind {
	case KindHistory, KindChatSessionChanged:
		var e History
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindHistoryDelta:
		var e HistoryDelta
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindChatSessionDeleted:
		var e ChatSessionDeleted
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindTextDelta:
		var e TextDelta
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindThoughtDelta:
		var e ThoughtDelta
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindInteraction:
		var e Interaction
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindCancelled:
		var e Cancelled
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindToolSelectDelta:
		var e ToolSelectDelta
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindToolCall:
		var e ToolCall
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindToolCatalog:
		var e ToolCatalog
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindRenderMedia:
		var e RenderMedia
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindUserTurnStart:
		var e UserTurnStart
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindUserTurnEnd:
		var e UserTurnEnd
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindSubsessionStarted:
		var e SubsessionStarted
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindSubsessionEnded:
		var e SubsessionEnded
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindAvatarConnected:
		var e AvatarConnected
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, decodeError(kind, err)
		}
		e.Base = NewBase(kind)
		return e, nil
	case KindConnected:
		return NewConnected(), nil
	case KindReconnected:
		return NewReconnected(), nil
	case KindDisconnected:
		return NewDisconnected(), nil
	default:
		return Unrecognized{
			Base:     NewBase(KindUnrecognized),
			WireType: head.Type,
			Raw:      append(json.RawMessage(nil), raw...),
		}, nil
	}
}

func decodeError(kind Kind, err error) error {
	return fmt.Errorf("failed to decode %q event: %w", kind, err)
}
