package events

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestParseHistoryCarriesVendorAndRawMessages(t *testing.T) {
	raw := []byte(`{
		"type": "history",
		"session_id": "sess-1",
		"vendor": "anthropic",
		"messages": [{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]
	}`)

	event, err := Parse(raw)
	if err != nil {
		t.Fatalf("expected history to parse, got %v", err)
	}

	history, ok := event.(History)
	if !ok {
		t.Fatalf("expected History, got %T", event)
	}
	if history.Kind() != KindHistory {
		t.Fatalf("expected kind %q, got %q", KindHistory, history.Kind())
	}
	if history.Session() != "sess-1" {
		t.Fatalf("expected session sess-1, got %q", history.Session())
	}
	if history.Vendor != "anthropic" {
		t.Fatalf("expected vendor anthropic, got %q", history.Vendor)
	}
	if len(history.Messages) != 2 {
		t.Fatalf("expected 2 raw messages, got %d", len(history.Messages))
	}
}

func TestParseChatSessionChangedSharesHistoryShape(t *testing.T) {
	raw := []byte(`{"type":"chat_session_changed","session_id":"sess-1","vendor":"openai","messages":[]}`)

	event, err := Parse(raw)
	if err != nil {
		t.Fatalf("expected chat_session_changed to parse, got %v", err)
	}

	history, ok := event.(History)
	if !ok {
		t.Fatalf("expected History, got %T", event)
	}
	if history.Kind() != KindChatSessionChanged {
		t.Fatalf("expected kind %q, got %q", KindChatSessionChanged, history.Kind())
	}
}

func TestParseToolCallCompletionKeepsResults(t *testing.T) {
	raw := []byte(`{
		"type": "tool_call",
		"session_id": "sess-1",
		"active": false,
		"tool_calls": [{"id":"call-1","name":"search","input":{"query":"go"}}],
		"tool_results": [{"id":"call-1","content":{"hits":3}}]
	}`)

	event, err := Parse(raw)
	if err != nil {
		t.Fatalf("expected tool_call to parse, got %v", err)
	}

	call, ok := event.(ToolCall)
	if !ok {
		t.Fatalf("expected ToolCall, got %T", event)
	}
	if call.Active {
		t.Fatalf("expected completion event, got active")
	}
	if len(call.ToolCalls) != 1 || call.ToolCalls[0].ID != "call-1" {
		t.Fatalf("expected tool call call-1, got %+v", call.ToolCalls)
	}
	if len(call.ToolResults) != 1 || call.ToolResults[0].ID != "call-1" {
		t.Fatalf("expected tool result call-1, got %+v", call.ToolResults)
	}
}

func TestParseRenderMediaKeepsForeignContentRaw(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  string
		want string
	}{
		{name: "boolean", raw: `{"type":"render_media","session_id":"s","id":"m","content_type":"text/html","foreign_content":true}`, want: "true"},
		{name: "non-boolean", raw: `{"type":"render_media","session_id":"s","id":"m","content_type":"text/html","foreign_content":"yes"}`, want: `"yes"`},
		{name: "absent", raw: `{"type":"render_media","session_id":"s","id":"m","content_type":"text/html"}`, want: ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			event, err := Parse([]byte(tc.raw))
			if err != nil {
				t.Fatalf("expected render_media to parse, got %v", err)
			}
			media, ok := event.(RenderMedia)
			if !ok {
				t.Fatalf("expected RenderMedia, got %T", event)
			}
			if got := string(media.ForeignContent); got != tc.want {
				t.Fatalf("expected raw foreign_content %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseSubsessionLineage(t *testing.T) {
	raw := []byte(`{"type":"subsession_started","session_id":"child","parent_session_id":"parent","sub_agent_type":"researcher"}`)

	event, err := Parse(raw)
	if err != nil {
		t.Fatalf("expected subsession_started to parse, got %v", err)
	}

	sub, ok := event.(SubsessionStarted)
	if !ok {
		t.Fatalf("expected SubsessionStarted, got %T", event)
	}
	if sub.Session() != "child" || sub.ParentSessionID != "parent" {
		t.Fatalf("unexpected lineage: %+v", sub.SessionRef)
	}
	if sub.SubAgentType != "researcher" {
		t.Fatalf("expected sub agent type researcher, got %q", sub.SubAgentType)
	}
}

func TestParseUnknownKindRoundTripsRawPayload(t *testing.T) {
	raw := []byte(`{"type":"hologram_delta","session_id":"s","frames":[1,2,3]}`)

	event, err := Parse(raw)
	if err != nil {
		t.Fatalf("expected unknown kind to parse, got %v", err)
	}

	unknown, ok := event.(Unrecognized)
	if !ok {
		t.Fatalf("expected Unrecognized, got %T", event)
	}
	if unknown.WireType != "hologram_delta" {
		t.Fatalf("expected wire type hologram_delta, got %q", unknown.WireType)
	}
	if !bytes.Equal(unknown.Raw, raw) {
		t.Fatalf("expected raw payload preserved, got %s", unknown.Raw)
	}
	if !json.Valid(unknown.Raw) {
		t.Fatalf("expected preserved payload to stay valid JSON")
	}
}

func TestParseRejectsNonJSONPayload(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatalf("expected envelope parse error")
	}
}

func TestParseLifecycleSignals(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		kind Kind
	}{
		{raw: `{"type":"connected"}`, kind: KindConnected},
		{raw: `{"type":"reconnected"}`, kind: KindReconnected},
		{raw: `{"type":"disconnected"}`, kind: KindDisconnected},
	} {
		event, err := Parse([]byte(tc.raw))
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", tc.kind, err)
		}
		if event.Kind() != tc.kind {
			t.Fatalf("expected kind %q, got %q", tc.kind, event.Kind())
		}
	}
}
