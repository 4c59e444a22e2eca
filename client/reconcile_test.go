package processing

import (
	"errors"
	"testing"

	"github.com/lverhagen/agentlink/client/messages"
)

func TestReconnectMakesNextHistoryAuthoritative(t *testing.T) {
	p := NewProcessor()
	defer p.Close()
	establishSession(t, p, "s1")
	mustDispatch(t, p, `{"type":"interaction","session_id":"s1","id":"i1","started":true}`)
	mustDispatch(t, p, `{"type":"text_delta","session_id":"s1","content":"lost in transit"}`)
	mustDispatch(t, p,
		`{"type":"tool_select_delta","session_id":"s1","tool_calls":[{"id":"t1","name":"search"}]}`)

	mustDispatch(t, p, `{"type":"reconnected"}`)
	snapshot := mustDispatch(t, p,
		`{"type":"history","session_id":"s1","vendor":"anthropic","messages":[{"role":"user","content":"hello"},{"role":"assistant","content":"full answer"}]}`)

	if snapshot.OpenInteraction != nil {
		t.Fatalf("expected open interaction closed by resync")
	}
	if snapshot.RecoveryBuffer != nil {
		t.Fatalf("expected recovery buffer discarded by resync")
	}
	if len(snapshot.Interactions) != 1 {
		t.Fatalf("expected the interrupted interaction in the log, got %d", len(snapshot.Interactions))
	}
	interrupted := snapshot.Interactions[0]
	if interrupted.Marker != MarkerInterrupted || !interrupted.Incomplete {
		t.Fatalf("expected interrupted and incomplete, got %+v", interrupted)
	}
	if interrupted.Text != "lost in transit" {
		t.Fatalf("expected partial content retained for audit, got %q", interrupted.Text)
	}
	if len(snapshot.Messages) != 2 || snapshot.Messages[1].Text != "full answer" {
		t.Fatalf("expected the authoritative history to replace messages, got %+v", snapshot.Messages)
	}
}

func TestResyncPreservesConfigurationState(t *testing.T) {
	p := NewProcessor()
	defer p.Close()
	mustDispatch(t, p,
		`{"type":"history","session_id":"s1","vendor":"anthropic","messages":[],"agent_configuration":{"blocked_tool_patterns":["admin_*"]}}`)
	mustDispatch(t, p,
		`{"type":"tool_catalog","session_id":"s1","tools":[{"name":"search"}]}`)
	mustDispatch(t, p,
		`{"type":"avatar_connected","session_id":"s1","avatar_id":"ava","avatar_session_id":"media-7"}`)

	mustDispatch(t, p, `{"type":"reconnected"}`)
	snapshot := mustDispatch(t, p,
		`{"type":"history","session_id":"s1","vendor":"anthropic","messages":[]}`)

	if snapshot.AvatarID != "ava" || snapshot.AvatarSessionID != "media-7" {
		t.Fatalf("avatar binding must survive resync, got %+v", snapshot)
	}
	if len(snapshot.ToolCatalog) != 1 || snapshot.ToolCatalog[0].Name != "search" {
		t.Fatalf("tool catalog must survive resync, got %+v", snapshot.ToolCatalog)
	}
	if snapshot.AgentConfig == nil || len(snapshot.AgentConfig.BlockedToolPatterns) != 1 {
		t.Fatalf("agent configuration must survive resync, got %+v", snapshot.AgentConfig)
	}
}

func TestReconnectFlagsEveryKnownSession(t *testing.T) {
	p := NewProcessor()
	defer p.Close()
	establishSession(t, p, "s1")
	establishSession(t, p, "s2")
	mustDispatch(t, p, `{"type":"interaction","session_id":"s2","id":"i2","started":true}`)

	mustDispatch(t, p, `{"type":"reconnected"}`)

	// s1 had nothing in flight; its resync is a clean replace.
	s1 := mustDispatch(t, p,
		`{"type":"history","session_id":"s1","vendor":"anthropic","messages":[]}`)
	if len(s1.Interactions) != 0 {
		t.Fatalf("expected no interrupted interactions for idle session, got %+v", s1.Interactions)
	}

	s2 := mustDispatch(t, p,
		`{"type":"history","session_id":"s2","vendor":"anthropic","messages":[]}`)
	if len(s2.Interactions) != 1 || s2.Interactions[0].Marker != MarkerInterrupted {
		t.Fatalf("expected in-flight interaction interrupted, got %+v", s2.Interactions)
	}
}

func TestDeltasBetweenReconnectAndResyncStillApply(t *testing.T) {
	p := NewProcessor()
	defer p.Close()
	establishSession(t, p, "s1")
	mustDispatch(t, p, `{"type":"reconnected"}`)

	// Stream may resume before the history arrives; the state is suspect
	// but still tracked.
	_, err := dispatch(t, p, `{"type":"text_delta","session_id":"s1","content":"early"}`)
	if !errors.Is(err, ErrNoOpenInteraction) {
		t.Fatalf("expected orphan delta report, got %v", err)
	}
	snapshot, _ := p.Session("s1")
	if snapshot.RecoveryBuffer == nil || snapshot.RecoveryBuffer.Text != "early" {
		t.Fatalf("expected delta buffered until resync, got %+v", snapshot.RecoveryBuffer)
	}

	snapshot = mustDispatch(t, p,
		`{"type":"history","session_id":"s1","vendor":"anthropic","messages":[]}`)
	if snapshot.RecoveryBuffer != nil {
		t.Fatalf("resync must discard the suspect buffer")
	}
}

func TestConnectedAndDisconnectedAreObservedOnly(t *testing.T) {
	p := NewProcessor()
	defer p.Close()
	establishSession(t, p, "s1")
	mustDispatch(t, p, `{"type":"interaction","session_id":"s1","id":"i1","started":true}`)

	mustDispatch(t, p, `{"type":"connected"}`)
	mustDispatch(t, p, `{"type":"disconnected"}`)

	snapshot, _ := p.Session("s1")
	if snapshot.OpenInteraction == nil || snapshot.OpenInteraction.ID != "i1" {
		t.Fatalf("connect boundaries must not disturb session state")
	}
	if snapshot.Vendor != messages.VendorAnthropic {
		t.Fatalf("unexpected vendor churn: %q", snapshot.Vendor)
	}

	// Without a reconnect, the next history is an ordinary replace with no
	// interruption of the open interaction.
	next := mustDispatch(t, p,
		`{"type":"history","session_id":"s1","vendor":"anthropic","messages":[]}`)
	if next.OpenInteraction == nil {
		t.Fatalf("plain history must not force-close the open interaction")
	}
}
