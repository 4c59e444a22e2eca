package processing

import (
	"fmt"

	"github.com/lverhagen/agentlink/client/events"
)

// applyLifecycle handles transport connection boundaries.
//
// Reconnection flips every known session into awaiting-resync: the next
// full history per session is authoritative, and until it arrives the
// delta-accumulated state is suspect but kept visible.
func (p *Processor) applyLifecycle(event events.Event) applied {
	switch event.(type) {
	case events.Reconnected:
		for _, state := range p.sessions {
			state.AwaitingResync = true
		}
	case events.Connected, events.Disconnected:
		// Nothing to reconcile; observers get the notification.
	}
	return applied{}
}

// reconcileResync runs when the authoritative post-reconnect history
// arrives for a session. Delta-accumulated interaction and tool-call
// state is discarded; an interaction assumed open is closed as
// interrupted rather than left dangling. Avatar binding, tool catalog,
// and agent configuration persist untouched: they are coarse
// configuration, not streaming deltas.
func (p *Processor) reconcileResync(state *sessionState) []Warning {
	var warnings []Warning
	if state.Open != nil {
		warnings = append(warnings, Warning{
			Code:    WarningInteractionImplicitlyClosed,
			Message: fmt.Sprintf("interaction %q interrupted by post-reconnect history", state.Open.ID),
		})
	}
	state.dropDeltaState()
	state.AwaitingResync = false
	return warnings
}
