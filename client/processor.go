// Package processing implements the event stream processor and session
// state reconciler: the single writer that turns the ordered wire event
// stream into queryable, immutable session snapshots.
package processing

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/lverhagen/agentlink/client/events"
	"github.com/lverhagen/agentlink/client/mediatrust"
	"github.com/lverhagen/agentlink/client/messages"
	"github.com/lverhagen/agentlink/client/toolpolicy"
	"github.com/lverhagen/agentlink/client/tools"
)

// Processor owns all session state. Events are applied atomically and in
// arrival order; concurrent Dispatch calls are serialized, so callers may
// feed it from a transport goroutine directly.
type Processor struct {
	mu       sync.Mutex
	sessions map[string]*sessionState

	notifier    *notifier
	clientTools []tools.Tool
}

// NewProcessor creates a processor with no sessions. Sessions come into
// existence through history events, never explicitly.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		sessions: map[string]*sessionState{},
		notifier: newNotifier(defaultObserverBuffer),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close tears down observer delivery. Pending notifications may be lost.
func (p *Processor) Close() {
	p.notifier.close()
}

// Subscribe registers an observer called after every applied event.
// Delivery is fire-and-forget: a slow observer drops notifications rather
// than stalling dispatch.
func (p *Processor) Subscribe(fn func(Notification)) (unsubscribe func()) {
	return p.notifier.subscribe(fn)
}

// Session returns the current read-only snapshot for a session id.
func (p *Processor) Session(id string) (*SessionSnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	state, ok := p.sessions[id]
	if !ok {
		return nil, false
	}
	return snapshotSession(state), true
}

// SessionIDs lists known sessions in stable order.
func (p *Processor) SessionIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.sessions))
	for id := range p.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsToolAllowed evaluates the session's agent configuration for a tool
// name. Sessions without a configuration allow every tool.
func (p *Processor) IsToolAllowed(sessionID, toolName string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	state, ok := p.sessions[sessionID]
	if !ok || state.AgentConfig == nil {
		return true
	}
	return toolpolicy.IsAllowed(toolName, *state.AgentConfig)
}

// MigrateVendor explicitly moves a session to another vendor. This is the
// only sanctioned vendor change outside a session's first full history.
func (p *Processor) MigrateVendor(sessionID string, vendor messages.Vendor) error {
	if _, err := messages.ParseVendor(string(vendor)); err != nil {
		return fmt.Errorf("%w: %v", ErrVendorMismatch, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	state, ok := p.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: unknown session %q", ErrInvalidSessionID, sessionID)
	}
	state.Vendor = vendor
	return nil
}

// DispatchRaw parses one wire record and dispatches it.
func (p *Processor) DispatchRaw(ctx context.Context, raw []byte) (*SessionSnapshot, error) {
	event, err := events.Parse(raw)
	if err != nil {
		return nil, err
	}
	return p.Dispatch(ctx, event)
}

// Dispatch applies one event and notifies observers. The returned error,
// when non-nil, is one of the recoverable taxonomy errors; the processor
// stays consistent and keeps accepting events regardless.
func (p *Processor) Dispatch(ctx context.Context, event events.Event) (*SessionSnapshot, error) {
	ctx, span := tracer.Start(ctx, "dispatch event")
	defer span.End()
	span.SetAttributes(attribute.String("event.kind", string(event.Kind())))
	dispatchedEvents.Add(ctx, 1)

	p.mu.Lock()
	result := p.apply(event)
	snapshot := result.snapshot
	if snapshot == nil && result.session != nil {
		snapshot = snapshotSession(result.session)
	}
	p.mu.Unlock()

	if result.err != nil {
		span.RecordError(result.err)
		span.SetStatus(codes.Error, result.err.Error())
		logger.Warn("event reported a dispatch error",
			"kind", string(event.Kind()), "error", result.err)
	}
	for _, warning := range result.warnings {
		logger.Warn("event tolerated a protocol anomaly",
			"kind", string(event.Kind()), "code", warning.Code, "detail", warning.Message)
	}

	p.notifier.publish(Notification{
		Kind:           event.Kind(),
		SessionID:      result.sessionID,
		Session:        snapshot,
		SessionDeleted: result.deleted,
		Warnings:       result.warnings,
		Err:            result.err,
	})
	return snapshot, result.err
}

// applied is the internal outcome of one event.
type applied struct {
	sessionID string
	session   *sessionState
	// snapshot overrides snapshotting of session; used when state was
	// removed as part of the event.
	snapshot *SessionSnapshot
	deleted  bool
	warnings []Warning
	err      error
}

func (p *Processor) apply(event events.Event) applied {
	switch e := event.(type) {
	case events.History:
		return p.applyHistory(e)
	case events.HistoryDelta:
		return p.applyHistoryDelta(e)
	case events.TextDelta:
		return p.applyGenerationDelta(e.Session(), e.Content, false)
	case events.ThoughtDelta:
		return p.applyGenerationDelta(e.Session(), e.Content, true)
	case events.Interaction:
		return p.applyInteraction(e)
	case events.Cancelled:
		return p.applyCancelled(e)
	case events.ToolSelectDelta:
		return p.applyToolSelect(e)
	case events.ToolCall:
		return p.applyToolCall(e)
	case events.ToolCatalog:
		return p.applyToolCatalog(e)
	case events.RenderMedia:
		return p.applyRenderMedia(e)
	case events.UserTurnStart:
		return p.applyTurnPhase(e.Session(), PhaseAwaitingUser)
	case events.UserTurnEnd:
		return p.applyTurnPhase(e.Session(), PhaseAwaitingAssistant)
	case events.SubsessionStarted:
		return p.applySubsessionStarted(e)
	case events.SubsessionEnded:
		return p.applySubsessionEnded(e)
	case events.ChatSessionDeleted:
		return p.applySessionDeleted(e)
	case events.AvatarConnected:
		return p.applyAvatarConnected(e)
	case events.Connected, events.Reconnected, events.Disconnected:
		return p.applyLifecycle(event)
	case events.Unrecognized:
		return applied{err: fmt.Errorf("%w: %q", ErrUnknownEventType, e.WireType)}
	default:
		return applied{err: fmt.Errorf("%w: %T", ErrUnknownEventType, event)}
	}
}

// session returns the state for an id, creating a provisional entry for
// events that race ahead of their session's first full history.
func (p *Processor) session(id string) *sessionState {
	state, ok := p.sessions[id]
	if !ok {
		state = newSessionState(id)
		p.registerClientTools(state)
		p.sessions[id] = state
	}
	return state
}

func (p *Processor) registerClientTools(state *sessionState) {
	for _, tool := range p.clientTools {
		state.Catalog.Register(tool)
	}
}

func (p *Processor) applyHistory(e events.History) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: %s event without session_id", ErrInvalidSessionID, e.Kind())}
	}

	vendor, err := messages.ParseVendor(e.Vendor)
	if err != nil {
		return applied{
			sessionID: e.Session(),
			session:   p.sessions[e.Session()],
			err:       fmt.Errorf("%w: %v", ErrVendorMismatch, err),
		}
	}
	if existing, ok := p.sessions[e.Session()]; ok && existing.Vendor != "" && existing.Vendor != vendor {
		return applied{
			sessionID: e.Session(),
			session:   existing,
			err: fmt.Errorf("%w: session %q is %q, event declares %q",
				ErrVendorMismatch, e.Session(), existing.Vendor, vendor),
		}
	}

	decoded, err := decodeWireMessages(e.Messages, vendor)
	if err != nil {
		return applied{sessionID: e.Session(), session: p.sessions[e.Session()], err: err}
	}

	state := p.session(e.Session())
	result := applied{sessionID: state.ID, session: state}

	if state.AwaitingResync {
		result.warnings = append(result.warnings, p.reconcileResync(state)...)
	}

	// Full replace: the event's message list is authoritative.
	state.Messages = decoded
	state.Vendor = vendor
	state.Synced = true
	if e.AgentConfiguration != nil {
		state.AgentConfig = &toolpolicy.AgentConfig{
			BlockedToolPatterns: append([]string(nil), e.AgentConfiguration.BlockedToolPatterns...),
			AllowedToolPatterns: append([]string(nil), e.AgentConfiguration.AllowedToolPatterns...),
		}
	}
	if e.Metadata != nil {
		state.Metadata = map[string]string{}
		for key, value := range e.Metadata {
			state.Metadata[key] = value
		}
	}
	return result
}

func (p *Processor) applyHistoryDelta(e events.HistoryDelta) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: history_delta without session_id", ErrInvalidSessionID)}
	}
	state := p.session(e.Session())
	if !state.Synced || state.Vendor == "" {
		return applied{
			sessionID: state.ID,
			session:   state,
			err:       fmt.Errorf("%w: history_delta for session %q", ErrSessionNotEstablished, state.ID),
		}
	}

	decoded, err := decodeWireMessages(e.Messages, state.Vendor)
	if err != nil {
		return applied{sessionID: state.ID, session: state, err: err}
	}
	// Append only, and never deduplicate: replays are the transport's
	// problem, not ours.
	state.Messages = append(state.Messages, decoded...)
	return applied{sessionID: state.ID, session: state}
}

func (p *Processor) applyGenerationDelta(sessionID, content string, thought bool) applied {
	if sessionID == "" {
		return applied{err: fmt.Errorf("%w: generation delta without session_id", ErrInvalidSessionID)}
	}
	state := p.session(sessionID)
	interaction, recovered := state.accumulator()
	if thought {
		interaction.Thought += content
	} else {
		interaction.Text += content
	}

	result := applied{sessionID: state.ID, session: state}
	if recovered {
		result.warnings = append(result.warnings, Warning{
			Code:    WarningRecoveredDelta,
			Message: fmt.Sprintf("delta buffered outside any interaction in session %q", state.ID),
		})
		result.err = fmt.Errorf("%w: session %q", ErrNoOpenInteraction, state.ID)
	}
	return result
}

func (p *Processor) applyInteraction(e events.Interaction) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: interaction without session_id", ErrInvalidSessionID)}
	}
	state := p.session(e.Session())
	result := applied{sessionID: state.ID, session: state}

	if e.Started {
		if state.Open != nil {
			if state.Open.ID == e.ID {
				result.warnings = append(result.warnings, Warning{
					Code:    WarningInteractionDuplicateOpen,
					Message: fmt.Sprintf("interaction %q opened twice", e.ID),
				})
				return result
			}
			// At most one interaction may be open; the stream has moved
			// on, so the stale one closes as interrupted.
			state.closeOpenInteraction(MarkerInterrupted)
			result.warnings = append(result.warnings, Warning{
				Code:    WarningInteractionImplicitlyClosed,
				Message: fmt.Sprintf("interaction %q displaced by %q", state.Log[len(state.Log)-1].ID, e.ID),
			})
		}
		state.Open = newInteraction(e.ID)
		state.Phase = PhaseAssistantTurn
		return result
	}

	if state.Open == nil || state.Open.ID != e.ID {
		result.warnings = append(result.warnings, Warning{
			Code:    WarningInteractionUnknownClose,
			Message: fmt.Sprintf("close for interaction %q which is not open", e.ID),
		})
		result.err = fmt.Errorf("%w: close for %q", ErrNoOpenInteraction, e.ID)
		return result
	}
	state.closeOpenInteraction(MarkerCompleted)
	return result
}

func (p *Processor) applyCancelled(e events.Cancelled) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: cancelled without session_id", ErrInvalidSessionID)}
	}
	state := p.session(e.Session())
	// Force-close only; subsession frames survive a partial cancel.
	state.closeOpenInteraction(MarkerCancelled)
	return applied{sessionID: state.ID, session: state}
}

func (p *Processor) applyToolSelect(e events.ToolSelectDelta) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: tool_select_delta without session_id", ErrInvalidSessionID)}
	}
	state := p.session(e.Session())
	result := applied{sessionID: state.ID, session: state}

	for _, ref := range e.ToolCalls {
		record, created := state.toolCall(ref.ID)
		if created {
			record.Name = ref.Name
			record.Input = ref.Input
			record.Status = ToolCallSelected
			continue
		}
		if warning := record.advance(ToolCallSelected); warning != nil {
			result.warnings = append(result.warnings, *warning)
		}
	}
	return result
}

func (p *Processor) applyToolCall(e events.ToolCall) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: tool_call without session_id", ErrInvalidSessionID)}
	}
	state := p.session(e.Session())
	result := applied{sessionID: state.ID, session: state}

	if e.Active {
		for _, ref := range e.ToolCalls {
			record, created := state.toolCall(ref.ID)
			if created {
				// Tolerated ordering: activation without a prior select
				// creates the record directly.
				record.Name = ref.Name
				record.Input = ref.Input
				record.Status = ToolCallActive
				continue
			}
			if record.Name == "" {
				record.Name = ref.Name
				record.Input = ref.Input
			}
			if warning := record.advance(ToolCallActive); warning != nil {
				result.warnings = append(result.warnings, *warning)
			}
		}
		return result
	}

	resultsByID := make(map[string]events.ToolResult, len(e.ToolResults))
	for _, toolResult := range e.ToolResults {
		resultsByID[toolResult.ID] = toolResult
	}

	for _, ref := range e.ToolCalls {
		record, created := state.toolCall(ref.ID)
		if created {
			record.Name = ref.Name
			record.Input = ref.Input
		}
		toolResult, ok := resultsByID[ref.ID]
		if !ok {
			if warning := record.advance(ToolCallCompletedNoResult); warning != nil && !created {
				result.warnings = append(result.warnings, *warning)
			}
			result.err = fmt.Errorf("%w: tool call %q", ErrMissingToolResult, ref.ID)
			continue
		}
		record.Result = toolResult.Content
		if warning := record.advance(ToolCallCompleted); warning != nil && !created {
			result.warnings = append(result.warnings, *warning)
		}
	}
	return result
}

func (p *Processor) applyToolCatalog(e events.ToolCatalog) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: tool_catalog without session_id", ErrInvalidSessionID)}
	}
	state := p.session(e.Session())
	state.Catalog.Replace(e.Tools)
	return applied{sessionID: state.ID, session: state}
}

func (p *Processor) applyRenderMedia(e events.RenderMedia) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: render_media without session_id", ErrInvalidSessionID)}
	}
	state := p.session(e.Session())

	classification, err := mediatrust.Classify(e)
	if err != nil {
		// Fail closed: the artifact is rejected outright and must not be
		// rendered.
		return applied{sessionID: state.ID, session: state, err: err}
	}

	state.Media = append(state.Media, MediaArtifact{
		ID:             e.MediaID,
		ContentType:    e.ContentType,
		Content:        e.Content,
		URL:            e.URL,
		SentByClass:    e.SentByClass,
		SentByFunction: e.SentByFunction,
		Trust:          classification.Trust,
		Warnings:       classification.Warnings,
	})
	return applied{sessionID: state.ID, session: state}
}

func (p *Processor) applyTurnPhase(sessionID string, phase TurnPhase) applied {
	if sessionID == "" {
		return applied{err: fmt.Errorf("%w: turn event without session_id", ErrInvalidSessionID)}
	}
	state := p.session(sessionID)
	state.Phase = phase
	return applied{sessionID: state.ID, session: state}
}

func (p *Processor) applySubsessionStarted(e events.SubsessionStarted) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: subsession_started without session_id", ErrInvalidSessionID)}
	}
	parentID := e.ParentSessionID
	if parentID == "" {
		parentID = e.UserSessionID
	}
	if parentID == "" || parentID == e.Session() {
		return applied{err: fmt.Errorf("%w: subsession %q without distinct parent", ErrInvalidSessionID, e.Session())}
	}

	parent := p.session(parentID)
	child := p.session(e.Session())
	child.ParentSessionID = parentID
	child.SubAgentType = e.SubAgentType
	if child.Vendor == "" {
		// Nested agents speak the parent's vendor until told otherwise.
		child.Vendor = parent.Vendor
		child.Synced = parent.Synced
	}
	parent.pushFrame(SubsessionFrame{
		SessionID:       child.ID,
		ParentSessionID: parentID,
		SubAgentType:    e.SubAgentType,
	})
	return applied{sessionID: child.ID, session: child}
}

func (p *Processor) applySubsessionEnded(e events.SubsessionEnded) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: subsession_ended without session_id", ErrInvalidSessionID)}
	}
	child := p.session(e.Session())
	parentID := e.ParentSessionID
	if parentID == "" {
		parentID = child.ParentSessionID
	}
	if parent, ok := p.sessions[parentID]; ok {
		parent.popFrame(child.ID)
	}
	return applied{sessionID: child.ID, session: child}
}

func (p *Processor) applySessionDeleted(e events.ChatSessionDeleted) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: chat_session_deleted without session_id", ErrInvalidSessionID)}
	}
	state, ok := p.sessions[e.Session()]
	if !ok {
		return applied{sessionID: e.Session(), deleted: true}
	}
	terminal := snapshotSession(state)
	delete(p.sessions, e.Session())
	return applied{sessionID: e.Session(), snapshot: terminal, deleted: true}
}

func (p *Processor) applyAvatarConnected(e events.AvatarConnected) applied {
	if e.Session() == "" {
		return applied{err: fmt.Errorf("%w: avatar_connected without session_id", ErrInvalidSessionID)}
	}
	state := p.session(e.Session())
	state.AvatarID = e.AvatarID
	if e.AvatarSessionID != "" {
		state.AvatarSessionID = e.AvatarSessionID
	}
	return applied{sessionID: state.ID, session: state}
}
