package processing

import "errors"

// Recoverable dispatch errors. None of these stop the ingestion loop; the
// processor applies whatever recovery the event allows, surfaces the
// error, and keeps consuming the stream.
var (
	// ErrUnknownEventType marks a wire record whose discriminator this
	// client does not know. The event is skipped.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrNoOpenInteraction marks a generation delta or close arriving with
	// no open interaction. Delta content is kept in the session's recovery
	// buffer.
	ErrNoOpenInteraction = errors.New("no open interaction")

	// ErrMissingToolResult marks a tool completion that carried no result.
	// The record is kept with a completed-without-result status.
	ErrMissingToolResult = errors.New("tool completion missing result")

	// ErrVendorMismatch marks an event declaring a vendor incompatible
	// with the session's established vendor. The event is rejected and
	// prior state kept.
	ErrVendorMismatch = errors.New("vendor mismatch")

	// ErrSessionNotEstablished marks a delta event for a session that has
	// not yet received its first full history. A provisional session is
	// kept so later events are not orphaned.
	ErrSessionNotEstablished = errors.New("session not established by full history")

	// ErrInvalidSessionID marks an event that cannot name a session at
	// all. Fatal only for that event's session, never for the processor.
	ErrInvalidSessionID = errors.New("malformed session id")
)

// Warning codes attached to notifications for anomalies that were
// tolerated rather than rejected.
const (
	// WarningInvalidToolTransition reports a tool-call state change
	// outside selected -> active -> completed.
	WarningInvalidToolTransition = "invalid-tool-transition"
	// WarningInteractionImplicitlyClosed reports an interaction that had
	// to be force-closed because a new one opened over it.
	WarningInteractionImplicitlyClosed = "interaction-implicitly-closed"
	// WarningInteractionUnknownClose reports a close for an interaction id
	// that was never open.
	WarningInteractionUnknownClose = "interaction-unknown-close"
	// WarningInteractionDuplicateOpen reports an open for the id that is
	// already open.
	WarningInteractionDuplicateOpen = "interaction-duplicate-open"
	// WarningRecoveredDelta reports delta content buffered outside any
	// interaction.
	WarningRecoveredDelta = "recovered-delta"
)

// Warning is a non-blocking anomaly surfaced to observers alongside the
// applied event.
type Warning struct {
	Code    string
	Message string
}
