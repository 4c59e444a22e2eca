// Package events defines the typed wire event contract consumed by the
// stream processor.
//
// Every wire record carries a "type" string discriminator; Parse maps it
// onto one of the typed events below. Unknown discriminators parse into
// Unrecognized rather than failing, so a stream containing event kinds
// newer than this client keeps flowing.
//
// Semantics used across the package:
//
//   - Delta: append-only increment emitted in stream order; never replaces
//     prior state.
//   - Full history: authoritative complete message-list snapshot used to
//     resync after drift or reconnection.
//   - Lifecycle signal: connection-level event synthesized by the transport
//     rather than read off the wire.
//
// history events
//
//   - History (history, chat_session_changed): full message-list replace and
//     vendor assignment for a session.
//   - HistoryDelta (history_delta): append-only message batch.
//   - ChatSessionDeleted (chat_session_deleted): session teardown.
//
// generation events
//
//   - TextDelta (text_delta): streamed assistant text increment.
//   - ThoughtDelta (thought_delta): streamed assistant reasoning increment.
//   - Interaction (interaction): assistant-turn open/close boundary.
//   - Cancelled (cancelled): force-close of the open interaction.
//
// tool events
//
//   - ToolSelectDelta (tool_select_delta): tool calls chosen by the agent.
//   - ToolCall (tool_call): tool execution start (active=true) or completion
//     with results (active=false).
//   - ToolCatalog (tool_catalog): replacement of the advertised tool set.
//
// turn and subsession events
//
//   - UserTurnStart (user_turn_start): system ready for new user input.
//   - UserTurnEnd (user_turn_end): user input committed, awaiting assistant.
//   - SubsessionStarted (subsession_started): nested session frame push.
//   - SubsessionEnded (subsession_ended): nested session frame pop.
//
// media and avatar events
//
//   - RenderMedia (render_media): rich-media artifact with its security
//     classification fields.
//   - AvatarConnected (avatar_connected): avatar/voice binding for a session.
//
// lifecycle signals
//
//   - Connected (connected), Reconnected (reconnected), Disconnected
//     (disconnected): transport connection boundaries.
package events
