// Package agui serves switchboard chats to AG-UI frontends.
//
// AG-UI (Agent-User Interface) is an event-based protocol for streaming
// assistant output to user-facing applications such as CopilotKit. This
// package converts a [RunInput] request into a switchboard conversation and
// maps the resulting chat stream to AG-UI events.
//
// # Usage
//
//	prepared, err := input.Prepare(defaultModel)
//	if err != nil {
//	    return err
//	}
//	stream, err := c.Chat(ctx, prepared.Model, prepared.Conversation)
//	if err != nil {
//	    return err
//	}
//	mapper := agui.NewMapper(prepared.ThreadID, prepared.RunID)
//	for ev := range mapper.MapStream(stream) {
//	    writeEvent(ev)
//	}
//
// # Event Mapping
//
//   - first item with content: TEXT_MESSAGE_START, TEXT_MESSAGE_CONTENT
//   - later items with content: TEXT_MESSAGE_CONTENT
//   - end of stream: TEXT_MESSAGE_END (if a message is open), RUN_FINISHED
//   - failed item: TEXT_MESSAGE_END (if open), RUN_ERROR
//
// Reasoning, usage and finish reasons have no AG-UI text equivalent and
// produce no events.
//
// The Mapper is NOT safe for concurrent use. Message conversion functions
// are stateless.
package agui
