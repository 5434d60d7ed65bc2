// Package anthropic implements [switchboard.Backend] for the Anthropic Messages API.
//
// System messages are sent as the request's system prompt. Thinking deltas
// surface as [switchboard.ChatCompletionMessage.Reasoning], and the final
// message_delta event carries the finish reason together with token usage.
//
// Anthropic requires an API key and an explicit token limit; [DefaultMaxTokens]
// is used when the conversation does not set one.
package anthropic
