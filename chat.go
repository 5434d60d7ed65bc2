package switchboard

import "context"

// Backend is the capability every provider integration implements.
type Backend interface {
	// Models lists the models the provider offers.
	// It must be safe to call concurrently with itself and with Chat.
	Models(ctx context.Context) ([]Model, error)

	// Chat starts a streamed completion for the conversation.
	// Failures establishing the stream are returned directly; failures while
	// reading it arrive as item errors on the returned Stream.
	Chat(ctx context.Context, model ModelID, conversation Context) (*Stream[ChatCompletionMessage], error)
}
