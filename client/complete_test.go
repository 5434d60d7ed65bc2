package client

import (
	"context"
	"io"
	"testing"

	sb "github.com/spetersoncode/switchboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamOf(items ...any) func(context.Context, sb.ModelID, sb.Context) (*sb.Stream[sb.ChatCompletionMessage], error) {
	return func(context.Context, sb.ModelID, sb.Context) (*sb.Stream[sb.ChatCompletionMessage], error) {
		return sb.NewStream(func(yield func(sb.ChatCompletionMessage, error) bool) {
			for _, item := range items {
				var ok bool
				switch v := item.(type) {
				case error:
					ok = yield(sb.ChatCompletionMessage{}, v)
				case sb.ChatCompletionMessage:
					ok = yield(v, nil)
				}
				if !ok {
					return
				}
			}
		}, nil), nil
	}
}

func TestComplete(t *testing.T) {
	stub := &stubBackend{chat: streamOf(
		sb.ChatCompletionMessage{Reasoning: "hmm"},
		sb.ChatCompletionMessage{Content: "Hello"},
		sb.ChatCompletionMessage{Content: ", world"},
		sb.ChatCompletionMessage{FinishReason: sb.FinishReasonStop, Usage: &sb.Usage{InputTokens: 5, OutputTokens: 4}},
	)}
	c := newStubClient(t, stub)

	out, err := Complete(context.Background(), c, "gpt-x", sb.NewContext(sb.UserMessage("hi")))
	require.NoError(t, err)
	assert.Equal(t, &Completion{
		Content:      "Hello, world",
		Reasoning:    "hmm",
		FinishReason: sb.FinishReasonStop,
		Usage:        sb.Usage{InputTokens: 5, OutputTokens: 4},
	}, out)
}

func TestCompleteStopsAtFirstError(t *testing.T) {
	stub := &stubBackend{chat: streamOf(
		sb.ChatCompletionMessage{Content: "partial"},
		io.ErrUnexpectedEOF,
		sb.ChatCompletionMessage{Content: " never"},
	)}
	c := newStubClient(t, stub)

	out, err := Complete(context.Background(), c, "gpt-x", sb.NewContext(sb.UserMessage("hi")))
	require.Error(t, err)
	assert.True(t, sb.IsTransient(err))
	require.NotNil(t, out)
	assert.Equal(t, "partial", out.Content)
}
