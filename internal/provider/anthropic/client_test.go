package anthropic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sb "github.com/spetersoncode/switchboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvents(w http.ResponseWriter, events ...[2]string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	for _, e := range events {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e[0], e[1])
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider := sb.Anthropic("test-key")
	provider.URL = srv.URL + "/"
	c, err := New(provider, srv.Client(), WithVersion("0.9.0"))
	require.NoError(t, err)
	return c
}

func TestNewValidation(t *testing.T) {
	_, err := New(sb.Anthropic(""), nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	p := sb.Anthropic("key")
	p.URL = "api.anthropic.com"
	_, err = New(p, nil)
	assert.ErrorIs(t, err, ErrInvalidURL)

	c, err := New(sb.Anthropic("key"), nil)
	require.NoError(t, err)
	assert.Equal(t, sb.AnthropicURL, c.Provider().URL)
}

func TestModels(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "0.9.0", r.Header.Get("X-Client-Version"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [
				{"type": "model", "id": "claude-sonnet-4-5", "display_name": "Claude Sonnet 4.5", "created_at": "2025-09-29T00:00:00Z"},
				{"type": "model", "id": "claude-haiku-4-5", "display_name": "Claude Haiku 4.5", "created_at": "2025-10-01T00:00:00Z"}
			],
			"has_more": false,
			"first_id": "claude-sonnet-4-5",
			"last_id": "claude-haiku-4-5"
		}`)
	}))

	models, err := c.Models(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, sb.ModelID("claude-sonnet-4-5"), models[0].ID)
	assert.Equal(t, "Claude Sonnet 4.5", models[0].Name)
	assert.Equal(t, time.Date(2025, 9, 29, 0, 0, 0, 0, time.UTC), models[0].CreatedAt.UTC())
	assert.Equal(t, "Claude Haiku 4.5", models[1].DisplayName())
}

func TestChatStream(t *testing.T) {
	var body string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(raw)

		writeEvents(w,
			[2]string{"message_start", `{"type":"message_start","message":{"id":"msg_1","type":"message","role":"assistant","model":"claude-sonnet-4-5","content":[],"stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":21,"output_tokens":1}}}`},
			[2]string{"content_block_start", `{"type":"content_block_start","index":0,"content_block":{"type":"thinking","thinking":""}}`},
			[2]string{"content_block_delta", `{"type":"content_block_delta","index":0,"delta":{"type":"thinking_delta","thinking":"Let me think."}}`},
			[2]string{"content_block_stop", `{"type":"content_block_stop","index":0}`},
			[2]string{"ping", `{"type":"ping"}`},
			[2]string{"content_block_start", `{"type":"content_block_start","index":1,"content_block":{"type":"text","text":""}}`},
			[2]string{"content_block_delta", `{"type":"content_block_delta","index":1,"delta":{"type":"text_delta","text":"Hello"}}`},
			[2]string{"content_block_delta", `{"type":"content_block_delta","index":1,"delta":{"type":"text_delta","text":" there"}}`},
			[2]string{"content_block_stop", `{"type":"content_block_stop","index":1}`},
			[2]string{"message_delta", `{"type":"message_delta","delta":{"stop_reason":"end_turn","stop_sequence":null},"usage":{"output_tokens":9}}`},
			[2]string{"message_stop", `{"type":"message_stop"}`},
		)
	}))

	conv := sb.NewContext(sb.SystemMessage("be brief"), sb.UserMessage("hi"), sb.SystemMessage(""))
	stream, err := c.Chat(context.Background(), "claude-sonnet-4-5", conv)
	require.NoError(t, err)

	items, err := stream.Collect()
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "Let me think.", items[0].Reasoning)
	assert.Equal(t, "Hello", items[1].Content)
	assert.Equal(t, " there", items[2].Content)
	assert.Equal(t, sb.FinishReasonStop, items[3].FinishReason)
	require.NotNil(t, items[3].Usage)
	assert.Equal(t, sb.Usage{InputTokens: 21, OutputTokens: 9}, *items[3].Usage)

	assert.Contains(t, body, `"max_tokens":4096`)
	assert.Contains(t, body, `"system":[`)
	assert.Contains(t, body, `"be brief"`)
	assert.Contains(t, body, `"stream":true`)
}

func TestChatOverloaded(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(529)
		fmt.Fprint(w, `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`)
	}))

	_, err := c.Chat(context.Background(), "claude-sonnet-4-5", sb.NewContext(sb.UserMessage("hi")))
	require.Error(t, err)
	assert.True(t, sb.IsTransient(err))
	assert.Equal(t, 529, sb.StatusCodeOf(err))
}

func TestChatRequiresConversationMessages(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	_, err := c.Chat(context.Background(), "claude-sonnet-4-5", sb.NewContext(sb.SystemMessage("only a system prompt")))
	assert.True(t, sb.IsUserInput(err))
}

func TestConvertStopReason(t *testing.T) {
	assert.Equal(t, sb.FinishReasonStop, convertStopReason("stop_sequence"))
	assert.Equal(t, sb.FinishReasonLength, convertStopReason("max_tokens"))
	assert.Equal(t, sb.FinishReasonToolCalls, convertStopReason("tool_use"))
	assert.Equal(t, sb.FinishReasonContentFilter, convertStopReason("refusal"))
	assert.Equal(t, sb.FinishReason("pause_turn"), convertStopReason("pause_turn"))
}
