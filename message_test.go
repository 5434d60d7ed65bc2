package switchboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
	assert.Equal(t, Role("system"), RoleSystem)
}

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, Message{Role: RoleSystem, Content: "be brief"}, SystemMessage("be brief"))
	assert.Equal(t, Message{Role: RoleUser, Content: "hi"}, UserMessage("hi"))
	assert.Equal(t, Message{Role: RoleAssistant, Content: "hello"}, AssistantMessage("hello"))
}

func TestNewContext(t *testing.T) {
	c := NewContext(SystemMessage("sys"), UserMessage("hi"))

	assert.True(t, strings.HasPrefix(c.ConversationID, "conv-"))
	assert.Len(t, c.Messages, 2)

	other := NewContext()
	assert.NotEqual(t, c.ConversationID, other.ConversationID)
}

func TestContextAddMessage(t *testing.T) {
	base := NewContext(UserMessage("one"))
	next := base.AddMessage(AssistantMessage("two"))

	assert.Len(t, base.Messages, 1, "original context must not change")
	assert.Len(t, next.Messages, 2)
	assert.Equal(t, base.ConversationID, next.ConversationID)
	assert.Equal(t, "two", next.Messages[1].Content)
}

func TestChatCompletionMessageIsFinished(t *testing.T) {
	assert.False(t, ChatCompletionMessage{Content: "partial"}.IsFinished())
	assert.True(t, ChatCompletionMessage{FinishReason: FinishReasonStop}.IsFinished())
}

func TestProviderConstructors(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		kind     ProviderKind
		url      string
	}{
		{"openai", OpenAI("k"), ProviderOpenAI, OpenAIURL},
		{"openrouter", OpenRouter("k"), ProviderOpenAI, OpenRouterURL},
		{"requesty", Requesty("k"), ProviderOpenAI, RequestyURL},
		{"xai", XAI("k"), ProviderOpenAI, XAIURL},
		{"anthropic", Anthropic("k"), ProviderAnthropic, AnthropicURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.provider.Kind)
			assert.Equal(t, tt.url, tt.provider.URL)
			assert.Equal(t, tt.name, tt.provider.DisplayName())
			assert.Equal(t, "k", tt.provider.Key)
		})
	}

	compat := OpenAICompatible("http://localhost:11434/v1/", "")
	assert.True(t, compat.IsOpenAICompatible())
	assert.False(t, compat.IsAnthropic())
	assert.Equal(t, "openai", compat.DisplayName())
}

func TestProviderClone(t *testing.T) {
	p := OpenRouter("k")
	p.ExtraHeaders = map[string]string{"X-Title": "switchboard"}

	c := p.Clone()
	c.ExtraHeaders["X-Title"] = "changed"

	assert.Equal(t, "switchboard", p.ExtraHeaders["X-Title"])
}

func TestModelDisplayName(t *testing.T) {
	assert.Equal(t, "GPT X", Model{ID: "gpt-x", Name: "GPT X"}.DisplayName())
	assert.Equal(t, "gpt-x", Model{ID: "gpt-x"}.DisplayName())
}
