package switchboard

import "github.com/google/uuid"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
}

// SystemMessage creates a system message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Context is the conversation handed to a backend for one chat call.
// It is owned by the caller; backends do not retain it.
type Context struct {
	// ConversationID correlates log lines and events for one conversation.
	ConversationID string    `json:"conversationId,omitempty"`
	Messages       []Message `json:"messages"`
	// MaxTokens limits the response length. Zero uses the backend default.
	MaxTokens int `json:"maxTokens,omitempty"`
	// Temperature is sent only when set.
	Temperature *float64 `json:"temperature,omitempty"`
}

// NewConversationID creates a unique conversation identifier.
func NewConversationID() string {
	return "conv-" + uuid.New().String()
}

// NewContext creates a Context with a fresh conversation ID.
func NewContext(messages ...Message) Context {
	return Context{
		ConversationID: NewConversationID(),
		Messages:       messages,
	}
}

// AddMessage returns a copy of c with msg appended.
func (c Context) AddMessage(msg Message) Context {
	msgs := make([]Message, 0, len(c.Messages)+1)
	msgs = append(msgs, c.Messages...)
	c.Messages = append(msgs, msg)
	return c
}

// FinishReason explains why a backend stopped generating.
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonToolCalls     FinishReason = "tool_calls"
	FinishReasonContentFilter FinishReason = "content_filter"
)

// Usage contains token usage information for a request.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// ChatCompletionMessage is one unit of a streamed chat response.
type ChatCompletionMessage struct {
	// Content is the incremental text for this item.
	Content string `json:"content,omitempty"`
	// Reasoning is incremental reasoning text, when the backend exposes it.
	Reasoning string `json:"reasoning,omitempty"`
	// FinishReason is set on the item that ends generation.
	FinishReason FinishReason `json:"finishReason,omitempty"`
	// Usage is set when the backend reports token counts.
	Usage *Usage `json:"usage,omitempty"`
}

// IsFinished reports whether the item carries a finish reason.
func (m ChatCompletionMessage) IsFinished() bool {
	return m.FinishReason != ""
}
