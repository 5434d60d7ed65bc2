package agui

import (
	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	sb "github.com/spetersoncode/switchboard"
)

// Role constants matching AG-UI protocol.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleDeveloper = "developer"
	RoleTool      = "tool"
)

// ToMessages converts AG-UI messages to switchboard messages.
// Tool messages and messages without content are dropped; switchboard chats
// carry text only.
func ToMessages(msgs []events.Message) []sb.Message {
	result := make([]sb.Message, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Role == RoleTool || msg.Content == nil || *msg.Content == "" {
			continue
		}
		result = append(result, ToMessage(msg))
	}
	return result
}

// ToMessage converts a single AG-UI message to a switchboard message.
func ToMessage(msg events.Message) sb.Message {
	m := sb.Message{Role: toRole(msg.Role)}
	if msg.Content != nil {
		m.Content = *msg.Content
	}
	return m
}

// FromMessages converts switchboard messages to AG-UI messages, for
// MESSAGES_SNAPSHOT events.
func FromMessages(msgs []sb.Message) []events.Message {
	result := make([]events.Message, 0, len(msgs))
	for _, msg := range msgs {
		result = append(result, FromMessage(msg))
	}
	return result
}

// FromMessage converts a single switchboard message to an AG-UI message
// with a fresh ID.
func FromMessage(msg sb.Message) events.Message {
	m := events.Message{
		ID:   events.GenerateMessageID(),
		Role: string(msg.Role),
	}
	if msg.Content != "" {
		content := msg.Content
		m.Content = &content
	}
	return m
}

func toRole(role string) sb.Role {
	switch role {
	case RoleAssistant:
		return sb.RoleAssistant
	case RoleSystem, RoleDeveloper:
		return sb.RoleSystem
	default:
		return sb.RoleUser
	}
}
