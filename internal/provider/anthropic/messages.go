package anthropic

import (
	"github.com/anthropics/anthropic-sdk-go"
	sb "github.com/spetersoncode/switchboard"
)

func convertMessages(messages []sb.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var result []anthropic.MessageParam
	var system []anthropic.TextBlockParam

	for _, msg := range messages {
		// Skip empty messages - Anthropic API rejects empty text blocks
		if msg.Content == "" {
			continue
		}
		switch msg.Role {
		case sb.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case sb.RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	return result, system
}

// streamState carries what message_start reports until message_delta
// completes the usage figures.
type streamState struct {
	inputTokens int64
}

// convert maps one stream event. Events carrying nothing the caller can use
// (pings, block boundaries, signatures) are skipped.
func (s *streamState) convert(event anthropic.MessageStreamEventUnion) (sb.ChatCompletionMessage, bool) {
	switch event.Type {
	case "message_start":
		s.inputTokens = event.AsMessageStart().Message.Usage.InputTokens
	case "content_block_delta":
		delta := event.AsContentBlockDelta().Delta
		switch delta.Type {
		case "text_delta":
			return sb.ChatCompletionMessage{Content: delta.AsTextDelta().Text}, true
		case "thinking_delta":
			return sb.ChatCompletionMessage{Reasoning: delta.AsThinkingDelta().Thinking}, true
		}
	case "message_delta":
		md := event.AsMessageDelta()
		input := max(s.inputTokens, md.Usage.InputTokens)
		return sb.ChatCompletionMessage{
			FinishReason: convertStopReason(md.Delta.StopReason),
			Usage: &sb.Usage{
				InputTokens:  int(input),
				OutputTokens: int(md.Usage.OutputTokens),
			},
		}, true
	}
	return sb.ChatCompletionMessage{}, false
}

func convertStopReason(reason anthropic.StopReason) sb.FinishReason {
	switch reason {
	case "":
		return ""
	case anthropic.StopReasonEndTurn, anthropic.StopReasonStopSequence:
		return sb.FinishReasonStop
	case anthropic.StopReasonMaxTokens:
		return sb.FinishReasonLength
	case anthropic.StopReasonToolUse:
		return sb.FinishReasonToolCalls
	case anthropic.StopReasonRefusal:
		return sb.FinishReasonContentFilter
	default:
		return sb.FinishReason(reason)
	}
}
