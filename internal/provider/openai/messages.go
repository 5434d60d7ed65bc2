package openai

import (
	"time"

	"github.com/openai/openai-go"
	sb "github.com/spetersoncode/switchboard"
	"github.com/tidwall/gjson"
)

func convertMessages(messages []sb.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case sb.RoleSystem:
			result = append(result, openai.SystemMessage(msg.Content))
		case sb.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}

// convertChunk maps one streamed chunk. Chunks carrying nothing the caller
// can use (role-only deltas, keep-alives) are skipped.
func convertChunk(chunk openai.ChatCompletionChunk) (sb.ChatCompletionMessage, bool) {
	var msg sb.ChatCompletionMessage

	if len(chunk.Choices) > 0 {
		choice := chunk.Choices[0]
		msg.Content = choice.Delta.Content
		msg.FinishReason = convertFinishReason(choice.FinishReason)

		// Routers expose reasoning under non-standard delta keys.
		raw := choice.Delta.RawJSON()
		if r := gjson.Get(raw, "reasoning"); r.Type == gjson.String {
			msg.Reasoning = r.String()
		} else if r := gjson.Get(raw, "reasoning_content"); r.Type == gjson.String {
			msg.Reasoning = r.String()
		}
	}

	if chunk.JSON.Usage.Valid() && (chunk.Usage.PromptTokens > 0 || chunk.Usage.CompletionTokens > 0) {
		msg.Usage = &sb.Usage{
			InputTokens:  int(chunk.Usage.PromptTokens),
			OutputTokens: int(chunk.Usage.CompletionTokens),
		}
	}

	empty := msg.Content == "" && msg.Reasoning == "" && msg.FinishReason == "" && msg.Usage == nil
	return msg, !empty
}

func convertFinishReason(reason string) sb.FinishReason {
	switch reason {
	case "":
		return ""
	case "stop":
		return sb.FinishReasonStop
	case "length":
		return sb.FinishReasonLength
	case "tool_calls", "function_call":
		return sb.FinishReasonToolCalls
	case "content_filter":
		return sb.FinishReasonContentFilter
	default:
		return sb.FinishReason(reason)
	}
}

// convertModel maps a listed model. OpenRouter-style listings carry extra
// metadata that the OpenAI schema does not declare.
func convertModel(m openai.Model) sb.Model {
	raw := m.RawJSON()
	model := sb.Model{
		ID:            sb.ModelID(m.ID),
		Name:          gjson.Get(raw, "name").String(),
		Description:   gjson.Get(raw, "description").String(),
		OwnedBy:       m.OwnedBy,
		ContextLength: gjson.Get(raw, "context_length").Int(),
	}
	if m.Created > 0 {
		model.CreatedAt = time.Unix(m.Created, 0).UTC()
	}

	if params := gjson.Get(raw, "supported_parameters"); params.IsArray() {
		supported := map[string]bool{}
		for _, p := range params.Array() {
			supported[p.String()] = true
		}
		model.ToolsSupported = boolPtr(supported["tools"])
		model.SupportsParallelToolCalls = boolPtr(supported["parallel_tool_calls"])
		model.SupportsReasoning = boolPtr(supported["reasoning"] || supported["include_reasoning"])
	}
	return model
}

func boolPtr(b bool) *bool { return &b }
