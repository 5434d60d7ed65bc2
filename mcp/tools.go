package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	sb "github.com/spetersoncode/switchboard"
	"github.com/spetersoncode/switchboard/client"
)

func listModelsTool() mcp.Tool {
	return mcp.NewTool("list_models",
		mcp.WithDescription("List the models offered by the configured provider."),
		mcp.WithBoolean("cached", mcp.Description("Return only models already in the local cache, without contacting the provider.")),
	)
}

func getModelTool() mcp.Tool {
	return mcp.NewTool("get_model",
		mcp.WithDescription("Describe one model: name, context length and capabilities."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Model ID, for example openai/gpt-4o.")),
	)
}

func chatTool(defaultModel sb.ModelID) mcp.Tool {
	modelOpts := []mcp.PropertyOption{mcp.Description("Model ID to chat with.")}
	if defaultModel == "" {
		modelOpts = append(modelOpts, mcp.Required())
	} else {
		modelOpts = append(modelOpts, mcp.DefaultString(defaultModel.String()))
	}

	return mcp.NewTool("chat",
		mcp.WithDescription("Send a prompt to a model and return its full reply."),
		mcp.WithString("model", modelOpts...),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("The user message.")),
		mcp.WithString("system", mcp.Description("Optional system prompt.")),
		mcp.WithNumber("max_tokens", mcp.Min(1), mcp.Description("Maximum tokens to generate.")),
		mcp.WithNumber("temperature", mcp.Min(0), mcp.Max(2), mcp.Description("Sampling temperature.")),
	)
}

// ModelList is the structured result of list_models.
type ModelList struct {
	Models []sb.Model `json:"models"`
}

type handlers struct {
	client       Client
	defaultModel sb.ModelID
}

func (h *handlers) listModels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var models []sb.Model
	if req.GetBool("cached", false) {
		models = h.client.CachedModels()
	} else {
		var err error
		models, err = h.client.Models(ctx)
		if err != nil {
			return toolError(err), nil
		}
	}
	if models == nil {
		models = []sb.Model{}
	}

	var b strings.Builder
	for _, m := range models {
		fmt.Fprintf(&b, "%s\t%s\n", m.ID, m.DisplayName())
	}
	return mcp.NewToolResultStructured(ModelList{Models: models}, b.String()), nil
}

func (h *handlers) getModel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, ok, err := h.client.Model(ctx, sb.ModelID(id))
	if err != nil {
		return toolError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("model %q not found", id)), nil
	}

	text := m.DisplayName()
	if m.ContextLength > 0 {
		text = fmt.Sprintf("%s (%d tokens context)", text, m.ContextLength)
	}
	return mcp.NewToolResultStructured(m, text), nil
}

func (h *handlers) chat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	model := sb.ModelID(req.GetString("model", h.defaultModel.String()))
	if model == "" {
		return mcp.NewToolResultError("model is required"), nil
	}

	var msgs []sb.Message
	if system := req.GetString("system", ""); system != "" {
		msgs = append(msgs, sb.SystemMessage(system))
	}
	conv := sb.NewContext(append(msgs, sb.UserMessage(prompt))...)
	conv.MaxTokens = req.GetInt("max_tokens", 0)
	if _, ok := req.GetArguments()["temperature"]; ok {
		t := req.GetFloat("temperature", 0)
		conv.Temperature = &t
	}

	out, err := client.Complete(ctx, h.client, model, conv)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultStructured(out, out.Content), nil
}

// toolError reports a classified failure to the MCP client.
func toolError(err error) *mcp.CallToolResult {
	if cat := sb.CategoryOf(err); cat != "" {
		return mcp.NewToolResultError(fmt.Sprintf("%s error: %v", cat, err))
	}
	return mcp.NewToolResultError(err.Error())
}
