// Package mcp exposes a switchboard client as an MCP (Model Context Protocol)
// tool server, so MCP clients such as Claude Desktop can list the provider's
// models and run chats through it.
//
// Tools:
//
//   - list_models: the provider's models (optionally only the cached ones)
//   - get_model: one model by ID
//   - chat: a single-turn chat, returned once the stream completes
//
// Backend failures are reported as tool errors carrying the error category,
// so the calling assistant can tell a rate limit from a bad request.
//
// # Serving over stdio
//
//	c, err := client.New(switchboard.Anthropic(key), nil, version, switchboard.DefaultHTTPConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := mcp.ServeStdio(c, mcp.WithVersion(version)); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	sb "github.com/spetersoncode/switchboard"
)

// Client is the facade the tools call. *client.Client implements it.
type Client interface {
	Models(ctx context.Context) ([]sb.Model, error)
	Model(ctx context.Context, id sb.ModelID) (sb.Model, bool, error)
	Chat(ctx context.Context, id sb.ModelID, conversation sb.Context) (*sb.Stream[sb.ChatCompletionMessage], error)
	CachedModels() []sb.Model
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name         string
	version      string
	defaultModel sb.ModelID
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithDefaultModel sets the model the chat tool uses when the call names none.
func WithDefaultModel(id sb.ModelID) ServerOption {
	return func(c *serverConfig) {
		c.defaultModel = id
	}
}

// NewServer creates an MCP server exposing c's operations as tools.
func NewServer(c Client, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "switchboard",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	h := &handlers{client: c, defaultModel: cfg.defaultModel}
	s.AddTool(listModelsTool(), h.listModels)
	s.AddTool(getModelTool(), h.getModel)
	s.AddTool(chatTool(cfg.defaultModel), h.chat)

	return s
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(c Client, opts ...ServerOption) error {
	s := NewServer(c, opts...)
	return server.ServeStdio(s)
}
