// Command mcp serves a switchboard client as MCP tools over stdio.
//
// Settings come from SWITCHBOARD_* environment variables, an optional
// config file and a .env file; logs go to stderr so stdout stays clean for
// the protocol.
//
// Usage:
//
//	go run ./cmd/mcp -config switchboard.yaml
//
// Configuration for Claude Desktop (~/Library/Application Support/Claude/claude_desktop_config.json):
//
//	{
//	    "mcpServers": {
//	        "switchboard": {
//	            "command": "go",
//	            "args": ["run", "./cmd/mcp"],
//	            "cwd": "/path/to/switchboard",
//	            "env": {"SWITCHBOARD_PROVIDER_NAME": "openrouter"}
//	        }
//	    }
//	}
package main

import (
	"fmt"
	"os"

	sb "github.com/spetersoncode/switchboard"
	"github.com/spetersoncode/switchboard/client"
	"github.com/spetersoncode/switchboard/internal/config"
	"github.com/spetersoncode/switchboard/mcp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("mcp", pflag.ExitOnError)
	path := flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("provider", "", "provider preset or custom name")
	flags.String("model", "", "default model for the chat tool")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*path,
		config.WithFlag("provider.name", changed(flags, "provider")),
		config.WithFlag("model", changed(flags, "model")),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	c, err := cfg.NewClient(client.WithLogger(logger))
	if err != nil {
		logger.Fatal("building client", zap.Error(err))
	}

	logger.Info("serving mcp over stdio",
		zap.String("provider", c.Provider().DisplayName()),
		zap.String("model", cfg.Model),
	)
	if err := mcp.ServeStdio(c,
		mcp.WithName("switchboard-mcp"),
		mcp.WithVersion(cfg.Version),
		mcp.WithDefaultModel(sb.ModelID(cfg.Model)),
	); err != nil {
		logger.Fatal("mcp server stopped", zap.Error(err))
	}
}

// changed returns the named flag only when it was set on the command line.
func changed(flags *pflag.FlagSet, name string) *pflag.Flag {
	if !flags.Changed(name) {
		return nil
	}
	return flags.Lookup(name)
}
