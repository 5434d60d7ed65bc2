package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spetersoncode/switchboard/client"
	"github.com/spetersoncode/switchboard/internal/config"
)

// app holds what subcommands share once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "switchboard",
		Short:         "Talk to OpenAI-compatible and Anthropic model providers",
		Long:          "Switchboard lists a provider's models and streams chats through one client, whichever protocol family the provider speaks.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (yaml, json or toml)")
	flags.StringP("provider", "p", "", "Provider preset (openai, openrouter, requesty, xai, anthropic) or custom name")
	flags.String("kind", "", "Protocol family for custom providers: openai or anthropic")
	flags.String("base-url", "", "Provider base URL override")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path,
			config.WithFlag("provider.name", changed(cmd, "provider")),
			config.WithFlag("provider.kind", changed(cmd, "kind")),
			config.WithFlag("provider.url", changed(cmd, "base-url")),
			config.WithFlag("log_level", changed(cmd, "log-level")),
		)
		if err != nil {
			return err
		}

		logger, err := cfg.NewLogger()
		if err != nil {
			return err
		}

		c, err := cfg.NewClient(client.WithLogger(logger))
		if err != nil {
			return err
		}

		a.cfg, a.logger, a.client = cfg, logger, c
		return nil
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if a.logger != nil {
			_ = a.logger.Sync()
		}
	}

	root.AddCommand(newModelsCmd(a), newModelCmd(a), newChatCmd(a))
	return root
}

// changed returns the flag only when it was set on the command line, so
// unset flags do not shadow the environment or config file.
func changed(cmd *cobra.Command, name string) *pflag.Flag {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return cmd.Flags().Lookup(name)
}
