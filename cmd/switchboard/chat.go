package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sb "github.com/spetersoncode/switchboard"
)

func newChatCmd(a *app) *cobra.Command {
	var (
		system      string
		maxTokens   int
		temperature float64
		reasoning   bool
	)

	cmd := &cobra.Command{
		Use:   "chat <model> <prompt...>",
		Short: "Stream a single-turn chat to stdout",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var msgs []sb.Message
			if system != "" {
				msgs = append(msgs, sb.SystemMessage(system))
			}
			conv := sb.NewContext(append(msgs, sb.UserMessage(strings.Join(args[1:], " ")))...)
			conv.MaxTokens = maxTokens
			if cmd.Flags().Changed("temperature") {
				conv.Temperature = &temperature
			}

			stream, err := a.client.Chat(cmd.Context(), sb.ModelID(args[0]), conv)
			if err != nil {
				return err
			}
			defer stream.Close()

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			var usage *sb.Usage
			for msg, err := range stream.All() {
				if err != nil {
					fmt.Fprintln(out)
					return err
				}
				if reasoning && msg.Reasoning != "" {
					fmt.Fprint(errOut, msg.Reasoning)
				}
				fmt.Fprint(out, msg.Content)
				if msg.Usage != nil {
					usage = msg.Usage
				}
			}
			fmt.Fprintln(out)

			if usage != nil {
				a.logger.Debug("chat usage",
					zap.Int("input_tokens", usage.InputTokens),
					zap.Int("output_tokens", usage.OutputTokens),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&system, "system", "s", "", "System prompt")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Maximum tokens to generate (0 uses the provider default)")
	cmd.Flags().Float64VarP(&temperature, "temperature", "t", 0, "Sampling temperature")
	cmd.Flags().BoolVar(&reasoning, "reasoning", false, "Print reasoning text to stderr")
	return cmd
}
