package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	sb "github.com/spetersoncode/switchboard"
)

var errModelNotFound = errors.New("model not found")

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the provider's models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.client.Models(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCONTEXT")
			for _, m := range models {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.DisplayName(), contextLength(m))
			}
			return tw.Flush()
		},
	}
}

func newModelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "model <id>",
		Short: "Show one model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok, err := a.client.Model(cmd.Context(), sb.ModelID(args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "model %q not found\n", args[0])
				return errModelNotFound
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", m.ID)
			fmt.Fprintf(out, "Name:        %s\n", m.DisplayName())
			if m.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", m.Description)
			}
			if m.OwnedBy != "" {
				fmt.Fprintf(out, "Owned by:    %s\n", m.OwnedBy)
			}
			if !m.CreatedAt.IsZero() {
				fmt.Fprintf(out, "Created:     %s\n", m.CreatedAt.Format("2006-01-02"))
			}
			fmt.Fprintf(out, "Context:     %s\n", contextLength(m))
			fmt.Fprintf(out, "Tools:       %s\n", yesNo(m.ToolsSupported))
			fmt.Fprintf(out, "Reasoning:   %s\n", yesNo(m.SupportsReasoning))
			return nil
		},
	}
}

func contextLength(m sb.Model) string {
	if m.ContextLength == 0 {
		return "-"
	}
	return fmt.Sprint(m.ContextLength)
}

func yesNo(b *bool) string {
	switch {
	case b == nil:
		return "unknown"
	case *b:
		return "yes"
	default:
		return "no"
	}
}
