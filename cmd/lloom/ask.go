package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(a *app) *cobra.Command {
	var showUsage bool

	cmd := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Ask a single question",
		Long: `Send one prompt and print the reply. With no arguments the prompt is read
from standard input.

Examples:
  lloom ask "Name three prime numbers"
  git diff | lloom ask --system "Review this patch"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if prompt == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading prompt: %w", err)
				}
				prompt = strings.TrimSpace(string(raw))
			}
			if prompt == "" {
				return fmt.Errorf("empty prompt")
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			reply, err := client.Generate(cmd.Context(), prompt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			if showUsage {
				a.printUsage(cmd.ErrOrStderr())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showUsage, "usage", false, "print token usage to stderr")
	return cmd
}
