package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zakharsmirnoff/lloom/provider"
	"github.com/zakharsmirnoff/lloom/tokens"
)

func newCountCmd(a *app) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "count [file]",
		Short: "Estimate the prompt tokens of a text",
		Long: `Count the tokens a text costs when sent as one message, framing included,
and compare it with the model's context window. Reads standard input when
no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			r := provider.Role(role)
			if !r.Valid() {
				return fmt.Errorf("invalid role %q", role)
			}

			cfg := a.settings.Conversation
			var messages []provider.Message
			if cfg.SystemMessage != "" {
				messages = append(messages, provider.Message{Role: provider.RoleSystem, Content: cfg.SystemMessage})
			}
			messages = append(messages, provider.Message{Role: r, Content: text})

			out := cmd.OutOrStdout()
			prompt := a.estimator.Count(messages, cfg.Model)
			if prompt == 0 {
				fmt.Fprintf(out, "model %s: token counting not supported\n", cfg.Model)
				return nil
			}
			fmt.Fprintf(out, "model: %s\nprompt tokens: %d\n", cfg.Model, prompt)

			if window, ok := tokens.LimitFor(cfg.Model); ok {
				b := tokens.Budget{Window: window, MaxOutput: cfg.MaxTokens}
				fmt.Fprintf(out, "context window: %d\nleft for completion: %d\n", window, b.Remaining(prompt))
				if !b.Fits(prompt) {
					fmt.Fprintf(out, "max_tokens %d does not fit and would be lowered\n", cfg.MaxTokens)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", string(provider.RoleUser), "role of the counted message")
	return cmd
}

// readInput returns the named file, or all of stdin when args is empty.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(raw), nil
}
