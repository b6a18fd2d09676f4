package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zakharsmirnoff/lloom/conversation"
	"github.com/zakharsmirnoff/lloom/truncate"
)

const (
	mapPrompt    = "Write a concise summary of the following: %s"
	reducePrompt = "Write a short and concise summary for these pieces of text: %s"
	refinePrompt = `Your job is to produce a final summary.
We have provided an existing summary up to a certain point: %s
We have the opportunity to refine the existing summary (only if needed) with some more context below.
%s
Given the new context, refine the original summary. If the context isn't useful, return the original summary.`
)

func newSummarizeCmd(a *app) *cobra.Command {
	var (
		mode        string
		chunkTokens int
	)

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize a long document chunk by chunk",
		Long: `Split a document into chunks that fit the model and summarize it.

map-reduce summarizes every chunk on its own, then summarizes the summaries.
refine carries one summary forward and refines it with each chunk.
The history is cleared between requests so chunks never crowd each other out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if chunkTokens <= 0 {
				return fmt.Errorf("--chunk-tokens must be positive")
			}
			client, err := a.newClient()
			if err != nil {
				return err
			}
			s := summarizer{
				client:      client,
				logger:      a.logger,
				chunkTokens: chunkTokens,
				clip: truncate.New(truncate.FromMiddle,
					truncate.WithCounter(a.estimator.CounterFor(client.Config().Model))),
			}
			chunks := truncate.Split(text, chunkTokens, a.estimator.CounterFor(client.Config().Model))
			if len(chunks) == 0 {
				return fmt.Errorf("nothing to summarize")
			}

			var summary string
			switch mode {
			case "map-reduce":
				summary, err = s.mapReduce(cmd.Context(), chunks)
			case "refine":
				summary, err = s.refine(cmd.Context(), chunks)
			default:
				return fmt.Errorf("unknown mode %q, use map-reduce or refine", mode)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "map-reduce", "map-reduce or refine")
	cmd.Flags().IntVar(&chunkTokens, "chunk-tokens", 1500, "maximum tokens of document text per request")
	return cmd
}

type summarizer struct {
	client      *conversation.Client
	logger      *slog.Logger
	chunkTokens int
	clip        *truncate.Truncator
}

// ask sends one prompt on a clean history.
func (s summarizer) ask(ctx context.Context, prompt string) (string, error) {
	defer s.client.Clear(true)
	return s.client.Generate(ctx, prompt)
}

func (s summarizer) mapReduce(ctx context.Context, chunks []string) (string, error) {
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		s.logger.Info("summarizing chunk", slog.Int("chunk", i+1), slog.Int("of", len(chunks)))
		part, err := s.ask(ctx, fmt.Sprintf(mapPrompt, chunk))
		if err != nil {
			return "", fmt.Errorf("chunk %d: %w", i+1, err)
		}
		parts = append(parts, part)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}

	joined, cut := s.clip.Truncate(strings.Join(parts, ", "), s.chunkTokens)
	if cut {
		s.logger.Warn("chunk summaries clipped to fit one request", slog.Int("chunk_tokens", s.chunkTokens))
	}
	return s.ask(ctx, fmt.Sprintf(reducePrompt, joined))
}

func (s summarizer) refine(ctx context.Context, chunks []string) (string, error) {
	var summary string
	for i, chunk := range chunks {
		s.logger.Info("refining summary", slog.Int("chunk", i+1), slog.Int("of", len(chunks)))
		current, _ := s.clip.Truncate(summary, s.chunkTokens)
		next, err := s.ask(ctx, fmt.Sprintf(refinePrompt, current, chunk))
		if err != nil {
			return "", fmt.Errorf("chunk %d: %w", i+1, err)
		}
		summary = next
	}
	return summary, nil
}
