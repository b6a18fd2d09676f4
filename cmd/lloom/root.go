package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zakharsmirnoff/lloom/config"
	"github.com/zakharsmirnoff/lloom/conversation"
	"github.com/zakharsmirnoff/lloom/model"
	"github.com/zakharsmirnoff/lloom/provider"
	"github.com/zakharsmirnoff/lloom/tokens"
)

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	envFiles   []string
	model      string
	system     string
	verbose    bool
	offline    bool

	logger    *slog.Logger
	settings  config.File
	estimator *tokens.Estimator
	tracker   *model.UsageTracker
}

func newRootCmd() *cobra.Command {
	a := &app{tracker: model.NewUsageTracker()}

	root := &cobra.Command{
		Use:   "lloom",
		Short: "Chat completions that stay inside the context window",
		Long: `lloom keeps a conversation with a chat completion endpoint, trimming the
oldest turns and lowering the completion budget so that every request fits
the model's context window.

Settings come from --config (YAML, TOML or JSON), then .env files, then
LLOOM_* environment variables, then flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "settings file (.yaml, .toml or .json)")
	flags.StringSliceVar(&a.envFiles, "env-file", nil, ".env files to load (default ./.env)")
	flags.StringVarP(&a.model, "model", "m", "", "model identifier, overrides the settings file")
	flags.StringVarP(&a.system, "system", "s", "", "system message, overrides the settings file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output")
	flags.BoolVar(&a.offline, "offline", false, "estimate tokens from characters instead of loading BPE ranks")

	root.AddCommand(
		newChatCmd(a),
		newAskCmd(a),
		newCountCmd(a),
		newSummarizeCmd(a),
		newSchemaCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = newLogger(cmd.ErrOrStderr(), a.verbose)

	if err := config.LoadDotEnv(a.envFiles...); err != nil {
		return err
	}
	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.applyFlags(cmd, &settings)
	if err := settings.Validate(); err != nil {
		return err
	}
	a.settings = settings

	opts := []tokens.EstimatorOption{tokens.WithLogger(a.logger)}
	if a.offline {
		opts = append(opts, tokens.WithEncodings(tokens.EstimatingEncodings{}))
	}
	a.estimator = tokens.NewEstimator(opts...)
	return nil
}

// applyFlags puts flag overrides on top of loaded settings. It is also
// applied to reloaded settings so a reload never undoes a flag.
func (a *app) applyFlags(cmd *cobra.Command, f *config.File) {
	if a.model != "" {
		f.Conversation.Model = a.model
	}
	if cmd.Flags().Changed("system") {
		f.Conversation.SystemMessage = a.system
	}
}

func (a *app) newClient() (*conversation.Client, error) {
	transport, err := provider.Open(a.settings.Transport)
	if err != nil {
		return nil, fmt.Errorf("opening transport: %w", err)
	}
	return conversation.New(a.settings.Conversation, transport,
		conversation.WithLogger(a.logger),
		conversation.WithEstimator(a.estimator),
		conversation.WithUsageTracker(a.tracker),
	)
}

// newLogger writes text to terminals and JSON everywhere else.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func (a *app) printUsage(w io.Writer) {
	total := a.tracker.TotalUsage()
	fmt.Fprintf(w, "requests: %d, prompt tokens: %d, completion tokens: %d, estimated cost: $%.4f\n",
		total.Requests, total.PromptTokens, total.CompletionTokens, a.tracker.EstimatedCost())
}
