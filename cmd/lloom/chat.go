package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zakharsmirnoff/lloom/config"
	"github.com/zakharsmirnoff/lloom/conversation"
	"github.com/zakharsmirnoff/lloom/provider"
)

const chatHelp = `commands:
  /clear             clear the history, keep the system message
  /reset             clear the history and the system message turn
  /system <text>     set the system message
  /set key=value...  change settings (temperature=0.2 max_tokens=500)
  /history           print the conversation
  /usage             print token usage and estimated cost
  /quit              leave`

func newChatCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long: `Start an interactive conversation. Each line is sent as a prompt; lines
starting with / are commands.

` + chatHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			s := &chatSession{
				app:    a,
				cmd:    cmd,
				client: client,
				out:    cmd.OutOrStdout(),
			}
			return s.run(cmd.Context(), cmd.InOrStdin(), watch)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "apply changes to the --config file while chatting")
	return cmd
}

type chatSession struct {
	app    *app
	cmd    *cobra.Command
	client *conversation.Client
	out    io.Writer
}

// run reads lines and config reloads on one goroutine, so the client is
// only ever touched from here.
func (s *chatSession) run(ctx context.Context, in io.Reader, watch bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		reloads   <-chan config.File
		reloadErr <-chan error
	)
	if watch {
		if s.app.configPath == "" {
			return errors.New("--watch needs --config")
		}
		var err error
		reloads, reloadErr, err = config.Watch(ctx, s.app.configPath)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(s.out, "type /help for commands")
	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := s.handle(ctx, strings.TrimSpace(line)); quit {
				return nil
			}

		case f, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			s.app.applyFlags(s.cmd, &f)
			if err := s.client.Configure(conversation.UpdateFrom(f.Conversation)); err != nil {
				fmt.Fprintf(s.out, "config reload rejected: %v\n", err)
				continue
			}
			if f.Transport != s.app.settings.Transport {
				s.app.logger.Warn("transport settings changed, restart to apply them")
			}
			fmt.Fprintln(s.out, "config reloaded")

		case err, ok := <-reloadErr:
			if !ok {
				reloadErr = nil
				continue
			}
			s.app.logger.Warn("config reload failed", slog.Any("error", err))
		}
	}
}

// handle runs one input line and reports whether the session should end.
func (s *chatSession) handle(ctx context.Context, line string) bool {
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, "/") {
		reply, err := s.client.Generate(ctx, line)
		if err != nil {
			if errors.Is(err, conversation.ErrFitExhausted) {
				fmt.Fprintln(s.out, "error: message too long for the context window, shorten it or /reset")
				return false
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
			if provider.IsAuthError(err) {
				fmt.Fprintf(s.out, "set %s, %s or %s\n", config.OpenAIKeyEnv, config.AzureKeyEnv, config.EnvPrefix+"API_KEY")
			}
			return false
		}
		fmt.Fprintln(s.out, reply)
		return false
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch name {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Fprintln(s.out, chatHelp)
	case "/clear":
		s.client.Clear(true)
	case "/reset":
		s.client.Clear(false)
	case "/system":
		s.client.SetSystemMessage(rest)
	case "/set":
		s.set(rest)
	case "/history":
		for _, m := range s.client.History() {
			fmt.Fprintf(s.out, "%s: %s\n", m.Role, m.Content)
		}
	case "/usage":
		s.app.printUsage(s.out)
		fmt.Fprintf(s.out, "max_tokens: %d\n", s.client.Config().MaxTokens)
	default:
		fmt.Fprintf(s.out, "unknown command %s, type /help\n", name)
	}
	return false
}

func (s *chatSession) set(args string) {
	values := make(map[string]string)
	for _, pair := range strings.Fields(args) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			fmt.Fprintf(s.out, "expected key=value, got %q\n", pair)
			return
		}
		values[k] = v
	}
	u, unknown, err := conversation.ParseUpdate(values)
	for _, k := range unknown {
		fmt.Fprintf(s.out, "unknown setting %s, skipping\n", k)
	}
	if err == nil {
		err = s.client.Configure(u)
	}
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}
