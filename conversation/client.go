package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/zakharsmirnoff/lloom/model"
	"github.com/zakharsmirnoff/lloom/provider"
	"github.com/zakharsmirnoff/lloom/tokens"
)

// Estimator counts the prompt tokens of a history. A count of 0 means the
// model is not understood and no budget can be enforced.
type Estimator interface {
	Count(messages []provider.Message, model string) int
}

// Client is a single conversation against a completion transport.
type Client struct {
	id        string
	cfg       Config
	transport provider.Client
	estimator Estimator
	limits    map[string]int
	tracker   *model.UsageTracker
	usage     model.Usage

	handler slog.Handler
	level   *slog.LevelVar
	logger  *slog.Logger

	history []provider.Message
}

// Option configures a Client.
type Option func(*Client)

// WithEstimator replaces the tiktoken based estimator.
func WithEstimator(e Estimator) Option {
	return func(c *Client) { c.estimator = e }
}

// WithLogger sets where the Client logs. Records are filtered by the
// Logging setting before they reach logger's handler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.handler = logger.Handler() }
}

// WithLimits replaces the context window table. Models absent from it are
// sent without budget enforcement.
func WithLimits(limits map[string]int) Option {
	return func(c *Client) { c.limits = limits }
}

// WithUsageTracker records every successful completion in t as well, so
// several Clients can share one account of spend.
func WithUsageTracker(t *model.UsageTracker) Option {
	return func(c *Client) { c.tracker = t }
}

// New creates a Client. The configuration is validated and the history is
// seeded with the system message when one is configured.
func New(cfg Config, transport provider.Client, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, ErrNoTransport
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		id:        uuid.NewString(),
		cfg:       cfg,
		transport: transport,
		limits:    tokens.ModelLimits,
		handler:   slog.Default().Handler(),
		level:     new(slog.LevelVar),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.level.Set(levelFor(cfg.Logging))
	c.logger = slog.New(newLevelHandler(c.level, c.handler)).With(
		slog.String("conversation", c.id),
		slog.String("transport", transport.Provider()),
	)
	if c.estimator == nil {
		c.estimator = tokens.NewEstimator(tokens.WithLogger(c.logger))
	}

	if cfg.SystemMessage != "" {
		c.history = []provider.Message{systemMessage(cfg.SystemMessage)}
	}
	return c, nil
}

// ID returns the identifier attached to the Client's log records.
func (c *Client) ID() string {
	return c.id
}

// Config returns the live configuration, including any MaxTokens
// reduction made while fitting.
func (c *Client) Config() Config {
	return c.cfg
}

// Usage returns the tokens reported by the transport over the Client's
// lifetime.
func (c *Client) Usage() model.Usage {
	return c.usage
}

// Configure applies u as a whole or not at all. On rejection the error is
// logged, the previous configuration stays live and a
// *ConfigValidationError is returned.
//
// A changed system message is mirrored into the history: it replaces or is
// inserted at position 0, and an empty one removes it.
func (c *Client) Configure(u Update) error {
	next := u.Apply(c.cfg)
	if err := next.Validate(); err != nil {
		c.logger.Error("invalid value in config update, nothing was changed",
			slog.Any("error", err))
		return err
	}

	prev := c.cfg
	c.cfg = next
	c.level.Set(levelFor(next.Logging))

	if next.SystemMessage != prev.SystemMessage {
		c.placeSystemMessage(next.SystemMessage)
	}
	c.logger.Info("config updated",
		slog.String("model", next.Model),
		slog.Int("max_tokens", next.MaxTokens))
	return nil
}

// SetSystemMessage sets the system message in the configuration and at
// position 0 of the history. An empty text removes the system message.
func (c *Client) SetSystemMessage(text string) {
	c.cfg.SystemMessage = text
	c.placeSystemMessage(text)
	c.logger.Info("system message set", slog.String("content", text))
}

// AppendUser adds a user turn.
func (c *Client) AppendUser(text string) {
	c.history = append(c.history, provider.NewTextMessage(provider.RoleUser, text))
	c.logger.Info("added user message", slog.String("content", text))
}

// AppendAssistant adds an assistant turn.
func (c *Client) AppendAssistant(text string) {
	c.history = append(c.history, provider.NewTextMessage(provider.RoleAssistant, text))
	c.logger.Info("added assistant message", slog.String("content", text))
}

// History returns a copy of the conversation in order.
func (c *Client) History() []provider.Message {
	return slices.Clone(c.history)
}

// Clear empties the history. With keepSystem the configured system
// message, if any, is kept as the only entry.
func (c *Client) Clear(keepSystem bool) {
	if keepSystem && c.cfg.SystemMessage != "" {
		c.history = []provider.Message{systemMessage(c.cfg.SystemMessage)}
	} else {
		c.history = nil
	}
	c.logger.Info("history cleared",
		slog.Bool("keep_system", keepSystem),
		slog.Int("messages", len(c.history)))
}

// Generate appends prompt as a user turn, fits the history to the model's
// context window and requests a completion. The reply is appended to the
// history and returned.
//
// If fitting runs out of messages the error wraps ErrFitExhausted and the
// transport is not called. Transport errors are returned as they are; the
// user turn stays in the history and no assistant turn is added.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.AppendUser(prompt)

	if err := c.fit(); err != nil {
		return "", err
	}

	c.logger.Info("generating",
		slog.String("prompt", prompt),
		slog.Int("messages", len(c.history)),
		slog.Int("max_tokens", c.cfg.MaxTokens))

	start := time.Now()
	resp, err := c.transport.Complete(ctx, c.request())
	if err != nil {
		c.logger.Error("completion failed", slog.Any("error", err))
		return "", err
	}
	elapsed := time.Since(start)

	c.record(resp.Usage)
	c.logger.Info("completion received",
		slog.Int("total_tokens", resp.Usage.TotalTokens),
		slog.Duration("elapsed", elapsed),
		slog.String("finish_reason", resp.FinishReason))

	c.AppendAssistant(resp.Content)
	return resp.Content, nil
}

// fit trims the history and lowers MaxTokens until the prompt plus the
// requested completion fit the model's window. Each pass either removes a
// message, lowers MaxTokens to exactly the remaining room, or returns, so
// the loop runs at most len(history)+1 times.
func (c *Client) fit() error {
	limit, ok := c.limits[c.cfg.Model]
	if !ok {
		c.logger.Warn("unknown model, skipping token counting", slog.String("model", c.cfg.Model))
		return nil
	}
	promptTokens := c.estimator.Count(c.history, c.cfg.Model)
	if promptTokens == 0 {
		c.logger.Warn("prompt size unknown, skipping budget enforcement", slog.String("model", c.cfg.Model))
		return nil
	}

	budget := tokens.Budget{Window: limit}
	for {
		budget.MaxOutput = c.cfg.MaxTokens
		switch {
		case !budget.PromptFits(promptTokens):
			i := c.oldestRemovable()
			if i < 0 {
				return c.exhausted(promptTokens, limit)
			}
			c.logger.Warn("token limit is exceeded by the prompt, removing the oldest non-system message",
				slog.Int("prompt_tokens", promptTokens),
				slog.Int("limit", limit),
				slog.String("role", string(c.history[i].Role)))
			c.history = slices.Delete(c.history, i, i+1)
			promptTokens = c.estimator.Count(c.history, c.cfg.Model)

		case !budget.Fits(promptTokens):
			c.cfg.MaxTokens = budget.Remaining(promptTokens)
			c.logger.Warn("token limit is exceeded, decreased max tokens",
				slog.Int("prompt_tokens", promptTokens),
				slog.Int("limit", limit),
				slog.Int("max_tokens", c.cfg.MaxTokens))

		case len(c.history) == 0:
			return c.exhausted(promptTokens, limit)

		default:
			return nil
		}
	}
}

func (c *Client) exhausted(promptTokens, limit int) error {
	c.logger.Error("no messages left to remove and the request still does not fit, shorten the message",
		slog.Int("prompt_tokens", promptTokens),
		slog.Int("limit", limit),
		slog.Int("messages", len(c.history)))
	return fmt.Errorf("%w: %d prompt tokens for a %d token window with %d messages left",
		ErrFitExhausted, promptTokens, limit, len(c.history))
}

// oldestRemovable returns the index of the oldest message fitting may drop,
// or -1. The system message is never dropped.
func (c *Client) oldestRemovable() int {
	for i, m := range c.history {
		if m.Role != provider.RoleSystem {
			return i
		}
	}
	return -1
}

func (c *Client) placeSystemMessage(text string) {
	hasSystem := len(c.history) > 0 && c.history[0].Role == provider.RoleSystem
	switch {
	case text == "" && hasSystem:
		c.history = slices.Delete(c.history, 0, 1)
	case text == "":
	case hasSystem:
		c.history[0] = systemMessage(text)
	default:
		c.history = slices.Insert(c.history, 0, systemMessage(text))
	}
}

func (c *Client) request() provider.Request {
	return provider.Request{
		APIKey:           c.cfg.APIKey,
		Model:            c.cfg.Model,
		Messages:         slices.Clone(c.history),
		MaxTokens:        c.cfg.MaxTokens,
		Temperature:      c.cfg.Temperature,
		TopP:             c.cfg.TopP,
		FrequencyPenalty: c.cfg.FrequencyPenalty,
		PresencePenalty:  c.cfg.PresencePenalty,
	}
}

func (c *Client) record(u provider.TokenUsage) {
	c.usage.Add(model.Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		Requests:         1,
	})
	if c.tracker != nil {
		c.tracker.Record(model.ModelName(c.cfg.Model), u.PromptTokens, u.CompletionTokens)
	}
}

func systemMessage(text string) provider.Message {
	return provider.NewTextMessage(provider.RoleSystem, text)
}
