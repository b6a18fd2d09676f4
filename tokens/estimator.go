package tokens

import (
	"log/slog"
	"sync"

	"github.com/zakharsmirnoff/lloom/model"
	"github.com/zakharsmirnoff/lloom/provider"
)

// ReplyPrimingTokens is added once per history: every reply is primed
// with <|start|>assistant<|message|>.
const ReplyPrimingTokens = 3

// Framing is the per-message overhead a chat model charges on top of the
// encoded text of each field.
type Framing struct {
	// PerMessage is charged once for every message.
	PerMessage int

	// PerName adjusts the cost when a message carries a name field.
	PerName int
}

// Framings lists the overhead of the snapshots whose framing is documented.
var Framings = map[model.ModelName]Framing{
	model.GPT35Turbo0613:    {PerMessage: 3, PerName: 1},
	model.GPT35Turbo16k0613: {PerMessage: 3, PerName: 1},
	model.GPT40314:          {PerMessage: 3, PerName: 1},
	model.GPT432k0314:       {PerMessage: 3, PerName: 1},
	model.GPT40613:          {PerMessage: 3, PerName: 1},
	model.GPT432k0613:       {PerMessage: 3, PerName: 1},
	model.GPT35Turbo0301:    {PerMessage: 4, PerName: -1},
}

// FramingFor returns the framing for name and the snapshot it was taken
// from. Floating identifiers resolve to their family's canonical snapshot,
// in which case assumed is true. ok is false for unknown families.
func FramingFor(name string) (framing Framing, snapshot model.ModelName, assumed, ok bool) {
	if model.IsPinned(name) {
		return Framings[model.ModelName(name)], model.ModelName(name), false, true
	}
	snapshot = model.CanonicalSnapshot(model.FamilyOf(name))
	if snapshot == "" {
		return Framing{}, "", false, false
	}
	return Framings[snapshot], snapshot, true, true
}

// Estimator counts the prompt tokens of a message history for a model.
// It is safe for concurrent use; resolved encodings are cached.
type Estimator struct {
	encodings Encodings
	logger    *slog.Logger

	mu       sync.Mutex
	counters map[string]Counter
}

// EstimatorOption configures an Estimator.
type EstimatorOption func(*Estimator)

// WithEncodings sets how encodings are resolved. Defaults to tiktoken.
func WithEncodings(enc Encodings) EstimatorOption {
	return func(e *Estimator) { e.encodings = enc }
}

// WithLogger sets the logger used for fallback and assumption warnings.
func WithLogger(logger *slog.Logger) EstimatorOption {
	return func(e *Estimator) { e.logger = logger }
}

// NewEstimator creates an Estimator.
func NewEstimator(opts ...EstimatorOption) *Estimator {
	e := &Estimator{
		encodings: TiktokenEncodings{},
		logger:    slog.Default(),
		counters:  make(map[string]Counter),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Count returns the prompt tokens messages cost on modelName.
//
// A return of 0 means the model family is unknown and no estimate could be
// made; it never means "empty", since even an empty history costs the
// reply-priming tokens.
func (e *Estimator) Count(messages []provider.Message, modelName string) int {
	framing, snapshot, assumed, ok := FramingFor(modelName)
	if !ok {
		e.logger.Warn("token counting is not implemented for this model, budget enforcement is not possible",
			slog.String("model", modelName))
		return 0
	}
	if assumed {
		e.logger.Warn("model may update over time, counting tokens as its canonical snapshot",
			slog.String("model", modelName),
			slog.String("assumed", string(snapshot)))
	}

	counter := e.counterFor(modelName)

	total := 0
	for _, m := range messages {
		total += framing.PerMessage
		total += counter.Count(string(m.Role))
		total += counter.Count(m.Content)
		if m.Name != "" {
			total += counter.Count(m.Name)
			total += framing.PerName
		}
	}
	return total + ReplyPrimingTokens
}

// CounterFor returns the text counter used for modelName.
func (e *Estimator) CounterFor(modelName string) Counter {
	return e.counterFor(modelName)
}

// counterFor resolves and caches the counter for the identifier as given,
// falling back to the default encoding and then to character estimation.
func (e *Estimator) counterFor(modelName string) Counter {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c, ok := e.counters[modelName]; ok {
		return c
	}

	c, err := e.encodings.ForModel(modelName)
	if err != nil {
		e.logger.Warn("no encoding for model, switching to default encoding",
			slog.String("model", modelName),
			slog.String("encoding", DefaultEncoding),
			slog.Any("error", err))
		c, err = e.encodings.Get(DefaultEncoding)
	}
	if err != nil {
		e.logger.Warn("default encoding unavailable, estimating tokens from characters",
			slog.String("model", modelName),
			slog.Any("error", err))
		c = NewEstimatingCounter()
	}

	e.counters[modelName] = c
	return c
}
