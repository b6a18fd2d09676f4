package truncate

import "github.com/zakharsmirnoff/lloom/tokens"

// Strategy selects which part of the text is dropped.
type Strategy int

const (
	// FromEnd keeps the beginning.
	FromEnd Strategy = iota

	// FromMiddle keeps the beginning and the end.
	FromMiddle

	// FromStart keeps the end.
	FromStart
)

func (s Strategy) String() string {
	switch s {
	case FromEnd:
		return "end"
	case FromMiddle:
		return "middle"
	case FromStart:
		return "start"
	default:
		return "unknown"
	}
}

// Markers inserted where text was removed.
const (
	DefaultMarker       = "..."
	DefaultMiddleMarker = "\n...[content truncated]...\n"
)

// Truncator cuts text down to a token budget.
type Truncator struct {
	counter  tokens.Counter
	strategy Strategy
	marker   string
}

// Option configures a Truncator.
type Option func(*Truncator)

// WithCounter measures text with c. The default estimates from characters.
func WithCounter(c tokens.Counter) Option {
	return func(t *Truncator) { t.counter = c }
}

// WithMarker replaces the text inserted at the cut.
func WithMarker(marker string) Option {
	return func(t *Truncator) { t.marker = marker }
}

// New creates a Truncator using strategy.
func New(strategy Strategy, opts ...Option) *Truncator {
	t := &Truncator{
		counter:  tokens.NewEstimatingCounter(),
		strategy: strategy,
		marker:   DefaultMarker,
	}
	if strategy == FromMiddle {
		t.marker = DefaultMiddleMarker
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Strategy returns the truncator's strategy.
func (t *Truncator) Strategy() Strategy {
	return t.strategy
}

// Marker returns the text inserted at the cut.
func (t *Truncator) Marker() string {
	return t.marker
}

// Truncate returns text cut to fit maxTokens, marker included, and whether
// anything was removed. When the budget cannot even hold the marker the
// marker alone is returned.
func (t *Truncator) Truncate(text string, maxTokens int) (string, bool) {
	if t.counter.FitsInLimit(text, maxTokens) {
		return text, false
	}

	budget := maxTokens - t.counter.Count(t.marker)
	if budget <= 0 {
		return t.marker, true
	}

	runes := []rune(text)
	switch t.strategy {
	case FromMiddle:
		return t.keepBothEnds(runes, budget), true
	case FromStart:
		return t.marker + string(runes[t.tailStart(runes, budget):]), true
	default:
		return string(runes[:t.headLen(runes, budget)]) + t.marker, true
	}
}
