package tokens

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakharsmirnoff/lloom/model"
	"github.com/zakharsmirnoff/lloom/provider"
)

// wordCounter counts whitespace-separated words, one token each.
type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }

func (w wordCounter) FitsInLimit(text string, limit int) bool { return w.Count(text) <= limit }

// fakeEncodings resolves every model to wordCounter unless configured to fail.
type fakeEncodings struct {
	failModel   bool
	failDefault bool
	modelCalls  []string
	getCalls    []string
}

func (f *fakeEncodings) ForModel(model string) (Counter, error) {
	f.modelCalls = append(f.modelCalls, model)
	if f.failModel {
		return nil, errors.New("no encoding")
	}
	return wordCounter{}, nil
}

func (f *fakeEncodings) Get(name string) (Counter, error) {
	f.getCalls = append(f.getCalls, name)
	if f.failDefault {
		return nil, errors.New("offline")
	}
	return wordCounter{}, nil
}

func newTestEstimator(enc Encodings) (*Estimator, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewEstimator(WithEncodings(enc), WithLogger(logger)), &buf
}

func history() []provider.Message {
	return []provider.Message{
		{Role: provider.RoleSystem, Content: "be brief"},
		{Role: provider.RoleUser, Content: "hello there friend"},
	}
}

func TestEstimator_PinnedSnapshot(t *testing.T) {
	est, logs := newTestEstimator(&fakeEncodings{})

	// per message: 3 + role(1) + content words
	// system: 3 + 1 + 2 = 6, user: 3 + 1 + 3 = 7, priming 3
	got := est.Count(history(), "gpt-3.5-turbo-0613")

	assert.Equal(t, 16, got)
	assert.Empty(t, logs.String())
}

func TestEstimator_Snapshot0301(t *testing.T) {
	est, _ := newTestEstimator(&fakeEncodings{})

	// system: 4 + 1 + 2 = 7, user: 4 + 1 + 3 = 8, priming 3
	got := est.Count(history(), "gpt-3.5-turbo-0301")

	assert.Equal(t, 18, got)
}

func TestEstimator_NameAdjustment(t *testing.T) {
	msgs := []provider.Message{{Role: provider.RoleUser, Content: "hi", Name: "alice"}}

	tests := []struct {
		model string
		want  int
	}{
		// 3 + role 1 + content 1 + name 1 + 1, priming 3
		{"gpt-4-0613", 10},
		// 4 + role 1 + content 1 + name 1 - 1, priming 3
		{"gpt-3.5-turbo-0301", 9},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			est, _ := newTestEstimator(&fakeEncodings{})
			assert.Equal(t, tt.want, est.Count(msgs, tt.model))
		})
	}
}

func TestEstimator_FloatingAliases(t *testing.T) {
	tests := []struct {
		model   string
		assumed model.ModelName
	}{
		{"gpt-3.5-turbo", model.GPT35Turbo0613},
		{"gpt-3.5-turbo-16k", model.GPT35Turbo0613},
		{"gpt-4", model.GPT40613},
		{"gpt-4-32k", model.GPT40613},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			enc := &fakeEncodings{}
			est, logs := newTestEstimator(enc)

			got := est.Count(history(), tt.model)

			assert.Equal(t, 16, got)
			assert.Contains(t, logs.String(), "level=WARN")
			assert.Contains(t, logs.String(), "assumed="+string(tt.assumed))
			assert.Equal(t, []string{tt.model}, enc.modelCalls, "encoding is looked up by the name given")
		})
	}
}

func TestEstimator_UnknownFamilyReturnsZero(t *testing.T) {
	enc := &fakeEncodings{}
	est, logs := newTestEstimator(enc)

	got := est.Count(history(), "text-davinci-003")

	assert.Equal(t, 0, got)
	assert.Contains(t, logs.String(), "budget enforcement is not possible")
	assert.Empty(t, enc.modelCalls, "no encoding should be resolved for unknown families")
}

func TestEstimator_EmptyHistoryCostsPriming(t *testing.T) {
	est, _ := newTestEstimator(&fakeEncodings{})
	assert.Equal(t, ReplyPrimingTokens, est.Count(nil, "gpt-4-0613"))
}

func TestEstimator_FallsBackToDefaultEncoding(t *testing.T) {
	enc := &fakeEncodings{failModel: true}
	est, logs := newTestEstimator(enc)

	got := est.Count(history(), "gpt-4-0613")

	assert.Equal(t, 16, got)
	assert.Equal(t, []string{DefaultEncoding}, enc.getCalls)
	assert.Contains(t, logs.String(), "switching to default encoding")
}

func TestEstimator_FloatingNameWithoutEncoding(t *testing.T) {
	enc := &fakeEncodings{failModel: true}
	est, logs := newTestEstimator(enc)

	got := est.Count(history(), "ft:gpt-4:acme")

	assert.Equal(t, 16, got)
	assert.Equal(t, []string{"ft:gpt-4:acme"}, enc.modelCalls)
	assert.Equal(t, []string{DefaultEncoding}, enc.getCalls)
	assert.Contains(t, logs.String(), "switching to default encoding")
	assert.Contains(t, logs.String(), "model=ft:gpt-4:acme")
}

func TestEstimator_FallsBackToCharacterEstimate(t *testing.T) {
	enc := &fakeEncodings{failModel: true, failDefault: true}
	est, logs := newTestEstimator(enc)

	msgs := []provider.Message{{Role: provider.RoleUser, Content: "abcdefgh"}}
	got := est.Count(msgs, "gpt-4-0613")

	// 3 + role "user" (4 chars = 1) + content (8 chars = 2) + priming 3
	assert.Equal(t, 9, got)
	assert.Contains(t, logs.String(), "estimating tokens from characters")
}

func TestEstimator_CachesCounters(t *testing.T) {
	enc := &fakeEncodings{}
	est, _ := newTestEstimator(enc)

	est.Count(history(), "gpt-4-0613")
	est.Count(history(), "gpt-4-0613")
	est.CounterFor("gpt-4-0613")

	require.Len(t, enc.modelCalls, 1)
}

func TestFramingFor(t *testing.T) {
	f, snap, assumed, ok := FramingFor("gpt-4-32k-0314")
	assert.True(t, ok)
	assert.False(t, assumed)
	assert.Equal(t, model.GPT432k0314, snap)
	assert.Equal(t, Framing{PerMessage: 3, PerName: 1}, f)

	f, snap, assumed, ok = FramingFor("gpt-3.5-turbo")
	assert.True(t, ok)
	assert.True(t, assumed)
	assert.Equal(t, model.GPT35Turbo0613, snap)
	assert.Equal(t, Framing{PerMessage: 3, PerName: 1}, f)

	_, _, _, ok = FramingFor("claude-2")
	assert.False(t, ok)
}

func TestEstimatingEncodings(t *testing.T) {
	est, logs := newTestEstimator(EstimatingEncodings{CharsPerToken: 1})

	// 3 + len("user") + len("hello") + 3 priming
	got := est.Count([]provider.Message{{Role: provider.RoleUser, Content: "hello"}}, "gpt-4-0613")

	assert.Equal(t, 15, got)
	assert.NotContains(t, logs.String(), "level=WARN")
}
