package tokens

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the general-purpose encoding used when a model has
// no registered encoding of its own.
const DefaultEncoding = "cl100k_base"

// BPECounter counts tokens exactly with a byte-pair encoding.
type BPECounter struct {
	enc *tiktoken.Tiktoken
}

// Count returns the number of tokens text encodes to.
func (c *BPECounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

// FitsInLimit returns true if the text fits within the token limit.
func (c *BPECounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// Encodings resolves token counters by model identifier or encoding name.
type Encodings interface {
	// ForModel returns the counter registered for a model identifier.
	ForModel(model string) (Counter, error)

	// Get returns the counter for a named encoding such as "cl100k_base".
	Get(name string) (Counter, error)
}

// TiktokenEncodings resolves encodings through tiktoken-go. BPE ranks are
// fetched on first use and cached under TIKTOKEN_CACHE_DIR when set.
type TiktokenEncodings struct{}

// ForModel implements Encodings.
func (TiktokenEncodings) ForModel(model string) (Counter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("tokens: encoding for model %q: %w", model, err)
	}
	return &BPECounter{enc: enc}, nil
}

// Get implements Encodings.
func (TiktokenEncodings) Get(name string) (Counter, error) {
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("tokens: get encoding %q: %w", name, err)
	}
	return &BPECounter{enc: enc}, nil
}

// EstimatingEncodings resolves every model and encoding to a character
// based EstimatingCounter. It never touches the network.
type EstimatingEncodings struct {
	// CharsPerToken is passed to NewEstimatingCounterWithRatio.
	CharsPerToken float64
}

// ForModel implements Encodings.
func (e EstimatingEncodings) ForModel(string) (Counter, error) {
	return NewEstimatingCounterWithRatio(e.CharsPerToken), nil
}

// Get implements Encodings.
func (e EstimatingEncodings) Get(string) (Counter, error) {
	return NewEstimatingCounterWithRatio(e.CharsPerToken), nil
}
