package conversation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidConfig matches every *ConfigValidationError.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrFitExhausted indicates trimming ran out of messages before the
	// request fit the context window. The transport was not called.
	ErrFitExhausted = errors.New("history cannot be fitted to the context window")

	// ErrNoTransport is returned by New when no transport is supplied.
	ErrNoTransport = errors.New("conversation: transport is required")
)

// FieldError describes one rejected configuration field.
type FieldError struct {
	Field string // config key, e.g. "temperature"
	Rule  string // failed rule, e.g. "lte" or "parse"
	Param string // rule parameter, e.g. "1"
	Value any    // offending value
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s=%v fails %s=%s", e.Field, e.Value, e.Rule, e.Param)
	}
	return fmt.Sprintf("%s=%v fails %s", e.Field, e.Value, e.Rule)
}

// ConfigValidationError reports a configuration that was rejected as a
// whole. Nothing from the rejected configuration is applied.
type ConfigValidationError struct {
	Fields []FieldError
	Err    error
}

func (e *ConfigValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %v", ErrInvalidConfig, e.Err)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalidConfig) succeed.
func (e *ConfigValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *ConfigValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error) *ConfigValidationError {
	out := &ConfigValidationError{Err: err}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out.Fields = append(out.Fields, FieldError{
				Field: fe.Field(),
				Rule:  fe.Tag(),
				Param: fe.Param(),
				Value: fe.Value(),
			})
		}
	}
	return out
}
