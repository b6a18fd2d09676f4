package conversation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Default configuration values.
const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = 0.9
	DefaultTopP        = 1.0
	DefaultMaxTokens   = 2000
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report fields by their config key rather than the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Config holds the conversation settings sent with every request.
type Config struct {
	// APIKey is the credential passed to the transport.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" toml:"api_key,omitempty" jsonschema:"description=Credential for the completion endpoint"`

	// Model is the model identifier, e.g. "gpt-3.5-turbo-0613".
	Model string `json:"model" yaml:"model" toml:"model" validate:"required" jsonschema:"description=Model identifier,default=gpt-3.5-turbo"`

	Temperature      float64 `json:"temperature" yaml:"temperature" toml:"temperature" validate:"gte=0,lte=1" jsonschema:"minimum=0,maximum=1,default=0.9"`
	TopP             float64 `json:"top_p" yaml:"top_p" toml:"top_p" validate:"gte=0,lte=1" jsonschema:"minimum=0,maximum=1,default=1"`
	FrequencyPenalty float64 `json:"frequency_penalty" yaml:"frequency_penalty" toml:"frequency_penalty" validate:"gte=0,lte=1" jsonschema:"minimum=0,maximum=1,default=0"`
	PresencePenalty  float64 `json:"presence_penalty" yaml:"presence_penalty" toml:"presence_penalty" validate:"gte=0,lte=1" jsonschema:"minimum=0,maximum=1,default=0"`

	// MaxTokens is the requested completion length. Fitting may lower it.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens" validate:"gt=0" jsonschema:"minimum=1,default=2000"`

	// SystemMessage, when set, is kept at the start of the history.
	SystemMessage string `json:"system_message,omitempty" yaml:"system_message,omitempty" toml:"system_message,omitempty" jsonschema:"description=Instruction kept at the start of the history"`

	// Logging enables Info level logs. When false only warnings and errors
	// are logged.
	Logging bool `json:"logging" yaml:"logging" toml:"logging" jsonschema:"default=true"`
}

// DefaultConfig returns the default settings. APIKey is left empty.
func DefaultConfig() Config {
	return Config{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		MaxTokens:   DefaultMaxTokens,
		Logging:     true,
	}
}

// Validate checks every field. The returned error is a
// *ConfigValidationError listing all rejected fields.
func (c Config) Validate() error {
	if err := validate.Struct(&c); err != nil {
		return newValidationError(err)
	}
	return nil
}

// Update is a partial configuration change. Nil fields are left alone.
type Update struct {
	APIKey           *string
	Model            *string
	Temperature      *float64
	TopP             *float64
	FrequencyPenalty *float64
	PresencePenalty  *float64
	MaxTokens        *int
	SystemMessage    *string
	Logging          *bool
}

// Ptr returns a pointer to v, for building Updates.
func Ptr[T any](v T) *T {
	return &v
}

// UpdateFrom returns an Update that replaces every field with c's.
func UpdateFrom(c Config) Update {
	return Update{
		APIKey:           &c.APIKey,
		Model:            &c.Model,
		Temperature:      &c.Temperature,
		TopP:             &c.TopP,
		FrequencyPenalty: &c.FrequencyPenalty,
		PresencePenalty:  &c.PresencePenalty,
		MaxTokens:        &c.MaxTokens,
		SystemMessage:    &c.SystemMessage,
		Logging:          &c.Logging,
	}
}

// Apply returns c with the update's fields replaced. It does not validate.
func (u Update) Apply(c Config) Config {
	if u.APIKey != nil {
		c.APIKey = *u.APIKey
	}
	if u.Model != nil {
		c.Model = *u.Model
	}
	if u.Temperature != nil {
		c.Temperature = *u.Temperature
	}
	if u.TopP != nil {
		c.TopP = *u.TopP
	}
	if u.FrequencyPenalty != nil {
		c.FrequencyPenalty = *u.FrequencyPenalty
	}
	if u.PresencePenalty != nil {
		c.PresencePenalty = *u.PresencePenalty
	}
	if u.MaxTokens != nil {
		c.MaxTokens = *u.MaxTokens
	}
	if u.SystemMessage != nil {
		c.SystemMessage = *u.SystemMessage
	}
	if u.Logging != nil {
		c.Logging = *u.Logging
	}
	return c
}

// Keys lists the config keys ParseUpdate understands.
var Keys = []string{
	"api_key", "model", "temperature", "top_p", "frequency_penalty",
	"presence_penalty", "max_tokens", "system_message", "logging",
}

// ParseUpdate builds an Update from textual key/value pairs such as those
// typed at a prompt ("temperature=0.2"). Keys not in Keys are returned in
// sorted order so the caller can report them; they do not fail the parse.
// Values that do not parse are reported together as a
// *ConfigValidationError and no Update is returned.
func ParseUpdate(values map[string]string) (Update, []string, error) {
	var (
		u       Update
		unknown []string
		fields  []FieldError
		errs    []error
	)

	float := func(key, raw string) *float64 {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			fields = append(fields, FieldError{Field: key, Rule: "parse", Value: raw})
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return nil
		}
		return &f
	}

	for key, raw := range values {
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "api_key":
			u.APIKey = Ptr(raw)
		case "model":
			u.Model = Ptr(strings.TrimSpace(raw))
		case "temperature":
			u.Temperature = float(key, raw)
		case "top_p":
			u.TopP = float(key, raw)
		case "frequency_penalty":
			u.FrequencyPenalty = float(key, raw)
		case "presence_penalty":
			u.PresencePenalty = float(key, raw)
		case "max_tokens":
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				fields = append(fields, FieldError{Field: key, Rule: "parse", Value: raw})
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				continue
			}
			u.MaxTokens = &n
		case "system_message":
			u.SystemMessage = Ptr(raw)
		case "logging":
			b, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				fields = append(fields, FieldError{Field: key, Rule: "parse", Value: raw})
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				continue
			}
			u.Logging = &b
		default:
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	if len(fields) > 0 {
		sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return Update{}, unknown, &ConfigValidationError{Fields: fields, Err: errors.Join(errs...)}
	}
	return u, unknown, nil
}
