package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zakharsmirnoff/lloom/conversation"
	"github.com/zakharsmirnoff/lloom/provider"
)

// ErrUnsupportedFormat is returned for file extensions Load cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// File is the contents of a settings file.
type File struct {
	Conversation conversation.Config `json:"conversation" yaml:"conversation" toml:"conversation"`
	Transport    provider.Config     `json:"transport" yaml:"transport" toml:"transport"`
}

// Default returns the settings used when no file is given.
func Default() File {
	return File{
		Conversation: conversation.DefaultConfig(),
		Transport:    provider.DefaultConfig(),
	}
}

// Validate checks both sections.
func (f *File) Validate() error {
	if err := f.Conversation.Validate(); err != nil {
		return err
	}
	if err := f.Transport.Validate(); err != nil {
		return fmt.Errorf("transport: %w", err)
	}
	return nil
}

// Load reads path over the defaults, applies the environment and
// validates the result. An empty path loads only defaults and environment.
func Load(path string) (File, error) {
	f := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return File{}, fmt.Errorf("reading config: %w", err)
		}
		if err := Decode(data, filepath.Ext(path), &f); err != nil {
			return File{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	if err := ApplyEnv(&f); err != nil {
		return File{}, err
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Decode unmarshals data in the format named by ext into f. Fields absent
// from data keep their current values.
func Decode(data []byte, ext string, f *File) error {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return yaml.Unmarshal(data, f)
	case "toml":
		_, err := toml.Decode(string(data), f)
		return err
	case "json":
		// JSON is valid YAML; decoding it the same way lets durations be
		// written as "90s" in every format.
		return yaml.Unmarshal(data, f)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
