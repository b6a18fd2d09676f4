package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/zakharsmirnoff/lloom/conversation"
)

// EnvPrefix prefixes every variable ApplyEnv reads.
const EnvPrefix = "LLOOM_"

// Provider specific credential variables, read before LLOOM_API_KEY.
const (
	OpenAIKeyEnv = "OPENAI_API_KEY"
	AzureKeyEnv  = "AZURE_OPENAI_API_KEY"
)

// ApplyEnv overlays environment variables on f.
//
// Conversation fields are read from LLOOM_<KEY> for every key in
// conversation.Keys (LLOOM_MODEL, LLOOM_TEMPERATURE, ...). Transport fields
// come from provider.Config.LoadFromEnv. The credential is taken from
// LLOOM_API_KEY, then from AZURE_OPENAI_API_KEY when the transport is
// azure, then from OPENAI_API_KEY.
func ApplyEnv(f *File) error {
	f.Transport.LoadFromEnv()

	if f.Transport.Provider == "azure" {
		if v := os.Getenv(AzureKeyEnv); v != "" {
			f.Conversation.APIKey = v
		}
	} else if v := os.Getenv(OpenAIKeyEnv); v != "" {
		f.Conversation.APIKey = v
	}

	values := make(map[string]string)
	for _, key := range conversation.Keys {
		if v, ok := os.LookupEnv(EnvPrefix + strings.ToUpper(key)); ok && v != "" {
			values[key] = v
		}
	}
	u, _, err := conversation.ParseUpdate(values)
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	f.Conversation = u.Apply(f.Conversation)
	return nil
}

// LoadDotEnv loads variables from the given .env files, or from ./.env
// when none are given. Files that do not exist are skipped and variables
// already set in the environment are not overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	slog.Debug("loaded .env files", slog.Any("paths", existing))
	return nil
}
