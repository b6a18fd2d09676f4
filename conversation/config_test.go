package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.Equal(t, 0.9, cfg.Temperature)
	assert.Equal(t, 1.0, cfg.TopP)
	assert.Zero(t, cfg.FrequencyPenalty)
	assert.Zero(t, cfg.PresencePenalty)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.True(t, cfg.Logging)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{"valid", func(c *Config) {}, nil},
		{"bounds are inclusive", func(c *Config) {
			c.Temperature, c.TopP, c.FrequencyPenalty, c.PresencePenalty = 0, 0, 1, 1
		}, nil},
		{"temperature above 1", func(c *Config) { c.Temperature = 1.01 }, []string{"temperature"}},
		{"negative top_p", func(c *Config) { c.TopP = -0.1 }, []string{"top_p"}},
		{"frequency penalty", func(c *Config) { c.FrequencyPenalty = 2 }, []string{"frequency_penalty"}},
		{"presence penalty", func(c *Config) { c.PresencePenalty = -1 }, []string{"presence_penalty"}},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }, []string{"max_tokens"}},
		{"missing model", func(c *Config) { c.Model = "" }, []string{"model"}},
		{"several fields", func(c *Config) {
			c.Temperature = 5
			c.MaxTokens = -1
		}, []string{"temperature", "max_tokens"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			var verr *ConfigValidationError
			require.ErrorAs(t, err, &verr)
			var got []string
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestConfigValidationError_Message(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Temperature = 3

	err := cfg.Validate()

	assert.EqualError(t, err, "invalid config: temperature=3 fails lte=1")
}

func TestUpdate_Apply(t *testing.T) {
	base := DefaultConfig()
	u := Update{Model: Ptr("gpt-4"), PresencePenalty: Ptr(0.3), Logging: Ptr(false)}

	got := u.Apply(base)

	assert.Equal(t, "gpt-4", got.Model)
	assert.Equal(t, 0.3, got.PresencePenalty)
	assert.False(t, got.Logging)
	assert.Equal(t, base.Temperature, got.Temperature)
	assert.Equal(t, base.MaxTokens, got.MaxTokens)
	assert.Equal(t, "gpt-3.5-turbo", base.Model, "Apply must not modify its argument")
}

func TestUpdateFrom(t *testing.T) {
	src := DefaultConfig()
	src.APIKey = "k"
	src.SystemMessage = "sys"
	src.MaxTokens = 42

	got := UpdateFrom(src).Apply(Config{})

	assert.Equal(t, src, got)
}

func TestParseUpdate(t *testing.T) {
	t.Run("known keys", func(t *testing.T) {
		u, unknown, err := ParseUpdate(map[string]string{
			"temperature":    "0.25",
			"max_tokens":     " 512 ",
			"model":          "gpt-4-0613",
			"system_message": "be kind",
			"logging":        "false",
		})
		require.NoError(t, err)
		assert.Empty(t, unknown)

		got := u.Apply(DefaultConfig())
		assert.Equal(t, 0.25, got.Temperature)
		assert.Equal(t, 512, got.MaxTokens)
		assert.Equal(t, "gpt-4-0613", got.Model)
		assert.Equal(t, "be kind", got.SystemMessage)
		assert.False(t, got.Logging)
		assert.Nil(t, u.TopP)
	})

	t.Run("unknown keys are reported not fatal", func(t *testing.T) {
		u, unknown, err := ParseUpdate(map[string]string{
			"top_p":  "0.5",
			"stream": "true",
			"n":      "2",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"n", "stream"}, unknown)
		require.NotNil(t, u.TopP)
		assert.Equal(t, 0.5, *u.TopP)
	})

	t.Run("bad values reject the update", func(t *testing.T) {
		u, _, err := ParseUpdate(map[string]string{
			"temperature": "warm",
			"max_tokens":  "lots",
			"top_p":       "0.5",
		})
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Equal(t, Update{}, u)

		var verr *ConfigValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 2)
		assert.Equal(t, "max_tokens", verr.Fields[0].Field)
		assert.Equal(t, "temperature", verr.Fields[1].Field)
		assert.Equal(t, "parse", verr.Fields[0].Rule)
	})
}
