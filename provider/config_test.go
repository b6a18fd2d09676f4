package provider

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider != "openai" {
		t.Errorf("expected Provider=openai, got %q", cfg.Provider)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected BaseURL=%q, got %q", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("expected Timeout=2m, got %v", cfg.Timeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "missing provider",
			cfg:     Config{BaseURL: DefaultBaseURL},
			wantErr: true,
		},
		{
			name:    "missing base url",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "relative base url",
			cfg:     Config{Provider: "openai", BaseURL: "/v1"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			cfg:     DefaultConfig().WithTimeout(-1 * time.Second),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("LLOOM_PROVIDER", "azure")
	t.Setenv("LLOOM_BASE_URL", "https://example.openai.azure.com/")
	t.Setenv("LLOOM_API_VERSION", "2023-07-01-preview")
	t.Setenv("LLOOM_DEPLOYMENT", "chat")
	t.Setenv("LLOOM_TIMEOUT", "30s")

	cfg := Config{}
	cfg.LoadFromEnv()

	if cfg.Provider != "azure" {
		t.Errorf("expected Provider='azure', got %q", cfg.Provider)
	}
	if cfg.BaseURL != "https://example.openai.azure.com/" {
		t.Errorf("unexpected BaseURL %q", cfg.BaseURL)
	}
	if cfg.APIVersion != "2023-07-01-preview" {
		t.Errorf("unexpected APIVersion %q", cfg.APIVersion)
	}
	if cfg.Deployment != "chat" {
		t.Errorf("unexpected Deployment %q", cfg.Deployment)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected Timeout=30s, got %v", cfg.Timeout)
	}
}

func TestConfig_LoadFromEnv_BadTimeoutIgnored(t *testing.T) {
	t.Setenv("LLOOM_TIMEOUT", "soon")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout to survive, got %v", cfg.Timeout)
	}
}

func TestConfig_WithMethods(t *testing.T) {
	base := Config{}
	cfg := base.WithProvider("azure").
		WithBaseURL("https://example.openai.azure.com/").
		WithDeployment("chat").
		WithTimeout(time.Second)

	if cfg.Provider != "azure" || cfg.Deployment != "chat" || cfg.Timeout != time.Second {
		t.Errorf("With* methods did not apply: %+v", cfg)
	}
	if base.Provider != "" {
		t.Errorf("With* methods modified the original: %+v", base)
	}
}
