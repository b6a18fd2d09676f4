package provider

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Default endpoint settings.
const (
	DefaultProvider   = "openai"
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultAPIVersion = "2023-05-15"
	DefaultTimeout    = 2 * time.Minute
)

// Config holds configuration for creating a transport.
// The credential is not part of it: it travels with each Request.
type Config struct {
	// Provider is the name of the transport to use ("openai", "azure").
	Provider string `json:"provider" yaml:"provider" toml:"provider" jsonschema:"enum=openai,enum=azure"`

	// BaseURL is the endpoint base.
	// OpenAI: "https://api.openai.com/v1". Azure: "https://<resource>.openai.azure.com/".
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`

	// APIVersion is the Azure api-version query parameter. Ignored by OpenAI.
	APIVersion string `json:"api_version,omitempty" yaml:"api_version,omitempty" toml:"api_version,omitempty"`

	// Deployment is the Azure deployment (engine) name. Ignored by OpenAI.
	Deployment string `json:"deployment,omitempty" yaml:"deployment,omitempty" toml:"deployment,omitempty"`

	// Timeout bounds a single HTTP round trip. 0 means no client-side limit
	// beyond the caller's context.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" toml:"timeout,omitempty" jsonschema:"type=string,description=Round trip limit such as 90s"`
}

// DefaultConfig returns a Config for the public OpenAI endpoint.
func DefaultConfig() Config {
	return Config{
		Provider: DefaultProvider,
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
	}
}

// LoadFromEnv populates config fields from environment variables.
// Environment variables use the LLOOM_ prefix and take precedence over existing values.
//
// Supported variables:
//   - LLOOM_PROVIDER: Transport name
//   - LLOOM_BASE_URL: Endpoint base
//   - LLOOM_API_VERSION: Azure api-version
//   - LLOOM_DEPLOYMENT: Azure deployment name
//   - LLOOM_TIMEOUT: Timeout duration (e.g., "90s")
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("LLOOM_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("LLOOM_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("LLOOM_API_VERSION"); v != "" {
		c.APIVersion = v
	}
	if v := os.Getenv("LLOOM_DEPLOYMENT"); v != "" {
		c.Deployment = v
	}
	if v := os.Getenv("LLOOM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL, got %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	return nil
}

// WithProvider returns a copy of the config with the specified provider.
func (c Config) WithProvider(provider string) Config {
	c.Provider = provider
	return c
}

// WithBaseURL returns a copy of the config with the specified endpoint base.
func (c Config) WithBaseURL(baseURL string) Config {
	c.BaseURL = baseURL
	return c
}

// WithDeployment returns a copy of the config with the specified Azure deployment.
func (c Config) WithDeployment(deployment string) Config {
	c.Deployment = deployment
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(d time.Duration) Config {
	c.Timeout = d
	return c
}
