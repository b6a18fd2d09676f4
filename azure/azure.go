// Package azure is the Azure OpenAI transport.
//
// Azure serves the OpenAI chat completions wire format from per-deployment
// URLs, authenticates with an api-key header and selects the model by
// deployment rather than by a "model" body field. Everything else, including
// response decoding, is the openai package's.
//
//	client, err := azure.New(provider.Config{
//	    BaseURL:    "https://example.openai.azure.com/",
//	    APIVersion: "2023-05-15",
//	    Deployment: "gpt35",
//	})
package azure

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/zakharsmirnoff/lloom/openai"
	"github.com/zakharsmirnoff/lloom/provider"
)

// ErrNoDeployment is returned when the config names no deployment.
var ErrNoDeployment = errors.New("azure: deployment is required")

// Builder is the openai.RequestBuilder for Azure deployments.
type Builder struct {
	BaseURL    string
	Deployment string
	APIVersion string
}

// Endpoint implements openai.RequestBuilder.
func (b Builder) Endpoint() string {
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(b.BaseURL, "/"),
		url.PathEscape(b.Deployment),
		url.QueryEscape(b.APIVersion))
}

// Authorize implements openai.RequestBuilder.
func (b Builder) Authorize(header http.Header, apiKey string) {
	if apiKey != "" {
		header.Set("api-key", apiKey)
	}
}

// Body implements openai.RequestBuilder. The deployment fixes the model,
// so the model field is left out.
func (b Builder) Body(req provider.Request) any {
	body := openai.BuildBody(req)
	body.Model = ""
	return body
}

// New creates an Azure transport from cfg.
func New(cfg provider.Config, opts ...openai.Option) (*openai.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Deployment == "" {
		return nil, ErrNoDeployment
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = provider.DefaultAPIVersion
	}

	builder := Builder{
		BaseURL:    cfg.BaseURL,
		Deployment: cfg.Deployment,
		APIVersion: cfg.APIVersion,
	}
	opts = append([]openai.Option{openai.WithTimeout(cfg.Timeout)}, opts...)
	return openai.NewWithBuilder("azure", builder, opts...), nil
}

func init() {
	provider.Register("azure", func(cfg provider.Config) (provider.Client, error) {
		return New(cfg)
	})
}
