package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zakharsmirnoff/lloom/provider"
)

// MaxResponseSize caps how much of a response body is read.
const MaxResponseSize = 10 * 1024 * 1024

// maxErrorBody caps how much of an error body is kept.
const maxErrorBody = 4096

// RequestBuilder shapes the HTTP request for a compatible endpoint.
type RequestBuilder interface {
	// Endpoint returns the absolute URL requests are POSTed to.
	Endpoint() string

	// Authorize sets the credential header(s).
	Authorize(header http.Header, apiKey string)

	// Body returns the value marshaled as the JSON request body.
	Body(req provider.Request) any
}

// bearerBuilder is the RequestBuilder for api.openai.com and compatible servers.
type bearerBuilder struct {
	baseURL string
}

func (b bearerBuilder) Endpoint() string {
	return strings.TrimRight(b.baseURL, "/") + "/chat/completions"
}

func (b bearerBuilder) Authorize(header http.Header, apiKey string) {
	if apiKey != "" {
		header.Set("Authorization", "Bearer "+apiKey)
	}
}

func (b bearerBuilder) Body(req provider.Request) any {
	return BuildBody(req)
}

// Client implements provider.Client over HTTP.
type Client struct {
	name       string
	httpClient *http.Client
	builder    RequestBuilder
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the default builder at another OpenAI-compatible base.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.builder = bearerBuilder{baseURL: baseURL} }
}

// WithTimeout bounds each round trip. 0 leaves only the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a Client for the public OpenAI endpoint.
func New(opts ...Option) *Client {
	c := &Client{
		name:       "openai",
		httpClient: http.DefaultClient,
		builder:    bearerBuilder{baseURL: provider.DefaultBaseURL},
		timeout:    provider.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewWithBuilder creates a Client that reports itself as name and shapes
// requests with builder.
func NewWithBuilder(name string, builder RequestBuilder, opts ...Option) *Client {
	c := New(opts...)
	c.name = name
	c.builder = builder
	return c
}

// NewFromConfig creates a Client from a provider.Config.
func NewFromConfig(cfg provider.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(WithBaseURL(cfg.BaseURL), WithTimeout(cfg.Timeout)), nil
}

// Provider implements provider.Client.
func (c *Client) Provider() string {
	return c.name
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.builder.Endpoint()
}

// Complete implements provider.Client.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(c.builder.Body(req))
	if err != nil {
		return nil, c.wrap(fmt.Errorf("marshaling request: %w", err), false)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.builder.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, c.wrap(fmt.Errorf("creating request: %w", err), false)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.builder.Authorize(httpReq.Header, req.APIKey)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, c.wrap(fmt.Errorf("%w: %v", provider.ErrTimeout, err), true)
		}
		if errors.Is(err, context.Canceled) {
			return nil, c.wrap(err, false)
		}
		return nil, c.wrap(fmt.Errorf("%w: %v", provider.ErrUnavailable, err), true)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBody))
		apiErr := parseAPIError(httpResp.StatusCode, raw)
		return nil, c.wrap(apiErr, apiErr.Retryable())
	}

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, MaxResponseSize))
	if err != nil {
		return nil, c.wrap(fmt.Errorf("reading response: %w", err), true)
	}

	var wire chatResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, c.wrap(&provider.PayloadError{Reason: "decoding response: " + err.Error(), Raw: raw}, false)
	}
	resp, reason := wire.toResponse()
	if reason != "" {
		return nil, c.wrap(&provider.PayloadError{Reason: reason, Raw: raw}, false)
	}
	resp.Duration = time.Since(start)
	return resp, nil
}

func (c *Client) wrap(err error, retryable bool) error {
	return provider.NewError(c.name, "complete", err, retryable)
}
