// Package provider defines the completion transport used by a conversation.
//
// A transport turns one Request (model, message history, sampling settings
// and credential) into one Response (reply text plus token usage). The
// conversation package owns history and budget bookkeeping; transports only
// move bytes. Concrete transports live in their own packages and register a
// factory so callers can select one by name:
//
//	import _ "github.com/zakharsmirnoff/lloom/openai"
//
//	client, err := provider.New("openai", provider.Config{
//	    BaseURL: "https://api.openai.com/v1",
//	})
//
// # Available Transports
//
//   - "openai": OpenAI chat completions (Bearer auth)
//   - "azure": Azure OpenAI deployments (api-key header, api-version query)
package provider

import "context"

// Client is the interface for completion transports.
// A Client holds no conversation state and may be shared.
type Client interface {
	// Complete sends a request and returns the full response.
	// The context controls cancellation and timeouts.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Provider returns the transport name (e.g., "openai", "azure").
	Provider() string
}
