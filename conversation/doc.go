// Package conversation is a single-conversation chat completion client that
// keeps its prompt inside the model's context window.
//
// A Client owns an ordered history (an optional system message at position 0
// followed by user and assistant turns). Before every request it estimates
// the prompt size and, when the model's window is known, trims the oldest
// non-system turns and lowers the requested completion length until the
// request fits. If nothing more can be trimmed the call fails with
// ErrFitExhausted and the transport is never contacted.
//
// # Basic Usage
//
//	transport, _ := provider.Open(provider.DefaultConfig())
//	client, err := conversation.New(conversation.Config{
//	    APIKey:        os.Getenv("OPENAI_API_KEY"),
//	    Model:         "gpt-3.5-turbo-0613",
//	    Temperature:   0.7,
//	    TopP:          1,
//	    MaxTokens:     500,
//	    SystemMessage: "You are a terse assistant.",
//	}, transport)
//	if err != nil {
//	    return err
//	}
//	reply, err := client.Generate(ctx, "Name three prime numbers.")
//
// # Concurrency
//
// A Client is not safe for concurrent use. Run one Generate at a time and
// apply configuration changes from the goroutine that owns the Client.
// Distinct Clients are independent.
//
// # Output budget
//
// When a request only fits by asking for fewer completion tokens, MaxTokens
// is lowered in the live configuration and stays lowered for later calls.
// Use Configure to raise it again.
package conversation
