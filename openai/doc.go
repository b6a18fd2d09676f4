// Package openai is the HTTP transport for the OpenAI chat completions API.
//
// The Client is stateless apart from its http.Client and may be shared by
// many conversations. Request shaping (endpoint, auth header, body) is
// delegated to a RequestBuilder so that compatible deployments with a
// different URL scheme, such as Azure OpenAI, reuse the codec:
//
//	client := openai.New(openai.WithBaseURL("https://api.openai.com/v1"))
//	resp, err := client.Complete(ctx, provider.Request{
//	    APIKey:   key,
//	    Model:    "gpt-3.5-turbo-0613",
//	    Messages: history,
//	})
//
// A response without choices[0].message or usage is reported as a
// *provider.PayloadError carrying the raw body. Non-200 statuses are
// reported as *APIError. Nothing is retried.
package openai
