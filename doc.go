// Package lloom is a conversational chat completion client that keeps a
// running conversation inside a model's context window.
//
// The subpackages can be used on their own:
//
//   - conversation: history, settings and context window fitting
//   - tokens: per-model prompt token estimation and window sizes
//   - provider: transport contract, shared errors and registry
//   - openai, azure: HTTP transports for the chat completions API
//   - config: YAML, TOML and JSON settings with environment overrides
//   - truncate: token-aware clipping and splitting of long text
//   - model: model names and usage accounting
//
// # Quick Start
//
// Estimating a prompt:
//
//	import "github.com/zakharsmirnoff/lloom/tokens"
//	est := tokens.NewEstimator()
//	n := est.Count(messages, "gpt-4-0613")
//
// Holding a conversation:
//
//	import (
//		"github.com/zakharsmirnoff/lloom/conversation"
//		"github.com/zakharsmirnoff/lloom/openai"
//	)
//	transport, _ := openai.New(apiKey)
//	client, _ := conversation.New(conversation.DefaultConfig(), transport)
//	reply, err := client.Generate(ctx, "Hello")
//
// The lloom command in cmd/lloom wires these together for the terminal.
package lloom
