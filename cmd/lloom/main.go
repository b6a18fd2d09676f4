// Command lloom talks to a chat completion endpoint from the terminal while
// keeping every request inside the model's context window.
//
// Usage:
//
//	lloom chat                 interactive conversation
//	lloom ask "question"       one-shot question
//	lloom count file.txt       estimate prompt tokens
//	lloom summarize file.txt   map-reduce or refine summary of a document
//	lloom schema               JSON Schema of the settings file
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/zakharsmirnoff/lloom/azure"
	_ "github.com/zakharsmirnoff/lloom/openai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
