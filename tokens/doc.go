// Package tokens estimates prompt token usage for chat models.
//
// # Counter
//
// The Counter interface counts tokens in plain text. BPECounter is exact
// (tiktoken byte-pair encodings); EstimatingCounter approximates with
// ~4 characters per token and needs no vocabulary:
//
//	counter := tokens.NewEstimatingCounter()
//	count := counter.Count("Hello, world!")     // ~3 tokens
//	fits := counter.FitsInLimit("text", 1000)   // true if <= 1000 tokens
//
// # Estimator
//
// Estimator prices a whole message history the way chat endpoints bill it:
// a fixed overhead per message, the encoded role and content, an adjustment
// for named messages, and 3 reply-priming tokens at the end:
//
//	est := tokens.NewEstimator(tokens.WithLogger(logger))
//	n := est.Count(messages, "gpt-3.5-turbo-0613")
//
// Floating identifiers ("gpt-4") are counted as their canonical snapshot and
// logged as an assumption. Unknown families return 0, which callers must
// read as "unknown", not "empty".
//
// # Model Limits
//
//	limit, ok := tokens.LimitFor("gpt-4-0613")  // 8192, true
//	limit, ok := tokens.LimitFor("llama3")      // 0, false
//
// Budget holds the arithmetic between a window and the requested output.
package tokens
