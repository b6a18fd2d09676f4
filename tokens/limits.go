package tokens

// ModelLimits holds the context window (prompt plus completion tokens) of
// each model the client enforces budgets for. Models not listed here are
// sent without budget enforcement.
var ModelLimits = map[string]int{
	"gpt-3.5-turbo-0613":     4096,
	"gpt-3.5-turbo-16k-0613": 16384,
	"gpt-4-0314":             8192,
	"gpt-4-32k-0314":         32768,
	"gpt-4-0613":             8192,
	"gpt-4-32k-0613":         32768,
	"gpt-3.5-turbo":          4096,
	"gpt-3.5-turbo-0301":     4096,
}

// LimitFor returns the context window for model and whether it is known.
func LimitFor(model string) (int, bool) {
	limit, ok := ModelLimits[model]
	return limit, ok
}
