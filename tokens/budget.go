package tokens

// Budget is the token arithmetic for one request against a context window.
type Budget struct {
	// Window is the model's context size, shared by prompt and completion.
	Window int

	// MaxOutput is the completion length that will be requested.
	MaxOutput int
}

// PromptFits reports whether a prompt of the given size leaves room for at
// least one completion token.
func (b Budget) PromptFits(promptTokens int) bool {
	return promptTokens < b.Window
}

// Fits reports whether prompt plus the requested completion fit the window.
func (b Budget) Fits(promptTokens int) bool {
	return promptTokens+b.MaxOutput <= b.Window
}

// Remaining returns the completion tokens left after the prompt.
func (b Budget) Remaining(promptTokens int) int {
	remaining := b.Window - promptTokens
	if remaining < 0 {
		return 0
	}
	return remaining
}
