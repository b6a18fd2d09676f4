package openai

import "github.com/zakharsmirnoff/lloom/provider"

// ChatRequest is the chat completions request body.
type ChatRequest struct {
	Model            string             `json:"model,omitempty"`
	Messages         []provider.Message `json:"messages"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	FrequencyPenalty float64            `json:"frequency_penalty"`
	PresencePenalty  float64            `json:"presence_penalty"`
	TopP             float64            `json:"top_p"`
	Stop             []string           `json:"stop"`
}

// BuildBody converts a provider.Request to the wire body.
func BuildBody(req provider.Request) ChatRequest {
	return ChatRequest{
		Model:            req.Model,
		Messages:         req.Messages,
		MaxTokens:        req.MaxTokens,
		Temperature:      req.Temperature,
		FrequencyPenalty: req.FrequencyPenalty,
		PresencePenalty:  req.PresencePenalty,
		TopP:             req.TopP,
	}
}

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage"`
}

type chatChoice struct {
	Index        int          `json:"index"`
	Message      *chatMessage `json:"message"`
	FinishReason string       `json:"finish_reason"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// toResponse validates the required fields and converts to the common
// Response. It returns the reason the payload is unusable, or "".
func (w *chatResponse) toResponse() (*provider.Response, string) {
	if len(w.Choices) == 0 {
		return nil, "response has no choices"
	}
	choice := w.Choices[0]
	if choice.Message == nil {
		return nil, "first choice has no message"
	}
	if w.Usage == nil {
		return nil, "response has no usage"
	}

	role := provider.Role(choice.Message.Role)
	if role == "" {
		role = provider.RoleAssistant
	}
	return &provider.Response{
		Role:         role,
		Content:      choice.Message.Content,
		Model:        w.Model,
		FinishReason: choice.FinishReason,
		Usage: provider.TokenUsage{
			PromptTokens:     w.Usage.PromptTokens,
			CompletionTokens: w.Usage.CompletionTokens,
			TotalTokens:      w.Usage.TotalTokens,
		},
	}, ""
}
