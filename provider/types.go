package provider

import "time"

// Request configures a chat completion call.
type Request struct {
	// APIKey is the credential sent with the request. Never serialized.
	APIKey string `json:"-"`

	// Model is the model identifier (e.g., "gpt-3.5-turbo-0613").
	Model string `json:"model,omitempty"`

	// Messages is the conversation history to send, in order.
	Messages []Message `json:"messages"`

	// MaxTokens limits the completion length.
	MaxTokens int `json:"max_tokens"`

	// Temperature controls response randomness.
	Temperature float64 `json:"temperature"`

	// TopP is the nucleus sampling mass.
	TopP float64 `json:"top_p"`

	FrequencyPenalty float64 `json:"frequency_penalty"`
	PresencePenalty  float64 `json:"presence_penalty"`
}

// Message is a conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// NewTextMessage creates a message without a name.
func NewTextMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// Role identifies the message sender.
type Role string

// Message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Response is the output of a completion call.
type Response struct {
	// Role is the role of the reply, normally RoleAssistant.
	Role Role `json:"role"`

	// Content is the text response from the model.
	Content string `json:"content"`

	// Usage tracks token consumption for this request.
	Usage TokenUsage `json:"usage"`

	// Model is the actual model used (may differ from requested).
	Model string `json:"model"`

	// FinishReason indicates why the model stopped generating.
	// Common values: "stop", "length"
	FinishReason string `json:"finish_reason"`

	// Duration is the time taken for the completion.
	Duration time.Duration `json:"duration"`
}

// TokenUsage tracks token consumption as reported by the endpoint.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
