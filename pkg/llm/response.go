package llm

import "strings"

// ChatResponse represents a chat completion response.
type ChatResponse struct {
	ID      string   `json:"id,omitempty"`
	Model   string   `json:"model,omitempty"`   // Model behind the deployment
	Choices []Choice `json:"choices"`           // Completions, first one is used
	Usage   *Usage   `json:"usage,omitempty"`   // Token accounting
	Created int64    `json:"created,omitempty"` // Unix seconds
}

// Choice is a single completion.
type Choice struct {
	Index        int          `json:"index"`
	Message      ReplyMessage `json:"message"`
	FinishReason string       `json:"finish_reason,omitempty"` // "stop", "length", "content_filter"
}

// ReplyMessage is the assistant message inside a choice.
type ReplyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports token counts for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FirstContent returns the trimmed text of the first choice, or "" when the
// response carries none.
func (r *ChatResponse) FirstContent() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Choices[0].Message.Content)
}
