package llm

// ChatRequest represents a chat completion request (Azure OpenAI deployment
// API). The model is implied by the deployment in the URL.
type ChatRequest struct {
	Messages []Message `json:"messages"` // Assembled conversation

	// Generation options
	Sampling
}
