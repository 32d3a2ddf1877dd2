package llm

// Sampling contains the generation parameters sent with every request.
type Sampling struct {
	MaxTokens   int     `json:"max_tokens"`  // Response length cap
	Temperature float64 `json:"temperature"` // Creativity (0.0-2.0)
}
