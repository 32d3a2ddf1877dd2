package llm

// Turn is one role-tagged exchange supplied by the caller as history.
type Turn struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // Plain text of the turn
}

// ConversationRequest is the inbound request: a photo, the newest question,
// and every prior turn oldest first.
type ConversationRequest struct {
	Image    string `json:"image"`             // Data URI or raw base64
	Question string `json:"question"`          // Newest user utterance
	History  []Turn `json:"history,omitempty"` // Prior turns, may be empty
}
