// Package llm provides the wire representations exchanged with callers and
// with the chat completions provider.
package llm

// ErrorResponse is the body returned to callers when a request fails.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ReplyResponse is the body returned to callers on success.
type ReplyResponse struct {
	Reply string `json:"reply"`
}
