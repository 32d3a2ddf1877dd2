package gateway_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// stubProvider is a chat completions endpoint that records every call.
type stubProvider struct {
	*httptest.Server

	mu         sync.Mutex
	calls      int
	lastPath   string
	lastKey    string
	lastHeader http.Header
	lastBody   map[string]any

	status int
	body   string
}

func newStubProvider(status int, body string) *stubProvider {
	s := &stubProvider{status: status, body: body}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)

		s.mu.Lock()
		s.calls++
		s.lastPath = r.URL.RequestURI()
		s.lastKey = r.Header.Get("api-key")
		s.lastHeader = r.Header.Clone()
		s.lastBody = nil
		_ = json.Unmarshal(raw, &s.lastBody)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.body))
	}))
	return s
}

func (s *stubProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func replyBody(content string) string {
	data, _ := json.Marshal(map[string]any{
		"id":    "chatcmpl-1",
		"model": "gpt-4o",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
		},
		"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15},
	})
	return string(data)
}
