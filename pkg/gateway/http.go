package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ubique/stylist/pkg/llm"
	"github.com/ubique/stylist/pkg/policy"
)

// HTTPGateway calls the chat completions REST endpoint directly.
type HTTPGateway struct {
	resolver   Resolver
	policy     policy.Policy
	logger     *zap.Logger
	httpClient *http.Client
}

// NewHTTPGateway creates an HTTPGateway. The HTTP client has no timeout of
// its own; the caller's context bounds each request.
func NewHTTPGateway(resolver Resolver, p policy.Policy, logger *zap.Logger) *HTTPGateway {
	return &HTTPGateway{
		resolver:   resolver,
		policy:     p,
		logger:     logger,
		httpClient: &http.Client{},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (g *HTTPGateway) WithHTTPClient(c *http.Client) *HTTPGateway {
	g.httpClient = c
	return g
}

// Send implements Client.
func (g *HTTPGateway) Send(ctx context.Context, messages []llm.Message) (string, error) {
	startTime := time.Now()

	cfg, err := g.resolver.Resolve()
	if err != nil {
		return "", err
	}

	reqBody, err := json.Marshal(llm.ChatRequest{
		Messages: messages,
		Sampling: llm.Sampling{
			MaxTokens:   g.policy.MaxTokens,
			Temperature: g.policy.Temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	upstreamURL := cfg.CompletionsURL()
	g.logger.Debug("sending request to provider",
		zap.String("deployment", cfg.Deployment),
		zap.String("api_version", cfg.APIVersion),
		zap.Int("message_count", len(messages)),
		zap.Int("body_size", len(reqBody)),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, upstreamURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", cfg.APIKey)

	httpResp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		g.logger.Error("provider returned error",
			zap.Int("status", httpResp.StatusCode),
			zap.String("body", string(body)),
		)
		return "", &ProviderError{StatusCode: httpResp.StatusCode, Body: string(body)}
	}

	var resp llm.ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	reply := normalizeReply(resp.FirstContent(), g.policy.FallbackReply, g.logger)
	fields := []zap.Field{
		zap.String("model", resp.Model),
		zap.Int("choices", len(resp.Choices)),
		zap.String("reply_preview", truncate(reply, 100)),
		zap.Duration("duration", time.Since(startTime)),
	}
	if resp.Usage != nil {
		fields = append(fields,
			zap.Int("prompt_tokens", resp.Usage.PromptTokens),
			zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		)
	}
	g.logger.Debug("received response from provider", fields...)

	return reply, nil
}
