// Package gateway dispatches assembled conversations to an Azure OpenAI chat
// completions deployment and normalizes the answer into a single reply.
package gateway

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ubique/stylist/pkg/llm"
	"github.com/ubique/stylist/pkg/policy"
)

// Client sends an assembled message sequence and returns the reply.
// A nil error guarantees a non-empty reply.
type Client interface {
	Send(ctx context.Context, messages []llm.Message) (string, error)
}

// Provider kinds accepted by New.
const (
	ProviderHTTP = "http"
	ProviderSDK  = "sdk"
)

// New returns the Client implementation for the given provider kind.
func New(kind string, resolver Resolver, p policy.Policy, logger *zap.Logger) (Client, error) {
	switch kind {
	case "", ProviderHTTP:
		return NewHTTPGateway(resolver, p, logger), nil
	case ProviderSDK:
		return NewSDKGateway(resolver, p, logger), nil
	default:
		return nil, &UnknownProviderError{Kind: kind}
	}
}

// UnknownProviderError is returned by New for an unsupported provider kind.
type UnknownProviderError struct {
	Kind string
}

func (e *UnknownProviderError) Error() string {
	return "unknown provider kind: " + e.Kind
}

// normalizeReply substitutes the fallback for an empty completion.
func normalizeReply(content, fallback string, logger *zap.Logger) string {
	reply := strings.TrimSpace(content)
	if reply == "" {
		logger.Warn("provider returned no usable content, using fallback reply")
		return fallback
	}
	return reply
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
