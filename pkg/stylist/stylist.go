// Package stylist answers outfit questions: it assembles the conversation
// around a photo and dispatches it to the inference gateway.
package stylist

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ubique/stylist/pkg/conversation"
	"github.com/ubique/stylist/pkg/gateway"
	"github.com/ubique/stylist/pkg/llm"
	"github.com/ubique/stylist/pkg/transcript"
)

// Version is reported by the health and MCP endpoints.
var Version = "dev"

// Service is stateless; every call is assembled and dispatched on its own.
type Service struct {
	assembler *conversation.Assembler
	client    gateway.Client
	logger    *zap.Logger
}

// New creates a Service.
func New(assembler *conversation.Assembler, client gateway.Client, logger *zap.Logger) *Service {
	return &Service{
		assembler: assembler,
		client:    client,
		logger:    logger,
	}
}

// Ask returns the stylist's reply to the request. Invalid requests fail
// before the provider is contacted. Use Classify to turn the error into a
// caller-facing status and message.
func (s *Service) Ask(ctx context.Context, req llm.ConversationRequest) (string, error) {
	startTime := time.Now()

	messages, err := s.assembler.Assemble(req)
	if err != nil {
		return "", err
	}

	// Fingerprinting hashes the whole photo, so only do it when debug is on.
	if ce := s.logger.Check(zap.DebugLevel, "assembled conversation"); ce != nil {
		ce.Write(
			zap.Int("history_turns", len(req.History)),
			zap.Int("message_count", len(messages)),
			zap.String("transcript", truncate(transcript.Fingerprint(messages), 16)),
			zap.String("image", truncate(transcript.ImageDigest(messages[1].Images()[0].URL), 16)),
		)
	}

	reply, err := s.client.Send(ctx, messages)
	if err != nil {
		return "", err
	}

	s.logger.Info("answered outfit question",
		zap.Int("history_turns", len(req.History)),
		zap.Int("reply_length", len(reply)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return reply, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
