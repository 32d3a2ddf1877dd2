// Package server exposes the stylist over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/ubique/stylist/pkg/llm"
	"github.com/ubique/stylist/pkg/mcptool"
	"github.com/ubique/stylist/pkg/stylist"
)

// Asker answers conversation requests. *stylist.Service implements it.
type Asker interface {
	Ask(ctx context.Context, req llm.ConversationRequest) (string, error)
}

// Server is the stylist HTTP front. It is stateless: each request carries
// its full history and is answered independently.
type Server struct {
	config  Config
	service Asker
	logger  *zap.Logger
	app     *fiber.App
}

// New creates a new Server.
func New(config Config, service Asker, logger *zap.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		BodyLimit:             config.BodyLimit,
		ErrorHandler:          errorHandler(logger),
	})

	s := &Server{
		config:  config,
		service: service,
		logger:  logger,
		app:     app,
	}

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			logger.Error("recovered from panic", zap.Any("panic", e), zap.String("path", c.Path()))
		},
	}))

	if config.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: config.AllowOrigins,
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Content-Type",
		}))
	}

	s.routes()

	return s, nil
}

func (s *Server) routes() {
	s.app.Post("/api/chat", s.handleChat)

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok", "version": stylist.Version})
	})

	if s.config.EnableMCP {
		mcpHandler := mcptool.NewHandler(mcptool.NewServer(s.service, s.logger))
		s.app.All("/mcp", adaptor.HTTPHandler(mcpHandler))
	}
}

// Run starts the server on the configured listening address.
func (s *Server) Run() error {
	s.logger.Info("starting stylist server",
		zap.String("listen", s.config.ListenAddr),
		zap.Bool("mcp", s.config.EnableMCP),
	)

	return s.app.Listen(s.config.ListenAddr)
}

// RunWithListener starts the server on an existing listener.
func (s *Server) RunWithListener(ln net.Listener) error {
	s.logger.Info("starting stylist server", zap.String("listen", ln.Addr().String()))

	return s.app.Listener(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(10 * time.Second)
}

// handleChat answers an outfit question. Failures are reduced to a status
// code and a message free of provider diagnostics.
func (s *Server) handleChat(c *fiber.Ctx) error {
	startTime := time.Now()

	var req llm.ConversationRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: stylist.MessageUnexpected})
	}

	s.logger.Debug("received chat request",
		zap.Int("image_size", len(req.Image)),
		zap.Int("history_turns", len(req.History)),
		zap.String("question_preview", truncate(req.Question, 50)),
	)

	reply, err := s.service.Ask(c.UserContext(), req)
	if err != nil {
		failure := stylist.Classify(err)
		s.logger.Error("chat request failed",
			zap.Int("status", failure.Status),
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		return c.Status(failure.Status).JSON(llm.ErrorResponse{Error: failure.Message})
	}

	return c.JSON(llm.ReplyResponse{Reply: reply})
}

// errorHandler renders errors that escape a handler (panics, fiber errors)
// as an ErrorResponse.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := stylist.MessageUnexpected

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code != fiber.StatusInternalServerError {
			status = fiberErr.Code
			message = fiberErr.Message
		}

		logger.Error("request failed",
			zap.Int("status", status),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(status).JSON(llm.ErrorResponse{Error: message})
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
