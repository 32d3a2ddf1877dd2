// Package mcptool exposes the stylist as an MCP tool so agent clients can ask
// for outfit feedback.
package mcptool

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/ubique/stylist/pkg/llm"
	"github.com/ubique/stylist/pkg/stylist"
)

// ToolName is the name under which the stylist is registered.
const ToolName = "fit_check"

const toolDescription = `Get short, funny and genuinely useful feedback on an outfit photo.
Pass the photo on every call. On follow-up calls pass the previous turns as history,
starting with the question that was first asked about the photo.`

// Input is the fit_check tool input.
type Input struct {
	Image    string     `json:"image" jsonschema:"the outfit photo as a data URI or raw base64"`
	Question string     `json:"question" jsonschema:"the question about the outfit"`
	History  []llm.Turn `json:"history,omitempty" jsonschema:"prior turns oldest first, starting with the first question asked about this photo"`
}

// Output is the fit_check tool output.
type Output struct {
	Reply string `json:"reply" jsonschema:"the stylist's reply"`
}

// Asker is the subset of the stylist service used by the tool.
type Asker interface {
	Ask(ctx context.Context, req llm.ConversationRequest) (string, error)
}

// NewServer creates an MCP server with the fit_check tool registered.
func NewServer(svc Asker, logger *zap.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "stylist",
		Version: stylist.Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: toolDescription,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in Input) (*mcp.CallToolResult, Output, error) {
		reply, err := svc.Ask(ctx, llm.ConversationRequest{
			Image:    in.Image,
			Question: in.Question,
			History:  in.History,
		})
		if err != nil {
			failure := stylist.Classify(err)
			logger.Warn("fit_check tool call failed",
				zap.Int("status", failure.Status),
				zap.Error(err),
			)
			return nil, Output{}, errors.New(failure.Message)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: reply}},
		}, Output{Reply: reply}, nil
	})

	return server
}

// NewHandler serves the MCP server over streamable HTTP. Each request is
// handled statelessly.
func NewHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{Stateless: true})
}
