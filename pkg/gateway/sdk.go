package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/ubique/stylist/pkg/llm"
	"github.com/ubique/stylist/pkg/policy"
)

// SDKGateway calls the deployment through the openai-go client with its
// Azure middleware. Retries are disabled so every failure surfaces once.
type SDKGateway struct {
	resolver Resolver
	policy   policy.Policy
	logger   *zap.Logger
	options  []option.RequestOption
}

// NewSDKGateway creates an SDKGateway. Extra request options are appended
// after the Azure ones.
func NewSDKGateway(resolver Resolver, p policy.Policy, logger *zap.Logger, opts ...option.RequestOption) *SDKGateway {
	return &SDKGateway{
		resolver: resolver,
		policy:   p,
		logger:   logger,
		options:  opts,
	}
}

// Send implements Client.
func (g *SDKGateway) Send(ctx context.Context, messages []llm.Message) (string, error) {
	startTime := time.Now()

	cfg, err := g.resolver.Resolve()
	if err != nil {
		return "", err
	}

	// NewClient applies OPENAI_* environment defaults first. Strip the
	// credentials they add so only the deployment's api-key is sent.
	opts := append([]option.RequestOption{
		azure.WithEndpoint(cfg.BaseURL(), cfg.APIVersion),
		azure.WithAPIKey(cfg.APIKey),
		option.WithHeaderDel("Authorization"),
		option.WithHeaderDel("OpenAI-Organization"),
		option.WithHeaderDel("OpenAI-Project"),
		option.WithMaxRetries(0),
	}, g.options...)
	client := openai.NewClient(opts...)

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(cfg.Deployment),
		Messages:    toSDKMessages(messages),
		MaxTokens:   openai.Int(int64(g.policy.MaxTokens)),
		Temperature: openai.Float(g.policy.Temperature),
	}

	g.logger.Debug("sending request to provider via sdk",
		zap.String("deployment", cfg.Deployment),
		zap.String("api_version", cfg.APIVersion),
		zap.Int("message_count", len(messages)),
	)

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			body := string(apiErr.DumpResponse(true))
			g.logger.Error("provider returned error",
				zap.Int("status", apiErr.StatusCode),
				zap.String("body", body),
			)
			return "", &ProviderError{StatusCode: apiErr.StatusCode, Body: body}
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}

	var content string
	if len(completion.Choices) > 0 {
		content = completion.Choices[0].Message.Content
	}

	reply := normalizeReply(content, g.policy.FallbackReply, g.logger)
	g.logger.Debug("received response from provider via sdk",
		zap.String("model", completion.Model),
		zap.Int("choices", len(completion.Choices)),
		zap.Int64("prompt_tokens", completion.Usage.PromptTokens),
		zap.Int64("completion_tokens", completion.Usage.CompletionTokens),
		zap.String("reply_preview", truncate(reply, 100)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return reply, nil
}

// toSDKMessages converts assembled messages into openai-go params.
func toSDKMessages(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch {
		case m.Role == llm.RoleSystem:
			out = append(out, openai.SystemMessage(m.Text))
		case m.Role == llm.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Text))
		case m.IsComposite():
			parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(m.Parts))
			for _, p := range m.Parts {
				switch p.Type {
				case llm.PartImageURL:
					parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
						URL:    p.ImageURL.URL,
						Detail: p.ImageURL.Detail,
					}))
				case llm.PartText:
					parts = append(parts, openai.TextContentPart(p.Text))
				}
			}
			out = append(out, openai.UserMessage(parts))
		default:
			out = append(out, openai.UserMessage(m.Text))
		}
	}
	return out
}
