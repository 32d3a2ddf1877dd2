// Package conversation turns a photo, a question and the prior dialogue into
// the message sequence sent to the chat completions provider.
package conversation

import (
	"fmt"
	"strings"

	"github.com/ubique/stylist/pkg/llm"
	"github.com/ubique/stylist/pkg/policy"
)

// Assembler builds provider message sequences. It performs no I/O and is
// safe for concurrent use.
type Assembler struct {
	systemPrompt     string
	imageDetail      string
	defaultMediaType string
}

// NewAssembler creates an Assembler from the given policy.
func NewAssembler(p policy.Policy) *Assembler {
	return &Assembler{
		systemPrompt:     p.SystemPrompt,
		imageDetail:      p.ImageDetail,
		defaultMediaType: p.DefaultMediaType,
	}
}

// Assemble returns [system, user(image+text), history[1:]..., user(question)].
// For an empty history it returns [system, user(image+question)].
func (a *Assembler) Assemble(req llm.ConversationRequest) ([]llm.Message, error) {
	if strings.TrimSpace(req.Image) == "" {
		return nil, ErrMissingImage
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, ErrMissingQuestion
	}
	if err := ValidateHistory(req.History); err != nil {
		return nil, err
	}

	image, err := ParseImage(req.Image, a.defaultMediaType)
	if err != nil {
		return nil, err
	}

	l := layoutFor(len(req.History) > 0)
	messages := make([]llm.Message, 0, l.size(len(req.History)))

	messages = append(messages, llm.TextMessage(llm.RoleSystem, a.systemPrompt))

	caption := req.Question
	if l.captionFromHistory {
		caption = req.History[0].Content
	}
	messages = append(messages, a.imageTurn(image, caption))

	if l.replayHistory {
		for _, turn := range req.History[1:] {
			messages = append(messages, llm.TextMessage(turn.Role, turn.Content))
		}
	}

	if l.trailingQuestion {
		messages = append(messages, llm.TextMessage(llm.RoleUser, req.Question))
	}

	return messages, nil
}

func (a *Assembler) imageTurn(image Image, text string) llm.Message {
	return llm.Message{
		Role: llm.RoleUser,
		Parts: []llm.ContentPart{
			{
				Type:     llm.PartImageURL,
				ImageURL: &llm.ImageURL{URL: image.DataURI(), Detail: a.imageDetail},
			},
			{
				Type: llm.PartText,
				Text: text,
			},
		},
	}
}

// ValidateHistory checks that history starts with the user turn paired with
// the image and only contains user and assistant turns.
func ValidateHistory(history []llm.Turn) error {
	if len(history) == 0 {
		return nil
	}

	first := history[0]
	if first.Role != llm.RoleUser {
		return fmt.Errorf("%w: first turn must be from the user, got %q", ErrMalformedHistory, first.Role)
	}
	if strings.TrimSpace(first.Content) == "" {
		return fmt.Errorf("%w: first turn has no content", ErrMalformedHistory)
	}

	for i, turn := range history {
		switch turn.Role {
		case llm.RoleUser, llm.RoleAssistant:
		default:
			return fmt.Errorf("%w: turn %d has unsupported role %q", ErrMalformedHistory, i, turn.Role)
		}
	}
	return nil
}
