package stylist

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ubique/stylist/pkg/conversation"
	"github.com/ubique/stylist/pkg/gateway"
)

// Caller-facing failure messages.
const (
	MessageMissingFields  = "Both image and question are required"
	MessageNotConfigured  = "Azure OpenAI is not configured. Check your environment."
	MessageUnexpected     = "Something went wrong. Please try again."
	messageProviderFormat = "AI service error (%d). Please try again."
)

// Failure is an error reduced to what the caller may see.
type Failure struct {
	Status  int
	Message string
}

// Classify maps an error from Ask to a status code and a message that
// carries no provider diagnostics.
func Classify(err error) Failure {
	var (
		cfgErr      *gateway.ConfigError
		providerErr *gateway.ProviderError
	)

	switch {
	case errors.Is(err, conversation.ErrMissingImage), errors.Is(err, conversation.ErrMissingQuestion):
		return Failure{Status: http.StatusBadRequest, Message: MessageMissingFields}
	case errors.Is(err, conversation.ErrInvalidRequest):
		return Failure{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.As(err, &cfgErr):
		return Failure{Status: http.StatusInternalServerError, Message: MessageNotConfigured}
	case errors.As(err, &providerErr):
		status := providerErr.StatusCode
		// Unfollowed redirects and the like are not errors a client would
		// read a body from.
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return Failure{Status: status, Message: fmt.Sprintf(messageProviderFormat, providerErr.StatusCode)}
	default:
		return Failure{Status: http.StatusInternalServerError, Message: MessageUnexpected}
	}
}
