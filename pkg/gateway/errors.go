package gateway

import (
	"fmt"
	"strings"
)

// ConfigError is returned when required deployment settings are absent.
// No provider call is made.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "provider not configured: missing " + strings.Join(e.Missing, ", ")
}

// ProviderError is returned when the provider answers with a non-success
// status. Body holds the raw response for diagnostics and is deliberately
// left out of Error.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.StatusCode)
}
