package gateway

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v6"
)

// DefaultAPIVersion is used when no API version is configured.
const DefaultAPIVersion = "2024-12-01-preview"

// Config locates an Azure OpenAI deployment.
type Config struct {
	// Endpoint is the resource base address (e.g., "https://my.openai.azure.com/")
	Endpoint string `env:"AZURE_OPENAI_ENDPOINT"`

	// APIKey is sent in the api-key header.
	APIKey string `env:"AZURE_OPENAI_API_KEY"`

	// Deployment names the model deployment.
	Deployment string `env:"AZURE_OPENAI_DEPLOYMENT"`

	// APIVersion is the api-version query parameter.
	APIVersion string `env:"AZURE_OPENAI_API_VERSION"`
}

// Validate reports the settings that are missing and fills in the API
// version default.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Endpoint) == "" {
		missing = append(missing, "AZURE_OPENAI_ENDPOINT")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		missing = append(missing, "AZURE_OPENAI_API_KEY")
	}
	if strings.TrimSpace(c.Deployment) == "" {
		missing = append(missing, "AZURE_OPENAI_DEPLOYMENT")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	return nil
}

// BaseURL returns the endpoint with trailing slashes removed.
func (c Config) BaseURL() string {
	return strings.TrimRight(c.Endpoint, "/")
}

// CompletionsURL returns the chat completions address of the deployment.
func (c Config) CompletionsURL() string {
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.BaseURL(),
		url.PathEscape(c.Deployment),
		url.QueryEscape(c.APIVersion),
	)
}

// Resolver supplies the provider configuration for a single request.
type Resolver interface {
	Resolve() (Config, error)
}

// EnvResolver reads the configuration from the process environment on every
// call, so a missing setting fails the request rather than the process.
type EnvResolver struct{}

// Resolve implements Resolver.
func (EnvResolver) Resolve() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// StaticResolver always returns the same configuration.
type StaticResolver Config

// Resolve implements Resolver.
func (r StaticResolver) Resolve() (Config, error) {
	cfg := Config(r)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
