// Package config loads the stylist server settings.
//
// Settings are layered: Defaults, then an optional TOML file, then STYLIST_*
// environment variables. The provider credentials are not part of this
// configuration; the gateway resolves them from the environment per request.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
)

// Config is the server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string `toml:"listen" env:"STYLIST_LISTEN"`

	// Debug enables debug logging.
	Debug bool `toml:"debug" env:"STYLIST_DEBUG"`

	// LogFormat is "console" or "json".
	LogFormat string `toml:"log_format" env:"STYLIST_LOG_FORMAT"`

	// Provider selects the gateway implementation: "http" or "sdk".
	Provider string `toml:"provider" env:"STYLIST_PROVIDER"`

	// BodyLimitMB caps inbound request bodies. Photos arrive base64 encoded.
	BodyLimitMB int `toml:"body_limit_mb" env:"STYLIST_BODY_LIMIT_MB"`

	// AllowOrigins is the CORS allow list, comma separated.
	AllowOrigins string `toml:"allow_origins" env:"STYLIST_ALLOW_ORIGINS"`

	// MCP mounts the MCP endpoint at /mcp.
	MCP bool `toml:"mcp" env:"STYLIST_MCP"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		ListenAddr:   ":8080",
		LogFormat:    "console",
		Provider:     "http",
		BodyLimitMB:  10,
		AllowOrigins: "*",
		MCP:          true,
	}
}

// Load builds the configuration from defaults, the TOML file at path (if
// not empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Provider {
	case "http", "sdk":
	default:
		return fmt.Errorf("invalid provider %q: must be http or sdk", c.Provider)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q: must be console or json", c.LogFormat)
	}

	if c.BodyLimitMB <= 0 {
		return fmt.Errorf("invalid body_limit_mb %d: must be positive", c.BodyLimitMB)
	}
	return nil
}
