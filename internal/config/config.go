// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"RELAY_DB_PATH" envDefault:"./data/relay.db"`
	WorkspacePath string `env:"RELAY_WORKSPACE_PATH" envDefault:"/workspace"`
	UploadsDir    string `env:"RELAY_UPLOADS_DIR" envDefault:"./uploads"`
	Env           string `env:"RELAY_ENV" envDefault:"development"`
	LogLevel      string `env:"RELAY_LOG_LEVEL" envDefault:"info"`

	// Git sync configuration
	GitSyncEnabled bool   `env:"RELAY_GIT_SYNC_ENABLED" envDefault:"false"`
	GitBranch      string `env:"RELAY_GIT_BRANCH" envDefault:"main"`

	// Webhook configuration
	WebhookURL     string        `env:"RELAY_WEBHOOK_URL"`
	WebhookTimeout time.Duration `env:"RELAY_WEBHOOK_TIMEOUT" envDefault:"5s"`

	// Session housekeeping
	SessionMaxAge time.Duration `env:"RELAY_SESSION_MAX_AGE" envDefault:"168h"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// WebhookEnabled returns true if a webhook target is configured.
func (c Config) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.WorkspacePath == "" {
		return nil, fmt.Errorf("RELAY_WORKSPACE_PATH must not be empty")
	}

	if cfg.WebhookURL != "" {
		u, err := url.Parse(cfg.WebhookURL)
		if err != nil {
			return nil, fmt.Errorf("RELAY_WEBHOOK_URL is not a valid URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("RELAY_WEBHOOK_URL must use http or https scheme, got %q", u.Scheme)
		}
	}

	if cfg.WebhookTimeout <= 0 {
		return nil, fmt.Errorf("RELAY_WEBHOOK_TIMEOUT must be positive, got %s", cfg.WebhookTimeout)
	}

	return cfg, nil
}
