// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the full configuration surface of the web server. The RSVP API
// settings are optional: with no endpoint configured the site runs on the
// bundled dataset and the local store.
type Config struct {
	Addr         string `env:"WEDDING_ADDR"`
	Port         string `env:"PORT" envDefault:"8080"`
	Dev          bool   `env:"WEDDING_DEV"`
	Env          string `env:"WEDDING_ENV" envDefault:"dev"`
	TemplatesDir string `env:"WEDDING_TEMPLATES_DIR" envDefault:"templates"`
	PublicDir    string `env:"WEDDING_PUBLIC_DIR" envDefault:"public"`
	ContentDir   string `env:"WEDDING_CONTENT_DIR" envDefault:"content"`
	DataDir      string `env:"WEDDING_DATA_DIR" envDefault:"data"`
	StorePath    string `env:"WEDDING_STORE_PATH"`

	RSVPAPIURL   string `env:"WEDDING_RSVP_API_URL"`
	RSVPAPIToken string `env:"WEDDING_RSVP_API_TOKEN"`

	SessionSigningKey string `env:"WEDDING_SESSION_SIGNING_KEY"`

	LogLevel string `env:"LOG_LEVEL"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":" + cfg.Port
	}
	return cfg, nil
}

// Prod reports whether the process runs with production hardening (secure
// cookies, cached templates).
func (c Config) Prod() bool {
	return strings.EqualFold(c.Env, "prod")
}
