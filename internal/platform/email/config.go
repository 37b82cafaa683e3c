// Package email sends account notification emails.
package email

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds outbound email settings.
// When APIKey is empty, messages are only logged.
type Config struct {
	APIKey   string        `env:"SENDGRID_API_KEY"`
	From     string        `env:"EMAIL_FROM" envDefault:"noreply@task-manager.local"`
	FromName string        `env:"EMAIL_FROM_NAME" envDefault:"Task Manager"`
	Timeout  time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
}

// LoadConfig loads email settings from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse email config: %w", err)
	}
	return cfg, nil
}
