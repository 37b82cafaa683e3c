package jwtmw

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// Config holds token signing settings.
type Config struct {
	Secret string `env:"JWT_SECRET,required,notEmpty"`
}

// LoadConfig loads token signing settings from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse jwt config: %w", err)
	}
	return cfg, nil
}
