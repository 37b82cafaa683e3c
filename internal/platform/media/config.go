// Package media validates uploaded avatar images and converts them to the
// canonical 250x250 PNG form on a bounded worker pool.
package media

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds image processing settings.
type Config struct {
	// Workers is the number of goroutines that decode and resize images.
	Workers int `env:"MEDIA_WORKERS" envDefault:"2"`
	// QueueSize is how many jobs may wait for a free worker.
	QueueSize int `env:"MEDIA_QUEUE_SIZE" envDefault:"16"`
	// Timeout bounds the wall-clock time of one decode/resize/encode run, queueing included.
	Timeout time.Duration `env:"MEDIA_TIMEOUT" envDefault:"5s"`
}

// LoadConfig loads image processing settings from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse media config: %w", err)
	}
	return cfg, nil
}
