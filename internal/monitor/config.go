package monitor

import (
	"fmt"
	"time"

	"github.com/endotronic/dropbox-monitoring/internal/dropbox"
)

const (
	DefaultMinPollInterval = 5 * time.Second
	DefaultPort            = 8000
)

// Config holds the monitor settings assembled from flags, environment and
// config file.
type Config struct {
	// MinPollInterval is the minimum time between two `dropbox status`
	// invocations; scrapes inside the window are served from cache.
	MinPollInterval time.Duration

	// Port the metrics endpoint listens on.
	Port int

	// DropboxCmd is the dropbox binary name or path.
	DropboxCmd string
}

func (c *Config) Validate() error {
	if c.MinPollInterval < 0 {
		return fmt.Errorf("min poll interval must not be negative, got %s", c.MinPollInterval)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DropboxCmd == "" {
		c.DropboxCmd = dropbox.DefaultCommand
	}
	return nil
}

// Addr returns the listen address for the metrics server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
