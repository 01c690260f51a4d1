// ABOUTME: Configuration validation
// ABOUTME: Rejects unknown formats, padding modes, outputs and log settings
package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shtooka-go/shtooka/pkg/archive"
	"github.com/shtooka-go/shtooka/pkg/shtooka"
)

// Outputs lists the accepted values of the output key.
var Outputs = []string{"oto", "discard"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, err := shtooka.ParseLayout(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if _, err := archive.ParsePaddingMode(c.Padding); err != nil {
		return fmt.Errorf("padding: %w", err)
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if c.DrainPollMS < 0 {
		return errors.New("drain_poll_ms must not be negative")
	}
	return c.validateLogging()
}

func (c *Config) validateOutput() error {
	for _, o := range Outputs {
		if c.Output == o {
			return nil
		}
	}
	return fmt.Errorf("output must be one of %v, got %q", Outputs, c.Output)
}

func (c *Config) validateLogging() error {
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be auto, console or json, got %q", c.Logging.Format)
	}
}
