// ABOUTME: TOML configuration for the shtooka CLI
// ABOUTME: Locates, parses, normalizes and validates config.toml
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultFormat      = "flac"
	defaultPadding     = "aligned"
	defaultOutput      = "oto"
	defaultDrainPollMS = 10
	defaultLogLevel    = "info"
	defaultLogFormat   = "auto"
)

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config holds the settings shared by every command.
type Config struct {
	// Archive is the default collection path; a command argument overrides it
	Archive     string  `toml:"archive"`
	Format      string  `toml:"format"`
	Padding     string  `toml:"padding"`
	Output      string  `toml:"output"`
	DrainPollMS int     `toml:"drain_poll_ms"`
	Logging     Logging `toml:"logging"`
}

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		Format:      defaultFormat,
		Padding:     defaultPadding,
		Output:      defaultOutput,
		DrainPollMS: defaultDrainPollMS,
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// DrainPoll returns the drain poll interval as a duration.
func (c *Config) DrainPoll() time.Duration {
	return time.Duration(c.DrainPollMS) * time.Millisecond
}

// DefaultConfigPath returns where config.toml is looked up when no path is
// given.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return expandPath(filepath.Join(base, "shtooka", "config.toml"))
	}
	return expandPath("~/.config/shtooka/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error; the defaults are returned with exists set to false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}

	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) normalize() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = defaultFormat
	}
	c.Padding = strings.ToLower(strings.TrimSpace(c.Padding))
	if c.Padding == "" {
		c.Padding = defaultPadding
	}
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if c.Output == "" {
		c.Output = defaultOutput
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}

	if strings.TrimSpace(c.Archive) != "" {
		archive, err := expandPath(c.Archive)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		c.Archive = archive
	}
	return nil
}

// ExpandPath resolves a leading ~ and makes the path absolute.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
