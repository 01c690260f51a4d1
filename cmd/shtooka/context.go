// ABOUTME: Shared command state
// ABOUTME: Merges flags over config, builds the logger and opens collections
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shtooka-go/shtooka/internal/config"
	"github.com/shtooka-go/shtooka/internal/logging"
	"github.com/shtooka-go/shtooka/pkg/archive"
	"github.com/shtooka-go/shtooka/pkg/audio/output"
	"github.com/shtooka-go/shtooka/pkg/shtooka"
)

type globalFlags struct {
	config   string
	archive  string
	format   string
	padding  string
	output   string
	logLevel string
	debug    bool
}

type commandContext struct {
	flags  *globalFlags
	config *config.Config
	logger zerolog.Logger
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{
		flags:  flags,
		logger: zerolog.Nop(),
	}
}

// setup loads the config file, applies the flags that were set and
// validates the result
func (c *commandContext) setup(cmd *cobra.Command) error {
	cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("archive") {
		if cfg.Archive, err = config.ExpandPath(c.flags.archive); err != nil {
			return fmt.Errorf("archive: %w", err)
		}
	}
	if f.Changed("format") {
		cfg.Format = strings.ToLower(c.flags.format)
	}
	if f.Changed("padding") {
		cfg.Padding = strings.ToLower(c.flags.padding)
	}
	if f.Changed("output") {
		cfg.Output = strings.ToLower(c.flags.output)
	}
	if f.Changed("log-level") {
		cfg.Logging.Level = strings.ToLower(c.flags.logLevel)
	}
	if c.flags.debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	log.Logger = logger
	c.logger = logger
	c.config = cfg

	logger.Debug().Str("path", path).Bool("exists", exists).Msg("Loaded configuration")
	return nil
}

func (c *commandContext) options() ([]shtooka.Option, error) {
	layout, err := shtooka.ParseLayout(c.config.Format)
	if err != nil {
		return nil, err
	}
	padding, err := archive.ParsePaddingMode(c.config.Padding)
	if err != nil {
		return nil, err
	}

	var out output.Opener
	switch c.config.Output {
	case "discard":
		out = output.NewDiscard
	default:
		out = output.NewOto
	}

	return []shtooka.Option{
		shtooka.WithLayout(layout),
		shtooka.WithPadding(padding),
		shtooka.WithOutput(out),
		shtooka.WithDrainPollInterval(c.config.DrainPoll()),
		shtooka.WithLogger(c.logger),
	}, nil
}

// openCollection indexes the configured archive
func (c *commandContext) openCollection() (*shtooka.Collection, error) {
	if c.config == nil {
		return nil, errors.New("configuration not loaded")
	}
	if c.config.Archive == "" {
		return nil, errors.New("no archive given; pass --archive or set archive in the config file")
	}
	if _, err := os.Stat(c.config.Archive); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	opts, err := c.options()
	if err != nil {
		return nil, err
	}
	return shtooka.Open(c.config.Archive, opts...)
}

// withCollection opens the archive for the duration of fn
func (c *commandContext) withCollection(fn func(*shtooka.Collection) error) error {
	coll, err := c.openCollection()
	if err != nil {
		return err
	}
	defer func() {
		if err := coll.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to close collection")
		}
	}()
	return fn(coll)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
