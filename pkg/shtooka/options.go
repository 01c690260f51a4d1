// ABOUTME: Collection construction options
// ABOUTME: Archive layout presets, collaborators and playback tuning
package shtooka

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shtooka-go/shtooka/pkg/archive"
	"github.com/shtooka-go/shtooka/pkg/audio/decode"
	"github.com/shtooka-go/shtooka/pkg/audio/output"
)

// DefaultDrainPollInterval is how long playback waits between drain checks
// once the decoder has no more samples
const DefaultDrainPollInterval = 10 * time.Millisecond

// Layout describes where a collection keeps its clips and index
type Layout struct {
	Name         string
	AudioSuffix  string
	MetadataPath string

	// TagPrefix turns index paths into archive entry names
	TagPrefix string
}

// Layout presets for the two formats Shtooka publishes
var (
	// LayoutFLAC reads flac/*.flac clips indexed by flac/index.xml
	LayoutFLAC = Layout{Name: "flac", AudioSuffix: ".flac", MetadataPath: "flac/index.xml", TagPrefix: "flac/"}

	// LayoutMP3 reads mp3/*.mp3 clips indexed by mp3/index.xml
	LayoutMP3 = Layout{Name: "mp3", AudioSuffix: ".mp3", MetadataPath: "mp3/index.xml", TagPrefix: "mp3/"}
)

// ParseLayout returns the preset named s
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flac":
		return LayoutFLAC, nil
	case "mp3":
		return LayoutMP3, nil
	default:
		return Layout{}, fmt.Errorf("unknown collection format %q (supported: flac, mp3)", s)
	}
}

type config struct {
	layout    Layout
	padding   archive.PaddingMode
	decoder   decode.Opener
	output    output.Opener
	drainPoll time.Duration
	logger    zerolog.Logger
}

func defaultConfig() config {
	return config{
		layout:    LayoutFLAC,
		padding:   archive.PaddingAligned,
		output:    output.NewOto,
		drainPoll: DefaultDrainPollInterval,
		logger:    zerolog.Nop(),
	}
}

// Option configures a Collection
type Option func(*config)

// WithLayout selects the archive layout (default LayoutFLAC)
func WithLayout(l Layout) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithPadding selects how the scanner finds each next header
func WithPadding(mode archive.PaddingMode) Option {
	return func(c *config) {
		c.padding = mode
	}
}

// WithDecoder forces one decoder for every clip instead of choosing by
// file extension
func WithDecoder(open decode.Opener) Option {
	return func(c *config) {
		c.decoder = open
	}
}

// WithOutput sets the output device opener (default output.NewOto)
func WithOutput(open output.Opener) Option {
	return func(c *config) {
		c.output = open
	}
}

// WithDrainPollInterval sets the wait between drain checks at end of stream
func WithDrainPollInterval(d time.Duration) Option {
	return func(c *config) {
		if d < 0 {
			d = 0
		}
		c.drainPoll = d
	}
}

// WithLogger sets the logger (default: disabled)
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
