// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

import (
	"errors"

	"github.com/shtooka-go/shtooka/pkg/audio"
)

// ErrClosed is returned by Write after Close
var ErrClosed = errors.New("output closed")

// Output represents an opened audio output stream
type Output interface {
	// Write queues interleaved little-endian PCM bytes, blocking while the
	// device buffer is full. A zero-length Write tells the device no more
	// data follows, so it can flush what it holds.
	Write(data []byte) error

	// Available returns the free space of the device buffer in bytes
	Available() int

	// BufferSize returns the total size of the device buffer in bytes.
	// Available() == BufferSize() means everything written has played.
	BufferSize() int

	// Close releases output resources
	Close() error
}

// Opener opens an output stream for format
type Opener func(format audio.Format) (Output, error)
