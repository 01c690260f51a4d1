// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for block decoders and the suffix registry
package decode

import (
	"fmt"
	"io"
	"strings"

	"github.com/shtooka-go/shtooka/pkg/audio"
)

// Decoder reads blocks of per-channel samples from an encoded clip
type Decoder interface {
	// Info returns the stream parameters parsed from the headers
	Info() audio.StreamInfo

	// ReadBlock decodes the next block into samples, one slice per channel,
	// each at least Info().MaxBlockSize long. It returns the number of
	// samples per channel, or io.EOF once the stream is exhausted.
	ReadBlock(samples [][]int32) (int, error)

	// Close releases decoder resources
	Close() error
}

// Opener opens a decoder over the encoded bytes of exactly one clip. The
// headers are consumed before it returns.
type Opener func(r io.ReadSeeker) (Decoder, error)

var openers = map[string]Opener{
	".flac": NewFLAC,
	".mp3":  NewMP3,
}

// ForName returns the opener registered for the file name's extension
func ForName(name string) (Opener, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return nil, false
	}
	open, ok := openers[strings.ToLower(name[i:])]
	return open, ok
}

// NewBlock allocates per-channel buffers sized for info
func NewBlock(info audio.StreamInfo) [][]int32 {
	samples := make([][]int32, info.Channels)
	for ch := range samples {
		samples[ch] = make([]int32, info.MaxBlockSize)
	}
	return samples
}

func checkBlock(samples [][]int32, info audio.StreamInfo, n int) error {
	if len(samples) < info.Channels {
		return fmt.Errorf("sample buffer has %d channels, stream has %d", len(samples), info.Channels)
	}
	for ch := 0; ch < info.Channels; ch++ {
		if len(samples[ch]) < n {
			return fmt.Errorf("channel %d buffer holds %d samples, block has %d", ch, len(samples[ch]), n)
		}
	}
	return nil
}
