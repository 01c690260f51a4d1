// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 audio to per-channel int32 samples using go-mp3
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/shtooka-go/shtooka/pkg/audio"
)

const (
	// go-mp3 always outputs 16-bit stereo
	mp3Channels    = 2
	mp3BitDepth    = 16
	mp3FrameBytes  = mp3Channels * mp3BitDepth / 8
	mp3BlockFrames = 1152
)

// MP3Decoder decodes MP3 audio
type MP3Decoder struct {
	decoder *mp3.Decoder
	info    audio.StreamInfo
	buf     []byte
}

// NewMP3 creates an MP3 decoder. r must be seekable for the total length
// to be known.
func NewMP3(r io.ReadSeeker) (Decoder, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	var total uint64
	if length := decoder.Length(); length > 0 {
		total = uint64(length / mp3FrameBytes)
	}

	return &MP3Decoder{
		decoder: decoder,
		info: audio.StreamInfo{
			Format: audio.Format{
				SampleRate: decoder.SampleRate(),
				Channels:   mp3Channels,
				BitDepth:   mp3BitDepth,
			},
			TotalSamples: total,
			MaxBlockSize: mp3BlockFrames,
		},
		buf: make([]byte, mp3BlockFrames*mp3FrameBytes),
	}, nil
}

// Info returns the stream parameters
func (d *MP3Decoder) Info() audio.StreamInfo {
	return d.info
}

// ReadBlock decodes up to one MP3 frame worth of samples
func (d *MP3Decoder) ReadBlock(samples [][]int32) (int, error) {
	if err := checkBlock(samples, d.info, mp3BlockFrames); err != nil {
		return 0, err
	}

	n, err := io.ReadFull(d.decoder, d.buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("mp3 decode error: %w", err)
	}

	frames := n / mp3FrameBytes
	for i := 0; i < frames; i++ {
		off := i * mp3FrameBytes
		samples[0][i] = int32(int16(binary.LittleEndian.Uint16(d.buf[off:])))
		samples[1][i] = int32(int16(binary.LittleEndian.Uint16(d.buf[off+2:])))
	}
	if frames == 0 {
		return 0, io.EOF
	}
	return frames, nil
}

// Close releases decoder resources
func (d *MP3Decoder) Close() error {
	return nil
}
