// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats and little-endian sample packing
package audio

import (
	"fmt"
	"time"
)

// Format describes a PCM output format
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// BytesPerSample returns the container width of one sample. Depths that are
// not a multiple of 8 round up to the next whole byte.
func (f Format) BytesPerSample() int {
	return BytesPerSample(f.BitDepth)
}

// FrameSize returns the byte size of one interleaved frame (all channels)
func (f Format) FrameSize() int {
	return f.BytesPerSample() * f.Channels
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz %dch %dbit", f.SampleRate, f.Channels, f.BitDepth)
}

// Validate reports whether the format can be packed and played
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", f.Channels)
	}
	if f.BitDepth <= 0 || f.BitDepth > 32 {
		return fmt.Errorf("unsupported bit depth: %d (supported: 1-32)", f.BitDepth)
	}
	return nil
}

// StreamInfo is reported by a decoder after all header blocks are consumed
type StreamInfo struct {
	Format

	// TotalSamples is the number of inter-channel samples; 0 means unknown
	TotalSamples uint64

	// MaxBlockSize is the largest number of samples per channel a single
	// ReadBlock call can return
	MaxBlockSize int
}

// Duration returns the playing time of the stream
func (s StreamInfo) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(s.TotalSamples) * time.Second / time.Duration(s.SampleRate)
}

// BytesPerSample returns the whole-byte container width for bitDepth
func BytesPerSample(bitDepth int) int {
	return (bitDepth + 7) / 8
}

// PutSample writes v to dst as a width-byte little-endian value
func PutSample(dst []byte, v int32, width int) {
	u := uint32(v)
	for j := 0; j < width; j++ {
		dst[j] = byte(u >> (j * 8))
	}
}

// PackInterleaved converts the first n samples of each channel buffer into
// channel-interleaved little-endian bytes and returns the number of bytes
// written. Samples are left-justified in their byte container, so a 12-bit
// stream plays at full scale as 16-bit. dst must hold at least
// n*len(samples)*BytesPerSample(bitDepth) bytes.
func PackInterleaved(dst []byte, samples [][]int32, n, bitDepth int) int {
	width := BytesPerSample(bitDepth)
	shift := width*8 - bitDepth
	pos := 0
	for i := 0; i < n; i++ {
		for ch := range samples {
			PutSample(dst[pos:], samples[ch][i]<<shift, width)
			pos += width
		}
	}
	return pos
}

// SampleFromBytes reads a width-byte little-endian signed sample and sign
// extends it to 32 bits
func SampleFromBytes(b []byte, width int) int32 {
	var u uint32
	for j := 0; j < width; j++ {
		u |= uint32(b[j]) << (j * 8)
	}
	shift := 32 - width*8
	return int32(u<<shift) >> shift
}

// SampleToFloat32 scales a width-byte signed sample into [-1, 1)
func SampleToFloat32(v int32, width int) float32 {
	full := float64(int64(1) << (width*8 - 1))
	return float32(float64(v) / full)
}
