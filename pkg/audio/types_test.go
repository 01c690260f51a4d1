// ABOUTME: Tests for audio types
// ABOUTME: Tests sample packing and format helpers
package audio

import (
	"bytes"
	"testing"
	"time"
)

func TestBytesPerSample(t *testing.T) {
	tests := []struct {
		name     string
		bitDepth int
		expected int
	}{
		{"8bit", 8, 1},
		{"12bit", 12, 2},
		{"16bit", 16, 2},
		{"20bit", 20, 3},
		{"24bit", 24, 3},
		{"32bit", 32, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BytesPerSample(tt.bitDepth); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPackInterleaved16Bit(t *testing.T) {
	samples := [][]int32{
		{1, -1, 0x1234},
		{2, -2, -0x1234},
	}
	buf := make([]byte, 64)

	n := PackInterleaved(buf, samples, 3, 16)
	if n != 12 {
		t.Fatalf("expected 12 bytes, got %d", n)
	}

	expected := []byte{
		0x01, 0x00, 0x02, 0x00,
		0xFF, 0xFF, 0xFE, 0xFF,
		0x34, 0x12, 0xCC, 0xED,
	}
	if !bytes.Equal(buf[:n], expected) {
		t.Errorf("expected %x, got %x", expected, buf[:n])
	}
}

func TestPackInterleavedPartialBlock(t *testing.T) {
	samples := [][]int32{{5, 6, 7, 8}}
	buf := make([]byte, 16)

	n := PackInterleaved(buf, samples, 2, 8)
	if n != 2 {
		t.Fatalf("expected 2 bytes, got %d", n)
	}
	if buf[0] != 5 || buf[1] != 6 {
		t.Errorf("unexpected bytes %v", buf[:n])
	}
}

func TestPackInterleaved24Bit(t *testing.T) {
	samples := [][]int32{{0x123456}, {-2}}
	buf := make([]byte, 6)

	n := PackInterleaved(buf, samples, 1, 24)
	expected := []byte{0x56, 0x34, 0x12, 0xFE, 0xFF, 0xFF}
	if !bytes.Equal(buf[:n], expected) {
		t.Errorf("expected %x, got %x", expected, buf[:n])
	}
}

func TestPackInterleavedLeftJustifies(t *testing.T) {
	// 12-bit max positive value moves into the top of a 16-bit container
	samples := [][]int32{{0x7FF}}
	buf := make([]byte, 2)

	PackInterleaved(buf, samples, 1, 12)
	if got := SampleFromBytes(buf, 2); got != 0x7FF0 {
		t.Errorf("expected %#x, got %#x", 0x7FF0, got)
	}
}

func TestSampleFromBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		width    int
		expected int32
	}{
		{"8bit negative", []byte{0x80}, 1, -128},
		{"16bit positive", []byte{0x00, 0x01}, 2, 256},
		{"16bit negative", []byte{0xFF, 0xFF}, 2, -1},
		{"24bit positive", []byte{0x56, 0x34, 0x12}, 3, 0x123456},
		{"24bit negative", []byte{0x00, 0x00, 0x80}, 3, -8388608},
		{"32bit", []byte{0x01, 0x00, 0x00, 0x80}, 4, -2147483647},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SampleFromBytes(tt.input, tt.width); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestSampleToFloat32(t *testing.T) {
	if got := SampleToFloat32(-32768, 2); got != -1 {
		t.Errorf("expected -1, got %f", got)
	}
	if got := SampleToFloat32(0, 3); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
	if got := SampleToFloat32(64, 1); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
}

func TestFormatValidate(t *testing.T) {
	valid := Format{SampleRate: 44100, Channels: 1, BitDepth: 16}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid format, got %v", err)
	}

	invalid := []Format{
		{SampleRate: 0, Channels: 1, BitDepth: 16},
		{SampleRate: 44100, Channels: 0, BitDepth: 16},
		{SampleRate: 44100, Channels: 1, BitDepth: 33},
	}
	for _, f := range invalid {
		if err := f.Validate(); err == nil {
			t.Errorf("expected error for %v", f)
		}
	}
}

func TestStreamInfoDuration(t *testing.T) {
	info := StreamInfo{
		Format:       Format{SampleRate: 44100, Channels: 2, BitDepth: 16},
		TotalSamples: 88200,
	}
	if got := info.Duration(); got != 2*time.Second {
		t.Errorf("expected 2s, got %v", got)
	}
	if got := info.FrameSize(); got != 4 {
		t.Errorf("expected frame size 4, got %d", got)
	}
}
