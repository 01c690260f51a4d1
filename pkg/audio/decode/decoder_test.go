// ABOUTME: Tests for the decoder registry
// ABOUTME: Checks suffix lookup and block allocation
package decode

import (
	"testing"

	"github.com/shtooka-go/shtooka/pkg/audio"
)

func TestForName(t *testing.T) {
	tests := []struct {
		name  string
		found bool
	}{
		{"flac/fra-0001.flac", true},
		{"FLAC/FRA-0001.FLAC", true},
		{"mp3/eng-0001.mp3", true},
		{"ogg/deu-0001.ogg", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, ok := ForName(tt.name)
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, ok)
			}
			if ok && open == nil {
				t.Fatal("expected non-nil opener")
			}
		})
	}
}

func TestNewBlock(t *testing.T) {
	info := audio.StreamInfo{
		Format:       audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 24},
		MaxBlockSize: 4096,
	}

	samples := NewBlock(info)
	if len(samples) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(samples))
	}
	for ch, buf := range samples {
		if len(buf) != 4096 {
			t.Errorf("channel %d: expected 4096 samples, got %d", ch, len(buf))
		}
	}
}
