// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC frames to per-channel int32 samples using mewkiz/flac
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/shtooka-go/shtooka/pkg/audio"
)

// maxFLACBlockSize is the largest block the FLAC format can express
const maxFLACBlockSize = 65535

// FLACDecoder decodes FLAC audio
type FLACDecoder struct {
	stream *flac.Stream
	info   audio.StreamInfo
}

// NewFLAC parses the FLAC signature and every metadata block of r
func NewFLAC(r io.ReadSeeker) (Decoder, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	si := stream.Info
	info := audio.StreamInfo{
		Format: audio.Format{
			SampleRate: int(si.SampleRate),
			Channels:   int(si.NChannels),
			BitDepth:   int(si.BitsPerSample),
		},
		TotalSamples: si.NSamples,
		MaxBlockSize: int(si.BlockSizeMax),
	}
	if info.MaxBlockSize == 0 {
		info.MaxBlockSize = maxFLACBlockSize
	}

	return &FLACDecoder{
		stream: stream,
		info:   info,
	}, nil
}

// Info returns the StreamInfo block contents
func (d *FLACDecoder) Info() audio.StreamInfo {
	return d.info
}

// ReadBlock decodes one FLAC frame
func (d *FLACDecoder) ReadBlock(samples [][]int32) (int, error) {
	frame, err := d.stream.ParseNext()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("failed to parse FLAC frame: %w", err)
	}

	n := int(frame.BlockSize)
	if err := checkBlock(samples, d.info, n); err != nil {
		return 0, err
	}
	if len(frame.Subframes) < d.info.Channels {
		return 0, fmt.Errorf("FLAC frame has %d subframes, stream has %d channels",
			len(frame.Subframes), d.info.Channels)
	}

	for ch := 0; ch < d.info.Channels; ch++ {
		copy(samples[ch][:n], frame.Subframes[ch].Samples[:n])
	}
	return n, nil
}

// Close releases decoder resources
func (d *FLACDecoder) Close() error {
	return d.stream.Close()
}
