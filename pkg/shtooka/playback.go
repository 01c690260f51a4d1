// ABOUTME: Streaming playback engine
// ABOUTME: Decodes one clip block by block into an output until it drains
package shtooka

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shtooka-go/shtooka/pkg/audio"
	"github.com/shtooka-go/shtooka/pkg/audio/decode"
)

// Play decodes clip and streams it to a freshly opened output, returning
// once the output has drained. Only one clip of a collection plays at a
// time; a concurrent call fails with ErrAlreadyPlaying.
func (c *Collection) Play(clip *Clip) error {
	if c.closed.Load() {
		return ErrCollectionClosed
	}
	if clip == nil || clip.owner != c {
		return ErrInvalidOwner
	}
	if !c.playing.CompareAndSwap(false, true) {
		if c.closed.Load() {
			return ErrCollectionClosed
		}
		return ErrAlreadyPlaying
	}
	defer c.playing.Store(false)

	return c.play(clip)
}

func (c *Collection) play(clip *Clip) error {
	log := c.cfg.logger.With().
		Str("collection", c.id.String()).
		Str("clip", clip.name).
		Logger()

	open := c.cfg.decoder
	if open == nil {
		var ok bool
		if open, ok = decode.ForName(clip.name); !ok {
			return fmt.Errorf("%w: %s: no decoder for file type", ErrAudioDecode, clip.name)
		}
	}

	dec, err := open(io.NewSectionReader(c.src, clip.offset, clip.size))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAudioDecode, clip.name, err)
	}
	defer func() {
		if err := dec.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close decoder")
		}
	}()

	info := dec.Info()
	if info.TotalSamples == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownAudioLength, clip.name)
	}
	if err := info.Format.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAudioDecode, clip.name, err)
	}

	log.Debug().
		Int("sample_rate", info.SampleRate).
		Int("channels", info.Channels).
		Int("bit_depth", info.BitDepth).
		Uint64("total_samples", info.TotalSamples).
		Int("max_block", info.MaxBlockSize).
		Msg("Opened clip")

	out, err := c.cfg.output(info.Format)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAudioDeviceUnavailable, clip.name, err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close output")
		}
	}()

	block := decode.NewBlock(info)
	buf := make([]byte, info.MaxBlockSize*info.FrameSize())
	start := time.Now()
	var played uint64
	exhausted := false

	for {
		data := buf[:0]
		if !exhausted {
			n, err := dec.ReadBlock(block)
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: %s: %w", ErrAudioDecode, clip.name, err)
			}
			exhausted = err != nil
			if n > 0 {
				data = buf[:audio.PackInterleaved(buf, block, n, info.BitDepth)]
				played += uint64(n)
			} else if !exhausted {
				// An empty write would end the device stream early
				continue
			}
		}

		if err := out.Write(data); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrAudioDevice, clip.name, err)
		}
		if out.Available() == out.BufferSize() {
			break
		}
		if exhausted {
			time.Sleep(c.cfg.drainPoll)
		}
	}

	log.Info().
		Uint64("samples", played).
		Dur("duration", time.Since(start)).
		Msg("Finished clip")
	return nil
}
