// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams PCM bytes through a pipe into a persistent oto player
package output

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/shtooka-go/shtooka/pkg/audio"
)

// DefaultOtoBuffer is the device buffer length used by NewOto
const DefaultOtoBuffer = 250 * time.Millisecond

// oto allows one context per process; it is created on first use and kept
var (
	otoMu     sync.Mutex
	otoCtx    *oto.Context
	otoParams deviceParams
)

type deviceParams struct {
	sampleRate int
	channels   int
	format     oto.Format
}

// otoPlayer is the part of *oto.Player the output drives
type otoPlayer interface {
	SetBufferSize(bufferSize int)
	Play()
	IsPlaying() bool
	BufferedSize() int
	Close() error
}

// Oto output implementation using oto library. The player buffers ahead of
// the mixer, so a zero-length Write marks the end of data: it closes the
// pipe, letting the player flush a partly filled buffer and stop.
type Oto struct {
	player     otoPlayer
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	width      int
	float      bool
	bufferSize int
	scratch    []byte
	written    int64
	finished   bool
	closed     bool
}

// NewOto opens the default audio device for format with DefaultOtoBuffer
func NewOto(format audio.Format) (Output, error) {
	return OtoOpener(DefaultOtoBuffer)(format)
}

// OtoOpener returns an Opener whose players buffer the given duration
func OtoOpener(buffer time.Duration) Opener {
	return func(format audio.Format) (Output, error) {
		return openOto(format, buffer)
	}
}

func openOto(format audio.Format, buffer time.Duration) (*Oto, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	params := deviceParamsFor(format)
	ctx, err := otoContext(params)
	if err != nil {
		return nil, err
	}

	float := params.format == oto.FormatFloat32LE
	deviceWidth := format.BytesPerSample()
	if float {
		deviceWidth = 4
	}
	bufferSize := int(buffer.Seconds()*float64(format.SampleRate)) * format.Channels * deviceWidth
	if bufferSize <= 0 {
		bufferSize = format.Channels * deviceWidth
	}

	return newOto(format.BytesPerSample(), float, bufferSize, func(r io.Reader) otoPlayer {
		return ctx.NewPlayer(r)
	}), nil
}

func newOto(width int, float bool, bufferSize int, newPlayer func(io.Reader) otoPlayer) *Oto {
	o := &Oto{
		width:      width,
		float:      float,
		bufferSize: bufferSize,
	}

	// Create pipe for continuous streaming
	o.pipeReader, o.pipeWriter = io.Pipe()

	o.player = newPlayer(o.pipeReader)
	o.player.SetBufferSize(bufferSize)
	o.player.Play()
	return o
}

// deviceParamsFor picks the oto sample format. 16-bit PCM is passed through;
// every other depth is converted to float32.
func deviceParamsFor(format audio.Format) deviceParams {
	p := deviceParams{
		sampleRate: format.SampleRate,
		channels:   format.Channels,
		format:     oto.FormatFloat32LE,
	}
	if format.BytesPerSample() == 2 {
		p.format = oto.FormatSignedInt16LE
	}
	return p
}

func otoContext(params deviceParams) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		// oto cannot be reinitialized with a different format
		if otoParams != params {
			return nil, fmt.Errorf("oto context already open at %dHz %dch, cannot switch to %dHz %dch",
				otoParams.sampleRate, otoParams.channels, params.sampleRate, params.channels)
		}
		return otoCtx, nil
	}

	ctx, readyChan, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   params.sampleRate,
		ChannelCount: params.channels,
		Format:       params.format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	otoCtx = ctx
	otoParams = params
	return ctx, nil
}

// Write outputs audio bytes, blocking until the player has taken them. A
// zero-length Write ends the stream; later empty writes are no-ops and
// later data is an error.
func (o *Oto) Write(data []byte) error {
	if o.closed {
		return ErrClosed
	}
	if len(data) == 0 {
		if !o.finished {
			o.finished = true
			o.pipeWriter.Close()
		}
		return nil
	}
	if o.finished {
		return errors.New("write after end of data")
	}

	if o.float {
		o.scratch = toFloat32(o.scratch[:0], data, o.width)
		data = o.scratch
	}

	if _, err := o.pipeWriter.Write(data); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}
	o.written += int64(len(data))
	return nil
}

// Available returns the free space of the player buffer. It reaches
// BufferSize only once the stream has ended and the player has stopped,
// since bytes taken from the pipe are not yet counted in BufferedSize.
func (o *Oto) Available() int {
	if o.drained() {
		return o.bufferSize
	}
	free := o.bufferSize - o.player.BufferedSize()
	if free >= o.bufferSize {
		free = o.bufferSize - 1
	}
	if free < 0 {
		return 0
	}
	return free
}

func (o *Oto) drained() bool {
	if o.written == 0 {
		return true
	}
	return o.finished && !o.player.IsPlaying() && o.player.BufferedSize() == 0
}

// BufferSize returns the player buffer size in device bytes
func (o *Oto) BufferSize() int {
	return o.bufferSize
}

// Close releases output resources. The shared oto context stays open for
// the next clip.
func (o *Oto) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true

	o.pipeWriter.Close()
	err := o.player.Close()
	o.pipeReader.Close()
	return err
}

// toFloat32 converts width-byte little-endian samples to float32 LE
func toFloat32(dst, src []byte, width int) []byte {
	n := len(src) / width
	for i := 0; i < n; i++ {
		v := audio.SampleFromBytes(src[i*width:], width)
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(audio.SampleToFloat32(v, width)))
	}
	return dst
}
