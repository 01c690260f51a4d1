// ABOUTME: Test doubles for playback
// ABOUTME: Scripted decoder and drain-counting output device
package shtooka

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/shtooka-go/shtooka/pkg/audio"
	"github.com/shtooka-go/shtooka/pkg/audio/decode"
	"github.com/shtooka-go/shtooka/pkg/audio/output"
)

var (
	errFakeDecode    = errors.New("fake decode failure")
	errWriteAfterEnd = errors.New("write after end of data")
)

// fakeCodec opens fakeDecoders that emit a fixed number of blocks
type fakeCodec struct {
	info    audio.StreamInfo
	blocks  int
	failAt  int // block index that fails, -1 for none
	emptyAt int // block index that first yields no samples, -1 for none
	openErr error

	opened []*fakeDecoder
}

func newFakeCodec(blocks int) *fakeCodec {
	return &fakeCodec{
		info: audio.StreamInfo{
			Format:       audio.Format{SampleRate: 8000, Channels: 2, BitDepth: 16},
			TotalSamples: uint64(blocks * 4),
			MaxBlockSize: 4,
		},
		blocks:  blocks,
		failAt:  -1,
		emptyAt: -1,
	}
}

func (f *fakeCodec) open(r io.ReadSeeker) (decode.Decoder, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	d := &fakeDecoder{codec: f}
	f.opened = append(f.opened, d)
	return d, nil
}

// fakeSample is the value emitted for channel ch of sample i in block b
func fakeSample(b, i, ch int) int32 {
	v := int32(b*100 + i*10 + ch)
	if ch == 1 {
		v = -v
	}
	return v
}

type fakeDecoder struct {
	codec  *fakeCodec
	next   int
	empty  bool
	closed bool
}

func (d *fakeDecoder) Info() audio.StreamInfo { return d.codec.info }

func (d *fakeDecoder) ReadBlock(samples [][]int32) (int, error) {
	if d.next == d.codec.failAt {
		return 0, errFakeDecode
	}
	if d.next >= d.codec.blocks {
		return 0, io.EOF
	}
	if d.next == d.codec.emptyAt && !d.empty {
		d.empty = true
		return 0, nil
	}
	n := d.codec.info.MaxBlockSize
	for ch := 0; ch < d.codec.info.Channels; ch++ {
		for i := 0; i < n; i++ {
			samples[ch][i] = fakeSample(d.next, i, ch)
		}
	}
	d.next++
	return n, nil
}

func (d *fakeDecoder) Close() error {
	d.closed = true
	return nil
}

// fakeDevice opens fakeOutputs. Each Available call drains drainPerCall
// bytes, so playback always ends once writes stop.
type fakeDevice struct {
	bufferSize   int
	drainPerCall int
	openErr      error
	writeErr     error

	// holdUntilEnd keeps Available below BufferSize until a zero-length
	// write ends the stream, as a device that buffers ahead does
	holdUntilEnd bool

	// started is closed on the first write; writes then wait on release
	started chan struct{}
	release chan struct{}

	opened []*fakeOutput
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{bufferSize: 1024, drainPerCall: 1}
}

func (d *fakeDevice) open(format audio.Format) (output.Output, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("fake device: %w", err)
	}
	o := &fakeOutput{device: d, format: format}
	d.opened = append(d.opened, o)
	return o, nil
}

type fakeOutput struct {
	device  *fakeDevice
	format  audio.Format
	data    []byte
	writes  int
	pending int
	ended   bool
	closed  bool
	once    sync.Once
}

func (o *fakeOutput) Write(data []byte) error {
	if o.closed {
		return output.ErrClosed
	}
	if o.device.started != nil {
		o.once.Do(func() { close(o.device.started) })
		<-o.device.release
	}
	if o.device.writeErr != nil {
		return o.device.writeErr
	}
	if len(data) == 0 {
		o.ended = true
	} else if o.ended {
		return errWriteAfterEnd
	}
	o.writes++
	o.data = append(o.data, data...)
	o.pending += len(data)
	return nil
}

func (o *fakeOutput) Available() int {
	o.pending -= o.device.drainPerCall
	if o.pending < 0 {
		o.pending = 0
	}
	free := o.device.bufferSize - o.pending
	if o.device.holdUntilEnd && !o.ended && free == o.device.bufferSize {
		free--
	}
	return free
}

func (o *fakeOutput) BufferSize() int { return o.device.bufferSize }

func (o *fakeOutput) Close() error {
	o.closed = true
	return nil
}
