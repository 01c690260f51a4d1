// ABOUTME: Null audio output that plays in simulated real time
// ABOUTME: Used for headless playback and tests without audio hardware
package output

import (
	"math"
	"sync"
	"time"

	"github.com/shtooka-go/shtooka/pkg/audio"
)

// DefaultDiscardBuffer is the simulated buffer length used by NewDiscard
const DefaultDiscardBuffer = 250 * time.Millisecond

// Discard drops audio bytes but drains them at the format's byte rate, so
// buffer accounting behaves like a real device
type Discard struct {
	mu          sync.Mutex
	bytesPerSec float64
	bufferSize  int
	drainAt     time.Time
	written     int64
	closed      bool

	now   func() time.Time
	sleep func(time.Duration)
}

// NewDiscard opens a discard output with DefaultDiscardBuffer
func NewDiscard(format audio.Format) (Output, error) {
	return DiscardOpener(DefaultDiscardBuffer)(format)
}

// DiscardOpener returns an Opener whose outputs buffer the given duration
func DiscardOpener(buffer time.Duration) Opener {
	return func(format audio.Format) (Output, error) {
		if err := format.Validate(); err != nil {
			return nil, err
		}
		return newDiscard(format, buffer, time.Now, time.Sleep), nil
	}
}

func newDiscard(format audio.Format, buffer time.Duration, now func() time.Time, sleep func(time.Duration)) *Discard {
	bytesPerSec := float64(format.SampleRate * format.FrameSize())
	bufferSize := int(buffer.Seconds() * bytesPerSec)
	if bufferSize < format.FrameSize() {
		bufferSize = format.FrameSize()
	}
	return &Discard{
		bytesPerSec: bytesPerSec,
		bufferSize:  bufferSize,
		now:         now,
		sleep:       sleep,
	}
}

// Write queues data, sleeping while the simulated buffer is full
func (d *Discard) Write(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	now := d.now()
	if d.drainAt.Before(now) {
		d.drainAt = now
	}
	d.drainAt = d.drainAt.Add(d.duration(len(data)))
	d.written += int64(len(data))

	if over := d.pending(now) - d.bufferSize; over > 0 {
		d.sleep(d.duration(over))
	}
	return nil
}

// Available returns the simulated free buffer space
func (d *Discard) Available() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	free := d.bufferSize - d.pending(d.now())
	if free < 0 {
		return 0
	}
	return free
}

// BufferSize returns the simulated buffer size
func (d *Discard) BufferSize() int {
	return d.bufferSize
}

// Written returns the total number of bytes accepted
func (d *Discard) Written() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.written
}

// Close marks the output closed
func (d *Discard) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *Discard) pending(now time.Time) int {
	if !d.drainAt.After(now) {
		return 0
	}
	return int(math.Round(d.drainAt.Sub(now).Seconds() * d.bytesPerSec))
}

func (d *Discard) duration(n int) time.Duration {
	return time.Duration(math.Round(float64(n) / d.bytesPerSec * float64(time.Second)))
}
