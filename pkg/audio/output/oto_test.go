// ABOUTME: Tests for the oto output buffer accounting
// ABOUTME: Drives the output against a player that fills before mixing
package output

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

const mixChunk = 256

// bufferingPlayer mimics oto's player: once playing it reads the source
// until its buffer is full or the source ends, and only then starts handing
// bytes to the mixer. Reads happen without the lock, so freshly read bytes
// are briefly invisible to BufferedSize.
type bufferingPlayer struct {
	src io.Reader

	mu      sync.Mutex
	size    int
	buf     []byte
	played  []byte
	playing bool
	eof     bool
	closed  bool
}

func (p *bufferingPlayer) SetBufferSize(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.size = n
}

func (p *bufferingPlayer) Play() {
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()
	go p.run()
}

func (p *bufferingPlayer) fill(chunk []byte) bool {
	n, err := p.src.Read(chunk)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf = append(p.buf, chunk[:n]...)
	if err != nil {
		p.eof = true
	}
	return err == nil
}

func (p *bufferingPlayer) run() {
	chunk := make([]byte, 512)
	for {
		p.mu.Lock()
		full := len(p.buf) >= p.size
		p.mu.Unlock()
		if full || !p.fill(chunk) {
			break
		}
	}

	for {
		p.mu.Lock()
		if n := min(len(p.buf), mixChunk); n > 0 {
			p.played = append(p.played, p.buf[:n]...)
			p.buf = p.buf[n:]
			p.mu.Unlock()
			continue
		}
		if p.eof {
			p.playing = false
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()
		p.fill(chunk)
	}
}

func (p *bufferingPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *bufferingPlayer) BufferedSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf)
}

func (p *bufferingPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *bufferingPlayer) playedBytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.played...)
}

func newTestOto(bufferSize int) (*Oto, *bufferingPlayer) {
	var player *bufferingPlayer
	o := newOto(2, false, bufferSize, func(r io.Reader) otoPlayer {
		player = &bufferingPlayer{src: r}
		return player
	})
	return o, player
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 1)
	}
	return b
}

func waitDrained(t *testing.T, o *Oto) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for o.Available() != o.BufferSize() {
		if time.Now().After(deadline) {
			t.Fatalf("output never drained: %d of %d available", o.Available(), o.BufferSize())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestOtoClipShorterThanBuffer(t *testing.T) {
	o, player := newTestOto(4096)
	defer o.Close()

	data := pattern(1000)
	if err := o.Write(data); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if o.Available() == o.BufferSize() {
		t.Fatal("reported drained before end of data")
	}

	// Without the end marker the player would wait for a full buffer forever
	if err := o.Write(nil); err != nil {
		t.Fatalf("end of data failed: %v", err)
	}
	waitDrained(t, o)

	if got := player.playedBytes(); !bytes.Equal(got, data) {
		t.Errorf("expected %d bytes played, got %d", len(data), len(got))
	}
}

func TestOtoSingleWriteNeverDrainedEarly(t *testing.T) {
	o, player := newTestOto(1024)
	defer o.Close()

	data := pattern(512)
	if err := o.Write(data); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	for i := 0; i < 200; i++ {
		if o.Available() == o.BufferSize() {
			t.Fatalf("check %d: reported drained with data still queued", i)
		}
	}

	if err := o.Write(nil); err != nil {
		t.Fatalf("end of data failed: %v", err)
	}
	waitDrained(t, o)
	if got := player.playedBytes(); !bytes.Equal(got, data) {
		t.Errorf("expected %d bytes played, got %d", len(data), len(got))
	}
}

func TestOtoStreamLongerThanBuffer(t *testing.T) {
	o, player := newTestOto(1024)
	defer o.Close()

	data := pattern(10 * 1000)
	for off := 0; off < len(data); off += 1000 {
		if err := o.Write(data[off : off+1000]); err != nil {
			t.Fatalf("write at %d failed: %v", off, err)
		}
		if o.Available() == o.BufferSize() {
			t.Fatalf("reported drained after write at %d", off)
		}
	}
	if err := o.Write(nil); err != nil {
		t.Fatalf("end of data failed: %v", err)
	}
	if err := o.Write(nil); err != nil {
		t.Fatalf("repeated end of data failed: %v", err)
	}
	waitDrained(t, o)

	if got := player.playedBytes(); !bytes.Equal(got, data) {
		t.Errorf("expected %d bytes played, got %d", len(data), len(got))
	}
}

func TestOtoNothingWritten(t *testing.T) {
	o, _ := newTestOto(1024)
	defer o.Close()

	if o.Available() != o.BufferSize() {
		t.Errorf("expected empty output to report drained")
	}
}

func TestOtoWriteAfterEnd(t *testing.T) {
	o, _ := newTestOto(1024)
	defer o.Close()

	if err := o.Write(nil); err != nil {
		t.Fatalf("end of data failed: %v", err)
	}
	if err := o.Write([]byte{1, 2}); err == nil {
		t.Error("expected error writing after end of data")
	}
}

func TestOtoClose(t *testing.T) {
	o, player := newTestOto(1024)

	if err := o.Write(pattern(100)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := o.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := o.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
	if !player.closed {
		t.Error("expected player closed")
	}
	if err := o.Write([]byte{1, 2}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
