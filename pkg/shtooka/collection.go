// ABOUTME: Collection construction, lifecycle and registry queries
// ABOUTME: Owns the archive byte source and the immutable clip list
package shtooka

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shtooka-go/shtooka/pkg/archive"
	"github.com/shtooka-go/shtooka/pkg/tags"
	"github.com/tidwall/btree"
)

// Collection is an indexed voice clip archive
type Collection struct {
	id     uuid.UUID
	src    io.ReaderAt
	size   int64
	closer io.Closer
	cfg    config

	clips  []*Clip
	labels *btree.Map[string, labelEntry]

	closed  atomic.Bool
	playing atomic.Bool
}

// Open opens and indexes the archive file at path
func Open(path string, opts ...Option) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat collection: %w", err)
	}

	c, err := newCollection(f, fi.Size(), f, opts)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// OpenRange indexes an archive stored as size bytes at offset inside the
// file at path
func OpenRange(path string, offset, size int64, opts ...Option) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat collection: %w", err)
	}
	if offset < 0 || size < 0 || offset > fi.Size()-size {
		f.Close()
		return nil, fmt.Errorf("range [%d, %d) outside %s (%d bytes)", offset, offset+size, path, fi.Size())
	}

	c, err := newCollection(io.NewSectionReader(f, offset, size), size, f, opts)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// New indexes size bytes of r. On success the collection owns r and closes
// it on Close if r is an io.Closer.
func New(r io.ReaderAt, size int64, opts ...Option) (*Collection, error) {
	closer, _ := r.(io.Closer)
	return newCollection(r, size, closer, opts)
}

func newCollection(r io.ReaderAt, size int64, closer io.Closer, opts []Option) (*Collection, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	scanner := archive.Scanner{
		AudioSuffix:  cfg.layout.AudioSuffix,
		MetadataPath: cfg.layout.MetadataPath,
		Padding:      cfg.padding,
	}
	idx, err := scanner.Scan(r, size)
	if err != nil {
		return nil, err
	}

	meta := io.NewSectionReader(r, idx.Metadata.Offset, idx.Metadata.Size)
	tagList, err := tags.Parse(meta, cfg.layout.TagPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags from %s: %w", idx.Metadata.Name, err)
	}

	c := &Collection{
		id:     uuid.New(),
		src:    r,
		size:   size,
		closer: closer,
		cfg:    cfg,
	}
	c.clips = buildClips(c, idx.Entries, tagList)
	c.labels = indexLabels(c.clips)

	cfg.logger.Info().
		Str("collection", c.id.String()).
		Str("layout", cfg.layout.Name).
		Int("records", idx.Records).
		Int("clips", len(c.clips)).
		Int("tags", len(tagList)).
		Int("labels", c.labels.Len()).
		Msg("Indexed collection")

	return c, nil
}

// ID returns the unique ID assigned when the collection was opened
func (c *Collection) ID() uuid.UUID {
	return c.id
}

// Layout returns the archive layout the collection was indexed with
func (c *Collection) Layout() Layout {
	return c.cfg.layout
}

// Closed reports whether Close has completed
func (c *Collection) Closed() bool {
	return c.closed.Load()
}

// Close releases the byte source. It fails with ErrAlreadyPlaying while a
// clip is playing, and with ErrCollectionClosed if already closed.
func (c *Collection) Close() error {
	if c.closed.Load() {
		return ErrCollectionClosed
	}
	// Take the playback permit for good so no Play can start afterwards
	if !c.playing.CompareAndSwap(false, true) {
		if c.closed.Load() {
			return ErrCollectionClosed
		}
		return fmt.Errorf("cannot close during playback: %w", ErrAlreadyPlaying)
	}
	c.closed.Store(true)

	c.cfg.logger.Debug().Str("collection", c.id.String()).Msg("Closed collection")

	if c.closer != nil {
		if err := c.closer.Close(); err != nil {
			return fmt.Errorf("failed to close collection source: %w", err)
		}
	}
	return nil
}

// Count returns the number of clips
func (c *Collection) Count() (int, error) {
	if c.closed.Load() {
		return 0, ErrCollectionClosed
	}
	return len(c.clips), nil
}

// Clips returns every clip in archive order
func (c *Collection) Clips() ([]*Clip, error) {
	if c.closed.Load() {
		return nil, ErrCollectionClosed
	}
	clips := make([]*Clip, len(c.clips))
	copy(clips, c.clips)
	return clips, nil
}

// Clip returns the clip at index i in archive order
func (c *Collection) Clip(i int) (*Clip, error) {
	if c.closed.Load() {
		return nil, ErrCollectionClosed
	}
	if i < 0 || i >= len(c.clips) {
		return nil, fmt.Errorf("%w: index %d out of range [0, %d)", ErrClipNotFound, i, len(c.clips))
	}
	return c.clips[i], nil
}

// Find returns the first clip, in archive order, labelled label. Matching
// ignores case.
func (c *Collection) Find(label string) (*Clip, error) {
	if c.closed.Load() {
		return nil, ErrCollectionClosed
	}
	entry, ok := c.labels.Get(foldKey(label))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrClipNotFound, label)
	}
	return c.clips[entry.clips[0]], nil
}

// FindAll returns every clip labelled label in archive order. The result is
// empty, not an error, when nothing matches.
func (c *Collection) FindAll(label string) ([]*Clip, error) {
	if c.closed.Load() {
		return nil, ErrCollectionClosed
	}
	entry, _ := c.labels.Get(foldKey(label))
	clips := make([]*Clip, 0, len(entry.clips))
	for _, i := range entry.clips {
		clips = append(clips, c.clips[i])
	}
	return clips, nil
}

// FindPrefix returns the distinct labels starting with prefix, in label
// order. limit <= 0 returns all of them.
func (c *Collection) FindPrefix(prefix string, limit int) ([]string, error) {
	if c.closed.Load() {
		return nil, ErrCollectionClosed
	}
	key := foldKey(prefix)
	labels := []string{}
	c.labels.Ascend(key, func(k string, entry labelEntry) bool {
		if !strings.HasPrefix(k, key) {
			return false
		}
		labels = append(labels, entry.label)
		return limit <= 0 || len(labels) < limit
	})
	return labels, nil
}
