// ABOUTME: Clip record type
// ABOUTME: Immutable byte range and labels of one playable clip
package shtooka

import (
	"github.com/google/uuid"
)

// Clip is one playable audio entry of a Collection. It is only valid while
// its collection is open.
type Clip struct {
	owner  *Collection
	index  int
	name   string
	offset int64
	size   int64
	labels []string
}

// Name returns the archive entry name
func (c *Clip) Name() string { return c.name }

// Offset returns the position of the clip's first byte in the archive
func (c *Clip) Offset() int64 { return c.offset }

// Size returns the encoded length of the clip in bytes
func (c *Clip) Size() int64 { return c.size }

// Index returns the clip's position in archive order
func (c *Clip) Index() int { return c.index }

// Labels returns the spoken labels of the clip in index order. A clip
// without labels returns an empty slice.
func (c *Clip) Labels() []string {
	labels := make([]string, len(c.labels))
	copy(labels, c.labels)
	return labels
}

// HasLabel reports whether label names this clip, ignoring case
func (c *Clip) HasLabel(label string) bool {
	key := foldKey(label)
	for _, l := range c.labels {
		if foldKey(l) == key {
			return true
		}
	}
	return false
}

// Collection returns the owning collection
func (c *Clip) Collection() *Collection { return c.owner }

// CollectionID returns the ID of the owning collection
func (c *Clip) CollectionID() uuid.UUID { return c.owner.id }

// Play plays the clip through its collection
func (c *Clip) Play() error {
	return c.owner.Play(c)
}
