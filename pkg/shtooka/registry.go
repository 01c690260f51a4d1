// ABOUTME: Clip registry join and label index
// ABOUTME: Attaches parsed tags to archive entries and indexes labels
package shtooka

import (
	"golang.org/x/text/cases"

	"github.com/shtooka-go/shtooka/pkg/archive"
	"github.com/shtooka-go/shtooka/pkg/tags"
	"github.com/tidwall/btree"
)

// labelEntry lists the clips carrying one case-folded label
type labelEntry struct {
	label string
	clips []int // ascending clip indexes
}

// foldKey returns the case-insensitive matching key of s. A cases.Caser
// keeps state, so one is made per call.
func foldKey(s string) string {
	return cases.Fold().String(s)
}

// buildClips joins entries with tags, keeping archive order. Every tag whose
// filename matches an entry name case-insensitively contributes its label.
func buildClips(owner *Collection, entries []archive.Entry, tagList []tags.Tag) []*Clip {
	byFile := make(map[string][]string, len(tagList))
	for _, t := range tagList {
		key := foldKey(t.Filename)
		byFile[key] = appendLabel(byFile[key], t.Label)
	}

	clips := make([]*Clip, len(entries))
	for i, e := range entries {
		labels := byFile[foldKey(e.Name)]
		clips[i] = &Clip{
			owner:  owner,
			index:  i,
			name:   e.Name,
			offset: e.Offset,
			size:   e.Size,
			labels: append([]string{}, labels...),
		}
	}
	return clips
}

func appendLabel(labels []string, label string) []string {
	key := foldKey(label)
	for _, l := range labels {
		if foldKey(l) == key {
			return labels
		}
	}
	return append(labels, label)
}

// indexLabels maps every folded label to the clips carrying it
func indexLabels(clips []*Clip) *btree.Map[string, labelEntry] {
	var index btree.Map[string, labelEntry]
	for _, clip := range clips {
		for _, label := range clip.labels {
			key := foldKey(label)
			entry, _ := index.Get(key)
			if entry.label == "" {
				entry.label = label
			}
			if n := len(entry.clips); n == 0 || entry.clips[n-1] != clip.index {
				entry.clips = append(entry.clips, clip.index)
			}
			index.Set(key, entry)
		}
	}
	return &index
}
