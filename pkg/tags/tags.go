// ABOUTME: Metadata tag parser for collection index documents
// ABOUTME: Streams attribute-value pairs out of angle-bracket markup
// Package tags extracts (filename, label) pairs from a collection's index
// document without building a document tree.
//
// The parser scans runes for a filename marker and then a label marker,
// tracking the angle-bracket depth as it goes. A '>' at depth zero or the end
// of the stream ends the document.
package tags

import (
	"bufio"
	"errors"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultFileMarker precedes a clip's file path in a Shtooka index
	DefaultFileMarker = `file path="`

	// DefaultLabelMarker precedes the spoken text of a clip
	DefaultLabelMarker = `swac_text="`
)

// Tag names one spoken label of an archive entry
type Tag struct {
	Filename string
	Label    string
}

// Parser holds the attribute markers. The zero value uses the Shtooka
// index markers.
type Parser struct {
	FileMarker  string
	LabelMarker string
}

// Parse reads r to the end of the document. prefix is prepended to every
// filename so it matches the archive entry name (e.g. "flac/"). Labels are
// lower-cased. A truncated document yields the tags read so far.
func (p Parser) Parse(r io.Reader, prefix string) ([]Tag, error) {
	fileMarker := []rune(p.FileMarker)
	if len(fileMarker) == 0 {
		fileMarker = []rune(DefaultFileMarker)
	}
	labelMarker := []rune(p.LabelMarker)
	if len(labelMarker) == 0 {
		labelMarker = []rune(DefaultLabelMarker)
	}

	s := &scanner{r: bufio.NewReader(r)}
	lower := cases.Lower(language.Und)

	var tags []Tag
	for {
		ok, err := s.skipTo(fileMarker)
		if err != nil || !ok {
			return tags, err
		}
		filename, ok, err := s.readValue()
		if err != nil || !ok {
			return tags, err
		}

		ok, err = s.skipTo(labelMarker)
		if err != nil || !ok {
			return tags, err
		}
		label, ok, err := s.readValue()
		if err != nil || !ok {
			return tags, err
		}

		tags = append(tags, Tag{
			Filename: prefix + filename,
			Label:    lower.String(label),
		})
	}
}

// Parse runs the default Parser over r
func Parse(r io.Reader, prefix string) ([]Tag, error) {
	return Parser{}.Parse(r, prefix)
}

type scanner struct {
	r     *bufio.Reader
	depth int
}

// next returns the next rune; ok is false at the end of the stream
func (s *scanner) next() (rune, bool, error) {
	c, _, err := s.r.ReadRune()
	if errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return c, true, nil
}

// skipTo consumes runes through the end of marker. It reports false when the
// document ends first.
func (s *scanner) skipTo(marker []rune) (bool, error) {
	matched := 0
	for matched < len(marker) {
		c, ok, err := s.next()
		if err != nil || !ok {
			return false, err
		}
		if c == marker[matched] {
			matched++
			continue
		}

		switch c {
		case '<':
			s.depth++
		case '>':
			if s.depth <= 0 {
				return false, nil
			}
			s.depth--
		}

		// The mismatched rune may itself start the marker
		matched = 0
		if c == marker[0] {
			matched = 1
		}
	}
	return true, nil
}

// readValue reads runes up to the closing quote
func (s *scanner) readValue() (string, bool, error) {
	var buf []rune
	for {
		c, ok, err := s.next()
		if err != nil || !ok {
			return "", false, err
		}
		if c == '"' {
			return string(buf), true, nil
		}
		buf = append(buf, c)
	}
}
