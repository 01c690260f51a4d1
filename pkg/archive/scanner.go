// ABOUTME: Single-pass archive scanner
// ABOUTME: Walks header records and classifies audio and metadata entries
package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// DefaultAudioSuffix selects audio entries when Scanner.AudioSuffix is empty
	DefaultAudioSuffix = ".flac"

	// DefaultMetadataPath names the index entry when Scanner.MetadataPath is empty
	DefaultMetadataPath = "flac/index.xml"
)

// PaddingMode selects how the scanner finds the header after an entry's data
type PaddingMode int

const (
	// PaddingAligned places the next header at the entry data rounded up to
	// BlockSize. An all-zero header record ends the archive.
	PaddingAligned PaddingMode = iota

	// PaddingScan skips the entry data and then every zero byte up to the
	// first non-zero byte. Entries whose data starts with zero bytes are
	// mis-parsed in this mode.
	PaddingScan
)

func (m PaddingMode) String() string {
	switch m {
	case PaddingAligned:
		return "aligned"
	case PaddingScan:
		return "scan"
	default:
		return fmt.Sprintf("PaddingMode(%d)", int(m))
	}
}

// ParsePaddingMode converts a config value ("aligned" or "scan")
func ParsePaddingMode(s string) (PaddingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "aligned":
		return PaddingAligned, nil
	case "scan":
		return PaddingScan, nil
	default:
		return 0, fmt.Errorf("unknown padding mode %q (supported: aligned, scan)", s)
	}
}

// Entry is the byte range of one archive member
type Entry struct {
	Name   string
	Offset int64 // first data byte
	Size   int64
}

// End returns the offset just past the entry data
func (e Entry) End() int64 {
	return e.Offset + e.Size
}

// Index is the result of a scan
type Index struct {
	// Entries lists the audio entries in archive order
	Entries []Entry

	// Metadata is the first entry matching the metadata path
	Metadata Entry

	// Records counts every header record visited
	Records int
}

// Scanner classifies archive entries. The zero value scans FLAC collections
// with aligned padding.
type Scanner struct {
	AudioSuffix  string
	MetadataPath string
	Padding      PaddingMode
}

// Scan reads the header records of r, which holds size bytes, starting at
// offset 0. It fails with ErrMissingMetadata if no entry matches the
// metadata path.
func (s Scanner) Scan(r io.ReaderAt, size int64) (*Index, error) {
	suffix := s.AudioSuffix
	if suffix == "" {
		suffix = DefaultAudioSuffix
	}
	metaPath := s.MetadataPath
	if metaPath == "" {
		metaPath = DefaultMetadataPath
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative archive size %d", ErrArchiveFormat, size)
	}

	idx := &Index{}
	foundMeta := false
	hdr := make([]byte, BlockSize)
	br := bufio.NewReader(nil)

	var pos int64
	for {
		// A partial record is the end of the archive
		n, err := r.ReadAt(hdr, pos)
		if n < BlockSize {
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to read header at offset %d: %w", pos, err)
			}
			break
		}
		if s.Padding == PaddingAligned && isZeroBlock(hdr) {
			break
		}

		h, err := parseHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("%w: header at offset %d: %v", ErrArchiveFormat, pos, err)
		}

		dataOffset := pos + BlockSize
		if h.size > size-dataOffset {
			return nil, fmt.Errorf("%w: entry %q at offset %d declares %d bytes, only %d remain",
				ErrArchiveFormat, h.name, pos, h.size, size-dataOffset)
		}
		idx.Records++

		entry := Entry{Name: h.name, Offset: dataOffset, Size: h.size}
		switch {
		case hasSuffixFold(h.name, suffix):
			idx.Entries = append(idx.Entries, entry)
		case !foundMeta && strings.EqualFold(h.name, metaPath):
			idx.Metadata = entry
			foundMeta = true
		}

		if s.Padding == PaddingScan {
			pos, err = skipPadding(br, r, entry.End(), size)
			if err != nil {
				return nil, fmt.Errorf("failed to skip padding after %q: %w", h.name, err)
			}
		} else {
			pos = dataOffset + alignUp(h.size)
		}
	}

	if !foundMeta {
		return nil, fmt.Errorf("%w: %s", ErrMissingMetadata, metaPath)
	}
	return idx, nil
}

// skipPadding returns the offset of the first non-zero byte at or after pos,
// or size if only zeros remain
func skipPadding(br *bufio.Reader, r io.ReaderAt, pos, size int64) (int64, error) {
	br.Reset(io.NewSectionReader(r, pos, size-pos))
	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return size, nil
		}
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return pos, nil
		}
		pos++
	}
}

func alignUp(n int64) int64 {
	return (n + BlockSize - 1) / BlockSize * BlockSize
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
