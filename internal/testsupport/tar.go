// ABOUTME: Synthetic archive builders for tests
// ABOUTME: Writes USTAR archives and collection index documents
package testsupport

import (
	"archive/tar"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Member is one file placed in a synthetic archive
type Member struct {
	Name string
	Data []byte
}

// BuildTar writes members, in order, as a USTAR archive
func BuildTar(t testing.TB, members ...Member) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, m := range members {
		hdr := &tar.Header{
			Name:     m.Name,
			Size:     int64(len(m.Data)),
			Mode:     0o644,
			Typeflag: tar.TypeReg,
			ModTime:  time.Unix(1700000000, 0),
			Format:   tar.FormatUSTAR,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", m.Name, err)
		}
		if _, err := tw.Write(m.Data); err != nil {
			t.Fatalf("write data %s: %v", m.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	return buf.Bytes()
}

// IndexEntry maps one archive-relative file to a spoken label
type IndexEntry struct {
	Path  string
	Label string
}

// IndexXML renders a Shtooka-style index document
func IndexXML(entries ...IndexEntry) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<index>\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "<file path=\"%s\">\n<tag swac_lang=\"fra\" swac_text=\"%s\"/>\n</file>\n", e.Path, e.Label)
	}
	b.WriteString("</index>\n")
	return []byte(b.String())
}

// WriteFile stores data under dir and returns the path
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
