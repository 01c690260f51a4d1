// ABOUTME: Container scanner for tar-like clip archives
// ABOUTME: Locates clip byte ranges and the metadata file without extracting
// Package archive indexes a tar-like container of audio clips.
//
// A scan walks the 512-byte header records of the container once and records
// the byte range of every audio entry plus the range of the single metadata
// file. No entry data is copied; callers read clips through
// io.NewSectionReader over the same source.
//
// Example:
//
//	s := archive.Scanner{AudioSuffix: ".flac", MetadataPath: "flac/index.xml"}
//	idx, err := s.Scan(f, size)
//	for _, e := range idx.Entries {
//	    fmt.Println(e.Name, e.Offset, e.Size)
//	}
package archive
