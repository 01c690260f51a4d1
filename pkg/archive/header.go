// ABOUTME: Tar header record decoding
// ABOUTME: Extracts name, octal size and checksum from a 512-byte record
package archive

import (
	"bytes"
	"fmt"
	"strconv"
)

const (
	// BlockSize is the width of a header record and the data alignment unit
	BlockSize = 512

	nameWidth      = 100
	sizeOffset     = 124
	sizeWidth      = 12
	checksumOffset = 148
	checksumWidth  = 8
)

type header struct {
	name string
	size int64
}

func parseHeader(b []byte) (header, error) {
	if err := verifyChecksum(b); err != nil {
		return header{}, err
	}

	size, err := parseOctal(b[sizeOffset : sizeOffset+sizeWidth])
	if err != nil {
		return header{}, fmt.Errorf("size field: %w", err)
	}

	return header{name: parseName(b[:nameWidth]), size: size}, nil
}

// parseName reads a NUL-terminated name, or the full field if no NUL exists
func parseName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func parseOctal(b []byte) (int64, error) {
	s := string(bytes.Trim(b, " \x00"))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 8, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid octal %q", s)
	}
	return int64(v), nil
}

// verifyChecksum checks the header sum with the checksum field counted as
// spaces. A blank checksum field is accepted unverified.
func verifyChecksum(b []byte) error {
	field := b[checksumOffset : checksumOffset+checksumWidth]
	if len(bytes.Trim(field, " \x00")) == 0 {
		return nil
	}
	want, err := parseOctal(field)
	if err != nil {
		return fmt.Errorf("checksum field: %w", err)
	}

	var sum int64
	for i, c := range b[:BlockSize] {
		if i >= checksumOffset && i < checksumOffset+checksumWidth {
			c = ' '
		}
		sum += int64(c)
	}
	if sum != want {
		return fmt.Errorf("checksum mismatch: header says %d, computed %d", want, sum)
	}
	return nil
}

func isZeroBlock(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
