// ABOUTME: Archive scanner error values
// ABOUTME: Sentinels checked with errors.Is by callers
package archive

import "errors"

var (
	ErrArchiveFormat   = errors.New("archive format error")
	ErrMissingMetadata = errors.New("metadata entry not found in archive")
)
