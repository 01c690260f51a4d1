// ABOUTME: Collection error values
// ABOUTME: Sentinels for construction, query and playback failures
package shtooka

import (
	"errors"

	"github.com/shtooka-go/shtooka/pkg/archive"
)

// Construction errors
var (
	ErrArchiveFormat   = archive.ErrArchiveFormat
	ErrMissingMetadata = archive.ErrMissingMetadata
)

// Query and playback errors
var (
	ErrCollectionClosed       = errors.New("collection has been closed")
	ErrInvalidOwner           = errors.New("clip does not belong to this collection")
	ErrAlreadyPlaying         = errors.New("audio from this collection is already playing")
	ErrClipNotFound           = errors.New("clip not found")
	ErrUnknownAudioLength     = errors.New("unknown audio length")
	ErrAudioDeviceUnavailable = errors.New("audio device unavailable")
	ErrAudioDevice            = errors.New("audio device error")
	ErrAudioDecode            = errors.New("audio decode error")
)
