// ABOUTME: Audio decoder package for clip playback
// ABOUTME: Provides the block Decoder interface and FLAC and MP3 implementations
// Package decode provides block decoders bound to a clip's byte range.
//
// Supports: FLAC (mewkiz/flac), MP3 (hajimehoshi/go-mp3)
//
// A decoder consumes its stream headers when it is opened, then hands out
// blocks of per-channel samples until io.EOF.
//
// Example:
//
//	open, ok := decode.ForName("flac/hello.flac")
//	dec, err := open(io.NewSectionReader(f, offset, size))
//	defer dec.Close()
//	info := dec.Info()
//	samples := decode.NewBlock(info)
//	n, err := dec.ReadBlock(samples)
package decode
