// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, StreamInfo and little-endian sample packing
// Package audio provides the audio types shared by decoders, outputs and the
// playback engine.
//
// This package defines:
//   - Format: the negotiated output format (sample rate, channels, bit depth)
//   - StreamInfo: what a decoder reports once its headers are consumed
//
// It also provides the packing used by the playback loop, which turns
// per-channel sample blocks into interleaved little-endian bytes:
//
//	info := dec.Info()
//	n, _ := dec.ReadBlock(samples)
//	size := audio.PackInterleaved(buf, samples, n, info.BitDepth)
//	err := out.Write(buf[:size])
package audio
