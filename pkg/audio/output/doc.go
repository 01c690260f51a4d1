// ABOUTME: Audio output package for playing clips
// ABOUTME: Provides the Output interface with oto and discard backends
// Package output provides audio playback devices.
//
// An Output is opened for one PCM format and accepts interleaved
// little-endian bytes in that format. Available and BufferSize let the
// caller detect when the device has played everything written to it.
//
// Example:
//
//	out, err := output.NewOto(audio.Format{SampleRate: 44100, Channels: 1, BitDepth: 16})
//	err = out.Write(pcm)
//	drained := out.Available() == out.BufferSize()
package output
