// ABOUTME: Voice clip collection library API
// ABOUTME: Indexes a clip archive once and plays single clips on demand
// Package shtooka indexes Shtooka voice clip collections and plays their
// clips without extracting the archive.
//
// A Collection is built by scanning the archive once: every audio entry
// becomes a Clip holding its byte range and the spoken labels found for it
// in the embedded index document. The clip list never changes afterwards, so
// queries are safe from any goroutine.
//
// Playback decodes one clip at a time straight out of the archive and streams
// it to an output device. A second Play while one is running fails with
// ErrAlreadyPlaying.
//
// Example:
//
//	c, err := shtooka.Open("fra-balm-voc.tar")
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	clip, err := c.Find("bonjour")
//	if err != nil {
//	    return err
//	}
//	err = clip.Play()
package shtooka
