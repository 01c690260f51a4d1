// ABOUTME: Minimal FLAC stream builder for tests
// ABOUTME: Encodes mono 16-bit samples as one verbatim frame with valid CRCs
package testsupport

import (
	"bytes"
	"encoding/binary"
)

// MonoFLAC encodes exactly 16 samples as a 44.1kHz mono 16-bit FLAC stream.
// declaredTotal is written to STREAMINFO as the total sample count.
func MonoFLAC(samples [16]int16, declaredTotal uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString("fLaC")

	// Last metadata block, STREAMINFO, 34 bytes
	buf.Write([]byte{0x80, 0x00, 0x00, 0x22})
	buf.Write([]byte{0x00, 0x10, 0x00, 0x10}) // block size min/max 16
	buf.Write([]byte{0, 0, 0, 0, 0, 0})       // frame size min/max unknown
	// 44100Hz (20 bits), 1 channel (3 bits), 16 bits per sample (5 bits),
	// total samples (36 bits)
	buf.Write([]byte{0x0A, 0xC4, 0x40, 0xF0, 0x00, 0x00, 0x00, declaredTotal})
	buf.Write(make([]byte, 16)) // MD5

	var frame bytes.Buffer
	frame.Write([]byte{
		0xFF, 0xF8, // sync, fixed block size
		0x69, // 8-bit block size follows, 44.1kHz
		0x08, // mono, 16 bits per sample
		0x00, // frame number 0
		0x0F, // block size 16
	})
	frame.WriteByte(crc8(frame.Bytes()))
	frame.WriteByte(0x02) // verbatim subframe, no wasted bits
	for _, s := range samples {
		_ = binary.Write(&frame, binary.BigEndian, s)
	}
	_ = binary.Write(&frame, binary.BigEndian, crc16(frame.Bytes()))

	buf.Write(frame.Bytes())
	return buf.Bytes()
}

// crc8 uses the FLAC frame header polynomial x^8 + x^2 + x + 1
func crc8(b []byte) byte {
	var crc byte
	for _, c := range b {
		crc ^= c
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// crc16 uses the FLAC frame footer polynomial x^16 + x^15 + x^2 + 1
func crc16(b []byte) uint16 {
	var crc uint16
	for _, c := range b {
		crc ^= uint16(c) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x8005
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
