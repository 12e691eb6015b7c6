// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"

	"github.com/icza/bitio"
)

// Offsets inside frames built by Frame. Bytes after the header carry the
// frame index and a marker that MockCore cores treat as corruption.
const (
	HeaderBytes   = 14
	IndexOffset   = HeaderBytes
	MarkerOffset  = IndexOffset + 4
	CorruptMarker = 0xEE
)

// Sample rate and bit rate codes used by the builders.
const (
	Rate48000   = 13
	Rate44100   = 8
	Rate1411k   = 22
	Rate1536k   = 24
	Rate768k    = 15
	RateOpen    = 29
	AModeStereo = 2
	AMode3F2R   = 9
)

// Header describes a frame header to build. FrameLength is in samples per
// channel and must be a multiple of 32; FrameSize is in bytes.
type Header struct {
	FrameLength int
	FrameSize   int
	AMode       int
	RateCode    int
	BitRateCode int
	LFE         bool
}

// Stereo48k is a 512-sample, 1024-byte stereo frame at 48 kHz.
var Stereo48k = Header{
	FrameLength: 512,
	FrameSize:   1024,
	AMode:       AModeStereo,
	RateCode:    Rate48000,
	BitRateCode: Rate768k,
}

// StereoCD matches DTS audio CDs: a WAV at 44.1 kHz stereo whose PCM
// byte rate equals the DTS bit rate, so the WAV sample count is exact.
var StereoCD = Header{
	FrameLength: 512,
	FrameSize:   2048,
	AMode:       AModeStereo,
	RateCode:    Rate44100,
	BitRateCode: Rate1411k,
}

// Bytes returns the header as a 16-bit big-endian bitstream, padded to
// HeaderBytes.
func (h Header) Bytes() []byte {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	w.TryWriteBits(0x7ffe8001, 32)
	w.TryWriteBits(1, 1)  // normal frame
	w.TryWriteBits(31, 5) // no deficit
	w.TryWriteBits(0, 1)  // no CRC
	w.TryWriteBits(uint64(h.FrameLength/32-1), 7)
	w.TryWriteBits(uint64(h.FrameSize-1), 14)
	w.TryWriteBits(uint64(h.AMode), 6)
	w.TryWriteBits(uint64(h.RateCode), 4)
	w.TryWriteBits(uint64(h.BitRateCode), 5)
	w.TryWriteBits(0, 10)
	lff := uint64(0)
	if h.LFE {
		lff = 2
	}
	w.TryWriteBits(lff, 2)
	w.Close()

	out := make([]byte, HeaderBytes)
	copy(out, buf.Bytes())
	return out
}

// Frame returns a complete frame whose payload records index.
func (h Header) Frame(index int, corrupt bool) []byte {
	f := make([]byte, h.FrameSize)
	copy(f, h.Bytes())
	binary.BigEndian.PutUint32(f[IndexOffset:], uint32(index))
	if corrupt {
		f[MarkerOffset] = CorruptMarker
	}
	return f
}

// Stream concatenates n frames with indexes 0..n-1. Frames listed in
// corrupt carry the corruption marker.
func (h Header) Stream(n int, corrupt ...int) []byte {
	bad := make(map[int]bool, len(corrupt))
	for _, i := range corrupt {
		bad[i] = true
	}

	out := make([]byte, 0, n*h.FrameSize)
	for i := range n {
		out = append(out, h.Frame(i, bad[i])...)
	}
	return out
}

// SampleValue is the PCM value MockCore produces for channel ch of the
// absolute sample frame n, when no gain is applied.
func SampleValue(n int64, ch int) int16 {
	return int16(ch<<12 | int(n&0xfff))
}

// SwapWords converts a 16-bit big-endian stream to little-endian.
func SwapWords(b []byte) []byte {
	out := make([]byte, len(b))
	for i := 0; i+1 < len(b); i += 2 {
		out[i], out[i+1] = b[i+1], b[i]
	}
	return out
}

// Pack14 repacks a 16-bit big-endian stream into 14 bits per 16-bit word,
// sign-extended, in the given byte order.
func Pack14(b []byte, littleEndian bool) []byte {
	r := bitio.NewReader(bytes.NewReader(b))
	var out []byte

	for bits := len(b) * 8; bits >= 14; bits -= 14 {
		v := uint16(r.TryReadBits(14))
		if v&0x2000 != 0 {
			v |= 0xc000
		}
		if littleEndian {
			out = append(out, byte(v), byte(v>>8))
		} else {
			out = append(out, byte(v>>8), byte(v))
		}
	}
	return out
}

// WrapWAV stores payload in a WAV file declaring 16-bit PCM with the given
// channel count and rate, the way DTS CDs are ripped.
func WrapWAV(payload []byte, channels, sampleRate int) []byte {
	var buf bytes.Buffer

	le := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	buf.WriteString("RIFF")
	le(uint32(36 + len(payload)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	le(uint32(16))
	le(uint16(1))
	le(uint16(channels))
	le(uint32(sampleRate))
	le(uint32(sampleRate * channels * 2))
	le(uint16(channels * 2))
	le(uint16(16))
	buf.WriteString("data")
	le(uint32(len(payload)))
	buf.Write(payload)

	return buf.Bytes()
}
