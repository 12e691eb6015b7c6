// SPDX-License-Identifier: EPL-2.0

package dca

import (
	"bytes"

	"github.com/icza/bitio"
)

// HeaderSize is the number of bytes needed to parse a frame header in any
// of the four sync variants.
const HeaderSize = 14

const (
	minFrameLength = 6 * 32
	minFrameSize   = 96
)

// BitstreamMode is the word packing of a DTS stream.
type BitstreamMode uint8

const (
	Mode16BE BitstreamMode = iota
	Mode16LE
	Mode14BE
	Mode14LE
)

func (m BitstreamMode) String() string {
	switch m {
	case Mode16BE:
		return "16-bit big-endian"
	case Mode16LE:
		return "16-bit little-endian"
	case Mode14BE:
		return "14-bit big-endian"
	case Mode14LE:
		return "14-bit little-endian"
	}
	return "unknown"
}

var sampleRates = [16]int{
	0, 8000, 16000, 32000, 0, 0, 11025, 22050,
	44100, 0, 0, 12000, 24000, 48000, 96000, 192000,
}

// Values 1, 2 and 3 stand for open, variable and lossless bit rates.
var bitRates = [32]int{
	32000, 56000, 64000, 96000, 112000, 128000, 192000, 224000,
	256000, 320000, 384000, 448000, 512000, 576000, 640000, 768000,
	896000, 1024000, 1152000, 1280000, 1344000, 1408000, 1411200, 1472000,
	1536000, 1920000, 2048000, 3072000, 3840000, 1, 2, 3,
}

// SyncInfo is what a frame header reveals about its frame.
type SyncInfo struct {
	// FrameSize in bytes, sync word included.
	FrameSize int
	// FrameLength in samples per channel.
	FrameLength int
	Flags       Flags
	SampleRate  int
	BitRate     int
	Mode        BitstreamMode
}

// DetectMode reports the packing of a stream starting at b, or false when
// b does not begin with a sync word.
func DetectMode(b []byte) (BitstreamMode, bool) {
	if len(b) < 6 {
		return 0, false
	}
	switch {
	case b[0] == 0x7f && b[1] == 0xfe && b[2] == 0x80 && b[3] == 0x01:
		return Mode16BE, true
	case b[0] == 0xfe && b[1] == 0x7f && b[2] == 0x01 && b[3] == 0x80:
		return Mode16LE, true
	case b[0] == 0x1f && b[1] == 0xff && b[2] == 0xe8 && b[3] == 0x00 && b[4] == 0x07 && b[5]&0xf0 == 0xf0:
		return Mode14BE, true
	case b[0] == 0xff && b[1] == 0x1f && b[2] == 0x00 && b[3] == 0xe8 && b[4]&0xf0 == 0xf0 && b[5] == 0x07:
		return Mode14LE, true
	}
	return 0, false
}

// ParseHeader decodes the frame header at the start of b, which must hold
// at least HeaderSize bytes. It does not need a core.
func ParseHeader(b []byte) (SyncInfo, bool) {
	var info SyncInfo

	if len(b) < HeaderSize {
		return info, false
	}
	mode, ok := DetectMode(b)
	if !ok {
		return info, false
	}
	info.Mode = mode

	r := bitio.NewReader(bytes.NewReader(normalize(b[:HeaderSize], mode)))

	r.TryReadBits(32) // sync
	r.TryReadBits(1)  // frame type
	r.TryReadBits(5)  // deficit sample count
	r.TryReadBits(1)  // CRC present
	info.FrameLength = (int(r.TryReadBits(7)) + 1) * 32
	size := int(r.TryReadBits(14)) + 1
	amode := Flags(r.TryReadBits(6))
	sfreq := r.TryReadBits(4)
	rate := r.TryReadBits(5)
	r.TryReadBits(10) // downmix, dynrange, timestamp, aux, HDCD, ext
	lff := r.TryReadBits(2)

	if r.TryError != nil {
		return SyncInfo{}, false
	}
	if info.FrameLength < minFrameLength || size < minFrameSize {
		return SyncInfo{}, false
	}
	if mode == Mode14BE || mode == Mode14LE {
		size = size * 8 / 14 * 2
	}
	info.FrameSize = size

	info.SampleRate = sampleRates[sfreq]
	info.BitRate = bitRates[rate]
	if info.SampleRate == 0 {
		return SyncInfo{}, false
	}

	info.Flags = amode
	if lff != 0 {
		info.Flags |= FlagLFE
	}

	return info, true
}

// normalize rewrites a header in any packing as a plain big-endian 16-bit
// bitstream.
func normalize(b []byte, mode BitstreamMode) []byte {
	switch mode {
	case Mode16BE:
		return b
	case Mode16LE:
		out := make([]byte, len(b))
		for i := 0; i+1 < len(b); i += 2 {
			out[i], out[i+1] = b[i+1], b[i]
		}
		return out
	}

	// 14-bit modes keep the low 14 bits of every 16-bit word.
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i := 0; i+1 < len(b); i += 2 {
		word := uint16(b[i])<<8 | uint16(b[i+1])
		if mode == Mode14LE {
			word = uint16(b[i+1])<<8 | uint16(b[i])
		}
		w.TryWriteBits(uint64(word&0x3fff), 14)
	}
	w.Close()
	return buf.Bytes()
}
