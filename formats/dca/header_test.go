// SPDX-License-Identifier: EPL-2.0

package dca

import (
	"testing"

	"github.com/ik5/dcadec/internal/audiotest"
)

func TestParseHeader_Variants(t *testing.T) {
	t.Parallel()

	h := audiotest.Stereo48k
	be := h.Bytes()

	// two spare bytes so the 14-bit variants still hold HeaderSize bytes
	padded := append(h.Bytes(), 0, 0)

	tests := []struct {
		name     string
		data     []byte
		wantMode BitstreamMode
		wantSize int
	}{
		{"16-bit big-endian", be, Mode16BE, 1024},
		{"16-bit little-endian", audiotest.SwapWords(be), Mode16LE, 1024},
		{"14-bit big-endian", audiotest.Pack14(padded, false), Mode14BE, 1024 * 8 / 14 * 2},
		{"14-bit little-endian", audiotest.Pack14(padded, true), Mode14LE, 1024 * 8 / 14 * 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info, ok := ParseHeader(tt.data)
			if !ok {
				t.Fatalf("ParseHeader(% x) failed", tt.data[:HeaderSize])
			}
			if info.Mode != tt.wantMode {
				t.Errorf("Mode = %v, want %v", info.Mode, tt.wantMode)
			}
			if info.FrameSize != tt.wantSize {
				t.Errorf("FrameSize = %d, want %d", info.FrameSize, tt.wantSize)
			}
			if info.FrameLength != 512 {
				t.Errorf("FrameLength = %d, want 512", info.FrameLength)
			}
			if info.SampleRate != 48000 {
				t.Errorf("SampleRate = %d, want 48000", info.SampleRate)
			}
			if info.BitRate != 768000 {
				t.Errorf("BitRate = %d, want 768000", info.BitRate)
			}
			if info.Flags != Flags(ConfigStereo) {
				t.Errorf("Flags = %#x, want %#x", int(info.Flags), int(ConfigStereo))
			}
		})
	}
}

func TestParseHeader_Fields(t *testing.T) {
	t.Parallel()

	h := audiotest.Header{
		FrameLength: 256,
		FrameSize:   2013,
		AMode:       audiotest.AMode3F2R,
		RateCode:    audiotest.Rate44100,
		BitRateCode: audiotest.RateOpen,
		LFE:         true,
	}

	info, ok := ParseHeader(h.Bytes())
	if !ok {
		t.Fatal("ParseHeader() failed")
	}

	want := SyncInfo{
		FrameSize:   2013,
		FrameLength: 256,
		Flags:       Flags(Config3F2R) | FlagLFE,
		SampleRate:  44100,
		BitRate:     1,
		Mode:        Mode16BE,
	}
	if info != want {
		t.Errorf("ParseHeader() = %+v, want %+v", info, want)
	}
	if !info.Flags.LFE() || info.Flags.Config() != Config3F2R {
		t.Errorf("Flags = %#x, want 3F2R with LFE", int(info.Flags))
	}
}

func TestParseHeader_Rejections(t *testing.T) {
	t.Parallel()

	base := audiotest.Stereo48k

	with := func(f func(h *audiotest.Header)) []byte {
		h := base
		f(&h)
		return h.Bytes()
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", base.Bytes()[:HeaderSize-1]},
		{"no sync", make([]byte, HeaderSize)},
		{"shifted sync", append([]byte{0}, base.Bytes()...)},
		{"frame too short", with(func(h *audiotest.Header) { h.FrameLength = 160 })},
		{"frame size too small", with(func(h *audiotest.Header) { h.FrameSize = 95 })},
		{"invalid sample rate", with(func(h *audiotest.Header) { h.RateCode = 0 })},
		{"reserved sample rate", with(func(h *audiotest.Header) { h.RateCode = 4 })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if info, ok := ParseHeader(tt.data); ok {
				t.Errorf("ParseHeader() = %+v, want failure", info)
			}
		})
	}
}

func TestParseHeader_Boundaries(t *testing.T) {
	t.Parallel()

	h := audiotest.Stereo48k
	h.FrameLength = minFrameLength
	h.FrameSize = minFrameSize

	info, ok := ParseHeader(h.Bytes())
	if !ok {
		t.Fatal("ParseHeader() rejected minimal frame")
	}
	if info.FrameLength != 192 || info.FrameSize != 96 {
		t.Errorf("got length %d size %d, want 192/96", info.FrameLength, info.FrameSize)
	}
}

func TestParseHeader_UnknownArrangementAccepted(t *testing.T) {
	t.Parallel()

	h := audiotest.Stereo48k
	h.AMode = 12

	info, ok := ParseHeader(h.Bytes())
	if !ok {
		t.Fatal("ParseHeader() failed")
	}
	if info.Flags.Config().Valid() {
		t.Errorf("Config() = %v, want invalid", info.Flags.Config())
	}
}

func TestDetectMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   []byte
		want   BitstreamMode
		wantOK bool
	}{
		{"16BE", []byte{0x7f, 0xfe, 0x80, 0x01, 0, 0}, Mode16BE, true},
		{"16LE", []byte{0xfe, 0x7f, 0x01, 0x80, 0, 0}, Mode16LE, true},
		{"14BE", []byte{0x1f, 0xff, 0xe8, 0x00, 0x07, 0xf3}, Mode14BE, true},
		{"14LE", []byte{0xff, 0x1f, 0x00, 0xe8, 0xf3, 0x07}, Mode14LE, true},
		{"14BE bad nibble", []byte{0x1f, 0xff, 0xe8, 0x00, 0x07, 0x73}, 0, false},
		{"too short", []byte{0x7f, 0xfe, 0x80, 0x01}, 0, false},
		{"RIFF", []byte("RIFF\x00\x00"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := DetectMode(tt.data)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("DetectMode() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func BenchmarkParseHeader(b *testing.B) {
	data := audiotest.Pack14(append(audiotest.Stereo48k.Bytes(), 0, 0), false)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = ParseHeader(data)
	}
}
