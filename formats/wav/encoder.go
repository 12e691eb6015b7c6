// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// PCM16Encoder streams interleaved little-endian 16-bit PCM bytes into a
// WAV file. The header sizes are patched on Close, which is why the
// destination must be seekable.
type PCM16Encoder struct {
	enc      *gowav.Encoder
	buf      *goaudio.IntBuffer
	channels int
	// bytes of an incomplete sample frame carried to the next Write
	pending []byte
	frames  int64
}

func NewPCM16Encoder(ws io.WriteSeeker, sampleRate, channels int) *PCM16Encoder {
	return &PCM16Encoder{
		enc:      gowav.NewEncoder(ws, sampleRate, 16, channels, formatPCM),
		channels: channels,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}
}

// Write implements io.Writer so a decoded stream can be copied straight in.
func (e *PCM16Encoder) Write(p []byte) (int, error) {
	width := e.channels * 2
	data := p
	if len(e.pending) > 0 {
		data = append(e.pending, p...)
	}

	whole := len(data) / width * width
	if whole > 0 {
		e.buf.Data = e.buf.Data[:0]
		for i := 0; i < whole; i += 2 {
			e.buf.Data = append(e.buf.Data, int(Int16LE(data[i:i+2])))
		}
		if err := e.enc.Write(e.buf); err != nil {
			return 0, fmt.Errorf("encoding PCM: %w", err)
		}
		e.frames += int64(whole / width)
	}

	e.pending = append(e.pending[:0], data[whole:]...)
	return len(p), nil
}

// Frames reports how many complete sample frames were written.
func (e *PCM16Encoder) Frames() int64 { return e.frames }

// Close finalizes the WAV header. A trailing partial frame is dropped.
func (e *PCM16Encoder) Close() error {
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("closing WAV encoder: %w", err)
	}
	return nil
}
