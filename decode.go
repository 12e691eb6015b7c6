// SPDX-License-Identifier: EPL-2.0

package dcadec

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/dcadec/audio"
	"github.com/ik5/dcadec/formats/dca"
	"github.com/ik5/dcadec/formats/wav"
)

// DefaultBufferSize is the read size, in bytes, used by DecodeAll and
// Transcode.
const DefaultBufferSize = 16384

// DecodeAll opens rs as a DTS stream, raw or WAV-wrapped, and decodes all
// of it into memory. Once the stream is open, rs is closed on return when
// it is an io.Closer. A nil newCore selects the core registered as
// dca.DefaultCore.
//
// Example:
//
//	f, _ := os.Open("track.wav")
//	buf, err := dcadec.DecodeAll(f, nil)
//	if err != nil {
//	    return err
//	}
//	// buf.Data holds interleaved samples, buf.Format the layout
func DecodeAll(rs io.ReadSeeker, newCore dca.CoreFactory, opts ...dca.Option) (*goaudio.IntBuffer, error) {
	if newCore == nil {
		f, ok := dca.LookupCore(dca.DefaultCore)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not registered", dca.ErrNoCore, dca.DefaultCore)
		}
		newCore = f
	}

	s, err := dca.Open(rs, newCore, opts...)
	if err != nil {
		return nil, err
	}

	buf, err := Collect(s, DefaultBufferSize)
	if cerr := s.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// maxPrealloc caps the samples Collect reserves up front. Durations come
// from container headers, which may be corrupt or carry a placeholder size.
const maxPrealloc = 1 << 20

// Collect reads stream to the end and returns its samples. bufferSize is
// the size of each read in bytes and is rounded down to whole sample
// frames.
func Collect(stream audio.Stream, bufferSize int) (*goaudio.IntBuffer, error) {
	return CollectN(stream, bufferSize, 0)
}

// CollectN is Collect stopping after limit sample frames. A limit of zero
// or less reads to the end.
func CollectN(stream audio.Stream, bufferSize int, limit int64) (*goaudio.IntBuffer, error) {
	f := stream.Format()
	width := f.FrameSize()
	if width <= 0 {
		return nil, audio.ErrInvalidDstSize
	}
	bufferSize = max(bufferSize/width*width, width)

	var src io.Reader = stream
	expected := stream.Duration() * float64(f.SampleRate)
	if limit > 0 {
		src = io.LimitReader(stream, limit*int64(width))
		expected = min(expected, float64(limit))
	}

	out := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
		SourceBitDepth: f.BitsPerSample,
		Data:           make([]int, 0, prealloc(expected, f.Channels)),
	}

	p := make([]byte, bufferSize)
	for {
		n, err := src.Read(p)
		for i := 0; i+1 < n; i += 2 {
			out.Data = append(out.Data, int(wav.Int16LE(p[i:])))
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("reading PCM: %w", err)
		}
	}
}

// prealloc converts an expected frame count into a bounded sample capacity.
func prealloc(frames float64, channels int) int {
	n := frames * float64(channels)
	if !(n > 0) {
		return 0
	}
	return int(min(n, maxPrealloc))
}

// Transcode writes stream as a 16-bit PCM WAV file to ws and returns the
// number of sample frames written. A positive limit caps the output at
// that many sample frames.
func Transcode(ws io.WriteSeeker, stream audio.Stream, limit int64) (int64, error) {
	f := stream.Format()
	width := f.FrameSize()
	if width <= 0 {
		return 0, audio.ErrInvalidDstSize
	}

	enc := wav.NewPCM16Encoder(ws, f.SampleRate, f.Channels)

	var src io.Reader = stream
	if limit > 0 {
		src = io.LimitReader(stream, limit*int64(width))
	}

	_, err := io.CopyBuffer(enc, src, make([]byte, DefaultBufferSize/width*width))
	if cerr := enc.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return enc.Frames(), fmt.Errorf("transcoding: %w", err)
	}
	return enc.Frames(), nil
}
