// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"sync"
)

// Format describes the PCM produced by a Stream.
type Format struct {
	// Channels count (e.g., 1=mono, 2=stereo, 6=5.1).
	Channels int
	// SampleRate of the PCM stream in Hz.
	SampleRate int
	// BitsPerSample of the delivered PCM. Always 16 for the decoders in this module.
	BitsPerSample int
	// BitRate of the compressed input in bits per second. Informational.
	BitRate int
}

// FrameSize is the size in bytes of one interleaved sample frame.
func (f Format) FrameSize() int {
	return f.Channels * f.BitsPerSample / 8
}

type Stream interface {
	// Read fills p with interleaved little-endian PCM and returns the byte count.
	// A short read is not an error. When n == 0 with err == io.EOF, the stream is finished.
	io.Reader

	Format() Format

	// Seek repositions the stream to an approximate time in seconds.
	Seek(seconds float64) error

	// Duration in seconds, estimated when the container does not declare it.
	Duration() float64

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Stream from a seekable input.
type Decoder interface {
	Decode(rs io.ReadSeeker) (Stream, error)
}

// Registry for decoders by format key (e.g., "dts", "wav").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
