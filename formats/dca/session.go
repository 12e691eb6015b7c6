// SPDX-License-Identifier: EPL-2.0

package dca

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/ik5/dcadec/audio"
	"github.com/ik5/dcadec/formats/wav"
)

// Session decodes one DTS stream, raw or wrapped in WAV, into interleaved
// signed 16-bit little-endian PCM. It implements audio.Stream.
//
// A Session is not safe for concurrent use. Closing it between two reads
// is always safe.
type Session struct {
	src    io.ReadSeeker
	core   Core
	sync   *Synchronizer
	opts   options
	logger *slog.Logger

	container wav.Info
	wrapped   bool

	format audio.Format
	layout Layout
	remap  []int
	ident  bool

	frameLength int
	frameSize   int
	dataOffset  int64
	length      int64

	current int64
	start   int64
	end     int64
	skip    int64

	duration float64

	staging []byte
	pending []byte
	eof     bool
	err     error
	closed  bool
}

// Open probes src for a WAV wrapper, creates a core and synchronizes on
// the first frame header. The returned Session owns src and closes it on
// Close when src is an io.Closer. If Open fails, src is left to the caller
// and any core already created is closed.
func Open(src io.ReadSeeker, newCore CoreFactory, opts ...Option) (*Session, error) {
	if newCore == nil {
		return nil, ErrNoCore
	}

	o := newOptions(opts)
	s := &Session{
		src:    src,
		opts:   o,
		logger: o.logger.With("session", uuid.NewString()),
		end:    -1,
	}

	total := int64(-1)
	info, err := wav.Probe(src)
	if err != nil {
		s.logger.Debug("no WAV wrapper, reading raw bitstream", "reason", err)
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewinding source: %w", err)
		}
	} else {
		s.container = info
		s.wrapped = true
		s.dataOffset = info.DataOffset
		s.duration = info.Duration()
		total = info.TotalSamples
	}

	core, err := newCore()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCoreInit, err)
	}
	if core == nil {
		return nil, ErrCoreInit
	}
	s.core = core

	if err := s.prime(total); err != nil {
		core.Close()
		return nil, err
	}

	s.logger.Info("opened DTS stream",
		"wrapped", s.wrapped,
		"layout", s.layout.String(),
		"channels", s.format.Channels,
		"sample_rate", s.format.SampleRate,
		"bit_rate", s.format.BitRate,
		"frame_size", s.frameSize,
		"frame_length", s.frameLength,
		"duration", s.duration,
	)

	return s, nil
}

// prime reads the first chunk of the stream and derives the geometry and
// layout from the first header found in it.
func (s *Session) prime(total int64) error {
	primed := make([]byte, s.opts.probeLimit)
	n, err := io.ReadFull(s.src, primed)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %w", ErrEmptySource, err)
		}
		return ErrEmptySource
	}

	o := s.opts
	o.logger = s.logger
	s.sync = newSynchronizer(s.core, o)

	info, off, ok := s.sync.Probe(primed[:n])
	if !ok {
		return fmt.Errorf("%w within %d bytes", ErrNoSync, n)
	}

	layout := LayoutOf(info.Flags)
	layout.DynamicRangeDisabled = s.opts.dynrngDisabled
	channels := layout.Channels()
	if channels == 0 {
		return fmt.Errorf("%w: arrangement %d", ErrInvalidChannels, int(info.Flags.Config()))
	}

	s.layout = layout
	s.remap = layout.Remap()
	s.ident = true
	for i, c := range s.remap {
		if i != c {
			s.ident = false
		}
	}
	s.sync.Configure(channels)

	s.frameLength = info.FrameLength
	s.frameSize = info.FrameSize
	s.format = audio.Format{
		Channels:      channels,
		SampleRate:    info.SampleRate,
		BitsPerSample: 16,
		BitRate:       info.BitRate,
	}

	s.length = sourceLength(s.src)
	if s.duration <= 0 && s.length >= 0 {
		total = s.length / int64(s.frameSize) * int64(s.frameLength)
		s.duration = float64(total) / float64(info.SampleRate)
	}
	if total > 0 {
		s.end = total - 1
	}

	if off > 0 {
		s.logger.Debug("first header after leading bytes", "offset", off)
	}

	s.pending = primed[:n]
	s.staging = make([]byte, s.opts.probeLimit)

	return nil
}

// sourceLength returns the byte length of src, or -1 when it cannot be
// determined. The read position is preserved.
func sourceLength(src io.ReadSeeker) int64 {
	switch v := src.(type) {
	case interface{ Size() int64 }:
		return v.Size()
	case interface{ Stat() (fs.FileInfo, error) }:
		if st, err := v.Stat(); err == nil && st.Mode().IsRegular() {
			return st.Size()
		}
	}

	cur, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	end, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return -1
	}
	if _, err := src.Seek(cur, io.SeekStart); err != nil {
		return -1
	}
	return end
}

// Read fills p with whole sample frames of PCM. It returns fewer bytes than
// requested when the stream runs out, and (0, io.EOF) once nothing is left.
// p must hold at least one sample frame; output does not depend on read
// sizes for any buffer of that size or more.
func (s *Session) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.sync == nil {
		return 0, ErrNotSynchronized
	}

	width := s.format.FrameSize()
	if len(p) < width {
		return 0, audio.ErrInvalidDstSize
	}

	want := int64(len(p) / width)
	if s.end >= 0 {
		want = min(want, s.end-s.current+1)
		if want <= 0 {
			return 0, io.EOF
		}
	}

	var got int64
	for got < want {
		avail := int64(s.sync.Available())

		if s.skip > 0 && avail > 0 {
			k := min(avail, s.skip)
			s.sync.Discard(int(k))
			s.skip -= k
			continue
		}

		if avail > 0 {
			n := min(want-got, avail)
			s.copyOut(p[got*int64(width):], n)
			s.sync.Discard(int(n))
			got += n
			continue
		}

		if !s.refill() {
			break
		}
	}

	s.current += got

	if got == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}
	return int(got) * width, nil
}

// copyOut writes n sample frames in output channel order.
func (s *Session) copyOut(dst []byte, n int64) {
	ch := s.format.Channels
	out := s.sync.Output()[:int(n)*ch]

	if s.ident {
		for i, v := range out {
			wav.PutInt16LE(dst[i*2:], v)
		}
		return
	}

	for f := 0; f < len(out); f += ch {
		frame := out[f : f+ch]
		for i, c := range s.remap {
			wav.PutInt16LE(dst[(f+i)*2:], frame[c])
		}
	}
}

// refill feeds the synchronizer with the next chunk of input. It reports
// false once the source is exhausted or the retry budget is spent.
func (s *Session) refill() bool {
	if s.pending != nil {
		s.sync.Feed(s.pending)
		s.pending = nil
		return true
	}
	if s.eof {
		return false
	}
	if b := s.opts.retryBudget; b > 0 && s.sync.Failures() >= b {
		s.logger.Warn("too many undecodable frames, stopping",
			"consecutive", s.sync.Failures(),
			"position", s.current,
		)
		s.eof = true
		return false
	}

	n, err := s.src.Read(s.staging)
	if n > 0 {
		s.sync.Feed(s.staging[:n])
	}
	switch {
	case err != nil && !errors.Is(err, io.EOF):
		s.err = fmt.Errorf("reading source: %w", err)
		s.eof = true
	case err != nil || n == 0:
		s.eof = true
	}
	return n > 0
}

// Seek repositions the stream to the frame containing seconds and arranges
// for the samples before it within that frame to be skipped. Position
// changes immediately; decoding catches up on the next Read.
//
// Targets past a known end land at the end. Non-finite targets, and
// targets whose offset an unbounded source could never reach, fail with
// ErrSeekRange and leave the position unchanged.
func (s *Session) Seek(seconds float64) error {
	if s.closed {
		return ErrClosed
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("%w: %v", ErrSeekRange, seconds)
	}
	if seconds < 0 {
		return ErrNegativeSeek
	}
	if s.sync == nil || s.frameLength == 0 || s.frameSize == 0 {
		return ErrNotSynchronized
	}

	// clamp before converting, float to int64 overflow is undefined
	pos := seconds * float64(s.format.SampleRate)
	var sample int64
	switch {
	case s.end >= 0 && pos >= float64(s.end+1-s.start):
		sample = s.end + 1
	case pos >= float64(s.maxSample()-s.start):
		return fmt.Errorf("%w: %gs", ErrSeekRange, seconds)
	default:
		sample = int64(pos) + s.start
	}

	frame := sample / int64(s.frameLength)
	offset := int64(s.frameSize)*frame + s.dataOffset

	if _, err := s.src.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to frame %d: %w", frame, err)
	}

	s.sync.Reset()
	s.pending = nil
	s.eof = false
	s.err = nil
	s.skip = sample - frame*int64(s.frameLength)
	s.current = sample

	s.logger.Debug("seek",
		"seconds", seconds,
		"frame", frame,
		"offset", offset,
		"skip", s.skip,
	)

	return nil
}

// maxSample bounds seek targets well below the first sample whose frame
// offset or sample index would overflow an int64.
func (s *Session) maxSample() int64 {
	frames := (math.MaxInt64 - s.dataOffset) / int64(s.frameSize)
	frames = min(frames, math.MaxInt64/int64(s.frameLength))
	return frames / 2 * int64(s.frameLength)
}

// Close releases the core and the source. Only the first call does
// anything; later calls return ErrClosed.
func (s *Session) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	var errs []error
	if s.core != nil {
		if err := s.core.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing core: %w", err))
		}
		s.core = nil
	}
	if c, ok := s.src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing source: %w", err))
		}
	}
	s.src = nil

	return errors.Join(errs...)
}

func (s *Session) Format() audio.Format { return s.format }
func (s *Session) Layout() Layout       { return s.layout }

// Container returns the WAV fmt description and whether the stream was
// wrapped at all.
func (s *Session) Container() (wav.Info, bool) { return s.container, s.wrapped }

// Duration in seconds. It comes from the WAV header when present and is
// otherwise estimated from the source length and the first frame.
func (s *Session) Duration() float64 { return s.duration }

// Position is the current read position in seconds.
func (s *Session) Position() float64 {
	if s.format.SampleRate == 0 {
		return 0
	}
	return float64(s.current-s.start) / float64(s.format.SampleRate)
}

// Bitrate of the compressed stream as declared by the first header.
func (s *Session) Bitrate() int { return s.format.BitRate }

// FrameLength and FrameSize describe the first frame: samples per channel
// and bytes.
func (s *Session) FrameLength() int { return s.frameLength }
func (s *Session) FrameSize() int   { return s.frameSize }

// TotalSamples is the number of sample frames the stream is expected to
// hold, or -1 when unknown.
func (s *Session) TotalSamples() int64 {
	if s.end < 0 {
		return -1
	}
	return s.end + 1
}

func (s *Session) Stats() Stats {
	if s.sync == nil {
		return Stats{}
	}
	return s.sync.Stats()
}

var _ audio.Stream = (*Session)(nil)
