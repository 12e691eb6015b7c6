// SPDX-License-Identifier: EPL-2.0

package dca

import (
	"fmt"
	"log/slog"
)

type syncState uint8

const (
	stateSeekingSync syncState = iota
	stateFillingFrame
)

func (s syncState) String() string {
	if s == stateFillingFrame {
		return "filling-frame"
	}
	return "seeking-sync"
}

// Stats counts what the synchronizer did with its input.
type Stats struct {
	// Shifts is the number of bytes discarded while hunting for a header.
	Shifts int64
	// FramesDecoded and FramesDropped count complete frames handed to the
	// core, split by outcome.
	FramesDecoded int64
	FramesDropped int64
}

// Synchronizer locates frames in an unaligned byte stream, decodes them
// with a Core and collects interleaved 16-bit output. It never blocks:
// Feed consumes whatever it is given and keeps a partial header or frame
// until the next call.
//
// The output is in core channel order; the Session applies the layout
// permutation when copying it out.
type Synchronizer struct {
	core   Core
	logger *slog.Logger

	state syncState
	buf   []byte
	fill  int
	need  int
	info  SyncInfo

	gain           float32
	adjustLevel    bool
	dynrngDisabled bool

	channels int
	format   SampleFormat
	flags    Flags

	out  []int16
	head int

	stats    Stats
	failures int
}

// NewSynchronizer returns a synchronizer in the seeking state. channels
// must be set with Configure before the first frame completes.
func NewSynchronizer(core Core, opts ...Option) *Synchronizer {
	return newSynchronizer(core, newOptions(opts))
}

func newSynchronizer(core Core, o options) *Synchronizer {
	return &Synchronizer{
		core:           core,
		logger:         o.logger,
		buf:            make([]byte, HeaderSize, HeaderSize+o.probeLimit),
		need:           HeaderSize,
		gain:           o.gain,
		adjustLevel:    o.adjustLevel,
		dynrngDisabled: o.dynrngDisabled,
		format:         core.SampleFormat(),
	}
}

// Configure fixes the number of channels pulled from every block.
func (s *Synchronizer) Configure(channels int) {
	s.channels = channels
}

// Probe looks for the first header in p without touching the stream state
// and without decoding anything.
func (s *Synchronizer) Probe(p []byte) (SyncInfo, int, bool) {
	for off := 0; off+HeaderSize <= len(p); off++ {
		if info, ok := s.core.Sync(p[off : off+HeaderSize]); ok && info.FrameSize >= HeaderSize {
			return info, off, true
		}
	}
	return SyncInfo{}, 0, false
}

// Feed consumes all of p and returns the number of sample frames it added
// to the output.
func (s *Synchronizer) Feed(p []byte) int {
	produced := 0

	for len(p) > 0 {
		n := copy(s.buf[s.fill:s.need], p)
		s.fill += n
		p = p[n:]
		if s.fill < s.need {
			break
		}

		switch s.state {
		case stateSeekingSync:
			info, ok := s.core.Sync(s.buf[:HeaderSize])
			if !ok || info.FrameSize < HeaderSize {
				copy(s.buf, s.buf[1:HeaderSize])
				s.fill = HeaderSize - 1
				s.stats.Shifts++
				continue
			}
			s.info = info
			s.need = info.FrameSize
			if cap(s.buf) < s.need {
				grown := make([]byte, s.need)
				copy(grown, s.buf[:s.fill])
				s.buf = grown
			}
			s.buf = s.buf[:s.need]
			s.state = stateFillingFrame

		case stateFillingFrame:
			n, err := s.decode(s.buf[:s.need])
			if err != nil {
				s.stats.FramesDropped++
				s.failures++
				s.logger.Debug("dropping frame",
					"size", s.need,
					"consecutive", s.failures,
					"err", err,
				)
			} else {
				s.stats.FramesDecoded++
				s.failures = 0
				produced += n
			}
			s.restart()
		}
	}

	return produced
}

// decode runs one complete frame through the core. On failure nothing the
// frame produced is kept.
func (s *Synchronizer) decode(frame []byte) (int, error) {
	if s.channels <= 0 {
		return 0, ErrInvalidChannels
	}

	flags := s.info.Flags
	if s.adjustLevel {
		flags |= FlagAdjustLevel
	}

	level := float32(1) * s.gain
	flags, err := s.core.Frame(frame, flags, level, Bias)
	if err != nil {
		return 0, fmt.Errorf("frame: %w", err)
	}
	s.flags = flags

	if s.dynrngDisabled {
		s.core.DisableDynamicRange()
	}

	s.compact()
	mark := len(s.out)

	blocks := s.core.Blocks()
	for b := range blocks {
		if err := s.core.Block(); err != nil {
			s.out = s.out[:mark]
			return 0, fmt.Errorf("block %d of %d: %w", b+1, blocks, err)
		}
		samples := s.core.Samples()
		if len(samples) < s.channels*BlockSize {
			s.out = s.out[:mark]
			return 0, fmt.Errorf("block %d: %d samples for %d channels: %w",
				b+1, len(samples), s.channels, ErrFrameDecode)
		}
		s.out = convertBlock(s.out, samples, s.channels, s.format)
	}

	return blocks * BlockSize, nil
}

// restart returns to the seeking state with an empty header buffer.
func (s *Synchronizer) restart() {
	s.state = stateSeekingSync
	s.buf = s.buf[:HeaderSize]
	s.fill = 0
	s.need = HeaderSize
}

// Output returns the decoded samples not yet consumed, interleaved in core
// channel order. The slice is only valid until the next Feed or Discard.
func (s *Synchronizer) Output() []int16 {
	return s.out[s.head:]
}

// Available reports the number of buffered sample frames.
func (s *Synchronizer) Available() int {
	if s.channels == 0 {
		return 0
	}
	return (len(s.out) - s.head) / s.channels
}

// Discard drops n sample frames from the front of the output.
func (s *Synchronizer) Discard(n int) {
	s.head = min(s.head+n*s.channels, len(s.out))
	if s.head == len(s.out) {
		s.out = s.out[:0]
		s.head = 0
	}
}

func (s *Synchronizer) compact() {
	if s.head == 0 {
		return
	}
	k := copy(s.out, s.out[s.head:])
	s.out = s.out[:k]
	s.head = 0
}

// Reset forgets any partial header, frame and buffered output. It is used
// after the source has been repositioned.
func (s *Synchronizer) Reset() {
	s.restart()
	s.out = s.out[:0]
	s.head = 0
	s.failures = 0
}

// Failures is the number of frames dropped since the last good one.
func (s *Synchronizer) Failures() int { return s.failures }

// Flags returns the arrangement reported by the core for the last frame.
func (s *Synchronizer) Flags() Flags { return s.flags }

func (s *Synchronizer) Stats() Stats { return s.stats }
