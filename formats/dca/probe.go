// SPDX-License-Identifier: EPL-2.0

package dca

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/dcadec/formats/wav"
)

// StreamInfo describes a DTS stream without decoding it.
type StreamInfo struct {
	Container wav.Info
	Wrapped   bool

	// Header of the first frame and its absolute byte offset.
	Header SyncInfo
	Offset int64

	Layout   Layout
	Channels int

	// Length of the source in bytes, -1 when unknown.
	Length int64
	// Duration in seconds, from the WAV header or estimated like Session.
	Duration float64
}

// Probe inspects rs with the built-in header parser. It reads at most
// limit bytes past the container header; zero means DefaultProbeLimit.
func Probe(rs io.ReadSeeker, limit int) (StreamInfo, error) {
	var si StreamInfo

	if limit <= 0 {
		limit = DefaultProbeLimit
	}

	var base int64
	info, err := wav.Probe(rs)
	if err != nil {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return si, fmt.Errorf("rewinding source: %w", err)
		}
	} else {
		si.Container = info
		si.Wrapped = true
		si.Duration = info.Duration()
		base = info.DataOffset
	}

	buf := make([]byte, limit)
	n, err := io.ReadFull(rs, buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return si, fmt.Errorf("%w: %w", ErrEmptySource, err)
		}
		return si, ErrEmptySource
	}
	buf = buf[:n]

	found := false
	for off := 0; off+HeaderSize <= len(buf); off++ {
		if h, ok := ParseHeader(buf[off:]); ok {
			si.Header = h
			si.Offset = base + int64(off)
			found = true
			break
		}
	}
	if !found {
		return si, fmt.Errorf("%w within %d bytes", ErrNoSync, n)
	}

	si.Layout = LayoutOf(si.Header.Flags)
	si.Channels = si.Layout.Channels()
	si.Length = sourceLength(rs)

	if si.Duration <= 0 && si.Length >= 0 {
		total := si.Length / int64(si.Header.FrameSize) * int64(si.Header.FrameLength)
		si.Duration = float64(total) / float64(si.Header.SampleRate)
	}

	if si.Channels == 0 {
		return si, fmt.Errorf("%w: arrangement %d", ErrInvalidChannels, int(si.Header.Flags.Config()))
	}

	return si, nil
}
