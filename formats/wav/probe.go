// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

const (
	formatPCM     = 0x0001
	fmtRecordSize = 16
	cbSizeLen     = 2
)

var waveID = [4]byte{'W', 'A', 'V', 'E'}

// Info is the PCM description declared by a WAV header together with the
// location of the payload that follows it.
type Info struct {
	FormatTag      uint16
	Channels       int
	SampleRate     int
	AvgBytesPerSec int
	BlockAlign     int
	BitsPerSample  int
	// ExtraSize is the cbSize field, zero when the fmt chunk does not carry it.
	ExtraSize int

	DataSize     int64
	TotalSamples int64
	// DataOffset is the byte offset right after the data chunk header.
	DataOffset int64
}

// Duration of the declared PCM in seconds.
func (i Info) Duration() float64 {
	if i.SampleRate == 0 {
		return 0
	}
	return float64(i.TotalSamples) / float64(i.SampleRate)
}

// Probe checks that rs starts with RIFF/WAVE followed directly by a 16-bit
// PCM "fmt " chunk and a "data" chunk. On success rs is left at
// Info.DataOffset. Any other layout, including a short read, is reported as
// an error; callers that only sniff for a container treat every error the
// same way.
func Probe(rs io.ReadSeeker) (Info, error) {
	var info Info

	p := riff.New(rs)

	id, _, err := p.IDnSize()
	if err != nil {
		return info, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if id != riff.RiffID {
		return info, fmt.Errorf("%s - %w", id, ErrNotWavFile)
	}

	var form [4]byte
	if _, err := io.ReadFull(rs, form[:]); err != nil {
		return info, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if form != waveID {
		return info, fmt.Errorf("%s - %w", form, ErrNotWavFile)
	}

	id, size, err := p.IDnSize()
	if err != nil {
		return info, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}
	if id != riff.FmtID || size < fmtRecordSize {
		return info, ErrUnsupportedWavLayout
	}

	rec := make([]byte, fmtRecordSize)
	if _, err := io.ReadFull(rs, rec); err != nil {
		return info, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	info.FormatTag = Uint16LE(rec[0:2])
	info.Channels = int(Uint16LE(rec[2:4]))
	info.SampleRate = int(Uint32LE(rec[4:8]))
	info.AvgBytesPerSec = int(Uint32LE(rec[8:12]))
	info.BlockAlign = int(Uint16LE(rec[12:14]))
	info.BitsPerSample = int(Uint16LE(rec[14:16]))

	if info.FormatTag != formatPCM || info.BitsPerSample != 16 {
		return info, ErrOnlyPCM16bitSupported
	}
	if info.Channels == 0 {
		return info, ErrUnsupportedWavLayout
	}

	rest := int64(size) - fmtRecordSize
	if rest >= cbSizeLen {
		var cb [cbSizeLen]byte
		if _, err := io.ReadFull(rs, cb[:]); err != nil {
			return info, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
		}
		info.ExtraSize = int(Uint16LE(cb[:]))
		rest -= cbSizeLen
	}
	if rest > 0 {
		if _, err := rs.Seek(rest, io.SeekCurrent); err != nil {
			return info, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
		}
	}

	id, size, err = p.IDnSize()
	if err != nil {
		return info, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}
	if id != riff.DataFormatID {
		return info, fmt.Errorf("%s - %w", id, ErrUnsupportedWavChunks)
	}

	offset, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return info, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}

	info.DataSize = int64(size)
	info.TotalSamples = info.DataSize / int64(info.BitsPerSample/8*info.Channels)
	info.DataOffset = offset

	return info, nil
}
