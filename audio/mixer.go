// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/dcadec/utils"
)

// Mixer wraps a 16-bit Stream and recombines its channels with a gain
// matrix: output channel o is the sum over input channels i of
// matrix[o][i] times the input sample, saturated to 16 bits.
type Mixer struct {
	src    Stream
	matrix [][]float32
	format Format
	tmp    []byte
}

// NewMixer builds a mixer producing len(matrix) channels. Every row must
// hold one weight per source channel.
func NewMixer(src Stream, matrix [][]float32) (*Mixer, error) {
	f := src.Format()
	if f.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: %d bits per sample", ErrInvalidMatrix, f.BitsPerSample)
	}
	if len(matrix) == 0 {
		return nil, fmt.Errorf("%w: no output channels", ErrInvalidMatrix)
	}
	for o, row := range matrix {
		if len(row) != f.Channels {
			return nil, fmt.Errorf("%w: row %d has %d weights for %d channels",
				ErrInvalidMatrix, o, len(row), f.Channels)
		}
	}

	out := f
	out.Channels = len(matrix)

	return &Mixer{
		src:    src,
		matrix: matrix,
		format: out,
	}, nil
}

// MonoMatrix averages all channels into one.
func MonoMatrix(channels int) [][]float32 {
	row := make([]float32, channels)
	for i := range row {
		row[i] = 1 / float32(channels)
	}
	return [][]float32{row}
}

func (m *Mixer) Format() Format             { return m.format }
func (m *Mixer) Seek(seconds float64) error { return m.src.Seek(seconds) }
func (m *Mixer) Duration() float64          { return m.src.Duration() }

func (m *Mixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Read fills p with whole output sample frames. The source is expected to
// return whole sample frames too.
func (m *Mixer) Read(p []byte) (int, error) {
	outWidth := m.format.FrameSize()
	frames := len(p) / outWidth
	if frames == 0 {
		return 0, ErrInvalidDstSize
	}

	inChannels := m.src.Format().Channels
	inWidth := inChannels * 2
	need := frames * inWidth

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < need {
		m.tmp = make([]byte, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.Read(m.tmp)
	got := n / inWidth

	for f := range got {
		in := m.tmp[f*inWidth : (f+1)*inWidth]
		out := p[f*outWidth:]

		for o, row := range m.matrix {
			var acc float32
			for i, w := range row {
				acc += w * float32(int16(binary.LittleEndian.Uint16(in[i*2:])))
			}
			binary.LittleEndian.PutUint16(out[o*2:], uint16(utils.ClampInt16(int64(acc))))
		}
	}

	return got * outWidth, err
}

var _ Stream = (*Mixer)(nil)
