// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// mockStream is a test helper producing silence in the given format.
type mockStream struct {
	format    Format
	total     int // total sample frames
	delivered int
	closed    bool
}

func newSilentStream(format Format, totalFrames int) *mockStream {
	return &mockStream{format: format, total: totalFrames}
}

func (m *mockStream) Format() Format     { return m.format }
func (m *mockStream) Seek(float64) error { return nil }
func (m *mockStream) Close() error       { m.closed = true; return nil }

func (m *mockStream) Duration() float64 {
	return float64(m.total) / float64(m.format.SampleRate)
}

func (m *mockStream) Read(p []byte) (int, error) {
	width := m.format.FrameSize()
	if len(p) < width {
		return 0, ErrInvalidDstSize
	}
	if m.delivered >= m.total {
		return 0, io.EOF
	}

	n := min(len(p)/width, m.total-m.delivered)
	clear(p[:n*width])
	m.delivered += n
	return n * width, nil
}

// funcStream produces 16-bit PCM where every sample is value(frame, ch).
type funcStream struct {
	mockStream
	value func(frame, ch int) int16
}

func newFuncStream(format Format, totalFrames int, value func(frame, ch int) int16) *funcStream {
	return &funcStream{
		mockStream: mockStream{format: format, total: totalFrames},
		value:      value,
	}
}

func (m *funcStream) Read(p []byte) (int, error) {
	width := m.format.FrameSize()
	if len(p) < width {
		return 0, ErrInvalidDstSize
	}
	if m.delivered >= m.total {
		return 0, io.EOF
	}

	n := min(len(p)/width, m.total-m.delivered)
	for f := range n {
		for ch := range m.format.Channels {
			v := uint16(m.value(m.delivered+f, ch))
			p[f*width+ch*2] = byte(v)
			p[f*width+ch*2+1] = byte(v >> 8)
		}
	}
	m.delivered += n
	return n * width, nil
}
