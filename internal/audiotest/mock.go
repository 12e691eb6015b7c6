// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"errors"
	"io"
)

// ErrInjected is returned by MockSource reads at or past FailAfter.
var ErrInjected = errors.New("audiotest: injected read error")

// MockSource is a test helper serving a byte slice as an io.ReadSeeker.
// Reads are capped at Chunk bytes, so callers see the short reads a pipe
// or network source would produce.
type MockSource struct {
	r *bytes.Reader

	// Chunk caps every Read; zero means no cap.
	Chunk int
	// FailAfter, when positive, makes reads fail from this offset on.
	FailAfter int64
	// HideSize hides the length: Seek to the end fails.
	HideSize bool

	closed int
}

// NewMockSource creates a new mock source over data.
func NewMockSource(data []byte, chunk int) *MockSource {
	return &MockSource{
		r:     bytes.NewReader(data),
		Chunk: chunk,
	}
}

func (m *MockSource) Read(p []byte) (int, error) {
	pos := m.r.Size() - int64(m.r.Len())
	if m.FailAfter > 0 && pos >= m.FailAfter {
		return 0, ErrInjected
	}
	if m.Chunk > 0 && len(p) > m.Chunk {
		p = p[:m.Chunk]
	}
	if m.FailAfter > 0 && int64(len(p)) > m.FailAfter-pos {
		p = p[:m.FailAfter-pos]
	}

	return m.r.Read(p)
}

func (m *MockSource) Seek(offset int64, whence int) (int64, error) {
	if m.HideSize && whence == io.SeekEnd {
		return 0, errors.New("audiotest: length unknown")
	}
	return m.r.Seek(offset, whence)
}

func (m *MockSource) Close() error {
	m.closed++
	return nil
}

// Closed reports how many times Close was called.
func (m *MockSource) Closed() int { return m.closed }
