// SPDX-License-Identifier: EPL-2.0

// Package dcatest provides a deterministic dca.Core for tests.
package dcatest

import (
	"encoding/binary"
	"math"

	"github.com/ik5/dcadec/formats/dca"
	"github.com/ik5/dcadec/internal/audiotest"
)

// MockCore decodes frames built by audiotest.Header. Every sample it
// produces is audiotest.SampleValue of its absolute position, scaled by
// the level when FlagAdjustLevel is requested. Frames carrying
// audiotest.CorruptMarker fail in Frame.
type MockCore struct {
	Format dca.SampleFormat

	// FailBlock, when positive, makes that block (1-based) of every frame fail.
	FailBlock int

	Frames      int
	DynrngCalls int
	LastFlags   dca.Flags
	LastLevel   float32
	LastBias    float32
	CloseCalls  int

	frameLength int
	index       int64
	channels    int
	blocks      int
	block       int
	level       float32
	bias        float32
	samples     []int32
}

// Factory returns a dca.CoreFactory handing out core.
func Factory(core *MockCore) dca.CoreFactory {
	return func() (dca.Core, error) { return core, nil }
}

// New is a dca.CoreFactory creating a fresh float MockCore.
func New() (dca.Core, error) { return &MockCore{}, nil }

func (m *MockCore) Sync(header []byte) (dca.SyncInfo, bool) {
	return dca.ParseHeader(header)
}

func (m *MockCore) Frame(frame []byte, flags dca.Flags, level, bias float32) (dca.Flags, error) {
	m.Frames++
	m.LastFlags, m.LastLevel, m.LastBias = flags, level, bias

	info, ok := dca.ParseHeader(frame)
	if !ok || len(frame) <= audiotest.MarkerOffset || frame[audiotest.MarkerOffset] == audiotest.CorruptMarker {
		return flags, dca.ErrFrameDecode
	}

	m.frameLength = info.FrameLength
	m.index = int64(binary.BigEndian.Uint32(frame[audiotest.IndexOffset:]))
	m.channels = dca.LayoutOf(flags).Channels()
	m.blocks = info.FrameLength / dca.BlockSize
	m.block = 0
	m.bias = bias
	m.level = 1
	if flags&dca.FlagAdjustLevel != 0 {
		m.level = level
	}

	return flags &^ dca.FlagAdjustLevel, nil
}

func (m *MockCore) Blocks() int { return m.blocks }

func (m *MockCore) Block() error {
	if m.block >= m.blocks {
		return dca.ErrFrameDecode
	}
	m.block++
	if m.FailBlock > 0 && m.block == m.FailBlock {
		return dca.ErrFrameDecode
	}

	if n := m.channels * dca.BlockSize; cap(m.samples) < n {
		m.samples = make([]int32, n)
	} else {
		m.samples = m.samples[:n]
	}

	first := m.index*int64(m.frameLength) + int64(m.block-1)*dca.BlockSize
	for c := range m.channels {
		for i := range dca.BlockSize {
			v := float32(audiotest.SampleValue(first+int64(i), c)) * m.level
			m.samples[c*dca.BlockSize+i] = m.encode(v)
		}
	}
	return nil
}

func (m *MockCore) encode(v float32) int32 {
	if m.Format == dca.SampleFixed {
		return int32(v) << 15
	}
	return int32(math.Float32bits(m.bias + v/32768))
}

func (m *MockCore) Samples() []int32 { return m.samples }

func (m *MockCore) SampleFormat() dca.SampleFormat { return m.Format }

func (m *MockCore) DisableDynamicRange() { m.DynrngCalls++ }

func (m *MockCore) Close() error {
	m.CloseCalls++
	return nil
}

var _ dca.Core = (*MockCore)(nil)
