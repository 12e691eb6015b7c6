// SPDX-License-Identifier: EPL-2.0

package dca_test

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/dcadec/formats/dca"
	"github.com/ik5/dcadec/formats/dca/dcatest"
	"github.com/ik5/dcadec/internal/audiotest"
)

// Example_open demonstrates opening a WAV-wrapped DTS stream.
func Example_open() {
	// Four frames in a WAV file, as found on DTS audio CDs
	data := audiotest.WrapWAV(audiotest.StereoCD.Stream(4), 2, 44100)

	s, err := dca.Open(bytes.NewReader(data), dcatest.New)
	if err != nil {
		fmt.Printf("Open error: %v\n", err)
		return
	}
	defer s.Close()

	f := s.Format()
	fmt.Printf("Layout: %v\n", s.Layout())
	fmt.Printf("Channels: %d\n", f.Channels)
	fmt.Printf("Sample rate: %d Hz\n", f.SampleRate)
	fmt.Printf("Bit rate: %d bps\n", f.BitRate)
	fmt.Printf("Samples: %d\n", s.TotalSamples())
	// Output:
	// Layout: stereo
	// Channels: 2
	// Sample rate: 44100 Hz
	// Bit rate: 1411200 bps
	// Samples: 2048
}

// Example_read demonstrates reading PCM in fixed-size chunks.
func Example_read() {
	s, _ := dca.Open(bytes.NewReader(audiotest.Stereo48k.Stream(3)), dcatest.New)
	defer s.Close()

	buf := make([]byte, 4096) // 1024 stereo sample frames
	total := 0
	reads := 0

	for {
		n, err := s.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("Read error: %v\n", err)
			return
		}
		total += n
		reads++
	}

	fmt.Printf("Read %d bytes in %d reads\n", total, reads)
	fmt.Printf("Sample frames: %d\n", total/s.Format().FrameSize())
	// Output:
	// Read 6144 bytes in 2 reads
	// Sample frames: 1536
}

// Example_seek demonstrates seeking to a time position.
func Example_seek() {
	s, _ := dca.Open(bytes.NewReader(audiotest.Stereo48k.Stream(10)), dcatest.New)
	defer s.Close()

	fmt.Printf("Duration: %.4fs\n", s.Duration())

	if err := s.Seek(0.0625); err != nil {
		fmt.Printf("Seek error: %v\n", err)
		return
	}
	fmt.Printf("Position: %.4fs\n", s.Position())

	rest, _ := io.ReadAll(s)
	fmt.Printf("Remaining sample frames: %d\n", len(rest)/4)
	// Output:
	// Duration: 0.1067s
	// Position: 0.0625s
	// Remaining sample frames: 2120
}

// Example_probe shows inspecting a stream without a core.
func Example_probe() {
	h := audiotest.Stereo48k
	h.AMode = audiotest.AMode3F2R
	h.LFE = true

	si, err := dca.Probe(bytes.NewReader(h.Stream(2)), 0)
	if err != nil {
		fmt.Printf("Probe error: %v\n", err)
		return
	}

	fmt.Printf("Mode: %v\n", si.Header.Mode)
	fmt.Printf("Layout: %v (%d channels)\n", si.Layout, si.Channels)
	fmt.Printf("Frame: %d bytes, %d samples\n", si.Header.FrameSize, si.Header.FrameLength)
	// Output:
	// Mode: 16-bit big-endian
	// Layout: 3F2R+LFE (6 channels)
	// Frame: 1024 bytes, 512 samples
}
