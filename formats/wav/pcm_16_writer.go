// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
)

// WriteWAV16 writes an interleaved 16-bit PCM WAV with the given channel count.
// len(samples) should be a multiple of channels.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 {
		return ErrUnsupportedWavLayout
	}

	dataSize := uint32(len(samples) * 2)

	if _, err := w.Write(Header16(sampleRate, channels, dataSize)); err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	// Write in chunks to keep the scratch buffer small
	const chunkSize = 8192
	buf := make([]byte, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		end := min(i+chunkSize, len(samples))
		chunk := samples[i:end]
		buf = buf[:len(chunk)*2]

		for j, s := range chunk {
			PutInt16LE(buf[j*2:j*2+2], s)
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Header16 returns the canonical 44-byte header of a 16-bit PCM WAV
// carrying dataSize bytes of payload.
func Header16(sampleRate, channels int, dataSize uint32) []byte {
	numChannels := uint16(channels)
	byteRate := uint32(sampleRate) * uint32(numChannels) * 2
	blockAlign := numChannels * 2

	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	PutUint32LE(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	PutUint32LE(header[16:20], fmtRecordSize)
	PutUint16LE(header[20:22], formatPCM)
	PutUint16LE(header[22:24], numChannels)
	PutUint32LE(header[24:28], uint32(sampleRate))
	PutUint32LE(header[28:32], byteRate)
	PutUint16LE(header[32:34], blockAlign)
	PutUint16LE(header[34:36], 16)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	PutUint32LE(header[40:44], dataSize)

	return header
}
