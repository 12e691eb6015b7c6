// SPDX-License-Identifier: EPL-2.0

// Package wav probes and writes 16-bit PCM WAV containers.
//
// DTS audio is commonly distributed inside a WAV file whose fmt chunk
// claims 16-bit PCM while the data chunk actually carries a DTS bitstream.
// Probe reads exactly the header this layout uses and leaves the reader at
// the payload, so the DTS decoder can take over from there.
//
// # Probing
//
//	info, err := wav.Probe(file)
//	if err != nil {
//	    // not a WAV wrapper, treat file as a raw bitstream
//	}
//	fmt.Println(info.Channels, info.SampleRate, info.TotalSamples)
//
// Only the canonical layout is accepted: RIFF/WAVE, then a "fmt " chunk of
// at least 16 bytes declaring PCM with 16 bits per sample, then "data".
// An optional cbSize field and any extension bytes after it are skipped.
//
// # Writing WAV Files
//
// WriteWAV16 writes a complete file from interleaved samples held in
// memory:
//
//	err := wav.WriteWAV16(file, 48000, 2, samples)
//
// PCM16Encoder accepts PCM bytes incrementally through io.Writer and
// patches the header sizes on Close. It is built on github.com/go-audio/wav
// and needs an io.WriteSeeker:
//
//	enc := wav.NewPCM16Encoder(out, 48000, 6)
//	_, err := io.Copy(enc, stream)
//	err = enc.Close()
//
// # Byte Order
//
// All RIFF fields are little-endian. Uint16LE, Uint32LE, Int16LE and their
// Put counterparts are the package's only byte order primitives and are
// shared with the DTS decoder for its PCM output.
//
// # Error Handling
//
// The package defines several error values, matched with errors.Is:
//   - ErrNotWavFile: no RIFF/WAVE header
//   - ErrOnlyPCM16bitSupported: fmt declares something other than 16-bit PCM
//   - ErrUnsupportedWavLayout: fmt chunk missing, short or inconsistent
//   - ErrUnsupportedWavChunks: fmt is not followed directly by data
package wav
