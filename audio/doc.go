// SPDX-License-Identifier: EPL-2.0

// Package audio provides the shared PCM stream abstractions.
//
// This package contains the building blocks every decoder in the module
// agrees on:
//   - Format describing the delivered PCM
//   - Stream interface for decoded, seekable audio
//   - Decoder interface for constructing streams
//   - Format registry for decoder registration
//   - Mixer for recombining channels, e.g. surround to stereo
//
// # Stream Interface
//
// The Stream interface is the foundation of decoding:
//
//	type Stream interface {
//	    io.Reader
//	    Format() Format
//	    Seek(seconds float64) error
//	    Duration() float64
//	    Close() error
//	}
//
// Read delivers interleaved signed 16-bit little-endian PCM, so a Stream
// can be handed directly to anything that consumes an io.Reader of PCM
// bytes (an audio device, a WAV encoder, a hash).
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("dts", dca.Decoder{New: factory})
//	decoder, _ := registry.Get("dts")
//
// This is useful for applications that pick a decoder from a file extension.
//
// # Mixing
//
// A Mixer is itself a Stream. Each output channel is a weighted sum of the
// input channels:
//
//	mono, _ := audio.NewMixer(stream, audio.MonoMatrix(stream.Format().Channels))
//
// # Sample Format
//
// Samples are signed 16-bit integers, little-endian, interleaved by
// channel. One sample frame is Format.FrameSize() bytes:
//   - mono: 2 bytes
//   - stereo: 4 bytes
//   - 5.1: 12 bytes
//
// # Error Handling
//
// Streams return io.EOF when no more data is available. A read that
// returns fewer bytes than requested is not an error:
//
//	for {
//	    n, err := stream.Read(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n bytes from buf
//	}
package audio
