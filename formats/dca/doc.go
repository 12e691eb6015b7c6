// SPDX-License-Identifier: EPL-2.0

// Package dca decodes DTS Coherent Acoustics bitstreams into 16-bit PCM.
//
// The stream may be raw or carried in a WAV file whose fmt chunk declares
// 16-bit PCM, the usual layout of DTS audio CDs ripped to disk. Decoding
// of a frame's audio data is delegated to a Core; this package does
// everything around it: container probing, frame synchronization over an
// unaligned byte stream, sample conversion with saturation, channel
// reordering, and seeking.
//
// # Opening a Stream
//
//	f, _ := os.Open("movie.dts")
//	s, err := dca.Open(f, dca.NewLibdcaCore)
//	if err != nil {
//	    // ErrNoSync, ErrInvalidChannels, ErrCoreInit, ...
//	}
//	defer s.Close()
//
//	fmt.Println(s.Format().Channels, s.Format().SampleRate, s.Duration())
//
// Session implements io.Reader. Every read returns whole sample frames of
// interleaved little-endian int16 in WAV channel order (FL FR FC LFE ...),
// so a Session can be copied straight into an audio device or a WAV
// encoder. A short read is not an error; (0, io.EOF) marks the end.
//
// # Cores
//
// The libdca binding is compiled with the libdca build tag and cgo:
//
//	go build -tags libdca ./...
//
// It registers itself as DefaultCore. Other implementations can be added
// with RegisterCore and selected by name with LookupCore.
//
// # Synchronization
//
// The Synchronizer hunts for a header by sliding a HeaderSize window one
// byte at a time. Once a header is found, it buffers the whole frame and
// hands it to the core. A frame the core rejects is dropped and the hunt
// starts again right after it. Stats reports shifted bytes and decoded
// and dropped frames. After a run of rejected frames longer than the
// retry budget, the Session stops reading.
//
// # Seeking
//
// Seek computes the target frame from the first frame's size and length,
// positions the source there, and discards the leading samples of that
// frame on the next read. For constant bit rate streams this lands on the
// exact sample. The duration of a raw stream is estimated the same way.
//
// Sessions are not safe for concurrent use.
package dca
