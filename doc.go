// SPDX-License-Identifier: EPL-2.0

// Package dcadec decodes DTS Coherent Acoustics (DCA) audio into 16-bit
// PCM for Go applications.
//
// DTS streams are found raw (.dts, .dca, .cpt) or wrapped in WAV files,
// as on DTS audio CDs where the WAV header claims 16-bit stereo PCM but
// the payload is a DTS bitstream. Both are handled the same way: the
// stream is probed for a WAV wrapper, the first frame header is located
// and every frame is handed to a decoding core.
//
// # Quick Start
//
// The simplest way to decode a file is DecodeAll:
//
//	f, _ := os.Open("track.wav")
//	buf, err := dcadec.DecodeAll(f, nil)
//
//	// buf.Data holds interleaved samples in WAV channel order
//
// A nil core factory selects the libdca binding, available in builds with
// cgo and the libdca build tag:
//
//	go build -tags libdca ./...
//
// # Streaming
//
// For long inputs, open a session and read PCM as it is decoded:
//
//	s, err := dca.Open(f, dca.NewLibdcaCore, dca.WithoutDynamicRange())
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	buf := make([]byte, 4096)
//	for {
//	    n, err := s.Read(buf)
//	    if err == io.EOF {
//	        break
//	    }
//	    // buf[:n] is interleaved signed 16-bit little-endian PCM
//	}
//
// Sessions implement audio.Stream, so they can also be reached through an
// audio.Registry with dca.Decoder.
//
// # Writing WAV Files
//
// Transcode copies any audio.Stream into a 16-bit PCM WAV file:
//
//	out, _ := os.Create("track-pcm.wav")
//	frames, err := dcadec.Transcode(out, s, 0)
//
// # Packages
//
//   - formats/dca: synchronizer, sample conversion, channel layouts and
//     the decoder session
//   - formats/wav: WAV container probing and PCM WAV writing
//   - audio: the stream and decoder interfaces shared by the formats
//
// The cmd/dcadec command wraps all of this in a CLI with info, decode and
// play commands.
package dcadec
