// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ik5/dcadec"
	"github.com/ik5/dcadec/audio"
	"github.com/ik5/dcadec/formats/dca"
	"github.com/ik5/dcadec/formats/wav"
)

var errInvalidArgument = errors.New("invalid argument")

func (c *CLI) newDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <input> <output.wav|->",
		Short: "Decode a DTS stream into a 16-bit PCM WAV file",
		Long: `Decode a DTS stream into a 16-bit PCM WAV file.

An output of "-" writes the WAV to stdout. The whole selection is then
held in memory, since the header sizes must be known before writing.`,
		Args:  cobra.ExactArgs(2),
		RunE:  c.runDecode,
	}

	cmd.Flags().Float64("start", 0, "Start position in seconds")
	cmd.Flags().Float64("duration", 0, "Seconds to decode, 0 decodes to the end")
	cmd.Flags().Int("channels", 0, "Downmix to 1 or 2 channels, 0 keeps the stream layout")

	return cmd
}

func (c *CLI) runDecode(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetFloat64("start")
	duration, _ := cmd.Flags().GetFloat64("duration")
	channels, _ := cmd.Flags().GetInt("channels")

	if start < 0 {
		return fmt.Errorf("%w: --start must be >= 0, got %g", errInvalidArgument, start)
	}
	if duration < 0 {
		return fmt.Errorf("%w: --duration must be >= 0, got %g", errInvalidArgument, duration)
	}
	if channels < 0 || channels > 2 {
		return fmt.Errorf("%w: --channels must be 0, 1 or 2, got %d", errInvalidArgument, channels)
	}

	s, err := c.openSession(args[0])
	if err != nil {
		return err
	}

	stream, err := downmix(s, channels)
	if err != nil {
		s.Close()
		return err
	}
	defer stream.Close()

	if start > 0 {
		if err := s.Seek(start); err != nil {
			return fmt.Errorf("seeking to %gs: %w", start, err)
		}
	}

	var limit int64
	if duration > 0 {
		limit = max(int64(duration*float64(s.Format().SampleRate)), 1)
	}

	var frames int64
	if args[1] == "-" {
		frames, err = writeStream(cmd.OutOrStdout(), stream, limit)
	} else {
		frames, err = c.transcodeFile(args[1], stream, limit)
	}
	if err != nil {
		return err
	}

	if st := s.Stats(); st.FramesDropped > 0 {
		c.logger.Warn("undecodable frames were skipped",
			"file", args[0],
			"dropped", st.FramesDropped,
			"decoded", st.FramesDecoded)
	}

	// stdout carries the WAV itself
	report := cmd.OutOrStdout()
	if args[1] == "-" {
		report = cmd.ErrOrStderr()
	}
	f := stream.Format()
	fmt.Fprintf(report, "%s: %d sample frames, %d channels, %d Hz -> %s\n",
		args[0], frames, f.Channels, f.SampleRate, args[1])
	return nil
}

func (c *CLI) transcodeFile(path string, stream audio.Stream, limit int64) (int64, error) {
	out, err := c.fs.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating output: %w", err)
	}

	frames, err := dcadec.Transcode(out, stream, limit)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("closing output: %w", cerr)
	}
	return frames, err
}

// writeStream decodes stream into memory and writes it as one WAV to w,
// which need not be seekable.
func writeStream(w io.Writer, stream audio.Stream, limit int64) (int64, error) {
	buf, err := dcadec.CollectN(stream, dcadec.DefaultBufferSize, limit)
	if err != nil {
		return 0, err
	}

	ch := stream.Format().Channels

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	if err := wav.WriteWAV16(w, stream.Format().SampleRate, ch, samples); err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}
	return int64(len(samples) / ch), nil
}

// downmix wraps s in a mixer producing channels outputs. Zero keeps the
// session untouched.
func downmix(s *dca.Session, channels int) (audio.Stream, error) {
	switch {
	case channels == 0 || channels == s.Format().Channels:
		return s, nil
	case channels == 1:
		return audio.NewMixer(s, audio.MonoMatrix(s.Format().Channels))
	default:
		return audio.NewMixer(s, s.Layout().StereoMatrix())
	}
}
