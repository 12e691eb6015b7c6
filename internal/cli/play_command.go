// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newPlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Play a DTS stream on the default audio device",
		Long: `Decode and play a DTS stream. Streams with more than two channels are
downmixed to stereo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetFloat64("start")
			if start < 0 {
				return fmt.Errorf("%w: --start must be >= 0, got %g", errInvalidArgument, start)
			}

			s, err := c.openSession(args[0])
			if err != nil {
				return err
			}

			channels := 0
			if s.Format().Channels > 2 {
				channels = 2
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

			c.logger.Info("playing",
				"file", args[0],
				"layout", s.Layout().String(),
				"sample_rate", s.Format().SampleRate,
				"duration", s.Duration())

			return c.play(cmd.Context(), stream)
		},
	}

	cmd.Flags().Float64("start", 0, "Start position in seconds")
	return cmd
}
