// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/ik5/dcadec/formats/dca"
)

func (c *CLI) newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Describe DTS streams without decoding them",
		Long: `Show the container, channel layout, sample rate and frame geometry of
each file. No decoding core is needed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, path := range args {
				if i > 0 {
					cmd.Println()
				}
				if err := c.info(cmd.OutOrStdout(), path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (c *CLI) info(w io.Writer, path string) error {
	f, err := c.fs.Open(path)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("%s: detecting content type: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	si, err := dca.Probe(f, c.cfg.ProbeLimit)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	c.logger.Debug("probed stream",
		"file", path,
		"mime", mtype.String(),
		"wrapped", si.Wrapped,
		"offset", si.Offset)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s\n", path)
	fmt.Fprintf(tw, "Type:\t%s\n", mtype.String())
	if si.Wrapped {
		fmt.Fprintf(tw, "Container:\tWAV, %d channels, %d Hz, %d-bit\n",
			si.Container.Channels, si.Container.SampleRate, si.Container.BitsPerSample)
	} else {
		fmt.Fprintf(tw, "Container:\tnone (raw bitstream)\n")
	}
	fmt.Fprintf(tw, "Bitstream:\t%s\n", si.Header.Mode)
	fmt.Fprintf(tw, "Layout:\t%s (%d channels: %s)\n", si.Layout, si.Channels, si.Layout.ChannelOrder())
	fmt.Fprintf(tw, "Sample rate:\t%d Hz\n", si.Header.SampleRate)
	fmt.Fprintf(tw, "Bit rate:\t%s\n", formatBitRate(si.Header.BitRate))
	fmt.Fprintf(tw, "Frame:\t%d bytes, %d samples\n", si.Header.FrameSize, si.Header.FrameLength)
	fmt.Fprintf(tw, "First frame:\tbyte %d\n", si.Offset)
	if si.Duration > 0 {
		fmt.Fprintf(tw, "Duration:\t%.3fs\n", si.Duration)
	} else {
		fmt.Fprintf(tw, "Duration:\tunknown\n")
	}
	return tw.Flush()
}

// formatBitRate prints the rate, or the meaning of the reserved codes
// libdca reports as 1, 2 and 3.
func formatBitRate(bps int) string {
	switch bps {
	case 1:
		return "open"
	case 2:
		return "variable"
	case 3:
		return "lossless"
	}
	return fmt.Sprintf("%d bps", bps)
}
