// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/dcadec/audio"
)

// play feeds stream to an oto player until it ends or ctx is cancelled.
func (c *CLI) play(ctx context.Context, stream audio.Stream) error {
	f := stream.Format()

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   f.SampleRate,
		ChannelCount: f.Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(stream)
	defer player.Close()

	player.Play()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			c.logger.Info("playback interrupted")
			return nil
		case <-ticker.C:
		}
	}

	if err := player.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}
