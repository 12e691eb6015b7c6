// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package cli

import (
	"context"
	"errors"

	"github.com/ik5/dcadec/audio"
)

var errPlaybackUnavailable = errors.New("playback is not available in builds without cgo")

func (c *CLI) play(context.Context, audio.Stream) error {
	return errPlaybackUnavailable
}
