// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

// Errors returned by Probe. Each marks the first header field that did not
// match the layout DTS audio CDs are ripped with.
var (
	// ErrNotWavFile means the RIFF id or WAVE form type is missing
	ErrNotWavFile = errors.New("wav: not a RIFF/WAVE stream")

	// ErrUnsupportedWavLayout means the first chunk is not a usable fmt chunk
	ErrUnsupportedWavLayout = errors.New("wav: fmt chunk missing or malformed")

	// ErrOnlyPCM16bitSupported means the fmt chunk is not 16-bit integer PCM
	ErrOnlyPCM16bitSupported = errors.New("wav: only 16-bit PCM is supported")

	// ErrUnsupportedWavChunks means the data chunk does not follow fmt directly
	ErrUnsupportedWavChunks = errors.New("wav: data chunk must follow fmt")
)
