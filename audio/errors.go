// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must hold at least one sample frame")
	ErrInvalidMatrix  = errors.New("invalid mixing matrix")
)
