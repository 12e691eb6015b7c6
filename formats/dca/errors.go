// SPDX-License-Identifier: EPL-2.0

package dca

import "errors"

var (
	// ErrEmptySource indicates the source yielded no bytes at open
	ErrEmptySource = errors.New("dca: empty source")

	// ErrNoSync indicates no frame header was found within the probe limit
	ErrNoSync = errors.New("dca: no frame sync found")

	// ErrInvalidChannels indicates the channel arrangement maps to zero channels
	ErrInvalidChannels = errors.New("dca: invalid channel arrangement")

	// ErrCoreInit indicates the entropy core could not be created
	ErrCoreInit = errors.New("dca: core initialization failed")

	// ErrNoCore indicates no core factory was given or registered
	ErrNoCore = errors.New("dca: no core available")

	// ErrClosed is returned by every operation on a closed session
	ErrClosed = errors.New("dca: session closed")

	// ErrNegativeSeek indicates a seek target before the start of the stream
	ErrNegativeSeek = errors.New("dca: negative seek position")

	// ErrSeekRange indicates a seek target that is not finite or whose byte
	// offset cannot be represented
	ErrSeekRange = errors.New("dca: seek position out of range")

	// ErrNotSynchronized indicates the session has no frame geometry yet
	ErrNotSynchronized = errors.New("dca: session not synchronized")

	// ErrFrameDecode is returned by cores that reject a frame or block
	ErrFrameDecode = errors.New("dca: frame decode failed")
)
