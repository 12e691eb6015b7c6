// SPDX-License-Identifier: EPL-2.0

package dca

// Core is the entropy decoder that turns a synchronized frame into blocks
// of planar samples. A Core is owned by one Session and never shared.
type Core interface {
	// Sync parses the header at the start of header (HeaderSize bytes).
	Sync(header []byte) (SyncInfo, bool)

	// Frame starts decoding a complete frame. flags carries the requested
	// arrangement and FlagAdjustLevel; the core returns the arrangement it
	// will deliver.
	Frame(frame []byte, flags Flags, level, bias float32) (Flags, error)

	// Blocks is the number of blocks in the current frame.
	Blocks() int

	// Block decodes the next block into the buffer returned by Samples.
	Block() error

	// Samples holds BlockSize words per channel, channel after channel.
	// It is valid until the next call to Block or Frame.
	Samples() []int32

	SampleFormat() SampleFormat

	// DisableDynamicRange turns off dynamic range compression for the
	// current frame.
	DisableDynamicRange()

	Close() error
}

// CoreFactory creates a fresh Core.
type CoreFactory func() (Core, error)
