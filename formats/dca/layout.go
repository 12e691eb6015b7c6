// SPDX-License-Identifier: EPL-2.0

package dca

import "fmt"

// Flags is the channel arrangement word carried by a frame header, plus the
// decoder request bits.
type Flags int

const (
	// ChannelMask selects the ChannelConfig bits of Flags.
	ChannelMask Flags = 0x3F
	// FlagLFE is set when the frame carries a low-frequency-effects channel.
	FlagLFE Flags = 0x80
	// FlagAdjustLevel asks the core to apply the level multiplier.
	FlagAdjustLevel Flags = 0x100
)

func (f Flags) Config() ChannelConfig { return ChannelConfig(f & ChannelMask) }
func (f Flags) LFE() bool             { return f&FlagLFE != 0 }

// ChannelConfig is the audio channel arrangement (AMODE) of a frame.
type ChannelConfig uint8

const (
	ConfigMono ChannelConfig = iota
	// ConfigDualMono carries two independent mono programs.
	ConfigDualMono
	ConfigStereo
	ConfigStereoSumDiff
	ConfigStereoTotal
	Config3F
	Config2F1R
	Config3F1R
	Config2F2R
	Config3F2R
	Config4F2R

	configCount
)

var configNames = [configCount]string{
	"mono", "dual mono", "stereo", "stereo (sum/difference)", "stereo (total)",
	"3F", "2F1R", "3F1R", "2F2R", "3F2R", "4F2R",
}

func (c ChannelConfig) String() string {
	if c < configCount {
		return configNames[c]
	}
	return fmt.Sprintf("ChannelConfig(%d)", uint8(c))
}

// Valid reports whether c is one of the defined arrangements.
func (c ChannelConfig) Valid() bool { return c < configCount }

// remapNoLFE and remapLFE give, for each output slot, the core channel that
// feeds it. Without LFE the core order is kept. With LFE the output follows
// the WAV order: front left, front right, center, LFE, then surrounds.
var (
	remapNoLFE = [configCount][]int{
		ConfigMono:          {0},
		ConfigDualMono:      {0, 1},
		ConfigStereo:        {0, 1},
		ConfigStereoSumDiff: {0, 1},
		ConfigStereoTotal:   {0, 1},
		Config3F:            {0, 1, 2},
		Config2F1R:          {0, 1, 2},
		Config3F1R:          {0, 1, 2, 3},
		Config2F2R:          {0, 1, 2, 3},
		Config3F2R:          {0, 1, 2, 3, 4},
		Config4F2R:          {0, 1, 2, 3, 4, 5},
	}

	remapLFE = [configCount][]int{
		ConfigMono:          {0, 1},
		ConfigDualMono:      {0, 1, 2},
		ConfigStereo:        {0, 1, 2},
		ConfigStereoSumDiff: {0, 1, 2},
		ConfigStereoTotal:   {0, 1, 2},
		Config3F:            {1, 2, 0, 3},
		Config2F1R:          {0, 1, 3, 2},
		Config3F1R:          {1, 2, 0, 4, 3},
		Config2F2R:          {0, 1, 4, 2, 3},
		Config3F2R:          {1, 2, 0, 5, 3, 4},
		// L R LFE CL CR LS RS
		Config4F2R: {2, 3, 6, 0, 1, 4, 5},
	}
)

// Layout is the channel arrangement of the decoded stream.
type Layout struct {
	Config               ChannelConfig
	LFE                  bool
	DynamicRangeDisabled bool
}

// LayoutOf extracts the arrangement from header or frame flags.
func LayoutOf(f Flags) Layout {
	return Layout{Config: f.Config(), LFE: f.LFE()}
}

// Channels is the output channel count, zero for an unknown arrangement.
func (l Layout) Channels() int {
	return len(l.Remap())
}

// Remap returns the output-slot to core-channel permutation. The slice is
// shared and must not be modified. It is nil for an unknown arrangement.
func (l Layout) Remap() []int {
	if !l.Config.Valid() {
		return nil
	}
	if l.LFE {
		return remapLFE[l.Config]
	}
	return remapNoLFE[l.Config]
}

func (l Layout) String() string {
	if l.LFE {
		return l.Config.String() + "+LFE"
	}
	return l.Config.String()
}
