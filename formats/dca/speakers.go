// SPDX-License-Identifier: EPL-2.0

package dca

import "strings"

// Speaker is the loudspeaker position a channel is meant for.
type Speaker uint8

const (
	SpeakerLeft Speaker = iota
	SpeakerRight
	SpeakerCenter
	SpeakerLFE
	// SpeakerSurround is the single rear channel of 2F1R and 3F1R.
	SpeakerSurround
	SpeakerSurroundLeft
	SpeakerSurroundRight
	SpeakerCenterLeft
	SpeakerCenterRight
)

var speakerNames = [...]string{"L", "R", "C", "LFE", "S", "SL", "SR", "CL", "CR"}

func (s Speaker) String() string {
	if int(s) < len(speakerNames) {
		return speakerNames[s]
	}
	return "?"
}

// coreSpeakers lists the core channel order per arrangement, LFE excluded.
// The LFE channel, when present, follows the last of these.
var coreSpeakers = [configCount][]Speaker{
	ConfigMono:          {SpeakerCenter},
	ConfigDualMono:      {SpeakerLeft, SpeakerRight},
	ConfigStereo:        {SpeakerLeft, SpeakerRight},
	ConfigStereoSumDiff: {SpeakerLeft, SpeakerRight},
	ConfigStereoTotal:   {SpeakerLeft, SpeakerRight},
	Config3F:            {SpeakerCenter, SpeakerLeft, SpeakerRight},
	Config2F1R:          {SpeakerLeft, SpeakerRight, SpeakerSurround},
	Config3F1R:          {SpeakerCenter, SpeakerLeft, SpeakerRight, SpeakerSurround},
	Config2F2R:          {SpeakerLeft, SpeakerRight, SpeakerSurroundLeft, SpeakerSurroundRight},
	Config3F2R: {
		SpeakerCenter, SpeakerLeft, SpeakerRight,
		SpeakerSurroundLeft, SpeakerSurroundRight,
	},
	Config4F2R: {
		SpeakerCenterLeft, SpeakerCenterRight, SpeakerLeft, SpeakerRight,
		SpeakerSurroundLeft, SpeakerSurroundRight,
	},
}

// Speakers returns the speaker of every output channel, in the order Read
// delivers them. It is nil for an unknown arrangement.
func (l Layout) Speakers() []Speaker {
	remap := l.Remap()
	if remap == nil {
		return nil
	}

	core := coreSpeakers[l.Config]
	out := make([]Speaker, len(remap))
	for i, c := range remap {
		if c == len(core) {
			out[i] = SpeakerLFE
			continue
		}
		out[i] = core[c]
	}
	return out
}

// ChannelOrder is Speakers as a space separated string, e.g. "L R C LFE SL SR".
func (l Layout) ChannelOrder() string {
	sp := l.Speakers()
	names := make([]string, len(sp))
	for i, s := range sp {
		names[i] = s.String()
	}
	return strings.Join(names, " ")
}

const minus3dB = 0.70710678

// StereoMatrix returns left and right downmix weights for the output
// channels. Centers and surrounds are folded in at -3 dB, the LFE is
// dropped, and each row is scaled so its weights sum to at most one.
// It is nil for an unknown arrangement.
func (l Layout) StereoMatrix() [][]float32 {
	sp := l.Speakers()
	if sp == nil {
		return nil
	}

	left := make([]float32, len(sp))
	right := make([]float32, len(sp))
	for i, s := range sp {
		switch s {
		case SpeakerLeft, SpeakerCenterLeft:
			left[i] = 1
		case SpeakerRight, SpeakerCenterRight:
			right[i] = 1
		case SpeakerCenter, SpeakerSurround:
			left[i], right[i] = minus3dB, minus3dB
		case SpeakerSurroundLeft:
			left[i] = minus3dB
		case SpeakerSurroundRight:
			right[i] = minus3dB
		}
	}

	// mono feeds both sides at full level
	if l.Config == ConfigMono {
		left[0], right[0] = 1, 1
	}

	scaleRow(left)
	scaleRow(right)
	return [][]float32{left, right}
}

func scaleRow(row []float32) {
	var sum float32
	for _, w := range row {
		sum += w
	}
	if sum <= 1 {
		return
	}
	for i := range row {
		row[i] /= sum
	}
}
