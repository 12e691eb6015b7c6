// SPDX-License-Identifier: EPL-2.0

package dca

import "github.com/ik5/dcadec/utils"

// SampleFormat is the numeric representation of a core's output words.
type SampleFormat uint8

const (
	// SampleFloatBiased words are IEEE-754 float32 bit patterns of
	// Bias+sample, with the sample scaled to [-1, 1].
	SampleFloatBiased SampleFormat = iota
	// SampleFixed words are Q15 fixed point shifted left by 15.
	SampleFixed
)

// Bias is added by a float core to every sample. At 384 the float
// exponent is constant over [-1, 1] and the mantissa holds the 16-bit
// sample directly.
const Bias = 384

const biasWord = 0x43c00000 // float32 bits of 384.0

// BlockSize is the number of samples per channel in one core block.
const BlockSize = 256

// ConvertSample turns one core output word into a saturated 16-bit sample.
func ConvertSample(word int32, f SampleFormat) int16 {
	v := int64(word)
	if f == SampleFixed {
		v >>= 15
	} else {
		v -= biasWord
	}
	return utils.ClampInt16(v)
}

// convertBlock interleaves one block of planar core output into dst.
// samples holds BlockSize words per channel, channel after channel.
func convertBlock(dst []int16, samples []int32, channels int, f SampleFormat) []int16 {
	for i := range BlockSize {
		for c := range channels {
			dst = append(dst, ConvertSample(samples[c*BlockSize+i], f))
		}
	}
	return dst
}
