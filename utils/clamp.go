// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// ClampInt16 saturates v into the signed 16-bit range.
func ClampInt16(v int64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

