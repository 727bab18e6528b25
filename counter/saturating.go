// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package counter

import "math"

const (
	MinValue int32 = math.MinInt32
	MaxValue int32 = math.MaxInt32
)

// SaturatingAdd returns a+b, clamped to [MinValue, MaxValue].
func SaturatingAdd(a, b int32) int32 {
	sum, overflowed := addOverflows(a, b)
	if !overflowed {
		return sum
	}
	return boundFor(a)
}

// SaturatingSub returns a-b, clamped to [MinValue, MaxValue].
// b may be MinValue; the difference is never computed as a+(-b).
func SaturatingSub(a, b int32) int32 {
	diff, overflowed := subOverflows(a, b)
	if !overflowed {
		return diff
	}
	return boundFor(a)
}

// int32 arithmetic wraps in Go, so overflow shows up as a sign flip of the result
func addOverflows(a, b int32) (int32, bool) {
	sum := a + b
	return sum, sameSign(a, b) && !sameSign(sum, a)
}

func subOverflows(a, b int32) (int32, bool) {
	diff := a - b
	return diff, !sameSign(a, b) && !sameSign(diff, a)
}

// when an overflow happens the true result lies past the bound on a's side
func boundFor(a int32) int32 {
	if a >= 0 {
		return MaxValue
	}
	return MinValue
}

func sameSign(a, b int32) bool {
	return (a >= 0) == (b >= 0)
}
