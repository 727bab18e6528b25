// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

// Package counter holds a single signed 32 bit value whose arithmetic saturates at
// the int32 bounds instead of wrapping. None of the operations fail.
//
// A Counter is not safe for concurrent use; callers that share one must serialize access.
package counter

import "strconv"

type Counter struct {
	value int32
}

func New(initValue int32) *Counter {
	return &Counter{value: initValue}
}

func Default() *Counter {
	return New(0)
}

func (c *Counter) Get() int32 {
	return c.value
}

func (c *Counter) Increment() {
	c.value = SaturatingAdd(c.value, 1)
}

func (c *Counter) Decrement() {
	c.value = SaturatingSub(c.value, 1)
}

func (c *Counter) ModifyBy(delta int32) {
	c.value = SaturatingAdd(c.value, delta)
}

// ModifyByReportingSaturation mutates exactly like ModifyBy, and also reports
// whether the true sum fell outside the int32 range and was clamped.
func (c *Counter) ModifyByReportingSaturation(delta int32) bool {
	sum, overflowed := addOverflows(c.value, delta)
	if overflowed {
		sum = boundFor(c.value)
	}
	c.value = sum
	return overflowed
}

func (c *Counter) String() string {
	return strconv.FormatInt(int64(c.value), 10)
}
