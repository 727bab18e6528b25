// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package counter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultStartsAtZero(t *testing.T) {
	c := Default()
	require.EqualValues(t, 0, c.Get(), "default counter should start at zero")
}

func TestNewStoresInitialValue(t *testing.T) {
	for _, v := range []int32{MinValue, -1, 0, 1, 12, MaxValue} {
		require.Equal(t, v, New(v).Get(), "counter should hold the value it was created with")
	}
}

func TestIncrementThenDecrementRoundTrips(t *testing.T) {
	c := New(5)
	c.Increment()
	require.EqualValues(t, 6, c.Get())
	c.Decrement()
	require.EqualValues(t, 5, c.Get())
}

func TestModifyByAddsDelta(t *testing.T) {
	c := New(10)
	c.ModifyBy(-25)
	require.EqualValues(t, -15, c.Get())
	c.ModifyBy(0)
	require.EqualValues(t, -15, c.Get(), "zero delta should leave value unchanged")
}

func TestIncrementSaturatesAtMax(t *testing.T) {
	c := New(MaxValue)
	c.Increment()
	require.Equal(t, MaxValue, c.Get(), "increment at max should stay at max")
}

func TestDecrementSaturatesAtMin(t *testing.T) {
	c := New(MinValue)
	c.Decrement()
	require.Equal(t, MinValue, c.Get(), "decrement at min should stay at min")
}

func TestModifyBySaturatesInBothDirections(t *testing.T) {
	c := New(MaxValue - 3)
	c.ModifyBy(10)
	require.Equal(t, MaxValue, c.Get())

	c = New(MinValue + 3)
	c.ModifyBy(-10)
	require.Equal(t, MinValue, c.Get())

	c = New(MinValue)
	c.ModifyBy(MaxValue)
	require.EqualValues(t, -1, c.Get(), "opposite signs never saturate")
}

func TestSaturatedCounterRecoversWhenMovedBack(t *testing.T) {
	c := New(MaxValue)
	c.ModifyBy(MaxValue)
	c.Decrement()
	require.Equal(t, MaxValue-1, c.Get(), "saturation should not leave residue beyond the bound")
}

func TestModifyByReportingSaturation(t *testing.T) {
	c := New(MaxValue - 1)
	require.False(t, c.ModifyByReportingSaturation(1), "reaching the bound exactly is not saturation")
	require.Equal(t, MaxValue, c.Get())

	require.True(t, c.ModifyByReportingSaturation(1))
	require.Equal(t, MaxValue, c.Get())

	c = New(-2)
	require.True(t, c.ModifyByReportingSaturation(MinValue))
	require.Equal(t, MinValue, c.Get())
}

func TestModifyByReportingSaturationMatchesModifyBy(t *testing.T) {
	values := []int32{MinValue, MinValue + 1, -7, 0, 7, MaxValue - 1, MaxValue}
	for _, start := range values {
		for _, delta := range values {
			silent := New(start)
			silent.ModifyBy(delta)
			reporting := New(start)
			reporting.ModifyByReportingSaturation(delta)
			require.Equal(t, silent.Get(), reporting.Get(), "start %d delta %d", start, delta)
		}
	}
}

func TestStringFormatsDecimal(t *testing.T) {
	require.Equal(t, "-2147483648", New(MinValue).String())
	require.Equal(t, "42", New(42).String())
}
