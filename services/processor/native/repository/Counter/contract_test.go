// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package counter

import (
	"math"
	"testing"

	"github.com/orbs-network/orbs-counter/services/processor/native/testkit"
	"github.com/orbs-network/orbs-counter/services/processor/native/types"
	"github.com/stretchr/testify/require"
)

const EXAMPLE_CONTEXT = types.Context(0)

func newTestContract() (*contract, *testkit.InMemoryStateSdk) {
	state := testkit.NewInMemoryStateSdk()
	return newContract(types.NewBaseContract(state)).(*contract), state
}

func requireValue(t *testing.T, c *contract, expected int32) {
	value, err := c.get(EXAMPLE_CONTEXT)
	require.NoError(t, err)
	require.Equal(t, expected, value)
}

func TestInit_StartsAtZero(t *testing.T) {
	c, state := newTestContract()

	require.NoError(t, c._init(EXAMPLE_CONTEXT))

	requireValue(t, c, 0)
	require.Contains(t, state.Store, STATE_KEY_VALUE, "construction must persist the value")
}

func TestInitWithValue_StoresTwosComplement(t *testing.T) {
	c, state := newTestContract()

	require.NoError(t, c._initWithValue(EXAMPLE_CONTEXT, -1))

	requireValue(t, c, -1)
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, state.Store[STATE_KEY_VALUE])
}

func TestGet_OfMissingStateIsZero(t *testing.T) {
	c, _ := newTestContract()
	requireValue(t, c, 0)
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name     string
		initial  int32
		op       func(c *contract) error
		expected int32
	}{
		{"increment", 42, func(c *contract) error { return c.increment(EXAMPLE_CONTEXT) }, 43},
		{"increment at max", math.MaxInt32, func(c *contract) error { return c.increment(EXAMPLE_CONTEXT) }, math.MaxInt32},
		{"decrement", 42, func(c *contract) error { return c.decrement(EXAMPLE_CONTEXT) }, 41},
		{"decrement at min", math.MinInt32, func(c *contract) error { return c.decrement(EXAMPLE_CONTEXT) }, math.MinInt32},
		{"modify by positive", 42, func(c *contract) error { return c.modifyBy(EXAMPLE_CONTEXT, 10) }, 52},
		{"modify by min", -42, func(c *contract) error { return c.modifyBy(EXAMPLE_CONTEXT, math.MinInt32) }, math.MinInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContract()
			require.NoError(t, c._initWithValue(EXAMPLE_CONTEXT, tt.initial))

			require.NoError(t, tt.op(c))

			requireValue(t, c, tt.expected)
		})
	}
}

func TestModifyByReportingSaturation(t *testing.T) {
	c, _ := newTestContract()
	require.NoError(t, c._initWithValue(EXAMPLE_CONTEXT, math.MaxInt32-1))

	saturated, err := c.modifyByReportingSaturation(EXAMPLE_CONTEXT, 1)
	require.NoError(t, err)
	require.EqualValues(t, 0, saturated, "reaching the bound exactly is not saturation")
	requireValue(t, c, math.MaxInt32)

	saturated, err = c.modifyByReportingSaturation(EXAMPLE_CONTEXT, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, saturated)
	requireValue(t, c, math.MaxInt32)
}

func TestCorruptStateFailsTheCall(t *testing.T) {
	c, state := newTestContract()
	state.Store[STATE_KEY_VALUE] = []byte{0x01, 0x02}

	require.Error(t, c.increment(EXAMPLE_CONTEXT))
	require.Equal(t, []byte{0x01, 0x02}, state.Store[STATE_KEY_VALUE], "a failed update must not overwrite state")
}

func TestMethodsAreDeclared(t *testing.T) {
	for name, method := range CONTRACT.Methods {
		require.Equal(t, name, method.Name, "method map key must match method name")
		require.NotNil(t, method.Implementation)
	}
	require.False(t, CONTRACT.Methods["_init"].External, "constructors are system methods")
	require.False(t, CONTRACT.Methods["_initWithValue"].External, "constructors are system methods")
	require.True(t, CONTRACT.Methods["get"].External)
}
