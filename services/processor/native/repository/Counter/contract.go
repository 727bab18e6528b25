// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package counter

import (
	core "github.com/orbs-network/orbs-counter/counter"
	"github.com/orbs-network/orbs-counter/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

var CONTRACT = types.ContractInfo{
	Name:       "Counter",
	Permission: protocol.PERMISSION_SCOPE_SERVICE,
	Methods: map[primitives.MethodName]types.MethodInfo{
		METHOD_INIT.Name:                           METHOD_INIT,
		METHOD_INIT_WITH_VALUE.Name:                METHOD_INIT_WITH_VALUE,
		METHOD_GET.Name:                            METHOD_GET,
		METHOD_INCREMENT.Name:                      METHOD_INCREMENT,
		METHOD_DECREMENT.Name:                      METHOD_DECREMENT,
		METHOD_MODIFY_BY.Name:                      METHOD_MODIFY_BY,
		METHOD_MODIFY_BY_REPORTING_SATURATION.Name: METHOD_MODIFY_BY_REPORTING_SATURATION,
	},
	InitSingleton: newContract,
}

// the counter value is kept under this key as the two's-complement uint32 bit pattern
const STATE_KEY_VALUE = "value"

func newContract(base *types.BaseContract) types.Contract {
	return &contract{base}
}

type contract struct{ *types.BaseContract }

func (c *contract) load(ctx types.Context) (*core.Counter, error) {
	value, err := c.State.ReadUint32ByKey(ctx, STATE_KEY_VALUE)
	if err != nil {
		return nil, err
	}
	return core.New(int32(value)), nil
}

func (c *contract) save(ctx types.Context, counter *core.Counter) error {
	return c.State.WriteUint32ByKey(ctx, STATE_KEY_VALUE, uint32(counter.Get()))
}

func (c *contract) update(ctx types.Context, op func(counter *core.Counter)) error {
	counter, err := c.load(ctx)
	if err != nil {
		return err
	}
	op(counter)
	return c.save(ctx, counter)
}

///////////////////////////////////////////////////////////////////////////

var METHOD_INIT = types.MethodInfo{
	Name:           "_init",
	External:       false,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract)._init,
}

func (c *contract) _init(ctx types.Context) error {
	return c.save(ctx, core.Default())
}

///////////////////////////////////////////////////////////////////////////

var METHOD_INIT_WITH_VALUE = types.MethodInfo{
	Name:           "_initWithValue",
	External:       false,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract)._initWithValue,
}

func (c *contract) _initWithValue(ctx types.Context, initValue int32) error {
	return c.save(ctx, core.New(initValue))
}

///////////////////////////////////////////////////////////////////////////

var METHOD_GET = types.MethodInfo{
	Name:           "get",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).get,
}

func (c *contract) get(ctx types.Context) (int32, error) {
	counter, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	return counter.Get(), nil
}

///////////////////////////////////////////////////////////////////////////

var METHOD_INCREMENT = types.MethodInfo{
	Name:           "increment",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).increment,
}

func (c *contract) increment(ctx types.Context) error {
	return c.update(ctx, (*core.Counter).Increment)
}

///////////////////////////////////////////////////////////////////////////

var METHOD_DECREMENT = types.MethodInfo{
	Name:           "decrement",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).decrement,
}

func (c *contract) decrement(ctx types.Context) error {
	return c.update(ctx, (*core.Counter).Decrement)
}

///////////////////////////////////////////////////////////////////////////

var METHOD_MODIFY_BY = types.MethodInfo{
	Name:           "modifyBy",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).modifyBy,
}

func (c *contract) modifyBy(ctx types.Context, delta int32) error {
	return c.update(ctx, func(counter *core.Counter) {
		counter.ModifyBy(delta)
	})
}

///////////////////////////////////////////////////////////////////////////

var METHOD_MODIFY_BY_REPORTING_SATURATION = types.MethodInfo{
	Name:           "modifyByReportingSaturation",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).modifyByReportingSaturation,
}

// returns 1 when the result was clamped to a bound, 0 otherwise
func (c *contract) modifyByReportingSaturation(ctx types.Context, delta int32) (uint32, error) {
	saturated := false
	err := c.update(ctx, func(counter *core.Counter) {
		saturated = counter.ModifyByReportingSaturation(delta)
	})
	if err != nil || !saturated {
		return 0, err
	}
	return 1, nil
}
