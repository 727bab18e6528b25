// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package inmemory

import (
	"context"

	"github.com/orbs-network/orbs-counter/services/processor/native/repository/Counter"
	"github.com/orbs-network/orbs-counter/services/virtualmachine"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

// CounterClient drives one deployed Counter contract through a virtual machine
type CounterClient struct {
	vm           virtualmachine.VirtualMachine
	contractName primitives.ContractName
}

func NewCounterClient(vm virtualmachine.VirtualMachine, contractName primitives.ContractName) *CounterClient {
	return &CounterClient{
		vm:           vm,
		contractName: contractName,
	}
}

func (c *CounterClient) Deploy(ctx context.Context) (primitives.BlockHeight, error) {
	out, err := c.vm.DeployContract(ctx, &virtualmachine.DeployContractInput{
		ContractName:   c.contractName,
		Implementation: primitives.ContractName(counter.CONTRACT.Name),
	})
	if err != nil {
		return 0, err
	}
	return out.BlockHeight, nil
}

func (c *CounterClient) DeployWithValue(ctx context.Context, initValue int32) (primitives.BlockHeight, error) {
	out, err := c.vm.DeployContract(ctx, &virtualmachine.DeployContractInput{
		ContractName:      c.contractName,
		Implementation:    primitives.ContractName(counter.CONTRACT.Name),
		InitArgumentArray: int32Args(initValue),
	})
	if err != nil {
		return 0, err
	}
	return out.BlockHeight, nil
}

func (c *CounterClient) Get(ctx context.Context) (int32, error) {
	out, err := c.vm.RunQuery(ctx, &virtualmachine.TransactionInput{
		ContractName:       c.contractName,
		MethodName:         primitives.MethodName(counter.METHOD_GET.Name),
		InputArgumentArray: int32Args(),
	})
	if err != nil {
		return 0, err
	}
	value, err := firstUint32Output(out)
	return int32(value), err
}

func (c *CounterClient) Increment(ctx context.Context) error {
	_, err := c.send(ctx, counter.METHOD_INCREMENT.Name)
	return err
}

func (c *CounterClient) Decrement(ctx context.Context) error {
	_, err := c.send(ctx, counter.METHOD_DECREMENT.Name)
	return err
}

func (c *CounterClient) ModifyBy(ctx context.Context, delta int32) error {
	_, err := c.send(ctx, counter.METHOD_MODIFY_BY.Name, delta)
	return err
}

// ModifyByReportingSaturation applies delta like ModifyBy and reports whether the result was clamped
func (c *CounterClient) ModifyByReportingSaturation(ctx context.Context, delta int32) (bool, error) {
	out, err := c.send(ctx, counter.METHOD_MODIFY_BY_REPORTING_SATURATION.Name, delta)
	if err != nil {
		return false, err
	}
	saturated, err := firstUint32Output(out)
	return saturated == 1, err
}

func (c *CounterClient) send(ctx context.Context, methodName primitives.MethodName, args ...int32) (*virtualmachine.TransactionOutput, error) {
	return c.vm.SendTransaction(ctx, &virtualmachine.TransactionInput{
		ContractName:       c.contractName,
		MethodName:         methodName,
		InputArgumentArray: int32Args(args...),
	})
}

func int32Args(values ...int32) *protocol.ArgumentArray {
	args := []*protocol.ArgumentBuilder{}
	for _, v := range values {
		args = append(args, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: uint32(v)})
	}
	return (&protocol.ArgumentArrayBuilder{Arguments: args}).Build()
}

func firstUint32Output(out *virtualmachine.TransactionOutput) (uint32, error) {
	i := out.OutputArgumentArray.ArgumentsIterator()
	if !i.HasNext() {
		return 0, errors.New("call returned no output")
	}
	arg := i.NextArguments()
	if !arg.IsTypeUint32Value() {
		return 0, errors.Errorf("call returned %s instead of uint32", arg.StringType())
	}
	return arg.Uint32Value(), nil
}
