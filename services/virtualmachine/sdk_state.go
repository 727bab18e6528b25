// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"

	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

func (s *service) handleSdkStateCall(ctx context.Context, executionContext *executionContext, methodName primitives.MethodName, args *protocol.ArgumentArray) (*protocol.ArgumentArray, error) {
	switch methodName {
	case "read":
		return s.handleSdkStateRead(ctx, executionContext, args)
	case "write":
		return s.handleSdkStateWrite(executionContext, args)
	default:
		return nil, errors.Errorf("unknown SDK state call method: %s", methodName)
	}
}

func (s *service) handleSdkStateRead(ctx context.Context, executionContext *executionContext, args *protocol.ArgumentArray) (*protocol.ArgumentArray, error) {
	key, err := bytesArgs(args, 1)
	if err != nil {
		return nil, errors.Wrap(err, "invalid SDK state read args")
	}

	contractName, _ := executionContext.serviceStackTop()
	value, found := executionContext.transientState.getValue(contractName, key[0])
	if !found {
		records, err := s.stateStorage.ReadKeys(ctx, contractName, []string{string(key[0])})
		if err != nil {
			return nil, err
		}
		value = records[string(key[0])]
		executionContext.transientState.setValue(contractName, key[0], value, false)
	}

	return (&protocol.ArgumentArrayBuilder{
		Arguments: []*protocol.ArgumentBuilder{
			{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: value},
		},
	}).Build(), nil
}

func (s *service) handleSdkStateWrite(executionContext *executionContext, args *protocol.ArgumentArray) (*protocol.ArgumentArray, error) {
	if executionContext.accessScope != protocol.ACCESS_SCOPE_READ_WRITE {
		return nil, errors.Errorf("write attempted without write access: %s", executionContext.accessScope)
	}

	keyAndValue, err := bytesArgs(args, 2)
	if err != nil {
		return nil, errors.Wrap(err, "invalid SDK state write args")
	}

	contractName, _ := executionContext.serviceStackTop()
	executionContext.transientState.setValue(contractName, keyAndValue[0], keyAndValue[1], true)

	return (&protocol.ArgumentArrayBuilder{}).Build(), nil
}

func bytesArgs(args *protocol.ArgumentArray, expected int) ([][]byte, error) {
	if args == nil {
		return nil, errors.New("no arguments")
	}

	res := make([][]byte, 0, expected)
	for i := args.ArgumentsIterator(); i.HasNext(); {
		arg := i.NextArguments()
		if !arg.IsTypeBytesValue() {
			return nil, errors.Errorf("argument %d is %s instead of bytes", len(res), arg.StringType())
		}
		res = append(res, arg.BytesValue())
	}

	if len(res) != expected {
		return nil, errors.Errorf("expected %d arguments but received %d", expected, len(res))
	}
	return res, nil
}
