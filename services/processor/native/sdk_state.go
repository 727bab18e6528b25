// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-counter/crypto/hash"
	"github.com/orbs-network/orbs-counter/services/processor"
	"github.com/orbs-network/orbs-counter/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

const SDK_OPERATION_NAME_STATE = "Sdk.State"

type stateSdk struct {
	service *service
}

func (s *stateSdk) handleSdkCall(ctx types.Context, methodName string, args *protocol.ArgumentArray) (*protocol.ArgumentArray, error) {
	if s.service.sdkHandler == nil {
		return nil, errors.New("no sdk call handler registered")
	}

	contextId := processor.ExecutionContextId(ctx)
	output, err := s.service.sdkHandler.HandleSdkCall(s.service.contextOfCall(contextId), &processor.HandleSdkCallInput{
		ContextId:       contextId,
		OperationName:   SDK_OPERATION_NAME_STATE,
		MethodName:      primitives.MethodName(methodName),
		InputArguments:  args,
		PermissionScope: protocol.PERMISSION_SCOPE_SERVICE,
	})
	if err != nil {
		return nil, err
	}
	return output.OutputArguments, nil
}

func (s *stateSdk) ReadBytesByAddress(ctx types.Context, address []byte) ([]byte, error) {
	output, err := s.handleSdkCall(ctx, "read", (&protocol.ArgumentArrayBuilder{
		Arguments: []*protocol.ArgumentBuilder{
			{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: address},
		},
	}).Build())
	if err != nil {
		return nil, err
	}

	outputArgsIterator := output.ArgumentsIterator()
	if !outputArgsIterator.HasNext() {
		return nil, errors.Errorf("read %s returned corrupt output value", SDK_OPERATION_NAME_STATE)
	}
	value := outputArgsIterator.NextArguments()
	if !value.IsTypeBytesValue() {
		return nil, errors.Errorf("read %s returned corrupt output value", SDK_OPERATION_NAME_STATE)
	}
	return value.BytesValue(), nil
}

func (s *stateSdk) WriteBytesByAddress(ctx types.Context, address []byte, value []byte) error {
	_, err := s.handleSdkCall(ctx, "write", (&protocol.ArgumentArrayBuilder{
		Arguments: []*protocol.ArgumentBuilder{
			{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: address},
			{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: value},
		},
	}).Build())
	return err
}

func (s *stateSdk) ReadBytesByKey(ctx types.Context, key string) ([]byte, error) {
	address := keyToAddress(key)
	return s.ReadBytesByAddress(ctx, address)
}

func (s *stateSdk) ReadStringByAddress(ctx types.Context, address []byte) (string, error) {
	bytes, err := s.ReadBytesByAddress(ctx, address)
	return string(bytes), err
}

func (s *stateSdk) ReadStringByKey(ctx types.Context, key string) (string, error) {
	address := keyToAddress(key)
	return s.ReadStringByAddress(ctx, address)
}

func (s *stateSdk) ReadUint64ByAddress(ctx types.Context, address []byte) (uint64, error) {
	bytes, err := s.ReadBytesByAddress(ctx, address)
	if err != nil || len(bytes) == 0 {
		return 0, err
	}
	if len(bytes) != 8 {
		return 0, errors.Errorf("state value of %d bytes is not a uint64", len(bytes))
	}
	return membuffers.GetUint64(bytes), nil
}

func (s *stateSdk) ReadUint64ByKey(ctx types.Context, key string) (uint64, error) {
	address := keyToAddress(key)
	return s.ReadUint64ByAddress(ctx, address)
}

func (s *stateSdk) ReadUint32ByAddress(ctx types.Context, address []byte) (uint32, error) {
	bytes, err := s.ReadBytesByAddress(ctx, address)
	if err != nil || len(bytes) == 0 {
		return 0, err
	}
	if len(bytes) != 4 {
		return 0, errors.Errorf("state value of %d bytes is not a uint32", len(bytes))
	}
	return membuffers.GetUint32(bytes), nil
}

func (s *stateSdk) ReadUint32ByKey(ctx types.Context, key string) (uint32, error) {
	address := keyToAddress(key)
	return s.ReadUint32ByAddress(ctx, address)
}

func (s *stateSdk) WriteBytesByKey(ctx types.Context, key string, value []byte) error {
	address := keyToAddress(key)
	return s.WriteBytesByAddress(ctx, address, value)
}

func (s *stateSdk) WriteStringByAddress(ctx types.Context, address []byte, value string) error {
	return s.WriteBytesByAddress(ctx, address, []byte(value))
}

func (s *stateSdk) WriteStringByKey(ctx types.Context, key string, value string) error {
	address := keyToAddress(key)
	return s.WriteStringByAddress(ctx, address, value)
}

func (s *stateSdk) WriteUint64ByAddress(ctx types.Context, address []byte, value uint64) error {
	bytes := make([]byte, 8)
	membuffers.WriteUint64(bytes, value)
	return s.WriteBytesByAddress(ctx, address, bytes)
}

func (s *stateSdk) WriteUint64ByKey(ctx types.Context, key string, value uint64) error {
	address := keyToAddress(key)
	return s.WriteUint64ByAddress(ctx, address, value)
}

func (s *stateSdk) WriteUint32ByAddress(ctx types.Context, address []byte, value uint32) error {
	bytes := make([]byte, 4)
	membuffers.WriteUint32(bytes, value)
	return s.WriteBytesByAddress(ctx, address, bytes)
}

func (s *stateSdk) WriteUint32ByKey(ctx types.Context, key string, value uint32) error {
	address := keyToAddress(key)
	return s.WriteUint32ByAddress(ctx, address, value)
}

func (s *stateSdk) ClearByAddress(ctx types.Context, address []byte) error {
	return s.WriteBytesByAddress(ctx, address, []byte{})
}

func (s *stateSdk) ClearByKey(ctx types.Context, key string) error {
	address := keyToAddress(key)
	return s.ClearByAddress(ctx, address)
}

func keyToAddress(key string) []byte {
	return hash.CalcRipemd160Sha256([]byte(key))
}
