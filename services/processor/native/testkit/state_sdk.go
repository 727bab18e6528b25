// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package testkit

import (
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-counter/services/processor/native/types"
	"github.com/pkg/errors"
)

// InMemoryStateSdk is a StateSdk over a plain map, for running native contracts without a virtual machine.
// Keys are stored as given, without address hashing.
type InMemoryStateSdk struct {
	Store  map[string][]byte
	Writes int
}

func NewInMemoryStateSdk() *InMemoryStateSdk {
	return &InMemoryStateSdk{Store: map[string][]byte{}}
}

func (s *InMemoryStateSdk) ReadBytesByAddress(ctx types.Context, address []byte) ([]byte, error) {
	return s.Store[string(address)], nil
}

func (s *InMemoryStateSdk) ReadBytesByKey(ctx types.Context, key string) ([]byte, error) {
	return s.ReadBytesByAddress(ctx, []byte(key))
}

func (s *InMemoryStateSdk) ReadStringByAddress(ctx types.Context, address []byte) (string, error) {
	bytes, err := s.ReadBytesByAddress(ctx, address)
	return string(bytes), err
}

func (s *InMemoryStateSdk) ReadStringByKey(ctx types.Context, key string) (string, error) {
	return s.ReadStringByAddress(ctx, []byte(key))
}

func (s *InMemoryStateSdk) ReadUint64ByAddress(ctx types.Context, address []byte) (uint64, error) {
	bytes, _ := s.ReadBytesByAddress(ctx, address)
	switch len(bytes) {
	case 0:
		return 0, nil
	case 8:
		return membuffers.GetUint64(bytes), nil
	default:
		return 0, errors.Errorf("value of %d bytes is not a uint64", len(bytes))
	}
}

func (s *InMemoryStateSdk) ReadUint64ByKey(ctx types.Context, key string) (uint64, error) {
	return s.ReadUint64ByAddress(ctx, []byte(key))
}

func (s *InMemoryStateSdk) ReadUint32ByAddress(ctx types.Context, address []byte) (uint32, error) {
	bytes, _ := s.ReadBytesByAddress(ctx, address)
	switch len(bytes) {
	case 0:
		return 0, nil
	case 4:
		return membuffers.GetUint32(bytes), nil
	default:
		return 0, errors.Errorf("value of %d bytes is not a uint32", len(bytes))
	}
}

func (s *InMemoryStateSdk) ReadUint32ByKey(ctx types.Context, key string) (uint32, error) {
	return s.ReadUint32ByAddress(ctx, []byte(key))
}

func (s *InMemoryStateSdk) WriteBytesByAddress(ctx types.Context, address []byte, value []byte) error {
	s.Writes++
	if len(value) == 0 {
		delete(s.Store, string(address))
		return nil
	}
	s.Store[string(address)] = value
	return nil
}

func (s *InMemoryStateSdk) WriteBytesByKey(ctx types.Context, key string, value []byte) error {
	return s.WriteBytesByAddress(ctx, []byte(key), value)
}

func (s *InMemoryStateSdk) WriteStringByAddress(ctx types.Context, address []byte, value string) error {
	return s.WriteBytesByAddress(ctx, address, []byte(value))
}

func (s *InMemoryStateSdk) WriteStringByKey(ctx types.Context, key string, value string) error {
	return s.WriteStringByAddress(ctx, []byte(key), value)
}

func (s *InMemoryStateSdk) WriteUint64ByAddress(ctx types.Context, address []byte, value uint64) error {
	bytes := make([]byte, 8)
	membuffers.WriteUint64(bytes, value)
	return s.WriteBytesByAddress(ctx, address, bytes)
}

func (s *InMemoryStateSdk) WriteUint64ByKey(ctx types.Context, key string, value uint64) error {
	return s.WriteUint64ByAddress(ctx, []byte(key), value)
}

func (s *InMemoryStateSdk) WriteUint32ByAddress(ctx types.Context, address []byte, value uint32) error {
	bytes := make([]byte, 4)
	membuffers.WriteUint32(bytes, value)
	return s.WriteBytesByAddress(ctx, address, bytes)
}

func (s *InMemoryStateSdk) WriteUint32ByKey(ctx types.Context, key string, value uint32) error {
	return s.WriteUint32ByAddress(ctx, []byte(key), value)
}

func (s *InMemoryStateSdk) ClearByAddress(ctx types.Context, address []byte) error {
	return s.WriteBytesByAddress(ctx, address, nil)
}

func (s *InMemoryStateSdk) ClearByKey(ctx types.Context, key string) error {
	return s.ClearByAddress(ctx, []byte(key))
}
