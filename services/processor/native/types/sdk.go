// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

type StateSdk interface {
	// read
	ReadBytesByAddress(ctx Context, address []byte) ([]byte, error)
	ReadBytesByKey(ctx Context, key string) ([]byte, error)
	ReadStringByAddress(ctx Context, address []byte) (string, error)
	ReadStringByKey(ctx Context, key string) (string, error)
	ReadUint64ByAddress(ctx Context, address []byte) (uint64, error)
	ReadUint64ByKey(ctx Context, key string) (uint64, error)
	ReadUint32ByAddress(ctx Context, address []byte) (uint32, error)
	ReadUint32ByKey(ctx Context, key string) (uint32, error)

	// write
	WriteBytesByAddress(ctx Context, address []byte, value []byte) error
	WriteBytesByKey(ctx Context, key string, value []byte) error
	WriteStringByAddress(ctx Context, address []byte, value string) error
	WriteStringByKey(ctx Context, key string, value string) error
	WriteUint64ByAddress(ctx Context, address []byte, value uint64) error
	WriteUint64ByKey(ctx Context, key string, value uint64) error
	WriteUint32ByAddress(ctx Context, address []byte, value uint32) error
	WriteUint32ByKey(ctx Context, key string, value uint32) error

	// clear
	ClearByAddress(ctx Context, address []byte) error
	ClearByKey(ctx Context, key string) error
}
