// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package logfields

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
)

func Contract(name primitives.ContractName) *log.Field {
	return log.String("contract", string(name))
}

func Method(name primitives.MethodName) *log.Field {
	return log.String("method", string(name))
}

func Implementation(name string) *log.Field {
	return log.String("implementation", name)
}

func BlockHeight(value primitives.BlockHeight) *log.Field {
	return &log.Field{Key: "block-height", Uint: uint64(value), Type: log.UintType}
}

func CounterValue(value int32) *log.Field {
	return log.Int64("counter-value", int64(value))
}
