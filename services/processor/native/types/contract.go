// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

type Contract interface {
	// _init(ctx Context) error
}

// Context is the execution context id of the call the contract method runs in
type Context uint32

type BaseContract struct {
	State StateSdk
}

func NewBaseContract(state StateSdk) *BaseContract {
	return &BaseContract{
		State: state,
	}
}
