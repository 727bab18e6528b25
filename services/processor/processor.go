// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package processor

import (
	"context"

	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

// ExecutionContextId identifies one call in flight; the virtual machine allocates it and the processor hands it back on every SDK call
type ExecutionContextId uint32

type Processor interface {
	ProcessCall(ctx context.Context, input *ProcessCallInput) (*ProcessCallOutput, error)
	GetContractInfo(ctx context.Context, input *GetContractInfoInput) (*GetContractInfoOutput, error)
	RegisterContractSdkCallHandler(handler ContractSdkCallHandler)
}

type ProcessCallInput struct {
	ContextId              ExecutionContextId
	ContractName           primitives.ContractName
	MethodName             primitives.MethodName
	InputArgumentArray     *protocol.ArgumentArray
	AccessScope            protocol.ExecutionAccessScope
	CallingPermissionScope protocol.ExecutionPermissionScope
}

type ProcessCallOutput struct {
	OutputArgumentArray *protocol.ArgumentArray
	CallResult          protocol.ExecutionResult
}

type GetContractInfoInput struct {
	ContractName primitives.ContractName
}

type GetContractInfoOutput struct {
	PermissionScope protocol.ExecutionPermissionScope
}

type ContractSdkCallHandler interface {
	HandleSdkCall(ctx context.Context, input *HandleSdkCallInput) (*HandleSdkCallOutput, error)
}

type HandleSdkCallInput struct {
	ContextId       ExecutionContextId
	OperationName   primitives.ContractName
	MethodName      primitives.MethodName
	InputArguments  *protocol.ArgumentArray
	PermissionScope protocol.ExecutionPermissionScope
}

type HandleSdkCallOutput struct {
	OutputArguments *protocol.ArgumentArray
}
