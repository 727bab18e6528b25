// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"strings"

	"github.com/orbs-network/orbs-counter/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter/services/processor"
	"github.com/orbs-network/orbs-counter/services/processor/native/repository/_Deployments"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

var ErrContractAlreadyDeployed = errors.New("contract already deployed")

const (
	initMethodName          = primitives.MethodName("_init")
	initWithValueMethodName = primitives.MethodName("_initWithValue")
)

// DeployContract binds a contract name to a native implementation and runs its init method, committing both as one revision
func (s *service) DeployContract(ctx context.Context, input *DeployContractInput) (*DeployContractOutput, error) {
	logger := s.logger.WithTags(logfields.Contract(input.ContractName))

	if input.ContractName == "" || strings.HasPrefix(string(input.ContractName), "_") {
		return nil, errors.Errorf("invalid contract name '%s'", input.ContractName)
	}

	info, err := s.processor.GetContractInfo(ctx, &processor.GetContractInfoInput{
		ContractName: input.Implementation,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unknown implementation '%s'", input.Implementation)
	}
	if info.PermissionScope != protocol.PERMISSION_SCOPE_SERVICE {
		return nil, errors.Errorf("implementation '%s' is a system contract and cannot be deployed", input.Implementation)
	}

	s.commitMutex.Lock()
	defer s.commitMutex.Unlock()

	lastCommittedHeight, err := s.stateStorage.GetLastCommittedHeight(ctx)
	if err != nil {
		return nil, err
	}

	contextId, executionContext := s.contexts.allocateExecutionContext(lastCommittedHeight, protocol.ACCESS_SCOPE_READ_WRITE)
	defer s.contexts.destroyExecutionContext(contextId)

	existing, err := s.callGetImplementationOfDeploymentSystemContract(ctx, executionContext, input.ContractName)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		return nil, errors.Wrapf(ErrContractAlreadyDeployed, "'%s' is bound to '%s'", input.ContractName, existing)
	}

	if err := s.callDeployServiceOfDeploymentSystemContract(ctx, executionContext, input.ContractName, input.Implementation); err != nil {
		return nil, err
	}

	if err := s.callInitOfImplementation(ctx, executionContext, input); err != nil {
		return nil, err
	}

	committedHeight, err := s.commitTransientState(ctx, executionContext)
	if err != nil {
		return nil, err
	}

	s.metrics.deployments.Inc()
	logger.Info("contract deployed", log.String("implementation", string(input.Implementation)), logfields.BlockHeight(committedHeight))

	return &DeployContractOutput{
		BlockHeight: committedHeight,
	}, nil
}

func (s *service) callInitOfImplementation(ctx context.Context, executionContext *executionContext, input *DeployContractInput) error {
	methodName := initMethodName
	inputArgs := input.InitArgumentArray
	if inputArgs == nil || !inputArgs.ArgumentsIterator().HasNext() {
		inputArgs = (&protocol.ArgumentArrayBuilder{}).Build()
	} else {
		methodName = initWithValueMethodName
	}

	// the implementation's state lives under the deployed name
	executionContext.serviceStackPush(input.ContractName, protocol.PERMISSION_SCOPE_SYSTEM)
	defer executionContext.serviceStackPop()

	_, err := s.processor.ProcessCall(ctx, &processor.ProcessCallInput{
		ContextId:              executionContext.contextId,
		ContractName:           input.Implementation,
		MethodName:             methodName,
		InputArgumentArray:     inputArgs,
		AccessScope:            protocol.ACCESS_SCOPE_READ_WRITE,
		CallingPermissionScope: protocol.PERMISSION_SCOPE_SYSTEM,
	})
	if err != nil {
		return errors.Wrapf(err, "%s.%s failed", input.Implementation, methodName)
	}
	return nil
}

func (s *service) callGetImplementationOfDeploymentSystemContract(ctx context.Context, executionContext *executionContext, serviceName primitives.ContractName) (primitives.ContractName, error) {
	systemContractName := primitives.ContractName(deployments.CONTRACT.Name)
	systemMethodName := primitives.MethodName(deployments.METHOD_GET_IMPLEMENTATION.Name)

	// modify execution context
	executionContext.serviceStackPush(systemContractName, protocol.PERMISSION_SCOPE_SYSTEM)
	defer executionContext.serviceStackPop()

	// execute the call
	inputArgs := (&protocol.ArgumentArrayBuilder{
		Arguments: []*protocol.ArgumentBuilder{
			{
				Type:        protocol.ARGUMENT_TYPE_STRING_VALUE,
				StringValue: string(serviceName),
			},
		},
	}).Build()
	output, err := s.processor.ProcessCall(ctx, &processor.ProcessCallInput{
		ContextId:              executionContext.contextId,
		ContractName:           systemContractName,
		MethodName:             systemMethodName,
		InputArgumentArray:     inputArgs,
		AccessScope:            protocol.ACCESS_SCOPE_READ_ONLY,
		CallingPermissionScope: protocol.PERMISSION_SCOPE_SYSTEM,
	})
	if err != nil {
		return "", errors.Wrap(err, "_Deployments.getImplementation failed")
	}

	// parse the output
	argIterator := output.OutputArgumentArray.ArgumentsIterator()
	if !argIterator.HasNext() {
		return "", errors.New("_Deployments.getImplementation returned no output")
	}
	arg := argIterator.NextArguments()
	if !arg.IsTypeStringValue() {
		return "", errors.Errorf("_Deployments.getImplementation returned corrupt output value")
	}
	return primitives.ContractName(arg.StringValue()), nil
}

func (s *service) callDeployServiceOfDeploymentSystemContract(ctx context.Context, executionContext *executionContext, serviceName primitives.ContractName, implementation primitives.ContractName) error {
	systemContractName := primitives.ContractName(deployments.CONTRACT.Name)
	systemMethodName := primitives.MethodName(deployments.METHOD_DEPLOY_SERVICE.Name)

	// modify execution context
	executionContext.serviceStackPush(systemContractName, protocol.PERMISSION_SCOPE_SYSTEM)
	defer executionContext.serviceStackPop()

	// execute the call
	inputArgs := (&protocol.ArgumentArrayBuilder{
		Arguments: []*protocol.ArgumentBuilder{
			{
				Type:        protocol.ARGUMENT_TYPE_STRING_VALUE,
				StringValue: string(serviceName),
			},
			{
				Type:        protocol.ARGUMENT_TYPE_STRING_VALUE,
				StringValue: string(implementation),
			},
		},
	}).Build()
	_, err := s.processor.ProcessCall(ctx, &processor.ProcessCallInput{
		ContextId:              executionContext.contextId,
		ContractName:           systemContractName,
		MethodName:             systemMethodName,
		InputArgumentArray:     inputArgs,
		AccessScope:            protocol.ACCESS_SCOPE_READ_WRITE,
		CallingPermissionScope: protocol.PERMISSION_SCOPE_SYSTEM,
	})
	if err != nil {
		return errors.Wrap(err, "_Deployments.deployService failed")
	}
	return nil
}
