// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/orbs-network/orbs-counter/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter/instrumentation/metric"
	"github.com/orbs-network/orbs-counter/services/processor"
	"github.com/orbs-network/orbs-counter/services/processor/native/repository"
	"github.com/orbs-network/orbs-counter/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

var LogTag = log.Service("processor-native")

type service struct {
	logger     log.Logger
	sdkHandler processor.ContractSdkCallHandler

	contracts map[primitives.ContractName]types.ContractInfo
	instances map[primitives.ContractName]types.Contract

	activeCalls sync.Map // ExecutionContextId -> context.Context

	metrics *metrics
}

type metrics struct {
	processCallTime *metric.Histogram
	contractErrors  *metric.Gauge
}

func getMetrics(m metric.Factory) *metrics {
	return &metrics{
		processCallTime: m.NewLatency("Processor.Native.ProcessCallTime.Millis", 10*time.Second),
		contractErrors:  m.NewGauge("Processor.Native.ContractErrors.Count"),
	}
}

func NewNativeProcessor(parentLogger log.Logger, metricFactory metric.Factory) processor.Processor {
	return NewNativeProcessorWithContracts(repository.Contracts, parentLogger, metricFactory)
}

// NewNativeProcessorWithContracts serves the given prebuilt contracts instead of the repository
func NewNativeProcessorWithContracts(contracts map[primitives.ContractName]types.ContractInfo, parentLogger log.Logger, metricFactory metric.Factory) processor.Processor {
	s := &service{
		logger:    parentLogger.WithTags(LogTag),
		contracts: contracts,
		instances: make(map[primitives.ContractName]types.Contract, len(contracts)),
		metrics:   getMetrics(metricFactory),
	}

	base := types.NewBaseContract(&stateSdk{service: s})
	for name, contractInfo := range contracts {
		s.instances[name] = contractInfo.InitSingleton(base)
	}

	return s
}

// runs once on system initialization (called by the virtual machine constructor)
func (s *service) RegisterContractSdkCallHandler(handler processor.ContractSdkCallHandler) {
	s.sdkHandler = handler
}

func (s *service) ProcessCall(ctx context.Context, input *processor.ProcessCallInput) (*processor.ProcessCallOutput, error) {
	logger := s.logger.WithTags(logfields.Contract(input.ContractName), logfields.Method(input.MethodName))

	// retrieve code
	contractInfo, contractInstance, err := s.retrieveContract(input.ContractName)
	if err != nil {
		return &processor.ProcessCallOutput{
			OutputArgumentArray: s.createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED,
		}, err
	}

	// get the method and check permissions
	methodInfo, err := s.retrieveMethod(contractInfo, input.MethodName, input.AccessScope, input.CallingPermissionScope)
	if err != nil {
		return &processor.ProcessCallOutput{
			OutputArgumentArray: s.createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_INPUT,
		}, err
	}

	s.activeCalls.Store(input.ContextId, ctx)
	defer s.activeCalls.Delete(input.ContextId)

	start := time.Now()
	defer s.metrics.processCallTime.RecordSince(start)

	// execute
	logger.Info("processor executing contract")

	inputArgs := input.InputArgumentArray
	if inputArgs == nil {
		inputArgs = (&protocol.ArgumentArrayBuilder{}).Build()
	}

	functionNameForErrors := fmt.Sprintf("%s.%s", input.ContractName, input.MethodName)
	outputArgs, contractErr, err := s.processMethodCall(types.Context(input.ContextId), contractInstance, methodInfo, inputArgs, functionNameForErrors)
	if outputArgs == nil {
		outputArgs = (&protocol.ArgumentArrayBuilder{}).Build()
	}
	if err != nil {
		logger.Info("contract execution failed", log.Error(err))

		return &processor.ProcessCallOutput{
			OutputArgumentArray: s.createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_INPUT,
		}, err
	}

	// result
	callResult := protocol.EXECUTION_RESULT_SUCCESS
	if contractErr != nil {
		logger.Info("contract returned error", log.Error(contractErr))

		s.metrics.contractErrors.Inc()
		callResult = protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT
	}
	return &processor.ProcessCallOutput{
		OutputArgumentArray: outputArgs,
		CallResult:          callResult,
	}, contractErr
}

func (s *service) GetContractInfo(ctx context.Context, input *processor.GetContractInfoInput) (*processor.GetContractInfoOutput, error) {
	// retrieve code
	contractInfo, _, err := s.retrieveContract(input.ContractName)
	if err != nil {
		return nil, err
	}

	// result
	return &processor.GetContractInfoOutput{
		PermissionScope: contractInfo.Permission,
	}, nil
}

func (s *service) retrieveContract(contractName primitives.ContractName) (types.ContractInfo, types.Contract, error) {
	contractInfo, found := s.contracts[contractName]
	if !found {
		return types.ContractInfo{}, nil, errors.Errorf("native contract '%s' not found in repository", contractName)
	}
	return contractInfo, s.instances[contractName], nil
}

func (s *service) retrieveMethod(contractInfo types.ContractInfo, methodName primitives.MethodName, accessScope protocol.ExecutionAccessScope, permissionScope protocol.ExecutionPermissionScope) (types.MethodInfo, error) {
	methodInfo, found := contractInfo.Methods[methodName]
	if !found {
		return types.MethodInfo{}, errors.Errorf("method '%s' not found on contract '%s'", methodName, contractInfo.Name)
	}

	if !methodInfo.External && permissionScope != protocol.PERMISSION_SCOPE_SYSTEM {
		return types.MethodInfo{}, errors.Errorf("only system contracts can run method '%s'", methodName)
	}

	if methodInfo.Access == protocol.ACCESS_SCOPE_READ_WRITE && accessScope != protocol.ACCESS_SCOPE_READ_WRITE {
		return types.MethodInfo{}, errors.Errorf("method '%s' requires read-write access but the call is %s", methodName, accessScope)
	}

	return methodInfo, nil
}

func (s *service) contextOfCall(contextId processor.ExecutionContextId) context.Context {
	if ctx, ok := s.activeCalls.Load(contextId); ok {
		return ctx.(context.Context)
	}
	return context.Background()
}
