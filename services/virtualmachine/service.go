// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"sync"

	"github.com/orbs-network/orbs-counter/config"
	"github.com/orbs-network/orbs-counter/instrumentation/metric"
	"github.com/orbs-network/orbs-counter/services/processor"
	"github.com/orbs-network/orbs-counter/services/statestorage"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var LogTag = log.Service("virtual-machine")

const SDK_OPERATION_NAME_STATE = "Sdk.State"

type VirtualMachine interface {
	DeployContract(ctx context.Context, input *DeployContractInput) (*DeployContractOutput, error)
	SendTransaction(ctx context.Context, input *TransactionInput) (*TransactionOutput, error)
	RunQuery(ctx context.Context, input *TransactionInput) (*TransactionOutput, error)
	processor.ContractSdkCallHandler
}

type DeployContractInput struct {
	ContractName   primitives.ContractName
	Implementation primitives.ContractName
	// empty runs _init; otherwise the arguments are passed to _initWithValue
	InitArgumentArray *protocol.ArgumentArray
}

type DeployContractOutput struct {
	BlockHeight primitives.BlockHeight
}

type TransactionInput struct {
	ContractName       primitives.ContractName
	MethodName         primitives.MethodName
	InputArgumentArray *protocol.ArgumentArray
}

type TransactionOutput struct {
	CallResult          protocol.ExecutionResult
	OutputArgumentArray *protocol.ArgumentArray
	// the revision the call was committed as, or read from for queries and failed transactions
	BlockHeight primitives.BlockHeight
	CallHash    primitives.Keccak256
}

type service struct {
	config       config.VirtualMachineConfig
	logger       log.Logger
	stateStorage statestorage.StateStorage
	processor    processor.Processor
	contexts     *executionContextProvider
	limiter      *rate.Limiter

	commitMutex sync.RWMutex

	metrics *metrics
}

type metrics struct {
	transactions       *metric.Rate
	failedTransactions *metric.Gauge
	queries            *metric.Gauge
	deployments        *metric.Gauge
	transactionTime    *metric.Histogram
}

func getMetrics(m metric.Factory, conf config.VirtualMachineConfig) *metrics {
	return &metrics{
		transactions:       m.NewRate("VirtualMachine.Transactions.Rate"),
		failedTransactions: m.NewGauge("VirtualMachine.FailedTransactions.Count"),
		queries:            m.NewGauge("VirtualMachine.Queries.Count"),
		deployments:        m.NewGauge("VirtualMachine.Deployments.Count"),
		transactionTime:    m.NewLatency("VirtualMachine.TransactionTime.Millis", conf.VirtualMachineExecutionTimeout()),
	}
}

func NewVirtualMachine(
	conf config.VirtualMachineConfig,
	stateStorage statestorage.StateStorage,
	nativeProcessor processor.Processor,
	parentLogger log.Logger,
	metricFactory metric.Factory,
) VirtualMachine {

	s := &service{
		config:       conf,
		logger:       parentLogger.WithTags(LogTag),
		stateStorage: stateStorage,
		processor:    nativeProcessor,
		contexts:     newExecutionContextProvider(),
		metrics:      getMetrics(metricFactory, conf),
	}

	if tps := conf.VirtualMachineMaxTransactionsPerSecond(); tps > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(tps), int(tps))
	}

	nativeProcessor.RegisterContractSdkCallHandler(s)

	return s
}

func (s *service) HandleSdkCall(ctx context.Context, input *processor.HandleSdkCallInput) (*processor.HandleSdkCallOutput, error) {
	executionContext := s.contexts.loadExecutionContext(input.ContextId)
	if executionContext == nil {
		return nil, errors.Errorf("invalid execution context %d", input.ContextId)
	}

	var output *protocol.ArgumentArray
	var err error
	switch input.OperationName {
	case SDK_OPERATION_NAME_STATE:
		output, err = s.handleSdkStateCall(ctx, executionContext, input.MethodName, input.InputArguments)
	default:
		return nil, errors.Errorf("unknown SDK call operation: %s", input.OperationName)
	}

	if err != nil {
		return nil, err
	}

	return &processor.HandleSdkCallOutput{
		OutputArguments: output,
	}, nil
}
