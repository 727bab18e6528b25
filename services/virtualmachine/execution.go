// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"time"

	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-counter/crypto/hash"
	"github.com/orbs-network/orbs-counter/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter/services/processor"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

// SendTransaction runs a read-write call; on success its state writes are committed as the next revision
func (s *service) SendTransaction(ctx context.Context, input *TransactionInput) (*TransactionOutput, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "transaction rate limit wait aborted")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.VirtualMachineExecutionTimeout())
	defer cancel()

	start := time.Now()
	defer s.metrics.transactionTime.RecordSince(start)
	s.metrics.transactions.Measure(1)

	s.commitMutex.Lock()
	defer s.commitMutex.Unlock()

	output, executionContext, err := s.runMethod(ctx, input, protocol.ACCESS_SCOPE_READ_WRITE)
	if executionContext != nil {
		defer s.contexts.destroyExecutionContext(executionContext.contextId)
	}
	if err != nil {
		s.metrics.failedTransactions.Inc()
		return output, err
	}

	if err := ctx.Err(); err != nil {
		s.metrics.failedTransactions.Inc()
		return nil, errors.Wrapf(err, "transaction %s.%s did not complete in time", input.ContractName, input.MethodName)
	}

	committedHeight, err := s.commitTransientState(ctx, executionContext)
	if err != nil {
		s.metrics.failedTransactions.Inc()
		return nil, err
	}

	output.BlockHeight = committedHeight
	output.CallHash = callHash(input, committedHeight)
	return output, nil
}

// RunQuery runs a read-only call against the last committed revision
func (s *service) RunQuery(ctx context.Context, input *TransactionInput) (*TransactionOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.VirtualMachineExecutionTimeout())
	defer cancel()

	s.metrics.queries.Inc()

	s.commitMutex.RLock()
	defer s.commitMutex.RUnlock()

	output, executionContext, err := s.runMethod(ctx, input, protocol.ACCESS_SCOPE_READ_ONLY)
	if executionContext != nil {
		s.contexts.destroyExecutionContext(executionContext.contextId)
	}
	return output, err
}

func (s *service) runMethod(ctx context.Context, input *TransactionInput, accessScope protocol.ExecutionAccessScope) (*TransactionOutput, *executionContext, error) {
	logger := s.logger.WithTags(logfields.Contract(input.ContractName), logfields.Method(input.MethodName))

	lastCommittedHeight, err := s.stateStorage.GetLastCommittedHeight(ctx)
	if err != nil {
		return nil, nil, err
	}

	// create execution context
	_, executionContext := s.contexts.allocateExecutionContext(lastCommittedHeight, accessScope)

	failedOutput := func(result protocol.ExecutionResult, outputArgs *protocol.ArgumentArray) *TransactionOutput {
		if outputArgs == nil {
			outputArgs = (&protocol.ArgumentArrayBuilder{}).Build()
		}
		return &TransactionOutput{
			CallResult:          result,
			OutputArgumentArray: outputArgs,
			BlockHeight:         lastCommittedHeight,
			CallHash:            callHash(input, lastCommittedHeight),
		}
	}

	// get deployment info
	implementation, err := s.callGetImplementationOfDeploymentSystemContract(ctx, executionContext, input.ContractName)
	if err != nil {
		logger.Info("get deployment info for contract failed", log.Error(err))
		return failedOutput(protocol.EXECUTION_RESULT_ERROR_UNEXPECTED, nil), executionContext, err
	}
	if implementation == "" {
		err = errors.Errorf("contract '%s' is not deployed", input.ContractName)
		return failedOutput(protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED, nil), executionContext, err
	}

	// modify execution context
	executionContext.serviceStackPush(input.ContractName, protocol.PERMISSION_SCOPE_SERVICE)
	defer executionContext.serviceStackPop()

	// execute the call
	inputArgs := input.InputArgumentArray
	if inputArgs == nil {
		inputArgs = (&protocol.ArgumentArrayBuilder{}).Build()
	}
	output, err := s.processor.ProcessCall(ctx, &processor.ProcessCallInput{
		ContextId:              executionContext.contextId,
		ContractName:           implementation,
		MethodName:             input.MethodName,
		InputArgumentArray:     inputArgs,
		AccessScope:            accessScope,
		CallingPermissionScope: protocol.PERMISSION_SCOPE_SERVICE,
	})
	if err != nil {
		if output == nil {
			return failedOutput(protocol.EXECUTION_RESULT_ERROR_UNEXPECTED, nil), executionContext, err
		}
		logger.Info("transaction execution failed", log.Stringable("result", output.CallResult), log.Error(err))
		return failedOutput(output.CallResult, output.OutputArgumentArray), executionContext, err
	}

	return &TransactionOutput{
		CallResult:          output.CallResult,
		OutputArgumentArray: output.OutputArgumentArray,
		BlockHeight:         lastCommittedHeight,
		CallHash:            callHash(input, lastCommittedHeight),
	}, executionContext, nil
}

// commitTransientState commits the context's writes as the next revision; callers hold commitMutex
func (s *service) commitTransientState(ctx context.Context, executionContext *executionContext) (primitives.BlockHeight, error) {
	nextHeight := executionContext.blockHeight + 1
	diff := executionContext.transientState.toChainState()

	if err := s.stateStorage.CommitStateDiff(ctx, nextHeight, diff); err != nil {
		return 0, errors.Wrapf(err, "failed to commit state at height %d", nextHeight)
	}

	return nextHeight, nil
}

func callHash(input *TransactionInput, height primitives.BlockHeight) primitives.Keccak256 {
	heightBytes := make([]byte, 8)
	membuffers.WriteUint64(heightBytes, uint64(height))

	var rawArgs []byte
	if input.InputArgumentArray != nil {
		rawArgs = input.InputArgumentArray.Raw()
	}

	return hash.CalcKeccak256(lengthPrefixed([]byte(input.ContractName)), lengthPrefixed([]byte(input.MethodName)), lengthPrefixed(rawArgs), heightBytes)
}

func lengthPrefixed(field []byte) []byte {
	out := make([]byte, 4+len(field))
	membuffers.WriteUint32(out, uint32(len(field)))
	copy(out[4:], field)
	return out
}
