// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package processor

import (
	"context"

	"github.com/orbs-network/go-mock"
)

type MockProcessor struct {
	mock.Mock
}

func (s *MockProcessor) ProcessCall(ctx context.Context, input *ProcessCallInput) (*ProcessCallOutput, error) {
	ret := s.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*ProcessCallOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (s *MockProcessor) GetContractInfo(ctx context.Context, input *GetContractInfoInput) (*GetContractInfoOutput, error) {
	ret := s.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*GetContractInfoOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (s *MockProcessor) RegisterContractSdkCallHandler(handler ContractSdkCallHandler) {
	s.Called(handler)
}

type MockContractSdkCallHandler struct {
	mock.Mock
}

func (s *MockContractSdkCallHandler) HandleSdkCall(ctx context.Context, input *HandleSdkCallInput) (*HandleSdkCallOutput, error) {
	ret := s.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*HandleSdkCallOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}
