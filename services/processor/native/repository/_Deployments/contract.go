// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package deployments

import (
	"github.com/orbs-network/orbs-counter/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

var CONTRACT = types.ContractInfo{
	Name:       "_Deployments",
	Permission: protocol.PERMISSION_SCOPE_SYSTEM,
	Methods: map[primitives.MethodName]types.MethodInfo{
		METHOD_GET_IMPLEMENTATION.Name: METHOD_GET_IMPLEMENTATION,
		METHOD_DEPLOY_SERVICE.Name:     METHOD_DEPLOY_SERVICE,
	},
	InitSingleton: newContract,
}

var ErrAlreadyDeployed = errors.New("contract already deployed")

func newContract(base *types.BaseContract) types.Contract {
	return &contract{base}
}

type contract struct{ *types.BaseContract }

func implementationKey(serviceName string) string {
	return serviceName + ".Implementation"
}

///////////////////////////////////////////////////////////////////////////

var METHOD_GET_IMPLEMENTATION = types.MethodInfo{
	Name:           "getImplementation",
	External:       false,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).getImplementation,
}

// returns an empty string for a service that was never deployed
func (c *contract) getImplementation(ctx types.Context, serviceName string) (string, error) {
	return c.State.ReadStringByKey(ctx, implementationKey(serviceName))
}

///////////////////////////////////////////////////////////////////////////

var METHOD_DEPLOY_SERVICE = types.MethodInfo{
	Name:           "deployService",
	External:       false,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).deployService,
}

func (c *contract) deployService(ctx types.Context, serviceName string, implementation string) error {
	if serviceName == "" || implementation == "" {
		return errors.New("service name and implementation are required")
	}

	existing, err := c.getImplementation(ctx, serviceName)
	if err != nil {
		return err
	}
	if existing != "" {
		return ErrAlreadyDeployed
	}

	err = c.State.WriteStringByKey(ctx, implementationKey(serviceName), implementation)
	if err != nil {
		return errors.Wrap(err, "failed writing Implementation key")
	}

	return nil
}
