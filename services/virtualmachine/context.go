// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"sync"

	"github.com/orbs-network/orbs-counter/services/processor"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

type executionContextProvider struct {
	mutex         sync.RWMutex
	lastContextId processor.ExecutionContextId
	contexts      map[processor.ExecutionContextId]*executionContext
}

type executionContext struct {
	contextId      processor.ExecutionContextId
	blockHeight    primitives.BlockHeight
	accessScope    protocol.ExecutionAccessScope
	serviceStack   []serviceStackEntry
	transientState *transientState
}

type serviceStackEntry struct {
	name       primitives.ContractName
	permission protocol.ExecutionPermissionScope
}

func newExecutionContextProvider() *executionContextProvider {
	return &executionContextProvider{
		contexts: make(map[processor.ExecutionContextId]*executionContext),
	}
}

// allocateExecutionContext creates the context of one call; blockHeight is the last committed revision it reads from
func (cp *executionContextProvider) allocateExecutionContext(blockHeight primitives.BlockHeight, accessScope protocol.ExecutionAccessScope) (processor.ExecutionContextId, *executionContext) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	// ids wrap around; skip any still in use
	for {
		cp.lastContextId++
		if _, taken := cp.contexts[cp.lastContextId]; !taken {
			break
		}
	}

	newContext := &executionContext{
		contextId:      cp.lastContextId,
		blockHeight:    blockHeight,
		accessScope:    accessScope,
		transientState: newTransientState(),
	}

	cp.contexts[newContext.contextId] = newContext
	return newContext.contextId, newContext
}

func (cp *executionContextProvider) destroyExecutionContext(contextId processor.ExecutionContextId) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	delete(cp.contexts, contextId)
}

func (cp *executionContextProvider) loadExecutionContext(contextId processor.ExecutionContextId) *executionContext {
	cp.mutex.RLock()
	defer cp.mutex.RUnlock()

	return cp.contexts[contextId]
}

func (cp *executionContextProvider) activeCount() int {
	cp.mutex.RLock()
	defer cp.mutex.RUnlock()

	return len(cp.contexts)
}

func (c *executionContext) serviceStackTop() (primitives.ContractName, protocol.ExecutionPermissionScope) {
	if len(c.serviceStack) == 0 {
		return "", protocol.PERMISSION_SCOPE_SERVICE
	}
	top := c.serviceStack[len(c.serviceStack)-1]
	return top.name, top.permission
}

func (c *executionContext) serviceStackPush(contractName primitives.ContractName, permissionScope protocol.ExecutionPermissionScope) {
	c.serviceStack = append(c.serviceStack, serviceStackEntry{name: contractName, permission: permissionScope})
}

func (c *executionContext) serviceStackPop() {
	if len(c.serviceStack) == 0 {
		return
	}
	c.serviceStack = c.serviceStack[0 : len(c.serviceStack)-1]
}
