// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type transientStateRecord struct {
	value   []byte
	isDirty bool
}

// transientState holds the reads and writes of one call until it is committed or dropped
type transientState struct {
	contracts         map[primitives.ContractName]map[string]*transientStateRecord
	contractSortOrder []primitives.ContractName
}

func newTransientState() *transientState {
	return &transientState{
		contracts: make(map[primitives.ContractName]map[string]*transientStateRecord),
	}
}

func (t *transientState) getValue(contractName primitives.ContractName, key []byte) ([]byte, bool) {
	records, found := t.contracts[contractName]
	if !found {
		return nil, false
	}
	record, found := records[string(key)]
	if !found {
		return nil, false
	}
	return record.value, true
}

// setValue caches a committed read when isDirty is false and records a pending write when it is true
func (t *transientState) setValue(contractName primitives.ContractName, key []byte, value []byte, isDirty bool) {
	records, found := t.contracts[contractName]
	if !found {
		records = make(map[string]*transientStateRecord)
		t.contracts[contractName] = records
		t.contractSortOrder = append(t.contractSortOrder, contractName)
	}

	records[string(key)] = &transientStateRecord{
		value:   value,
		isDirty: isDirty,
	}
}

func (t *transientState) forDirty(contractName primitives.ContractName, f func(key []byte, value []byte)) {
	records, found := t.contracts[contractName]
	if !found {
		return
	}
	for key, record := range records {
		if record.isDirty {
			f([]byte(key), record.value)
		}
	}
}

func (t *transientState) toChainState() adapter.ChainState {
	diff := adapter.ChainState{}
	for _, contractName := range t.contractSortOrder {
		t.forDirty(contractName, func(key []byte, value []byte) {
			if _, found := diff[contractName]; !found {
				diff[contractName] = map[string][]byte{}
			}
			diff[contractName][string(key)] = value
		})
	}
	return diff
}
