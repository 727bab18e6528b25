// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/orbs-network/orbs-counter/instrumentation/metric"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type metrics struct {
	numberOfKeys      *metric.Gauge
	numberOfContracts *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		numberOfKeys:      m.NewGauge("StateStoragePersistence.TotalNumberOfKeys.Count"),
		numberOfContracts: m.NewGauge("StateStoragePersistence.TotalNumberOfContracts.Count"),
	}
}

type InMemoryStatePersistence struct {
	metrics   *metrics
	mutex     sync.RWMutex
	fullState adapter.ChainState
	height    primitives.BlockHeight
}

func NewStatePersistence(metricFactory metric.Factory) *InMemoryStatePersistence {
	return &InMemoryStatePersistence{
		metrics:   newMetrics(metricFactory),
		fullState: adapter.ChainState{},
		height:    0,
	}
}

func (sp *InMemoryStatePersistence) reportSize() {
	nContracts := 0
	nKeys := 0
	for _, records := range sp.fullState {
		if len(records) == 0 {
			continue
		}
		nContracts++
		nKeys = nKeys + len(records)
	}
	sp.metrics.numberOfKeys.Update(int64(nKeys))
	sp.metrics.numberOfContracts.Update(int64(nContracts))
}

func (sp *InMemoryStatePersistence) Write(height primitives.BlockHeight, diff adapter.ChainState) error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	sp.height = height

	for contract, records := range diff {
		for key, value := range records {
			sp._writeOneRecord(contract, key, value)
		}
	}
	sp.reportSize()
	return nil
}

// WithDiff returns a detached copy of the state with diff applied at height; the receiver is left untouched
func (sp *InMemoryStatePersistence) WithDiff(height primitives.BlockHeight, diff adapter.ChainState) *InMemoryStatePersistence {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	staged := &InMemoryStatePersistence{
		metrics:   sp.metrics,
		fullState: adapter.ChainState{},
		height:    height,
	}
	staged.fullState.Merge(sp.fullState)

	for contract, records := range diff {
		for key, value := range records {
			staged._writeOneRecord(contract, key, value)
		}
	}
	return staged
}

func (sp *InMemoryStatePersistence) _writeOneRecord(c primitives.ContractName, key string, value []byte) {
	if adapter.IsZeroValue(value) {
		if records, ok := sp.fullState[c]; ok {
			delete(records, key)
		}
		return
	}

	if _, ok := sp.fullState[c]; !ok {
		sp.fullState[c] = map[string][]byte{}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	sp.fullState[c][key] = stored
}

func (sp *InMemoryStatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	record, ok := sp.fullState[contract][key]
	return record, ok, nil
}

func (sp *InMemoryStatePersistence) ReadMetadata() (primitives.BlockHeight, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	return sp.height, nil
}

// Each visits every stored record under the read lock, contracts and keys in sorted order
func (sp *InMemoryStatePersistence) Each(f func(contract primitives.ContractName, key string, value []byte)) primitives.BlockHeight {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	for _, contract := range sp.sortedContracts() {
		for _, key := range sortedKeys(sp.fullState[contract]) {
			f(contract, key, sp.fullState[contract][key])
		}
	}
	return sp.height
}

func (sp *InMemoryStatePersistence) Dump() string {
	output := strings.Builder{}
	output.WriteString("{")
	currentContract := primitives.ContractName("")
	height := sp.Each(func(contract primitives.ContractName, key string, value []byte) {
		if contract != currentContract {
			if currentContract != "" {
				output.WriteString("},")
			}
			output.WriteString(string(contract) + ":{")
			currentContract = contract
		}
		output.WriteString(fmt.Sprintf("%x:%x,", key, value))
	})
	if currentContract != "" {
		output.WriteString("},")
	}
	output.WriteString("}")
	return fmt.Sprintf("{height: %v, data: %s}", height, output.String())
}

func (sp *InMemoryStatePersistence) sortedContracts() []primitives.ContractName {
	contracts := make([]primitives.ContractName, 0, len(sp.fullState))
	for c := range sp.fullState {
		contracts = append(contracts, c)
	}
	sort.Slice(contracts, func(i, j int) bool { return contracts[i] < contracts[j] })
	return contracts
}

func sortedKeys(records map[string][]byte) []string {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
