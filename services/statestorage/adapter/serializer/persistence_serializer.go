// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package serializer

import (
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter/memory"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

const SNAPSHOT_FORMAT_VERSION = 1

type StatePersistenceSerializer interface {
	adapter.StatePersistence
	Dump() ([]byte, error)
}

type statePersistenceSerializer struct {
	*memory.InMemoryStatePersistence
}

func NewStatePersistenceSerializer(persistence *memory.InMemoryStatePersistence) StatePersistenceSerializer {
	return &statePersistenceSerializer{
		InMemoryStatePersistence: persistence,
	}
}

// Dump encodes the full state and its height as a single membuffers snapshot
func (s *statePersistenceSerializer) Dump() ([]byte, error) {
	snapshot := &SerializedStateSnapshotBuilder{
		FormatVersion: SNAPSHOT_FORMAT_VERSION,
	}

	snapshot.Height = s.Each(func(contract primitives.ContractName, key string, value []byte) {
		snapshot.Entries = append(snapshot.Entries, &SerializedContractKeyValueEntryBuilder{
			ContractName: contract,
			Key:          []byte(key),
			Value:        value,
		})
	})

	built := snapshot.Build()
	if built == nil {
		return nil, errors.Errorf("failed building state snapshot of %d entries at height %d", len(snapshot.Entries), snapshot.Height)
	}

	return built.Raw(), nil
}
