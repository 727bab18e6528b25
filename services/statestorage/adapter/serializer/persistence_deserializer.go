// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package serializer

import (
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter/memory"
	"github.com/pkg/errors"
)

type StatePersistenceDeserializer interface {
	Deserialize([]byte) error
}

type statePersistenceDeserializer struct {
	*memory.InMemoryStatePersistence
}

func NewStatePersistenceDeserializer(persistence *memory.InMemoryStatePersistence) StatePersistenceDeserializer {
	return &statePersistenceDeserializer{
		InMemoryStatePersistence: persistence,
	}
}

// Deserialize loads a snapshot produced by Dump into the wrapped persistence in one write
func (s *statePersistenceDeserializer) Deserialize(raw []byte) error {
	reader := SerializedStateSnapshotReader(raw)
	if !reader.IsValid() {
		return errors.New("impossible to deserialize state: invalid input")
	}

	if reader.FormatVersion() != SNAPSHOT_FORMAT_VERSION {
		return errors.Errorf("impossible to deserialize state: unsupported snapshot format version %d", reader.FormatVersion())
	}

	diff := adapter.ChainState{}
	for i := reader.EntriesIterator(); i.HasNext(); {
		entry := i.NextEntries()
		if _, ok := diff[entry.ContractName()]; !ok {
			diff[entry.ContractName()] = map[string][]byte{}
		}
		diff[entry.ContractName()][string(entry.Key())] = entry.Value()
	}

	return s.Write(reader.Height(), diff)
}
