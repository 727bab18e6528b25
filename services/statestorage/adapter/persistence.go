// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package adapter

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

// ChainState maps contract name to key to value. In a diff, an empty value deletes the key.
type ChainState map[primitives.ContractName]map[string][]byte

type StatePersistence interface {
	Write(height primitives.BlockHeight, diff ChainState) error
	Read(contract primitives.ContractName, key string) ([]byte, bool, error)
	ReadMetadata() (primitives.BlockHeight, error)
}

func IsZeroValue(value []byte) bool {
	return len(value) == 0
}

func (s ChainState) Merge(other ChainState) {
	for contract, records := range other {
		if _, ok := s[contract]; !ok {
			s[contract] = make(map[string][]byte)
		}
		for key, value := range records {
			s[contract][key] = value
		}
	}
}

func (s ChainState) NumberOfRecords() (n int) {
	for _, records := range s {
		n += len(records)
	}
	return
}
