// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package statestorage

import (
	"context"
	"sync"

	"github.com/orbs-network/orbs-counter/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

var LogTag = log.Service("state-storage")

var ErrOutOfOrderCommit = errors.New("state diff committed out of order")

type StateStorage interface {
	CommitStateDiff(ctx context.Context, height primitives.BlockHeight, diff adapter.ChainState) error
	ReadKeys(ctx context.Context, contract primitives.ContractName, keys []string) (map[string][]byte, error)
	GetLastCommittedHeight(ctx context.Context) (primitives.BlockHeight, error)
}

type service struct {
	logger      log.Logger
	persistence adapter.StatePersistence

	mutex               sync.RWMutex
	lastCommittedHeight primitives.BlockHeight
}

func NewStateStorage(persistence adapter.StatePersistence, parent log.Logger) (StateStorage, error) {
	logger := parent.WithTags(LogTag)

	height, err := persistence.ReadMetadata()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read last committed height from persistence")
	}

	logger.Info("state storage started", logfields.BlockHeight(height))

	return &service{
		logger:              logger,
		persistence:         persistence,
		lastCommittedHeight: height,
	}, nil
}

// CommitStateDiff applies diff as revision height, which must directly follow the last committed one
func (s *service) CommitStateDiff(ctx context.Context, height primitives.BlockHeight, diff adapter.ChainState) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if expected := s.lastCommittedHeight + 1; height != expected {
		return errors.Wrapf(ErrOutOfOrderCommit, "expected height %d, got %d", expected, height)
	}

	if err := s.persistence.Write(height, diff); err != nil {
		return errors.Wrapf(err, "failed to persist state diff at height %d", height)
	}
	s.lastCommittedHeight = height

	s.logger.Info("committed state diff", logfields.BlockHeight(height), log.Int("records", diff.NumberOfRecords()))
	return nil
}

// ReadKeys returns the committed value of every key that exists; absent keys are omitted
func (s *service) ReadKeys(ctx context.Context, contract primitives.ContractName, keys []string) (map[string][]byte, error) {
	if contract == "" {
		return nil, errors.New("missing contract name")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := make(map[string][]byte, len(keys))
	for _, key := range keys {
		value, ok, err := s.persistence.Read(contract, key)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read key %x of contract %s", key, contract)
		}
		if ok {
			records[key] = value
		}
	}
	return records, nil
}

func (s *service) GetLastCommittedHeight(ctx context.Context) (primitives.BlockHeight, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.lastCommittedHeight, nil
}
