// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/orbs-network/orbs-counter/config"
	"github.com/orbs-network/orbs-counter/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter/instrumentation/metric"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type metrics struct {
	writeTime *metric.Histogram
	readTime  *metric.Histogram
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		writeTime: m.NewLatency("StateStorage.RedisWrite.Duration.Millis", 30*time.Second),
		readTime:  m.NewLatency("StateStorage.RedisRead.Duration.Millis", 30*time.Second),
	}
}

// StatePersistence stores each contract's records in its own redis hash; a write is applied in a single MULTI/EXEC
type StatePersistence struct {
	config  config.RedisPersistenceConfig
	client  redis.UniversalClient
	metrics *metrics
	logger  log.Logger
}

func NewStatePersistence(conf config.RedisPersistenceConfig, parent log.Logger, metricFactory metric.Factory) (*StatePersistence, error) {
	logger := parent.WithTags(log.String("adapter", "state-storage"), log.String("redis", conf.StateStorageRedisAddress()))

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{conf.StateStorageRedisAddress()},
		DialTimeout:  conf.StateStorageRedisTimeout(),
		ReadTimeout:  conf.StateStorageRedisTimeout(),
		WriteTimeout: conf.StateStorageRedisTimeout(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), conf.StateStorageRedisTimeout())
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "failed to reach redis at %s", conf.StateStorageRedisAddress())
	}

	logger.Info("connected to redis")

	return &StatePersistence{
		config:  conf,
		client:  client,
		metrics: newMetrics(metricFactory),
		logger:  logger,
	}, nil
}

func (r *StatePersistence) Write(height primitives.BlockHeight, diff adapter.ChainState) error {
	start := time.Now()
	defer r.metrics.writeTime.RecordSince(start)

	ctx, cancel := r.withTimeout()
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for contract, records := range diff {
			for key, value := range records {
				if adapter.IsZeroValue(value) {
					pipe.HDel(ctx, r.contractKey(contract), key)
				} else {
					pipe.HSet(ctx, r.contractKey(contract), key, value)
				}
			}
		}
		pipe.Set(ctx, r.heightKey(), uint64(height), 0)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to write state diff of %d records at height %d", diff.NumberOfRecords(), height)
	}

	r.logger.Info("wrote state diff", logfields.BlockHeight(height), log.Int("records", diff.NumberOfRecords()))
	return nil
}

func (r *StatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	start := time.Now()
	defer r.metrics.readTime.RecordSince(start)

	ctx, cancel := r.withTimeout()
	defer cancel()

	value, err := r.client.HGet(ctx, r.contractKey(contract), key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key %s of contract %s", key, contract)
	}
	return value, true, nil
}

func (r *StatePersistence) ReadMetadata() (primitives.BlockHeight, error) {
	ctx, cancel := r.withTimeout()
	defer cancel()

	height, err := r.client.Get(ctx, r.heightKey()).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to read last committed height")
	}
	return primitives.BlockHeight(height), nil
}

func (r *StatePersistence) GracefulShutdown(shutdownContext context.Context) {
	if err := r.client.Close(); err != nil {
		r.logger.Error("failed to close redis client", log.Error(err))
		return
	}
	r.logger.Info("closed redis client")
}

func (r *StatePersistence) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.config.StateStorageRedisTimeout())
}

func (r *StatePersistence) contractKey(contract primitives.ContractName) string {
	return fmt.Sprintf("%s:state:%s", r.config.StateStorageRedisKeyPrefix(), contract)
}

func (r *StatePersistence) heightKey() string {
	return fmt.Sprintf("%s:height", r.config.StateStorageRedisKeyPrefix())
}
