// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package filesystem

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/orbs-network/orbs-counter/config"
	"github.com/orbs-network/orbs-counter/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter/instrumentation/metric"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter/memory"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter/serializer"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

const (
	snapshotFilename = "state.snapshot"
	lockFilename     = "state.lock"
)

type metrics struct {
	sizeOnDisk *metric.Gauge
	writeTime  *metric.Histogram
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		sizeOnDisk: m.NewGauge("StateStorage.FileSystemSize.Bytes"),
		writeTime:  m.NewLatency("StateStorage.FileSystemWrite.Duration.Millis", 30*time.Second),
	}
}

// StatePersistence keeps the full state in memory and mirrors it to a compressed snapshot file replaced atomically on every write
type StatePersistence struct {
	config   config.StateStorageConfig
	metrics  *metrics
	logger   log.Logger
	lockFile *os.File

	writeLock sync.Mutex
	state     *memory.InMemoryStatePersistence
}

func NewStatePersistence(conf config.StateStorageConfig, parent log.Logger, metricFactory metric.Factory) (*StatePersistence, error) {
	logger := parent.WithTags(log.String("adapter", "state-storage"), log.String("dir", conf.StateStorageFileSystemDataDir()))

	if err := os.MkdirAll(conf.StateStorageFileSystemDataDir(), os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "failed to verify data directory exists %s", conf.StateStorageFileSystemDataDir())
	}

	lockFile, err := os.OpenFile(lockFileName(conf), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open state lock file %s", lockFileName(conf))
	}

	if err := advisoryLockExclusive(lockFile); err != nil {
		closeSilently(lockFile, logger)
		return nil, errors.Wrapf(err, "failed to obtain exclusive lock on %s", lockFileName(conf))
	}

	p := &StatePersistence{
		config:   conf,
		metrics:  newMetrics(metricFactory),
		logger:   logger,
		lockFile: lockFile,
		state:    memory.NewStatePersistence(metricFactory),
	}

	if err := p.load(); err != nil {
		closeSilently(lockFile, logger)
		return nil, err
	}

	return p, nil
}

func (f *StatePersistence) load() error {
	compressed, err := ioutil.ReadFile(snapshotFileName(f.config))
	if os.IsNotExist(err) {
		f.logger.Info("no state snapshot found, starting from empty state")
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read state snapshot %s", snapshotFileName(f.config))
	}

	raw, err := decompressSnapshot(compressed)
	if err != nil {
		return errors.Wrapf(err, "failed to load state snapshot %s", snapshotFileName(f.config))
	}

	if err := serializer.NewStatePersistenceDeserializer(f.state).Deserialize(raw); err != nil {
		return errors.Wrapf(err, "failed to load state snapshot %s", snapshotFileName(f.config))
	}

	height, _ := f.state.ReadMetadata()
	f.metrics.sizeOnDisk.Update(int64(len(compressed)))
	f.logger.Info("loaded state snapshot", logfields.BlockHeight(height), log.Int("bytes", len(compressed)))
	return nil
}

func (f *StatePersistence) Write(height primitives.BlockHeight, diff adapter.ChainState) error {
	f.writeLock.Lock()
	defer f.writeLock.Unlock()

	start := time.Now()
	defer f.metrics.writeTime.RecordSince(start)

	raw, err := serializer.NewStatePersistenceSerializer(f.state.WithDiff(height, diff)).Dump()
	if err != nil {
		return errors.Wrapf(err, "failed to serialize state at height %d", height)
	}

	compressed, err := compressSnapshot(raw)
	if err != nil {
		return err
	}

	// memory state only moves forward once the snapshot is on disk
	if err := f.replaceSnapshot(compressed); err != nil {
		return err
	}

	f.metrics.sizeOnDisk.Update(int64(len(compressed)))
	return f.state.Write(height, diff)
}

func (f *StatePersistence) replaceSnapshot(raw []byte) error {
	tmp, err := ioutil.TempFile(f.config.StateStorageFileSystemDataDir(), snapshotFilename+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary snapshot file")
	}

	if _, err := tmp.Write(raw); err != nil {
		closeSilently(tmp, f.logger)
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to write temporary snapshot file %s", tmp.Name())
	}

	if err := tmp.Sync(); err != nil {
		closeSilently(tmp, f.logger)
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to flush temporary snapshot file %s", tmp.Name())
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to close temporary snapshot file %s", tmp.Name())
	}

	if err := os.Rename(tmp.Name(), snapshotFileName(f.config)); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to replace state snapshot %s", snapshotFileName(f.config))
	}

	return nil
}

func (f *StatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	return f.state.Read(contract, key)
}

func (f *StatePersistence) ReadMetadata() (primitives.BlockHeight, error) {
	return f.state.ReadMetadata()
}

func (f *StatePersistence) Dump() string {
	return f.state.Dump()
}

func (f *StatePersistence) GracefulShutdown(shutdownContext context.Context) {
	logger := f.logger.WithTags(log.String("filename", lockFileName(f.config)))
	if err := f.lockFile.Close(); err != nil {
		logger.Error("failed to release state lock file", log.Error(err))
		return
	}
	logger.Info("released state lock file")
}

func advisoryLockExclusive(file *os.File) error {
	return syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

func snapshotFileName(conf config.StateStorageConfig) string {
	return filepath.Join(conf.StateStorageFileSystemDataDir(), snapshotFilename)
}

func lockFileName(conf config.StateStorageConfig) string {
	return filepath.Join(conf.StateStorageFileSystemDataDir(), lockFilename)
}

func closeSilently(file *os.File, logger log.Logger) {
	err := file.Close()
	if err != nil {
		logger.Error("failed to close file", log.Error(err), log.String("filename", file.Name()))
	}
}
