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
	"testing"

	"github.com/orbs-network/orbs-counter/config"
	"github.com/orbs-network/orbs-counter/instrumentation/metric"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter/test/with"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/stretchr/testify/require"
)

func TestStatePersistence_StartsEmptyInNewDirectory(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		dir := filepath.Join(t.TempDir(), "nested", "state")

		p, err := NewStatePersistence(config.ForFileSystemPersistenceTests(dir), harness.Logger, metric.NewRegistry())
		require.NoError(t, err)
		defer p.GracefulShutdown(context.Background())

		height, err := p.ReadMetadata()
		require.NoError(t, err)
		require.EqualValues(t, 0, height)

		_, ok, err := p.Read("Counter", "value")
		require.NoError(t, err)
		require.False(t, ok, "nothing was written yet")
	})
}

func TestStatePersistence_StateSurvivesReopen(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		conf := config.ForFileSystemPersistenceTests(t.TempDir())

		p, err := NewStatePersistence(conf, harness.Logger, metric.NewRegistry())
		require.NoError(t, err)
		require.NoError(t, p.Write(1, adapter.ChainState{"Counter": {"value": []byte{0x05, 0, 0, 0}}}))
		require.NoError(t, p.Write(2, adapter.ChainState{"Other": {"k": []byte("v")}}))
		before := p.Dump()
		p.GracefulShutdown(context.Background())

		reopened, err := NewStatePersistence(conf, harness.Logger, metric.NewRegistry())
		require.NoError(t, err)
		defer reopened.GracefulShutdown(context.Background())

		require.Equal(t, before, reopened.Dump(), "state should be reloaded from the snapshot")
		height, err := reopened.ReadMetadata()
		require.NoError(t, err)
		require.EqualValues(t, 2, height)

		value, ok, err := reopened.Read("Counter", "value")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte{0x05, 0, 0, 0}, value)
	})
}

func TestStatePersistence_WriteLeavesNoTemporaryFiles(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		dir := t.TempDir()
		p, err := NewStatePersistence(config.ForFileSystemPersistenceTests(dir), harness.Logger, metric.NewRegistry())
		require.NoError(t, err)
		defer p.GracefulShutdown(context.Background())

		for h := 1; h <= 3; h++ {
			require.NoError(t, p.Write(primitives.BlockHeight(h), adapter.ChainState{"Counter": {"value": []byte{byte(h)}}}))
		}

		files, err := ioutil.ReadDir(dir)
		require.NoError(t, err)
		var names []string
		for _, f := range files {
			names = append(names, f.Name())
		}
		require.ElementsMatch(t, []string{snapshotFilename, lockFilename}, names)
	})
}

func TestStatePersistence_FailedWriteLeavesStateUnchanged(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		dir := t.TempDir()
		p, err := NewStatePersistence(config.ForFileSystemPersistenceTests(dir), harness.Logger, metric.NewRegistry())
		require.NoError(t, err)
		defer p.GracefulShutdown(context.Background())

		require.NoError(t, p.Write(1, adapter.ChainState{"Counter": {"value": []byte{1}}}))
		require.NoError(t, os.RemoveAll(dir))

		require.Error(t, p.Write(2, adapter.ChainState{"Counter": {"value": []byte{2}}}), "snapshot directory is gone")

		height, err := p.ReadMetadata()
		require.NoError(t, err)
		require.EqualValues(t, 1, height, "height must not advance on a failed write")

		value, ok, err := p.Read("Counter", "value")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte{1}, value, "value of the failed write must not be readable")

		require.NoError(t, os.MkdirAll(dir, os.ModePerm))
		require.NoError(t, p.Write(2, adapter.ChainState{"Counter": {"value": []byte{2}}}), "retry at the same height succeeds once the directory is back")
		value, _, _ = p.Read("Counter", "value")
		require.Equal(t, []byte{2}, value)
	})
}

func TestStatePersistence_ReportsSizeOnDisk(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		dir := t.TempDir()
		p, err := NewStatePersistence(config.ForFileSystemPersistenceTests(dir), harness.Logger, metric.NewRegistry())
		require.NoError(t, err)
		defer p.GracefulShutdown(context.Background())

		require.NoError(t, p.Write(1, adapter.ChainState{"Counter": {"value": []byte{1}}}))

		info, err := os.Stat(filepath.Join(dir, snapshotFilename))
		require.NoError(t, err)
		require.EqualValues(t, info.Size(), p.metrics.sizeOnDisk.Value())
	})
}

func TestStatePersistence_FailsOnCorruptSnapshot(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		dir := t.TempDir()
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, snapshotFilename), []byte{0x01}, 0600))

		_, err := NewStatePersistence(config.ForFileSystemPersistenceTests(dir), harness.Logger, metric.NewRegistry())
		require.Error(t, err, "a corrupt snapshot must not be silently discarded")
	})
}

func TestStatePersistence_SecondInstanceOnSameDirectoryIsRejected(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		conf := config.ForFileSystemPersistenceTests(t.TempDir())

		p, err := NewStatePersistence(conf, harness.Logger, metric.NewRegistry())
		require.NoError(t, err)
		defer p.GracefulShutdown(context.Background())

		_, err = NewStatePersistence(conf, harness.Logger, metric.NewRegistry())
		require.Error(t, err, "the data directory is locked by the first instance")
	})
}
