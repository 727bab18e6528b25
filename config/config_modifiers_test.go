// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig_FillEmptyConfig(t *testing.T) {
	// setup
	cfg := emptyConfig()
	// execute
	err := mergeTest(cfg)
	// assert
	require.NoError(t, err)
	checkMerged(t, cfg)
}

func TestConfig_OverrideProductionConfig(t *testing.T) {
	// setup
	cfg := ForProduction("/")
	// execute
	err := mergeTest(cfg)
	// assert
	require.NoError(t, err)
	checkMerged(t, cfg)
}

func TestConfig_ParsesZeroValues(t *testing.T) {
	// setup
	cfg := emptyConfig()
	require.NoError(t, mergeTest(cfg))
	// execute
	err := modifyFromJson(cfg, `
{
	"state-storage-redis-timeout": "0s",
	"state-storage-redis-address": ""
}`)
	// assert
	require.NoError(t, err)
	require.EqualValues(t, 0, cfg.StateStorageRedisTimeout())
	require.EqualValues(t, "", cfg.StateStorageRedisAddress())
}

func TestConfig_ParsesYaml(t *testing.T) {
	cfg := emptyConfig()
	err := modifyFromYaml(cfg, `
state-storage-persistence: redis
state-storage-redis-address: 10.0.0.5:6379
state-storage-redis-timeout: 250ms
metrics-report-interval: 1m
`)

	require.NoError(t, err)
	require.EqualValues(t, PERSISTENCE_REDIS, cfg.StateStoragePersistence())
	require.EqualValues(t, "10.0.0.5:6379", cfg.StateStorageRedisAddress())
	require.EqualValues(t, 250*time.Millisecond, cfg.StateStorageRedisTimeout())
	require.EqualValues(t, time.Minute, cfg.MetricsReportInterval())
}

func TestConfig_RejectsNegativeNumbers(t *testing.T) {
	cfg := emptyConfig()
	err := modifyFromJson(cfg, `{"some-number": -3}`)
	require.Error(t, err, "negative numbers cannot be stored as uint32")
}

func TestConfig_RejectsNumbersThatAreNotUint32(t *testing.T) {
	for _, source := range []string{
		`{"virtual-machine-max-transactions-per-second": 1.5}`,
		`{"virtual-machine-max-transactions-per-second": 4294967296}`,
		`{"virtual-machine-max-transactions-per-second": 1e20}`,
	} {
		require.Error(t, modifyFromJson(emptyConfig(), source), "should reject %s", source)
	}

	cfg := emptyConfig()
	require.NoError(t, modifyFromJson(cfg, `{"virtual-machine-max-transactions-per-second": 4294967295}`))
	require.EqualValues(t, uint32(4294967295), cfg.VirtualMachineMaxTransactionsPerSecond())
}

func TestConfig_RejectsMalformedJson(t *testing.T) {
	cfg := emptyConfig()
	require.Error(t, modifyFromJson(cfg, `{"state-storage-persistence": `))
}

func TestGetNodeConfigFromFiles_LaterFilesOverrideEarlierOnes(t *testing.T) {
	dir := t.TempDir()
	jsonFile := filepath.Join(dir, "node.json")
	yamlFile := filepath.Join(dir, "override.yaml")
	require.NoError(t, ioutil.WriteFile(jsonFile, []byte(`{"state-storage-persistence": "memory", "node-name": "from-json"}`), 0644))
	require.NoError(t, ioutil.WriteFile(yamlFile, []byte("node-name: from-yaml\n"), 0644))

	cfg, err := GetNodeConfigFromFiles(FilesPaths{jsonFile, yamlFile})

	require.NoError(t, err)
	require.EqualValues(t, PERSISTENCE_MEMORY, cfg.StateStoragePersistence())
	require.EqualValues(t, "from-yaml", cfg.NodeName())
	require.EqualValues(t, 30*time.Second, cfg.MetricsReportInterval(), "values absent from files should keep production defaults")
}

func TestGetNodeConfigFromFiles_FailsOnMissingFile(t *testing.T) {
	_, err := GetNodeConfigFromFiles(FilesPaths{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
}

func mergeTest(cfg mutableNodeConfig) error {
	return modifyFromJson(cfg, `
{
	"state-storage-persistence": "redis",
	"state-storage-redis-address": "172.31.1.100:6379",
	"state-storage-redis-timeout": "10m",
	"state-storage-redis-key-prefix": "merged",
	"node-name": "merged-node"
}`)
}

func checkMerged(t *testing.T, cfg mutableNodeConfig) {
	require.EqualValues(t, PERSISTENCE_REDIS, cfg.StateStoragePersistence())
	require.EqualValues(t, "172.31.1.100:6379", cfg.StateStorageRedisAddress())
	require.EqualValues(t, 10*time.Minute, cfg.StateStorageRedisTimeout())
	require.EqualValues(t, "merged", cfg.StateStorageRedisKeyPrefix())
	require.EqualValues(t, "merged-node", cfg.NodeName())
}
