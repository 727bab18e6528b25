// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

func ForAcceptanceTests(overrides ...NodeConfigKeyValue) mutableNodeConfig {
	cfg := defaultProductionConfig()

	cfg.SetString(NODE_NAME, "acceptance-node")
	cfg.SetString(STATE_STORAGE_PERSISTENCE, PERSISTENCE_MEMORY)
	cfg.SetString(STATE_STORAGE_FILE_SYSTEM_DATA_DIR, "")
	cfg.SetDuration(VIRTUAL_MACHINE_EXECUTION_TIMEOUT, 1*time.Second)
	cfg.SetDuration(METRICS_REPORT_INTERVAL, 50*time.Millisecond)
	cfg.SetString(NTP_ENDPOINT, "")
	cfg.SetDuration(SHUTDOWN_GRACE_TIMEOUT, 1*time.Second)

	cfg.Modify(overrides...)

	return cfg
}

func ForFileSystemPersistenceTests(dataDir string) StateStorageConfig {
	cfg := emptyConfig()

	cfg.SetString(STATE_STORAGE_PERSISTENCE, PERSISTENCE_FILE_SYSTEM)
	cfg.SetString(STATE_STORAGE_FILE_SYSTEM_DATA_DIR, dataDir)

	return cfg
}

func ForRedisPersistenceTests(address string) RedisPersistenceConfig {
	cfg := emptyConfig()

	cfg.SetString(STATE_STORAGE_PERSISTENCE, PERSISTENCE_REDIS)
	cfg.SetString(STATE_STORAGE_REDIS_ADDRESS, address)
	cfg.SetString(STATE_STORAGE_REDIS_KEY_PREFIX, "test")
	cfg.SetDuration(STATE_STORAGE_REDIS_TIMEOUT, 1*time.Second)

	return cfg
}

func ForVirtualMachineTests(maxTransactionsPerSecond uint32) VirtualMachineConfig {
	cfg := emptyConfig()

	cfg.SetDuration(VIRTUAL_MACHINE_EXECUTION_TIMEOUT, 1*time.Second)
	cfg.SetUint32(VIRTUAL_MACHINE_MAX_TRANSACTIONS_PER_SECOND, maxTransactionsPerSecond)

	return cfg
}

// helpers for overriding values in presets

func StringValue(key string, value string) NodeConfigKeyValue {
	return NodeConfigKeyValue{Key: key, Value: NodeConfigValue{StringValue: value}}
}

func DurationValue(key string, value time.Duration) NodeConfigKeyValue {
	return NodeConfigKeyValue{Key: key, Value: NodeConfigValue{DurationValue: value}}
}
