// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

type NodeConfig interface {
	// state storage
	StateStoragePersistence() string
	StateStorageFileSystemDataDir() string
	StateStorageRedisAddress() string
	StateStorageRedisKeyPrefix() string
	StateStorageRedisTimeout() time.Duration

	// virtual machine
	VirtualMachineExecutionTimeout() time.Duration
	VirtualMachineMaxTransactionsPerSecond() uint32

	// metrics
	MetricsReportInterval() time.Duration
	NtpEndpoint() string

	// node
	ShutdownGraceTimeout() time.Duration
	NodeName() string
}

type mutableNodeConfig interface {
	NodeConfig
	Set(key string, value NodeConfigValue) mutableNodeConfig
	SetDuration(key string, value time.Duration) mutableNodeConfig
	SetUint32(key string, value uint32) mutableNodeConfig
	SetString(key string, value string) mutableNodeConfig
	SetBool(key string, value bool) mutableNodeConfig
	Modify(newValues ...NodeConfigKeyValue)
}

type StateStorageConfig interface {
	StateStoragePersistence() string
	StateStorageFileSystemDataDir() string
}

type RedisPersistenceConfig interface {
	StateStorageRedisAddress() string
	StateStorageRedisKeyPrefix() string
	StateStorageRedisTimeout() time.Duration
}

type VirtualMachineConfig interface {
	VirtualMachineExecutionTimeout() time.Duration
	VirtualMachineMaxTransactionsPerSecond() uint32
}

type MetricsConfig interface {
	MetricsReportInterval() time.Duration
	NtpEndpoint() string
}

type NodeConfigKeyValue struct {
	Key   string
	Value NodeConfigValue
}

type NodeConfigValue struct {
	Uint32Value   uint32
	DurationValue time.Duration
	StringValue   string
	BoolValue     bool
}

const (
	STATE_STORAGE_PERSISTENCE          = "STATE_STORAGE_PERSISTENCE"
	STATE_STORAGE_FILE_SYSTEM_DATA_DIR = "STATE_STORAGE_FILE_SYSTEM_DATA_DIR"
	STATE_STORAGE_REDIS_ADDRESS        = "STATE_STORAGE_REDIS_ADDRESS"
	STATE_STORAGE_REDIS_KEY_PREFIX     = "STATE_STORAGE_REDIS_KEY_PREFIX"
	STATE_STORAGE_REDIS_TIMEOUT        = "STATE_STORAGE_REDIS_TIMEOUT"

	VIRTUAL_MACHINE_EXECUTION_TIMEOUT           = "VIRTUAL_MACHINE_EXECUTION_TIMEOUT"
	VIRTUAL_MACHINE_MAX_TRANSACTIONS_PER_SECOND = "VIRTUAL_MACHINE_MAX_TRANSACTIONS_PER_SECOND"

	METRICS_REPORT_INTERVAL = "METRICS_REPORT_INTERVAL"
	NTP_ENDPOINT            = "NTP_ENDPOINT"

	SHUTDOWN_GRACE_TIMEOUT = "SHUTDOWN_GRACE_TIMEOUT"
	NODE_NAME              = "NODE_NAME"
)

const (
	PERSISTENCE_MEMORY      = "memory"
	PERSISTENCE_FILE_SYSTEM = "filesystem"
	PERSISTENCE_REDIS       = "redis"
)
