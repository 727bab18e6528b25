// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

type config struct {
	kv map[string]NodeConfigValue
}

func emptyConfig() mutableNodeConfig {
	return &config{
		kv: make(map[string]NodeConfigValue),
	}
}

func (c *config) Set(key string, value NodeConfigValue) mutableNodeConfig {
	c.kv[key] = value
	return c
}

func (c *config) SetDuration(key string, value time.Duration) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{DurationValue: value}
	return c
}

func (c *config) SetUint32(key string, value uint32) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{Uint32Value: value}
	return c
}

func (c *config) SetString(key string, value string) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{StringValue: value}
	return c
}

func (c *config) SetBool(key string, value bool) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{BoolValue: value}
	return c
}

func (c *config) StateStoragePersistence() string {
	return c.kv[STATE_STORAGE_PERSISTENCE].StringValue
}

func (c *config) StateStorageFileSystemDataDir() string {
	return c.kv[STATE_STORAGE_FILE_SYSTEM_DATA_DIR].StringValue
}

func (c *config) StateStorageRedisAddress() string {
	return c.kv[STATE_STORAGE_REDIS_ADDRESS].StringValue
}

func (c *config) StateStorageRedisKeyPrefix() string {
	return c.kv[STATE_STORAGE_REDIS_KEY_PREFIX].StringValue
}

func (c *config) StateStorageRedisTimeout() time.Duration {
	return c.kv[STATE_STORAGE_REDIS_TIMEOUT].DurationValue
}

func (c *config) VirtualMachineExecutionTimeout() time.Duration {
	return c.kv[VIRTUAL_MACHINE_EXECUTION_TIMEOUT].DurationValue
}

func (c *config) VirtualMachineMaxTransactionsPerSecond() uint32 {
	return c.kv[VIRTUAL_MACHINE_MAX_TRANSACTIONS_PER_SECOND].Uint32Value
}

func (c *config) NtpEndpoint() string {
	return c.kv[NTP_ENDPOINT].StringValue
}

func (c *config) MetricsReportInterval() time.Duration {
	return c.kv[METRICS_REPORT_INTERVAL].DurationValue
}

func (c *config) ShutdownGraceTimeout() time.Duration {
	return c.kv[SHUTDOWN_GRACE_TIMEOUT].DurationValue
}

func (c *config) NodeName() string {
	return c.kv[NODE_NAME].StringValue
}
