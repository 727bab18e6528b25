// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"path/filepath"
	"time"
)

// all other configs are variations from the production one
func defaultProductionConfig() mutableNodeConfig {
	cfg := emptyConfig()

	cfg.SetString(NODE_NAME, "counter-node")

	cfg.SetString(STATE_STORAGE_PERSISTENCE, PERSISTENCE_FILE_SYSTEM)
	cfg.SetString(STATE_STORAGE_FILE_SYSTEM_DATA_DIR, "/usr/local/var/orbs-counter")

	cfg.SetString(STATE_STORAGE_REDIS_ADDRESS, "localhost:6379")
	cfg.SetString(STATE_STORAGE_REDIS_KEY_PREFIX, "orbs-counter")
	cfg.SetDuration(STATE_STORAGE_REDIS_TIMEOUT, 5*time.Second)

	// a single counter call is a handful of state reads, anything slower means the store is stuck
	cfg.SetDuration(VIRTUAL_MACHINE_EXECUTION_TIMEOUT, 10*time.Second)

	// zero means unlimited
	cfg.SetUint32(VIRTUAL_MACHINE_MAX_TRANSACTIONS_PER_SECOND, 0)

	cfg.SetDuration(METRICS_REPORT_INTERVAL, 30*time.Second)
	cfg.SetString(NTP_ENDPOINT, "pool.ntp.org")

	cfg.SetDuration(SHUTDOWN_GRACE_TIMEOUT, 5*time.Second)

	return cfg
}

func ForProduction(dataDir string) mutableNodeConfig {
	cfg := defaultProductionConfig()

	if dataDir != "" {
		cfg.SetString(STATE_STORAGE_FILE_SYSTEM_DATA_DIR, filepath.Join(dataDir, "state"))
	}

	return cfg
}

func EmptyConfig() mutableNodeConfig {
	return emptyConfig()
}
