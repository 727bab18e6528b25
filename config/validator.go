// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"
)

func Validate(cfg NodeConfig) {
	switch cfg.StateStoragePersistence() {
	case PERSISTENCE_MEMORY:
	case PERSISTENCE_FILE_SYSTEM:
		requireNonEmpty(cfg.StateStorageFileSystemDataDir, "file system persistence requires a data dir")
	case PERSISTENCE_REDIS:
		requireNonEmpty(cfg.StateStorageRedisAddress, "redis persistence requires an address")
		requirePositive(cfg.StateStorageRedisTimeout, "redis persistence requires a timeout")
	default:
		panic(fmt.Sprintf("unknown state storage persistence %q, expected one of %s, %s, %s",
			cfg.StateStoragePersistence(), PERSISTENCE_MEMORY, PERSISTENCE_FILE_SYSTEM, PERSISTENCE_REDIS))
	}

	requirePositive(cfg.VirtualMachineExecutionTimeout, "execution timeout must be positive")
	requirePositive(cfg.MetricsReportInterval, "metrics report interval must be positive")
	requirePositive(cfg.ShutdownGraceTimeout, "shutdown grace timeout must be positive")
}

func requireNonEmpty(s func() string, msg string) {
	if s() == "" {
		panic(fmt.Sprintf("%s (%s is empty)", msg, funcName(s)))
	}
}

func requirePositive(d func() time.Duration, msg string) {
	if d() <= 0 {
		panic(fmt.Sprintf("%s (%s=%s)", msg, funcName(d), d()))
	}
}

func funcName(i interface{}) string {
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	lastDot := strings.LastIndex(fullName, ".")
	return strings.TrimSuffix(fullName[lastDot+1:], "-fm")
}
