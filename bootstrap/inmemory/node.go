// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package inmemory

import (
	"context"

	"github.com/google/uuid"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-counter/config"
	"github.com/orbs-network/orbs-counter/instrumentation/metric"
	"github.com/orbs-network/orbs-counter/services/processor/native"
	"github.com/orbs-network/orbs-counter/services/statestorage"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter/filesystem"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter/memory"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter/redis"
	"github.com/orbs-network/orbs-counter/services/virtualmachine"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

type gracefulShutdowner interface {
	GracefulShutdown(shutdownContext context.Context)
}

// Node hosts counter contracts in-process: a virtual machine over the native processor,
// backed by the state persistence selected in config
type Node struct {
	govnr.TreeSupervisor

	config         config.NodeConfig
	logger         log.Logger
	instanceId     string
	metricRegistry metric.Registry

	statePersistence adapter.StatePersistence
	stateStorage     statestorage.StateStorage
	virtualMachine   virtualmachine.VirtualMachine

	cancel context.CancelFunc
}

func NewNode(parentCtx context.Context, nodeConfig config.NodeConfig, parentLogger log.Logger) (*Node, error) {
	config.Validate(nodeConfig)

	instanceId := uuid.NewString()
	logger := parentLogger.WithTags(log.String("node", nodeConfig.NodeName()), log.String("instance-id", instanceId))

	metricRegistry := metric.NewRegistry().WithNodeName(nodeConfig.NodeName())
	metric.RegisterConfigIndicators(metricRegistry, nodeConfig)
	metricRegistry.NewText("Node.InstanceId", instanceId)

	statePersistence, err := newStatePersistence(nodeConfig, logger, metricRegistry)
	if err != nil {
		return nil, err
	}

	stateStorage, err := statestorage.NewStateStorage(statePersistence, logger)
	if err != nil {
		shutdownPersistence(parentCtx, statePersistence)
		return nil, err
	}

	nativeProcessor := native.NewNativeProcessor(logger, metricRegistry)
	virtualMachine := virtualmachine.NewVirtualMachine(nodeConfig, stateStorage, nativeProcessor, logger, metricRegistry)

	ctx, cancel := context.WithCancel(parentCtx)
	n := &Node{
		config:           nodeConfig,
		logger:           logger,
		instanceId:       instanceId,
		metricRegistry:   metricRegistry,
		statePersistence: statePersistence,
		stateStorage:     stateStorage,
		virtualMachine:   virtualMachine,
		cancel:           cancel,
	}

	n.Supervise(metricRegistry.ReportEvery(ctx, nodeConfig.MetricsReportInterval(), logger))
	n.Supervise(metric.NewRuntimeReporter(ctx, metricRegistry, nodeConfig.MetricsReportInterval(), logger))
	n.Supervise(metric.NewSystemReporter(ctx, metricRegistry, nodeConfig.MetricsReportInterval(), logger))
	if nodeConfig.NtpEndpoint() != "" {
		n.Supervise(metric.NewNtpReporter(ctx, metricRegistry, logger, nodeConfig.NtpEndpoint()))
	}

	height, _ := stateStorage.GetLastCommittedHeight(ctx)
	logger.Info("node started", log.String("persistence", nodeConfig.StateStoragePersistence()), log.Uint64("height", uint64(height)))

	return n, nil
}

func newStatePersistence(nodeConfig config.NodeConfig, logger log.Logger, metricFactory metric.Factory) (adapter.StatePersistence, error) {
	switch nodeConfig.StateStoragePersistence() {
	case config.PERSISTENCE_MEMORY:
		return memory.NewStatePersistence(metricFactory), nil
	case config.PERSISTENCE_FILE_SYSTEM:
		return filesystem.NewStatePersistence(nodeConfig, logger, metricFactory)
	case config.PERSISTENCE_REDIS:
		return redis.NewStatePersistence(nodeConfig, logger, metricFactory)
	default:
		return nil, errors.Errorf("unknown state storage persistence %q", nodeConfig.StateStoragePersistence())
	}
}

func (n *Node) VirtualMachine() virtualmachine.VirtualMachine {
	return n.virtualMachine
}

func (n *Node) StateStorage() statestorage.StateStorage {
	return n.stateStorage
}

func (n *Node) Metrics() metric.Registry {
	return n.metricRegistry
}

func (n *Node) InstanceId() string {
	return n.instanceId
}

// GracefulShutdown stops the background reporters and releases the state persistence,
// waiting no longer than the configured shutdown grace timeout; the node must not be used afterwards
func (n *Node) GracefulShutdown(parent context.Context) {
	shutdownContext, cancel := context.WithTimeout(parent, n.config.ShutdownGraceTimeout())
	defer cancel()

	n.logger.Info("shutting down", log.Stringable("grace-timeout", n.config.ShutdownGraceTimeout()))
	n.cancel()
	n.WaitUntilShutdown(shutdownContext)
	shutdownPersistence(shutdownContext, n.statePersistence)
}

func shutdownPersistence(shutdownContext context.Context, persistence adapter.StatePersistence) {
	if s, ok := persistence.(gracefulShutdowner); ok {
		s.GracefulShutdown(shutdownContext)
	}
}
