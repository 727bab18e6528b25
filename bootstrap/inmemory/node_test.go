// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package inmemory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/orbs-network/orbs-counter/config"
	"github.com/orbs-network/orbs-counter/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter/services/virtualmachine"
	"github.com/orbs-network/orbs-counter/test"
	"github.com/orbs-network/orbs-counter/test/with"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCounter_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		initValue int32
		operate   func(ctx context.Context, c *CounterClient) error
		expected  int32
	}{
		{"increment", 42, func(ctx context.Context, c *CounterClient) error { return c.Increment(ctx) }, 43},
		{"increment at max saturates", math.MaxInt32, func(ctx context.Context, c *CounterClient) error { return c.Increment(ctx) }, math.MaxInt32},
		{"decrement", 42, func(ctx context.Context, c *CounterClient) error { return c.Decrement(ctx) }, 41},
		{"decrement at min saturates", math.MinInt32, func(ctx context.Context, c *CounterClient) error { return c.Decrement(ctx) }, math.MinInt32},
		{"modify by positive delta", 42, func(ctx context.Context, c *CounterClient) error { return c.ModifyBy(ctx, 10) }, 52},
		{"modify by min saturates", -42, func(ctx context.Context, c *CounterClient) error { return c.ModifyBy(ctx, math.MinInt32) }, math.MinInt32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			with.Logging(t, func(harness *with.LoggingHarness) {
				test.WithContext(func(ctx context.Context) {
					node := newNode(t, ctx, harness, config.ForAcceptanceTests())
					defer shutdownNode(node)

					c := NewCounterClient(node.VirtualMachine(), "MyCounter")
					_, err := c.DeployWithValue(ctx, tt.initValue)
					require.NoError(t, err)

					require.NoError(t, tt.operate(ctx, c))

					value, err := c.Get(ctx)
					require.NoError(t, err)
					require.Equal(t, tt.expected, value)
				})
			})
		})
	}
}

func TestCounter_DefaultDeploymentStartsAtZero(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			node := newNode(t, ctx, harness, config.ForAcceptanceTests())
			defer shutdownNode(node)

			c := NewCounterClient(node.VirtualMachine(), "MyCounter")
			height, err := c.Deploy(ctx)
			require.NoError(t, err)
			require.EqualValues(t, 1, height)

			value, err := c.Get(ctx)
			require.NoError(t, err)
			require.Zero(t, value)

			_, err = c.Deploy(ctx)
			require.Equal(t, virtualmachine.ErrContractAlreadyDeployed, errors.Cause(err))
		})
	})
}

func TestCounter_ReportsSaturationOnlyWhenClamped(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			node := newNode(t, ctx, harness, config.ForAcceptanceTests())
			defer shutdownNode(node)

			c := NewCounterClient(node.VirtualMachine(), "MyCounter")
			_, err := c.DeployWithValue(ctx, math.MaxInt32-5)
			require.NoError(t, err)

			saturated, err := c.ModifyByReportingSaturation(ctx, 5)
			require.NoError(t, err)
			require.False(t, saturated, "reaching the maximum exactly is not saturation")

			saturated, err = c.ModifyByReportingSaturation(ctx, 1)
			require.NoError(t, err)
			require.True(t, saturated)

			value, err := c.Get(ctx)
			require.NoError(t, err)
			require.EqualValues(t, math.MaxInt32, value)
		})
	})
}

func TestCounter_SurvivesRestartWithFileSystemPersistence(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			cfg := config.ForAcceptanceTests(
				config.StringValue(config.STATE_STORAGE_PERSISTENCE, config.PERSISTENCE_FILE_SYSTEM),
				config.StringValue(config.STATE_STORAGE_FILE_SYSTEM_DATA_DIR, t.TempDir()),
			)

			requireCounterSurvivesRestart(t, ctx, harness, cfg)
		})
	})
}

func TestCounter_SurvivesRestartWithRedisPersistence(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			server := miniredis.RunT(t)
			cfg := config.ForAcceptanceTests(
				config.StringValue(config.STATE_STORAGE_PERSISTENCE, config.PERSISTENCE_REDIS),
				config.StringValue(config.STATE_STORAGE_REDIS_ADDRESS, server.Addr()),
				config.StringValue(config.STATE_STORAGE_REDIS_KEY_PREFIX, "acceptance"),
				config.DurationValue(config.STATE_STORAGE_REDIS_TIMEOUT, time.Second),
			)

			requireCounterSurvivesRestart(t, ctx, harness, cfg)
		})
	})
}

func TestNode_ExportsMetrics(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			node := newNode(t, ctx, harness, config.ForAcceptanceTests())
			defer shutdownNode(node)

			c := NewCounterClient(node.VirtualMachine(), "MyCounter")
			_, err := c.Deploy(ctx)
			require.NoError(t, err)
			require.NoError(t, c.Increment(ctx))

			exported := node.Metrics().ExportAll()
			require.Contains(t, exported, "VirtualMachine.Transactions.Rate")
			require.Contains(t, exported, "Node.InstanceId")
			require.Contains(t, node.Metrics().ExportPrometheus(), "VirtualMachine_Deployments_Count")
			require.NotEmpty(t, node.InstanceId())
		})
	})
}

func TestNode_GracefulShutdownIsBoundedByGraceTimeout(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			node := newNode(t, ctx, harness, config.ForAcceptanceTests(
				config.DurationValue(config.SHUTDOWN_GRACE_TIMEOUT, 3*time.Second),
			))
			recorder := &shutdownRecorder{StatePersistence: node.statePersistence}
			node.statePersistence = recorder

			before := time.Now()
			node.GracefulShutdown(context.Background())

			require.True(t, recorder.hasDeadline, "persistence should be shut down with a deadline")
			require.WithinDuration(t, before.Add(3*time.Second), recorder.deadline, time.Second)
		})
	})
}

func TestNewNode_FailsWhenPersistenceIsUnavailable(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			server := miniredis.RunT(t)
			address := server.Addr()
			server.Close()

			_, err := NewNode(ctx, config.ForAcceptanceTests(
				config.StringValue(config.STATE_STORAGE_PERSISTENCE, config.PERSISTENCE_REDIS),
				config.StringValue(config.STATE_STORAGE_REDIS_ADDRESS, address),
				config.DurationValue(config.STATE_STORAGE_REDIS_TIMEOUT, 100*time.Millisecond),
			), harness.Logger)
			require.Error(t, err)
		})
	})
}

func requireCounterSurvivesRestart(t *testing.T, ctx context.Context, harness *with.LoggingHarness, cfg config.NodeConfig) {
	first := newNode(t, ctx, harness, cfg)
	c := NewCounterClient(first.VirtualMachine(), "MyCounter")
	_, err := c.DeployWithValue(ctx, 42)
	require.NoError(t, err)
	require.NoError(t, c.ModifyBy(ctx, -50))
	shutdownNode(first)

	second := newNode(t, ctx, harness, cfg)
	defer shutdownNode(second)

	height, err := second.StateStorage().GetLastCommittedHeight(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, height, "the committed height should be restored")

	c = NewCounterClient(second.VirtualMachine(), "MyCounter")
	value, err := c.Get(ctx)
	require.NoError(t, err)
	require.EqualValues(t, -8, value, "the counter should keep its value across restarts")

	require.NoError(t, c.Increment(ctx))
	value, err = c.Get(ctx)
	require.NoError(t, err)
	require.EqualValues(t, -7, value)
}

func newNode(t *testing.T, ctx context.Context, harness *with.LoggingHarness, cfg config.NodeConfig) *Node {
	node, err := NewNode(ctx, cfg, harness.Logger)
	require.NoError(t, err)
	return node
}

type shutdownRecorder struct {
	adapter.StatePersistence
	deadline    time.Time
	hasDeadline bool
}

func (r *shutdownRecorder) GracefulShutdown(shutdownContext context.Context) {
	r.deadline, r.hasDeadline = shutdownContext.Deadline()
}

func shutdownNode(node *Node) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	node.GracefulShutdown(shutdownCtx)
}
