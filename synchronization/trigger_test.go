// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package synchronization_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orbs-network/orbs-counter/synchronization"
	"github.com/orbs-network/orbs-counter/test"
	"github.com/orbs-network/orbs-counter/test/with"
	"github.com/stretchr/testify/require"
)

func TestPeriodicalTrigger_FiresRepeatedly(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			var x int32
			p := synchronization.NewPeriodicalTrigger(ctx, "test trigger", time.Millisecond, harness.Logger, func() { atomic.AddInt32(&x, 1) }, nil)
			defer p.Stop()

			require.True(t, test.Eventually(func() bool {
				return atomic.LoadInt32(&x) >= 3
			}), "expected at least three ticks")
			require.True(t, p.TimesTriggered() >= 3)
		})
	})
}

func TestPeriodicalTrigger_StopRunsOnStopAndHaltsTicks(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			var x, stopped int32
			p := synchronization.NewPeriodicalTrigger(ctx, "test trigger", time.Millisecond, harness.Logger,
				func() { atomic.AddInt32(&x, 1) },
				func() { atomic.AddInt32(&stopped, 1) })

			p.Stop()

			require.EqualValues(t, 1, atomic.LoadInt32(&stopped), "onStop should have run exactly once before Stop returned")
			ticksAtStop := atomic.LoadInt32(&x)
			time.Sleep(5 * time.Millisecond)
			require.Equal(t, ticksAtStop, atomic.LoadInt32(&x), "no ticks expected after stop")
		})
	})
}

func TestPeriodicalTrigger_StopsWhenParentContextEnds(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		ctx, cancel := context.WithCancel(context.Background())
		p := synchronization.NewPeriodicalTrigger(ctx, "test trigger", time.Hour, harness.Logger, func() {}, nil)

		cancel()

		select {
		case <-p.Closed:
		case <-time.After(time.Second):
			t.Fatal("trigger did not shut down after context cancellation")
		}
	})
}
