// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package synchronization

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-counter/instrumentation/logfields"
)

// PeriodicalTrigger calls handler every interval on a supervised goroutine until
// its context ends or Stop is called. onStop, if given, runs once after the last tick.
type PeriodicalTrigger struct {
	govnr.TreeSupervisor
	name     string
	interval time.Duration
	handler  func()
	onStop   func()
	logger   logfields.Errorer
	cancel   context.CancelFunc
	Closed   govnr.ContextEndedChan

	timesTriggered uint64
}

func NewPeriodicalTrigger(ctx context.Context, name string, interval time.Duration, logger logfields.Errorer, trigger func(), onStop func()) *PeriodicalTrigger {
	subCtx, cancel := context.WithCancel(ctx)
	t := &PeriodicalTrigger{
		name:     name,
		interval: interval,
		handler:  trigger,
		onStop:   onStop,
		logger:   logger,
		cancel:   cancel,
	}

	t.run(subCtx)
	return t
}

func (t *PeriodicalTrigger) run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	h := govnr.Forever(ctx, t.name, logfields.GovnrErrorer(t.logger), func() {
		for {
			select {
			case <-ticker.C:
				atomic.AddUint64(&t.timesTriggered, 1)
				t.handler()
			case <-ctx.Done():
				ticker.Stop()
				if t.onStop != nil {
					t.onStop()
				}
				return
			}
		}
	})
	t.Closed = h.Done()
	t.Supervise(h)
}

func (t *PeriodicalTrigger) TimesTriggered() uint64 {
	return atomic.LoadUint64(&t.timesTriggered)
}

// Stop returns once the final onStop call has completed
func (t *PeriodicalTrigger) Stop() {
	t.cancel()
	<-t.Closed
}
