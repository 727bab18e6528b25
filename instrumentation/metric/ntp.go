// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/orbs-network/orbs-counter/synchronization"
	"github.com/orbs-network/scribe/log"
)

type ntpMetrics struct {
	drift *Gauge
}

type ntpReporter struct {
	metrics ntpMetrics
	address string
	query   func(address string) (*ntp.Response, error)
}

const NTP_QUERY_INTERVAL = 30 * time.Second

type InfoLogger interface {
	Logger
	Info(message string, params ...*log.Field)
}

func NewNtpReporter(ctx context.Context, metricFactory Factory, logger InfoLogger, ntpServerAddress string) *synchronization.PeriodicalTrigger {
	r := newNtpReporter(metricFactory, ntpServerAddress, ntp.Query)

	return synchronization.NewPeriodicalTrigger(ctx, "NTP metric reporter", NTP_QUERY_INTERVAL, logger, func() {
		r.report(logger)
	}, nil)
}

func newNtpReporter(metricFactory Factory, ntpServerAddress string, query func(address string) (*ntp.Response, error)) *ntpReporter {
	return &ntpReporter{
		metrics: ntpMetrics{
			drift: metricFactory.NewGauge("OS.Time.Drift.Millis"),
		},
		address: ntpServerAddress,
		query:   query,
	}
}

func (r *ntpReporter) report(logger InfoLogger) {
	response, err := r.query(r.address)

	if err != nil {
		logger.Info("could not query ntp server", log.String("ntp-server", r.address), log.Error(err))
	} else {
		r.metrics.drift.Update(response.ClockOffset.Nanoseconds() / int64(time.Millisecond))
	}
}
