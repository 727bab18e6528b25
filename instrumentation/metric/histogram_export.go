// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"strconv"

	"github.com/orbs-network/scribe/log"
)

type histogramExport struct {
	Name    string
	Min     float64
	P50     float64
	P95     float64
	P99     float64
	Max     float64
	Avg     float64
	Samples int64
}

func (h histogramExport) LogRow() []*log.Field {
	if h.Samples == 0 {
		return nil
	}

	return []*log.Field{
		log.String("metric", h.Name),
		log.String("metric-type", "histogram"),
		log.Float64("min", h.Min),
		log.Float64("p50", h.P50),
		log.Float64("p95", h.P95),
		log.Float64("p99", h.P99),
		log.Float64("max", h.Max),
		log.Float64("avg", h.Avg),
		log.Int64("samples", h.Samples),
	}
}

func (h histogramExport) PrometheusRow() []*prometheusRow {
	name := prometheusName(h.Name)
	return []*prometheusRow{
		{name, "min", strconv.FormatFloat(h.Min, 'f', -1, 64)},
		{name, "median", strconv.FormatFloat(h.P50, 'f', -1, 64)},
		{name, "95p", strconv.FormatFloat(h.P95, 'f', -1, 64)},
		{name, "99p", strconv.FormatFloat(h.P99, 'f', -1, 64)},
		{name, "max", strconv.FormatFloat(h.Max, 'f', -1, 64)},
		{name, "avg", strconv.FormatFloat(h.Avg, 'f', -1, 64)},
		{name, "count", strconv.FormatInt(h.Samples, 10)},
	}
}

func toMillis(nanoseconds int64) float64 {
	return floatToMillis(float64(nanoseconds))
}

func floatToMillis(nanoseconds float64) float64 {
	return nanoseconds / 1e+6
}
