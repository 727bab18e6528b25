// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codahale/hdrhistogram"
)

// Histogram records durations in nanoseconds over a window of 5 rotations and exports them in milliseconds
type Histogram struct {
	namedMetric
	overflowCount int64

	mu    sync.Mutex
	histo *hdrhistogram.WindowedHistogram
}

func newHistogram(name string, max int64) *Histogram {
	return &Histogram{
		namedMetric: namedMetric{name: name},
		histo:       hdrhistogram.NewWindowed(5, 1, max, 3),
	}
}

func (h *Histogram) RecordSince(t time.Time) {
	h.Record(int64(time.Since(t)))
}

func (h *Histogram) Record(nanos int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.histo.Current.RecordValue(nanos); err != nil {
		atomic.AddInt64(&h.overflowCount, 1)
	}
}

func (h *Histogram) Rotate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.histo.Rotate()
}

func (h *Histogram) OverflowCount() int64 {
	return atomic.LoadInt64(&h.overflowCount)
}

func (h *Histogram) String() string {
	e := h.export()
	return fmt.Sprintf(
		"metric %s: [min=%f, p50=%f, p95=%f, p99=%f, max=%f, avg=%f, samples=%d, overflows=%d]\n",
		h.name, e.Min, e.P50, e.P95, e.P99, e.Max, e.Avg, e.Samples, h.OverflowCount())
}

func (h *Histogram) Export() exportedMetric {
	return h.export()
}

func (h *Histogram) export() histogramExport {
	h.mu.Lock()
	histo := h.histo.Merge()
	h.mu.Unlock()

	return histogramExport{
		Name:    h.name,
		Min:     toMillis(histo.Min()),
		P50:     toMillis(histo.ValueAtQuantile(50)),
		P95:     toMillis(histo.ValueAtQuantile(95)),
		P99:     toMillis(histo.ValueAtQuantile(99)),
		Max:     toMillis(histo.Max()),
		Avg:     floatToMillis(histo.Mean()),
		Samples: histo.TotalCount(),
	}
}

func (h *Histogram) exportPrometheus(labelString string) string {
	return prometheusRows(h.export().PrometheusRow(), "histogram", labelString)
}
