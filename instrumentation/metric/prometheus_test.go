// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

/**
Format reference: https://prometheus.io/docs/instrumenting/exposition_formats/
*/

func TestGauge_ExportPrometheus(t *testing.T) {
	r := NewRegistry()
	r.NewGauge("Some.Gauge").Update(42)

	require.Equal(t, "# TYPE Some_Gauge gauge\nSome_Gauge 42\n", r.ExportPrometheus())
}

func TestGauge_ExportPrometheusWithNodeLabel(t *testing.T) {
	r := NewRegistry().WithNodeName("node1")
	r.NewGauge("Some.Gauge").Update(42)

	require.Equal(t, "# TYPE Some_Gauge gauge\nSome_Gauge{node=\"node1\"} 42\n", r.ExportPrometheus())
}

// only verifies conversion into the Prometheus format, not quantile accuracy
func TestHistogram_ExportPrometheusFormatter(t *testing.T) {
	r := NewRegistry().WithNodeName("node1")
	histo := r.NewLatency("Some.Latency", time.Minute)
	histo.Record(int64(time.Millisecond))

	promStr := r.ExportPrometheus()

	require.Regexp(t, "# TYPE Some_Latency histogram", promStr)
	require.Equal(t, 7, strings.Count(promStr, "Some_Latency{node=\"node1\",aggregation="))
	require.Contains(t, promStr, "Some_Latency{node=\"node1\",aggregation=\"count\"} 1\n")
}

func TestTextAndRate_NotExportedToPrometheus(t *testing.T) {
	r := NewRegistry()
	r.NewText("Some.Text", "value")
	r.NewRate("Some.Rate")

	require.Empty(t, r.ExportPrometheus())
}
