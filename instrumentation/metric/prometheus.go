// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"fmt"
	"strconv"
	"strings"
)

/**
Format reference: https://prometheus.io/docs/instrumenting/exposition_formats/
For info on Prometheus labels, see: https://prometheus.io/docs/practices/naming/#labels
*/
func (r *inMemoryRegistry) ExportPrometheus() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	labelsString := r.labelsString()

	var rows []string
	for _, m := range r.mu.metrics {
		rows = append(rows, m.exportPrometheus(labelsString))
	}

	return strings.Join(rows, "")
}

func (r *inMemoryRegistry) labelsString() string {
	if r.nodeName == "" {
		return ""
	}
	return fmt.Sprintf("node=\"%s\"", r.nodeName)
}

type prometheusRow struct {
	name        string
	aggregation string
	value       string
}

func (g *Gauge) exportPrometheus(labelString string) string {
	name := prometheusName(g.name)
	value := strconv.FormatInt(g.Value(), 10)
	if len(labelString) > 0 {
		return prometheusType(name, "gauge") + fmt.Sprintf("%s{%s} %s\n", name, labelString, value)
	}
	return prometheusType(name, "gauge") + fmt.Sprintf("%s %s\n", name, value)
}

func prometheusRows(rows []*prometheusRow, typeString string, labelString string) string {
	if len(rows) == 0 {
		return ""
	}

	labelPrefix := ""
	if len(labelString) > 0 {
		labelPrefix = labelString + ","
	}

	s := prometheusType(rows[0].name, typeString)
	for _, row := range rows {
		s += fmt.Sprintf("%s{%saggregation=\"%s\"} %s\n", row.name, labelPrefix, row.aggregation, row.value)
	}
	return s
}

func prometheusName(name string) string {
	return strings.Replace(name, ".", "_", -1)
}

func prometheusType(name string, typeString string) string {
	return fmt.Sprintf("# TYPE %s %s\n", prometheusName(name), typeString)
}
