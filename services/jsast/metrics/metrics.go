// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package metrics records per-item pipeline metrics in Prometheus form.
//
// A command-line run has no scrape endpoint, so the registry is written to a
// text file in the node-exporter textfile format when the run ends.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder holds the pipeline metrics of one run on a dedicated registry.
//
// A nil *Recorder is valid and records nothing.
//
// Thread Safety: safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	// itemsTotal counts processed items.
	//
	// Labels:
	//   - direction: "parse" or "generate"
	//   - outcome: "success" or "error"
	itemsTotal *prometheus.CounterVec

	// failuresTotal counts failed items by the stage that failed.
	//
	// Labels:
	//   - direction: "parse" or "generate"
	//   - stage: "path", "read", "parse", "generate", "write"
	failuresTotal *prometheus.CounterVec

	// itemDuration measures the wall time of one item.
	//
	// Labels:
	//   - direction: "parse" or "generate"
	itemDuration *prometheus.HistogramVec

	// linesTotal counts input lines read in streaming mode, blank ones included.
	linesTotal prometheus.Counter
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		itemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jsast",
				Subsystem: "pipeline",
				Name:      "items_total",
				Help:      "Total number of items processed.",
			},
			[]string{"direction", "outcome"},
		),
		failuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jsast",
				Subsystem: "pipeline",
				Name:      "failures_total",
				Help:      "Total number of failed items by failing stage.",
			},
			[]string{"direction", "stage"},
		),
		itemDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "jsast",
				Subsystem: "pipeline",
				Name:      "item_duration_seconds",
				Help:      "Duration of one item's transformation in seconds.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"direction"},
		),
		linesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "jsast",
				Subsystem: "stream",
				Name:      "lines_total",
				Help:      "Total number of input lines read in streaming mode.",
			},
		),
	}
}

// Registry returns the registry the metrics live on.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveItem records one processed item.
//
// Inputs:
//
//	direction - "parse" or "generate".
//	stage     - The failing stage, or "" on success.
//	duration  - How long the item took.
func (r *Recorder) ObserveItem(direction, stage string, duration time.Duration) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if stage != "" {
		outcome = OutcomeError
		r.failuresTotal.WithLabelValues(direction, stage).Inc()
	}
	r.itemsTotal.WithLabelValues(direction, outcome).Inc()
	r.itemDuration.WithLabelValues(direction).Observe(duration.Seconds())
}

// ObserveLine records one streaming input line.
func (r *Recorder) ObserveLine() {
	if r == nil {
		return
	}
	r.linesTotal.Inc()
}

// WriteFile writes every metric to path in the Prometheus text format. The
// file is replaced atomically.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
