// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter for engine executions.
var (
	tracer = otel.Tracer("restyle.engine")
	meter  = otel.Meter("restyle.engine")
)

// Metrics for engine executions.
var (
	executeLatency metric.Float64Histogram
	executeTotal   metric.Int64Counter
	attemptsUsed   metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		executeLatency, err = meter.Float64Histogram(
			"engine_execute_duration_seconds",
			metric.WithDescription("Duration of change executions"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		executeTotal, err = meter.Int64Counter(
			"engine_execute_total",
			metric.WithDescription("Total change executions by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		attemptsUsed, err = meter.Int64Histogram(
			"engine_execute_attempts",
			metric.WithDescription("Execution attempts consumed per change"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// withOutcome labels a measurement with its terminal outcome.
func withOutcome(outcome string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("outcome", outcome))
}
