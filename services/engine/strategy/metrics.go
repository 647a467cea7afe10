// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package strategy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// executionsTotal counts executions by terminal outcome.
	// Labels: "applied", "proposed", "over_deletion", "exhausted", "provider_error"
	executionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restyle_strategy_executions_total",
		Help: "Total strategy executions by terminal outcome",
	}, []string{"outcome"})

	// attemptsPerExecution tracks outer-loop attempts consumed.
	attemptsPerExecution = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "restyle_strategy_attempts",
		Help:    "Attempts consumed per execution",
		Buckets: []float64{1, 2, 3},
	})

	// fallbackHops counts fallback-tier swaps by starting approach.
	fallbackHops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restyle_strategy_fallback_hops_total",
		Help: "Fallback tier swaps by starting approach",
	}, []string{"approach"})

	// overDeletionRetries counts corrective retries triggered by the
	// output-length guard.
	overDeletionRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restyle_strategy_over_deletion_retries_total",
		Help: "Corrective retries triggered by the output-length guard",
	})
)
