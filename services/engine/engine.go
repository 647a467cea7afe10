// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine wires the change pipeline together: a request is
// resolved to an intent, analyzed for impact, scored for confidence,
// executed on the selected tier, and validated before anything leaves
// the engine.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/RestyleHQ/restyle/services/engine/confidence"
	"github.com/RestyleHQ/restyle/services/engine/impact"
	"github.com/RestyleHQ/restyle/services/engine/intent"
	"github.com/RestyleHQ/restyle/services/engine/repomodel"
	"github.com/RestyleHQ/restyle/services/engine/strategy"
	"github.com/RestyleHQ/restyle/services/engine/validate"
)

// defaultBatchParallelism bounds concurrent executions in a batch.
const defaultBatchParallelism = 4

// Engine runs change requests through the full pipeline.
//
// # Description
//
//	The engine owns no repository state: the model and reader are
//	read-only collaborators, and persistence of accepted changes is
//	the caller's responsibility. Each Execute call is independent and
//	discards all intermediate state when it returns.
//
// Thread Safety:
//
//	Safe for concurrent use. Requests share only the read-only model.
type Engine struct {
	model    repomodel.Model
	reader   repomodel.FileReader
	resolver *intent.Resolver
	analyzer *impact.Analyzer
	assessor *confidence.Assessor
	executor *strategy.Executor
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	reader     repomodel.FileReader
	strategies impact.StrategyTable
}

// WithFileReader supplies an on-demand reader for components indexed
// without content.
func WithFileReader(reader repomodel.FileReader) Option {
	return func(o *options) { o.reader = reader }
}

// WithStrategyTable overrides the styling idiom table.
func WithStrategyTable(table impact.StrategyTable) Option {
	return func(o *options) { o.strategies = table }
}

// New creates an engine over a repository model and a text generator.
func New(model repomodel.Model, generator strategy.TextGenerator, opts ...Option) (*Engine, error) {
	if model == nil {
		return nil, fmt.Errorf("repository model is required")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.strategies == nil {
		o.strategies = impact.DefaultStrategies()
	}

	gate := validate.NewGate(o.strategies)
	executor, err := strategy.NewExecutor(generator, gate, model, o.reader)
	if err != nil {
		return nil, err
	}
	return &Engine{
		model:    model,
		reader:   o.reader,
		resolver: intent.NewResolver(model),
		analyzer: impact.NewAnalyzer(model, o.strategies),
		assessor: confidence.NewAssessor(model),
		executor: executor,
	}, nil
}

// Execute runs one change request through the pipeline.
//
// # Outputs
//
//	An Outcome with validated changes or a proposal, or an error. A
//	*strategy.ExecutionError carries the last gate verdict so callers
//	can explain why the change could not be completed.
func (e *Engine) Execute(ctx context.Context, req intent.ChangeRequest) (*Outcome, error) {
	if err := initMetrics(); err != nil {
		return nil, fmt.Errorf("initializing metrics: %w", err)
	}

	ctx, span := tracer.Start(ctx, "engine.execute")
	defer span.End()
	start := time.Now()

	it, err := e.resolver.Resolve(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		executeTotal.Add(ctx, 1, withOutcome("resolve_error"))
		return nil, fmt.Errorf("resolving request: %w", err)
	}
	span.SetAttributes(
		attribute.String("intent.type", string(it.Type)),
		attribute.Bool("intent.resolved", it.Resolved()),
		attribute.Float64("intent.confidence", it.Confidence),
	)

	var target *repomodel.Target
	if it.Resolved() {
		target = repomodel.NewTarget(it.Target, e.reader)
	}
	analysis, err := e.analyzer.Analyze(ctx, it, target)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		executeTotal.Add(ctx, 1, withOutcome("analyze_error"))
		return nil, fmt.Errorf("analyzing impact: %w", err)
	}

	assessment := e.assessor.Assess(it, analysis)
	span.SetAttributes(
		attribute.String("assessment.approach", string(assessment.RecommendedApproach)),
		attribute.Float64("assessment.confidence", assessment.Confidence),
	)

	result, err := e.executor.Execute(ctx, it, analysis, assessment)
	executeLatency.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		executeTotal.Add(ctx, 1, withOutcome("failed"))
		return nil, err
	}

	outcome := "applied"
	if result.Proposal {
		outcome = "proposed"
	}
	executeTotal.Add(ctx, 1, withOutcome(outcome))
	attemptsUsed.Record(ctx, int64(result.Attempts))

	return &Outcome{
		Intent:     it,
		Assessment: assessment,
		Changes:    result.Changes,
		Validation: result.Validation,
		Proposal:   result.Proposal,
		Attempts:   result.Attempts,
		Log:        result.Log,
	}, nil
}

// ExecuteBatch runs independent requests concurrently. Every request
// gets an entry in the returned slice, in input order, with its own
// outcome or error.
func (e *Engine) ExecuteBatch(ctx context.Context, reqs []intent.ChangeRequest) []BatchItem {
	items := make([]BatchItem, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultBatchParallelism)
	for i, req := range reqs {
		g.Go(func() error {
			outcome, err := e.Execute(gctx, req)
			items[i] = BatchItem{Request: req, Outcome: outcome, Err: err}
			return nil
		})
	}
	// Goroutines only record their own slot; Wait cannot fail.
	_ = g.Wait()
	return items
}
