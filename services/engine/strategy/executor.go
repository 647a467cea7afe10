// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RestyleHQ/restyle/services/engine/confidence"
	"github.com/RestyleHQ/restyle/services/engine/impact"
	"github.com/RestyleHQ/restyle/services/engine/intent"
	"github.com/RestyleHQ/restyle/services/engine/repomodel"
	"github.com/RestyleHQ/restyle/services/engine/validate"
)

const (
	// maxAttempts is the outer retry budget per intent.
	maxAttempts = 3

	// lengthFloor is the minimum generated/original length ratio
	// below which output is treated as over-deletion.
	lengthFloor = 0.8
)

// TextGenerator is the provider abstraction the executor generates
// through. Implementations block until text is available or ctx is
// done.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Executor drives one resolved intent through the tier state machine:
// generate, verify output length, validate, and either apply, retry
// on a lower tier, or fail.
//
// # Description
//
//	The executor owns the retry and fallback policy. It never returns
//	a file change that has not passed the validation gate, and it
//	never silently accepts over-deleted output: a generation below
//	the length floor gets exactly one corrective retry, then the
//	execution fails with ErrOverDeletion.
//
// Thread Safety:
//
//	Safe for concurrent use. Each Execute call owns its own attempt
//	counters and log; shared fields are read-only.
type Executor struct {
	generator TextGenerator
	gate      *validate.Gate
	model     repomodel.Model
	reader    repomodel.FileReader
	machine   *Machine
}

// NewExecutor creates an executor.
//
// # Inputs
//
//	generator - The text-generation provider. Must not be nil.
//	gate - The validation gate. A nil gate gets default strategies.
//	model - The repository model, used by the broad-scope path.
//	reader - Optional on-demand file reader for components indexed
//	         without content.
func NewExecutor(generator TextGenerator, gate *validate.Gate, model repomodel.Model, reader repomodel.FileReader) (*Executor, error) {
	if generator == nil {
		return nil, ErrNoGenerator
	}
	if gate == nil {
		gate = validate.NewGate(nil)
	}
	return &Executor{
		generator: generator,
		gate:      gate,
		model:     model,
		reader:    reader,
		machine:   NewMachine(),
	}, nil
}

// Execute runs the strategy chain for one intent.
//
// # Outputs
//
//	A Result with validated changes (or a proposal at the
//	human-review tier), or an *ExecutionError carrying the last gate
//	verdict when the change could not be completed.
func (e *Executor) Execute(ctx context.Context, it *intent.ChangeIntent, analysis *impact.Analysis, assessment *confidence.Assessment) (*Result, error) {
	chain := Build(assessment)

	if chain.Approach == confidence.ApproachHumanReview {
		return e.propose(ctx, chain, it, analysis)
	}
	if !it.Resolved() {
		return e.executeBroad(ctx, chain, it, analysis)
	}
	return e.executeResolved(ctx, chain, it, analysis)
}

func (e *Executor) executeResolved(ctx context.Context, chain *ChangeStrategy, it *intent.ChangeIntent, analysis *impact.Analysis) (*Result, error) {
	original, err := e.targetContent(ctx, it.Target)
	if err != nil {
		return nil, fmt.Errorf("reading target content: %w", err)
	}

	current := chain
	state := StateAnalyze
	var lastVerdict *validate.Result
	log := []string{
		fmt.Sprintf("selected %s strategy (confidence %.2f)", current.Approach, current.Confidence),
		stepPlan(current),
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		started := time.Now()
		if err := e.machine.Transition(&state, StateGenerate); err != nil {
			return nil, err
		}
		log = append(log, fmt.Sprintf("attempt %d: generating at %s tier", attempt, current.Approach))

		generated, genErr := e.generateWithGuard(ctx, current, it, analysis, original, &log)
		if genErr != nil {
			if errors.Is(genErr, ErrOverDeletion) {
				executionsTotal.WithLabelValues("over_deletion").Inc()
				attemptsPerExecution.Observe(float64(attempt))
				return nil, &ExecutionError{Err: ErrOverDeletion, LastValidation: lastVerdict, Attempts: attempt}
			}
			// Provider failure burns the attempt and retries.
			log = append(log, fmt.Sprintf("attempt %d: provider failure: %v", attempt, genErr))
			if attempt == maxAttempts {
				executionsTotal.WithLabelValues("provider_error").Inc()
				attemptsPerExecution.Observe(float64(attempt))
				return nil, &ExecutionError{Err: genErr, LastValidation: lastVerdict, Attempts: attempt}
			}
			if err := e.machine.Transition(&state, StateRetry); err != nil {
				return nil, err
			}
			continue
		}

		// The length guard inside generateWithGuard is the verify
		// step; record it before moving on to the gate.
		if err := e.machine.Transition(&state, StateVerify); err != nil {
			return nil, err
		}
		if err := e.machine.Transition(&state, StateValidate); err != nil {
			return nil, err
		}
		verdict := e.gate.Validate(original, generated, it, current.Confidence, analysis)
		lastVerdict = verdict

		if accepted(verdict, current.ValidationLevel) {
			if err := e.machine.Transition(&state, StateApply); err != nil {
				return nil, err
			}
			log = append(log, fmt.Sprintf("attempt %d: validation passed in %s, applying", attempt, time.Since(started).Round(time.Millisecond)))
			executionsTotal.WithLabelValues("applied").Inc()
			attemptsPerExecution.Observe(float64(attempt))
			return &Result{
				Changes: []FileChange{{
					FilePath:   it.Target.FilePath,
					Action:     ActionModify,
					OldContent: original,
					NewContent: generated,
					Reasoning:  requestSummary(it),
				}},
				Validation: verdict,
				Attempts:   attempt,
				Log:        log,
			}, nil
		}

		log = append(log, fmt.Sprintf("attempt %d: validation failed after %s (%d issues)", attempt, time.Since(started).Round(time.Millisecond), len(verdict.Issues)))
		if attempt == maxAttempts {
			break
		}
		if current.Fallback != nil {
			if err := e.machine.Transition(&state, StateFallback); err != nil {
				return nil, err
			}
			fallbackHops.WithLabelValues(string(current.Approach)).Inc()
			current = current.Fallback
			log = append(log, fmt.Sprintf("falling back to %s (confidence %.2f)", current.Approach, current.Confidence), stepPlan(current))

			// The human-review tier never generates or applies; its
			// terminal output is a proposal.
			if current.Approach == confidence.ApproachHumanReview {
				if err := e.machine.Transition(&state, StatePropose); err != nil {
					return nil, err
				}
				res, err := e.propose(ctx, current, it, analysis)
				if err != nil {
					return nil, err
				}
				attemptsPerExecution.Observe(float64(attempt))
				res.Attempts = attempt
				res.Log = append(log, "rendered proposal for human review, nothing applied")
				return res, nil
			}
		} else if err := e.machine.Transition(&state, StateRetry); err != nil {
			return nil, err
		}
	}

	executionsTotal.WithLabelValues("exhausted").Inc()
	attemptsPerExecution.Observe(float64(maxAttempts))
	return nil, &ExecutionError{Err: ErrAttemptsExhausted, LastValidation: lastVerdict, Attempts: maxAttempts}
}

// generateWithGuard issues one generation call and enforces the
// output-length floor, allowing a single corrective retry.
func (e *Executor) generateWithGuard(ctx context.Context, s *ChangeStrategy, it *intent.ChangeIntent, analysis *impact.Analysis, original string, log *[]string) (string, error) {
	prompt := buildPrompt(s.Approach, it, analysis, original)

	generated, err := e.generate(ctx, s, prompt)
	if err != nil {
		return "", err
	}
	if !belowLengthFloor(original, generated) {
		return generated, nil
	}

	overDeletionRetries.Inc()
	*log = append(*log, fmt.Sprintf("output length %d below floor for %d original, retrying with corrective prompt", len(generated), len(original)))

	generated, err = e.generate(ctx, s, correctivePrompt(it, original, generated))
	if err != nil {
		return "", err
	}
	if belowLengthFloor(original, generated) {
		return "", ErrOverDeletion
	}
	return generated, nil
}

// generate runs the provider call under the strategy's generate-step
// timeout when one is declared.
func (e *Executor) generate(ctx context.Context, s *ChangeStrategy, prompt string) (string, error) {
	for _, step := range s.Steps {
		if step.Kind == StepGenerate && step.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, step.Timeout)
			defer cancel()
			break
		}
	}
	raw, err := e.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	return extractContent(raw), nil
}

func (e *Executor) targetContent(ctx context.Context, component *repomodel.Component) (string, error) {
	target := repomodel.NewTarget(component, e.reader)
	return target.Content(ctx)
}

// stepPlan renders a strategy's ordered step list for the execution
// log, annotating steps the executor performs no separate work for.
func stepPlan(s *ChangeStrategy) string {
	parts := make([]string, 0, len(s.Steps))
	for _, step := range s.Steps {
		p := string(step.Kind)
		if !step.Required {
			p += " (optional)"
		}
		parts = append(parts, p)
	}
	return "step plan: " + strings.Join(parts, ", ")
}

// accepted applies the tier's validation level to the gate verdict:
// strict and paranoid levels additionally reject passing results that
// carry warnings.
func accepted(verdict *validate.Result, level ValidationLevel) bool {
	if !verdict.Passed {
		return false
	}
	if level == ValidationStrict || level == ValidationParanoid {
		return len(verdict.Warnings) == 0
	}
	return true
}

func belowLengthFloor(original, generated string) bool {
	return float64(len(generated)) < lengthFloor*float64(len(original))
}
