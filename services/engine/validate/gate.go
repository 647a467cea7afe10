// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/RestyleHQ/restyle/services/engine/impact"
	"github.com/RestyleHQ/restyle/services/engine/intent"
)

const (
	// scopeMultiplier bounds the changed-line delta relative to the
	// analyzer's estimate.
	scopeMultiplier = 3

	// minimalScopeCeiling is the absolute line ceiling for a change
	// the analyzer classified as minimal.
	minimalScopeCeiling = 5

	// deletionCeiling is the maximum fraction of original lines that
	// may be removed.
	deletionCeiling = 0.5

	// warningPenalty is subtracted from the confidence for each
	// warning on a passing result.
	warningPenalty = 0.05
)

// Gate validates generated file content against the impact analysis
// before it may leave the engine.
//
// # Description
//
//	Runs four checks in a fixed order, short-circuiting to failure on
//	the first check that produces an error-severity issue: scope,
//	excessive deletion, preservation-rule survival, and intent
//	reflection. Non-critical signals become warnings and never fail
//	the result on their own.
//
// Thread Safety:
//
//	Safe for concurrent use; Gate holds no mutable state.
type Gate struct {
	strategies impact.StrategyTable
}

// NewGate creates a validation gate. A nil strategy table falls back
// to the default idiom strategies.
func NewGate(strategies impact.StrategyTable) *Gate {
	if strategies == nil {
		strategies = impact.DefaultStrategies()
	}
	return &Gate{strategies: strategies}
}

// Validate scores generated content against the original file, the
// resolved intent, and the impact analysis.
//
// # Inputs
//
//	original - The unmodified file content.
//	generated - The candidate replacement content.
//	it - The resolved change intent.
//	confidence - The assessor's aggregate confidence for the change.
//	analysis - The impact analysis for the same intent.
//
// # Outputs
//
//	A Result whose Passed field is true only when no check produced
//	an error-severity issue. The metrics are populated even on
//	failure so callers can report why the content was rejected.
func (g *Gate) Validate(original, generated string, it *intent.ChangeIntent, confidence float64, analysis *impact.Analysis) *Result {
	res := &Result{Metrics: computeMetrics(original, generated)}

	checks := []func(*Result, string, string, *intent.ChangeIntent, *impact.Analysis){
		g.checkScope,
		g.checkDeletion,
		g.checkPreservation,
		g.checkIntent,
	}
	for _, check := range checks {
		check(res, original, generated, it, analysis)
		if len(res.Errors()) > 0 {
			res.Passed = false
			res.Confidence = 0
			return res
		}
	}

	res.Passed = true
	res.Confidence = confidence - warningPenalty*float64(len(res.Warnings))
	if res.Confidence < 0 {
		res.Confidence = 0
	}
	return res
}

// checkScope rejects content whose changed-line delta exceeds the
// estimate by more than the scope multiplier, or the absolute ceiling
// for a minimal-magnitude change.
func (g *Gate) checkScope(res *Result, original, generated string, it *intent.ChangeIntent, analysis *impact.Analysis) {
	changed := res.Metrics.LinesChanged
	estimate := analysis.ExpectedScope.Lines

	if estimate > 0 && changed > scopeMultiplier*estimate {
		res.Issues = append(res.Issues, Issue{
			Check:    CheckScope,
			Severity: SeverityError,
			Message:  fmt.Sprintf("changed %d lines, estimate was %d (limit %d)", changed, estimate, scopeMultiplier*estimate),
		})
		return
	}
	if analysis.ExpectedScope.ChangeType == impact.MagnitudeMinimal && changed > minimalScopeCeiling {
		res.Issues = append(res.Issues, Issue{
			Check:    CheckScope,
			Severity: SeverityError,
			Message:  fmt.Sprintf("changed %d lines, minimal changes may touch at most %d", changed, minimalScopeCeiling),
		})
	}
}

// checkDeletion rejects content that removes more than half of the
// original lines.
func (g *Gate) checkDeletion(res *Result, original, generated string, it *intent.ChangeIntent, analysis *impact.Analysis) {
	total := len(splitLines(original))
	if total == 0 {
		return
	}
	if float64(res.Metrics.LinesRemoved) > deletionCeiling*float64(total) {
		res.Issues = append(res.Issues, Issue{
			Check:    CheckDeletion,
			Severity: SeverityError,
			Message:  fmt.Sprintf("removed %d of %d original lines", res.Metrics.LinesRemoved, total),
		})
	}
}

// checkPreservation requires every critical rule's pattern-match count
// to be equal between original and generated content. Non-critical
// mismatches become warnings.
func (g *Gate) checkPreservation(res *Result, original, generated string, it *intent.ChangeIntent, analysis *impact.Analysis) {
	for _, rule := range analysis.PreservationRules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("preservation rule %q has an invalid pattern: %v", rule.Name, err))
			continue
		}
		before := len(re.FindAllString(original, -1))
		after := len(re.FindAllString(generated, -1))
		if before == after {
			continue
		}
		msg := fmt.Sprintf("rule %q: %d matches in original, %d in generated", rule.Name, before, after)
		if rule.Critical {
			res.Issues = append(res.Issues, Issue{
				Check:    CheckPreservation,
				Severity: SeverityError,
				Message:  msg,
			})
		} else {
			res.Warnings = append(res.Warnings, msg)
		}
	}
}

// checkIntent requires the generated content to show evidence of every
// requested property delta: the property name directly, a
// case-converted form, or the idiom-specific proxy for the target's
// styling approach.
func (g *Gate) checkIntent(res *Result, original, generated string, it *intent.ChangeIntent, analysis *impact.Analysis) {
	for _, delta := range it.Deltas {
		if propertyEvidenced(generated, delta, g.proxyFor(it, delta)) {
			continue
		}
		res.Issues = append(res.Issues, Issue{
			Check:    CheckIntent,
			Severity: SeverityError,
			Message:  fmt.Sprintf("no evidence of requested property %q in generated content", delta.Property),
		})
	}
}

func (g *Gate) proxyFor(it *intent.ChangeIntent, delta intent.PropertyDelta) string {
	if it.Target == nil {
		return ""
	}
	strategy, ok := g.strategies[it.Target.Styling]
	if !ok {
		return ""
	}
	return strategy.Proxy(delta.Property, delta.After)
}

func propertyEvidenced(generated string, delta intent.PropertyDelta, proxy string) bool {
	lower := strings.ToLower(generated)
	prop := strings.ToLower(delta.Property)
	if strings.Contains(lower, prop) {
		return true
	}
	if strings.Contains(lower, strings.ToLower(camelName(prop))) {
		return true
	}
	if proxy != "" && strings.Contains(generated, proxy) {
		return true
	}
	return false
}

// camelName converts a kebab-case property to its camelCase form.
func camelName(property string) string {
	parts := strings.Split(property, "-")
	if len(parts) == 1 {
		return property
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
