// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package confidence

import (
	"github.com/RestyleHQ/restyle/services/engine/impact"
	"github.com/RestyleHQ/restyle/services/engine/intent"
	"github.com/RestyleHQ/restyle/services/engine/repomodel"
)

// Tier thresholds. A score exactly at a boundary resolves to the
// higher tier.
const (
	thresholdDirect       = 0.8
	thresholdGuided       = 0.6
	thresholdConservative = 0.35
)

// Factor weights. Fixed and documented: resolution quality and target
// understanding dominate because they decide whether generation is
// even aimed at the right file; complexity and context refine within
// that. Higher factor values always increase the aggregate.
const (
	weightVisualClarity          = 0.3
	weightComponentUnderstanding = 0.3
	weightChangeComplexity       = 0.2
	weightContextCompleteness    = 0.2
)

// Assessor scores intents and selects execution approaches.
//
// # Thread Safety
//
// Assessor is stateless and safe for concurrent use.
type Assessor struct {
	model repomodel.Model
}

// NewAssessor creates an Assessor bound to a repository model.
func NewAssessor(model repomodel.Model) *Assessor {
	return &Assessor{model: model}
}

// Assess combines the resolver's confidence, the analyzer's structural
// certainty, and contextual completeness into an Assessment.
//
// # Description
//
// The four factors are computed independently, aggregated by fixed
// weighted mean, and mapped through the tier thresholds. An unresolved
// target floors the approach at guided tier regardless of score: only
// guided tier and above carry the broad-scope execution path.
//
// # Inputs
//
//   - it: The resolved intent. Must not be nil.
//   - analysis: The impact analysis for the intent. Must not be nil.
//
// # Outputs
//
//   - *Assessment: Score, factors, approach, and ordered fallbacks.
func (a *Assessor) Assess(it *intent.ChangeIntent, analysis *impact.Analysis) *Assessment {
	factors := Factors{
		VisualClarity:          visualClarity(it),
		ComponentUnderstanding: componentUnderstanding(it),
		ChangeComplexity:       changeComplexity(analysis),
		ContextCompleteness:    contextCompleteness(it, analysis),
	}

	score := weightVisualClarity*factors.VisualClarity +
		weightComponentUnderstanding*factors.ComponentUnderstanding +
		weightChangeComplexity*factors.ChangeComplexity +
		weightContextCompleteness*factors.ContextCompleteness

	approach := approachFor(score)

	// The broad-scope path exists only at guided tier and above, so an
	// unbound target must not sink below it.
	if !it.Resolved() && approach.Rank() > ApproachGuided.Rank() {
		approach = ApproachGuided
	}

	return &Assessment{
		Confidence:          score,
		Factors:             factors,
		RecommendedApproach: approach,
		FallbackStrategies:  approach.Below(),
		RiskLevel:           riskFor(it, analysis),
	}
}

// approachFor is the total, deterministic tier mapping. Boundary
// values resolve upward.
func approachFor(score float64) Approach {
	switch {
	case score >= thresholdDirect:
		return ApproachDirect
	case score >= thresholdGuided:
		return ApproachGuided
	case score >= thresholdConservative:
		return ApproachConservative
	default:
		return ApproachHumanReview
	}
}

// visualClarity is the resolver's own confidence in the request.
func visualClarity(it *intent.ChangeIntent) float64 {
	return it.Confidence
}

// componentUnderstanding grades the binding to a target component.
func componentUnderstanding(it *intent.ChangeIntent) float64 {
	if !it.Resolved() {
		return 0.2
	}
	score := 0.6
	switch it.Target.Complexity {
	case repomodel.ComplexitySimple:
		score += 0.3
	case repomodel.ComplexityModerate:
		score += 0.2
	case repomodel.ComplexityComplex:
		score += 0.05
	}
	if it.Target.Content != "" {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// changeComplexity inverts the analyzer's size estimate: small
// mechanical edits score high.
func changeComplexity(analysis *impact.Analysis) float64 {
	base := 0.0
	switch analysis.ExpectedScope.ChangeType {
	case impact.MagnitudeMinimal:
		base = 0.95
	case impact.MagnitudeModerate:
		base = 0.7
	case impact.MagnitudeSignificant:
		base = 0.45
	default:
		base = 0.2
	}

	// Low-confidence direct changes drag the factor down.
	if n := len(analysis.DirectChanges); n > 0 {
		sum := 0.0
		for _, dc := range analysis.DirectChanges {
			sum += dc.Confidence
		}
		base = (base + sum/float64(n)) / 2
	}
	return base
}

// contextCompleteness grades what else the assessor has to work with.
func contextCompleteness(it *intent.ChangeIntent, analysis *impact.Analysis) float64 {
	score := 0.3
	if len(analysis.PreservationRules) > 0 {
		score += 0.3
	}
	if len(it.Deltas) > 0 {
		score += 0.2
	}
	if it.Request.Natural != nil && it.Request.Natural.DOMState != "" {
		score += 0.2
	}
	if it.Request.IsVisual() {
		score += 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func riskFor(it *intent.ChangeIntent, analysis *impact.Analysis) intent.RiskTier {
	// The analyzer's estimate wins when it is graver than the
	// resolver's.
	if rankRisk(analysis.ExpectedScope.Risk) > rankRisk(it.Risk) {
		return analysis.ExpectedScope.Risk
	}
	return it.Risk
}

func rankRisk(r intent.RiskTier) int {
	switch r {
	case intent.RiskLow:
		return 0
	case intent.RiskMedium:
		return 1
	case intent.RiskHigh:
		return 2
	default:
		return 3
	}
}
