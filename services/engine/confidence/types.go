// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package confidence aggregates resolution quality and impact-analysis
// certainty into a single score and selects an execution approach.
package confidence

import "github.com/RestyleHQ/restyle/services/engine/intent"

// Approach is one of the four execution-strategy tiers.
type Approach string

const (
	// ApproachDirect applies the change with minimal ceremony.
	ApproachDirect Approach = "high-confidence-direct"

	// ApproachGuided adds explicit preservation and scope guidance.
	ApproachGuided Approach = "medium-confidence-guided"

	// ApproachConservative adds hard constraints and tight budgets.
	ApproachConservative Approach = "low-confidence-conservative"

	// ApproachHumanReview never auto-applies; it produces a proposal.
	ApproachHumanReview Approach = "very-low-confidence-human-review"
)

// tierOrder lists approaches from most to least confident.
var tierOrder = []Approach{
	ApproachDirect,
	ApproachGuided,
	ApproachConservative,
	ApproachHumanReview,
}

// Rank returns the approach's position in the tier order (0 = direct).
func (a Approach) Rank() int {
	for i, t := range tierOrder {
		if t == a {
			return i
		}
	}
	return len(tierOrder) - 1
}

// Below returns the ordered tail of tiers less confident than a.
func (a Approach) Below() []Approach {
	rank := a.Rank()
	if rank+1 >= len(tierOrder) {
		return nil
	}
	out := make([]Approach, len(tierOrder)-rank-1)
	copy(out, tierOrder[rank+1:])
	return out
}

// Factors are the four independently computed confidence inputs,
// each in [0.0, 1.0].
type Factors struct {
	// VisualClarity grades how unambiguous the requested change is.
	VisualClarity float64 `json:"visual_clarity"`

	// ComponentUnderstanding grades how well the target is understood.
	ComponentUnderstanding float64 `json:"component_understanding"`

	// ChangeComplexity grades how mechanical the edit is (1.0 = trivial).
	ChangeComplexity float64 `json:"change_complexity"`

	// ContextCompleteness grades how much supporting context exists.
	ContextCompleteness float64 `json:"context_completeness"`
}

// Assessment is the assessor's output for one intent.
type Assessment struct {
	// Confidence is the weighted aggregate of the four factors.
	Confidence float64 `json:"confidence"`

	// Factors are the individual inputs.
	Factors Factors `json:"factors"`

	// RecommendedApproach is the selected execution tier.
	RecommendedApproach Approach `json:"recommended_approach"`

	// FallbackStrategies is the ordered tail of lower-commitment tiers.
	FallbackStrategies []Approach `json:"fallback_strategies"`

	// RiskLevel carries the risk grade forward for the executor.
	RiskLevel intent.RiskTier `json:"risk_level"`
}
