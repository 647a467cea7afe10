// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package confidence

import (
	"testing"

	"github.com/RestyleHQ/restyle/services/engine/impact"
	"github.com/RestyleHQ/restyle/services/engine/intent"
	"github.com/RestyleHQ/restyle/services/engine/repomodel"
)

// The tier mapping is a total, deterministic function of the boundary
// values; scores exactly at a boundary resolve to the higher tier.
func TestApproachFor_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Approach
	}{
		{1.0, ApproachDirect},
		{0.8, ApproachDirect},
		{0.79999, ApproachGuided},
		{0.6, ApproachGuided},
		{0.59999, ApproachConservative},
		{0.35, ApproachConservative},
		{0.34999, ApproachHumanReview},
		{0.2, ApproachHumanReview},
		{0.0, ApproachHumanReview},
	}
	for _, tc := range cases {
		if got := approachFor(tc.score); got != tc.want {
			t.Errorf("approachFor(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestApproach_Below(t *testing.T) {
	cases := []struct {
		approach Approach
		want     int
	}{
		{ApproachDirect, 3},
		{ApproachGuided, 2},
		{ApproachConservative, 1},
		{ApproachHumanReview, 0},
	}
	for _, tc := range cases {
		below := tc.approach.Below()
		if len(below) != tc.want {
			t.Errorf("%s.Below() len = %d, want %d", tc.approach, len(below), tc.want)
		}
		// Each fallback must be strictly less confident than its
		// predecessor.
		prev := tc.approach
		for _, b := range below {
			if b.Rank() != prev.Rank()+1 {
				t.Errorf("%s.Below() not ordered: %s after %s", tc.approach, b, prev)
			}
			prev = b
		}
	}
}

func boundIntent() *intent.ChangeIntent {
	return &intent.ChangeIntent{
		ID:         "i1",
		Type:       intent.ChangeStyling,
		Confidence: 0.9,
		Risk:       intent.RiskLow,
		Request: intent.ChangeRequest{Visual: &intent.VisualEdit{
			Element: intent.ElementDescriptor{Selector: "section.hero"},
		}},
		Target: &repomodel.Component{
			Name:       "HeroSection",
			Complexity: repomodel.ComplexitySimple,
			Content:    "export function HeroSection() {}",
		},
		Deltas: []intent.PropertyDelta{
			{Property: "font-size", Before: "14px", After: "16px"},
		},
	}
}

func minimalAnalysis() *impact.Analysis {
	return &impact.Analysis{
		IntentID: "i1",
		DirectChanges: []impact.DirectChange{
			{Property: "font-size", To: "16px", Expression: "text-base", Confidence: 0.95},
		},
		PreservationRules: []impact.PreservationRule{
			{Name: impact.RuleExports, Pattern: "export", Critical: true},
		},
		ExpectedScope: impact.ExpectedScope{
			Lines: 2, Files: 1,
			ChangeType: impact.MagnitudeMinimal,
			Risk:       intent.RiskLow,
		},
	}
}

func TestAssess_HighConfidencePath(t *testing.T) {
	a := NewAssessor(repomodel.NewIndex(repomodel.Snapshot{}))

	got := a.Assess(boundIntent(), minimalAnalysis())

	if got.Confidence < thresholdDirect {
		t.Errorf("Confidence = %.3f, want >= %.2f for a clean visual edit", got.Confidence, thresholdDirect)
	}
	if got.RecommendedApproach != ApproachDirect {
		t.Errorf("RecommendedApproach = %s, want direct", got.RecommendedApproach)
	}
	if len(got.FallbackStrategies) != 3 {
		t.Errorf("FallbackStrategies = %d, want 3", len(got.FallbackStrategies))
	}
}

func TestAssess_UnresolvedTargetFloorsAtGuided(t *testing.T) {
	a := NewAssessor(repomodel.NewIndex(repomodel.Snapshot{}))

	it := &intent.ChangeIntent{
		ID:         "i2",
		Type:       intent.ChangeGeneral,
		Confidence: 0.3,
		Risk:       intent.RiskHigh,
		Scope:      intent.ScopeBroad,
		Request: intent.ChangeRequest{Natural: &intent.NaturalLanguageEdit{
			Instruction: "make it better",
		}},
	}
	analysis := &impact.Analysis{
		IntentID: "i2",
		ExpectedScope: impact.ExpectedScope{
			Lines: 20, Files: 1,
			ChangeType: impact.MagnitudeSignificant,
			Risk:       intent.RiskHigh,
		},
	}

	got := a.Assess(it, analysis)

	if got.RecommendedApproach != ApproachGuided {
		t.Errorf("RecommendedApproach = %s, want guided floor for unresolved target", got.RecommendedApproach)
	}
	if got.Confidence >= thresholdGuided {
		t.Errorf("Confidence = %.3f, expected raw score below guided threshold", got.Confidence)
	}
}

func TestAssess_FactorsWithinRange(t *testing.T) {
	a := NewAssessor(repomodel.NewIndex(repomodel.Snapshot{}))
	got := a.Assess(boundIntent(), minimalAnalysis())

	for name, v := range map[string]float64{
		"VisualClarity":          got.Factors.VisualClarity,
		"ComponentUnderstanding": got.Factors.ComponentUnderstanding,
		"ChangeComplexity":       got.Factors.ChangeComplexity,
		"ContextCompleteness":    got.Factors.ContextCompleteness,
	} {
		if v < 0 || v > 1 {
			t.Errorf("factor %s = %v outside [0, 1]", name, v)
		}
	}
}

// Higher factor values must monotonically increase the aggregate.
func TestAssess_MonotonicInResolverConfidence(t *testing.T) {
	a := NewAssessor(repomodel.NewIndex(repomodel.Snapshot{}))

	low := boundIntent()
	low.Confidence = 0.4
	high := boundIntent()
	high.Confidence = 0.9

	if a.Assess(low, minimalAnalysis()).Confidence >= a.Assess(high, minimalAnalysis()).Confidence {
		t.Error("aggregate confidence must increase with resolver confidence")
	}
}

func TestAssess_RiskTakesGraverEstimate(t *testing.T) {
	a := NewAssessor(repomodel.NewIndex(repomodel.Snapshot{}))

	it := boundIntent()
	it.Risk = intent.RiskLow
	analysis := minimalAnalysis()
	analysis.ExpectedScope.Risk = intent.RiskHigh

	if got := a.Assess(it, analysis); got.RiskLevel != intent.RiskHigh {
		t.Errorf("RiskLevel = %s, want high", got.RiskLevel)
	}
}
