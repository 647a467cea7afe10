// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package strategy

import (
	"math"
	"testing"

	"github.com/RestyleHQ/restyle/services/engine/confidence"
)

func TestBuild_FullChainWithDiscounts(t *testing.T) {
	assessment := &confidence.Assessment{
		Confidence:          0.9,
		RecommendedApproach: confidence.ApproachDirect,
		FallbackStrategies:  confidence.ApproachDirect.Below(),
	}

	chain := Build(assessment)

	wantApproaches := []confidence.Approach{
		confidence.ApproachDirect,
		confidence.ApproachGuided,
		confidence.ApproachConservative,
		confidence.ApproachHumanReview,
	}
	wantConfidence := []float64{0.9, 0.72, 0.576, 0.4608}

	i := 0
	for s := chain; s != nil; s = s.Fallback {
		if i >= len(wantApproaches) {
			t.Fatal("chain longer than the four tiers")
		}
		if s.Approach != wantApproaches[i] {
			t.Errorf("tier %d approach = %s, want %s", i, s.Approach, wantApproaches[i])
		}
		if math.Abs(s.Confidence-wantConfidence[i]) > 1e-9 {
			t.Errorf("tier %d confidence = %v, want %v", i, s.Confidence, wantConfidence[i])
		}
		i++
	}
	if i != 4 {
		t.Errorf("chain length = %d, want 4", i)
	}
}

func TestBuild_BottomTierHasNoFallback(t *testing.T) {
	assessment := &confidence.Assessment{
		Confidence:          0.2,
		RecommendedApproach: confidence.ApproachHumanReview,
	}
	chain := Build(assessment)
	if chain.Fallback != nil {
		t.Error("human-review tier must not have a fallback")
	}
	if chain.ValidationLevel != ValidationParanoid {
		t.Errorf("ValidationLevel = %s, want paranoid", chain.ValidationLevel)
	}
}

func TestTierStrategy_StepShapes(t *testing.T) {
	direct := tierStrategy(confidence.ApproachDirect, 0.9)
	if len(direct.Steps) != 3 || direct.Steps[0].Kind != StepGenerate {
		t.Errorf("direct steps = %+v, want generate/validate/apply", direct.Steps)
	}
	if direct.ValidationLevel != ValidationBasic {
		t.Errorf("direct ValidationLevel = %s, want basic", direct.ValidationLevel)
	}

	conservative := tierStrategy(confidence.ApproachConservative, 0.5)
	if conservative.ValidationLevel != ValidationStrict {
		t.Errorf("conservative ValidationLevel = %s, want strict", conservative.ValidationLevel)
	}
	var hasVerify bool
	for _, step := range conservative.Steps {
		if step.Kind == StepVerify {
			hasVerify = true
		}
		if step.Kind == StepGenerate && step.Timeout == 0 {
			t.Error("conservative generate step must declare a timeout")
		}
	}
	if !hasVerify {
		t.Error("conservative tier must include an explicit verify step")
	}
}

// Analyze steps at the middle tiers ride inside the generation prompt;
// they are planned but not independently performed.
func TestTierStrategy_AnalyzeStepsAreOptional(t *testing.T) {
	for _, approach := range []confidence.Approach{confidence.ApproachGuided, confidence.ApproachConservative} {
		s := tierStrategy(approach, 0.5)
		for _, step := range s.Steps {
			if step.Kind == StepAnalyze && step.Required {
				t.Errorf("%s analyze step marked required", approach)
			}
			if step.Kind != StepAnalyze && !step.Required {
				t.Errorf("%s %s step marked optional", approach, step.Kind)
			}
		}
	}
}
