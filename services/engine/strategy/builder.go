// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package strategy

import (
	"time"

	"github.com/RestyleHQ/restyle/services/engine/confidence"
)

const (
	// fallbackDiscount is applied to the working confidence on each
	// fallback hop.
	fallbackDiscount = 0.8

	// conservativeGenerateTimeout bounds the provider call at the
	// conservative tier. Expiry is handled like any provider failure
	// and burns the attempt.
	conservativeGenerateTimeout = 30 * time.Second
)

// Build turns a confidence assessment into an executable strategy
// chain: the recommended tier's strategy with each fallback tier
// nested under it, confidence discounted per hop.
func Build(assessment *confidence.Assessment) *ChangeStrategy {
	root := tierStrategy(assessment.RecommendedApproach, assessment.Confidence)

	current := root
	conf := assessment.Confidence
	for _, approach := range assessment.FallbackStrategies {
		conf *= fallbackDiscount
		current.Fallback = tierStrategy(approach, conf)
		current = current.Fallback
	}
	return root
}

// tierStrategy returns the fixed step list and validation level for
// one tier. Lower-confidence tiers add steps and gate strictness;
// the human-review tier never reaches apply. Analyze steps at the
// guided and conservative tiers are optional: their restatements ride
// inside the generation prompt, so the executor performs no separate
// work for them.
func tierStrategy(approach confidence.Approach, conf float64) *ChangeStrategy {
	s := &ChangeStrategy{Approach: approach, Confidence: conf}

	switch approach {
	case confidence.ApproachDirect:
		s.ValidationLevel = ValidationBasic
		s.Steps = []Step{
			{Kind: StepGenerate, Description: "generate replacement content from the full file", Required: true},
			{Kind: StepValidate, Description: "validate scope, preservation, and intent", Required: true},
			{Kind: StepApply, Description: "emit the validated file change", Required: true},
		}
	case confidence.ApproachGuided:
		s.ValidationLevel = ValidationStandard
		s.Steps = []Step{
			{Kind: StepAnalyze, Description: "restate preservation rules and expected scope", Required: false},
			{Kind: StepGenerate, Description: "generate with preservation rules and scope numbers in the prompt", Required: true},
			{Kind: StepValidate, Description: "validate scope, preservation, and intent", Required: true},
			{Kind: StepApply, Description: "emit the validated file change", Required: true},
		}
	case confidence.ApproachConservative:
		s.ValidationLevel = ValidationStrict
		s.Steps = []Step{
			{Kind: StepAnalyze, Description: "restate hard constraints and line budget", Required: false},
			{Kind: StepGenerate, Description: "generate under hard structural constraints", Required: true, Timeout: conservativeGenerateTimeout},
			{Kind: StepVerify, Description: "verify output length against the original", Required: true},
			{Kind: StepValidate, Description: "validate scope, preservation, and intent", Required: true},
			{Kind: StepApply, Description: "emit the validated file change", Required: true},
		}
	default: // human review
		s.ValidationLevel = ValidationParanoid
		s.Steps = []Step{
			{Kind: StepAnalyze, Description: "render a proposal for human review", Required: true},
		}
	}
	return s
}
