// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package impact

import (
	"context"
	"strings"

	"github.com/RestyleHQ/restyle/services/engine/intent"
	"github.com/RestyleHQ/restyle/services/engine/repomodel"
)

// Direct-change confidence by property class. Simple enumerable
// properties map mechanically; layout properties interact with
// surrounding structure; everything else is a guess.
const (
	confidenceExactToken = 0.95
	confidenceSimple     = 0.9
	confidenceLayout     = 0.7
	confidenceOther      = 0.5
)

// simpleProperties are mechanically mappable.
var simpleProperties = map[string]bool{
	"color": true, "background-color": true, "font-size": true,
	"font-weight": true, "margin": true, "margin-top": true,
	"margin-bottom": true, "margin-left": true, "margin-right": true,
	"padding": true, "padding-top": true, "padding-bottom": true,
	"padding-left": true, "padding-right": true, "border-radius": true,
}

// layoutProperties interact with surrounding structure.
var layoutProperties = map[string]bool{
	"display": true, "position": true, "flex-direction": true,
	"justify-content": true, "align-items": true, "gap": true,
	"width": true, "height": true, "top": true, "left": true,
	"right": true, "bottom": true, "grid-template-columns": true,
}

// tokenSensitiveProperties trigger the design-token consistency
// cascade when they change off-scale.
var tokenSensitiveProperties = map[string]bool{
	"color": true, "background-color": true, "font-size": true,
	"margin": true, "padding": true, "gap": true,
}

// Analyzer computes the impact of a resolved change intent.
//
// # Thread Safety
//
// Analyzer is safe for concurrent use; the strategy table is read-only
// after construction.
type Analyzer struct {
	model      repomodel.Model
	strategies StrategyTable
}

// NewAnalyzer creates an Analyzer with the given strategy table.
// A nil table uses DefaultStrategies.
func NewAnalyzer(model repomodel.Model, strategies StrategyTable) *Analyzer {
	if strategies == nil {
		strategies = DefaultStrategies()
	}
	return &Analyzer{model: model, strategies: strategies}
}

// Strategy returns the styling strategy for an approach, falling back
// to the stylesheet idiom for unknown approaches.
func (a *Analyzer) Strategy(approach repomodel.StylingApproach) StylingStrategy {
	if s, ok := a.strategies[approach]; ok {
		return s
	}
	return kebabStrategy{}
}

// Analyze computes the impact analysis for one change intent.
//
// # Description
//
// Converts each requested property delta into an idiom-specific direct
// change, derives advisory cascade signals and preservation rules, and
// estimates the expected scope. The result is deterministic for a
// given (intent, target) pair.
//
// # Inputs
//
//   - ctx: Used only for the lazy content fetch on the target.
//   - it: The resolved intent. Must not be nil.
//   - target: The target component wrapper, nil for broad scope. When
//     nil, no preservation rules are derived and the scope estimate
//     falls back to the intent's breadth.
//
// # Outputs
//
//   - *Analysis: The impact analysis.
//   - error: Non-nil only when the target's content fetch fails.
func (a *Analyzer) Analyze(ctx context.Context, it *intent.ChangeIntent, target *repomodel.Target) (*Analysis, error) {
	analysis := &Analysis{IntentID: it.ID}

	var strategy StylingStrategy = kebabStrategy{}
	if target != nil {
		strategy = a.Strategy(target.Component().Styling)
	}

	// Direct changes from property deltas.
	for _, d := range it.Deltas {
		expression, exact := strategy.Express(d.Property, d.After)
		analysis.DirectChanges = append(analysis.DirectChanges, DirectChange{
			Property:   d.Property,
			From:       d.Before,
			To:         d.After,
			Expression: expression,
			Confidence: directConfidence(d.Property, exact),
		})

		// Off-scale changes to token-backed properties threaten the
		// shared scale; an exact token match already conforms to it.
		if !exact && a.model.HasDesignTokens() && tokenSensitiveProperties[strings.ToLower(d.Property)] {
			analysis.CascadeChanges = append(analysis.CascadeChanges, CascadeChange{
				Description: "design-token consistency: " + d.Property + " changes off the shared scale",
				Required:    true,
				Confidence:  0.8,
			})
		}
	}

	if target != nil {
		c := target.Component()

		if len(c.Dependents) > 0 {
			analysis.CascadeChanges = append(analysis.CascadeChanges, CascadeChange{
				Description: "parent container may need adjustment",
				Component:   c.Dependents[0],
				Required:    false,
				Confidence:  0.4,
			})
		}

		content, err := target.Content(ctx)
		if err != nil {
			return nil, err
		}
		analysis.PreservationRules = preservationRulesFor(content)
	}

	analysis.ValidationChecks = []ValidationCheck{
		{Name: "scope", Description: "changed lines within expected-scope bounds"},
		{Name: "deletion", Description: "no excessive deletion"},
		{Name: "preservation", Description: "critical structure survives"},
		{Name: "intent", Description: "requested change is reflected"},
	}

	analysis.ExpectedScope = a.expectedScope(it, analysis)
	return analysis, nil
}

// expectedScope estimates size: two lines per direct change plus three
// per required cascade, one file plus one per required cascade.
func (a *Analyzer) expectedScope(it *intent.ChangeIntent, analysis *Analysis) ExpectedScope {
	required := len(analysis.RequiredCascades())

	lines := len(analysis.DirectChanges)*2 + required*3
	if len(analysis.DirectChanges) == 0 {
		// Natural-language requests without extractable deltas: size by
		// breadth.
		switch it.Scope {
		case intent.ScopeBroad:
			lines = 20
		case intent.ScopeModerate:
			lines = 10
		default:
			lines = 4
		}
	}

	scope := ExpectedScope{
		Lines: lines,
		Files: 1 + required,
	}

	switch {
	case lines <= 3:
		scope.ChangeType = MagnitudeMinimal
	case lines <= 10:
		scope.ChangeType = MagnitudeModerate
	case lines <= 25:
		scope.ChangeType = MagnitudeSignificant
	default:
		scope.ChangeType = MagnitudeMajor
	}

	switch scope.ChangeType {
	case MagnitudeMinimal:
		scope.Risk = intent.RiskLow
	case MagnitudeModerate:
		scope.Risk = intent.RiskMedium
	default:
		scope.Risk = intent.RiskHigh
	}

	return scope
}

func directConfidence(property string, exact bool) float64 {
	lower := strings.ToLower(property)
	switch {
	case exact && simpleProperties[lower]:
		return confidenceExactToken
	case simpleProperties[lower]:
		return confidenceSimple
	case layoutProperties[lower]:
		return confidenceLayout
	default:
		return confidenceOther
	}
}
