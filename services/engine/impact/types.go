// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package impact estimates what a resolved change intent will touch:
// the direct edits, advisory cascade signals, preservation rules the
// generated output must honor, and an expected-scope estimate.
package impact

import "github.com/RestyleHQ/restyle/services/engine/intent"

// ChangeMagnitude buckets expected change size.
type ChangeMagnitude string

const (
	MagnitudeMinimal     ChangeMagnitude = "minimal"
	MagnitudeModerate    ChangeMagnitude = "moderate"
	MagnitudeSignificant ChangeMagnitude = "significant"
	MagnitudeMajor       ChangeMagnitude = "major"
)

// DirectChange is one concrete edit the target file needs.
type DirectChange struct {
	// Property is the requested property (e.g., "font-size").
	Property string `json:"property"`

	// From is the current value, when known.
	From string `json:"from,omitempty"`

	// To is the requested value.
	To string `json:"to"`

	// Expression is the idiom-specific form the edit should take: a
	// utility token ("text-base"), a cased declaration ("fontSize"),
	// or a kebab-case CSS property.
	Expression string `json:"expression"`

	// Confidence grades how mechanical this edit is (0.0-1.0).
	Confidence float64 `json:"confidence"`
}

// CascadeChange is an advisory signal that a change may require
// adjustments elsewhere. Never auto-applied.
type CascadeChange struct {
	// Description explains the possible follow-on adjustment.
	Description string `json:"description"`

	// Component names the affected component, when one is known.
	Component string `json:"component,omitempty"`

	// Required marks cascade entries that a consistent change set
	// should include (e.g., design-token updates).
	Required bool `json:"required"`

	// Confidence grades the signal (0.0-1.0).
	Confidence float64 `json:"confidence"`
}

// PreservationRule is an invariant that must hold equally in original
// and generated content.
type PreservationRule struct {
	// Name identifies the rule ("preserve exports", ...).
	Name string `json:"name"`

	// Pattern is the regular expression counted on both sides.
	Pattern string `json:"pattern"`

	// Critical rules fail validation on any count mismatch;
	// non-critical rules only warn.
	Critical bool `json:"critical"`
}

// ValidationCheck names a check the gate should run.
type ValidationCheck struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ExpectedScope is the analyzer's size estimate for the change.
type ExpectedScope struct {
	// Lines is the estimated changed-line count.
	Lines int `json:"lines"`

	// Files is the estimated changed-file count.
	Files int `json:"files"`

	// ChangeType is the magnitude tier derived from Lines.
	ChangeType ChangeMagnitude `json:"change_type"`

	// Risk follows the magnitude tier.
	Risk intent.RiskTier `json:"risk"`
}

// Analysis is the Impact Analyzer's output for one ChangeIntent.
//
// Analysis is deterministic: re-running the analyzer on the same
// (intent, component) pair yields an identical result.
type Analysis struct {
	// IntentID correlates the analysis with its ChangeIntent.
	IntentID string `json:"intent_id"`

	// DirectChanges are the concrete target-file edits.
	DirectChanges []DirectChange `json:"direct_changes"`

	// CascadeChanges are advisory follow-on signals.
	CascadeChanges []CascadeChange `json:"cascade_changes,omitempty"`

	// PreservationRules are invariants for the validation gate.
	PreservationRules []PreservationRule `json:"preservation_rules"`

	// ValidationChecks name the checks the gate should run.
	ValidationChecks []ValidationCheck `json:"validation_checks"`

	// ExpectedScope is the size estimate.
	ExpectedScope ExpectedScope `json:"expected_scope"`
}

// RequiredCascades returns the cascade entries flagged required.
func (a *Analysis) RequiredCascades() []CascadeChange {
	var out []CascadeChange
	for _, c := range a.CascadeChanges {
		if c.Required {
			out = append(out, c)
		}
	}
	return out
}

// CriticalRules returns the preservation rules flagged critical.
func (a *Analysis) CriticalRules() []PreservationRule {
	var out []PreservationRule
	for _, r := range a.PreservationRules {
		if r.Critical {
			out = append(out, r)
		}
	}
	return out
}
