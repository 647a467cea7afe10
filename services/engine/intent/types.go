// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package intent resolves incoming change requests — visual DOM edits or
// natural-language instructions — to a structured ChangeIntent bound (or
// deliberately not bound) to a target component.
package intent

import "github.com/RestyleHQ/restyle/services/engine/repomodel"

// =============================================================================
// Change Requests
// =============================================================================

// DeltaCategory buckets a visual property delta by the kind of change.
type DeltaCategory string

const (
	CategoryStyle   DeltaCategory = "style"
	CategoryContent DeltaCategory = "content"
	CategoryLayout  DeltaCategory = "layout"
)

// PropertyDelta is one observed property change in a visual edit.
type PropertyDelta struct {
	// Property is the CSS/DOM property that changed (e.g., "font-size").
	Property string `json:"property"`

	// Before is the property's value prior to the edit.
	Before string `json:"before"`

	// After is the requested value.
	After string `json:"after"`

	// Category classifies the delta.
	Category DeltaCategory `json:"category"`
}

// ElementDescriptor identifies the edited DOM element.
type ElementDescriptor struct {
	// Selector is the CSS selector captured by the visual editor.
	Selector string `json:"selector"`

	// Tag is the element's tag name ("div", "button", ...).
	Tag string `json:"tag"`

	// Classes are the element's class names at capture time.
	Classes []string `json:"classes,omitempty"`

	// Text is the element's visible text, when captured.
	Text string `json:"text,omitempty"`
}

// VisualEdit is a change request captured from a visual DOM edit.
// Immutable once created.
type VisualEdit struct {
	Element ElementDescriptor `json:"element"`
	Deltas  []PropertyDelta   `json:"deltas"`
}

// NaturalLanguageEdit is a free-text change request.
// Immutable once created.
type NaturalLanguageEdit struct {
	// Instruction is the user's instruction verbatim.
	Instruction string `json:"instruction"`

	// TargetHint is an optional selector or component hint.
	TargetHint string `json:"target_hint,omitempty"`

	// DOMState optionally carries the current DOM serialization for
	// added resolution context.
	DOMState string `json:"dom_state,omitempty"`
}

// ChangeRequest is the union of the two request kinds. Exactly one of
// Visual or Natural is set.
type ChangeRequest struct {
	Visual  *VisualEdit          `json:"visual,omitempty"`
	Natural *NaturalLanguageEdit `json:"natural,omitempty"`
}

// IsVisual reports whether the request is a visual edit.
func (r ChangeRequest) IsVisual() bool { return r.Visual != nil }

// =============================================================================
// Resolved Intent
// =============================================================================

// ChangeType classifies what kind of change an instruction asks for.
type ChangeType string

const (
	ChangeContent   ChangeType = "content"
	ChangeStyling   ChangeType = "styling"
	ChangeLayout    ChangeType = "layout"
	ChangeStructure ChangeType = "structure"
	ChangeBehavior  ChangeType = "behavior"
	ChangeGeneral   ChangeType = "general"
)

// Scope estimates how much of the application an instruction touches.
type Scope string

const (
	ScopeNarrow   Scope = "narrow"
	ScopeModerate Scope = "moderate"
	ScopeBroad    Scope = "broad"
)

// RiskTier grades the risk of acting on an intent.
type RiskTier string

const (
	RiskLow      RiskTier = "low"
	RiskMedium   RiskTier = "medium"
	RiskHigh     RiskTier = "high"
	RiskCritical RiskTier = "critical"
)

// Priority grades how urgently an intent should be handled.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Candidate is a scored alternative target from fallback matching.
type Candidate struct {
	Component *repomodel.Component `json:"-"`
	Name      string               `json:"name"`
	Score     float64              `json:"score"`
}

// ChangeIntent is the resolved, structured form of a change request.
//
// Target may be nil: that is a valid low-confidence outcome meaning the
// request has broad or unresolved scope, and downstream stages must
// handle it without a single-file anchor.
type ChangeIntent struct {
	// ID uniquely identifies this intent for logging and correlation.
	ID string `json:"id"`

	// Type is the change-type classification.
	Type ChangeType `json:"type"`

	// Description is a human-readable summary of the requested change.
	Description string `json:"description"`

	// Request is the originating change request.
	Request ChangeRequest `json:"request"`

	// Target is the resolved component, nil for broad/unresolved scope.
	Target *repomodel.Component `json:"-"`

	// Candidates holds scored alternates when exact resolution failed.
	Candidates []Candidate `json:"candidates,omitempty"`

	// Deltas are the requested property changes. For natural-language
	// requests these are inferred from the instruction where possible.
	Deltas []PropertyDelta `json:"deltas,omitempty"`

	// Scope is the inferred breadth of the request.
	Scope Scope `json:"scope"`

	// Confidence grades resolution quality (0.0-1.0).
	Confidence float64 `json:"confidence"`

	// Risk is the resolver's risk estimate.
	Risk RiskTier `json:"risk"`

	// Priority is the handling priority.
	Priority Priority `json:"priority"`
}

// Resolved reports whether the intent is bound to a single component.
func (i *ChangeIntent) Resolved() bool { return i.Target != nil }
