// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package intent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/RestyleHQ/restyle/services/engine/repomodel"
)

// maxFallbackCandidates caps the scored candidate list returned when an
// exact selector lookup misses.
const maxFallbackCandidates = 3

// Natural-language resolution confidence is clamped to this range:
// free text never earns full certainty and never drops to zero, because
// an unresolved target is a valid outcome rather than an error.
const (
	nlConfidenceFloor = 0.3
	nlConfidenceCeil  = 0.9
)

// Resolver maps change requests to ChangeIntents against a repository
// model.
//
// # Thread Safety
//
// Resolver is stateless and safe for concurrent use.
type Resolver struct {
	model repomodel.Model
}

// NewResolver creates a Resolver bound to a repository model.
func NewResolver(model repomodel.Model) *Resolver {
	return &Resolver{model: model}
}

// Resolve maps a change request to a ChangeIntent.
//
// # Description
//
// Visual edits resolve through the selector lookup table first, then
// fall back to tag+class matching across all indexed components.
// Natural-language edits classify the instruction, infer scope, and try
// to name a target from the hint or common UI-region names.
//
// Resolution never fails: an unresolved target is a valid low-confidence
// outcome, not an error. The only invariant is that exactly one request
// kind must be set.
//
// # Inputs
//
//   - request: The incoming change request.
//
// # Outputs
//
//   - *ChangeIntent: The resolved intent, Target possibly nil.
//   - error: Non-nil only for a malformed request (neither kind set).
func (r *Resolver) Resolve(request ChangeRequest) (*ChangeIntent, error) {
	switch {
	case request.Visual != nil:
		return r.resolveVisual(request), nil
	case request.Natural != nil:
		return r.resolveNatural(request), nil
	default:
		return nil, ErrEmptyRequest
	}
}

// resolveVisual resolves a visual edit through selector lookup with a
// tag+class fallback.
func (r *Resolver) resolveVisual(request ChangeRequest) *ChangeIntent {
	edit := request.Visual

	it := &ChangeIntent{
		ID:          uuid.NewString(),
		Type:        visualChangeType(edit.Deltas),
		Request:     request,
		Deltas:      edit.Deltas,
		Scope:       ScopeNarrow,
		Priority:    PriorityNormal,
		Description: describeVisual(edit),
	}

	// Exact selector lookup.
	if c, ok := r.model.BySelector(edit.Element.Selector); ok {
		it.Target = c
		it.Confidence = blendVisualConfidence(1.0, c)
		it.Risk = riskForComplexity(c.Complexity)
		return it
	}

	// Fallback: score every indexed component by tag + class overlap.
	candidates := r.matchByTagAndClasses(edit.Element)
	it.Candidates = candidates

	if len(candidates) > 0 && candidates[0].Score >= 0.5 {
		it.Target = candidates[0].Component
		it.Confidence = blendVisualConfidence(candidates[0].Score, candidates[0].Component)
		it.Risk = riskForComplexity(candidates[0].Component.Complexity)
		return it
	}

	// Nothing convincing: leave the target unset.
	it.Scope = ScopeBroad
	it.Confidence = 0.3
	it.Risk = RiskHigh
	return it
}

// resolveNatural resolves a free-text instruction.
func (r *Resolver) resolveNatural(request ChangeRequest) *ChangeIntent {
	edit := request.Natural
	instruction := edit.Instruction

	it := &ChangeIntent{
		ID:          uuid.NewString(),
		Type:        ClassifyInstruction(instruction),
		Request:     request,
		Scope:       InferScope(instruction),
		Priority:    PriorityNormal,
		Description: strings.TrimSpace(instruction),
	}

	// Target naming, in precedence order: explicit selector hint,
	// UI-region keyword, nothing.
	if edit.TargetHint != "" {
		if c, ok := r.model.BySelector(edit.TargetHint); ok {
			it.Target = c
		} else if c, ok := r.model.ByName(edit.TargetHint); ok {
			it.Target = c
		}
	}
	if it.Target == nil {
		if region := regionNameIn(instruction); region != "" {
			if c, ok := r.matchRegion(region); ok {
				it.Target = c
			}
		}
	}

	// Confidence: base plus target presence, specificity, and context.
	confidence := 0.4
	if it.Target != nil {
		confidence += 0.25
	}
	confidence += 0.25 * instructionSpecificity(instruction)
	if edit.DOMState != "" {
		confidence += 0.1
	}
	it.Confidence = clamp(confidence, nlConfidenceFloor, nlConfidenceCeil)

	if it.Target != nil {
		it.Risk = riskForComplexity(it.Target.Complexity)
	} else {
		it.Scope = ScopeBroad
		it.Risk = RiskHigh
	}
	return it
}

// matchByTagAndClasses scores all indexed components against the edited
// element and returns the top candidates, best first.
func (r *Resolver) matchByTagAndClasses(el ElementDescriptor) []Candidate {
	var out []Candidate
	for _, c := range r.model.Components() {
		score := 0.0
		if c.Tag != "" && strings.EqualFold(c.Tag, el.Tag) {
			score += 0.4
		}
		if overlap := classOverlap(el.Classes, c.Classes); overlap > 0 {
			// Full overlap of the element's classes is worth 0.6.
			score += 0.6 * overlap
		}
		if score > 0 {
			out = append(out, Candidate{Component: c, Name: c.Name, Score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > maxFallbackCandidates {
		out = out[:maxFallbackCandidates]
	}
	return out
}

// matchRegion finds a component whose name or classes mention a UI
// region ("header", "hero", ...).
func (r *Resolver) matchRegion(region string) (*repomodel.Component, bool) {
	for _, c := range r.model.Components() {
		if strings.Contains(strings.ToLower(c.Name), region) {
			return c, true
		}
		for _, cls := range c.Classes {
			if strings.Contains(strings.ToLower(cls), region) {
				return c, true
			}
		}
	}
	return nil, false
}

// classOverlap returns the fraction of the element's classes present on
// the component, 0 when the element carries none.
func classOverlap(elementClasses, componentClasses []string) float64 {
	if len(elementClasses) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(componentClasses))
	for _, c := range componentClasses {
		set[strings.ToLower(c)] = struct{}{}
	}
	matched := 0
	for _, c := range elementClasses {
		if _, ok := set[strings.ToLower(c)]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(elementClasses))
}

// blendVisualConfidence blends selector-match quality with component
// complexity: a perfect match on a complex component is still riskier
// to act on than one on a simple component.
func blendVisualConfidence(matchQuality float64, c *repomodel.Component) float64 {
	complexityFactor := 1.0
	switch c.Complexity {
	case repomodel.ComplexityModerate:
		complexityFactor = 0.9
	case repomodel.ComplexityComplex:
		complexityFactor = 0.75
	}
	return clamp(matchQuality*complexityFactor, 0.0, 1.0)
}

func riskForComplexity(tier repomodel.ComplexityTier) RiskTier {
	switch tier {
	case repomodel.ComplexitySimple:
		return RiskLow
	case repomodel.ComplexityModerate:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// visualChangeType derives the change type from the dominant delta
// category.
func visualChangeType(deltas []PropertyDelta) ChangeType {
	counts := map[DeltaCategory]int{}
	for _, d := range deltas {
		counts[d.Category]++
	}
	best, bestN := ChangeStyling, 0
	for cat, n := range counts {
		if n > bestN {
			bestN = n
			switch cat {
			case CategoryContent:
				best = ChangeContent
			case CategoryLayout:
				best = ChangeLayout
			default:
				best = ChangeStyling
			}
		}
	}
	return best
}

func describeVisual(edit *VisualEdit) string {
	if len(edit.Deltas) == 0 {
		return fmt.Sprintf("visual edit on %s", edit.Element.Selector)
	}
	parts := make([]string, 0, len(edit.Deltas))
	for _, d := range edit.Deltas {
		parts = append(parts, fmt.Sprintf("%s: %s -> %s", d.Property, d.Before, d.After))
	}
	return fmt.Sprintf("visual edit on %s (%s)", edit.Element.Selector, strings.Join(parts, ", "))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
