// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package intent

import (
	"regexp"
	"strings"
)

// Keyword pattern sets for instruction classification. Shallow by
// design: the engine gates on downstream validation, not on parsing
// accuracy here.
var (
	contentKeywords = []string{
		"text", "copy", "wording", "say", "says", "headline", "title",
		"label", "caption", "paragraph", "rename", "reword", "word",
	}
	stylingKeywords = []string{
		"color", "colour", "font", "bold", "italic", "background",
		"shade", "darker", "lighter", "bigger", "smaller", "size",
		"border", "shadow", "rounded", "opacity", "style",
	}
	layoutKeywords = []string{
		"move", "align", "center", "centre", "spacing", "margin",
		"padding", "gap", "position", "left", "right", "top", "bottom",
		"stack", "row", "column", "grid", "layout", "wrap",
	}
	structureKeywords = []string{
		"add", "remove", "delete", "duplicate", "section", "component",
		"element", "insert", "replace", "swap", "reorder",
	}
	behaviorKeywords = []string{
		"click", "hover", "open", "close", "toggle", "link", "navigate",
		"submit", "scroll", "animate", "animation", "disable", "enable",
	}

	// broadQualifiers widen scope to the whole application.
	broadQualifiers = []string{
		"all", "every", "everywhere", "entire", "whole", "across", "global",
	}

	// moderateQualifiers widen scope past a single element.
	moderateQualifiers = []string{
		"page", "section", "these", "both", "several",
	}

	// vaguenessMarkers lower resolution confidence: they ask for an
	// outcome without saying what to change.
	vaguenessMarkers = []string{
		"better", "nicer", "improve", "cleaner", "modern", "fresh",
		"pop", "professional", "prettier",
	}

	// regionNames are common UI regions an instruction can name directly.
	regionNames = []string{
		"header", "footer", "hero", "navbar", "nav", "sidebar", "banner",
		"card", "modal", "form", "button", "menu", "gallery", "testimonial",
	}

	// concreteValuePattern matches explicit units, hex colors, and
	// rgb()/hsl() values — markers of a specific instruction.
	concreteValuePattern = regexp.MustCompile(
		`(?i)(\d+(\.\d+)?(px|rem|em|%|vh|vw|pt)\b|#[0-9a-f]{3,8}\b|rgba?\(|hsla?\()`)

	// alignmentKeywords are concrete even without units.
	alignmentKeywords = []string{
		"center", "centre", "left-align", "right-align", "justify",
		"top-align", "bottom-align",
	}

	// cssColorNames is the subset of named colors worth recognizing as
	// concrete values in instructions.
	cssColorNames = []string{
		"red", "blue", "green", "black", "white", "gray", "grey",
		"orange", "purple", "pink", "yellow", "teal", "navy", "indigo",
	}
)

// ClassifyInstruction maps a free-text instruction to a ChangeType
// using keyword pattern sets. The first category with the highest hit
// count wins; ties resolve in the order content, styling, layout,
// structure, behavior. No hits yield ChangeGeneral.
func ClassifyInstruction(instruction string) ChangeType {
	lower := strings.ToLower(instruction)

	type scored struct {
		t    ChangeType
		hits int
	}
	candidates := []scored{
		{ChangeContent, countHits(lower, contentKeywords)},
		{ChangeStyling, countHits(lower, stylingKeywords)},
		{ChangeLayout, countHits(lower, layoutKeywords)},
		{ChangeStructure, countHits(lower, structureKeywords)},
		{ChangeBehavior, countHits(lower, behaviorKeywords)},
	}

	best := scored{ChangeGeneral, 0}
	for _, c := range candidates {
		if c.hits > best.hits {
			best = c
		}
	}
	return best.t
}

// InferScope infers request breadth from qualifier words.
// "all"/"every"-class qualifiers force broad scope.
func InferScope(instruction string) Scope {
	lower := strings.ToLower(instruction)
	if containsAnyWord(lower, broadQualifiers) {
		return ScopeBroad
	}
	if containsAnyWord(lower, moderateQualifiers) {
		return ScopeModerate
	}
	return ScopeNarrow
}

// instructionSpecificity grades how concrete an instruction is.
//
// Returns a value in [-1.0, 1.0]: positive for concrete units, colors,
// or alignment keywords; negative for vagueness markers; their sum when
// both appear.
func instructionSpecificity(instruction string) float64 {
	lower := strings.ToLower(instruction)

	score := 0.0
	if concreteValuePattern.MatchString(lower) {
		score += 0.5
	}
	if containsAnyWord(lower, cssColorNames) || containsAny(lower, alignmentKeywords) {
		score += 0.5
	}
	if containsAnyWord(lower, vaguenessMarkers) {
		score -= 1.0
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < -1.0 {
		score = -1.0
	}
	return score
}

// regionNameIn returns the first common UI-region name the instruction
// mentions, or "".
func regionNameIn(instruction string) string {
	lower := strings.ToLower(instruction)
	for _, region := range regionNames {
		if containsWord(lower, region) {
			return region
		}
	}
	return ""
}

func countHits(lower string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if containsWord(lower, kw) {
			hits++
		}
	}
	return hits
}

func containsAny(lower string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func containsAnyWord(lower string, words []string) bool {
	for _, w := range words {
		if containsWord(lower, w) {
			return true
		}
	}
	return false
}

// containsWord matches kw on word boundaries to avoid "all" hitting
// "small" or "wall".
func containsWord(lower, kw string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		leftOK := start == 0 || !isWordByte(lower[start-1])
		rightOK := end == len(lower) || !isWordByte(lower[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
		if idx >= len(lower) {
			return false
		}
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
