// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package impact

import "regexp"

// Structural cue patterns. These are shallow by design: the gate
// compares match counts between original and generated content, so the
// patterns only need to be stable, not syntactically complete.
var (
	exportPattern   = regexp.MustCompile(`(?m)^\s*export\s+(default\s+)?(const|function|class|interface|type|let|var)?`)
	importPattern   = regexp.MustCompile(`(?m)^\s*import\s+`)
	propsPattern    = regexp.MustCompile(`(?m)(interface|type)\s+\w*Props\b`)
	functionPattern = regexp.MustCompile(`(?m)(function\s+\w+|=>\s*\{|\buse[A-Z]\w*\s*\()`)
)

// Preservation rule names. The validation gate references rules by
// name in its issue output.
const (
	RuleExports       = "preserve exports"
	RuleImports       = "preserve imports"
	RulePropsContract = "preserve props interface"
	RuleFunctionality = "preserve functionality"
)

// preservationRulesFor derives preservation rules from structural cues
// visible in the file. Rules are only emitted for cues the file
// actually exhibits, so the rule set is deterministic for a given
// content string.
func preservationRulesFor(content string) []PreservationRule {
	var rules []PreservationRule

	if exportPattern.MatchString(content) {
		rules = append(rules, PreservationRule{
			Name:     RuleExports,
			Pattern:  exportPattern.String(),
			Critical: true,
		})
	}
	if importPattern.MatchString(content) {
		rules = append(rules, PreservationRule{
			Name:     RuleImports,
			Pattern:  importPattern.String(),
			Critical: true,
		})
	}
	if propsPattern.MatchString(content) {
		rules = append(rules, PreservationRule{
			Name:     RulePropsContract,
			Pattern:  propsPattern.String(),
			Critical: true,
		})
	}
	if functionPattern.MatchString(content) {
		rules = append(rules, PreservationRule{
			Name:     RuleFunctionality,
			Pattern:  functionPattern.String(),
			Critical: true,
		})
	}

	return rules
}
