// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package strategy

import (
	"fmt"
	"strings"

	"github.com/RestyleHQ/restyle/services/engine/confidence"
	"github.com/RestyleHQ/restyle/services/engine/impact"
	"github.com/RestyleHQ/restyle/services/engine/intent"
)

// buildPrompt assembles the tier-specific generation prompt. Direct
// prompts carry the full file and a minimal instruction; guided
// prompts add preservation-rule text and scope numbers; conservative
// prompts add hard structural constraints and a line budget.
func buildPrompt(approach confidence.Approach, it *intent.ChangeIntent, analysis *impact.Analysis, original string) string {
	var b strings.Builder

	b.WriteString("You are modifying a single source file.\n\n")
	b.WriteString("Requested change: ")
	b.WriteString(requestSummary(it))
	b.WriteString("\n")

	if approach != confidence.ApproachDirect {
		writeGuidance(&b, analysis)
	}
	if approach == confidence.ApproachConservative {
		writeConstraints(&b, analysis)
	}

	b.WriteString("\nReturn the complete updated file content and nothing else. Do not add commentary.\n")
	b.WriteString("\n--- FILE START ---\n")
	b.WriteString(original)
	b.WriteString("\n--- FILE END ---\n")
	return b.String()
}

func writeGuidance(b *strings.Builder, analysis *impact.Analysis) {
	if len(analysis.PreservationRules) > 0 {
		b.WriteString("\nPreserve exactly:\n")
		for _, rule := range analysis.PreservationRules {
			fmt.Fprintf(b, "- %s\n", rule.Name)
		}
	}
	fmt.Fprintf(b, "\nExpected scope: about %d changed line(s) in %d file(s). Stay close to this estimate.\n",
		analysis.ExpectedScope.Lines, analysis.ExpectedScope.Files)
}

func writeConstraints(b *strings.Builder, analysis *impact.Analysis) {
	b.WriteString("\nHard constraints:\n")
	b.WriteString("- Do not add, remove, or reorder imports or exports.\n")
	b.WriteString("- Do not change function signatures or component structure.\n")
	lineBudget := analysis.ExpectedScope.Lines * 2
	if lineBudget < 2 {
		lineBudget = 2
	}
	fmt.Fprintf(b, "- Change at most %d line(s).\n", lineBudget)
}

// correctivePrompt is the over-deletion feedback prompt: it quotes the
// size mismatch and restates the full-file requirement.
func correctivePrompt(it *intent.ChangeIntent, original, generated string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your previous output was %d characters but the original file is %d characters. ", len(generated), len(original))
	b.WriteString("You removed content that must be kept. ")
	b.WriteString("Return the complete file with only the specific change.\n\n")
	b.WriteString("Requested change: ")
	b.WriteString(requestSummary(it))
	b.WriteString("\n\n--- FILE START ---\n")
	b.WriteString(original)
	b.WriteString("\n--- FILE END ---\n")
	return b.String()
}

// requestSummary renders the intent as a one-line instruction.
func requestSummary(it *intent.ChangeIntent) string {
	if len(it.Deltas) > 0 {
		parts := make([]string, 0, len(it.Deltas))
		for _, d := range it.Deltas {
			parts = append(parts, fmt.Sprintf("set %s to %s (was %s)", d.Property, d.After, d.Before))
		}
		return strings.Join(parts, "; ")
	}
	if it.Request.Natural != nil {
		return it.Request.Natural.Instruction
	}
	return it.Description
}

// extractContent strips markdown code fences and surrounding prose
// from a provider response. Providers are inconsistent about output
// framing, so the extractor tolerates fenced, partially fenced, and
// bare responses.
func extractContent(response string) string {
	trimmed := strings.TrimSpace(response)
	if !strings.Contains(trimmed, "```") {
		return trimmed + "\n"
	}

	start := strings.Index(trimmed, "```")
	rest := trimmed[start+3:]
	// Drop a language tag on the fence line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine == "" || isLanguageTag(firstLine) {
			rest = rest[nl+1:]
		}
	}
	if end := strings.LastIndex(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimRight(rest, "\n") + "\n"
}

func isLanguageTag(s string) bool {
	if len(s) > 20 {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
