// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"regexp"
	"strings"
)

// branchPattern counts branching constructs for the complexity-delta
// metric. Shallow keyword detection is deliberate here: the gate needs
// a cheap, language-tolerant signal, not a parse tree.
var branchPattern = regexp.MustCompile(`\b(if|else|for|while|switch|case|catch)\b|\?\s*[^:]+:`)

// diffCounts computes added and removed line counts between original
// and generated content using a longest-common-subsequence alignment.
// A line that moved is counted on both sides; identical content yields
// (0, 0).
func diffCounts(original, generated string) (added, removed int) {
	a := splitLines(original)
	b := splitLines(generated)
	common := lcsLength(a, b)
	return len(b) - common, len(a) - common
}

// changedLines collapses an (added, removed) pair into a single
// changed-line delta. A replaced line counts once, not twice.
func changedLines(added, removed int) int {
	if added > removed {
		return added
	}
	return removed
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// lcsLength returns the longest-common-subsequence length of the two
// line slices. Single-row dynamic programming keeps memory linear in
// the shorter input.
func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func countBranches(content string) int {
	return len(branchPattern.FindAllString(content, -1))
}

// computeMetrics builds the full metric set for one original/generated
// pair.
func computeMetrics(original, generated string) Metrics {
	added, removed := diffCounts(original, generated)
	changed := changedLines(added, removed)

	m := Metrics{
		LinesChanged:    changed,
		LinesAdded:      added,
		LinesRemoved:    removed,
		ComplexityDelta: countBranches(generated) - countBranches(original),
	}
	if original != generated {
		m.FilesModified = 1
	}
	if n := len(splitLines(original)); n > 0 {
		m.ChangeRatio = float64(changed) / float64(n)
	}
	return m
}
