// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffCounts(t *testing.T) {
	cases := []struct {
		name        string
		original    string
		generated   string
		wantAdded   int
		wantRemoved int
	}{
		{"identical", "a\nb\nc\n", "a\nb\nc\n", 0, 0},
		{"replace one line", "a\nb\nc\n", "a\nX\nc\n", 1, 1},
		{"pure addition", "a\nb\n", "a\nb\nc\n", 1, 0},
		{"pure removal", "a\nb\nc\n", "a\nc\n", 0, 1},
		{"empty original", "", "a\nb\n", 2, 0},
		{"empty generated", "a\nb\n", "", 0, 2},
		{"both empty", "", "", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			added, removed := diffCounts(tc.original, tc.generated)
			assert.Equal(t, tc.wantAdded, added, "added")
			assert.Equal(t, tc.wantRemoved, removed, "removed")
		})
	}
}

func TestChangedLines(t *testing.T) {
	assert.Equal(t, 3, changedLines(3, 1))
	assert.Equal(t, 1, changedLines(1, 1))
	assert.Equal(t, 0, changedLines(0, 0))
}

// The aligner must match moved blocks rather than treating every line
// after an insertion as changed.
func TestDiffCounts_InsertionDoesNotCascade(t *testing.T) {
	original := "a\nb\nc\nd\ne\n"
	generated := "a\nNEW\nb\nc\nd\ne\n"
	added, removed := diffCounts(original, generated)
	assert.Equal(t, 1, added)
	assert.Equal(t, 0, removed)
}

func TestComputeMetrics_ChangeRatio(t *testing.T) {
	m := computeMetrics("a\nb\nc\nd\n", "a\nX\nc\nd\n")
	require.Equal(t, 1, m.LinesChanged)
	assert.Equal(t, 0.25, m.ChangeRatio)
	assert.Equal(t, 0, m.ComplexityDelta)
}

func TestCountBranches(t *testing.T) {
	content := "if (x) { for (;;) {} } else { switch (y) { case 1: break; } }"
	assert.GreaterOrEqual(t, countBranches(content), 4)
}
