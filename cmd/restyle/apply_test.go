// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"path/filepath"
	"testing"
)

func TestRepoPath(t *testing.T) {
	root := t.TempDir()

	cases := []struct {
		name     string
		filePath string
		wantErr  bool
	}{
		{"plain relative path", "src/components/Hero.tsx", false},
		{"dot segments that stay inside", "src/./components/Hero.tsx", false},
		{"parent escape", "../outside.txt", true},
		{"nested parent escape", "src/../../outside.txt", true},
		{"bare parent", "..", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			full, err := repoPath(root, tc.filePath)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("repoPath(%q) = %q, want containment error", tc.filePath, full)
				}
				return
			}
			if err != nil {
				t.Fatalf("repoPath(%q): %v", tc.filePath, err)
			}
			rel, err := filepath.Rel(root, full)
			if err != nil || rel == ".." || filepath.IsAbs(rel) {
				t.Errorf("resolved path %q is not under the root", full)
			}
		})
	}
}
