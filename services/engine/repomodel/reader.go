// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package repomodel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirReader reads component source on demand from a repository
// checkout on disk. Paths in the index are repository-relative; the
// reader joins them under its root and refuses to escape it.
type DirReader struct {
	root string
}

// NewDirReader creates a reader rooted at the given directory.
func NewDirReader(root string) *DirReader {
	return &DirReader{root: root}
}

// Read implements FileReader.
func (r *DirReader) Read(ctx context.Context, filePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full := filepath.Join(r.root, filepath.FromSlash(filePath))
	rel, err := filepath.Rel(r.root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %q escapes the repository root", filePath)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filePath, err)
	}
	return string(data), nil
}
