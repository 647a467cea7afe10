// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package repomodel

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Model is the collaborator interface for the symbolic repository model.
//
// # Description
//
// Exposes the indexed component list and the selector-to-component
// lookup table. Implementations must be safe for concurrent use and
// must never be mutated by callers.
type Model interface {
	// Components returns every indexed component.
	Components() []*Component

	// BySelector resolves a DOM selector to a component, if indexed.
	BySelector(selector string) (*Component, bool)

	// ByName resolves a component name to a component, if indexed.
	ByName(name string) (*Component, bool)

	// HasDesignTokens reports whether the repository carries a shared
	// design-token system (theme file, token table, CSS variables).
	HasDesignTokens() bool
}

// FileReader is the collaborator interface for on-demand source reads.
//
// Used only when an indexed component's content was not cached by the
// indexer. Implementations typically wrap a working-copy checkout or a
// source-hosting API.
type FileReader interface {
	Read(ctx context.Context, filePath string) (string, error)
}

// Index is an in-memory Model backed by an indexer-produced snapshot.
//
// Thread Safety: Index is immutable after construction and safe for
// concurrent use.
type Index struct {
	components []*Component
	bySelector map[string]*Component
	byName     map[string]*Component
	tokens     bool
}

// Snapshot is the serialized form of an index, as the repository
// indexer emits it.
type Snapshot struct {
	Components      []*Component      `json:"components"`
	SelectorMap     map[string]string `json:"selector_map"`
	HasDesignTokens bool              `json:"has_design_tokens"`
}

// NewIndex builds an Index from an indexer snapshot.
//
// # Inputs
//
//   - snap: Indexer output. Selector map values are component names and
//     must resolve against the component list; unknown names are skipped.
//
// # Outputs
//
//   - *Index: Ready-to-use model.
func NewIndex(snap Snapshot) *Index {
	idx := &Index{
		components: snap.Components,
		bySelector: make(map[string]*Component, len(snap.SelectorMap)),
		byName:     make(map[string]*Component, len(snap.Components)),
		tokens:     snap.HasDesignTokens,
	}
	for _, c := range snap.Components {
		idx.byName[c.Name] = c
	}
	for selector, name := range snap.SelectorMap {
		if c, ok := idx.byName[name]; ok {
			idx.bySelector[normalizeSelector(selector)] = c
		}
	}
	return idx
}

// LoadIndex reads an indexer snapshot from a JSON file.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing index snapshot: %w", err)
	}
	return NewIndex(snap), nil
}

// Components returns every indexed component.
func (i *Index) Components() []*Component {
	return i.components
}

// BySelector resolves a DOM selector via the lookup table.
func (i *Index) BySelector(selector string) (*Component, bool) {
	c, ok := i.bySelector[normalizeSelector(selector)]
	return c, ok
}

// ByName resolves a component by declared name.
func (i *Index) ByName(name string) (*Component, bool) {
	c, ok := i.byName[name]
	return c, ok
}

// HasDesignTokens reports whether the repo has a design-token system.
func (i *Index) HasDesignTokens() bool {
	return i.tokens
}

// normalizeSelector canonicalizes selector whitespace and case so the
// lookup tolerates formatting differences between capture and index time.
func normalizeSelector(selector string) string {
	return strings.ToLower(strings.Join(strings.Fields(selector), " "))
}
