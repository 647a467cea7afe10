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
	"sync"
)

// Target wraps a resolved Component with a per-execution content cache.
//
// # Description
//
// The component's file content is populated on first read and cached
// for the duration of a single execution. The cache never outlives the
// Target, and the underlying Component is never written to.
//
// # Thread Safety
//
// Target is safe for concurrent use; the lazy fetch is serialized.
type Target struct {
	component *Component
	reader    FileReader

	mu      sync.Mutex
	content string
	loaded  bool
}

// NewTarget creates a Target for one execution.
//
// # Inputs
//
//   - component: The resolved component. Must not be nil.
//   - reader: Used when the component has no cached content. May be nil
//     when the component's Content is already populated.
func NewTarget(component *Component, reader FileReader) *Target {
	t := &Target{component: component, reader: reader}
	if component.Content != "" {
		t.content = component.Content
		t.loaded = true
	}
	return t
}

// Component returns the underlying read-only component.
func (t *Target) Component() *Component {
	return t.component
}

// Content returns the component's file content, fetching it on first
// call when the indexer did not cache it.
//
// # Outputs
//
//   - string: The full file content.
//   - error: ErrNilReader when a fetch is needed but no reader exists;
//     ErrNoContent (wrapped) when the read fails.
func (t *Target) Content(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.loaded {
		return t.content, nil
	}
	if t.reader == nil {
		return "", ErrNilReader
	}

	content, err := t.reader.Read(ctx, t.component.FilePath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNoContent, t.component.FilePath, err)
	}

	t.content = content
	t.loaded = true
	return t.content, nil
}
