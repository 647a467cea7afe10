// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package repomodel defines the read-only symbolic model of the target
// repository that the change engine consumes.
//
// # Description
//
// The model is built and owned outside the engine (by the repository
// indexer). The engine only looks components up, never mutates them.
// The single mutable concern — lazily fetched file content — is scoped
// to one execution via Target.
//
// # Thread Safety
//
// All model types are safe for concurrent reads. Target serializes its
// lazy content fetch internally.
package repomodel

// StylingApproach identifies the styling idiom a component uses.
type StylingApproach string

const (
	// StylingUtility indicates utility-class styling (class tokens in markup).
	StylingUtility StylingApproach = "utility"

	// StylingScoped indicates component-scoped stylesheets (CSS modules etc.).
	StylingScoped StylingApproach = "scoped"

	// StylingCSSInJS indicates styles declared inline in component code.
	StylingCSSInJS StylingApproach = "css-in-js"

	// StylingStylesheet indicates plain global stylesheets.
	StylingStylesheet StylingApproach = "stylesheet"
)

// ComplexityTier buckets a component's structural complexity.
type ComplexityTier string

const (
	ComplexitySimple   ComplexityTier = "simple"
	ComplexityModerate ComplexityTier = "moderate"
	ComplexityComplex  ComplexityTier = "complex"
)

// Component is one indexed UI component from the symbolic repository model.
//
// Components are value objects: the engine treats every field as
// read-only. Content may be empty when the indexer did not cache file
// content; use Target to fetch it lazily.
type Component struct {
	// Name is the component's declared name (e.g., "HeroSection").
	Name string `json:"name"`

	// FilePath is the repository-relative path of the defining file.
	FilePath string `json:"file_path"`

	// Styling describes the component's styling idiom.
	Styling StylingApproach `json:"styling"`

	// Complexity is the indexer's structural complexity estimate.
	Complexity ComplexityTier `json:"complexity"`

	// Tag is the root DOM tag the component renders, when known.
	Tag string `json:"tag,omitempty"`

	// Classes are class names the component's markup carries.
	Classes []string `json:"classes,omitempty"`

	// Dependencies are names of components this component imports.
	Dependencies []string `json:"dependencies,omitempty"`

	// Dependents are names of components that import this component.
	Dependents []string `json:"dependents,omitempty"`

	// Exported reports whether the component is exported/reusable.
	Exported bool `json:"exported"`

	// Content is the cached file content, empty if not indexed.
	Content string `json:"content,omitempty"`
}

// HasClass reports whether the component's markup carries the class.
func (c *Component) HasClass(name string) bool {
	for _, cls := range c.Classes {
		if cls == name {
			return true
		}
	}
	return false
}
