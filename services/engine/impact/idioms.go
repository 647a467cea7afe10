// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package impact

import (
	"fmt"
	"strings"

	"github.com/RestyleHQ/restyle/services/engine/repomodel"
)

// StylingStrategy converts a requested property/value pair into the
// expression a component's styling idiom expects.
//
// Strategies are registered in a table keyed by styling approach and
// injected into the Analyzer — there is no ambient per-idiom registry.
type StylingStrategy interface {
	// Express returns the idiom-specific expression for the edit and
	// whether the mapping was exact (as opposed to synthesized).
	Express(property, value string) (expression string, exact bool)

	// Proxy returns a substring whose presence in generated content
	// evidences the property under this idiom (used by the validation
	// gate's intent-reflection check). Empty means no idiom proxy.
	Proxy(property, value string) string
}

// StrategyTable maps styling approaches to their strategies.
type StrategyTable map[repomodel.StylingApproach]StylingStrategy

// DefaultStrategies returns the built-in strategy table.
func DefaultStrategies() StrategyTable {
	utility := &utilityStrategy{theme: defaultTheme()}
	return StrategyTable{
		repomodel.StylingUtility:    utility,
		repomodel.StylingScoped:     kebabStrategy{},
		repomodel.StylingStylesheet: kebabStrategy{},
		repomodel.StylingCSSInJS:    camelStrategy{},
	}
}

// =============================================================================
// Utility-class idiom
// =============================================================================

// utilityPrefixes maps CSS properties to utility-class prefixes.
var utilityPrefixes = map[string]string{
	"font-size":        "text",
	"color":            "text",
	"background-color": "bg",
	"margin":           "m",
	"margin-top":       "mt",
	"margin-bottom":    "mb",
	"margin-left":      "ml",
	"margin-right":     "mr",
	"padding":          "p",
	"padding-top":      "pt",
	"padding-bottom":   "pb",
	"padding-left":     "pl",
	"padding-right":    "pr",
	"gap":              "gap",
	"border-radius":    "rounded",
	"font-weight":      "font",
	"width":            "w",
	"height":           "h",
}

// utilityStrategy maps properties to theme tokens, synthesizing an
// arbitrary-value token when the theme has no exact entry.
type utilityStrategy struct {
	theme map[string]map[string]string
}

func (s *utilityStrategy) Express(property, value string) (string, bool) {
	prefix, ok := utilityPrefixes[strings.ToLower(property)]
	if !ok {
		// Unknown property: synthesize from the property name itself.
		return fmt.Sprintf("[%s:%s]", strings.ToLower(property), value), false
	}

	if scale, ok := s.theme[strings.ToLower(property)]; ok {
		if token, ok := scale[strings.ToLower(value)]; ok {
			return token, true
		}
	}
	// Arbitrary-value token, e.g. text-[17px] or bg-[#112233].
	return fmt.Sprintf("%s-[%s]", prefix, strings.ToLower(value)), false
}

func (s *utilityStrategy) Proxy(property, value string) string {
	if prefix, ok := utilityPrefixes[strings.ToLower(property)]; ok {
		return prefix + "-"
	}
	return ""
}

// defaultTheme returns the exact-token table for the common scales.
// Values are keyed by the CSS value the visual editor reports.
func defaultTheme() map[string]map[string]string {
	return map[string]map[string]string{
		"font-size": {
			"12px": "text-xs",
			"14px": "text-sm",
			"16px": "text-base",
			"18px": "text-lg",
			"20px": "text-xl",
			"24px": "text-2xl",
			"30px": "text-3xl",
			"36px": "text-4xl",
			"48px": "text-5xl",
		},
		"margin": {
			"0px": "m-0", "4px": "m-1", "8px": "m-2", "12px": "m-3",
			"16px": "m-4", "20px": "m-5", "24px": "m-6", "32px": "m-8",
		},
		"padding": {
			"0px": "p-0", "4px": "p-1", "8px": "p-2", "12px": "p-3",
			"16px": "p-4", "20px": "p-5", "24px": "p-6", "32px": "p-8",
		},
		"gap": {
			"4px": "gap-1", "8px": "gap-2", "12px": "gap-3", "16px": "gap-4",
			"24px": "gap-6", "32px": "gap-8",
		},
		"border-radius": {
			"2px": "rounded-sm", "4px": "rounded", "6px": "rounded-md",
			"8px": "rounded-lg", "12px": "rounded-xl", "9999px": "rounded-full",
		},
		"font-weight": {
			"400": "font-normal", "500": "font-medium",
			"600": "font-semibold", "700": "font-bold",
		},
		"color": {
			"#ffffff": "text-white", "#000000": "text-black",
			"#ef4444": "text-red-500", "#3b82f6": "text-blue-500",
			"#22c55e": "text-green-500", "#6b7280": "text-gray-500",
		},
		"background-color": {
			"#ffffff": "bg-white", "#000000": "bg-black",
			"#ef4444": "bg-red-500", "#3b82f6": "bg-blue-500",
			"#22c55e": "bg-green-500", "#f9fafb": "bg-gray-50",
		},
	}
}

// =============================================================================
// Stylesheet idioms
// =============================================================================

// kebabStrategy expresses edits as kebab-case CSS declarations, the
// form scoped and plain stylesheets expect. The mapping is casing only,
// not a token-table hit, so it never reports exact.
type kebabStrategy struct{}

func (kebabStrategy) Express(property, value string) (string, bool) {
	return fmt.Sprintf("%s: %s", toKebab(property), value), false
}

func (kebabStrategy) Proxy(property, value string) string {
	return toKebab(property)
}

// camelStrategy expresses edits as camelCase declarations for styles
// declared in component code.
type camelStrategy struct{}

func (camelStrategy) Express(property, value string) (string, bool) {
	return fmt.Sprintf("%s: %q", toCamel(property), value), false
}

func (camelStrategy) Proxy(property, value string) string {
	return toCamel(property)
}

func toKebab(property string) string {
	var b strings.Builder
	for i, r := range property {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func toCamel(property string) string {
	parts := strings.Split(strings.ToLower(property), "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
