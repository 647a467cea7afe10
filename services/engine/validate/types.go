// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

// Severity classifies a validation issue.
type Severity string

const (
	// SeverityError fails validation.
	SeverityError Severity = "error"

	// SeverityWarning is surfaced but does not fail validation.
	SeverityWarning Severity = "warning"
)

// Check names used in issues and execution logs.
const (
	CheckScope        = "scope"
	CheckDeletion     = "excessive-deletion"
	CheckPreservation = "preservation"
	CheckIntent       = "intent-reflection"
)

// Issue is a single validation finding.
type Issue struct {
	// Check is the check that produced the issue (CheckScope, ...).
	Check string `json:"check"`

	// Severity is error or warning.
	Severity Severity `json:"severity"`

	// Message is a human-readable description of the finding.
	Message string `json:"message"`
}

// Metrics quantifies the difference between original and generated
// content.
type Metrics struct {
	// LinesChanged is the changed-line delta: replaced line pairs
	// count once, pure additions and pure removals count once each.
	LinesChanged int `json:"lines_changed"`

	// LinesAdded is the count of lines present only in the
	// generated content.
	LinesAdded int `json:"lines_added"`

	// LinesRemoved is the count of lines present only in the
	// original content.
	LinesRemoved int `json:"lines_removed"`

	// FilesModified is 1 when the content differs, 0 otherwise.
	FilesModified int `json:"files_modified"`

	// ChangeRatio is LinesChanged over the original line count.
	ChangeRatio float64 `json:"change_ratio"`

	// ComplexityDelta is the change in branching-construct count
	// between original and generated content.
	ComplexityDelta int `json:"complexity_delta"`
}

// Result is the gate's verdict for one generated file.
//
// Passed is true only when Issues contains zero error-severity
// entries.
type Result struct {
	Passed     bool     `json:"passed"`
	Confidence float64  `json:"confidence"`
	Issues     []Issue  `json:"issues,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Metrics    Metrics  `json:"metrics"`
}

// Errors returns the error-severity issues.
func (r *Result) Errors() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}
