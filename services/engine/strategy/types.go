// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package strategy

import (
	"time"

	"github.com/RestyleHQ/restyle/services/engine/confidence"
	"github.com/RestyleHQ/restyle/services/engine/validate"
)

// StepKind types an execution step.
type StepKind string

const (
	StepAnalyze  StepKind = "analyze"
	StepGenerate StepKind = "generate"
	StepVerify   StepKind = "verify"
	StepValidate StepKind = "validate"
	StepApply    StepKind = "apply"
)

// Step is one entry in a strategy's ordered step list.
type Step struct {
	// Kind is the step type.
	Kind StepKind `json:"kind"`

	// Description is the human-readable step text recorded in the
	// execution log.
	Description string `json:"description"`

	// Required steps are performed and enforced by the executor;
	// optional steps appear in the execution log's step plan only,
	// their substance riding inside the generation prompt.
	Required bool `json:"required"`

	// Timeout bounds the step; zero means no step-level deadline.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// ValidationLevel selects how strictly the gate's verdict is applied.
type ValidationLevel string

const (
	ValidationBasic    ValidationLevel = "basic"
	ValidationStandard ValidationLevel = "standard"
	ValidationStrict   ValidationLevel = "strict"
	ValidationParanoid ValidationLevel = "paranoid"
)

// ChangeStrategy is the executable plan for one confidence tier.
type ChangeStrategy struct {
	// Approach is the tier this strategy implements.
	Approach confidence.Approach `json:"approach"`

	// Confidence is the working confidence for the strategy. Each
	// fallback hop discounts it by a fixed factor.
	Confidence float64 `json:"confidence"`

	// Steps is the ordered step list for the tier.
	Steps []Step `json:"steps"`

	// ValidationLevel is the gate strictness for the tier.
	ValidationLevel ValidationLevel `json:"validation_level"`

	// Fallback is the next-lower-tier strategy, nil at the bottom.
	Fallback *ChangeStrategy `json:"fallback,omitempty"`
}

// ChangeAction types a FileChange.
type ChangeAction string

const (
	ActionModify ChangeAction = "modify"
	ActionCreate ChangeAction = "create"
	ActionDelete ChangeAction = "delete"
)

// FileChange is one validated file modification produced by the
// executor.
type FileChange struct {
	FilePath   string       `json:"file_path"`
	Action     ChangeAction `json:"action"`
	OldContent string       `json:"old_content"`
	NewContent string       `json:"new_content"`

	// Reasoning explains the change for the result consumer.
	Reasoning string `json:"reasoning"`
}

// Result is the executor's terminal output for one intent.
//
// Exactly one of three shapes is produced: an applied change set
// (Proposal false, Changes non-empty), a proposal (Proposal true,
// Changes holds the annotated proposal file, nothing was applied), or
// an error from Execute with Result carrying the last gate verdict.
type Result struct {
	// Changes are the validated file changes.
	Changes []FileChange `json:"changes"`

	// Validation is the gate verdict for the accepted content. For a
	// multi-component broad change it is the verdict of the first
	// change in the path-sorted change set.
	Validation *validate.Result `json:"validation"`

	// Proposal is true when the content was never applied and needs
	// external human approval.
	Proposal bool `json:"proposal"`

	// Attempts is the number of outer-loop attempts consumed.
	Attempts int `json:"attempts"`

	// Log is the ordered human-readable execution log.
	Log []string `json:"log"`
}
