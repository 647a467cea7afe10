// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"github.com/RestyleHQ/restyle/services/engine/confidence"
	"github.com/RestyleHQ/restyle/services/engine/intent"
	"github.com/RestyleHQ/restyle/services/engine/strategy"
	"github.com/RestyleHQ/restyle/services/engine/validate"
)

// Outcome is the engine's terminal output for one change request.
type Outcome struct {
	// Intent is the resolved intent the pipeline acted on.
	Intent *intent.ChangeIntent `json:"intent"`

	// Assessment is the confidence assessment that selected the
	// execution tier.
	Assessment *confidence.Assessment `json:"assessment"`

	// Changes are the validated file changes, or the proposal file
	// when Proposal is true.
	Changes []strategy.FileChange `json:"changes"`

	// Validation is the gate verdict for the accepted content, nil
	// for proposals.
	Validation *validate.Result `json:"validation,omitempty"`

	// Proposal is true when nothing was applied and the change needs
	// external human approval.
	Proposal bool `json:"proposal"`

	// Attempts is the number of execution attempts consumed.
	Attempts int `json:"attempts"`

	// Log is the ordered human-readable execution log.
	Log []string `json:"log"`
}

// BatchItem pairs one request's outcome with its error. Requests in a
// batch are independent: one failure never blocks the others.
type BatchItem struct {
	Request intent.ChangeRequest `json:"request"`
	Outcome *Outcome             `json:"outcome,omitempty"`
	Err     error                `json:"-"`
}
