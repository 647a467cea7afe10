// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package strategy

import (
	"errors"
	"fmt"

	"github.com/RestyleHQ/restyle/services/engine/validate"
)

// Sentinel errors for strategy execution.
var (
	// ErrOverDeletion is returned when generated content stays below
	// the length floor after the corrective retry.
	ErrOverDeletion = errors.New("generated content removes too much of the original file")

	// ErrAttemptsExhausted is returned when the outer retry loop runs
	// out of attempts without a passing validation.
	ErrAttemptsExhausted = errors.New("change attempts exhausted without a passing validation")

	// ErrNoGenerator is returned when the executor is constructed
	// without a text generator.
	ErrNoGenerator = errors.New("text generator is required")

	// ErrNoCandidates is returned on the broad-scope path when no
	// component scores above zero.
	ErrNoCandidates = errors.New("no components matched the request")
)

// ExecutionError is a terminal failure that carries the last gate
// verdict so callers can explain why the change could not be
// completed.
type ExecutionError struct {
	// Err is the failure classification (ErrOverDeletion,
	// ErrAttemptsExhausted, or a provider error).
	Err error

	// LastValidation is the most recent gate verdict, nil when the
	// failure happened before any content reached the gate.
	LastValidation *validate.Result

	// Attempts is the number of attempts consumed.
	Attempts int
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("change execution failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
