// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package strategy

import "fmt"

// State is an executor state.
type State string

const (
	StateAnalyze  State = "analyze"
	StateGenerate State = "generate"
	StateVerify   State = "verify"
	StateValidate State = "validate"
	StateApply    State = "apply"
	StateRetry    State = "retry"
	StateFallback State = "fallback"
	StatePropose  State = "propose"
	StateFail     State = "fail"
)

// AllStates returns every executor state.
func AllStates() []State {
	return []State{
		StateAnalyze, StateGenerate, StateVerify, StateValidate,
		StateApply, StateRetry, StateFallback, StatePropose, StateFail,
	}
}

// Terminal reports whether the state ends an execution.
func (s State) Terminal() bool {
	return s == StateApply || s == StatePropose || s == StateFail
}

// Machine validates executor state transitions.
//
// The machine enforces the following transition graph:
//
//	ANALYZE → GENERATE           : Impact analysis accepted
//	ANALYZE → PROPOSE            : Human-review tier, no generation
//	ANALYZE → FAIL               : Analysis step failed
//	GENERATE → VERIFY            : Content produced, length check next
//	GENERATE → RETRY             : Provider failure, attempt remains
//	GENERATE → FAIL              : Provider failure, no attempt left
//	VERIFY → GENERATE            : Over-deletion, one corrective retry
//	VERIFY → VALIDATE            : Length floor satisfied
//	VERIFY → FAIL                : Over-deletion after corrective retry
//	VALIDATE → APPLY             : Gate passed
//	VALIDATE → RETRY             : Gate failed, same strategy remains
//	VALIDATE → FALLBACK          : Gate failed, lower tier available
//	VALIDATE → FAIL              : Gate failed, attempts exhausted
//	RETRY → GENERATE             : Next attempt begins
//	FALLBACK → GENERATE          : Next attempt on the lower tier
//	FALLBACK → PROPOSE           : Lower tier is human review, render a proposal
//
// Thread Safety:
//
//	Safe for concurrent use after construction; the transition table
//	is never mutated.
type Machine struct {
	transitions map[State]map[State]bool
}

// NewMachine creates the executor state machine.
func NewMachine() *Machine {
	m := &Machine{transitions: make(map[State]map[State]bool)}
	for _, s := range AllStates() {
		m.transitions[s] = make(map[State]bool)
	}

	m.add(StateAnalyze, StateGenerate)
	m.add(StateAnalyze, StatePropose)
	m.add(StateAnalyze, StateFail)

	m.add(StateGenerate, StateVerify)
	m.add(StateGenerate, StateRetry)
	m.add(StateGenerate, StateFail)

	m.add(StateVerify, StateGenerate)
	m.add(StateVerify, StateValidate)
	m.add(StateVerify, StateFail)

	m.add(StateValidate, StateApply)
	m.add(StateValidate, StateRetry)
	m.add(StateValidate, StateFallback)
	m.add(StateValidate, StateFail)

	m.add(StateRetry, StateGenerate)
	m.add(StateFallback, StateGenerate)
	m.add(StateFallback, StatePropose)

	return m
}

func (m *Machine) add(from, to State) {
	m.transitions[from][to] = true
}

// CanTransition reports whether from → to is a legal transition.
func (m *Machine) CanTransition(from, to State) bool {
	if toMap, ok := m.transitions[from]; ok {
		return toMap[to]
	}
	return false
}

// Transition moves the tracked state, returning an error on an
// illegal transition. Used as a runtime assertion on the executor's
// control flow.
func (m *Machine) Transition(current *State, to State) error {
	if !m.CanTransition(*current, to) {
		return fmt.Errorf("illegal transition %s → %s", *current, to)
	}
	*current = to
	return nil
}
