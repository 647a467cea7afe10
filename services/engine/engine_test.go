// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RestyleHQ/restyle/services/engine/intent"
	"github.com/RestyleHQ/restyle/services/engine/repomodel"
	"github.com/RestyleHQ/restyle/services/engine/strategy"
)

const heroSource = `import React from "react";

interface HeroProps {
  title: string;
}

export function HeroSection({ title }: HeroProps) {
  return (
    <section className="hero text-sm">
      <h1>{title}</h1>
    </section>
  );
}
`

// echoGen returns the prompt's file body with a scripted replacement,
// standing in for a provider that follows instructions.
type echoGen struct {
	replaceOld string
	replaceNew string
}

func (g echoGen) GenerateText(_ context.Context, prompt string) (string, error) {
	const startMarker = "--- FILE START ---\n"
	const endMarker = "\n--- FILE END ---"
	start := strings.Index(prompt, startMarker)
	end := strings.LastIndex(prompt, endMarker)
	if start < 0 || end < 0 {
		return "", errors.New("prompt carries no file body")
	}
	body := prompt[start+len(startMarker) : end]
	return strings.Replace(body, g.replaceOld, g.replaceNew, 1), nil
}

func testModel() *repomodel.Index {
	return repomodel.NewIndex(repomodel.Snapshot{
		Components: []*repomodel.Component{{
			Name:       "HeroSection",
			FilePath:   "src/components/HeroSection.tsx",
			Styling:    repomodel.StylingUtility,
			Complexity: repomodel.ComplexitySimple,
			Tag:        "section",
			Classes:    []string{"hero"},
			Content:    heroSource,
			Exported:   true,
		}},
		SelectorMap: map[string]string{"section.hero": "HeroSection"},
	})
}

func visualRequest() intent.ChangeRequest {
	return intent.ChangeRequest{Visual: &intent.VisualEdit{
		Element: intent.ElementDescriptor{
			Selector: "section.hero",
			Tag:      "section",
			Classes:  []string{"hero"},
		},
		Deltas: []intent.PropertyDelta{
			{Property: "font-size", Before: "14px", After: "16px", Category: "styling"},
		},
	}}
}

func TestEngine_VisualEditAppliesCleanly(t *testing.T) {
	e, err := New(testModel(), echoGen{replaceOld: "text-sm", replaceNew: "text-base"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	outcome, err := e.Execute(context.Background(), visualRequest())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome.Proposal {
		t.Error("Proposal = true for a high-confidence visual edit")
	}
	if outcome.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", outcome.Attempts)
	}
	if len(outcome.Changes) != 1 {
		t.Fatalf("Changes = %d, want 1", len(outcome.Changes))
	}
	change := outcome.Changes[0]
	if change.FilePath != "src/components/HeroSection.tsx" {
		t.Errorf("FilePath = %s", change.FilePath)
	}
	if !strings.Contains(change.NewContent, "text-base") {
		t.Error("NewContent does not carry the requested edit")
	}
	if outcome.Validation == nil || !outcome.Validation.Passed {
		t.Error("accepted change without a passing validation")
	}
	if len(outcome.Log) == 0 {
		t.Error("execution log is empty")
	}
}

func TestEngine_TerminalFailureCarriesVerdict(t *testing.T) {
	// The "provider" strips an export on every attempt; validation
	// can never pass.
	e, err := New(testModel(), echoGen{replaceOld: "export function", replaceNew: "function  "})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	outcome, err := e.Execute(context.Background(), visualRequest())
	if outcome != nil {
		t.Fatal("an outcome was returned without a passing validation")
	}
	var execErr *strategy.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("err = %v, want *strategy.ExecutionError", err)
	}
	if execErr.LastValidation == nil {
		t.Fatal("LastValidation is nil; the failure cannot be explained")
	}
	if execErr.LastValidation.Passed {
		t.Error("LastValidation.Passed = true on a terminal failure")
	}
}

func TestEngine_EmptyRequestRejected(t *testing.T) {
	e, err := New(testModel(), echoGen{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.Execute(context.Background(), intent.ChangeRequest{}); err == nil {
		t.Fatal("Execute accepted an empty request")
	}
}

func TestEngine_ExecuteBatch(t *testing.T) {
	e, err := New(testModel(), echoGen{replaceOld: "text-sm", replaceNew: "text-base"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	reqs := []intent.ChangeRequest{
		visualRequest(),
		{}, // invalid on purpose
		visualRequest(),
	}
	items := e.ExecuteBatch(context.Background(), reqs)

	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].Err != nil || items[0].Outcome == nil {
		t.Errorf("item 0: err = %v", items[0].Err)
	}
	if items[1].Err == nil {
		t.Error("item 1: invalid request did not error")
	}
	if items[2].Err != nil || items[2].Outcome == nil {
		t.Errorf("item 2: err = %v", items[2].Err)
	}
}

func TestNew_RequiresModel(t *testing.T) {
	if _, err := New(nil, echoGen{}); err == nil {
		t.Error("New accepted a nil model")
	}
	if _, err := New(testModel(), nil); err == nil {
		t.Error("New accepted a nil generator")
	}
}
