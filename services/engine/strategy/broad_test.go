// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package strategy

import (
	"context"
	"strings"
	"testing"

	"github.com/RestyleHQ/restyle/services/engine/confidence"
	"github.com/RestyleHQ/restyle/services/engine/impact"
	"github.com/RestyleHQ/restyle/services/engine/intent"
	"github.com/RestyleHQ/restyle/services/engine/repomodel"
)

const headerFile = `import React from "react";

export function SiteHeader() {
  return (
    <header className="header dark">
      <nav>menu</nav>
    </header>
  );
}
`

const footerFile = `import React from "react";

export function SiteFooter() {
  return (
    <footer className="footer">
      <p>fine print</p>
    </footer>
  );
}
`

// echoGen extracts the file body from the prompt and returns it with
// a one-token edit, simulating a provider that follows instructions.
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
		return "", nil
	}
	body := prompt[start+len(startMarker) : end]
	return strings.Replace(body, g.replaceOld, g.replaceNew, 1), nil
}

func broadModel() *repomodel.Index {
	return repomodel.NewIndex(repomodel.Snapshot{
		Components: []*repomodel.Component{
			{
				Name:     "SiteHeader",
				FilePath: "src/components/SiteHeader.tsx",
				Styling:  repomodel.StylingUtility,
				Content:  headerFile,
				Exported: true,
			},
			{
				Name:     "SiteFooter",
				FilePath: "src/components/SiteFooter.tsx",
				Styling:  repomodel.StylingUtility,
				Content:  footerFile,
				Exported: true,
			},
		},
	})
}

func broadIntent() *intent.ChangeIntent {
	return &intent.ChangeIntent{
		ID:         "b1",
		Type:       intent.ChangeStyling,
		Confidence: 0.55,
		Scope:      intent.ScopeBroad,
		Request: intent.ChangeRequest{Natural: &intent.NaturalLanguageEdit{
			Instruction: "make the header background dark everywhere",
		}},
	}
}

func broadAnalysis() *impact.Analysis {
	return &impact.Analysis{
		IntentID: "b1",
		PreservationRules: []impact.PreservationRule{
			{Name: impact.RuleExports, Pattern: `(?m)^\s*export\s+`, Critical: true},
		},
		ExpectedScope: impact.ExpectedScope{
			Lines:      10,
			Files:      1,
			ChangeType: impact.MagnitudeModerate,
			Risk:       intent.RiskMedium,
		},
	}
}

func guidedAssessment() *confidence.Assessment {
	return &confidence.Assessment{
		Confidence:          0.65,
		RecommendedApproach: confidence.ApproachGuided,
		FallbackStrategies:  confidence.ApproachGuided.Below(),
		RiskLevel:           intent.RiskMedium,
	}
}

func TestExecuteBroad_ReturnsPassingCandidates(t *testing.T) {
	gen := echoGen{replaceOld: `className="`, replaceNew: `className="bg-slate-900 `}
	e, err := NewExecutor(gen, nil, broadModel(), nil)
	if err != nil {
		t.Fatalf("NewExecutor: %v", err)
	}

	res, err := e.Execute(context.Background(), broadIntent(), broadAnalysis(), guidedAssessment())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Proposal {
		t.Error("Proposal = true on the broad path")
	}
	if len(res.Changes) == 0 {
		t.Fatal("no changes returned")
	}
	for _, c := range res.Changes {
		if c.Action != ActionModify {
			t.Errorf("%s: Action = %s, want modify", c.FilePath, c.Action)
		}
		if !strings.Contains(c.NewContent, "bg-slate-900") {
			t.Errorf("%s: edit missing from generated content", c.FilePath)
		}
	}
	// Output order is deterministic regardless of goroutine timing.
	for i := 1; i < len(res.Changes); i++ {
		if res.Changes[i-1].FilePath > res.Changes[i].FilePath {
			t.Error("changes are not sorted by file path")
		}
	}
}

// todoStrippingGen echoes the file body with any TODO lines removed,
// so only components carrying a TODO come back modified.
type todoStrippingGen struct{}

func (todoStrippingGen) GenerateText(_ context.Context, prompt string) (string, error) {
	const startMarker = "--- FILE START ---\n"
	const endMarker = "\n--- FILE END ---"
	start := strings.Index(prompt, startMarker)
	end := strings.LastIndex(prompt, endMarker)
	if start < 0 || end < 0 {
		return "", nil
	}
	body := prompt[start+len(startMarker) : end]
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		if !strings.Contains(line, "TODO") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// The broad result's verdict must belong to the first change in the
// path-sorted set, independent of goroutine completion order.
func TestExecuteBroad_VerdictMatchesFirstSortedChange(t *testing.T) {
	const bannerFile = `import React from "react";

// TODO drop the legacy promo copy
export function PromoBanner() {
  return (
    <aside className="banner">
      <p>seasonal promo copy for the landing page</p>
    </aside>
  );
}
`
	model := repomodel.NewIndex(repomodel.Snapshot{
		Components: []*repomodel.Component{
			{
				Name:     "PromoBanner",
				FilePath: "src/banner/PromoBanner.tsx",
				Styling:  repomodel.StylingUtility,
				Content:  bannerFile,
				Exported: true,
			},
			{
				Name:     "SiteHeader",
				FilePath: "src/header/SiteHeader.tsx",
				Styling:  repomodel.StylingUtility,
				Content:  headerFile,
				Exported: true,
			},
		},
	})
	it := &intent.ChangeIntent{
		ID:    "b2",
		Type:  intent.ChangeStyling,
		Scope: intent.ScopeBroad,
		Request: intent.ChangeRequest{Natural: &intent.NaturalLanguageEdit{
			Instruction: "darken the banner and header sections everywhere",
		}},
	}
	analysis := &impact.Analysis{
		IntentID: "b2",
		PreservationRules: []impact.PreservationRule{
			{Name: impact.RuleExports, Pattern: `(?m)^\s*export\s+`, Critical: true},
			{Name: "keep-notes", Pattern: "TODO", Critical: false},
		},
		ExpectedScope: impact.ExpectedScope{
			Lines:      10,
			Files:      1,
			ChangeType: impact.MagnitudeModerate,
			Risk:       intent.RiskMedium,
		},
	}

	e, err := NewExecutor(todoStrippingGen{}, nil, model, nil)
	if err != nil {
		t.Fatalf("NewExecutor: %v", err)
	}
	res, err := e.Execute(context.Background(), it, analysis, guidedAssessment())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Changes) != 2 {
		t.Fatalf("Changes = %d, want 2", len(res.Changes))
	}
	if res.Changes[0].FilePath != "src/banner/PromoBanner.tsx" {
		t.Fatalf("first change = %s, want the banner", res.Changes[0].FilePath)
	}
	// Only the banner loses its TODO line, so only its verdict carries
	// the non-critical preservation warning.
	if res.Validation == nil {
		t.Fatal("Validation is nil")
	}
	if len(res.Validation.Warnings) != 1 {
		t.Errorf("Validation.Warnings = %d, want 1 (the banner's verdict)", len(res.Validation.Warnings))
	}
}

func TestScoreComponents_RanksNameMatchFirst(t *testing.T) {
	scored := scoreComponents(broadModel().Components(), broadIntent())
	if len(scored) == 0 {
		t.Fatal("no components scored")
	}
	if scored[0].component.Name != "SiteHeader" {
		t.Errorf("top candidate = %s, want SiteHeader (name keyword match)", scored[0].component.Name)
	}
	if len(scored) > 1 && scored[0].score <= scored[1].score {
		t.Error("name-matched component must outrank marker-only matches")
	}
}

func TestScoreComponent_Weights(t *testing.T) {
	it := broadIntent()
	words := requestWords(it)

	header := broadModel().Components()[0]
	got := scoreComponent(header, it, words)

	// Name match, styling marker, and exported status all apply.
	want := scoreNameMatch + scoreStylingMarker + scoreExported
	if got != want {
		t.Errorf("score = %d, want %d", got, want)
	}
}

func TestExecuteBroad_NoCandidates(t *testing.T) {
	gen := echoGen{}
	e, err := NewExecutor(gen, nil, repomodel.NewIndex(repomodel.Snapshot{}), nil)
	if err != nil {
		t.Fatalf("NewExecutor: %v", err)
	}

	_, err = e.Execute(context.Background(), broadIntent(), broadAnalysis(), guidedAssessment())
	if err == nil {
		t.Fatal("Execute succeeded with an empty repository model")
	}
}
