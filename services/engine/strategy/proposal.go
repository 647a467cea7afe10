// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/RestyleHQ/restyle/services/engine/impact"
	"github.com/RestyleHQ/restyle/services/engine/intent"
)

// propose renders the human-review terminal output: a proposal file
// embedding the unmodified original content annotated with the
// intended changes. Nothing is generated and nothing is applied.
func (e *Executor) propose(ctx context.Context, chain *ChangeStrategy, it *intent.ChangeIntent, analysis *impact.Analysis) (*Result, error) {
	if it.Target == nil {
		return nil, fmt.Errorf("cannot render a proposal without a resolved target")
	}
	original, err := e.targetContent(ctx, it.Target)
	if err != nil {
		return nil, fmt.Errorf("reading target content: %w", err)
	}

	executionsTotal.WithLabelValues("proposed").Inc()
	return &Result{
		Changes: []FileChange{{
			FilePath:   it.Target.FilePath + ".proposal",
			Action:     ActionCreate,
			OldContent: "",
			NewContent: renderProposal(it, analysis, original),
			Reasoning:  fmt.Sprintf("confidence %.2f is below the execution threshold; change requires human approval", chain.Confidence),
		}},
		Proposal: true,
		Attempts: 0,
		Log: []string{
			fmt.Sprintf("selected %s strategy (confidence %.2f)", chain.Approach, chain.Confidence),
			"rendered proposal for human review, nothing applied",
		},
	}, nil
}

// renderProposal produces the annotated proposal document. The
// original content is embedded verbatim so a reviewer applies the
// change against exactly what the engine saw.
func renderProposal(it *intent.ChangeIntent, analysis *impact.Analysis, original string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PROPOSED CHANGE (not applied): %s\n", it.Target.FilePath)
	fmt.Fprintf(&b, "Request: %s\n\n", requestSummary(it))

	if len(analysis.DirectChanges) > 0 {
		b.WriteString("Intended edits:\n")
		for _, dc := range analysis.DirectChanges {
			fmt.Fprintf(&b, "- %s: %s -> %s (as %q)\n", dc.Property, dc.From, dc.To, dc.Expression)
		}
		b.WriteString("\n")
	}
	if cascades := analysis.RequiredCascades(); len(cascades) > 0 {
		b.WriteString("Required follow-on changes:\n")
		for _, c := range cascades {
			fmt.Fprintf(&b, "- %s\n", c.Description)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Expected scope: about %d line(s) in %d file(s), %s magnitude.\n\n",
		analysis.ExpectedScope.Lines, analysis.ExpectedScope.Files, analysis.ExpectedScope.ChangeType)

	b.WriteString("--- ORIGINAL CONTENT (unmodified) ---\n")
	b.WriteString(original)
	if !strings.HasSuffix(original, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("--- END ORIGINAL CONTENT ---\n")
	return b.String()
}
