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
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/RestyleHQ/restyle/services/engine/impact"
	"github.com/RestyleHQ/restyle/services/engine/intent"
	"github.com/RestyleHQ/restyle/services/engine/repomodel"
	"github.com/RestyleHQ/restyle/services/engine/validate"
)

// broadCandidateLimit caps how many scored components enter the
// parallel generate and validate cycle.
const broadCandidateLimit = 5

// Relevance score weights for the unresolved-target path.
const (
	scoreNameMatch      = 50
	scoreContentDensity = 30
	scoreStylingMarker  = 20
	scoreLayoutName     = 40
	scorePageNaming     = 15
	scoreExported       = 10
)

var layoutNameMarkers = []string{
	"layout", "grid", "container", "row", "column", "flex",
	"sidebar", "wrapper", "section",
}

var stylingMarkers = []string{
	"classname", "style=", "styled", "css`", ".module.css",
}

// scoredComponent pairs a component with its relevance score.
type scoredComponent struct {
	component *repomodel.Component
	score     int
}

// executeBroad handles the unresolved-target path: every indexed
// component is scored for relevance, the top candidates each run an
// independent generate and validate cycle in parallel, and all
// passing results are returned together as a multi-file change set.
func (e *Executor) executeBroad(ctx context.Context, chain *ChangeStrategy, it *intent.ChangeIntent, analysis *impact.Analysis) (*Result, error) {
	candidates := scoreComponents(e.model.Components(), it)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if len(candidates) > broadCandidateLimit {
		candidates = candidates[:broadCandidateLimit]
	}

	log := []string{fmt.Sprintf("selected %s strategy (confidence %.2f)", chain.Approach, chain.Confidence)}
	log = append(log, fmt.Sprintf("no resolved target: scored %d candidate component(s)", len(candidates)))

	var mu sync.Mutex
	changes := make([]FileChange, 0, len(candidates))
	verdicts := make(map[string]*validate.Result, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for _, cand := range candidates {
		g.Go(func() error {
			original, err := e.targetContent(gctx, cand.component)
			if err != nil {
				mu.Lock()
				log = append(log, fmt.Sprintf("%s: skipped, content unavailable: %v", cand.component.Name, err))
				mu.Unlock()
				return nil
			}

			generated, err := e.generateWithGuard(gctx, chain, it, analysis, original, &[]string{})
			if err != nil {
				mu.Lock()
				log = append(log, fmt.Sprintf("%s: generation rejected: %v", cand.component.Name, err))
				mu.Unlock()
				return nil
			}

			verdict := e.gate.Validate(original, generated, it, chain.Confidence, analysis)
			mu.Lock()
			defer mu.Unlock()
			if !accepted(verdict, chain.ValidationLevel) {
				log = append(log, fmt.Sprintf("%s: validation failed (%d issues)", cand.component.Name, len(verdict.Issues)))
				return nil
			}
			log = append(log, fmt.Sprintf("%s: validation passed (score %d)", cand.component.Name, cand.score))
			changes = append(changes, FileChange{
				FilePath:   cand.component.FilePath,
				Action:     ActionModify,
				OldContent: original,
				NewContent: generated,
				Reasoning:  requestSummary(it),
			})
			verdicts[cand.component.FilePath] = verdict
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		executionsTotal.WithLabelValues("exhausted").Inc()
		return nil, &ExecutionError{Err: ErrAttemptsExhausted, Attempts: 1}
	}

	// Deterministic output order regardless of goroutine completion;
	// the reported verdict is the first accepted change's.
	sort.Slice(changes, func(i, j int) bool { return changes[i].FilePath < changes[j].FilePath })

	executionsTotal.WithLabelValues("applied").Inc()
	return &Result{
		Changes:    changes,
		Validation: verdicts[changes[0].FilePath],
		Attempts:   1,
		Log:        log,
	}, nil
}

// scoreComponents ranks every component for relevance to the request,
// highest first, dropping zero scores.
func scoreComponents(components []*repomodel.Component, it *intent.ChangeIntent) []scoredComponent {
	words := requestWords(it)

	var scored []scoredComponent
	for _, c := range components {
		if s := scoreComponent(c, it, words); s > 0 {
			scored = append(scored, scoredComponent{component: c, score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	return scored
}

func scoreComponent(c *repomodel.Component, it *intent.ChangeIntent, words []string) int {
	name := strings.ToLower(c.Name)
	path := strings.ToLower(c.FilePath)
	content := strings.ToLower(c.Content)

	score := 0
	for _, w := range words {
		if strings.Contains(name, w) || strings.Contains(path, w) {
			score += scoreNameMatch
			break
		}
	}
	if it.Type == intent.ChangeContent && textDensity(c.Content) > 0.3 {
		score += scoreContentDensity
	}
	if it.Type == intent.ChangeStyling && containsAny(content, stylingMarkers) {
		score += scoreStylingMarker
	}
	if it.Type == intent.ChangeLayout && containsAny(name, layoutNameMarkers) {
		score += scoreLayoutName
	}
	if strings.HasSuffix(name, "page") || strings.Contains(path, "/pages/") || strings.Contains(path, "/app/") {
		score += scorePageNaming
	}
	if c.Exported {
		score += scoreExported
	}
	return score
}

// requestWords extracts keyword candidates from the request, dropping
// short connective words.
func requestWords(it *intent.ChangeIntent) []string {
	var text string
	switch {
	case it.Request.Natural != nil:
		text = it.Request.Natural.Instruction
	case it.Request.Visual != nil:
		text = it.Request.Visual.Element.Selector + " " + strings.Join(it.Request.Visual.Element.Classes, " ")
	}

	var words []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len(w) >= 4 {
			words = append(words, w)
		}
	}
	return words
}

// textDensity approximates how much of a component is human-readable
// text rather than markup: the fraction of characters outside angle
// brackets and braces.
func textDensity(content string) float64 {
	if content == "" {
		return 0
	}
	depth := 0
	visible := 0
	for _, r := range content {
		switch r {
		case '<', '{':
			depth++
		case '>', '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && !isSpaceRune(r) {
				visible++
			}
		}
	}
	return float64(visible) / float64(len(content))
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
