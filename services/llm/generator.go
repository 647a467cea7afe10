// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Generator adapts a Client to the engine's generateText contract,
// applying a request rate limit and fixed sampling parameters.
//
// Thread Safety:
//
//	Safe for concurrent use; the limiter serializes admission and the
//	wrapped client is expected to be concurrency-safe.
type Generator struct {
	client  Client
	limiter *rate.Limiter
	params  GenerationParams
}

// NewGenerator wraps a client.
//
// # Inputs
//
//	client - The provider client. Must not be nil.
//	rps - Requests per second admitted to the provider; zero or
//	      negative disables limiting.
func NewGenerator(client Client, rps float64) *Generator {
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	// Deterministic output matters more than variety for code edits.
	temperature := float32(0.0)
	return &Generator{
		client:  client,
		limiter: limiter,
		params:  GenerationParams{Temperature: &temperature},
	}
}

// GenerateText blocks until the rate limiter admits the request, then
// issues one generation call.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}
	return g.client.Generate(ctx, prompt, g.params)
}
