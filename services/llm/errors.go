// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import "errors"

// Sentinel errors for provider construction and calls.
var (
	// ErrMissingAPIKey is returned when no credential can be resolved
	// for a provider.
	ErrMissingAPIKey = errors.New("provider API key is missing")

	// ErrEmptyResponse is returned when a provider answers with no
	// usable text.
	ErrEmptyResponse = errors.New("provider returned no content")

	// ErrUnknownProvider is returned by the factory for a provider
	// name it does not recognize.
	ErrUnknownProvider = errors.New("unknown provider")
)
