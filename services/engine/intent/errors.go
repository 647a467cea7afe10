// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package intent

import "errors"

// Sentinel errors for the intent package.
var (
	// ErrEmptyRequest indicates a change request with neither a visual
	// nor a natural-language edit set.
	ErrEmptyRequest = errors.New("change request is empty")
)
