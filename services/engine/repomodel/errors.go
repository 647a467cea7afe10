// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package repomodel

import "errors"

// Sentinel errors for the repomodel package.
var (
	// ErrComponentNotFound indicates no component matched the lookup.
	ErrComponentNotFound = errors.New("component not found")

	// ErrNoContent indicates a component's file content could not be read.
	ErrNoContent = errors.New("component content unavailable")

	// ErrNilReader indicates a Target was built without a file reader.
	ErrNilReader = errors.New("file reader not configured")
)
