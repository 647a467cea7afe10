// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restyle.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
provider:
  provider: anthropic
  model: claude-test
  requests_per_second: 2
index: ./index.json
repo_root: ./site
logging:
  level: debug
  json: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.Provider != "anthropic" || cfg.Provider.Model != "claude-test" {
		t.Errorf("provider = %+v", cfg.Provider)
	}
	if cfg.Index != "./index.json" {
		t.Errorf("index = %q", cfg.Index)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.JSON {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoad_MissingIndex(t *testing.T) {
	path := writeConfig(t, `
provider:
  provider: openai
`)
	if _, err := Load(path); err == nil {
		t.Error("Load accepted a config without an index path")
	}
}

func TestLoad_BadLogLevel(t *testing.T) {
	path := writeConfig(t, `
index: ./index.json
logging:
  level: loud
`)
	if _, err := Load(path); err == nil {
		t.Error("Load accepted an unknown log level")
	}
}

func TestLoad_NegativeRate(t *testing.T) {
	path := writeConfig(t, `
index: ./index.json
provider:
  requests_per_second: -1
`)
	if _, err := Load(path); err == nil {
		t.Error("Load accepted a negative rate limit")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load succeeded on a missing file")
	}
}
