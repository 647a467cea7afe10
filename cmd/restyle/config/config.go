// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads and validates the CLI configuration file.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/RestyleHQ/restyle/services/llm"
)

// Config is the root of the restyle.yaml configuration file.
type Config struct {
	// Provider configures the text-generation backend.
	Provider llm.Options `yaml:"provider"`

	// Index is the path to the component index snapshot.
	Index string `yaml:"index" validate:"required"`

	// RepoRoot is the repository checkout used for on-demand file
	// reads; empty disables on-demand reading.
	RepoRoot string `yaml:"repo_root"`

	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	// Level is debug, info, warn, or error.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`

	// Dir enables file logging when set.
	Dir string `yaml:"dir"`

	// JSON switches stderr output to JSON.
	JSON bool `yaml:"json"`
}

var (
	validateOnce   sync.Once
	configValidate *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		configValidate = validator.New()
	})
	return configValidate
}

// Load reads, parses, and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags and cross-field constraints.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Provider.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid config: requests_per_second must not be negative")
	}
	return nil
}
