// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Provider names accepted by the factory.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Options selects and configures a provider. Zero values fall back to
// environment variables, then to defaults.
type Options struct {
	// Provider is "openai" or "anthropic".
	Provider string `json:"provider" yaml:"provider"`

	// APIKey is the explicit credential. When empty the provider's
	// conventional environment variable is consulted, then the
	// container secret path.
	APIKey string `json:"-" yaml:"api_key"`

	// Model is the model ID; empty selects the provider default.
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the API endpoint, for gateways and tests.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// RequestsPerSecond caps outbound calls; zero disables limiting.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// envKeys maps a provider to its conventional credential variable and
// container secret path, in resolution order after the explicit key.
var envKeys = map[string][2]string{
	ProviderOpenAI:    {"OPENAI_API_KEY", "/run/secrets/openai_api_key"},
	ProviderAnthropic: {"ANTHROPIC_API_KEY", "/run/secrets/anthropic_api_key"},
}

// New builds a rate-limited generator for the configured provider.
//
// Credential resolution order: explicit Options.APIKey, then the
// provider's environment variable, then the container secret file.
func New(opts Options) (*Generator, error) {
	provider := strings.ToLower(opts.Provider)
	if provider == "" {
		provider = ProviderOpenAI
	}

	apiKey, err := resolveAPIKey(provider, opts.APIKey)
	if err != nil {
		return nil, err
	}

	var client Client
	switch provider {
	case ProviderOpenAI:
		client, err = NewOpenAIClient(apiKey, opts.Model, opts.BaseURL)
	case ProviderAnthropic:
		client, err = NewAnthropicClient(apiKey, opts.Model, opts.BaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewGenerator(client, opts.RequestsPerSecond), nil
}

func resolveAPIKey(provider, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	keys, ok := envKeys[provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	if key := os.Getenv(keys[0]); key != "" {
		return key, nil
	}
	if content, err := os.ReadFile(keys[1]); err == nil {
		slog.Info("Read provider API key from container secret", "provider", provider)
		return strings.TrimSpace(string(content)), nil
	}
	return "", fmt.Errorf("%w: set %s", ErrMissingAPIKey, keys[0])
}
