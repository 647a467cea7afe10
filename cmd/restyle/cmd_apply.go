// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RestyleHQ/restyle/services/engine"
	"github.com/RestyleHQ/restyle/services/engine/intent"
	"github.com/RestyleHQ/restyle/services/engine/repomodel"
	"github.com/RestyleHQ/restyle/services/engine/strategy"
	"github.com/RestyleHQ/restyle/services/llm"
)

var applyWrite bool

var applyCmd = &cobra.Command{
	Use:   "apply <request.json>",
	Short: "Run change requests through the engine",
	Long: `Reads one or more change requests from a JSON file ("-" for stdin)
and runs each through the pipeline. Accepted changes are printed as
JSON; with --write they are also written back to the repository.
Proposals are printed but never written.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyWrite, "write", false, "write accepted changes back to the repository")
	rootCmd.AddCommand(applyCmd)
}

// applyOutput is the JSON document printed per request.
type applyOutput struct {
	Outcome *engine.Outcome `json:"outcome,omitempty"`
	Error   string          `json:"error,omitempty"`
	Issues  any             `json:"issues,omitempty"`
}

func runApply(cmd *cobra.Command, args []string) error {
	reqs, err := readRequests(args[0])
	if err != nil {
		return err
	}
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	logger.Info("executing change requests", "count", len(reqs))
	items := eng.ExecuteBatch(cmd.Context(), reqs)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	failures := 0
	for _, item := range items {
		out := applyOutput{Outcome: item.Outcome}
		if item.Err != nil {
			failures++
			out.Error = item.Err.Error()
			// Surface the gate's itemized issues so the caller can
			// explain why, not just that, the change failed.
			var execErr *strategy.ExecutionError
			if errors.As(item.Err, &execErr) && execErr.LastValidation != nil {
				out.Issues = execErr.LastValidation.Issues
			}
		}
		if err := encoder.Encode(out); err != nil {
			return err
		}
		if applyWrite && item.Outcome != nil && !item.Outcome.Proposal {
			if err := writeChanges(item.Outcome); err != nil {
				return err
			}
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d request(s) failed", failures, len(items))
	}
	return nil
}

func buildEngine() (*engine.Engine, error) {
	model, err := repomodel.LoadIndex(cfg.Index)
	if err != nil {
		return nil, fmt.Errorf("loading component index: %w", err)
	}
	generator, err := llm.New(cfg.Provider)
	if err != nil {
		return nil, err
	}

	var opts []engine.Option
	if cfg.RepoRoot != "" {
		opts = append(opts, engine.WithFileReader(repomodel.NewDirReader(cfg.RepoRoot)))
	}
	return engine.New(model, generator, opts...)
}

// readRequests parses a single request or an array of requests.
func readRequests(path string) ([]intent.ChangeRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading requests: %w", err)
	}

	var many []intent.ChangeRequest
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}
	var one intent.ChangeRequest
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("parsing requests: %w", err)
	}
	return []intent.ChangeRequest{one}, nil
}

func writeChanges(outcome *engine.Outcome) error {
	if cfg.RepoRoot == "" {
		return fmt.Errorf("--write requires repo_root in the configuration")
	}
	for _, change := range outcome.Changes {
		full, err := repoPath(cfg.RepoRoot, change.FilePath)
		if err != nil {
			return err
		}
		if err := os.WriteFile(full, []byte(change.NewContent), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", change.FilePath, err)
		}
		logger.Info("wrote change", "path", change.FilePath, "action", change.Action)
	}
	return nil
}

// repoPath joins a repository-relative change path under the root,
// refusing paths that escape it.
func repoPath(root, filePath string) (string, error) {
	full := filepath.Join(root, filepath.FromSlash(filePath))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the repository root", filePath)
	}
	return full, nil
}
