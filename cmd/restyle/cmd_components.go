// Copyright (C) 2026 Restyle HQ (oss@restylehq.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RestyleHQ/restyle/services/engine/repomodel"
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List the indexed components",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := repomodel.LoadIndex(cfg.Index)
		if err != nil {
			return fmt.Errorf("loading component index: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATH\tSTYLING\tCOMPLEXITY\tEXPORTED")
		for _, c := range model.Components() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n",
				c.Name, c.FilePath, c.Styling, c.Complexity, c.Exported)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)
}
