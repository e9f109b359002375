package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abelbrown/techinsights/internal/archive"
	"github.com/abelbrown/techinsights/internal/site"
)

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List archived weeks, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir := filepath.Join(cfg.OutputDir, site.DirArchive)
		entries, err := archive.Index(dir, cfg.Limits.ArchiveDepth)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintf(out, "no archived weeks in %s\n", dir)
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s  %-14s  %s\n", e.ID, e.Label, filepath.Join(dir, e.File))
		}
		return nil
	},
}
