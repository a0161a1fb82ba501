// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/voc2yolo/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List conversion runs recorded in a ledger",
	Long: `History reads the SQLite ledger written by --ledger and lists recent
runs, newest first. Use --run to show the class index and per-file results
of a single run.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("ledger", "", "SQLite history database (required)")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show details for this run id")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.MarkFlagRequired("ledger")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("ledger")
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("ledger %s: %w", path, err)
	}

	l, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if runID, _ := cmd.Flags().GetInt64("run"); runID > 0 {
		return showRun(cmd, l, runID, jsonOutput, out)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := l.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-5s  %-20s  %-9s  %-8s  %-6s  %-7s  %s\n",
		"Run", "Started", "Converted", "No image", "Failed", "Classes", "XML dir")
	fmt.Fprintln(out, strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Fprintf(out, "%-5d  %-20s  %-9d  %-8d  %-6d  %-7d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Converted, r.NoImage, r.Failed, r.Classes, r.XMLDir)
	}
	return nil
}

func showRun(cmd *cobra.Command, l *ledger.Ledger, runID int64, jsonOutput bool, out io.Writer) error {
	names, err := l.Classes(cmd.Context(), runID)
	if err != nil {
		return err
	}
	files, err := l.Files(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(files) == 0 && len(names) == 0 {
		return fmt.Errorf("run %d not found or empty", runID)
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"run": runID, "classes": names, "files": files})
	}

	fmt.Fprintf(out, "Run %d\n\nClasses:\n", runID)
	for id, name := range names {
		fmt.Fprintf(out, "  %3d  %s\n", id, name)
	}
	fmt.Fprintln(out, "\nFiles:")
	for _, f := range files {
		line := fmt.Sprintf("  %-12s  %-30s  %d objects", f.Status, f.XMLFile, f.Objects)
		if f.Error != "" {
			line += "  (" + f.Error + ")"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
