package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hubmetrics/internal/collect"
	"github.com/pdiddy/hubmetrics/internal/report"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the manifest of the last collection run",
	Long: `Snapshot reads the run manifest written into the output directory by a
previous collection and prints its parameters and statistics. It makes no
API calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := collectConfig(cmd)
		return printSnapshot(os.Stdout, filepath.Join(cfg.OutputDir, report.SnapshotYAML))
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

// printSnapshot loads the run manifest at path and writes a readable
// summary to w.
func printSnapshot(w io.Writer, path string) error {
	snap, err := collect.ReadSnapshot(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Collection run: %s\n", snap.Summary.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  window:             %d-%d\n", snap.Config.YearStart, snap.Config.YearEnd)
	fmt.Fprintf(w, "  unique papers:      %d\n", snap.Summary.UniquePapers)
	fmt.Fprintf(w, "  duplicates removed: %d\n", snap.Summary.DuplicatesRemoved)

	fmt.Fprintln(w, "  per term:")
	for _, tc := range snap.PerTerm {
		fmt.Fprintf(w, "    %s (%s, %s): %d\n", tc.Term.Text, tc.Term.Category, tc.Term.Strategy, tc.Fetched)
	}

	if len(snap.Summary.QueryErrors) > 0 {
		fmt.Fprintf(w, "  query errors: %d\n", len(snap.Summary.QueryErrors))
		for _, e := range snap.Summary.QueryErrors {
			fmt.Fprintf(w, "    %s\n", e)
		}
	}
	return nil
}
