package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hubmetrics/internal/collect"
	"github.com/pdiddy/hubmetrics/pkg/types"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test OpenAlex connectivity with a single search term",
	Long: `Ping fetches one page of results for a single search term and prints a
few recent papers. Useful for checking connectivity and API behavior before
a full run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetString("term")
		return runPing(collectConfig(cmd), term)
	},
}

func init() {
	pingCmd.Flags().String("term", "energy hub", "search term to test with")
	rootCmd.AddCommand(pingCmd)
}

// runPing fetches a single page for term and prints sample recent papers.
func runPing(cfg types.CollectConfig, termText string) error {
	ctx, cancel := interruptContext()
	defer cancel()

	cfg.MaxPages = 1
	client := collect.NewClient(cfg)

	term := types.SearchTerm{Text: termText, Category: types.CategoryCore, Strategy: types.StrategyTitle}
	records, err := client.FetchAll(ctx, term, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d papers for %q\n", len(records), termText)

	recentFrom := cfg.YearEnd - 2
	var recent []types.PaperRecord
	for _, r := range records {
		if r.Year >= recentFrom {
			recent = append(recent, r)
		}
	}
	fmt.Printf("Recent papers (%d+): %d\n", recentFrom, len(recent))

	for i, r := range recent {
		if i == 3 {
			break
		}
		fmt.Printf("  %d. %s\n     year %d, %d citations\n", i+1, truncate(r.Title, 80), r.Year, r.CitationCount)
	}
	return nil
}

// truncate shortens s to at most max runes, marking the cut with an
// ellipsis. Truncation is rune-based so multi-byte titles are never cut
// mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
