package main

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline: all CSV files, charts, and report",
	Long: `Analyze runs the complete pipeline: collect papers for every configured
search term, deduplicate, aggregate by year, and write the five CSV tables,
the chart images, the text report, and the run snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyzePipeline(collectConfig(cmd))
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
