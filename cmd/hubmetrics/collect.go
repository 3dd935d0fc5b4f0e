package main

import (
	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a basic collection: full paper CSV plus one chart",
	Long: `Collect runs the collection stage only and writes the full deduplicated
paper CSV, the publications-per-year chart, and the category-distribution
chart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCollectPipeline(collectConfig(cmd))
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
}
