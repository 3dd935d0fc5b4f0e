package main

import (
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Collect and write the formatted research summary report",
	Long: `Report collects papers for every configured search term and writes the
annual summary CSV, the year/count matrix, and the formatted plain-text
summary suitable for a review paper.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReportPipeline(collectConfig(cmd))
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
