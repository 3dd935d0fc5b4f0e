// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pdiddy/hubmetrics/internal/collect"
	"github.com/pdiddy/hubmetrics/internal/report"
	"github.com/pdiddy/hubmetrics/pkg/types"
)

// interruptContext returns a context cancelled by Ctrl-C. Cancellation is
// whole-process; there is no partial-resume support.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// collectRecords runs the collection stage for the configured term set.
func collectRecords(ctx context.Context, cfg types.CollectConfig) (collect.Output, error) {
	terms, err := collect.Terms(cfg)
	if err != nil {
		return collect.Output{}, err
	}

	client := collect.NewClient(cfg)
	out, err := collect.Run(ctx, client, terms, os.Stderr)
	if err != nil {
		return collect.Output{}, err
	}
	if len(out.Records) == 0 {
		return collect.Output{}, fmt.Errorf("no papers collected (%d query errors)", len(out.QueryErrors))
	}
	return out, nil
}

// ensureOutputDir creates cfg.OutputDir and returns it.
func ensureOutputDir(cfg types.CollectConfig) (string, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return cfg.OutputDir, nil
}

// runAnalyzePipeline is the full pipeline: collect, aggregate, write all
// five CSVs, the charts, the text report, and the run snapshot.
func runAnalyzePipeline(cfg types.CollectConfig) error {
	ctx, cancel := interruptContext()
	defer cancel()

	out, err := collectRecords(ctx, cfg)
	if err != nil {
		return err
	}

	dir, err := ensureOutputDir(cfg)
	if err != nil {
		return err
	}

	summaries := report.Aggregate(out.Records, cfg.YearStart, cfg.YearEnd)

	steps := []struct {
		name string
		run  func() error
	}{
		{report.PapersCSV, func() error {
			return report.WritePapersCSV(filepath.Join(dir, report.PapersCSV), out.Records, cfg.YearStart, cfg.YearEnd)
		}},
		{report.SummaryCSV, func() error {
			return report.WriteAnnualSummaryCSV(filepath.Join(dir, report.SummaryCSV), summaries)
		}},
		{report.CoreCSV, func() error {
			return report.WriteCorePapersCSV(filepath.Join(dir, report.CoreCSV), out.Records, cfg.YearStart, cfg.YearEnd)
		}},
		{report.CombinedCSV, func() error {
			return report.WriteCombinedPapersCSV(filepath.Join(dir, report.CombinedCSV), out.Records, cfg.YearStart, cfg.YearEnd)
		}},
		{report.CountsCSV, func() error {
			return report.WriteCountsCSV(filepath.Join(dir, report.CountsCSV), summaries)
		}},
		{report.AnalysisPNG, func() error {
			return report.WriteAnalysisChart(filepath.Join(dir, report.AnalysisPNG), summaries)
		}},
		{report.DistributionPNG, func() error {
			return report.WriteDistributionChart(filepath.Join(dir, report.DistributionPNG), summaries)
		}},
		{report.TrendsPNG, func() error {
			return report.WriteTrendsChart(filepath.Join(dir, report.TrendsPNG), summaries)
		}},
		{report.ReportTXT, func() error {
			return report.WriteTextReportFile(filepath.Join(dir, report.ReportTXT), summaries, time.Now())
		}},
		{report.SnapshotYAML, func() error {
			return collect.WriteSnapshot(filepath.Join(dir, report.SnapshotYAML), cfg, out)
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", filepath.Join(dir, step.name))
	}

	printKeyStats(summaries)
	return nil
}

// runReportPipeline collects and writes the summary CSVs plus the
// formatted text report.
func runReportPipeline(cfg types.CollectConfig) error {
	ctx, cancel := interruptContext()
	defer cancel()

	out, err := collectRecords(ctx, cfg)
	if err != nil {
		return err
	}

	dir, err := ensureOutputDir(cfg)
	if err != nil {
		return err
	}

	summaries := report.Aggregate(out.Records, cfg.YearStart, cfg.YearEnd)

	if err := report.WriteAnnualSummaryCSV(filepath.Join(dir, report.SummaryCSV), summaries); err != nil {
		return err
	}
	if err := report.WriteCountsCSV(filepath.Join(dir, report.CountsCSV), summaries); err != nil {
		return err
	}
	if err := report.WriteTextReportFile(filepath.Join(dir, report.ReportTXT), summaries, time.Now()); err != nil {
		return err
	}

	fmt.Printf("Report written: %s\n", filepath.Join(dir, report.ReportTXT))
	return nil
}

// runCollectPipeline is the basic collection: full paper CSV plus the
// publications-per-year and category-distribution charts.
func runCollectPipeline(cfg types.CollectConfig) error {
	ctx, cancel := interruptContext()
	defer cancel()

	out, err := collectRecords(ctx, cfg)
	if err != nil {
		return err
	}

	dir, err := ensureOutputDir(cfg)
	if err != nil {
		return err
	}

	summaries := report.Aggregate(out.Records, cfg.YearStart, cfg.YearEnd)

	if err := report.WritePapersCSV(filepath.Join(dir, report.PapersCSV), out.Records, cfg.YearStart, cfg.YearEnd); err != nil {
		return err
	}
	if err := report.WriteAnalysisChart(filepath.Join(dir, report.AnalysisPNG), summaries); err != nil {
		return err
	}
	if err := report.WriteDistributionChart(filepath.Join(dir, report.DistributionPNG), summaries); err != nil {
		return err
	}

	fmt.Printf("Collected %d papers: %s\n", len(out.Records), filepath.Join(dir, report.PapersCSV))
	return nil
}

func printKeyStats(summaries []types.AnnualSummary) {
	o := report.Summarize(summaries)
	fmt.Println("\nKey statistics:")
	fmt.Printf("  total papers:   %d (%d core, %d related)\n", o.TotalPapers, o.CorePapers, o.RelatedPapers)
	fmt.Printf("  period:         %d-%d\n", o.FirstYear, o.LastYear)
	fmt.Printf("  avg per year:   %.1f\n", o.AvgPerYear)
	fmt.Printf("  peak year:      %d (%d papers)\n", o.PeakYear, o.PeakCount)
	fmt.Printf("  citations:      %d total, %.1f per paper\n", o.TotalCitations, o.AvgCitations)
}
