// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pdiddy/hubmetrics/pkg/types"
)

// Export file names. All files are overwritten on each run.
const (
	PapersCSV   = "openalex_energy_hub_papers.csv"
	SummaryCSV  = "energy_hub_annual_summary.csv"
	CoreCSV     = "energy_hub_core_papers_by_year.csv"
	CombinedCSV = "energy_hub_core_plus_related_papers_by_year.csv"
	CountsCSV   = "energy_hub_paper_counts_by_year.csv"

	AnalysisPNG     = "openalex_energy_hub_analysis.png"
	DistributionPNG = "energy_hub_category_distribution.png"
	TrendsPNG       = "energy_hub_publication_trends.png"

	ReportTXT    = "energy_hub_research_summary_report.txt"
	SnapshotYAML = "collection.yaml"
)

// WritePapersCSV writes the full deduplicated paper set restricted to the
// inclusion window. Records are expected in canonical order (year then
// ID), so the same input produces byte-identical output.
func WritePapersCSV(path string, records []types.PaperRecord, yearStart, yearEnd int) error {
	header := []string{
		"openalex_id", "title", "year", "authors", "venue", "doi",
		"citation_count", "open_access", "abstract_sample",
		"search_term", "category", "source_strategy",
	}

	var rows [][]string
	for _, r := range FilterWindow(records, yearStart, yearEnd) {
		rows = append(rows, []string{
			r.ID,
			r.Title,
			strconv.Itoa(r.Year),
			r.AuthorNames(0),
			r.Venue,
			r.DOI,
			strconv.Itoa(r.CitationCount),
			strconv.FormatBool(r.OpenAccess),
			r.AbstractSample,
			r.SearchTerm,
			string(r.Category),
			string(r.Strategy),
		})
	}
	return writeCSV(path, header, rows)
}

// WriteAnnualSummaryCSV writes the complete per-year statistics table.
func WriteAnnualSummaryCSV(path string, summaries []types.AnnualSummary) error {
	header := []string{
		"year",
		"core_papers", "related_papers", "total_papers",
		"core_citations", "related_citations", "total_citations",
		"core_avg_citations", "related_avg_citations", "total_avg_citations",
		"core_median_citations", "related_median_citations", "total_median_citations",
		"core_open_access", "related_open_access", "total_open_access",
		"core_oa_percentage", "related_oa_percentage", "total_oa_percentage",
	}

	var rows [][]string
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			strconv.Itoa(s.Core.Papers), strconv.Itoa(s.Related.Papers), strconv.Itoa(s.Total.Papers),
			strconv.Itoa(s.Core.Citations), strconv.Itoa(s.Related.Citations), strconv.Itoa(s.Total.Citations),
			formatFloat(s.Core.AvgCitations), formatFloat(s.Related.AvgCitations), formatFloat(s.Total.AvgCitations),
			formatFloat(s.Core.MedCitations), formatFloat(s.Related.MedCitations), formatFloat(s.Total.MedCitations),
			strconv.Itoa(s.Core.OpenAccess), strconv.Itoa(s.Related.OpenAccess), strconv.Itoa(s.Total.OpenAccess),
			formatFloat(s.Core.OAPercent), formatFloat(s.Related.OAPercent), formatFloat(s.Total.OAPercent),
		})
	}
	return writeCSV(path, header, rows)
}

// WriteCorePapersCSV writes the detailed per-paper listing for core
// records only, restricted to the inclusion window.
func WriteCorePapersCSV(path string, records []types.PaperRecord, yearStart, yearEnd int) error {
	return writePapersByYear(path, records, yearStart, yearEnd, func(r types.PaperRecord) bool {
		return r.Category == types.CategoryCore
	})
}

// WriteCombinedPapersCSV writes the detailed per-paper listing for core
// and related records, restricted to the inclusion window.
func WriteCombinedPapersCSV(path string, records []types.PaperRecord, yearStart, yearEnd int) error {
	return writePapersByYear(path, records, yearStart, yearEnd, func(r types.PaperRecord) bool {
		return r.Category == types.CategoryCore || r.Category == types.CategoryRelated
	})
}

func writePapersByYear(path string, records []types.PaperRecord, yearStart, yearEnd int, keep func(types.PaperRecord) bool) error {
	header := []string{
		"year", "title", "authors", "venue", "citation_count",
		"open_access", "doi", "openalex_id", "search_term", "category",
	}

	var rows [][]string
	for _, r := range FilterWindow(records, yearStart, yearEnd) {
		if !keep(r) {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(r.Year),
			r.Title,
			r.AuthorNames(5),
			r.Venue,
			strconv.Itoa(r.CitationCount),
			strconv.FormatBool(r.OpenAccess),
			r.DOI,
			r.ID,
			r.SearchTerm,
			string(r.Category),
		})
	}
	return writeCSV(path, header, rows)
}

// WriteCountsCSV writes the simple year/count matrix.
func WriteCountsCSV(path string, summaries []types.AnnualSummary) error {
	header := []string{"year", "core_count", "related_count", "total_count"}

	var rows [][]string
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			strconv.Itoa(s.Core.Papers),
			strconv.Itoa(s.Related.Papers),
			strconv.Itoa(s.Total.Papers),
		})
	}
	return writeCSV(path, header, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// formatFloat renders statistics with two decimals so repeated runs give
// byte-identical files.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
