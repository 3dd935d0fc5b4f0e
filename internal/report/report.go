// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/hubmetrics/pkg/types"
)

// WriteTextReport formats the bibliometric summary to w. The generated
// timestamp is a parameter so the body is reproducible in tests.
func WriteTextReport(w io.Writer, summaries []types.AnnualSummary, generated time.Time) error {
	o := Summarize(summaries)
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "           ENERGY HUB RESEARCH BIBLIOMETRIC ANALYSIS")
	fmt.Fprintln(w, "                    (OpenAlex Database)")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "ANALYSIS DATE: %s\n", generated.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, "DATA SOURCE: OpenAlex (https://openalex.org/)")
	if o.TotalPapers > 0 {
		fmt.Fprintf(w, "SEARCH PERIOD: %d-%d\n", o.FirstYear, o.LastYear)
	}
	fmt.Fprintf(w, "TOTAL PAPERS COLLECTED: %d\n\n", o.TotalPapers)

	if o.TotalPapers == 0 {
		fmt.Fprintln(w, "No papers in the inclusion window.")
		return nil
	}

	fmt.Fprintln(w, "ANNUAL PUBLICATION STATISTICS:")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "%-6s %-6s %-8s %-6s %-8s %-10s\n", "Year", "Core", "Related", "Total", "Growth", "Citations")
	fmt.Fprintln(w, strings.Repeat("-", 50))

	growth := GrowthRates(summaries)
	for i, s := range summaries {
		growthStr := "  -   "
		if i > 0 {
			g := growth[i-1]
			if g.Prev > 0 {
				growthStr = fmt.Sprintf("%+5.1f%%", g.Percent)
			}
		}
		fmt.Fprintf(w, "%-6d %-6d %-8d %-6d %-8s %-10d\n",
			s.Year, s.Core.Papers, s.Related.Papers, s.Total.Papers, growthStr, s.Total.Citations)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "KEY FINDINGS:")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	fmt.Fprintln(w, "* Research Focus Distribution:")
	fmt.Fprintf(w, "  - Core energy hub research: %d papers (%.1f%%)\n",
		o.CorePapers, pct(o.CorePapers, o.TotalPapers))
	fmt.Fprintf(w, "  - Related multi-energy research: %d papers (%.1f%%)\n\n",
		o.RelatedPapers, pct(o.RelatedPapers, o.TotalPapers))

	fmt.Fprintln(w, "* Publication Growth:")
	fmt.Fprintf(w, "  - Overall growth: %+.1f%% from %d to %d\n", o.OverallGrowth, o.FirstYear, o.LastYear)
	fmt.Fprintf(w, "  - Average annual publications: %.1f papers\n\n", o.AvgPerYear)

	fmt.Fprintln(w, "* Citation Impact:")
	fmt.Fprintf(w, "  - Total citations: %d\n", o.TotalCitations)
	fmt.Fprintf(w, "  - Average citations per paper: %.1f\n", o.AvgCitations)
	fmt.Fprintf(w, "  - Open-access papers: %d (%.1f%%)\n\n", o.TotalOA, pct(o.TotalOA, o.TotalPapers))

	fmt.Fprintf(w, "* Peak Publication Year: %d (%d papers)\n\n", o.PeakYear, o.PeakCount)

	fmt.Fprintln(w, "METHODOLOGY:")
	fmt.Fprintln(w, strings.Repeat("-", 15))
	fmt.Fprintln(w, "* Database: OpenAlex comprehensive scholarly database")
	fmt.Fprintln(w, "* Search Strategy: multi-term, title and abstract fields")
	fmt.Fprintln(w, "  - Core terms: 'energy hub', 'energy hubs', 'energy hub optimization'")
	fmt.Fprintln(w, "  - Related terms: 'multi-energy system', 'integrated energy system'")
	fmt.Fprintf(w, "* Time Period: %d-%d\n", o.FirstYear, o.LastYear)
	fmt.Fprintln(w, "* Deduplication: OpenAlex IDs and normalized title matching")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "LIMITATIONS:")
	fmt.Fprintln(w, strings.Repeat("-", 13))
	fmt.Fprintln(w, "* OpenAlex coverage may not include all energy hub publications")
	fmt.Fprintln(w, "* Search limited to English-language metadata")
	fmt.Fprintf(w, "* %d data may represent a partial year only\n", o.LastYear)
	fmt.Fprintln(w, "* Citation counts may lag for recent publications")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "RECOMMENDED CITATION:")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	fmt.Fprintf(w, "Data retrieved from OpenAlex (https://openalex.org/) on %s.\n", generated.Format("2006-01-02"))
	fmt.Fprintln(w, "OpenAlex is developed by OurResearch and provides open scholarly metadata.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	return nil
}

// WriteTextReportFile writes the summary report to path, overwriting any
// previous run's file.
func WriteTextReportFile(path string, summaries []types.AnnualSummary, generated time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteTextReport(f, summaries, generated); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
