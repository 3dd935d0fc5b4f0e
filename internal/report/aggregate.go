// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns the deduplicated record set into annual summaries,
// CSV tables, chart images, and a plain-text bibliometric report.
package report

import (
	"math"
	"sort"

	"github.com/pdiddy/hubmetrics/pkg/types"
)

// FilterWindow returns the records whose publication year falls inside
// [yearStart, yearEnd]. Order is preserved.
func FilterWindow(records []types.PaperRecord, yearStart, yearEnd int) []types.PaperRecord {
	var kept []types.PaperRecord
	for _, r := range records {
		if r.Year >= yearStart && r.Year <= yearEnd {
			kept = append(kept, r)
		}
	}
	return kept
}

// Aggregate groups the deduplicated set by publication year inside the
// inclusion window and computes per-year, per-category counts, citation
// statistics, and open-access shares. Years outside the window are
// excluded even if fetched. The returned slice is ordered by year and only
// contains years that have at least one record.
func Aggregate(records []types.PaperRecord, yearStart, yearEnd int) []types.AnnualSummary {
	byYear := make(map[int][]types.PaperRecord)
	for _, r := range FilterWindow(records, yearStart, yearEnd) {
		byYear[r.Year] = append(byYear[r.Year], r)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	summaries := make([]types.AnnualSummary, 0, len(years))
	for _, y := range years {
		var core, related []types.PaperRecord
		for _, r := range byYear[y] {
			switch r.Category {
			case types.CategoryCore:
				core = append(core, r)
			case types.CategoryRelated:
				related = append(related, r)
			}
		}
		summaries = append(summaries, types.AnnualSummary{
			Year:    y,
			Core:    categoryStats(core),
			Related: categoryStats(related),
			Total:   categoryStats(byYear[y]),
		})
	}
	return summaries
}

func categoryStats(records []types.PaperRecord) types.CategoryYearStats {
	s := types.CategoryYearStats{Papers: len(records)}
	if len(records) == 0 {
		return s
	}

	citations := make([]int, 0, len(records))
	for _, r := range records {
		s.Citations += r.CitationCount
		citations = append(citations, r.CitationCount)
		if r.OpenAccess {
			s.OpenAccess++
		}
	}

	s.AvgCitations = round2(float64(s.Citations) / float64(len(records)))
	s.MedCitations = median(citations)
	s.OAPercent = round1(float64(s.OpenAccess) / float64(len(records)) * 100)
	return s
}

// median returns the median of values, the mean of the middle pair for
// even counts. values is sorted in place.
func median(values []int) float64 {
	sort.Ints(values)
	n := len(values)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(values[n/2])
	}
	return float64(values[n/2-1]+values[n/2]) / 2
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Overview condenses the annual summaries into run-level statistics for
// the text report.
type Overview struct {
	TotalPapers    int
	CorePapers     int
	RelatedPapers  int
	TotalCitations int
	TotalOA        int
	AvgCitations   float64
	AvgPerYear     float64
	FirstYear      int
	LastYear       int
	PeakYear       int
	PeakCount      int
	OverallGrowth  float64
}

// Summarize computes run-level totals over the annual summaries.
func Summarize(summaries []types.AnnualSummary) Overview {
	var o Overview
	if len(summaries) == 0 {
		return o
	}

	o.FirstYear = summaries[0].Year
	o.LastYear = summaries[len(summaries)-1].Year

	for _, s := range summaries {
		o.TotalPapers += s.Total.Papers
		o.CorePapers += s.Core.Papers
		o.RelatedPapers += s.Related.Papers
		o.TotalCitations += s.Total.Citations
		o.TotalOA += s.Total.OpenAccess
		if s.Total.Papers > o.PeakCount {
			o.PeakCount = s.Total.Papers
			o.PeakYear = s.Year
		}
	}

	if o.TotalPapers > 0 {
		o.AvgCitations = round2(float64(o.TotalCitations) / float64(o.TotalPapers))
	}
	o.AvgPerYear = round1(float64(o.TotalPapers) / float64(len(summaries)))

	first := summaries[0].Total.Papers
	last := summaries[len(summaries)-1].Total.Papers
	if first > 0 {
		o.OverallGrowth = round1(float64(last-first) / float64(first) * 100)
	}
	return o
}

// YearGrowth is the year-over-year change in total publications.
type YearGrowth struct {
	Year    int
	Prev    int
	Curr    int
	Percent float64
}

// GrowthRates computes year-over-year growth between consecutive summary
// rows. The first year has no predecessor and produces no entry.
func GrowthRates(summaries []types.AnnualSummary) []YearGrowth {
	var rates []YearGrowth
	for i := 1; i < len(summaries); i++ {
		prev := summaries[i-1].Total.Papers
		curr := summaries[i].Total.Papers
		g := YearGrowth{Year: summaries[i].Year, Prev: prev, Curr: curr}
		if prev > 0 {
			g.Percent = round1(float64(curr-prev) / float64(prev) * 100)
		}
		rates = append(rates, g)
	}
	return rates
}
