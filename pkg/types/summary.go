// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CategoryYearStats holds the per-category slice of one year's summary.
type CategoryYearStats struct {
	Papers       int     `json:"papers" yaml:"papers"`
	Citations    int     `json:"citations" yaml:"citations"`
	AvgCitations float64 `json:"avg_citations" yaml:"avg_citations"`
	MedCitations float64 `json:"med_citations" yaml:"med_citations"`
	OpenAccess   int     `json:"open_access" yaml:"open_access"`
	OAPercent    float64 `json:"oa_percent" yaml:"oa_percent"`
}

// AnnualSummary aggregates the deduplicated set for one publication year.
// Derived, recomputed each run, never persisted incrementally.
type AnnualSummary struct {
	Year    int               `json:"year" yaml:"year"`
	Core    CategoryYearStats `json:"core" yaml:"core"`
	Related CategoryYearStats `json:"related" yaml:"related"`
	Total   CategoryYearStats `json:"total" yaml:"total"`
}
