// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect queries OpenAlex for the configured search terms and
// reduces the union of results to one record per distinct paper.
package collect

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/hubmetrics/pkg/types"
)

// TermCount records how many papers one term/strategy query produced.
type TermCount struct {
	Term    types.SearchTerm `yaml:"term"`
	Fetched int              `yaml:"fetched"`
}

// Output holds the deduplicated record set and collection statistics.
type Output struct {
	Records     []types.PaperRecord
	DupsRemoved int
	PerTerm     []TermCount
	QueryErrors []string
}

// Run executes the collection pipeline for every configured term, strictly
// sequentially and in term order. A failed query is reported on w and
// skipped; it does not abort the run. The unioned results are deduplicated
// once and sorted by year then ID, after which the set is frozen for
// aggregation and export.
func Run(ctx context.Context, client *Client, terms []types.SearchTerm, w io.Writer) (Output, error) {
	if len(terms) == 0 {
		return Output{}, fmt.Errorf("no search terms configured")
	}

	var out Output
	var all []types.PaperRecord

	for _, term := range terms {
		fmt.Fprintf(w, "searching %s (%s, %s search)\n", term.Text, term.Category, term.Strategy)

		records, err := client.FetchAll(ctx, term, w)
		if err != nil {
			if ctx.Err() != nil {
				return Output{}, ctx.Err()
			}
			msg := fmt.Sprintf("%s (%s): %v", term.Text, term.Strategy, err)
			out.QueryErrors = append(out.QueryErrors, msg)
			fmt.Fprintf(w, "warning: query failed, skipping: %s\n", msg)
			continue
		}

		fmt.Fprintf(w, "  %d papers\n", len(records))
		out.PerTerm = append(out.PerTerm, TermCount{Term: term, Fetched: len(records)})
		all = append(all, records...)
	}

	out.Records, out.DupsRemoved = Deduplicate(all)
	SortRecords(out.Records)

	fmt.Fprintf(w, "collected %d unique papers (%d duplicates removed)\n", len(out.Records), out.DupsRemoved)
	return out, nil
}

// SortRecords orders records by year then ID, the canonical export order.
func SortRecords(records []types.PaperRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year < records[j].Year
		}
		return records[i].ID < records[j].ID
	})
}
