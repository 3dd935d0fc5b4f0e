// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"strings"
	"unicode"

	"github.com/pdiddy/hubmetrics/pkg/types"
)

// Deduplicate removes repeat records from the unioned result set. The
// primary key is the OpenAlex ID; the secondary key is the normalized
// title, which catches the same paper indexed under two IDs. The
// first-seen record is kept (stable by query order). When a later
// duplicate came from a core term and the kept record from a related one,
// the kept record is promoted to core. Running Deduplicate on its own
// output is a no-op.
func Deduplicate(records []types.PaperRecord) ([]types.PaperRecord, int) {
	seen := make(map[string]int) // dedup key -> index in deduped
	var deduped []types.PaperRecord
	removed := 0

	for _, r := range records {
		idKey := ""
		if r.ID != "" {
			idKey = "id:" + r.ID
		}
		titleKey := ""
		if nt := NormalizeTitle(r.Title); nt != "" {
			titleKey = "title:" + nt
		}

		if idx, ok := lookup(seen, idKey, titleKey); ok {
			absorb(&deduped[idx], r)
			removed++
			continue
		}

		idx := len(deduped)
		deduped = append(deduped, r)
		if idKey != "" {
			seen[idKey] = idx
		}
		if titleKey != "" {
			seen[titleKey] = idx
		}
	}
	return deduped, removed
}

func lookup(seen map[string]int, keys ...string) (int, bool) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if idx, ok := seen[k]; ok {
			return idx, true
		}
	}
	return 0, false
}

// absorb folds a duplicate into the kept record: core beats related, and
// empty metadata fields (DOI, venue, authors, abstract) are backfilled.
// Everything else, identity and statistics included, stays with the
// first-seen record.
func absorb(dst *types.PaperRecord, src types.PaperRecord) {
	if dst.Category == types.CategoryRelated && src.Category == types.CategoryCore {
		dst.Category = types.CategoryCore
		dst.SearchTerm = src.SearchTerm
		dst.Strategy = src.Strategy
	}
	if dst.DOI == "" && src.DOI != "" {
		dst.DOI = src.DOI
	}
	if dst.Venue == "" && src.Venue != "" {
		dst.Venue = src.Venue
	}
	if len(dst.Authors) == 0 && len(src.Authors) > 0 {
		dst.Authors = src.Authors
	}
	if dst.AbstractSample == "" && src.AbstractSample != "" {
		dst.AbstractSample = src.AbstractSample
	}
}

// NormalizeTitle returns a lowercased, punctuation-stripped,
// whitespace-collapsed version of the title used as the fuzzy dedup key.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
