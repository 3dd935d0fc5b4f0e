// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/hubmetrics/internal/httputil"
	"github.com/pdiddy/hubmetrics/pkg/types"
)

func init() {
	// Keep rate-limit backoff out of test runtime.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

// testConfig returns a small, fast configuration for tests.
func testConfig() types.CollectConfig {
	return types.CollectConfig{
		YearStart:         2020,
		YearEnd:           2025,
		PerPage:           2,
		MaxPages:          10,
		RequestsPerSecond: 10000,
		MaxRetries:        2,
	}.WithDefaults()
}

// --- reconstructAbstract ---

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{"nil map", nil, ""},
		{"empty map", map[string][]int{}, ""},
		{"single word", map[string][]int{"hello": {0}}, "hello"},
		{
			name: "multi-word ordered",
			index: map[string][]int{
				"hubs":     {1},
				"Energy":   {0},
				"couple":   {2},
				"carriers": {3},
			},
			want: "Energy hubs couple carriers",
		},
		{
			name: "repeated word",
			index: map[string][]int{
				"the":  {0, 4},
				"hub":  {1},
				"is":   {2},
				"in":   {3},
				"loop": {5},
			},
			want: "the hub is in the loop",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconstructAbstract(tt.index)
			if got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSampleWords(t *testing.T) {
	if got := sampleWords("a b c d", 2); got != "a b" {
		t.Errorf("sampleWords() = %q, want %q", got, "a b")
	}
	if got := sampleWords("a b", 50); got != "a b" {
		t.Errorf("sampleWords() = %q, want %q", got, "a b")
	}
	if got := sampleWords("", 50); got != "" {
		t.Errorf("sampleWords() = %q, want empty", got)
	}
}

// --- normalizeWork ---

func TestNormalizeWork(t *testing.T) {
	term := types.SearchTerm{Text: "energy hub", Category: types.CategoryCore, Strategy: types.StrategyTitle}

	t.Run("complete work", func(t *testing.T) {
		work := openAlexWork{
			ID:              "https://openalex.org/W1",
			DisplayName:     "Energy Hub Optimization",
			DOI:             "https://doi.org/10.1/abc",
			PublicationYear: 2022,
			CitedByCount:    17,
			OpenAccess:      openAlexOpenAccess{IsOA: true},
			PrimaryLocation: &openAlexLocation{Source: &openAlexSource{DisplayName: "Applied Energy"}},
			Authorships: []openAlexAuthorship{
				{Author: openAlexAuthor{DisplayName: "A. Author", ORCID: "https://orcid.org/0000-0001"}},
				{Author: openAlexAuthor{DisplayName: ""}},
				{Author: openAlexAuthor{DisplayName: "B. Author"}},
			},
			AbstractInvertedIndex: map[string][]int{"Hubs": {0}, "rule": {1}},
		}

		rec, ok := normalizeWork(work, term)
		if !ok {
			t.Fatal("normalizeWork() dropped a complete work")
		}
		if rec.ID != work.ID || rec.Title != work.DisplayName || rec.Year != 2022 {
			t.Errorf("identity fields wrong: %+v", rec)
		}
		if rec.Venue != "Applied Energy" {
			t.Errorf("Venue = %q", rec.Venue)
		}
		if len(rec.Authors) != 2 || rec.Authors[0].Name != "A. Author" {
			t.Errorf("Authors = %+v", rec.Authors)
		}
		if rec.AbstractSample != "Hubs rule" {
			t.Errorf("AbstractSample = %q", rec.AbstractSample)
		}
		if !rec.OpenAccess || rec.CitationCount != 17 {
			t.Errorf("stats wrong: %+v", rec)
		}
		if rec.SearchTerm != "energy hub" || rec.Category != types.CategoryCore || rec.Strategy != types.StrategyTitle {
			t.Errorf("provenance wrong: %+v", rec)
		}
	})

	t.Run("missing ID dropped", func(t *testing.T) {
		if _, ok := normalizeWork(openAlexWork{PublicationYear: 2022}, term); ok {
			t.Error("work without ID should be dropped")
		}
	})

	t.Run("missing year dropped", func(t *testing.T) {
		if _, ok := normalizeWork(openAlexWork{ID: "https://openalex.org/W1"}, term); ok {
			t.Error("work without year should be dropped")
		}
	})

	t.Run("authors capped", func(t *testing.T) {
		work := openAlexWork{ID: "https://openalex.org/W1", PublicationYear: 2021}
		for i := 0; i < 15; i++ {
			work.Authorships = append(work.Authorships, openAlexAuthorship{
				Author: openAlexAuthor{DisplayName: fmt.Sprintf("Author %d", i)},
			})
		}
		rec, ok := normalizeWork(work, term)
		if !ok {
			t.Fatal("work dropped")
		}
		if len(rec.Authors) != maxAuthors {
			t.Errorf("len(Authors) = %d, want %d", len(rec.Authors), maxAuthors)
		}
	})
}

// --- pageParams ---

func TestPageParams(t *testing.T) {
	cfg := testConfig()
	cfg.Email = "user@example.com"
	client := NewClient(cfg)

	t.Run("title strategy", func(t *testing.T) {
		params := client.pageParams(types.SearchTerm{Text: "energy hub", Strategy: types.StrategyTitle}, 3)
		if got := params.Get("filter"); got != "publication_year:2020-2025,title.search:energy hub" {
			t.Errorf("filter = %q", got)
		}
		if got := params.Get("sort"); got != "publication_date:desc" {
			t.Errorf("sort = %q", got)
		}
		if got := params.Get("page"); got != "3" {
			t.Errorf("page = %q", got)
		}
		if got := params.Get("mailto"); got != "user@example.com" {
			t.Errorf("mailto = %q", got)
		}
	})

	t.Run("abstract strategy", func(t *testing.T) {
		params := client.pageParams(types.SearchTerm{Text: "energy hub", Strategy: types.StrategyAbstract}, 1)
		if got := params.Get("filter"); got != "publication_year:2020-2025,abstract.search:energy hub" {
			t.Errorf("filter = %q", got)
		}
		if got := params.Get("sort"); got != "cited_by_count:desc" {
			t.Errorf("sort = %q", got)
		}
	})
}

// --- mock OpenAlex server ---

// workJSON renders one OpenAlex work result.
func workJSON(id, title string, year, citations int, oa bool) string {
	return fmt.Sprintf(`{
		"id": %q,
		"display_name": %q,
		"publication_year": %d,
		"cited_by_count": %d,
		"open_access": {"is_oa": %t},
		"authorships": [{"author": {"display_name": "Test Author"}}]
	}`, id, title, year, citations, oa)
}

func pageJSON(total int, works ...string) string {
	return fmt.Sprintf(`{"meta": {"count": %d}, "results": [%s]}`, total, strings.Join(works, ","))
}

// pagedServer serves pages[page-1] keyed on the page query parameter, with
// the total count reported in meta.
func pagedServer(t *testing.T, pages []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			t.Errorf("bad page parameter %q", r.URL.Query().Get("page"))
			http.Error(w, "bad page", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if page > len(pages) {
			fmt.Fprint(w, pageJSON(0))
			return
		}
		fmt.Fprint(w, pages[page-1])
	}))
}

func withTestServer(t *testing.T, ts *httptest.Server) {
	t.Helper()
	prev := openAlexWorksBase
	openAlexWorksBase = ts.URL
	t.Cleanup(func() {
		openAlexWorksBase = prev
		ts.Close()
	})
}

// --- FetchAll ---

func TestFetchAllPaginates(t *testing.T) {
	// Three pages of two records each, per-page 2, total 5.
	ts := pagedServer(t, []string{
		pageJSON(5, workJSON("https://openalex.org/W1", "Paper 1", 2020, 1, true), workJSON("https://openalex.org/W2", "Paper 2", 2021, 2, false)),
		pageJSON(5, workJSON("https://openalex.org/W3", "Paper 3", 2022, 3, true), workJSON("https://openalex.org/W4", "Paper 4", 2023, 4, false)),
		pageJSON(5, workJSON("https://openalex.org/W5", "Paper 5", 2024, 5, true)),
	})
	withTestServer(t, ts)

	client := NewClient(testConfig())
	term := types.SearchTerm{Text: "energy hub", Category: types.CategoryCore, Strategy: types.StrategyTitle}

	records, err := client.FetchAll(context.Background(), term, io.Discard)
	if err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("len(records) = %d, want 5", len(records))
	}
	if records[4].ID != "https://openalex.org/W5" {
		t.Errorf("last record = %q", records[4].ID)
	}
}

func TestFetchAllStopsAtEmptyPage(t *testing.T) {
	// meta.count lies high but page 2 is empty; pagination must stop.
	ts := pagedServer(t, []string{
		pageJSON(100, workJSON("https://openalex.org/W1", "Paper 1", 2020, 1, true), workJSON("https://openalex.org/W2", "Paper 2", 2021, 2, false)),
		pageJSON(100),
	})
	withTestServer(t, ts)

	client := NewClient(testConfig())
	term := types.SearchTerm{Text: "energy hub", Category: types.CategoryCore, Strategy: types.StrategyTitle}

	records, err := client.FetchAll(context.Background(), term, io.Discard)
	if err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}
}

func TestFetchAllHonorsPageCap(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		// Always report more results available.
		fmt.Fprint(w, pageJSON(1000000, workJSON("https://openalex.org/W1", "Paper", 2020, 0, false)))
	}))
	withTestServer(t, ts)

	cfg := testConfig()
	cfg.MaxPages = 3
	client := NewClient(cfg)
	term := types.SearchTerm{Text: "energy hub", Category: types.CategoryCore, Strategy: types.StrategyTitle}

	_, err := client.FetchAll(context.Background(), term, io.Discard)
	if err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server calls = %d, want 3 (safety cap)", got)
	}
}

func TestFetchAllRetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, pageJSON(1, workJSON("https://openalex.org/W1", "Paper", 2020, 0, false)))
	}))
	withTestServer(t, ts)

	client := NewClient(testConfig())
	term := types.SearchTerm{Text: "energy hub", Category: types.CategoryCore, Strategy: types.StrategyTitle}

	records, err := client.FetchAll(context.Background(), term, io.Discard)
	if err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1", len(records))
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server calls = %d, want 2", got)
	}
}

func TestFetchAllServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	withTestServer(t, ts)

	client := NewClient(testConfig())
	term := types.SearchTerm{Text: "energy hub", Category: types.CategoryCore, Strategy: types.StrategyTitle}

	_, err := client.FetchAll(context.Background(), term, io.Discard)
	if err == nil {
		t.Fatal("FetchAll() expected error on HTTP 500")
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("error = %v, want HTTP 500 mention", err)
	}
}

func TestFetchAllEmptyTerm(t *testing.T) {
	client := NewClient(testConfig())
	if _, err := client.FetchAll(context.Background(), types.SearchTerm{Text: "  "}, io.Discard); err == nil {
		t.Fatal("FetchAll() expected error for empty term")
	}
}

func TestFetchAllDropsMalformedWorks(t *testing.T) {
	ts := pagedServer(t, []string{
		pageJSON(2,
			workJSON("https://openalex.org/W1", "Good", 2021, 0, false),
			`{"id": "", "display_name": "No ID", "publication_year": 2021}`),
	})
	withTestServer(t, ts)

	client := NewClient(testConfig())
	term := types.SearchTerm{Text: "energy hub", Category: types.CategoryCore, Strategy: types.StrategyTitle}

	records, err := client.FetchAll(context.Background(), term, io.Discard)
	if err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Good" {
		t.Errorf("records = %+v, want only the well-formed work", records)
	}
}
