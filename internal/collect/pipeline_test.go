// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/hubmetrics/internal/report"
	"github.com/pdiddy/hubmetrics/pkg/types"
)

// TestPipelineDeterministic runs collection twice against a fixed mock API
// and verifies the exported CSV is byte-identical across runs.
func TestPipelineDeterministic(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")
		switch {
		case strings.Contains(filter, "energy hub"):
			fmt.Fprint(w, pageJSON(3,
				workJSON("https://openalex.org/W3", "Gamma", 2021, 9, true),
				workJSON("https://openalex.org/W1", "Alpha", 2020, 4, false),
				workJSON("https://openalex.org/W2", "Beta", 2021, 2, true)))
		default:
			fmt.Fprint(w, pageJSON(2,
				workJSON("https://openalex.org/W4", "Delta", 2020, 1, false),
				workJSON("https://openalex.org/W9", "Alpha!", 2020, 4, false))) // title dup of W1
		}
	}))
	withTestServer(t, ts)

	cfg := testConfig()
	terms := []types.SearchTerm{
		{Text: "energy hub", Category: types.CategoryCore, Strategy: types.StrategyTitle},
		{Text: "multi-energy system", Category: types.CategoryRelated, Strategy: types.StrategyTitle},
	}

	export := func(path string) {
		t.Helper()
		out, err := Run(context.Background(), NewClient(cfg), terms, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if len(out.Records) != 4 {
			t.Fatalf("len(Records) = %d, want 4 (title dup removed)", len(out.Records))
		}
		if err := report.WritePapersCSV(path, out.Records, cfg.YearStart, cfg.YearEnd); err != nil {
			t.Fatalf("WritePapersCSV() error: %v", err)
		}
	}

	dir := t.TempDir()
	p1 := filepath.Join(dir, "run1.csv")
	p2 := filepath.Join(dir, "run2.csv")
	export(p1)
	export(p2)

	b1, err := os.ReadFile(p1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := os.ReadFile(p2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b1, b2) {
		t.Error("repeated pipeline runs produced different CSV bytes")
	}
}
