// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"path/filepath"
	"testing"

	"github.com/pdiddy/hubmetrics/pkg/types"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.yaml")

	cfg := testConfig()
	cfg.Email = "user@example.com"
	out := Output{
		Records: []types.PaperRecord{
			rec("https://openalex.org/W1", "Paper A", types.CategoryCore),
		},
		DupsRemoved: 3,
		PerTerm: []TermCount{
			{Term: types.SearchTerm{Text: "energy hub", Category: types.CategoryCore, Strategy: types.StrategyTitle}, Fetched: 4},
		},
		QueryErrors: []string{"energy nexus (title): HTTP 500"},
	}

	if err := WriteSnapshot(path, cfg, out); err != nil {
		t.Fatalf("WriteSnapshot() error: %v", err)
	}

	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot() error: %v", err)
	}

	if snap.Config.YearStart != 2020 || snap.Config.YearEnd != 2025 {
		t.Errorf("Config window = %d-%d", snap.Config.YearStart, snap.Config.YearEnd)
	}
	if snap.Config.Email != "user@example.com" {
		t.Errorf("Email = %q", snap.Config.Email)
	}
	if snap.Summary.UniquePapers != 1 || snap.Summary.DuplicatesRemoved != 3 {
		t.Errorf("Summary = %+v", snap.Summary)
	}
	if len(snap.PerTerm) != 1 || snap.PerTerm[0].Fetched != 4 {
		t.Errorf("PerTerm = %+v", snap.PerTerm)
	}
	if len(snap.Summary.QueryErrors) != 1 {
		t.Errorf("QueryErrors = %v", snap.Summary.QueryErrors)
	}
	if snap.Summary.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestReadSnapshotMissing(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}
