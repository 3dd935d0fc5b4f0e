// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hubmetrics/pkg/types"
)

// Snapshot is the on-disk run manifest written next to the exports, so a
// run is self-describing: which terms ran, with what window, and what the
// collection produced.
type Snapshot struct {
	Config  SnapshotConfig  `yaml:"config"`
	PerTerm []TermCount     `yaml:"per_term"`
	Summary SnapshotSummary `yaml:"summary"`
}

// SnapshotConfig stores the collection parameters in a serializable form.
type SnapshotConfig struct {
	YearStart int    `yaml:"year_start"`
	YearEnd   int    `yaml:"year_end"`
	PerPage   int    `yaml:"per_page"`
	MaxPages  int    `yaml:"max_pages"`
	Email     string `yaml:"email,omitempty"`
}

// SnapshotSummary stores result statistics and a timestamp.
type SnapshotSummary struct {
	UniquePapers      int       `yaml:"unique_papers"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	QueryErrors       []string  `yaml:"query_errors,omitempty"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// WriteSnapshot saves the run manifest to a YAML file.
func WriteSnapshot(path string, cfg types.CollectConfig, out Output) error {
	snap := Snapshot{
		Config: SnapshotConfig{
			YearStart: cfg.YearStart,
			YearEnd:   cfg.YearEnd,
			PerPage:   cfg.PerPage,
			MaxPages:  cfg.MaxPages,
			Email:     cfg.Email,
		},
		PerTerm: out.PerTerm,
		Summary: SnapshotSummary{
			UniquePapers:      len(out.Records),
			DuplicatesRemoved: out.DupsRemoved,
			QueryErrors:       out.QueryErrors,
			Timestamp:         time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a previously written run manifest.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return &snap, nil
}
