// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hubmetrics/pkg/types"
)

// DefaultTerms is the built-in energy-hub search-term set. Title searches
// carry the category split; a few broad terms are additionally searched
// against abstracts for coverage.
func DefaultTerms() []types.SearchTerm {
	core := []string{
		"energy hub",
		"energy hubs",
		"energy hub optimization",
		"energy hub modeling",
	}
	related := []string{
		"multi-energy system",
		"integrated energy system",
		"multi-carrier energy",
		"energy system integration",
		"multi-energy hub",
		"energy nexus",
	}
	abstractTerms := []string{
		"energy hub",
		"multi-energy system",
		"integrated energy system",
	}

	var terms []types.SearchTerm
	for _, t := range core {
		terms = append(terms, types.SearchTerm{Text: t, Category: types.CategoryCore, Strategy: types.StrategyTitle})
	}
	for _, t := range related {
		terms = append(terms, types.SearchTerm{Text: t, Category: types.CategoryRelated, Strategy: types.StrategyTitle})
	}
	for _, t := range abstractTerms {
		terms = append(terms, types.SearchTerm{Text: t, Category: types.CategoryRelated, Strategy: types.StrategyAbstract})
	}
	return terms
}

// termFile is the on-disk representation of a search-term set.
type termFile struct {
	Terms []types.SearchTerm `yaml:"terms"`
}

// LoadTermFile reads a YAML term set from path. Terms default to category
// "related" and strategy "title" when unset; unknown values are rejected.
func LoadTermFile(path string) ([]types.SearchTerm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading term file: %w", err)
	}

	var tf termFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing term file %s: %w", path, err)
	}
	if len(tf.Terms) == 0 {
		return nil, fmt.Errorf("term file %s contains no terms", path)
	}

	for i := range tf.Terms {
		t := &tf.Terms[i]
		if t.Text == "" {
			return nil, fmt.Errorf("term file %s: term %d has no text", path, i+1)
		}
		switch t.Category {
		case "":
			t.Category = types.CategoryRelated
		case types.CategoryCore, types.CategoryRelated:
		default:
			return nil, fmt.Errorf("term file %s: term %q has unknown category %q", path, t.Text, t.Category)
		}
		switch t.Strategy {
		case "":
			t.Strategy = types.StrategyTitle
		case types.StrategyTitle, types.StrategyAbstract:
		default:
			return nil, fmt.Errorf("term file %s: term %q has unknown strategy %q", path, t.Text, t.Strategy)
		}
	}
	return tf.Terms, nil
}

// Terms returns the term set for cfg: the term file when configured,
// otherwise the built-in default set.
func Terms(cfg types.CollectConfig) ([]types.SearchTerm, error) {
	if cfg.TermsFile != "" {
		return LoadTermFile(cfg.TermsFile)
	}
	return DefaultTerms(), nil
}
