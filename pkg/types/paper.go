// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the hubmetrics pipeline.
package types

// Category classifies a search term by how directly it targets the topic.
type Category string

const (
	// CategoryCore marks terms that name the topic itself ("energy hub").
	CategoryCore Category = "core"

	// CategoryRelated marks adjacent terms ("multi-energy system").
	CategoryRelated Category = "related"
)

// Strategy selects which OpenAlex field a term is searched against.
type Strategy string

const (
	// StrategyTitle searches the title field for precision.
	StrategyTitle Strategy = "title"

	// StrategyAbstract searches the abstract field for broader coverage.
	StrategyAbstract Strategy = "abstract"
)

// SearchTerm is one query against the OpenAlex Works endpoint.
type SearchTerm struct {
	// Text is the literal search string sent to the API.
	Text string `json:"text" yaml:"text"`

	// Category tags every record the term produces as core or related.
	Category Category `json:"category" yaml:"category"`

	// Strategy selects the search field (title or abstract).
	Strategy Strategy `json:"strategy" yaml:"strategy"`
}

// Author holds the author fields kept from an OpenAlex authorship.
type Author struct {
	Name  string `json:"name" yaml:"name"`
	ORCID string `json:"orcid,omitempty" yaml:"orcid,omitempty"`
}

// PaperRecord is the flat row shape one OpenAlex work is normalized into.
// ID is globally unique within a deduplicated result set; two records
// sharing a normalized title are treated as the same paper even under
// distinct IDs.
type PaperRecord struct {
	// ID is the OpenAlex work identifier (https://openalex.org/W...).
	ID string `json:"id" yaml:"id"`

	// Title is the work's display name.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// DOI is the work's DOI URL when OpenAlex has one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Venue is the display name of the primary location's source.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Authors lists up to the first ten authors in source order.
	Authors []Author `json:"authors,omitempty" yaml:"authors,omitempty"`

	// CitationCount is OpenAlex's cited_by_count.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// OpenAccess reports whether the full text is freely available.
	OpenAccess bool `json:"open_access" yaml:"open_access"`

	// AbstractSample is the first words of the reconstructed abstract.
	AbstractSample string `json:"abstract_sample,omitempty" yaml:"abstract_sample,omitempty"`

	// SearchTerm is the term text that produced this record.
	SearchTerm string `json:"search_term" yaml:"search_term"`

	// Category is the category of the producing term.
	Category Category `json:"category" yaml:"category"`

	// Strategy is the search strategy of the producing term.
	Strategy Strategy `json:"strategy" yaml:"strategy"`
}

// AuthorNames joins author names with "; " for tabular output, keeping at
// most max names. A max of 0 keeps all of them.
func (p PaperRecord) AuthorNames(max int) string {
	authors := p.Authors
	if max > 0 && len(authors) > max {
		authors = authors[:max]
	}
	s := ""
	for i, a := range authors {
		if i > 0 {
			s += "; "
		}
		s += a.Name
	}
	return s
}
