// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/hubmetrics/internal/httputil"
	"github.com/pdiddy/hubmetrics/pkg/types"
)

// openAlexWorksBase is the OpenAlex Works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexWorksBase = "https://api.openalex.org/works"

const (
	// abstractSampleWords caps the reconstructed abstract kept per record.
	abstractSampleWords = 50

	// maxAuthors caps the authors kept per record.
	maxAuthors = 10
)

// Client fetches paged results from the OpenAlex Works endpoint.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cfg        types.CollectConfig
}

// NewClient builds a rate-limited OpenAlex client from cfg. Zero-valued
// config fields fall back to the package defaults.
func NewClient(cfg types.CollectConfig) *Client {
	cfg = cfg.WithDefaults()
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cfg:        cfg,
	}
}

// Config returns the effective configuration after defaulting.
func (c *Client) Config() types.CollectConfig { return c.cfg }

// FetchAll retrieves every result page for one search term, strictly in
// page order: page N+1 is requested only after page N succeeds. Pagination
// stops when the API returns an empty page, the reported total is
// exhausted, or the MaxPages safety cap is reached. Raw works are
// normalized into PaperRecords; works missing an identifier or publication
// year are dropped.
func (c *Client) FetchAll(ctx context.Context, term types.SearchTerm, w io.Writer) ([]types.PaperRecord, error) {
	if strings.TrimSpace(term.Text) == "" {
		return nil, fmt.Errorf("empty search term")
	}

	var records []types.PaperRecord
	for page := 1; page <= c.cfg.MaxPages; page++ {
		works, total, err := c.fetchPage(ctx, term, page, w)
		if err != nil {
			return records, err
		}
		if len(works) == 0 {
			break
		}

		for _, work := range works {
			if rec, ok := normalizeWork(work, term); ok {
				records = append(records, rec)
			}
		}

		if page*c.cfg.PerPage >= total {
			break
		}
	}
	return records, nil
}

// fetchPage requests a single result page, retrying on rate limits.
func (c *Client) fetchPage(ctx context.Context, term types.SearchTerm, page int, w io.Writer) ([]openAlexWork, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	reqURL := openAlexWorksBase + "?" + c.pageParams(term, page).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries, w)
	if err != nil {
		return nil, 0, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var pageResp openAlexPage
	if err := json.NewDecoder(resp.Body).Decode(&pageResp); err != nil {
		return nil, 0, fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return pageResp.Results, pageResp.Meta.Count, nil
}

// pageParams builds the query parameters for one page of one term.
func (c *Client) pageParams(term types.SearchTerm, page int) url.Values {
	searchField := "title.search"
	sortOrder := "publication_date:desc"
	if term.Strategy == types.StrategyAbstract {
		searchField = "abstract.search"
		// Abstract hits are broad; most-cited first keeps the useful ones
		// inside the page cap.
		sortOrder = "cited_by_count:desc"
	}

	filters := []string{
		fmt.Sprintf("publication_year:%d-%d", c.cfg.YearStart, c.cfg.YearEnd),
		searchField + ":" + term.Text,
	}

	params := url.Values{
		"filter":   {strings.Join(filters, ",")},
		"per-page": {fmt.Sprintf("%d", c.cfg.PerPage)},
		"page":     {fmt.Sprintf("%d", page)},
		"sort":     {sortOrder},
	}
	if c.cfg.Email != "" {
		params.Set("mailto", c.cfg.Email)
	}
	return params
}

// normalizeWork maps one raw OpenAlex work into the flat record shape. It
// reports ok=false for malformed works (no identifier or no year), which
// the caller drops without aborting the run.
func normalizeWork(work openAlexWork, term types.SearchTerm) (types.PaperRecord, bool) {
	if work.ID == "" || work.PublicationYear == 0 {
		return types.PaperRecord{}, false
	}

	rec := types.PaperRecord{
		ID:            work.ID,
		Title:         work.DisplayName,
		Year:          work.PublicationYear,
		DOI:           work.DOI,
		CitationCount: work.CitedByCount,
		OpenAccess:    work.OpenAccess.IsOA,
		SearchTerm:    term.Text,
		Category:      term.Category,
		Strategy:      term.Strategy,
	}

	if work.PrimaryLocation != nil && work.PrimaryLocation.Source != nil {
		rec.Venue = work.PrimaryLocation.Source.DisplayName
	}

	for _, authorship := range work.Authorships {
		if authorship.Author.DisplayName == "" {
			continue
		}
		rec.Authors = append(rec.Authors, types.Author{
			Name:  authorship.Author.DisplayName,
			ORCID: authorship.Author.ORCID,
		})
		if len(rec.Authors) == maxAuthors {
			break
		}
	}

	rec.AbstractSample = sampleWords(reconstructAbstract(work.AbstractInvertedIndex), abstractSampleWords)
	return rec, true
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to the positions where it
// appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// sampleWords keeps the first n whitespace-separated words of s.
func sampleWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

// OpenAlex API JSON structures.
type openAlexPage struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	DisplayName           string               `json:"display_name"`
	DOI                   string               `json:"doi"`
	PublicationYear       int                  `json:"publication_year"`
	CitedByCount          int                  `json:"cited_by_count"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	OpenAccess            openAlexOpenAccess   `json:"open_access"`
	PrimaryLocation       *openAlexLocation    `json:"primary_location"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	ORCID       string `json:"orcid"`
}

type openAlexOpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
}

type openAlexLocation struct {
	Source *openAlexSource `json:"source"`
}

type openAlexSource struct {
	DisplayName string `json:"display_name"`
}
