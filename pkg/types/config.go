// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "hubmetrics/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CollectConfig holds settings for the collection stage.
type CollectConfig struct {
	HTTPConfig `yaml:",inline"`

	// Email is sent as the mailto parameter for polite pool access.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// YearStart and YearEnd bound the publication-year inclusion window.
	// Records outside [YearStart, YearEnd] never reach the exports.
	YearStart int `json:"year_start" yaml:"year_start"`
	YearEnd   int `json:"year_end" yaml:"year_end"`

	// PerPage is the page size requested from the API (max 200).
	PerPage int `json:"per_page" yaml:"per_page"`

	// MaxPages caps pagination per query as a safety limit (default 50).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// RequestsPerSecond throttles API calls (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries bounds retry attempts on rate-limit responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// TermsFile optionally overrides the built-in search-term set with a
	// YAML file.
	TermsFile string `json:"terms_file,omitempty" yaml:"terms_file,omitempty"`

	// OutputDir is where CSVs, charts, and reports are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Default collection settings.
const (
	DefaultYearStart         = 2020
	DefaultYearEnd           = 2025
	DefaultPerPage           = 200
	DefaultMaxPages          = 50
	DefaultRequestsPerSecond = 1.0
	DefaultMaxRetries        = 5
	DefaultTimeout           = 30 * time.Second
	DefaultUserAgent         = "hubmetrics/0.1"
)

// WithDefaults fills zero-valued fields with the package defaults.
func (c CollectConfig) WithDefaults() CollectConfig {
	if c.YearStart == 0 {
		c.YearStart = DefaultYearStart
	}
	if c.YearEnd == 0 {
		c.YearEnd = DefaultYearEnd
	}
	if c.PerPage <= 0 || c.PerPage > 200 {
		c.PerPage = DefaultPerPage
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	return c
}
