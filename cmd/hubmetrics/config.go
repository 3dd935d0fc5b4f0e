// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hubmetrics/internal/secrets"
	"github.com/pdiddy/hubmetrics/pkg/types"
)

// collectConfig assembles the collection configuration. Precedence for
// each setting: command-line flag, then config file / environment, then
// the .secrets/ directory (email only), then package defaults.
func collectConfig(cmd *cobra.Command) types.CollectConfig {
	cfg := types.CollectConfig{
		Email:             viper.GetString("email"),
		YearStart:         viper.GetInt("year_start"),
		YearEnd:           viper.GetInt("year_end"),
		PerPage:           viper.GetInt("per_page"),
		MaxPages:          viper.GetInt("max_pages"),
		RequestsPerSecond: viper.GetFloat64("requests_per_second"),
		MaxRetries:        viper.GetInt("max_retries"),
		TermsFile:         viper.GetString("terms_file"),
		OutputDir:         viper.GetString("output_dir"),
	}
	cfg.Timeout = viper.GetDuration("timeout")
	cfg.UserAgent = viper.GetString("user_agent")

	if v, _ := cmd.Flags().GetString("email"); v != "" {
		cfg.Email = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("terms"); v != "" {
		cfg.TermsFile = v
	}

	if cfg.Email == "" {
		cfg.Email = secrets.OpenAlexEmail(loadedSecrets, "")
	}

	return cfg.WithDefaults()
}
