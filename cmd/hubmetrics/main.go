// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hubmetrics CLI.
//
// hubmetrics collects energy-hub publication metadata from OpenAlex and
// writes CSV tables, chart images, and a plain-text bibliometric report.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hubmetrics/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the hubmetrics CLI. Run without a
// subcommand it presents the interactive mode menu.
var rootCmd = &cobra.Command{
	Use:   "hubmetrics",
	Short: "Energy hub bibliometrics from OpenAlex",
	Long: `hubmetrics queries the OpenAlex bibliographic database for energy-hub
research, deduplicates and filters the results, and exports CSV tables,
summary charts, and a plain-text report.

Each mode is a subcommand: analyze (full pipeline), report (summary report),
collect (basic collection), and ping (connectivity test). Running hubmetrics
without a subcommand opens an interactive menu over the same four modes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./hubmetrics.yaml or ~/.config/hubmetrics/config.yaml)")
	rootCmd.PersistentFlags().String("email", "", "contact email sent as the OpenAlex mailto parameter")
	rootCmd.PersistentFlags().String("output", "", "directory for exported files (default: output)")
	rootCmd.PersistentFlags().String("terms", "", "YAML file overriding the built-in search-term set")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hubmetrics")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hubmetrics"))
		}
	}

	viper.SetEnvPrefix("HUBMETRICS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
