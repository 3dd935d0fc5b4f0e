// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// defaultEmail is used when the user provides no contact address.
const defaultEmail = "researcher@example.com"

const menuText = `hubmetrics - Energy Hub Research Collector

Choose analysis option:
1. Complete analysis (recommended) - all CSV files + charts
2. Research summary report - formatted for academic use
3. Basic collection - simple CSV + chart
4. Connectivity test

Enter choice (1-4): `

// runMenu drives the interactive mode selection on stdin.
func runMenu(cmd *cobra.Command) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print(menuText)
	choice, err := readLine(reader)
	if err != nil {
		return err
	}
	mode, ok := parseMenuChoice(choice)
	if !ok {
		fmt.Fprintf(os.Stderr, "Invalid choice %q, running complete analysis.\n", choice)
		mode = modeAnalyze
	}

	cfg := collectConfig(cmd)
	if cfg.Email == "" && mode != modePing {
		fmt.Print("Enter your email for faster API responses: ")
		email, err := readLine(reader)
		if err != nil {
			return err
		}
		if email == "" {
			email = defaultEmail
		}
		cfg.Email = email
	}

	switch mode {
	case modeAnalyze:
		return runAnalyzePipeline(cfg)
	case modeReport:
		return runReportPipeline(cfg)
	case modeCollect:
		return runCollectPipeline(cfg)
	case modePing:
		return runPing(cfg, "energy hub")
	}
	return nil
}

type menuMode int

const (
	modeAnalyze menuMode = iota + 1
	modeReport
	modeCollect
	modePing
)

// parseMenuChoice maps a menu input line to a mode.
func parseMenuChoice(s string) (menuMode, bool) {
	switch strings.TrimSpace(s) {
	case "1":
		return modeAnalyze, true
	case "2":
		return modeReport, true
	case "3":
		return modeCollect, true
	case "4":
		return modePing, true
	}
	return 0, false
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
