// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global command variables ---
var (
	sourceDir       string
	outputDir       string
	cacheInputPath  string
	cacheOutputPath string
	fakeAnnotations []string
	logLevel        string
	projectConfig   string

	rootCmd = &cobra.Command{
		Use:   "faktctl",
		Short: "Generate Fakt test-double sources from annotated declaration fixtures",
		Long: `faktctl drives the fake-generation pipeline end to end: it reads
declaration fixtures from a directory (the same shape a host compiler plugin
would hand the validator), resolves the module-local metadata cache,
generates Fake<Subject> sources, and prints a tiered report.`,
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Validate declarations and generate fake sources",
		RunE:  runGenerate,
	}

	cacheCmd = &cobra.Command{
		Use:   "cache",
		Short: "Inspect the metadata cache",
	}

	cacheInspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Print a summary of a metadata cache file",
		RunE:  runCacheInspect,
	}

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Re-run generation and print only the report, at any level",
		RunE:  runReport,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceDir, "source-dir", "fixtures", "directory of RawDeclaration JSON fixtures")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "build/generated/fakt", "directory fake sources are written under")
	rootCmd.PersistentFlags().StringVar(&cacheInputPath, "cache-input", "", "metadata cache file to consume (optional)")
	rootCmd.PersistentFlags().StringVar(&cacheOutputPath, "cache-output", "", "metadata cache file to produce (optional)")
	rootCmd.PersistentFlags().StringSliceVar(&fakeAnnotations, "fake-annotation", nil, "recognized annotation FQN (repeatable); defaults to the built-in annotation")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "QUIET, INFO, DEBUG, or TRACE (defaults to INFO, or faktgo.yaml)")
	rootCmd.PersistentFlags().StringVar(&projectConfig, "config", "faktgo.yaml", "optional project-local config file")

	cacheCmd.AddCommand(cacheInspectCmd)
	rootCmd.AddCommand(generateCmd, cacheCmd, reportCmd)
}
