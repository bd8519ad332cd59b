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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faktgo/faktgo/telemetry"
)

var reportLevel string

func init() {
	reportCmd.Flags().StringVar(&reportLevel, "level", "trace", "report verbosity: quiet, info, debug, or trace")
}

// runReport runs the same pipeline as generate but always prints at the
// level requested on the command line, independent of --log-level (which
// still governs the underlying logger).
func runReport(cmd *cobra.Command, args []string) error {
	opts := buildOptions()
	result, err := runPipeline(cmd.Context(), opts)
	if err != nil {
		return err
	}

	fmt.Print(telemetry.FormatReport(result.summary, telemetry.ParseLevel(reportLevel)))
	return nil
}
