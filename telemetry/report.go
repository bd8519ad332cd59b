// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"fmt"
	"strings"
)

// Level selects a report's verbosity tier (spec §4.8).
type Level int

const (
	LevelQuiet Level = iota
	LevelInfo
	LevelDebug
	LevelTrace
)

// ParseLevel maps the plugin option's logLevel string onto a Level,
// defaulting to LevelInfo for anything unrecognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet":
		return LevelQuiet
	case "debug":
		return LevelDebug
	case "trace":
		return LevelTrace
	default:
		return LevelInfo
	}
}

// ReportFormatter renders a CompilationSummary as text at a chosen Level.
// The zero value is ready to use.
type ReportFormatter struct{}

// Format renders summary at the requested level. QUIET produces no output
// at all; INFO is a single success line; DEBUG adds per-phase and aggregate
// breakdowns; TRACE additionally lists every generated fake.
func (ReportFormatter) Format(summary CompilationSummary, level Level) string {
	switch level {
	case LevelQuiet:
		return ""
	case LevelInfo:
		return ReportFormatter{}.SuccessMessage(summary, level) + "\n"
	case LevelDebug:
		return formatDebug(summary)
	case LevelTrace:
		return formatTrace(summary)
	default:
		return ReportFormatter{}.SuccessMessage(summary, level) + "\n"
	}
}

// SuccessMessage is the one-line INFO-tier summary, e.g.
// "✅ 121 fakes generated in 44ms". It is empty at QUIET level or when no
// fakes were produced.
func (ReportFormatter) SuccessMessage(summary CompilationSummary, level Level) string {
	if level == LevelQuiet || summary.Processed == 0 {
		return ""
	}
	return fmt.Sprintf("✅ %d fakes generated in %s", summary.Processed, summary.TotalDuration.Text)
}

// FormatReport is a package-level convenience equivalent to
// ReportFormatter{}.Format, for callers that don't need to hold a formatter
// value.
func FormatReport(summary CompilationSummary, level Level) string {
	return ReportFormatter{}.Format(summary, level)
}

func formatDebug(summary CompilationSummary) string {
	var b strings.Builder
	msg := ReportFormatter{}.SuccessMessage(summary, LevelDebug)
	b.WriteString(msg)
	b.WriteString("\n")
	fmt.Fprintf(&b, "  interfaces: %d  classes: %d  cached: %d\n",
		summary.InterfacesDiscovered, summary.ClassesDiscovered, summary.Cached)
	fmt.Fprintf(&b, "  output: %d files, %d lines, %d bytes\n",
		summary.TotalFiles, summary.TotalLines, summary.TotalBytes)

	if len(summary.Phases) > 0 {
		b.WriteString("  phases:\n")
		for _, p := range summary.Phases {
			fmt.Fprintf(&b, "    %s: %s\n", p.Name, p.FormattedDuration())
		}
	}
	return b.String()
}

func formatTrace(summary CompilationSummary) string {
	var b strings.Builder
	b.WriteString(formatDebug(summary))

	if len(summary.Phases) > 0 {
		b.WriteString("  phase detail:\n")
		for _, p := range summary.Phases {
			writePhaseTree(&b, p, 2)
		}
	}

	if len(summary.Fakes) > 0 {
		b.WriteString("  fakes:\n")
		for _, f := range summary.Fakes {
			fmt.Fprintf(&b, "    %s (%s): %d members, %d lines, %d bytes, %d imports",
				f.FakeName, f.GenericPattern, f.MemberCount, f.GeneratedLines, f.FileBytes, f.ImportCount)
			if f.UnresolvedCount > 0 {
				fmt.Fprintf(&b, ", %d unresolved", f.UnresolvedCount)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writePhaseTree(b *strings.Builder, p PhaseMetrics, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "%s: %s\n", p.Name, p.FormattedDuration())
	for _, child := range p.Children {
		writePhaseTree(b, child, depth+1)
	}
}
