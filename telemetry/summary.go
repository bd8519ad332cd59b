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
	"time"

	"github.com/faktgo/faktgo/generator"
)

// CompilationSummary aggregates one compilation run's discovery, generation,
// and cache-reuse counts alongside the per-phase and per-fake timing detail
// needed to render any of the four report tiers.
type CompilationSummary struct {
	TotalDuration FormattedDurationValue

	InterfacesDiscovered int
	ClassesDiscovered    int
	Processed            int
	Cached               int

	Phases []PhaseMetrics
	Fakes  []generator.FileMetrics

	TotalLines int
	TotalFiles int
	TotalBytes int64
}

// FormattedDurationValue pairs a raw duration with its rendered text so
// report formatters never recompute it.
type FormattedDurationValue struct {
	Nanos int64
	Text  string
}

// NewCompilationSummary folds a tracker's root phases and a set of per-fake
// generator metrics into a summary. totalNanos is the overall wall-clock
// duration of the compilation (normally the duration of the tracker's
// single outermost phase); interfacesDiscovered and classesDiscovered count
// every annotated declaration the scan found, including ones served from
// cache (cached) rather than freshly processed.
func NewCompilationSummary(tracker *PhaseTracker, fakes []generator.FileMetrics, totalNanos int64, interfacesDiscovered, classesDiscovered, cached int) CompilationSummary {
	s := CompilationSummary{
		TotalDuration: FormattedDurationValue{
			Nanos: totalNanos,
			Text:  FormatDuration(time.Duration(totalNanos)),
		},
		Phases:               tracker.Roots(),
		Fakes:                fakes,
		Processed:            len(fakes),
		Cached:               cached,
		InterfacesDiscovered: interfacesDiscovered,
		ClassesDiscovered:    classesDiscovered,
	}

	for _, f := range fakes {
		s.TotalLines += f.GeneratedLines
		s.TotalBytes += int64(f.FileBytes)
		s.TotalFiles++
	}
	return s
}

