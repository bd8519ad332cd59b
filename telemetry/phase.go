// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry times compilation phases, aggregates per-fake metrics,
// and formats tiered human-readable reports (spec §4.8).
//
// Grounded on services/code_buddy/eval/benchmark/runner.go's timing and
// duration-formatting conventions and services/code_buddy/telemetry/logging.go's
// trace/span-correlated logger helpers; phase IDs use github.com/google/uuid
// the way the teacher's orchestrator assigns run IDs.
package telemetry

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// PhaseMetrics is a completed phase's timing record.
type PhaseMetrics struct {
	ID       string
	Name     string
	ParentID string
	Start    time.Time
	End      time.Time
	Duration time.Duration
	Children []PhaseMetrics
}

// FormattedDuration renders Duration the way the report formatter does:
// milliseconds below one second, seconds (two decimals) at or above it.
func (m PhaseMetrics) FormattedDuration() string { return FormatDuration(m.Duration) }

// FormatDuration renders d as "<n>ms" below one second or "<n.nn>s" at or
// above it, matching spec §4.8's human-readable duration requirement.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

type openPhase struct {
	id       string
	name     string
	parentID string
	start    time.Time
	children []string
}

// PhaseTracker records nested phase timings for a single compilation.
// Thread safety: operations are serialized per-compilation with an internal
// mutex (spec §4.8), matching the teacher's per-run benchmark.Runner state.
type PhaseTracker struct {
	mu        sync.Mutex
	open      map[string]*openPhase
	completed map[string]PhaseMetrics
	roots     []string
	active    atomic.Int64
}

// NewPhaseTracker returns an empty tracker.
func NewPhaseTracker() *PhaseTracker {
	return &PhaseTracker{
		open:      make(map[string]*openPhase),
		completed: make(map[string]PhaseMetrics),
	}
}

// StartPhase begins a phase named name, nested under parentID (empty for a
// root phase), and returns its ID.
func (t *PhaseTracker) StartPhase(name string, parentID string) string {
	id := uuid.NewString()
	t.mu.Lock()
	defer t.mu.Unlock()

	t.open[id] = &openPhase{id: id, name: name, parentID: parentID, start: time.Now()}
	if parentID == "" {
		t.roots = append(t.roots, id)
	} else if parent, ok := t.open[parentID]; ok {
		parent.children = append(parent.children, id)
	}
	t.active.Add(1)
	return id
}

// EndPhase closes the phase identified by id and returns its metrics,
// including any sub-phases that have themselves already ended. Sub-phases
// are attached to their parent in end order (spec §4.8).
func (t *PhaseTracker) EndPhase(id string) (PhaseMetrics, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.open[id]
	if !ok {
		return PhaseMetrics{}, false
	}
	delete(t.open, id)
	t.active.Add(-1)

	end := time.Now()
	metrics := PhaseMetrics{
		ID:       p.id,
		Name:     p.name,
		ParentID: p.parentID,
		Start:    p.start,
		End:      end,
		Duration: end.Sub(p.start),
	}
	for _, childID := range p.children {
		if child, ok := t.completed[childID]; ok {
			metrics.Children = append(metrics.Children, child)
		}
	}
	sort.Slice(metrics.Children, func(i, j int) bool {
		return metrics.Children[i].End.Before(metrics.Children[j].End)
	})
	t.completed[id] = metrics
	return metrics, true
}

// ActivePhaseCount returns the number of started-but-not-yet-ended phases.
func (t *PhaseTracker) ActivePhaseCount() int64 { return t.active.Load() }

// Completed returns every phase that has ended, keyed by ID.
func (t *PhaseTracker) Completed() map[string]PhaseMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]PhaseMetrics, len(t.completed))
	for k, v := range t.completed {
		out[k] = v
	}
	return out
}

// Roots returns the top-level (parentless) completed phases, ordered by
// start time.
func (t *PhaseTracker) Roots() []PhaseMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]PhaseMetrics, 0, len(t.roots))
	for _, id := range t.roots {
		if m, ok := t.completed[id]; ok {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// Reset clears all tracked state, open and completed alike.
func (t *PhaseTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = make(map[string]*openPhase)
	t.completed = make(map[string]PhaseMetrics)
	t.roots = nil
	t.active.Store(0)
}
