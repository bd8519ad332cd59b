// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package sharedctx carries the single process-local value created once per
// compilation (spec §4.3): options, the recognized annotation set, the
// metadata store, and the logger. It is never a process-global — callers
// construct one per compilation and thread it through the validator and
// generator explicitly.
package sharedctx

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"

	"github.com/faktgo/faktgo/metadata"
)

// Context is the shared value described in spec §4.3.
type Context struct {
	Options         metadata.FaktOptions
	annotationSet   map[string]struct{}
	Store           *metadata.Store
	logger          *slog.Logger
}

// New constructs a Context for a fresh compilation.
func New(opts metadata.FaktOptions) *Context {
	annotations := opts.FakeAnnotations
	if len(annotations) == 0 {
		annotations = []string{metadata.DefaultAnnotationFQN}
	}
	set := make(map[string]struct{}, len(annotations))
	for _, a := range annotations {
		set[a] = struct{}{}
	}
	return &Context{
		Options:       opts,
		annotationSet: set,
		Store:         metadata.NewStore(),
		logger:        defaultLogger(opts.LogLevel),
	}
}

func defaultLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "DEBUG", "TRACE":
		slogLevel = slog.LevelDebug
	case "QUIET":
		slogLevel = slog.LevelError + 1
	default:
		slogLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}

// IsConfiguredAnnotation implements spec §4.3: true iff fqn is a member of
// the configured (or default) annotation set.
func (c *Context) IsConfiguredAnnotation(fqn string) bool {
	_, ok := c.annotationSet[fqn]
	return ok
}

// AnnotationFQNs returns the configured annotation set as a sorted-free
// slice (order not significant; membership is a plain set lookup per spec §9).
func (c *Context) AnnotationFQNs() []string {
	out := make([]string, 0, len(c.annotationSet))
	for fqn := range c.annotationSet {
		out = append(out, fqn)
	}
	return out
}

// SetLogger overrides the default stderr JSON logger.
func (c *Context) SetLogger(l *slog.Logger) { c.logger = l }

// Logger returns a logger enriched with trace/span fields when ctx carries
// an active OpenTelemetry span, matching the teacher's
// telemetry.LoggerWithTrace helper. When no span is active this is a no-op.
func (c *Context) Logger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return c.logger
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return c.logger
	}
	return c.logger.With(
		slog.String("trace_id", spanCtx.TraceID().String()),
		slog.String("span_id", spanCtx.SpanID().String()),
	)
}
