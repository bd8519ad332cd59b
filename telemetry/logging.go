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
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// LoggerWithTrace returns a logger with trace_id and span_id fields added
// from ctx's active span, so compiler-plugin log lines correlate with the
// build's own tracing. Returns logger unchanged if ctx carries no valid
// span.
func LoggerWithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if ctx == nil {
		return logger
	}

	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return logger
	}

	return logger.With(
		slog.String("trace_id", spanCtx.TraceID().String()),
		slog.String("span_id", spanCtx.SpanID().String()),
	)
}

// LoggerWithPhase adds the current compilation phase's name to a
// trace-correlated logger, so a multi-module build can tell which phase
// (scan, validate, generate, write) emitted a given line.
func LoggerWithPhase(ctx context.Context, logger *slog.Logger, phaseName string) *slog.Logger {
	return LoggerWithTrace(ctx, logger).With(
		slog.String("phase", phaseName),
	)
}

// LoggerWithDeclaration adds the fully-qualified name of the declaration
// currently being processed, for per-fake log correlation in TRACE-level
// runs.
func LoggerWithDeclaration(ctx context.Context, logger *slog.Logger, fqn string) *slog.Logger {
	return LoggerWithTrace(ctx, logger).With(
		slog.String("declaration", fqn),
	)
}
