// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validator implements the front-end validator (spec §4.4): it
// detects annotated declarations in the host compiler's resolved declaration
// tree, validates eligibility, extracts language-neutral metadata, and
// populates the shared metadata store — consulting the cache manager first
// so a cache hit can skip analysis entirely.
//
// Grounded on the teacher's services/code_buddy/ast parsers, which walk a
// resolved tree (there, a tree-sitter CST) node by node and emit a flat list
// of typed symbols; the concurrency shape mirrors golang.org/x/sync/errgroup
// fan-out used elsewhere in the teacher for parallel analysis.
package validator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/faktgo/faktgo/cachefile"
	"github.com/faktgo/faktgo/hostir"
	"github.com/faktgo/faktgo/metadata"
	"github.com/faktgo/faktgo/sharedctx"
)

// Validator runs the front-end phase for a single compilation.
type Validator struct {
	Ctx   *sharedctx.Context
	Sink  DiagnosticSink
	Cache *cachefile.Manager // optional; nil disables both cache modes
}

// Run executes the front-end phase described in spec §4.4: consult the
// cache manager, and if no consumer-mode cache is accepted, analyze every
// declaration source reports. Declarations bearing no recognized annotation
// are ignored silently. A failed declaration never corrupts the store or
// aborts analysis of its siblings (spec §4.4 "Failure semantics").
func (v *Validator) Run(ctx context.Context, source hostir.Source) error {
	if v.Cache != nil {
		ok, err := v.Cache.TryLoad(v.Ctx.Store)
		if err != nil {
			return fmt.Errorf("validator: loading cache: %w", err)
		}
		if ok {
			v.Ctx.Store.Freeze()
			return nil
		}
	}

	decls, err := source.Declarations()
	if err != nil {
		return fmt.Errorf("validator: reading declaration source: %w", err)
	}

	g, _ := errgroup.WithContext(ctx)
	for _, raw := range decls {
		raw := raw
		g.Go(func() error {
			v.validateOne(raw)
			return nil
		})
	}
	_ = g.Wait() // validateOne never returns an error; all failures are diagnostics

	v.Ctx.Store.Freeze()
	return nil
}

func (v *Validator) validateOne(raw hostir.RawDeclaration) {
	defer func() {
		if r := recover(); r != nil {
			v.Sink.Report(Diagnostic{
				Severity:       SeverityError,
				Code:           CodeExtractionError,
				Message:        fmt.Sprintf("unexpected error extracting metadata: %v", r),
				FQN:            raw.FQN,
				SourceFilePath: raw.SourceFilePath,
			})
		}
	}()

	if !hasRecognizedAnnotation(raw, v.Ctx.IsConfiguredAnnotation) {
		return
	}

	start := time.Now()

	switch {
	case raw.Kind == hostir.KindInterface:
		if !eligibleInterface(raw) {
			v.reportUnsupportedKind(raw)
			return
		}
		decl := extractInterface(raw)
		decl.ValidationTimeNanos = time.Since(start).Nanoseconds()
		v.insert(decl)

	case raw.Kind == hostir.KindClass:
		if !eligibleClassKind(raw) {
			v.reportUnsupportedKind(raw)
			return
		}
		if !hasOverridableMember(raw, v.Ctx.Options.PreserveUniversalOverrides) {
			v.Sink.Report(Diagnostic{
				Severity:       SeverityError,
				Code:           CodeAnnotationOnFinalClassWithoutOverrides,
				Message:        fmt.Sprintf("%s has no overridable members and cannot be faked", raw.FQN),
				FQN:            raw.FQN,
				SourceFilePath: raw.SourceFilePath,
			})
			return
		}
		decl := extractClass(raw, v.Ctx.Options.PreserveUniversalOverrides)
		decl.ValidationTimeNanos = time.Since(start).Nanoseconds()
		v.insert(decl)

	default:
		v.reportUnsupportedKind(raw)
	}
}

func (v *Validator) reportUnsupportedKind(raw hostir.RawDeclaration) {
	v.Sink.Report(Diagnostic{
		Severity:       SeverityError,
		Code:           CodeAnnotationOnUnsupportedKind,
		Message:        fmt.Sprintf("%s is not a supported fake subject (sealed/enum/object/annotation/type-alias)", raw.FQN),
		FQN:            raw.FQN,
		SourceFilePath: raw.SourceFilePath,
	})
}

func (v *Validator) insert(decl metadata.ValidatedDeclaration) {
	if !v.Ctx.Store.Insert(decl) {
		v.Sink.Report(Diagnostic{
			Severity:       SeverityWarning,
			Code:           CodeDuplicateAnnotatedName,
			Message:        fmt.Sprintf("%s is already annotated by another declaration in this compilation unit", decl.FQN),
			FQN:            decl.FQN,
			SourceFilePath: decl.SourceFilePath,
		})
	}
}
