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
	"context"
	"fmt"

	"github.com/faktgo/faktgo/cachefile"
	"github.com/faktgo/faktgo/generator"
	"github.com/faktgo/faktgo/hostir"
	"github.com/faktgo/faktgo/metadata"
	"github.com/faktgo/faktgo/pluginopts"
	"github.com/faktgo/faktgo/sharedctx"
	"github.com/faktgo/faktgo/telemetry"
	"github.com/faktgo/faktgo/validator"
)

// buildOptions assembles FaktOptions from CLI flags, falling back to
// projectConfig for anything a flag left unset.
func buildOptions() metadata.FaktOptions {
	opts := metadata.FaktOptions{
		Enabled:                 true,
		LogLevel:                logLevel,
		FakeAnnotations:         fakeAnnotations,
		MetadataCacheInputPath:  cacheInputPath,
		MetadataCacheOutputPath: cacheOutputPath,
	}
	if rootCmd.PersistentFlags().Changed("output-dir") {
		opts.OutputDirOverride = outputDir
	}
	if opts.LogLevel == "" {
		opts.LogLevel = "INFO"
	}

	cfg, ok, err := pluginopts.LoadProjectConfig(projectConfig)
	if err == nil && ok {
		opts = pluginopts.ApplyProjectConfig(opts, cfg)
	}
	return opts
}

// pipelineResult is everything a caller needs to both report on a run and
// inspect what it produced.
type pipelineResult struct {
	summary telemetry.CompilationSummary
	cached  int
}

// runPipeline executes validate -> generate -> write -> telemetry end to
// end, the same sequence a host compiler plugin would drive through these
// packages directly.
func runPipeline(ctx context.Context, opts metadata.FaktOptions) (pipelineResult, error) {
	shared := sharedctx.New(opts)
	tracker := telemetry.NewPhaseTracker()

	compilationPhase := tracker.StartPhase("compilation", "")

	var cache *cachefile.Manager
	if opts.MetadataCacheInputPath != "" || opts.MetadataCacheOutputPath != "" {
		cache = &cachefile.Manager{InputPath: opts.MetadataCacheInputPath, OutputPath: opts.MetadataCacheOutputPath}
	}

	validatePhase := tracker.StartPhase("validate", compilationPhase)
	sink := &validator.SliceDiagnosticSink{}
	v := &validator.Validator{Ctx: shared, Sink: sink, Cache: cache}
	if err := v.Run(ctx, hostir.JSONFixtureSource{Dir: sourceDir}); err != nil {
		tracker.EndPhase(validatePhase)
		tracker.EndPhase(compilationPhase)
		return pipelineResult{}, fmt.Errorf("faktctl: validating declarations: %w", err)
	}
	tracker.EndPhase(validatePhase)

	cachedCount := shared.Store.InterfaceCacheHits() + shared.Store.ClassCacheHits()

	generatePhase := tracker.StartPhase("generate", compilationPhase)
	writer := generator.NewFSWriter()
	targetDir := effectiveOutputDir(opts, outputDir)
	decls := shared.Store.Snapshot()
	fakes := make([]generator.FileMetrics, 0, len(decls))
	var interfaces, classes int
	for _, decl := range decls {
		if decl.Kind == metadata.KindInterface {
			interfaces++
		} else {
			classes++
		}

		file, metrics, err := generator.Generate(decl)
		if err != nil {
			return pipelineResult{}, fmt.Errorf("faktctl: generating fake for %s: %w", decl.FQN, err)
		}
		if _, err := writer.Write(targetDir, decl, file); err != nil {
			return pipelineResult{}, fmt.Errorf("faktctl: writing fake for %s: %w", decl.FQN, err)
		}
		fakes = append(fakes, metrics)
	}
	tracker.EndPhase(generatePhase)

	if cache != nil {
		if _, err := cache.Write(shared.Store); err != nil {
			tracker.EndPhase(compilationPhase)
			return pipelineResult{}, fmt.Errorf("faktctl: writing metadata cache: %w", err)
		}
	}

	compilationMetrics, _ := tracker.EndPhase(compilationPhase)

	summary := telemetry.NewCompilationSummary(tracker, fakes, int64(compilationMetrics.Duration), interfaces, classes, int(cachedCount))
	return pipelineResult{summary: summary, cached: int(cachedCount)}, nil
}

func effectiveOutputDir(opts metadata.FaktOptions, fallback string) string {
	if opts.OutputDirOverride != "" {
		return opts.OutputDirOverride
	}
	return fallback
}
