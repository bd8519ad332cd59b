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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faktgo/faktgo/metadata"
)

const greeterFixture = `{
  "Kind": 0,
  "FQN": "com/example/Greeter",
  "SimpleName": "Greeter",
  "Package": "com.example",
  "SourceFilePath": "SOURCE_PATH",
  "Annotations": ["com/rsicarelli/fakt/annotation/Fakt"],
  "Functions": [
    {"Name": "greet", "Parameters": [{"Name": "name", "TypeText": "kotlin.String"}], "ReturnTypeText": "kotlin.String"}
  ]
}`

func writeFixture(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunPipelineGeneratesFakeFromFixture(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeFixture(t, dir, "source.kt", "interface Greeter")
	fixture := greeterFixtureFor(sourcePath)
	writeFixture(t, dir, "greeter.json", fixture)

	outDir := t.TempDir()
	sourceDir, outputDir = dir, outDir
	t.Cleanup(func() { sourceDir, outputDir = "", "" })

	result, err := runPipeline(context.Background(), metadata.FaktOptions{LogLevel: "INFO"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.summary.Processed)
	assert.Equal(t, 1, result.summary.InterfacesDiscovered)

	generated := filepath.Join(outDir, "com", "example", "FakeGreeterImpl.kt")
	data, err := os.ReadFile(generated)
	require.NoError(t, err)
	assert.Contains(t, string(data), "class FakeGreeterImpl : com.example.Greeter {")
}

func TestEffectiveOutputDirPrefersOverride(t *testing.T) {
	assert.Equal(t, "override", effectiveOutputDir(metadata.FaktOptions{OutputDirOverride: "override"}, "fallback"))
	assert.Equal(t, "fallback", effectiveOutputDir(metadata.FaktOptions{}, "fallback"))
}

func greeterFixtureFor(sourcePath string) string {
	escaped := strings.ReplaceAll(sourcePath, `\`, `\\`)
	return strings.ReplaceAll(greeterFixture, "SOURCE_PATH", escaped)
}
