// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pluginopts_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faktgo/faktgo/metadata"
	"github.com/faktgo/faktgo/pluginopts"
)

func TestDecodeDefaultsToDisabledAndInfo(t *testing.T) {
	opts := pluginopts.Decode(map[string]string{})
	assert.False(t, opts.Enabled)
	assert.Equal(t, "INFO", opts.LogLevel)
}

func TestDecodeEnabledTrue(t *testing.T) {
	opts := pluginopts.Decode(map[string]string{pluginopts.KeyEnabled: "true"})
	assert.True(t, opts.Enabled)
}

func TestDecodeDebugTrueImpliesDebugLogLevel(t *testing.T) {
	opts := pluginopts.Decode(map[string]string{pluginopts.KeyDebug: "true"})
	assert.Equal(t, "DEBUG", opts.LogLevel)
}

func TestDecodeExplicitLogLevelWinsOverDebug(t *testing.T) {
	opts := pluginopts.Decode(map[string]string{
		pluginopts.KeyDebug:    "true",
		pluginopts.KeyLogLevel: "trace",
	})
	assert.Equal(t, "TRACE", opts.LogLevel)
}

func TestDecodeFakeAnnotationsSplitsOnComma(t *testing.T) {
	opts := pluginopts.Decode(map[string]string{
		pluginopts.KeyFakeAnnotations: "com/a/Fake, com/b/Fake",
	})
	assert.Equal(t, []string{"com/a/Fake", "com/b/Fake"}, opts.FakeAnnotations)
}

func TestDecodeCachePaths(t *testing.T) {
	opts := pluginopts.Decode(map[string]string{
		pluginopts.KeyMetadataCacheInput:  "in.json",
		pluginopts.KeyMetadataCacheOutput: "out.json",
		pluginopts.KeyOutputDir:           "build/generated",
	})
	assert.Equal(t, "in.json", opts.MetadataCacheInputPath)
	assert.Equal(t, "out.json", opts.MetadataCacheOutputPath)
	assert.Equal(t, "build/generated", opts.OutputDirOverride)
}

func TestWarnUnknownKeysLogsOnlyUnrecognizedKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	pluginopts.WarnUnknownKeys(map[string]string{
		pluginopts.KeyEnabled: "true",
		"madeUpOption":        "x",
	}, logger)

	out := buf.String()
	assert.Contains(t, out, "madeUpOption")
	assert.NotContains(t, out, pluginopts.KeyEnabled)
}

func TestDecodeSourceSetContextMissingIsNotError(t *testing.T) {
	_, ok := pluginopts.DecodeSourceSetContext(map[string]string{})
	assert.False(t, ok)
}

func TestDecodeSourceSetContextInvalidBase64IsTolerated(t *testing.T) {
	_, ok := pluginopts.DecodeSourceSetContext(map[string]string{
		pluginopts.KeySourceSetContext: "not-base64!!!",
	})
	assert.False(t, ok)
}

func TestDecodeSourceSetContextInvalidJSONIsTolerated(t *testing.T) {
	garbage := base64.StdEncoding.EncodeToString([]byte("not json"))
	_, ok := pluginopts.DecodeSourceSetContext(map[string]string{
		pluginopts.KeySourceSetContext: garbage,
	})
	assert.False(t, ok)
}

func TestDecodeSourceSetContextValid(t *testing.T) {
	ctx := metadata.SourceSetContext{CompilationName: "main", TargetName: "jvm", IsTest: false}
	data, err := json.Marshal(ctx)
	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString(data)

	decoded, ok := pluginopts.DecodeSourceSetContext(map[string]string{
		pluginopts.KeySourceSetContext: encoded,
	})
	require.True(t, ok)
	assert.Equal(t, "main", decoded.CompilationName)
	assert.Equal(t, "jvm", decoded.TargetName)
}

func TestLoadProjectConfigMissingFileIsNotError(t *testing.T) {
	cfg, ok, err := pluginopts.LoadProjectConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, pluginopts.ProjectConfig{}, cfg)
}

func TestLoadProjectConfigParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faktgo.yaml")
	content := "outputDir: build/fakes\nfakeAnnotations:\n  - com/example/Fake\nlogLevel: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, ok, err := pluginopts.LoadProjectConfig(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "build/fakes", cfg.OutputDir)
	assert.Equal(t, []string{"com/example/Fake"}, cfg.FakeAnnotations)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadProjectConfigMalformedYAMLIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faktgo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("outputDir: [unterminated"), 0o644))

	_, ok, err := pluginopts.LoadProjectConfig(path)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestApplyProjectConfigFillsUnsetFields(t *testing.T) {
	opts := metadata.FaktOptions{LogLevel: "INFO"}
	cfg := pluginopts.ProjectConfig{OutputDir: "build/fakes", FakeAnnotations: []string{"com/example/Fake"}, LogLevel: "debug"}

	merged := pluginopts.ApplyProjectConfig(opts, cfg)
	assert.Equal(t, "build/fakes", merged.OutputDirOverride)
	assert.Equal(t, []string{"com/example/Fake"}, merged.FakeAnnotations)
	assert.Equal(t, "DEBUG", merged.LogLevel)
}

func TestApplyProjectConfigNeverOverridesExplicitOption(t *testing.T) {
	opts := metadata.FaktOptions{OutputDirOverride: "build/explicit", LogLevel: "TRACE"}
	cfg := pluginopts.ProjectConfig{OutputDir: "build/fakes", LogLevel: "debug"}

	merged := pluginopts.ApplyProjectConfig(opts, cfg)
	assert.Equal(t, "build/explicit", merged.OutputDirOverride)
	assert.Equal(t, "TRACE", merged.LogLevel)
}
