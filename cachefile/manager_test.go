// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cachefile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faktgo/faktgo/cachefile"
	"github.com/faktgo/faktgo/metadata"
)

func writeSourceFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	srcA := writeSourceFile(t, dir, "a.kt", "interface A")
	srcB := writeSourceFile(t, dir, "b.kt", "interface B")

	store := metadata.NewStore()
	require.True(t, store.Insert(metadata.ValidatedDeclaration{
		Kind: metadata.KindInterface, FQN: "pkg/A", SimpleName: "A", Package: "pkg",
		SourceFilePath: srcA, ValidationTimeNanos: 500,
		Functions: []metadata.FunctionInfo{{Name: "g", ReturnTypeText: "kotlin.String"}},
	}))
	require.True(t, store.Insert(metadata.ValidatedDeclaration{
		Kind: metadata.KindInterface, FQN: "pkg/B", SimpleName: "B", Package: "pkg",
		SourceFilePath: srcB, ValidationTimeNanos: 700,
	}))

	cachePath := filepath.Join(dir, "cache.json")
	producer := &cachefile.Manager{OutputPath: cachePath}
	wrote, err := producer.Write(store)
	require.NoError(t, err)
	assert.True(t, wrote)

	consumerStore := metadata.NewStore()
	consumer := &cachefile.Manager{InputPath: cachePath}
	ok, err := consumer.TryLoad(consumerStore)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, consumerStore.Len())
	assert.EqualValues(t, 2, consumerStore.InterfaceCacheHits())

	got, ok := consumerStore.Get("pkg/A")
	require.True(t, ok)
	assert.Equal(t, int64(0), got.ValidationTimeNanos, "cache hit must reset validation time to 0")
	assert.Equal(t, "g", got.Functions[0].Name)

	assert.Equal(t, int64(1200), consumer.SavedFirTimeNanos())
}

func TestCacheInvalidationOnContentChange(t *testing.T) {
	dir := t.TempDir()
	src := writeSourceFile(t, dir, "a.kt", "interface A")

	store := metadata.NewStore()
	store.Insert(metadata.ValidatedDeclaration{
		Kind: metadata.KindInterface, FQN: "pkg/A", SimpleName: "A", Package: "pkg",
		SourceFilePath: src,
	})

	cachePath := filepath.Join(dir, "cache.json")
	producer := &cachefile.Manager{OutputPath: cachePath}
	_, err := producer.Write(store)
	require.NoError(t, err)

	// Mutate the source file by a single byte.
	require.NoError(t, os.WriteFile(src, []byte("interface AX"), 0o644))

	consumerStore := metadata.NewStore()
	consumer := &cachefile.Manager{InputPath: cachePath}
	ok, err := consumer.TryLoad(consumerStore)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, consumerStore.Len())
}

func TestWriteNothingWhenStoreEmpty(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "cache.json")
	producer := &cachefile.Manager{OutputPath: cachePath}
	wrote, err := producer.Write(metadata.NewStore())
	require.NoError(t, err)
	assert.False(t, wrote)
	_, statErr := os.Stat(cachePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileSignatureSentinels(t *testing.T) {
	assert.Equal(t, cachefile.UnknownSignature, cachefile.FileSignature("<unknown>"))
	assert.Equal(t, cachefile.MissingSignature, cachefile.FileSignature("/does/not/exist.kt"))
}
