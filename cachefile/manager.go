// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cachefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/faktgo/faktgo/metadata"
)

// Manager implements the producer/consumer cache contract of spec §4.2.
// Producer mode is active when OutputPath is set; consumer mode is active
// when InputPath is set. Both may be active in the same Manager (a sibling
// compilation reading one module's cache while producing its own).
type Manager struct {
	OutputPath string
	InputPath  string

	cacheLoaded    atomic.Bool
	savedFirNanos  atomic.Int64
}

// IsProducer reports whether producer mode is configured.
func (m *Manager) IsProducer() bool { return m.OutputPath != "" }

// IsConsumer reports whether consumer mode is configured.
func (m *Manager) IsConsumer() bool { return m.InputPath != "" }

// Write serializes every ValidatedDeclaration currently in store into a
// single JSON document and writes it atomically (temp file + rename) to
// OutputPath. Nothing is written if the store is empty (spec §4.2). Returns
// wrote=false, err=nil when not configured as a producer or the store is
// empty — neither is a failure.
func (m *Manager) Write(store *metadata.Store) (wrote bool, err error) {
	if !m.IsProducer() {
		return false, nil
	}
	decls := store.Snapshot()
	if len(decls) == 0 {
		return false, nil
	}

	cache := metadata.FirMetadataCache{Version: metadata.CurrentSchemaVersion}
	var perFileSignatures []string
	var totalNanos int64
	for _, decl := range decls {
		sig := FileSignature(decl.SourceFilePath)
		perFileSignatures = append(perFileSignatures, sig)
		totalNanos += decl.ValidationTimeNanos
		iface, class := metadata.ToSerializable(decl, sig)
		if iface != nil {
			cache.Interfaces = append(cache.Interfaces, *iface)
		}
		if class != nil {
			cache.Classes = append(cache.Classes, *class)
		}
	}
	cache.CacheSignature = CacheSignature(perFileSignatures)
	cache.TotalFirTimeNanos = totalNanos

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return false, fmt.Errorf("cachefile: marshaling cache: %w", err)
	}
	if err := writeAtomic(m.OutputPath, data); err != nil {
		return false, err
	}
	return true, nil
}

// TryLoad attempts to load, validate, and materialize InputPath into store.
// It returns true iff the cache was accepted; any parse failure, version
// mismatch, or signature mismatch returns false with a nil error and leaves
// store untouched (spec §4.2: "No exception is propagated; the consumer
// proceeds as if no cache were supplied"). A rejected cache file is never
// deleted.
func (m *Manager) TryLoad(store *metadata.Store) (bool, error) {
	if !m.IsConsumer() {
		return false, nil
	}
	if m.cacheLoaded.Load() {
		return false, nil
	}

	data, err := os.ReadFile(m.InputPath)
	if err != nil {
		return false, nil
	}
	var cache metadata.FirMetadataCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return false, nil
	}
	if cache.Version != metadata.CurrentSchemaVersion {
		return false, nil
	}

	allDecls := make([]metadata.ValidatedDeclaration, 0, len(cache.Interfaces)+len(cache.Classes))
	var perFileSignatures []string
	for _, r := range cache.Interfaces {
		if FileSignature(r.SourceFilePath) != r.SourceFileSignature {
			return false, nil
		}
		perFileSignatures = append(perFileSignatures, r.SourceFileSignature)
		allDecls = append(allDecls, metadata.FromSerializableInterface(r))
	}
	for _, r := range cache.Classes {
		if FileSignature(r.SourceFilePath) != r.SourceFileSignature {
			return false, nil
		}
		perFileSignatures = append(perFileSignatures, r.SourceFileSignature)
		allDecls = append(allDecls, metadata.FromSerializableClass(r))
	}
	if CacheSignature(perFileSignatures) != cache.CacheSignature {
		return false, nil
	}

	for _, decl := range allDecls {
		if store.Insert(decl) {
			if decl.Kind == metadata.KindInterface {
				store.IncInterfaceCacheHit()
			} else {
				store.IncClassCacheHit()
			}
		}
	}
	m.savedFirNanos.Store(cache.TotalFirTimeNanos)
	m.cacheLoaded.Store(true)
	return true, nil
}

// SavedFirTimeNanos returns the sum of validation times recorded in the
// loaded cache, for telemetry only (spec §4.2 "book-keeping").
func (m *Manager) SavedFirTimeNanos() int64 { return m.savedFirNanos.Load() }

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cachefile: creating %q: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cachefile: writing temp file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cachefile: renaming %q to %q: %w", tmp, path, err)
	}
	return nil
}
