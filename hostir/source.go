// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package hostir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Source supplies the declarations the front-end validator should analyze
// for a single compilation. A real build-tool integration would implement
// this on top of the host compiler's own resolution phase; that wiring is
// out of scope here (spec §1).
type Source interface {
	Declarations() ([]RawDeclaration, error)
}

// JSONFixtureSource reads every *.json file in Dir, each holding one
// RawDeclaration, sorted by filename for determinism. This is the adapter
// cmd/faktctl uses in place of a live host compiler (the validator tests use
// SliceSource), matching spec §1's framing of adapters as external
// collaborators.
type JSONFixtureSource struct {
	Dir string
}

// Declarations implements Source.
func (s JSONFixtureSource) Declarations() ([]RawDeclaration, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("hostir: reading fixture dir %q: %w", s.Dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	decls := make([]RawDeclaration, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err != nil {
			return nil, fmt.Errorf("hostir: reading %q: %w", name, err)
		}
		var decl RawDeclaration
		if err := json.Unmarshal(data, &decl); err != nil {
			return nil, fmt.Errorf("hostir: parsing %q: %w", name, err)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// SliceSource is an in-memory Source, used directly by unit tests that build
// RawDeclaration values in Go rather than JSON fixtures.
type SliceSource struct {
	Decls []RawDeclaration
}

// Declarations implements Source.
func (s SliceSource) Declarations() ([]RawDeclaration, error) {
	return s.Decls, nil
}
