// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package cachefile implements the cross-compilation metadata cache (spec
// §4.2): a content-hashed, atomically-written JSON document shared across
// sibling compilations of the same multi-platform module.
//
// Grounded on the teacher's manifest.HashFileAtomic (SHA256, TOCTOU-safe
// streaming hash with retries); adapted to MD5 here because spec §6 names
// MD5 explicitly as part of the on-disk schema.
package cachefile

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"sort"
	"strings"
)

// MissingSignature is reported for a referenced source file that no longer
// exists.
const MissingSignature = "missing"

// UnknownSignature is reported when the source path itself is the sentinel
// "<unknown>".
const UnknownSignature = "unknown"

const unknownSourcePath = "<unknown>"

// FileSignature computes the lowercase-hex MD5 of path's contents. Per spec
// §6: "missing" when the file is absent, "unknown" when path is "<unknown>".
func FileSignature(path string) string {
	if path == unknownSourcePath {
		return UnknownSignature
	}
	f, err := os.Open(path)
	if err != nil {
		return MissingSignature
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return MissingSignature
	}
	return hex.EncodeToString(h.Sum(nil))
}

// CacheSignature computes the combined content signature: the MD5 of the
// lexicographically sorted list of per-file signatures joined by "|" (spec
// §3 invariant).
func CacheSignature(perFileSignatures []string) string {
	sorted := append([]string(nil), perFileSignatures...)
	sort.Strings(sorted)
	joined := strings.Join(sorted, "|")
	sum := md5.Sum([]byte(joined))
	return hex.EncodeToString(sum[:])
}
