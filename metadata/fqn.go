// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package metadata

import "strings"

// EncodeFQN builds the canonical "packageSegment/.../Relative.Name" form
// described in spec §4.1: every package segment is its own '/'-separated
// component, and the final component is the dotted relative class name
// (encoding nested declarations, e.g. "Outer.Inner").
func EncodeFQN(packageName string, relativeName string) string {
	var b strings.Builder
	if packageName != "" {
		for _, seg := range strings.Split(packageName, ".") {
			b.WriteString(seg)
			b.WriteByte('/')
		}
	}
	b.WriteString(relativeName)
	return b.String()
}

// DecodeFQN reverses EncodeFQN, splitting the canonical form back into its
// package name (dot-separated) and relative class name (dot-separated,
// nested-declaration-preserving).
func DecodeFQN(fqn string) (packageName string, relativeName string) {
	idx := strings.LastIndex(fqn, "/")
	if idx < 0 {
		return "", fqn
	}
	pkgSegments := strings.Split(fqn[:idx], "/")
	return strings.Join(pkgSegments, "."), fqn[idx+1:]
}
