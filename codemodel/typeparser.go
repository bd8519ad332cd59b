// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package codemodel

import (
	"fmt"
	"strings"
)

// ParseType parses a type-text string per spec §4.5's grammar:
//
//	Type     := (Generic | Simple) '?'?
//	Generic  := Name '<' TypeList '>'
//	Simple   := Name
//	TypeList := Type (',' Type)*
//
// Comma-splitting inside a TypeList only happens at angle-bracket depth
// zero, so nested generics (e.g. "Map<String, List<Int>>") parse correctly.
// A trailing '?' applies to the outermost parsed type.
func ParseType(s string) (CodeType, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return CodeType{}, fmt.Errorf("codemodel: empty type text")
	}

	nullable := false
	if strings.HasSuffix(trimmed, "?") {
		nullable = true
		trimmed = strings.TrimSpace(trimmed[:len(trimmed)-1])
	}

	base, err := parseBase(trimmed)
	if err != nil {
		return CodeType{}, err
	}
	if nullable {
		return Nullable(base), nil
	}
	return base, nil
}

func parseBase(s string) (CodeType, error) {
	open := strings.IndexByte(s, '<')
	if open < 0 {
		if s == "" {
			return CodeType{}, fmt.Errorf("codemodel: empty type name")
		}
		return Simple(s), nil
	}

	if !strings.HasSuffix(s, ">") {
		return CodeType{}, fmt.Errorf("codemodel: unterminated generic type %q", s)
	}
	name := strings.TrimSpace(s[:open])
	if name == "" {
		return CodeType{}, fmt.Errorf("codemodel: generic type with no name %q", s)
	}
	argsText := s[open+1 : len(s)-1]

	parts, err := splitTopLevel(argsText)
	if err != nil {
		return CodeType{}, err
	}
	args := make([]CodeType, 0, len(parts))
	for _, part := range parts {
		arg, err := ParseType(part)
		if err != nil {
			return CodeType{}, fmt.Errorf("codemodel: parsing argument of %q: %w", s, err)
		}
		args = append(args, arg)
	}
	return Generic(name, args...), nil
}

// splitTopLevel splits s on commas that occur at angle-bracket depth zero.
func splitTopLevel(s string) ([]string, error) {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("codemodel: unbalanced '>' in type argument list %q", s)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("codemodel: unbalanced '<' in type argument list %q", s)
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts, nil
}
