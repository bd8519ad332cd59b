// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package validator

import "github.com/faktgo/faktgo/hostir"

func isUniversalMethodName(name string) bool {
	return name == "equals" || name == "hashCode" || name == "toString"
}

// hasRecognizedAnnotation reports whether raw carries any annotation the
// configured set recognizes (spec §4.3 "isConfiguredAnnotation").
func hasRecognizedAnnotation(raw hostir.RawDeclaration, isConfigured func(string) bool) bool {
	for _, a := range raw.Annotations {
		if isConfigured(a) {
			return true
		}
	}
	return false
}

// isUniversalOverrideExcluded decides whether a class-form member named
// equals/hashCode/toString should be excluded as "universal" (spec §4.4 step
// 5, and Open Question decision #1 in DESIGN.md).
func isUniversalOverrideExcluded(fn hostir.RawFunction, preserveUniversalOverrides bool) bool {
	if !isUniversalMethodName(fn.Name) {
		return false
	}
	if preserveUniversalOverrides && fn.HasCustomBody {
		return false
	}
	return true
}

// hasOverridableMember implements the class-form eligibility predicate's
// "has at least one overridable member (abstract or open) after excluding
// standard universal methods" clause (spec §4.4).
func hasOverridableMember(raw hostir.RawDeclaration, preserveUniversalOverrides bool) bool {
	for _, p := range raw.Properties {
		if p.Modality == hostir.ModalityAbstract || p.Modality == hostir.ModalityOpen {
			return true
		}
	}
	for _, f := range raw.Functions {
		if f.Modality != hostir.ModalityAbstract && f.Modality != hostir.ModalityOpen {
			continue
		}
		if isUniversalOverrideExcluded(f, preserveUniversalOverrides) {
			continue
		}
		return true
	}
	return false
}

// eligibleInterface implements the interface-form eligibility predicate
// (spec §4.4): kind is interface, not sealed. The annotation check is
// performed separately by the caller via hasRecognizedAnnotation.
func eligibleInterface(raw hostir.RawDeclaration) bool {
	return raw.Kind == hostir.KindInterface && raw.Modality != hostir.ModalitySealed
}

// eligibleClassKind implements the class-form kind/modality predicate, not
// including the overridable-member check (kept separate so the validator can
// distinguish "wrong kind" from "no overridable members" diagnostics).
func eligibleClassKind(raw hostir.RawDeclaration) bool {
	return raw.Kind == hostir.KindClass && raw.Modality != hostir.ModalitySealed
}
