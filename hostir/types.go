// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package hostir defines the narrow boundary between this module and "the
// host compiler's resolved declaration tree" (spec §1: build-tool plugin
// wiring and platform-specific adaptors to the host compiler's extension
// points are out of scope). Real integration supplies its own Source
// implementation backed by the host compiler's own resolved AST; this
// package only describes the shape that adapter must produce.
package hostir

// Kind mirrors the host language's declaration kinds the validator must
// distinguish between (spec §4.4 eligibility predicates).
type Kind int

const (
	KindInterface Kind = iota
	KindClass
	KindObject
	KindEnum
	KindAnnotationClass
	KindSealed
	KindTypeAlias
)

// Modality mirrors the host language's open/final/abstract/sealed modifiers.
type Modality int

const (
	ModalityFinal Modality = iota
	ModalityOpen
	ModalityAbstract
	ModalitySealed
)

// RawTypeParameter is a not-yet-validated type parameter.
type RawTypeParameter struct {
	Name     string
	Bounds   []string
	Variance string
}

// RawParameter is a not-yet-validated function parameter.
type RawParameter struct {
	Name                string
	TypeText            string
	HasDefault          bool
	DefaultValueSnippet string
	Variadic            bool
}

// RawFunction is a not-yet-validated function or method.
type RawFunction struct {
	Name              string
	Parameters        []RawParameter
	ReturnTypeText    string
	Suspend           bool
	Inline            bool
	OwnTypeParameters []RawTypeParameter

	// Modality classifies this specific member for class-form extraction
	// (abstract vs. open vs. final).
	Modality Modality

	// IsUniversalOverride is true for equals/hashCode/toString.
	IsUniversalOverride bool
	// HasCustomBody is true when a universal override's body is not the
	// compiler-synthesized default. Only meaningful when
	// IsUniversalOverride is true; feeds Open Question decision #1.
	HasCustomBody bool
}

// RawProperty is a not-yet-validated property.
type RawProperty struct {
	Name     string
	TypeText string
	Mutable  bool
	Nullable bool
	Modality Modality
}

// RawDeclaration is the resolved-declaration-tree input the front-end
// validator consumes, standing in for whatever shape the real host compiler
// exposes at its resolution-phase extension point.
type RawDeclaration struct {
	Kind           Kind
	Modality       Modality
	FQN            string
	SimpleName     string
	Package        string
	SourceFilePath string
	Annotations    []string

	TypeParameters []RawTypeParameter
	Properties     []RawProperty
	Functions      []RawFunction

	// Supertypes lists the transitive supertype graph in declaration
	// order, used to collect inherited members (spec §4.4 step 4).
	Supertypes []RawDeclaration

	PrimaryConstructorParameters []RawParameter
}
