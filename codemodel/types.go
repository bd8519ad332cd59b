// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package codemodel is the immutable AST of the source file about to be
// emitted: a well-formed subset of the target (Kotlin-flavored) language's
// surface syntax, a builder DSL that materializes it, and a deterministic
// renderer that turns it into UTF-8 text.
//
// Grounded on the "metadata struct -> generated source" codegen shape seen
// across the pack (goadesign/goa-ai's codegen builders, lestrrat-go's
// json-schema validator generator) and on madstone-tech-loko's
// strings.Builder-based markdown/html document builders for the renderer's
// assembly style: plain string concatenation, no template engine.
package codemodel

// CodeTypeKind discriminates the CodeType sum (spec §4.5: "CodeType is a sum
// over {Simple, Nullable(inner), Generic(name, args), Lambda(params, return,
// suspendFlag)}").
type CodeTypeKind int

const (
	TypeSimple CodeTypeKind = iota
	TypeNullable
	TypeGeneric
	TypeLambda
)

// CodeType is an immutable type reference.
type CodeType struct {
	Kind CodeTypeKind

	// Simple, Generic
	Name string
	Args []CodeType // Generic only

	// Nullable
	Inner *CodeType

	// Lambda
	Params  []CodeType
	Return  *CodeType
	Suspend bool
}

// Simple constructs a non-generic, non-nullable named type.
func Simple(name string) CodeType { return CodeType{Kind: TypeSimple, Name: name} }

// Nullable wraps inner as a nullable type.
func Nullable(inner CodeType) CodeType { return CodeType{Kind: TypeNullable, Inner: &inner} }

// Generic constructs a parameterized type.
func Generic(name string, args ...CodeType) CodeType {
	return CodeType{Kind: TypeGeneric, Name: name, Args: args}
}

// Lambda constructs a function type.
func Lambda(suspend bool, ret CodeType, params ...CodeType) CodeType {
	return CodeType{Kind: TypeLambda, Params: params, Return: &ret, Suspend: suspend}
}

// CodeModifier is a single declaration modifier keyword.
type CodeModifier string

const (
	ModPublic   CodeModifier = "public"
	ModInternal CodeModifier = "internal"
	ModPrivate  CodeModifier = "private"
	ModAbstract CodeModifier = "abstract"
	ModOpen     CodeModifier = "open"
	ModOverride CodeModifier = "override"
	ModData     CodeModifier = "data"
	ModSuspend  CodeModifier = "suspend"
)

// ClassKind distinguishes a class declaration from an object declaration.
type ClassKind int

const (
	ClassKindClass ClassKind = iota
	ClassKindObject
)

// CodeTypeParameter is a declaration-level or member-level type parameter.
type CodeTypeParameter struct {
	Name   string
	Bounds []CodeType
}

// CodeParameter is a single function parameter.
type CodeParameter struct {
	Name         string
	Type         CodeType
	DefaultValue string // source snippet, rendered verbatim when non-empty
	Vararg       bool
}

// CodeExprKind discriminates the CodeExpression sum.
type CodeExprKind int

const (
	ExprLiteral CodeExprKind = iota
	ExprNameRef
	ExprCall
	ExprLambda
	ExprPropertyAccess
	ExprWhen
)

// LiteralKind classifies an ExprLiteral.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitBool
	LitNull
	LitRaw // pre-rendered source text, used for verbatim default-value snippets
)

// WhenBranch is a single "condition -> result" arm of a when-expression.
type WhenBranch struct {
	Condition string // pre-rendered condition text, or "else"
	Result    CodeExpression
}

// CodeExpression is an immutable expression node.
type CodeExpression struct {
	Kind CodeExprKind

	// ExprLiteral
	LiteralKind LiteralKind
	LiteralText string

	// ExprNameRef
	Name string

	// ExprCall
	Callee string
	Args   []CodeExpression

	// ExprLambda
	LambdaParams  []string
	LambdaBody    *CodeBlock
	LambdaSuspend bool

	// ExprPropertyAccess
	Receiver *CodeExpression
	Property string
	Safe     bool // "?." instead of "."

	// ExprWhen
	WhenSubject  *CodeExpression
	WhenBranches []WhenBranch
}

// CodeBlock is either a list of pre-rendered statement strings or a single
// structured expression (spec §4.5).
type CodeBlock struct {
	Statements []string
	Expr       *CodeExpression
}

// CodeProperty is a property declaration.
type CodeProperty struct {
	Name        string
	Modifiers   []CodeModifier
	Type        CodeType
	Mutable     bool // var vs. val
	Initializer *CodeExpression
	Getter      *CodeBlock // optional get() body; the generator uses it for call-count views and property overrides
}

// CodeFunction is a function declaration.
type CodeFunction struct {
	Name           string
	Modifiers      []CodeModifier
	TypeParameters []CodeTypeParameter
	Parameters     []CodeParameter
	ReturnType     *CodeType
	Suspend        bool
	Body           *CodeBlock // nil renders an abstract member with no body
	ExpressionBody bool       // true renders "= expr" instead of a block
}

// CodeClass is a class or object declaration.
type CodeClass struct {
	Name                     string
	Kind                     ClassKind
	Modifiers                []CodeModifier
	TypeParameters           []CodeTypeParameter
	PrimaryConstructorParams []CodeParameter
	Supertypes               []CodeType
	// SuperclassCallIndex, when >= 0, marks which Supertypes entry is a
	// superclass invoked as a constructor call (others are rendered as
	// plain interface references).
	SuperclassCallIndex int
	Properties          []CodeProperty
	Functions           []CodeFunction
}

// CodeDeclaration is a single top-level declaration in a CodeFile: exactly
// one of Class, Function, or Property is non-nil.
type CodeDeclaration struct {
	Class    *CodeClass
	Function *CodeFunction
	Property *CodeProperty
}

// CodeFile is the immutable root of the emitted source file.
type CodeFile struct {
	Package      string
	Imports      []string // deduplicated, insertion order; sorted at render time
	Declarations []CodeDeclaration
}
