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

// FileBuilder accumulates a CodeFile. Builders are mutable accumulators;
// Build() materializes the accumulated state into an immutable value (spec
// §4.5 "Builder DSL... Builders must be express-by-value, not
// reference-mutating shared state; callers compose files by returning
// immutable records").
type FileBuilder struct {
	pkg          string
	imports      []string
	seenImports  map[string]struct{}
	declarations []CodeDeclaration
}

// NewFileBuilder starts a builder for a file in the given package.
func NewFileBuilder(pkg string) *FileBuilder {
	return &FileBuilder{pkg: pkg, seenImports: make(map[string]struct{})}
}

// AddImport records fqn if not already present (deduplicated, insertion-order
// preserved until Render sorts them).
func (b *FileBuilder) AddImport(fqn string) *FileBuilder {
	if fqn == "" {
		return b
	}
	if _, seen := b.seenImports[fqn]; seen {
		return b
	}
	b.seenImports[fqn] = struct{}{}
	b.imports = append(b.imports, fqn)
	return b
}

// AddClass appends a completed class declaration.
func (b *FileBuilder) AddClass(c CodeClass) *FileBuilder {
	b.declarations = append(b.declarations, CodeDeclaration{Class: &c})
	return b
}

// AddFunction appends a completed top-level function declaration.
func (b *FileBuilder) AddFunction(f CodeFunction) *FileBuilder {
	b.declarations = append(b.declarations, CodeDeclaration{Function: &f})
	return b
}

// AddProperty appends a completed top-level property declaration.
func (b *FileBuilder) AddProperty(p CodeProperty) *FileBuilder {
	b.declarations = append(b.declarations, CodeDeclaration{Property: &p})
	return b
}

// Build materializes the immutable CodeFile.
func (b *FileBuilder) Build() CodeFile {
	imports := make([]string, len(b.imports))
	copy(imports, b.imports)
	decls := make([]CodeDeclaration, len(b.declarations))
	copy(decls, b.declarations)
	return CodeFile{Package: b.pkg, Imports: imports, Declarations: decls}
}

// ClassBuilder accumulates a CodeClass.
type ClassBuilder struct {
	class CodeClass
}

// NewClassBuilder starts a builder for a class named name.
func NewClassBuilder(name string) *ClassBuilder {
	return &ClassBuilder{class: CodeClass{Name: name, SuperclassCallIndex: -1}}
}

func (b *ClassBuilder) WithModifiers(mods ...CodeModifier) *ClassBuilder {
	b.class.Modifiers = append(b.class.Modifiers, mods...)
	return b
}

func (b *ClassBuilder) WithTypeParameters(tps ...CodeTypeParameter) *ClassBuilder {
	b.class.TypeParameters = append(b.class.TypeParameters, tps...)
	return b
}

func (b *ClassBuilder) WithPrimaryConstructorParams(params ...CodeParameter) *ClassBuilder {
	b.class.PrimaryConstructorParams = append(b.class.PrimaryConstructorParams, params...)
	return b
}

// WithSuperclassCall adds t as a supertype invoked as a constructor call
// (the class form's "extends Base(args)" position).
func (b *ClassBuilder) WithSuperclassCall(t CodeType) *ClassBuilder {
	b.class.SuperclassCallIndex = len(b.class.Supertypes)
	b.class.Supertypes = append(b.class.Supertypes, t)
	return b
}

// WithInterface adds t as a plain implemented-interface reference.
func (b *ClassBuilder) WithInterface(t CodeType) *ClassBuilder {
	b.class.Supertypes = append(b.class.Supertypes, t)
	return b
}

func (b *ClassBuilder) WithProperty(p CodeProperty) *ClassBuilder {
	b.class.Properties = append(b.class.Properties, p)
	return b
}

func (b *ClassBuilder) WithFunction(f CodeFunction) *ClassBuilder {
	b.class.Functions = append(b.class.Functions, f)
	return b
}

// Build materializes the immutable CodeClass.
func (b *ClassBuilder) Build() CodeClass {
	return b.class
}

// FunctionBuilder accumulates a CodeFunction.
type FunctionBuilder struct {
	fn CodeFunction
}

// NewFunctionBuilder starts a builder for a function named name.
func NewFunctionBuilder(name string) *FunctionBuilder {
	return &FunctionBuilder{fn: CodeFunction{Name: name}}
}

func (b *FunctionBuilder) WithModifiers(mods ...CodeModifier) *FunctionBuilder {
	b.fn.Modifiers = append(b.fn.Modifiers, mods...)
	return b
}

func (b *FunctionBuilder) WithTypeParameters(tps ...CodeTypeParameter) *FunctionBuilder {
	b.fn.TypeParameters = append(b.fn.TypeParameters, tps...)
	return b
}

func (b *FunctionBuilder) WithParameters(params ...CodeParameter) *FunctionBuilder {
	b.fn.Parameters = append(b.fn.Parameters, params...)
	return b
}

func (b *FunctionBuilder) WithReturnType(t CodeType) *FunctionBuilder {
	b.fn.ReturnType = &t
	return b
}

func (b *FunctionBuilder) WithSuspend(suspend bool) *FunctionBuilder {
	b.fn.Suspend = suspend
	return b
}

func (b *FunctionBuilder) WithBlockBody(statements ...string) *FunctionBuilder {
	b.fn.Body = &CodeBlock{Statements: statements}
	b.fn.ExpressionBody = false
	return b
}

func (b *FunctionBuilder) WithExpressionBody(expr CodeExpression) *FunctionBuilder {
	b.fn.Body = &CodeBlock{Expr: &expr}
	b.fn.ExpressionBody = true
	return b
}

// Build materializes the immutable CodeFunction.
func (b *FunctionBuilder) Build() CodeFunction {
	return b.fn
}

// PropertyBuilder accumulates a CodeProperty.
type PropertyBuilder struct {
	prop CodeProperty
}

// NewPropertyBuilder starts a builder for a property named name of type t.
func NewPropertyBuilder(name string, t CodeType) *PropertyBuilder {
	return &PropertyBuilder{prop: CodeProperty{Name: name, Type: t}}
}

func (b *PropertyBuilder) WithModifiers(mods ...CodeModifier) *PropertyBuilder {
	b.prop.Modifiers = append(b.prop.Modifiers, mods...)
	return b
}

func (b *PropertyBuilder) WithMutable(mutable bool) *PropertyBuilder {
	b.prop.Mutable = mutable
	return b
}

func (b *PropertyBuilder) WithInitializer(expr CodeExpression) *PropertyBuilder {
	b.prop.Initializer = &expr
	return b
}

func (b *PropertyBuilder) WithGetter(blk CodeBlock) *PropertyBuilder {
	b.prop.Getter = &blk
	return b
}

// Build materializes the immutable CodeProperty.
func (b *PropertyBuilder) Build() CodeProperty {
	return b.prop
}
