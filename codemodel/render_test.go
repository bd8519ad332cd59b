// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package codemodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faktgo/faktgo/codemodel"
)

func TestRenderSimpleClassWithInterface(t *testing.T) {
	fn := codemodel.NewFunctionBuilder("greet").
		WithModifiers(codemodel.ModOverride).
		WithParameters(codemodel.CodeParameter{Name: "name", Type: codemodel.Simple("kotlin.String")}).
		WithReturnType(codemodel.Simple("kotlin.String")).
		WithBlockBody(`return "hi"`).
		Build()

	class := codemodel.NewClassBuilder("FakeGreeter").
		WithModifiers(codemodel.ModPublic).
		WithInterface(codemodel.Simple("com.example.Greeter")).
		WithFunction(fn).
		Build()

	file := codemodel.NewFileBuilder("com.example.generated").
		AddImport("com.example.Greeter").
		AddClass(class).
		Build()

	out := codemodel.Render(file)
	assert.Contains(t, out, "package com.example.generated")
	assert.Contains(t, out, "import com.example.Greeter")
	assert.Contains(t, out, "class FakeGreeter : com.example.Greeter {")
	assert.Contains(t, out, "override fun greet(name: kotlin.String): kotlin.String {")
	assert.Contains(t, out, `return "hi"`)
}

func TestRenderSuperclassCallAddsConstructorParens(t *testing.T) {
	class := codemodel.NewClassBuilder("FakeBase").
		WithSuperclassCall(codemodel.Simple("com.example.Base")).
		WithInterface(codemodel.Simple("com.example.Extra")).
		Build()
	file := codemodel.NewFileBuilder("p").AddClass(class).Build()
	out := codemodel.Render(file)
	assert.Contains(t, out, "class FakeBase : com.example.Base(), com.example.Extra")
}

func TestRenderImportsAreSortedAndDeduped(t *testing.T) {
	file := codemodel.NewFileBuilder("p").
		AddImport("b.Thing").
		AddImport("a.Thing").
		AddImport("b.Thing").
		Build()
	out := codemodel.Render(file)
	aIdx := indexOf(out, "import a.Thing")
	bIdx := indexOf(out, "import b.Thing")
	require.True(t, aIdx >= 0 && bIdx >= 0)
	assert.Less(t, aIdx, bIdx)
	assert.Equal(t, 1, countOccurrences(out, "import b.Thing"))
}

func TestRenderPropertyWithInitializer(t *testing.T) {
	prop := codemodel.NewPropertyBuilder("callCount", codemodel.Simple("kotlin.Int")).
		WithMutable(true).
		WithInitializer(codemodel.CodeExpression{Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitNumber, LiteralText: "0"}).
		Build()
	class := codemodel.NewClassBuilder("FakeThing").WithProperty(prop).Build()
	file := codemodel.NewFileBuilder("p").AddClass(class).Build()
	out := codemodel.Render(file)
	assert.Contains(t, out, "var callCount: kotlin.Int = 0")
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
			i += len(sub) - 1
		}
	}
	return count
}
