// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package defaults_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faktgo/faktgo/codemodel"
	"github.com/faktgo/faktgo/defaults"
)

func render(t *testing.T, r defaults.Result) string {
	t.Helper()
	return renderExprForTest(r.Expr)
}

// renderExprForTest renders an expression using the package's own renderer
// via a throwaway function body, since codemodel does not export a
// standalone expression renderer.
func renderExprForTest(e codemodel.CodeExpression) string {
	fn := codemodel.NewFunctionBuilder("x").WithExpressionBody(e).Build()
	file := codemodel.NewFileBuilder("p").AddFunction(fn).Build()
	out := codemodel.Render(file)
	// out looks like "fun x() = <expr>\n"
	const marker = " = "
	for i := 0; i+len(marker) <= len(out); i++ {
		if out[i:i+len(marker)] == marker {
			return out[i+len(marker) : len(out)-1]
		}
	}
	return out
}

func TestDefaultForPrimitives(t *testing.T) {
	cases := map[string]string{
		"kotlin.Int":     "0",
		"kotlin.Long":    "0L",
		"kotlin.Double":  "0.0",
		"kotlin.Boolean": "false",
	}
	for typeText, want := range cases {
		r, ok := defaults.For(typeText, nil)
		require.True(t, ok, typeText)
		assert.Equal(t, want, render(t, r), typeText)
	}
}

func TestDefaultForString(t *testing.T) {
	r, ok := defaults.For("kotlin.String", nil)
	require.True(t, ok)
	assert.Equal(t, `""`, render(t, r))
}

func TestDefaultForNullableIsAlwaysNull(t *testing.T) {
	r, ok := defaults.For("com.example.Widget?", nil)
	require.True(t, ok)
	assert.Equal(t, "null", render(t, r))
}

func TestDefaultForListIsEmptyList(t *testing.T) {
	r, ok := defaults.For("kotlin.collections.List<kotlin.String>", nil)
	require.True(t, ok)
	assert.Equal(t, "emptyList()", render(t, r))
}

func TestDefaultForResultWrapsInnerDefault(t *testing.T) {
	r, ok := defaults.For("kotlin.Result<kotlin.Int>", nil)
	require.True(t, ok)
	assert.Equal(t, "Result.success(0)", render(t, r))
}

func TestDefaultForFunctionTypeIsUnderscoreLambda(t *testing.T) {
	r, ok := defaults.For("(kotlin.String, kotlin.Int) -> kotlin.Boolean", nil)
	require.True(t, ok)
	assert.Equal(t, "{ _, _ -> false }", render(t, r))
}

func TestDefaultForUnresolvedTypeParameterNeedsUncheckedCast(t *testing.T) {
	r, ok := defaults.For("T", []string{"T"})
	require.True(t, ok)
	assert.True(t, r.NeedsUncheckedCast)
	assert.Equal(t, "null as T", render(t, r))
}

func TestDefaultForArbitraryNonNullableReferenceTypeIsUnresolvable(t *testing.T) {
	_, ok := defaults.For("com.example.Widget", nil)
	assert.False(t, ok)
}

func TestDefaultForUnitIsUnitLiteral(t *testing.T) {
	r, ok := defaults.For("kotlin.Unit", nil)
	require.True(t, ok)
	assert.Equal(t, "Unit", render(t, r))
}

func TestIsUnitLike(t *testing.T) {
	assert.True(t, defaults.IsUnitLike("kotlin.Unit"))
	assert.False(t, defaults.IsUnitLike("kotlin.String"))
}
