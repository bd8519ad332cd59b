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

func TestParseTypeSimple(t *testing.T) {
	ty, err := codemodel.ParseType("kotlin.String")
	require.NoError(t, err)
	assert.Equal(t, codemodel.Simple("kotlin.String"), ty)
}

func TestParseTypeNullableSimple(t *testing.T) {
	ty, err := codemodel.ParseType("kotlin.String?")
	require.NoError(t, err)
	assert.Equal(t, codemodel.Nullable(codemodel.Simple("kotlin.String")), ty)
}

func TestParseTypeGenericSingleArg(t *testing.T) {
	ty, err := codemodel.ParseType("kotlin.collections.List<kotlin.Int>")
	require.NoError(t, err)
	assert.Equal(t, codemodel.Generic("kotlin.collections.List", codemodel.Simple("kotlin.Int")), ty)
}

func TestParseTypeGenericNested(t *testing.T) {
	ty, err := codemodel.ParseType("kotlin.collections.Map<kotlin.String, kotlin.collections.List<kotlin.Int>>")
	require.NoError(t, err)
	want := codemodel.Generic("kotlin.collections.Map",
		codemodel.Simple("kotlin.String"),
		codemodel.Generic("kotlin.collections.List", codemodel.Simple("kotlin.Int")),
	)
	assert.Equal(t, want, ty)
}

func TestParseTypeNullableGeneric(t *testing.T) {
	ty, err := codemodel.ParseType("kotlin.collections.List<kotlin.String>?")
	require.NoError(t, err)
	assert.Equal(t, codemodel.Nullable(codemodel.Generic("kotlin.collections.List", codemodel.Simple("kotlin.String"))), ty)
}

func TestParseTypeGenericWithNullableArg(t *testing.T) {
	ty, err := codemodel.ParseType("kotlin.collections.List<kotlin.String?>")
	require.NoError(t, err)
	want := codemodel.Generic("kotlin.collections.List", codemodel.Nullable(codemodel.Simple("kotlin.String")))
	assert.Equal(t, want, ty)
}

func TestParseTypeThreeArgsAtTopLevel(t *testing.T) {
	ty, err := codemodel.ParseType("Triple<kotlin.Int, kotlin.String, kotlin.Boolean>")
	require.NoError(t, err)
	require.Equal(t, codemodel.TypeGeneric, ty.Kind)
	assert.Len(t, ty.Args, 3)
}

func TestParseTypeEmptyIsError(t *testing.T) {
	_, err := codemodel.ParseType("")
	assert.Error(t, err)
}

func TestParseTypeUnterminatedGenericIsError(t *testing.T) {
	_, err := codemodel.ParseType("kotlin.collections.List<kotlin.Int")
	assert.Error(t, err)
}

func TestParseTypeUnbalancedCloseIsError(t *testing.T) {
	_, err := codemodel.ParseType("kotlin.collections.List<kotlin.Int>>")
	assert.Error(t, err)
}

// TestParseRenderRoundTrip exercises spec §8's universal renderer invariant:
// parsing a rendered CodeType and re-rendering it reproduces the same text.
func TestParseRenderRoundTrip(t *testing.T) {
	cases := []string{
		"kotlin.String",
		"kotlin.String?",
		"kotlin.collections.List<kotlin.Int>",
		"kotlin.collections.Map<kotlin.String, kotlin.collections.List<kotlin.Int>>",
		"kotlin.collections.List<kotlin.String>?",
		"kotlin.collections.List<kotlin.String?>",
		"Triple<kotlin.Int, kotlin.String, kotlin.Boolean>",
	}
	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			parsed, err := codemodel.ParseType(text)
			require.NoError(t, err)
			rendered := codemodel.RenderType(parsed)
			assert.Equal(t, text, rendered)

			reparsed, err := codemodel.ParseType(rendered)
			require.NoError(t, err)
			assert.Equal(t, parsed, reparsed)
		})
	}
}
