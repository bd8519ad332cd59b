// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faktgo/faktgo/codemodel"
	"github.com/faktgo/faktgo/generator"
	"github.com/faktgo/faktgo/metadata"
)

func TestGenerateSimpleInterface(t *testing.T) {
	decl := metadata.ValidatedDeclaration{
		Kind: metadata.KindInterface, FQN: "com/example/Greeter",
		SimpleName: "Greeter", Package: "com.example",
		Functions: []metadata.FunctionInfo{{
			Name:           "greet",
			Parameters:     []metadata.ParameterInfo{{Name: "name", TypeText: "kotlin.String"}},
			ReturnTypeText: "kotlin.String",
		}},
	}

	file, metrics, err := generator.Generate(decl)
	require.NoError(t, err)
	assert.Equal(t, "FakeGreeterImpl", metrics.FakeName)
	assert.Equal(t, 1, metrics.MemberCount)
	assert.Equal(t, 0, metrics.UnresolvedCount)

	out := codemodel.Render(file)
	assert.Contains(t, out, "class FakeGreeterImpl : com.example.Greeter {")
	assert.Contains(t, out, `var greetBehavior: (kotlin.String) -> kotlin.String = { _ -> "" }`)
	assert.Contains(t, out, "_greetCallCount: java.util.concurrent.atomic.AtomicLong = AtomicLong(0)")
	assert.Contains(t, out, "override fun greet(name: kotlin.String): kotlin.String {")
	assert.Contains(t, out, "_greetCallCount.incrementAndGet()")
	assert.Contains(t, out, "return greetBehavior(name)")
	assert.Contains(t, out, "class FakeGreeterConfig(impl: FakeGreeterImpl) {")
	assert.Contains(t, out, "fun greet(behavior: (kotlin.String) -> kotlin.String) {")
	assert.Contains(t, out, "fun fakeGreeter(configure: FakeGreeterConfig.() -> kotlin.Unit = {}): Greeter {")
}

func TestGenerateOverloadsAreDisambiguated(t *testing.T) {
	decl := metadata.ValidatedDeclaration{
		Kind: metadata.KindInterface, FQN: "com/example/Repo", SimpleName: "Repo", Package: "com.example",
		Functions: []metadata.FunctionInfo{
			{Name: "find", ReturnTypeText: "kotlin.String"},
			{Name: "find", Parameters: []metadata.ParameterInfo{{Name: "id", TypeText: "kotlin.Int"}}, ReturnTypeText: "kotlin.String"},
		},
	}
	file, _, err := generator.Generate(decl)
	require.NoError(t, err)
	out := codemodel.Render(file)
	assert.Contains(t, out, "findBehavior")
	assert.Contains(t, out, "find2Behavior")
	assert.Contains(t, out, "_findCallCount")
	assert.Contains(t, out, "_find2CallCount")
}

func TestGenerateUnresolvableDefaultProducesNullableFieldAndErrorFallback(t *testing.T) {
	decl := metadata.ValidatedDeclaration{
		Kind: metadata.KindInterface, FQN: "com/example/Repo", SimpleName: "Repo", Package: "com.example",
		Functions: []metadata.FunctionInfo{
			{Name: "load", ReturnTypeText: "com.example.Widget"},
		},
	}
	file, metrics, err := generator.Generate(decl)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.UnresolvedCount)
	out := codemodel.Render(file)
	assert.Contains(t, out, "var loadBehavior: (() -> com.example.Widget)? = null\n")
	assert.Contains(t, out, `loadBehavior?.invoke() ?: error("loadBehavior not configured")`)
}

func TestGenerateClassFormOpenMemberFallsBackToSuper(t *testing.T) {
	decl := metadata.ValidatedDeclaration{
		Kind: metadata.KindClass, FQN: "com/example/Base", SimpleName: "Base", Package: "com.example",
		OpenMethods: []metadata.FunctionInfo{{Name: "describe", ReturnTypeText: "kotlin.String"}},
	}
	file, _, err := generator.Generate(decl)
	require.NoError(t, err)
	out := codemodel.Render(file)
	assert.Contains(t, out, "class FakeBaseImpl : com.example.Base() {")
	assert.Contains(t, out, "var describeBehavior: (() -> kotlin.String)? = null")
	assert.Contains(t, out, "describeBehavior?.invoke() ?: super.describe()")
}

func TestGenerateInterfacePropertyProducesBehaviorFieldAndOverride(t *testing.T) {
	decl := metadata.ValidatedDeclaration{
		Kind: metadata.KindInterface, FQN: "com/example/Settings", SimpleName: "Settings", Package: "com.example",
		Properties: []metadata.PropertyInfo{{Name: "timeout", TypeText: "kotlin.Int"}},
	}
	file, metrics, err := generator.Generate(decl)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.MemberCount)

	out := codemodel.Render(file)
	assert.Contains(t, out, "var timeoutBehavior: () -> kotlin.Int = { 0 }")
	assert.Contains(t, out, "_timeoutCallCount: java.util.concurrent.atomic.AtomicLong = AtomicLong(0)")
	assert.Contains(t, out, "override val timeout: kotlin.Int")
	assert.Contains(t, out, "_timeoutCallCount.incrementAndGet()")
	assert.Contains(t, out, "return timeoutBehavior()")
	assert.Contains(t, out, "fun timeout(behavior: () -> kotlin.Int) {")
}

func TestGenerateClassFormOpenPropertyFallsBackToSuper(t *testing.T) {
	decl := metadata.ValidatedDeclaration{
		Kind: metadata.KindClass, FQN: "com/example/Base", SimpleName: "Base", Package: "com.example",
		OpenProperties: []metadata.PropertyInfo{{Name: "label", TypeText: "kotlin.String"}},
	}
	file, _, err := generator.Generate(decl)
	require.NoError(t, err)
	out := codemodel.Render(file)
	assert.Contains(t, out, "var labelBehavior: (() -> kotlin.String)? = null")
	assert.Contains(t, out, "override val label: kotlin.String")
	assert.Contains(t, out, "labelBehavior?.invoke() ?: super.label")
}

func TestGenerateUnresolvablePropertyProducesNullableFieldAndErrorFallback(t *testing.T) {
	decl := metadata.ValidatedDeclaration{
		Kind: metadata.KindInterface, FQN: "com/example/Repo", SimpleName: "Repo", Package: "com.example",
		Properties: []metadata.PropertyInfo{{Name: "widget", TypeText: "com.example.Widget"}},
	}
	file, metrics, err := generator.Generate(decl)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.UnresolvedCount)
	out := codemodel.Render(file)
	assert.Contains(t, out, "var widgetBehavior: (() -> com.example.Widget)? = null")
	assert.Contains(t, out, `widgetBehavior?.invoke() ?: error("widgetBehavior not configured")`)
}

func TestGenerateClassFormForwardsConstructorParameters(t *testing.T) {
	decl := metadata.ValidatedDeclaration{
		Kind: metadata.KindClass, FQN: "com/example/Base", SimpleName: "Base", Package: "com.example",
		PrimaryConstructorParameters: []metadata.ParameterInfo{{Name: "id", TypeText: "kotlin.Int"}},
		AbstractMethods:              []metadata.FunctionInfo{{Name: "run", ReturnTypeText: "kotlin.Unit"}},
	}
	file, _, err := generator.Generate(decl)
	require.NoError(t, err)
	out := codemodel.Render(file)
	assert.Contains(t, out, "class FakeBaseImpl(id: kotlin.Int) : com.example.Base(id) {")
	assert.Contains(t, out, "fun fakeBase(id: kotlin.Int, configure: FakeBaseConfig.() -> kotlin.Unit = {}): Base {")
	assert.Contains(t, out, "val impl = FakeBaseImpl(id)")
}

func TestOutputPathUsesPackagePath(t *testing.T) {
	decl := metadata.ValidatedDeclaration{SimpleName: "Greeter", Package: "com.example.api"}
	path := generator.OutputPath("/out", decl)
	assert.Contains(t, path, "com")
	assert.Contains(t, path, "FakeGreeterImpl.kt")
}

func TestMemWriterRecordsRenderedContent(t *testing.T) {
	decl := metadata.ValidatedDeclaration{
		Kind: metadata.KindInterface, SimpleName: "Greeter", Package: "com.example",
		Functions: []metadata.FunctionInfo{{Name: "greet", ReturnTypeText: "kotlin.Unit"}},
	}
	file, _, err := generator.Generate(decl)
	require.NoError(t, err)

	w := generator.NewMemWriter()
	path, err := w.Write("/out", decl, file)
	require.NoError(t, err)
	assert.Contains(t, w.Files[path], "class FakeGreeterImpl")
}
