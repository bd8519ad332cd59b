// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package generator consumes a validated declaration and drives the
// code-model builders to produce a fake implementation, its configuration
// DSL, and a factory function (spec §4.7), then hands the result to a
// Writer.
//
// Grounded on the teacher's services/code_buddy/graph/builder.go
// (deterministic, source-order emission from a resolved symbol list) and
// services/code_buddy/diff/apply.go's file-writing conventions (atomic
// directory creation, explicit FileMode) for the Writer implementations.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faktgo/faktgo/codemodel"
	"github.com/faktgo/faktgo/defaults"
	"github.com/faktgo/faktgo/metadata"
)

const atomicCounterImport = "java.util.concurrent.atomic.AtomicLong"

// FileMetrics mirrors the per-fake row of spec §4.8's CompilationSummary.
type FileMetrics struct {
	FakeName        string
	GenericPattern  string // "concrete", "generic-interface", "generic-class"
	MemberCount     int
	GeneratedLines  int
	FileBytes       int
	ImportCount     int
	UnresolvedCount int // members whose default could not be resolved (spec §4.6 last row)
}

// Generate builds the complete CodeFile for decl: fake implementation,
// config DSL class, and factory function, in that order (spec §4.7).
func Generate(decl metadata.ValidatedDeclaration) (codemodel.CodeFile, FileMetrics, error) {
	g := &genContext{decl: decl, ownTypeParamNames: typeParamNames(decl.TypeParameters)}

	members, err := g.collectMembers()
	if err != nil {
		return codemodel.CodeFile{}, FileMetrics{}, err
	}
	propMembers := g.collectPropertyMembers()

	fakeName := "Fake" + decl.SimpleName + "Impl"
	configName := "Fake" + decl.SimpleName + "Config"
	factoryName := "fake" + decl.SimpleName

	subjectType := subjectTypeRef(decl)
	classSupertype := subjectType
	if decl.Package != "" {
		classSupertype.Name = decl.Package + "." + decl.SimpleName
	}

	class := g.buildFakeClass(fakeName, classSupertype, members, propMembers)
	config := g.buildConfigClass(configName, fakeName, members, propMembers)
	factory := g.buildFactory(factoryName, configName, subjectType, members)

	fb := codemodel.NewFileBuilder(decl.Package)
	for _, imp := range g.collectImports(members, propMembers) {
		fb.AddImport(imp)
	}
	fb.AddClass(class)
	fb.AddClass(config)
	fb.AddFunction(factory)
	file := fb.Build()

	rendered := codemodel.Render(file)
	metrics := FileMetrics{
		FakeName:        fakeName,
		GenericPattern:  genericPattern(decl),
		MemberCount:     len(members) + len(propMembers),
		GeneratedLines:  strings.Count(rendered, "\n"),
		FileBytes:       len(rendered),
		ImportCount:     len(file.Imports),
		UnresolvedCount: g.unresolvedCount,
	}
	return file, metrics, nil
}

// OutputPath computes the file path under outputDir that spec §4.7
// prescribes: <outputDir>/<package-path>/Fake<SimpleName>Impl.kt.
func OutputPath(outputDir string, decl metadata.ValidatedDeclaration) string {
	pkgPath := strings.ReplaceAll(decl.Package, ".", string(filepath.Separator))
	return filepath.Join(outputDir, pkgPath, "Fake"+decl.SimpleName+"Impl.kt")
}

// member is a function-shaped fakeable member, normalized from either
// interface functions or class abstract/open methods.
type member struct {
	fn           metadata.FunctionInfo
	exportedName string // disambiguated name, e.g. "foo", "foo2"
	openFallback bool   // class-form open member: nullable field, super fallback
	unresolvable bool   // default could not be synthesized: nullable field, error() fallback
	behaviorExpr codemodel.CodeExpression
	needsCast    bool
}

// propMember is a property-shaped fakeable member, normalized from either
// interface properties or class abstract/open properties. It mirrors member
// but its behavior field takes no parameters (spec §4.7: parameters "match
// the member's parameter list", which is empty for a property).
type propMember struct {
	prop         metadata.PropertyInfo
	exportedName string
	openFallback bool
	unresolvable bool
	behaviorExpr codemodel.CodeExpression
	needsCast    bool
}

type genContext struct {
	decl              metadata.ValidatedDeclaration
	ownTypeParamNames []string
	unresolvedCount   int
}

func typeParamNames(tps []metadata.TypeParameterInfo) []string {
	out := make([]string, len(tps))
	for i, tp := range tps {
		out[i] = tp.Name
	}
	return out
}

func (g *genContext) collectMembers() ([]member, error) {
	var fns []metadata.FunctionInfo
	var openSet map[string]bool

	if g.decl.Kind == metadata.KindClass {
		fns = g.decl.AllClassMethods()
		openSet = make(map[string]bool, len(g.decl.OpenMethods))
		for _, f := range g.decl.OpenMethods {
			openSet[f.Signature()] = true
		}
	} else {
		fns = g.decl.AllInterfaceFunctions()
		openSet = map[string]bool{}
	}

	nameCount := map[string]int{}
	members := make([]member, 0, len(fns))
	for _, fn := range fns {
		nameCount[fn.Name]++
		exported := fn.Name
		if n := nameCount[fn.Name]; n > 1 {
			exported = fmt.Sprintf("%s%d", fn.Name, n)
		}

		m := member{fn: fn, exportedName: exported, openFallback: openSet[fn.Signature()]}

		returnType := fn.ReturnTypeText
		if returnType == "" {
			returnType = "kotlin.Unit"
		}
		result, ok := defaults.For(returnType, g.ownTypeParamNames)
		if !ok {
			m.unresolvable = true
			g.unresolvedCount++
		} else {
			m.behaviorExpr = result.Expr
			m.needsCast = result.NeedsUncheckedCast
		}
		members = append(members, m)
	}
	return members, nil
}

// collectPropertyMembers is collectMembers' property-shaped counterpart,
// driven by AllClassProperties/AllInterfaceProperties (spec §4.6/§4.7 item 2).
func (g *genContext) collectPropertyMembers() []propMember {
	var props []metadata.PropertyInfo
	var openSet map[string]bool

	if g.decl.Kind == metadata.KindClass {
		props = g.decl.AllClassProperties()
		openSet = make(map[string]bool, len(g.decl.OpenProperties))
		for _, p := range g.decl.OpenProperties {
			openSet[p.Name] = true
		}
	} else {
		props = g.decl.AllInterfaceProperties()
		openSet = map[string]bool{}
	}

	nameCount := map[string]int{}
	members := make([]propMember, 0, len(props))
	for _, p := range props {
		nameCount[p.Name]++
		exported := p.Name
		if n := nameCount[p.Name]; n > 1 {
			exported = fmt.Sprintf("%s%d", p.Name, n)
		}

		pm := propMember{prop: p, exportedName: exported, openFallback: openSet[p.Name]}

		result, ok := defaults.For(p.TypeText, g.ownTypeParamNames)
		if !ok {
			pm.unresolvable = true
			g.unresolvedCount++
		} else {
			pm.behaviorExpr = result.Expr
			pm.needsCast = result.NeedsUncheckedCast
		}
		members = append(members, pm)
	}
	return members
}

func subjectTypeRef(decl metadata.ValidatedDeclaration) codemodel.CodeType {
	if len(decl.TypeParameters) == 0 {
		return codemodel.Simple(decl.SimpleName)
	}
	args := make([]codemodel.CodeType, len(decl.TypeParameters))
	for i, tp := range decl.TypeParameters {
		args[i] = codemodel.Simple(tp.Name)
	}
	return codemodel.Generic(decl.SimpleName, args...)
}

func genericPattern(decl metadata.ValidatedDeclaration) string {
	if len(decl.TypeParameters) == 0 {
		return "concrete"
	}
	if decl.Kind == metadata.KindClass {
		return "generic-class"
	}
	return "generic-interface"
}

func codeTypeParams(tps []metadata.TypeParameterInfo) []codemodel.CodeTypeParameter {
	out := make([]codemodel.CodeTypeParameter, len(tps))
	for i, tp := range tps {
		bounds := make([]codemodel.CodeType, 0, len(tp.Bounds))
		for _, b := range tp.Bounds {
			if ty, err := codemodel.ParseType(b); err == nil {
				bounds = append(bounds, ty)
			}
		}
		out[i] = codemodel.CodeTypeParameter{Name: tp.Name, Bounds: bounds}
	}
	return out
}

func codeParams(ps []metadata.ParameterInfo) []codemodel.CodeParameter {
	out := make([]codemodel.CodeParameter, len(ps))
	for i, p := range ps {
		ty, err := codemodel.ParseType(p.TypeText)
		if err != nil {
			ty = codemodel.Simple(p.TypeText)
		}
		out[i] = codemodel.CodeParameter{
			Name:         p.Name,
			Type:         ty,
			DefaultValue: p.DefaultValueSnippet,
			Vararg:       p.Variadic,
		}
	}
	return out
}

func parseReturnType(text string) codemodel.CodeType {
	if text == "" {
		return codemodel.Simple("kotlin.Unit")
	}
	ty, err := codemodel.ParseType(text)
	if err != nil {
		return codemodel.Simple(text)
	}
	return ty
}

func behaviorFieldName(m member) string { return m.exportedName + "Behavior" }
func counterFieldName(m member) string  { return "_" + m.exportedName + "CallCount" }
func counterViewName(m member) string   { return m.exportedName + "CallCount" }

func propBehaviorFieldName(pm propMember) string { return pm.exportedName + "Behavior" }
func propCounterFieldName(pm propMember) string  { return "_" + pm.exportedName + "CallCount" }
func propCounterViewName(pm propMember) string   { return pm.exportedName + "CallCount" }

func lambdaType(fn metadata.FunctionInfo) codemodel.CodeType {
	params := make([]codemodel.CodeType, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = parseReturnType(p.TypeText)
	}
	return codemodel.Lambda(fn.Suspend, parseReturnType(fn.ReturnTypeText), params...)
}

// propertyLambdaType is lambdaType's property-shaped counterpart: a property
// behavior field takes no parameters.
func propertyLambdaType(p metadata.PropertyInfo) codemodel.CodeType {
	return codemodel.Lambda(false, parseReturnType(p.TypeText))
}

func newCounterFieldProperty(fieldName string) codemodel.CodeProperty {
	return codemodel.NewPropertyBuilder(fieldName, codemodel.Simple("java.util.concurrent.atomic.AtomicLong")).
		WithInitializer(codemodel.CodeExpression{Kind: codemodel.ExprCall, Callee: "AtomicLong", Args: []codemodel.CodeExpression{{Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitNumber, LiteralText: "0"}}}).
		Build()
}

func newCounterViewProperty(viewName, fieldName string) codemodel.CodeProperty {
	return codemodel.CodeProperty{
		Name:   viewName,
		Type:   codemodel.Simple("kotlin.Long"),
		Getter: &codemodel.CodeBlock{Expr: ptrExpr(codemodel.CodeExpression{Kind: codemodel.ExprCall, Callee: fieldName + ".get"})},
	}
}

func (g *genContext) buildFakeClass(name string, subject codemodel.CodeType, members []member, propMembers []propMember) codemodel.CodeClass {
	cb := codemodel.NewClassBuilder(name).
		WithModifiers(codemodel.ModPublic).
		WithTypeParameters(codeTypeParams(g.decl.TypeParameters)...)

	if g.decl.Kind == metadata.KindClass {
		cb.WithPrimaryConstructorParams(codeParams(g.decl.PrimaryConstructorParameters)...)
		cb.WithSuperclassCall(subject)
	} else {
		cb.WithInterface(subject)
	}

	for _, m := range members {
		lt := lambdaType(m.fn)
		nullable := m.openFallback || m.unresolvable

		pb := codemodel.NewPropertyBuilder(behaviorFieldName(m), fieldType(lt, nullable)).
			WithMutable(true)
		if nullable {
			pb = pb.WithInitializer(codemodel.CodeExpression{Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitNull})
		} else {
			pb = pb.WithInitializer(wrapAsBehaviorLambda(m))
		}
		cb.WithProperty(pb.Build())
		cb.WithProperty(newCounterFieldProperty(counterFieldName(m)))
		cb.WithProperty(newCounterViewProperty(counterViewName(m), counterFieldName(m)))
		cb.WithFunction(g.buildOverride(m))
	}

	for _, pm := range propMembers {
		lt := propertyLambdaType(pm.prop)
		nullable := pm.openFallback || pm.unresolvable

		pb := codemodel.NewPropertyBuilder(propBehaviorFieldName(pm), fieldType(lt, nullable)).
			WithMutable(true)
		if nullable {
			pb = pb.WithInitializer(codemodel.CodeExpression{Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitNull})
		} else {
			pb = pb.WithInitializer(wrapAsPropertyBehaviorLambda(pm))
		}
		cb.WithProperty(pb.Build())
		cb.WithProperty(newCounterFieldProperty(propCounterFieldName(pm)))
		cb.WithProperty(newCounterViewProperty(propCounterViewName(pm), propCounterFieldName(pm)))
		cb.WithProperty(g.buildPropertyOverride(pm))
	}
	return cb.Build()
}

// wrapAsBehaviorLambda wraps a member's resolved default-value expression
// (the default for its *return* type) into a lambda matching the behavior
// field's function-type shape, with every parameter ignored via "_" — the
// default expression never depends on the arguments it's called with.
func wrapAsBehaviorLambda(m member) codemodel.CodeExpression {
	params := make([]string, len(m.fn.Parameters))
	for i := range params {
		params[i] = "_"
	}
	body := m.behaviorExpr
	return codemodel.CodeExpression{
		Kind:          codemodel.ExprLambda,
		LambdaParams:  params,
		LambdaBody:    &codemodel.CodeBlock{Expr: &body},
		LambdaSuspend: m.fn.Suspend,
	}
}

// wrapAsPropertyBehaviorLambda is wrapAsBehaviorLambda's property-shaped
// counterpart: the lambda takes no parameters.
func wrapAsPropertyBehaviorLambda(pm propMember) codemodel.CodeExpression {
	body := pm.behaviorExpr
	return codemodel.CodeExpression{
		Kind:       codemodel.ExprLambda,
		LambdaBody: &codemodel.CodeBlock{Expr: &body},
	}
}

func fieldType(lt codemodel.CodeType, nullable bool) codemodel.CodeType {
	if nullable {
		return codemodel.Nullable(lt)
	}
	return lt
}

func ptrExpr(e codemodel.CodeExpression) *codemodel.CodeExpression { return &e }

func (g *genContext) buildOverride(m member) codemodel.CodeFunction {
	mods := []codemodel.CodeModifier{codemodel.ModOverride}
	if m.fn.Suspend {
		mods = append(mods, codemodel.ModSuspend)
	}
	if m.needsCast {
		mods = append([]codemodel.CodeModifier{`@Suppress("UNCHECKED_CAST")`}, mods...)
	}

	args := make([]codemodel.CodeExpression, len(m.fn.Parameters))
	for i, p := range m.fn.Parameters {
		args[i] = codemodel.CodeExpression{Kind: codemodel.ExprNameRef, Name: p.Name}
	}

	var resultExpr codemodel.CodeExpression
	switch {
	case m.openFallback:
		safeInvoke := behaviorFieldName(m) + "?.invoke(" + joinRendered(args) + ")"
		superCall := codemodel.CodeExpression{Kind: codemodel.ExprCall, Callee: "super." + m.fn.Name, Args: args}
		resultExpr = codemodel.CodeExpression{
			Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitRaw,
			LiteralText: safeInvoke + " ?: " + renderInline(superCall),
		}
	case m.unresolvable:
		safeInvoke := behaviorFieldName(m) + "?.invoke(" + joinRendered(args) + ")"
		errCall := codemodel.CodeExpression{Kind: codemodel.ExprCall, Callee: "error", Args: []codemodel.CodeExpression{
			{Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitString, LiteralText: behaviorFieldName(m) + " not configured"},
		}}
		resultExpr = codemodel.CodeExpression{
			Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitRaw,
			LiteralText: safeInvoke + " ?: " + renderInline(errCall),
		}
	default:
		resultExpr = codemodel.CodeExpression{Kind: codemodel.ExprCall, Callee: behaviorFieldName(m), Args: args}
	}

	fb := codemodel.NewFunctionBuilder(m.fn.Name).
		WithModifiers(mods...).
		WithParameters(codeParams(m.fn.Parameters)...).
		WithReturnType(parseReturnType(m.fn.ReturnTypeText)).
		WithSuspend(m.fn.Suspend).
		WithBlockBody(counterFieldName(m)+".incrementAndGet()", "return "+renderInline(resultExpr))

	return fb.Build()
}

// buildPropertyOverride is buildOverride's property-shaped counterpart: an
// `override val` with a get() block that increments the call counter then
// returns the resolved behavior, invoked safely (`?.invoke()`) when the
// field is nullable (spec §8 scenario 4).
func (g *genContext) buildPropertyOverride(pm propMember) codemodel.CodeProperty {
	var resultExpr codemodel.CodeExpression
	switch {
	case pm.openFallback:
		safeInvoke := propBehaviorFieldName(pm) + "?.invoke()"
		superCall := codemodel.CodeExpression{Kind: codemodel.ExprPropertyAccess, Receiver: &codemodel.CodeExpression{Kind: codemodel.ExprNameRef, Name: "super"}, Property: pm.prop.Name}
		resultExpr = codemodel.CodeExpression{
			Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitRaw,
			LiteralText: safeInvoke + " ?: " + renderInline(superCall),
		}
	case pm.unresolvable:
		safeInvoke := propBehaviorFieldName(pm) + "?.invoke()"
		errCall := codemodel.CodeExpression{Kind: codemodel.ExprCall, Callee: "error", Args: []codemodel.CodeExpression{
			{Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitString, LiteralText: propBehaviorFieldName(pm) + " not configured"},
		}}
		resultExpr = codemodel.CodeExpression{
			Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitRaw,
			LiteralText: safeInvoke + " ?: " + renderInline(errCall),
		}
	default:
		resultExpr = codemodel.CodeExpression{Kind: codemodel.ExprCall, Callee: propBehaviorFieldName(pm)}
	}

	mods := []codemodel.CodeModifier{codemodel.ModOverride}
	if pm.needsCast {
		mods = append([]codemodel.CodeModifier{`@Suppress("UNCHECKED_CAST")`}, mods...)
	}

	pb := codemodel.NewPropertyBuilder(pm.prop.Name, parsePropertyType(pm.prop)).
		WithModifiers(mods...).
		WithGetter(codemodel.CodeBlock{
			Statements: []string{propCounterFieldName(pm) + ".incrementAndGet()"},
			Expr:       ptrExpr(resultExpr),
		})
	return pb.Build()
}

// parsePropertyType resolves a property's declared type text the same way
// parseReturnType resolves a function's, defaulting is unneeded since a
// property always carries a concrete type.
func parsePropertyType(p metadata.PropertyInfo) codemodel.CodeType {
	return parseReturnType(p.TypeText)
}

// joinRendered renders each arg and joins them as a call's argument list.
func joinRendered(args []codemodel.CodeExpression) string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = renderInline(a)
	}
	return strings.Join(out, ", ")
}

// renderInline renders a single expression to source text without a
// surrounding declaration, by delegating to codemodel.Render on a throwaway
// expression-bodied function and stripping the wrapper.
func renderInline(e codemodel.CodeExpression) string {
	fn := codemodel.NewFunctionBuilder("x").WithExpressionBody(e).Build()
	file := codemodel.NewFileBuilder("p").AddFunction(fn).Build()
	out := codemodel.Render(file)
	const marker = " = "
	for i := 0; i+len(marker) <= len(out); i++ {
		if out[i:i+len(marker)] == marker {
			return strings.TrimSuffix(out[i+len(marker):], "\n")
		}
	}
	return out
}

func (g *genContext) buildConfigClass(configName, fakeName string, members []member, propMembers []propMember) codemodel.CodeClass {
	cb := codemodel.NewClassBuilder(configName).
		WithModifiers(codemodel.ModPublic).
		WithPrimaryConstructorParams(codemodel.CodeParameter{Name: "impl", Type: codemodel.Simple(fakeName)})

	for _, m := range members {
		lt := lambdaType(m.fn)
		setter := codemodel.NewFunctionBuilder(m.exportedName).
			WithParameters(codemodel.CodeParameter{Name: "behavior", Type: lt}).
			WithBlockBody(fmt.Sprintf("impl.%s = behavior", behaviorFieldName(m))).
			Build()
		cb.WithFunction(setter)
	}
	for _, pm := range propMembers {
		lt := propertyLambdaType(pm.prop)
		setter := codemodel.NewFunctionBuilder(pm.exportedName).
			WithParameters(codemodel.CodeParameter{Name: "behavior", Type: lt}).
			WithBlockBody(fmt.Sprintf("impl.%s = behavior", propBehaviorFieldName(pm))).
			Build()
		cb.WithFunction(setter)
	}
	return cb.Build()
}

func (g *genContext) buildFactory(factoryName, configName string, subject codemodel.CodeType, members []member) codemodel.CodeFunction {
	// A lambda-with-receiver type ("Config.() -> Unit") has no dedicated
	// CodeType variant; it renders correctly as a Simple type since
	// RenderType(Simple) emits its Name verbatim.
	configureParamType := codemodel.Simple(configName + ".() -> kotlin.Unit")

	ctorArgs := make([]codemodel.CodeExpression, 0)
	var ctorParams []codemodel.CodeParameter
	if g.decl.Kind == metadata.KindClass {
		ctorParams = codeParams(g.decl.PrimaryConstructorParameters)
		for _, p := range g.decl.PrimaryConstructorParameters {
			ctorArgs = append(ctorArgs, codemodel.CodeExpression{Kind: codemodel.ExprNameRef, Name: p.Name})
		}
	}

	implClassName := "Fake" + g.decl.SimpleName + "Impl"
	newArgs := make([]string, len(ctorArgs))
	for i, a := range ctorArgs {
		newArgs[i] = renderInline(a)
	}
	implConstruction := fmt.Sprintf("%s(%s)", implClassName, strings.Join(newArgs, ", "))

	statements := []string{
		fmt.Sprintf("val impl = %s", implConstruction),
		fmt.Sprintf("%s(impl).apply(configure)", configName),
		"return impl",
	}

	params := append([]codemodel.CodeParameter{}, ctorParams...)
	params = append(params, codemodel.CodeParameter{
		Name:         "configure",
		Type:         configureParamType,
		DefaultValue: "{}",
	})

	fb := codemodel.NewFunctionBuilder(factoryName).
		WithModifiers(codemodel.ModPublic).
		WithTypeParameters(codeTypeParams(g.decl.TypeParameters)...).
		WithParameters(params...).
		WithReturnType(subject).
		WithBlockBody(statements...)
	return fb.Build()
}

// collectImports gathers the fully-qualified names the generated file
// references. A suspend member's behavior default is a suspend lambda
// wrapping a plain value expression (defaults.For's splitLambdaShape
// branch) — it never constructs or receives a CoroutineScope, so no
// coroutines import is added for it.
func (g *genContext) collectImports(members []member, propMembers []propMember) []string {
	set := map[string]struct{}{}
	add := func(text string) {
		root := rootName(text)
		if root == "" || strings.HasPrefix(root, "kotlin.") || root == g.decl.Package {
			return
		}
		set[root] = struct{}{}
	}

	add(g.decl.Package + "." + g.decl.SimpleName)
	for _, p := range g.decl.PrimaryConstructorParameters {
		add(p.TypeText)
	}
	for _, m := range members {
		add(m.fn.ReturnTypeText)
		for _, p := range m.fn.Parameters {
			add(p.TypeText)
		}
	}
	for _, pm := range propMembers {
		add(pm.prop.TypeText)
	}
	if len(members) > 0 || len(propMembers) > 0 {
		set[atomicCounterImport] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// rootName extracts the outermost dotted type name from a type-text
// expression, stripping generic arguments and the nullable marker, so it
// can be compared against the declaration's own package.
func rootName(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "?")
	if idx := strings.IndexByte(text, '<'); idx >= 0 {
		text = text[:idx]
	}
	if !strings.Contains(text, ".") {
		return ""
	}
	return text
}

// Writer persists a generated CodeFile to its destination.
type Writer interface {
	Write(outputDir string, decl metadata.ValidatedDeclaration, file codemodel.CodeFile) (string, error)
}

// FSWriter writes generated files to the local filesystem, creating parent
// directories as needed.
type FSWriter struct {
	FileMode os.FileMode
	DirMode  os.FileMode
}

// NewFSWriter returns an FSWriter with the teacher's conventional modes
// (0644 files, 0755 directories).
func NewFSWriter() *FSWriter {
	return &FSWriter{FileMode: 0644, DirMode: 0755}
}

func (w *FSWriter) Write(outputDir string, decl metadata.ValidatedDeclaration, file codemodel.CodeFile) (string, error) {
	path := OutputPath(outputDir, decl)
	dirMode := w.DirMode
	if dirMode == 0 {
		dirMode = 0755
	}
	fileMode := w.FileMode
	if fileMode == 0 {
		fileMode = 0644
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return "", fmt.Errorf("generator: creating output directory: %w", err)
	}
	content := codemodel.Render(file)
	if err := os.WriteFile(path, []byte(content), fileMode); err != nil {
		return "", fmt.Errorf("generator: writing %s: %w", path, err)
	}
	return path, nil
}

// MemWriter accumulates generated files in memory, keyed by their would-be
// output path. Used by tests and by callers that want to inspect output
// before committing it to disk.
type MemWriter struct {
	Files map[string]string
}

// NewMemWriter returns an empty MemWriter.
func NewMemWriter() *MemWriter {
	return &MemWriter{Files: make(map[string]string)}
}

func (w *MemWriter) Write(outputDir string, decl metadata.ValidatedDeclaration, file codemodel.CodeFile) (string, error) {
	path := OutputPath(outputDir, decl)
	w.Files[path] = codemodel.Render(file)
	return path, nil
}
