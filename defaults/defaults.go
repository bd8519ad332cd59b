// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package defaults implements the Default-Value Strategy (spec §4.6): a
// dispatch table from a declared type's textual form to a syntactic
// expression that is a legal placeholder for it, used to initialize a
// behavior field when the caller configures none.
//
// Grounded on the type-name-to-codegen-branch dispatch table in
// other_examples/lestrrat-go-json-schema's validator generator (a switch over
// JSON Schema "type" keywords, each branch emitting a different Go
// expression) — here the switch is over normalized Kotlin type text instead.
package defaults

import (
	"strings"

	"github.com/faktgo/faktgo/codemodel"
)

// Result is the outcome of resolving a default expression for one type.
type Result struct {
	Expr codemodel.CodeExpression
	// NeedsUncheckedCast is true when the expression requires an
	// `@Suppress("UNCHECKED_CAST")` annotation on the member that uses it
	// (unresolved generic type-parameter branch, spec §4.6 row 9).
	NeedsUncheckedCast bool
}

var primitiveZero = map[string]string{
	"kotlin.Int":    "0",
	"kotlin.Long":   "0L",
	"kotlin.Short":  "0",
	"kotlin.Byte":   "0",
	"kotlin.Float":  "0.0f",
	"kotlin.Double": "0.0",
	"kotlin.Char":   "'\\u0000'",
}

var emptyContainer = map[string]string{
	"kotlin.collections.List":        "emptyList()",
	"kotlin.collections.MutableList": "mutableListOf()",
	"kotlin.collections.Set":         "emptySet()",
	"kotlin.collections.MutableSet":  "mutableSetOf()",
	"kotlin.collections.Map":         "emptyMap()",
	"kotlin.collections.MutableMap":  "mutableMapOf()",
	"kotlin.Array":                   "emptyArray()",
}

// For resolves the default expression for typeText against the declaration's
// own type-parameter names (so an unresolved generic type parameter can be
// distinguished from an ordinary unresolvable reference type). ok is false
// only for the "UnresolvableDefault" terminal case (spec §4.6 last row),
// which the caller must surface as skipped behavior backing.
//
// typeText may use function-type syntax ("(A, B) -> R", optionally
// "suspend"-prefixed) — a shape codemodel.ParseType does not cover, since
// its grammar (spec §4.5) is deliberately limited to Generic|Simple. That
// shape is recognized here directly, ahead of handing the remainder to
// codemodel.ParseType.
func For(typeText string, ownTypeParams []string) (Result, bool) {
	text := strings.TrimSpace(typeText)
	if strings.HasSuffix(text, "?") {
		return Result{Expr: nullLiteral()}, true
	}

	if suspend, paramCount, returnText, ok := splitLambdaShape(text); ok {
		inner, ok := For(returnText, ownTypeParams)
		if !ok {
			inner = Result{Expr: nullLiteral()}
		}
		params := make([]string, paramCount)
		for i := range params {
			params[i] = "_"
		}
		return Result{Expr: codemodel.CodeExpression{
			Kind:          codemodel.ExprLambda,
			LambdaParams:  params,
			LambdaBody:    &codemodel.CodeBlock{Expr: &inner.Expr},
			LambdaSuspend: suspend,
		}}, true
	}

	ty, err := codemodel.ParseType(text)
	if err != nil {
		return Result{}, false
	}
	return forType(ty, ownTypeParams)
}

func forType(ty codemodel.CodeType, ownTypeParams []string) (Result, bool) {
	switch ty.Kind {
	case codemodel.TypeNullable:
		return Result{Expr: nullLiteral()}, true
	case codemodel.TypeGeneric:
		return forGeneric(ty, ownTypeParams)
	case codemodel.TypeSimple:
		return forSimple(ty.Name, ownTypeParams)
	default:
		return Result{}, false
	}
}

// splitLambdaShape recognizes "[suspend ](P1, P2, ...) -> R" and reports the
// parameter count and return-type text. ok is false for any text that isn't
// shaped like a function type.
func splitLambdaShape(text string) (suspend bool, paramCount int, returnText string, ok bool) {
	t := text
	if strings.HasPrefix(t, "suspend ") {
		suspend = true
		t = strings.TrimSpace(t[len("suspend "):])
	}
	if !strings.HasPrefix(t, "(") {
		return false, 0, "", false
	}

	depth := 0
	closeIdx := -1
	for i, r := range t {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return false, 0, "", false
	}

	paramsText := strings.TrimSpace(t[1:closeIdx])
	rest := strings.TrimSpace(t[closeIdx+1:])
	if !strings.HasPrefix(rest, "->") {
		return false, 0, "", false
	}
	returnText = strings.TrimSpace(rest[2:])

	if paramsText == "" {
		return suspend, 0, returnText, true
	}
	return suspend, len(splitTopLevelCommas(paramsText)), returnText, true
}

// splitTopLevelCommas splits on commas outside angle-bracket nesting, mirroring
// codemodel's type-argument splitting rule for the parameter-list portion of
// a function-type text.
func splitTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

func forGeneric(ty codemodel.CodeType, ownTypeParams []string) (Result, bool) {
	if expr, ok := emptyContainer[ty.Name]; ok {
		return Result{Expr: rawExpr(expr)}, true
	}
	if ty.Name == "kotlin.Result" && len(ty.Args) == 1 {
		inner, ok := forType(ty.Args[0], ownTypeParams)
		if !ok {
			return Result{}, false
		}
		return Result{Expr: codemodel.CodeExpression{
			Kind:   codemodel.ExprCall,
			Callee: "Result.success",
			Args:   []codemodel.CodeExpression{inner.Expr},
		}}, true
	}
	// An arbitrary unrecognized generic reference type is treated like any
	// other arbitrary reference type: null if nullable (callers wrap with
	// TypeNullable before reaching here), else unresolvable.
	return Result{}, false
}

func forSimple(name string, ownTypeParams []string) (Result, bool) {
	if expr, ok := primitiveZero[name]; ok {
		return Result{Expr: rawExpr(expr)}, true
	}
	if name == "kotlin.Boolean" {
		return Result{Expr: codemodel.CodeExpression{Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitBool, LiteralText: "false"}}, true
	}
	if name == "kotlin.String" {
		return Result{Expr: codemodel.CodeExpression{Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitString, LiteralText: ""}}, true
	}
	if name == "kotlin.Unit" {
		return Result{Expr: rawExpr("Unit")}, true
	}
	for _, p := range ownTypeParams {
		if p == name {
			return forUnresolvedTypeParameter(name)
		}
	}
	// Arbitrary reference type, non-nullable (nullable form is intercepted
	// by forType's TypeNullable branch before reaching here): unresolvable.
	return Result{}, false
}

// forUnresolvedTypeParameter handles a bare reference to one of the
// declaration's own type parameters. It always emits `null as T` and sets
// NeedsUncheckedCast so the member gets an unchecked-cast suppression. The
// bound of the parameter is not inspected, and no helper identity function
// is generated for non-nullable bounds.
func forUnresolvedTypeParameter(name string) (Result, bool) {
	return Result{
		Expr:               rawExpr("null as " + name),
		NeedsUncheckedCast: true,
	}, true
}

func rawExpr(text string) codemodel.CodeExpression {
	return codemodel.CodeExpression{Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitRaw, LiteralText: text}
}

func nullLiteral() codemodel.CodeExpression {
	return codemodel.CodeExpression{Kind: codemodel.ExprLiteral, LiteralKind: codemodel.LitNull}
}

// IsUnitLike reports whether typeText denotes Kotlin's Unit type, used by
// the generator to recognize the "unit-like" row without round-tripping
// through the full default-expression machinery.
func IsUnitLike(typeText string) bool {
	return strings.TrimSpace(typeText) == "kotlin.Unit"
}
