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

import (
	"sort"
	"strings"
)

const indentUnit = "    "

// Render turns an immutable CodeFile into UTF-8 source text: package
// declaration, then sorted and deduplicated imports, then declarations in
// the order supplied. Render is deterministic — two calls on an equal
// CodeFile produce byte-identical output. Simple, nullable and generic
// CodeTypes it writes round-trip through ParseType; function (lambda) types
// are not parsed back by ParseType.
func Render(f CodeFile) string {
	var b strings.Builder

	if f.Package != "" {
		b.WriteString("package ")
		b.WriteString(f.Package)
		b.WriteString("\n\n")
	}

	imports := dedupSorted(f.Imports)
	for _, imp := range imports {
		b.WriteString("import ")
		b.WriteString(imp)
		b.WriteString("\n")
	}
	if len(imports) > 0 {
		b.WriteString("\n")
	}

	for i, decl := range f.Declarations {
		if i > 0 {
			b.WriteString("\n")
		}
		renderDeclaration(&b, decl, 0)
	}
	return b.String()
}

func dedupSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func renderDeclaration(b *strings.Builder, d CodeDeclaration, depth int) {
	switch {
	case d.Class != nil:
		renderClass(b, *d.Class, depth)
	case d.Function != nil:
		renderFunction(b, *d.Function, depth)
	case d.Property != nil:
		renderProperty(b, *d.Property, depth)
	}
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}

// RenderType renders a CodeType back into the §4.5 grammar's text form.
func RenderType(t CodeType) string {
	switch t.Kind {
	case TypeSimple:
		return t.Name
	case TypeNullable:
		inner := RenderType(*t.Inner)
		if t.Inner.Kind == TypeLambda {
			return "(" + inner + ")?"
		}
		return inner + "?"
	case TypeGeneric:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = RenderType(a)
		}
		return t.Name + "<" + strings.Join(args, ", ") + ">"
	case TypeLambda:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = RenderType(p)
		}
		prefix := ""
		if t.Suspend {
			prefix = "suspend "
		}
		ret := ""
		if t.Return != nil {
			ret = RenderType(*t.Return)
		}
		return prefix + "(" + strings.Join(params, ", ") + ") -> " + ret
	default:
		return t.Name
	}
}

func renderModifiers(mods []CodeModifier) string {
	if len(mods) == 0 {
		return ""
	}
	parts := make([]string, len(mods))
	for i, m := range mods {
		parts[i] = string(m)
	}
	return strings.Join(parts, " ") + " "
}

func renderTypeParameters(tps []CodeTypeParameter) string {
	if len(tps) == 0 {
		return ""
	}
	parts := make([]string, len(tps))
	for i, tp := range tps {
		if len(tp.Bounds) == 0 {
			parts[i] = tp.Name
			continue
		}
		bounds := make([]string, len(tp.Bounds))
		for j, bnd := range tp.Bounds {
			bounds[j] = RenderType(bnd)
		}
		parts[i] = tp.Name + " : " + strings.Join(bounds, ", ")
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func renderParameters(params []CodeParameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		text := p.Name + ": "
		if p.Vararg {
			text = "vararg " + text
		}
		text += RenderType(p.Type)
		if p.DefaultValue != "" {
			text += " = " + p.DefaultValue
		}
		parts[i] = text
	}
	return strings.Join(parts, ", ")
}

func renderExpression(e CodeExpression) string {
	switch e.Kind {
	case ExprLiteral:
		switch e.LiteralKind {
		case LitString:
			return `"` + e.LiteralText + `"`
		case LitNull:
			return "null"
		case LitBool, LitNumber, LitRaw:
			return e.LiteralText
		default:
			return e.LiteralText
		}
	case ExprNameRef:
		return e.Name
	case ExprCall:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = renderExpression(a)
		}
		return e.Callee + "(" + strings.Join(args, ", ") + ")"
	case ExprPropertyAccess:
		dot := "."
		if e.Safe {
			dot = "?."
		}
		recv := ""
		if e.Receiver != nil {
			recv = renderExpression(*e.Receiver)
		}
		return recv + dot + e.Property
	case ExprLambda:
		prefix := ""
		if e.LambdaSuspend {
			prefix = "suspend "
		}
		params := ""
		if len(e.LambdaParams) > 0 {
			params = strings.Join(e.LambdaParams, ", ") + " -> "
		}
		body := ""
		if e.LambdaBody != nil {
			body = renderBlockInline(*e.LambdaBody)
		}
		return prefix + "{ " + params + body + " }"
	case ExprWhen:
		var b strings.Builder
		b.WriteString("when")
		if e.WhenSubject != nil {
			b.WriteString(" (")
			b.WriteString(renderExpression(*e.WhenSubject))
			b.WriteString(")")
		}
		b.WriteString(" {\n")
		for _, branch := range e.WhenBranches {
			b.WriteString(indentUnit)
			b.WriteString(branch.Condition)
			b.WriteString(" -> ")
			b.WriteString(renderExpression(branch.Result))
			b.WriteString("\n")
		}
		b.WriteString("}")
		return b.String()
	default:
		return ""
	}
}

func renderBlockInline(blk CodeBlock) string {
	if blk.Expr != nil {
		return renderExpression(*blk.Expr)
	}
	return strings.Join(blk.Statements, "; ")
}

func renderFunction(b *strings.Builder, fn CodeFunction, depth int) {
	indent(b, depth)
	b.WriteString(renderModifiers(fn.Modifiers))
	if fn.Suspend {
		b.WriteString("suspend ")
	}
	b.WriteString("fun ")
	b.WriteString(renderTypeParameters(fn.TypeParameters))
	if len(fn.TypeParameters) > 0 {
		b.WriteString(" ")
	}
	b.WriteString(fn.Name)
	b.WriteString("(")
	b.WriteString(renderParameters(fn.Parameters))
	b.WriteString(")")
	if fn.ReturnType != nil {
		b.WriteString(": ")
		b.WriteString(RenderType(*fn.ReturnType))
	}

	switch {
	case fn.Body == nil:
		b.WriteString("\n")
	case fn.ExpressionBody:
		b.WriteString(" = ")
		if fn.Body.Expr != nil {
			b.WriteString(renderExpression(*fn.Body.Expr))
		} else {
			b.WriteString(strings.Join(fn.Body.Statements, "; "))
		}
		b.WriteString("\n")
	default:
		b.WriteString(" {\n")
		for _, stmt := range fn.Body.Statements {
			indent(b, depth+1)
			b.WriteString(stmt)
			b.WriteString("\n")
		}
		if fn.Body.Expr != nil {
			indent(b, depth+1)
			b.WriteString(renderExpression(*fn.Body.Expr))
			b.WriteString("\n")
		}
		indent(b, depth)
		b.WriteString("}\n")
	}
}

func renderProperty(b *strings.Builder, p CodeProperty, depth int) {
	indent(b, depth)
	b.WriteString(renderModifiers(p.Modifiers))
	if p.Mutable {
		b.WriteString("var ")
	} else {
		b.WriteString("val ")
	}
	b.WriteString(p.Name)
	b.WriteString(": ")
	b.WriteString(RenderType(p.Type))
	if p.Initializer != nil {
		b.WriteString(" = ")
		b.WriteString(renderExpression(*p.Initializer))
	}
	b.WriteString("\n")
	if p.Getter != nil {
		indent(b, depth+1)
		if len(p.Getter.Statements) == 0 {
			b.WriteString("get() = ")
			b.WriteString(renderBlockInline(*p.Getter))
			b.WriteString("\n")
		} else {
			b.WriteString("get() {\n")
			for _, stmt := range p.Getter.Statements {
				indent(b, depth+2)
				b.WriteString(stmt)
				b.WriteString("\n")
			}
			if p.Getter.Expr != nil {
				indent(b, depth+2)
				b.WriteString("return ")
				b.WriteString(renderExpression(*p.Getter.Expr))
				b.WriteString("\n")
			}
			indent(b, depth+1)
			b.WriteString("}\n")
		}
	}
}

func renderClass(b *strings.Builder, c CodeClass, depth int) {
	indent(b, depth)
	b.WriteString(renderModifiers(c.Modifiers))
	if c.Kind == ClassKindObject {
		b.WriteString("object ")
	} else {
		b.WriteString("class ")
	}
	b.WriteString(c.Name)
	b.WriteString(renderTypeParameters(c.TypeParameters))

	if len(c.PrimaryConstructorParams) > 0 {
		b.WriteString("(")
		b.WriteString(renderParameters(c.PrimaryConstructorParams))
		b.WriteString(")")
	}

	if len(c.Supertypes) > 0 {
		b.WriteString(" : ")
		parts := make([]string, len(c.Supertypes))
		for i, st := range c.Supertypes {
			text := RenderType(st)
			if i == c.SuperclassCallIndex {
				text += "()"
			}
			parts[i] = text
		}
		b.WriteString(strings.Join(parts, ", "))
	}

	if len(c.Properties) == 0 && len(c.Functions) == 0 {
		b.WriteString("\n")
		return
	}

	b.WriteString(" {\n")
	for _, p := range c.Properties {
		renderProperty(b, p, depth+1)
	}
	if len(c.Properties) > 0 && len(c.Functions) > 0 {
		b.WriteString("\n")
	}
	for i, fn := range c.Functions {
		if i > 0 {
			b.WriteString("\n")
		}
		renderFunction(b, fn, depth+1)
	}
	indent(b, depth)
	b.WriteString("}\n")
}
