// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package validator

import (
	"github.com/faktgo/faktgo/hostir"
	"github.com/faktgo/faktgo/metadata"
)

func convertTypeParameters(in []hostir.RawTypeParameter) []metadata.TypeParameterInfo {
	out := make([]metadata.TypeParameterInfo, len(in))
	for i, p := range in {
		out[i] = metadata.TypeParameterInfo{Name: p.Name, Bounds: p.Bounds, Variance: p.Variance}
	}
	return out
}

func convertParameters(in []hostir.RawParameter) []metadata.ParameterInfo {
	out := make([]metadata.ParameterInfo, len(in))
	for i, p := range in {
		out[i] = metadata.ParameterInfo{
			Name: p.Name, TypeText: p.TypeText, HasDefault: p.HasDefault,
			DefaultValueSnippet: p.DefaultValueSnippet, Variadic: p.Variadic,
		}
	}
	return out
}

func convertFunction(f hostir.RawFunction) metadata.FunctionInfo {
	return metadata.FunctionInfo{
		Name:              f.Name,
		Parameters:        convertParameters(f.Parameters),
		ReturnTypeText:    f.ReturnTypeText,
		Suspend:           f.Suspend,
		Inline:            f.Inline,
		OwnTypeParameters: convertTypeParameters(f.OwnTypeParameters),
	}
}

func convertProperty(p hostir.RawProperty) metadata.PropertyInfo {
	return metadata.PropertyInfo{Name: p.Name, TypeText: p.TypeText, Mutable: p.Mutable, Nullable: p.Nullable}
}

// collectInherited walks raw's transitive supertype graph in declaration
// order (spec §4.4 step 4 / §4.4 step 5), collecting members not already
// declared on raw itself, deduplicated by signature with the first
// encountered (nearest, most-derived) override winning. Members matching the
// universal top-type method names are excluded.
func collectInherited(raw hostir.RawDeclaration, preserveUniversalOverrides bool) (props []metadata.PropertyInfo, funcs []metadata.FunctionInfo) {
	seenPropNames := make(map[string]struct{}, len(raw.Properties))
	for _, p := range raw.Properties {
		seenPropNames[p.Name] = struct{}{}
	}
	seenFuncSigs := make(map[string]struct{}, len(raw.Functions))
	for _, f := range raw.Functions {
		seenFuncSigs[convertFunction(f).Signature()] = struct{}{}
	}

	var walk func(decl hostir.RawDeclaration)
	walk = func(decl hostir.RawDeclaration) {
		for _, p := range decl.Properties {
			if _, seen := seenPropNames[p.Name]; seen {
				continue
			}
			seenPropNames[p.Name] = struct{}{}
			props = append(props, convertProperty(p))
		}
		for _, f := range decl.Functions {
			if isUniversalOverrideExcluded(f, preserveUniversalOverrides) {
				continue
			}
			mf := convertFunction(f)
			sig := mf.Signature()
			if _, seen := seenFuncSigs[sig]; seen {
				continue
			}
			seenFuncSigs[sig] = struct{}{}
			funcs = append(funcs, mf)
		}
		for _, super := range decl.Supertypes {
			walk(super)
		}
	}
	for _, super := range raw.Supertypes {
		walk(super)
	}
	return props, funcs
}

// extractInterface implements spec §4.4 member extraction for the interface
// form.
func extractInterface(raw hostir.RawDeclaration) metadata.ValidatedDeclaration {
	inheritedProps, inheritedFuncs := collectInherited(raw, false)

	decl := metadata.ValidatedDeclaration{
		Kind:                metadata.KindInterface,
		FQN:                 raw.FQN,
		SimpleName:          raw.SimpleName,
		Package:             raw.Package,
		SourceFilePath:      raw.SourceFilePath,
		TypeParameters:      convertTypeParameters(raw.TypeParameters),
		InheritedProperties: inheritedProps,
		InheritedFunctions:  inheritedFuncs,
	}
	for _, p := range raw.Properties {
		decl.Properties = append(decl.Properties, convertProperty(p))
	}
	for _, f := range raw.Functions {
		decl.Functions = append(decl.Functions, convertFunction(f))
	}
	return decl
}

// extractClass implements spec §4.4 member extraction for the class form.
func extractClass(raw hostir.RawDeclaration, preserveUniversalOverrides bool) metadata.ValidatedDeclaration {
	decl := metadata.ValidatedDeclaration{
		Kind:                         metadata.KindClass,
		FQN:                          raw.FQN,
		SimpleName:                   raw.SimpleName,
		Package:                      raw.Package,
		SourceFilePath:               raw.SourceFilePath,
		TypeParameters:               convertTypeParameters(raw.TypeParameters),
		PrimaryConstructorParameters: convertParameters(raw.PrimaryConstructorParameters),
	}

	for _, p := range raw.Properties {
		switch p.Modality {
		case hostir.ModalityAbstract:
			decl.AbstractProperties = append(decl.AbstractProperties, convertProperty(p))
		case hostir.ModalityOpen:
			decl.OpenProperties = append(decl.OpenProperties, convertProperty(p))
		}
	}
	for _, f := range raw.Functions {
		if f.Modality != hostir.ModalityAbstract && f.Modality != hostir.ModalityOpen {
			continue
		}
		if isUniversalOverrideExcluded(f, preserveUniversalOverrides) {
			continue
		}
		switch f.Modality {
		case hostir.ModalityAbstract:
			decl.AbstractMethods = append(decl.AbstractMethods, convertFunction(f))
		case hostir.ModalityOpen:
			decl.OpenMethods = append(decl.OpenMethods, convertFunction(f))
		}
	}

	inheritedProps, inheritedFuncs := collectInherited(raw, preserveUniversalOverrides)
	// Inherited open members are merged into the class form's two lists
	// (spec §4.4 step 5); inherited properties have no modality carried
	// here so they are treated as open (they were reachable and not
	// re-declared abstract on the subject).
	decl.OpenProperties = append(decl.OpenProperties, inheritedProps...)
	decl.OpenMethods = append(decl.OpenMethods, inheritedFuncs...)
	return decl
}
