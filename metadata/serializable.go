// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package metadata

// SerializableTypeParameter is the on-disk mirror of TypeParameterInfo.
type SerializableTypeParameter struct {
	Name     string   `json:"name"`
	Bounds   []string `json:"bounds"`
	Variance string   `json:"variance,omitempty"`
}

// SerializableProperty is the on-disk mirror of PropertyInfo.
type SerializableProperty struct {
	Name     string `json:"name"`
	TypeText string `json:"typeText"`
	Mutable  bool   `json:"mutable"`
	Nullable bool   `json:"nullable"`
}

// SerializableParameter is the on-disk mirror of ParameterInfo.
type SerializableParameter struct {
	Name                string `json:"name"`
	TypeText            string `json:"typeText"`
	HasDefault          bool   `json:"hasDefault"`
	DefaultValueSnippet string `json:"defaultValueSnippet,omitempty"`
	Variadic            bool   `json:"variadic"`
}

// SerializableFunction is the on-disk mirror of FunctionInfo.
type SerializableFunction struct {
	Name              string                      `json:"name"`
	Parameters        []SerializableParameter     `json:"parameters"`
	ReturnTypeText    string                      `json:"returnTypeText"`
	Suspend           bool                        `json:"suspend"`
	Inline            bool                        `json:"inline"`
	OwnTypeParameters []SerializableTypeParameter `json:"ownTypeParameters"`
}

// SerializableInterfaceRecord is the on-disk form of an interface-form
// ValidatedDeclaration, matching spec §6's field list exactly.
type SerializableInterfaceRecord struct {
	ClassIDString       string                      `json:"classIdString"`
	SimpleName          string                      `json:"simpleName"`
	PackageName         string                      `json:"packageName"`
	TypeParameters       []SerializableTypeParameter `json:"typeParameters"`
	Properties           []SerializableProperty      `json:"properties"`
	Functions             []SerializableFunction      `json:"functions"`
	InheritedProperties   []SerializableProperty      `json:"inheritedProperties"`
	InheritedFunctions    []SerializableFunction      `json:"inheritedFunctions"`
	SourceFilePath        string                      `json:"sourceFilePath"`
	SourceFileSignature   string                      `json:"sourceFileSignature"`
	ValidationTimeNanos   int64                       `json:"validationTimeNanos"`
}

// SerializableClassRecord is the on-disk form of a class-form
// ValidatedDeclaration.
type SerializableClassRecord struct {
	ClassIDString                string                      `json:"classIdString"`
	SimpleName                   string                      `json:"simpleName"`
	PackageName                  string                      `json:"packageName"`
	TypeParameters                []SerializableTypeParameter `json:"typeParameters"`
	AbstractProperties            []SerializableProperty      `json:"abstractProperties"`
	OpenProperties                []SerializableProperty      `json:"openProperties"`
	AbstractMethods                []SerializableFunction      `json:"abstractMethods"`
	OpenMethods                    []SerializableFunction      `json:"openMethods"`
	PrimaryConstructorParameters   []SerializableParameter      `json:"primaryConstructorParameters"`
	SourceFilePath                string                      `json:"sourceFilePath"`
	SourceFileSignature           string                      `json:"sourceFileSignature"`
	ValidationTimeNanos            int64                       `json:"validationTimeNanos"`
}

// FirMetadataCache is the on-disk form of the whole cache file (spec §6).
type FirMetadataCache struct {
	Version           int                           `json:"version"`
	CacheSignature    string                        `json:"cacheSignature"`
	TotalFirTimeNanos int64                         `json:"totalFirTimeNanos"`
	Interfaces        []SerializableInterfaceRecord `json:"interfaces"`
	Classes           []SerializableClassRecord     `json:"classes"`
}

// CurrentSchemaVersion is the compiled-in cache schema version. A cache
// written by a different version is always rejected.
const CurrentSchemaVersion = 1

func toSerializableTypeParams(in []TypeParameterInfo) []SerializableTypeParameter {
	out := make([]SerializableTypeParameter, len(in))
	for i, p := range in {
		out[i] = SerializableTypeParameter{Name: p.Name, Bounds: p.Bounds, Variance: p.Variance}
	}
	return out
}

func fromSerializableTypeParams(in []SerializableTypeParameter) []TypeParameterInfo {
	out := make([]TypeParameterInfo, len(in))
	for i, p := range in {
		out[i] = TypeParameterInfo{Name: p.Name, Bounds: p.Bounds, Variance: p.Variance}
	}
	return out
}

func toSerializableProperties(in []PropertyInfo) []SerializableProperty {
	out := make([]SerializableProperty, len(in))
	for i, p := range in {
		out[i] = SerializableProperty{Name: p.Name, TypeText: p.TypeText, Mutable: p.Mutable, Nullable: p.Nullable}
	}
	return out
}

func fromSerializableProperties(in []SerializableProperty) []PropertyInfo {
	out := make([]PropertyInfo, len(in))
	for i, p := range in {
		out[i] = PropertyInfo{Name: p.Name, TypeText: p.TypeText, Mutable: p.Mutable, Nullable: p.Nullable}
	}
	return out
}

func toSerializableParameters(in []ParameterInfo) []SerializableParameter {
	out := make([]SerializableParameter, len(in))
	for i, p := range in {
		out[i] = SerializableParameter{
			Name: p.Name, TypeText: p.TypeText, HasDefault: p.HasDefault,
			DefaultValueSnippet: p.DefaultValueSnippet, Variadic: p.Variadic,
		}
	}
	return out
}

func fromSerializableParameters(in []SerializableParameter) []ParameterInfo {
	out := make([]ParameterInfo, len(in))
	for i, p := range in {
		out[i] = ParameterInfo{
			Name: p.Name, TypeText: p.TypeText, HasDefault: p.HasDefault,
			DefaultValueSnippet: p.DefaultValueSnippet, Variadic: p.Variadic,
		}
	}
	return out
}

func toSerializableFunctions(in []FunctionInfo) []SerializableFunction {
	out := make([]SerializableFunction, len(in))
	for i, f := range in {
		out[i] = SerializableFunction{
			Name:              f.Name,
			Parameters:        toSerializableParameters(f.Parameters),
			ReturnTypeText:    f.ReturnTypeText,
			Suspend:           f.Suspend,
			Inline:            f.Inline,
			OwnTypeParameters: toSerializableTypeParams(f.OwnTypeParameters),
		}
	}
	return out
}

func fromSerializableFunctions(in []SerializableFunction) []FunctionInfo {
	out := make([]FunctionInfo, len(in))
	for i, f := range in {
		out[i] = FunctionInfo{
			Name:              f.Name,
			Parameters:        fromSerializableParameters(f.Parameters),
			ReturnTypeText:    f.ReturnTypeText,
			Suspend:           f.Suspend,
			Inline:            f.Inline,
			OwnTypeParameters: fromSerializableTypeParams(f.OwnTypeParameters),
		}
	}
	return out
}

// ToSerializable converts a ValidatedDeclaration plus its precomputed file
// signature into the on-disk record matching its kind.
func ToSerializable(v ValidatedDeclaration, sourceFileSignature string) (iface *SerializableInterfaceRecord, class *SerializableClassRecord) {
	classID := EncodeFQN(v.Package, v.SimpleName)
	if v.FQN != "" {
		classID = v.FQN
	}
	switch v.Kind {
	case KindInterface:
		return &SerializableInterfaceRecord{
			ClassIDString:       classID,
			SimpleName:          v.SimpleName,
			PackageName:         v.Package,
			TypeParameters:      toSerializableTypeParams(v.TypeParameters),
			Properties:          toSerializableProperties(v.Properties),
			Functions:           toSerializableFunctions(v.Functions),
			InheritedProperties: toSerializableProperties(v.InheritedProperties),
			InheritedFunctions:  toSerializableFunctions(v.InheritedFunctions),
			SourceFilePath:      v.SourceFilePath,
			SourceFileSignature: sourceFileSignature,
			ValidationTimeNanos: v.ValidationTimeNanos,
		}, nil
	default:
		return nil, &SerializableClassRecord{
			ClassIDString:                 classID,
			SimpleName:                    v.SimpleName,
			PackageName:                   v.Package,
			TypeParameters:                toSerializableTypeParams(v.TypeParameters),
			AbstractProperties:            toSerializableProperties(v.AbstractProperties),
			OpenProperties:                toSerializableProperties(v.OpenProperties),
			AbstractMethods:               toSerializableFunctions(v.AbstractMethods),
			OpenMethods:                   toSerializableFunctions(v.OpenMethods),
			PrimaryConstructorParameters:  toSerializableParameters(v.PrimaryConstructorParameters),
			SourceFilePath:                v.SourceFilePath,
			SourceFileSignature:           sourceFileSignature,
			ValidationTimeNanos:           v.ValidationTimeNanos,
		}
	}
}

// FromSerializableInterface reconstructs a ValidatedDeclaration from a cache
// record. Per spec, the reconstructed declaration always has
// ValidationTimeNanos = 0 on a cache hit.
func FromSerializableInterface(r SerializableInterfaceRecord) ValidatedDeclaration {
	pkg, simple := DecodeFQN(r.ClassIDString)
	if r.PackageName != "" {
		pkg = r.PackageName
	}
	if r.SimpleName != "" {
		simple = r.SimpleName
	}
	return ValidatedDeclaration{
		Kind:                KindInterface,
		FQN:                 r.ClassIDString,
		SimpleName:          simple,
		Package:             pkg,
		TypeParameters:      fromSerializableTypeParams(r.TypeParameters),
		SourceFilePath:      r.SourceFilePath,
		ValidationTimeNanos: 0,
		Properties:          fromSerializableProperties(r.Properties),
		Functions:           fromSerializableFunctions(r.Functions),
		InheritedProperties: fromSerializableProperties(r.InheritedProperties),
		InheritedFunctions:  fromSerializableFunctions(r.InheritedFunctions),
	}
}

// FromSerializableClass reconstructs a class-form ValidatedDeclaration.
func FromSerializableClass(r SerializableClassRecord) ValidatedDeclaration {
	pkg, simple := DecodeFQN(r.ClassIDString)
	if r.PackageName != "" {
		pkg = r.PackageName
	}
	if r.SimpleName != "" {
		simple = r.SimpleName
	}
	return ValidatedDeclaration{
		Kind:                          KindClass,
		FQN:                           r.ClassIDString,
		SimpleName:                    simple,
		Package:                       pkg,
		TypeParameters:                fromSerializableTypeParams(r.TypeParameters),
		SourceFilePath:                r.SourceFilePath,
		ValidationTimeNanos:           0,
		AbstractProperties:            fromSerializableProperties(r.AbstractProperties),
		OpenProperties:                fromSerializableProperties(r.OpenProperties),
		AbstractMethods:               fromSerializableFunctions(r.AbstractMethods),
		OpenMethods:                   fromSerializableFunctions(r.OpenMethods),
		PrimaryConstructorParameters:  fromSerializableParameters(r.PrimaryConstructorParameters),
	}
}
