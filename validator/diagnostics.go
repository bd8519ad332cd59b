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

import "sync"

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Diagnostic codes, per spec §4.4.
const (
	CodeAnnotationOnUnsupportedKind            = "AnnotationOnUnsupportedKind"
	CodeAnnotationOnFinalClassWithoutOverrides = "AnnotationOnFinalClassWithoutOverrides"
	CodeDuplicateAnnotatedName                  = "DuplicateAnnotatedName"
	CodeExtractionError                         = "ExtractionError"
)

// Diagnostic is reported to the host compiler's diagnostic reporter. In this
// module the host compiler's reporter is out of scope (spec §1); DiagnosticSink
// is the in-process stand-in real integrations would bridge to their own
// reporting API.
type Diagnostic struct {
	Severity       Severity
	Code           string
	Message        string
	FQN            string
	SourceFilePath string
}

// DiagnosticSink receives diagnostics as the validator produces them.
type DiagnosticSink interface {
	Report(Diagnostic)
}

// SliceDiagnosticSink collects diagnostics in memory, safe for concurrent use
// by the validator's parallel declaration analysis (spec §5).
type SliceDiagnosticSink struct {
	mu   sync.Mutex
	diags []Diagnostic
}

// Report implements DiagnosticSink.
func (s *SliceDiagnosticSink) Report(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, d)
}

// Diagnostics returns a copy of every diagnostic reported so far.
func (s *SliceDiagnosticSink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}
