// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package diag

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// jsonDiagnostic is the wire form of a Diagnostic.
type jsonDiagnostic struct {
	Severity Severity `json:"severity"`
	Kind     Kind     `json:"kind"`
	Source   string   `json:"source,omitempty"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Message  string   `json:"message"`
}

// jsonReport is the document written by WriteJSON.
type jsonReport struct {
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

// WriteJSON writes a machine-readable report of l to w.
func WriteJSON(w io.Writer, l List) error {
	report := jsonReport{
		Errors:      len(l.Errors()),
		Warnings:    len(l.Warnings()),
		Diagnostics: make([]jsonDiagnostic, 0, len(l)),
	}
	for _, d := range l {
		report.Diagnostics = append(report.Diagnostics, jsonDiagnostic{
			Severity: d.Severity,
			Kind:     d.Kind,
			Source:   d.Span.Source,
			Line:     d.Span.Start.Line,
			Column:   d.Span.Start.Column,
			Message:  d.Message,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("diag: encode report: %w", err)
	}
	return nil
}
