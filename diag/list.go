// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package diag

import (
	"fmt"
	"strings"
)

// Sink receives diagnostics as they are found.
type Sink interface {
	Report(d *Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d *Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d *Diagnostic) { f(d) }

// List collects diagnostics in report order. It implements both Sink and
// error; as an error it describes only its error-severity entries.
type List []*Diagnostic

// Report appends d to the list.
func (l *List) Report(d *Diagnostic) {
	*l = append(*l, d)
}

// Error implements the error interface.
func (l List) Error() string {
	errs := l.Errors()
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", errs[0].Error(), len(errs)-1)
	}
}

// Errors returns the error-severity diagnostics.
func (l List) Errors() List { return l.filter(SeverityError) }

// Warnings returns the warning-severity diagnostics.
func (l List) Warnings() List { return l.filter(SeverityWarning) }

func (l List) filter(sev Severity) List {
	var out List
	for _, d := range l {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any diagnostic has error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics.
func (l List) Len() int { return len(l) }

// ByKind returns the diagnostics of the given kind.
func (l List) ByKind(kind Kind) List {
	var out List
	for _, d := range l {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// FormatAll returns all diagnostics formatted with source context.
func (l List) FormatAll(source string) string {
	var sb strings.Builder
	for i, d := range l {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(d.FormatWithContext(source))
	}
	return sb.String()
}
