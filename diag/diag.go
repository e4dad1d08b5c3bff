// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package diag provides diagnostics reported by the analyzer and the
// expression converter.
package diag

import (
	"fmt"
	"strings"

	"github.com/OscarGame/XShaderCompiler/ast"
)

// Severity grades a diagnostic.
type Severity uint8

const (
	// SeverityInfo is an informational note.
	SeverityInfo Severity = iota

	// SeverityWarning does not stop compilation.
	SeverityWarning

	// SeverityError fails the current compilation.
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Kind categorizes a diagnostic.
type Kind uint8

const (
	// KindUndeclaredIdentifier indicates a name that resolves to no declaration.
	KindUndeclaredIdentifier Kind = iota

	// KindRedeclaration indicates a conflicting declaration in the same scope.
	KindRedeclaration

	// KindTypeMismatch indicates operands or arguments of incompatible types.
	KindTypeMismatch

	// KindInvalidLValue indicates an assignment to a non-addressable expression.
	KindInvalidLValue

	// KindMissingAttribute indicates a required entry point attribute is absent.
	KindMissingAttribute

	// KindInvalidAttribute indicates an attribute not allowed in its context
	// or with the wrong number of arguments.
	KindInvalidAttribute

	// KindInvalidAttributeValue indicates an attribute argument outside its
	// allowed domain.
	KindInvalidAttributeValue

	// KindUnresolvedCall indicates no function or intrinsic matches a call.
	KindUnresolvedCall

	// KindAmbiguousCall indicates several overloads match a call equally well.
	KindAmbiguousCall

	// KindMissingEntryPoint indicates the entry point function was not found.
	KindMissingEntryPoint

	// KindDuplicateEntryPoint indicates the entry point is defined twice.
	KindDuplicateEntryPoint

	// KindInvalidSemantic indicates a missing, misplaced or duplicate semantic.
	KindInvalidSemantic

	// KindInvalidSubscript indicates a malformed vector or matrix subscript.
	KindInvalidSubscript

	// KindInvalidStatement indicates a statement not allowed in its context.
	KindInvalidStatement

	// KindUnsupportedFeature indicates a feature unavailable for the target.
	KindUnsupportedFeature

	// KindInternal indicates an internal compiler error.
	KindInternal
)

var kindNames = [...]string{
	KindUndeclaredIdentifier:  "UndeclaredIdentifier",
	KindRedeclaration:         "Redeclaration",
	KindTypeMismatch:          "TypeMismatch",
	KindInvalidLValue:         "InvalidLValue",
	KindMissingAttribute:      "MissingAttribute",
	KindInvalidAttribute:      "InvalidAttribute",
	KindInvalidAttributeValue: "InvalidAttributeValue",
	KindUnresolvedCall:        "UnresolvedCall",
	KindAmbiguousCall:         "AmbiguousCall",
	KindMissingEntryPoint:     "MissingEntryPoint",
	KindDuplicateEntryPoint:   "DuplicateEntryPoint",
	KindInvalidSemantic:       "InvalidSemantic",
	KindInvalidSubscript:      "InvalidSubscript",
	KindInvalidStatement:      "InvalidStatement",
	KindUnsupportedFeature:    "UnsupportedFeature",
	KindInternal:              "Internal",
}

// String returns a human-readable kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Diagnostic is a message attached to a source location.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Span     ast.Span
	Message  string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if !d.Span.IsValid() {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

// Errorf creates an error diagnostic with a formatted message.
func Errorf(kind Kind, span ast.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: SeverityError, Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

// Warningf creates a warning diagnostic with a formatted message.
func Warningf(kind Kind, span ast.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: SeverityWarning, Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

// FormatWithContext returns the diagnostic with the offending source line
// and a caret pointing at the location.
func (d *Diagnostic) FormatWithContext(source string) string {
	if source == "" || !d.Span.IsValid() {
		return d.Severity.String() + ": " + d.Error()
	}

	lines := strings.Split(source, "\n")
	lineNum := d.Span.Start.Line
	if lineNum > len(lines) {
		return d.Severity.String() + ": " + d.Error()
	}

	line := lines[lineNum-1]
	col := d.Span.Start.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", d.Severity, d.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))
	return sb.String()
}
