// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "fmt"

// Span represents a source code location span.
type Span struct {
	Start  Position
	End    Position
	Source string // Source file name or identifier
}

// Position represents a position in source code.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns "line:column", prefixed by the source name when known.
func (s Span) String() string {
	if s.Source != "" {
		return fmt.Sprintf("%s:%d:%d", s.Source, s.Start.Line, s.Start.Column)
	}
	return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
}

// IsValid reports whether the span points into a source.
func (s Span) IsValid() bool { return s.Start.Line > 0 }
