// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "strings"

// VarIdent is one segment of an identifier chain such as "light.color.rgb".
//
// A segment with a Symbol names a declared variable or member. A segment
// without one is a vector or matrix subscript on the type of the segment
// before it.
type VarIdent struct {
	Ident        string
	ArrayIndices []Expr
	Next         *VarIdent
	Symbol       *SymbolHandle
	Span         Span
}

// Last returns the final segment of the chain.
func (v *VarIdent) Last() *VarIdent {
	for v.Next != nil {
		v = v.Next
	}
	return v
}

// Len returns the number of segments in the chain.
func (v *VarIdent) Len() int {
	n := 0
	for ; v != nil; v = v.Next {
		n++
	}
	return n
}

// String returns the chain in source form, e.g. "a.b[...].xy".
func (v *VarIdent) String() string {
	var sb strings.Builder
	for seg := v; seg != nil; seg = seg.Next {
		if seg != v {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Ident)
		for range seg.ArrayIndices {
			sb.WriteString("[...]")
		}
	}
	return sb.String()
}

// NewVarIdent builds an unresolved chain from dot-separated names.
func NewVarIdent(path string, span Span) *VarIdent {
	var head, tail *VarIdent
	for _, name := range strings.Split(path, ".") {
		seg := &VarIdent{Ident: name, Span: span}
		if head == nil {
			head = seg
		} else {
			tail.Next = seg
		}
		tail = seg
	}
	return head
}
