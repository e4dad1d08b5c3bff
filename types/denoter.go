// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import (
	"strconv"
	"strings"
)

// TypeDenoter is a semantic type descriptor.
// The set of implementations is closed: Void, Base, Struct, Buffer, Sampler,
// Array and Alias.
type TypeDenoter interface {
	// String returns the HLSL spelling of the type.
	String() string
	typeDenoter()
}

// Void is the type of functions without a return value.
type Void struct{}

func (*Void) typeDenoter()   {}
func (*Void) String() string { return "void" }

// Base is a scalar, vector or matrix type.
type Base struct {
	DataType DataType
}

func (*Base) typeDenoter()     {}
func (b *Base) String() string { return b.DataType.String() }

// NewBase returns a base type denoter for dt.
func NewBase(dt DataType) *Base { return &Base{DataType: dt} }

// Member is a named member of a struct type.
type Member struct {
	Name string
	Type TypeDenoter
}

// Struct is a user-defined structure type.
// A Struct with nil Members and a non-empty Name is an unresolved reference
// produced by the parser; the analyzer binds it to the declared structure.
type Struct struct {
	Name    string
	Base    *Struct // inherited structure, if any
	Members []Member
}

func (*Struct) typeDenoter()     {}
func (s *Struct) String() string {
	if s.Name == "" {
		return "struct <anonymous>"
	}
	return s.Name
}

// Member looks up a member by name, searching inherited structures too.
func (s *Struct) Member(name string) (Member, bool) {
	for cur := s; cur != nil; cur = cur.Base {
		for _, m := range cur.Members {
			if m.Name == name {
				return m, true
			}
		}
	}
	return Member{}, false
}

// Buffer is a buffer, texture, stream or patch object type.
type Buffer struct {
	Kind    BufferKind
	Element TypeDenoter // generic element type; nil means the default (float4)
	Size    int         // generic size (patch control points, MS samples)
}

func (*Buffer) typeDenoter() {}
func (b *Buffer) String() string {
	name := b.Kind.String()
	if b.Element == nil {
		return name
	}
	if b.Size > 0 {
		return name + "<" + b.Element.String() + ", " + strconv.Itoa(b.Size) + ">"
	}
	return name + "<" + b.Element.String() + ">"
}

// ElementType returns the generic element type, defaulting to float4.
func (b *Buffer) ElementType() TypeDenoter {
	if b.Element == nil {
		return NewBase(Float4)
	}
	return b.Element
}

// Sampler is a sampler state type.
type Sampler struct {
	Kind SamplerKind
}

func (*Sampler) typeDenoter()     {}
func (s *Sampler) String() string { return s.Kind.String() }

// Array is an array type. A dimension of 0 marks an unsized dimension.
type Array struct {
	Element TypeDenoter
	Dims    []int
}

func (*Array) typeDenoter() {}
func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteString(a.Element.String())
	for _, d := range a.Dims {
		sb.WriteByte('[')
		if d > 0 {
			sb.WriteString(strconv.Itoa(d))
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

// Indexed returns the type produced by applying n subscripts to the array.
func (a *Array) Indexed(n int) TypeDenoter {
	if n >= len(a.Dims) {
		return a.Element
	}
	return &Array{Element: a.Element, Dims: a.Dims[n:]}
}

// Alias is a typedef name. Target is nil until the analyzer resolves it.
type Alias struct {
	Name   string
	Target TypeDenoter
}

func (*Alias) typeDenoter()     {}
func (a *Alias) String() string { return a.Name }

// Resolve strips alias chains and returns the aliased type.
// Unresolved aliases are returned unchanged.
func Resolve(t TypeDenoter) TypeDenoter {
	for {
		alias, ok := t.(*Alias)
		if !ok || alias.Target == nil {
			return t
		}
		t = alias.Target
	}
}

// BaseOf returns the data type of t if t (after alias resolution) is a base
// type denoter.
func BaseOf(t TypeDenoter) (DataType, bool) {
	if t == nil {
		return DataType{}, false
	}
	if b, ok := Resolve(t).(*Base); ok {
		return b.DataType, true
	}
	return DataType{}, false
}

// IsScalar reports whether t denotes a scalar type.
func IsScalar(t TypeDenoter) bool {
	dt, ok := BaseOf(t)
	return ok && dt.IsScalar()
}

// IsVector reports whether t denotes a vector type.
func IsVector(t TypeDenoter) bool {
	dt, ok := BaseOf(t)
	return ok && dt.IsVector()
}

// IsMatrix reports whether t denotes a matrix type.
func IsMatrix(t TypeDenoter) bool {
	dt, ok := BaseOf(t)
	return ok && dt.IsMatrix()
}

// IsVoid reports whether t denotes void.
func IsVoid(t TypeDenoter) bool {
	_, ok := Resolve(t).(*Void)
	return ok
}

// Equal reports whether a and b denote structurally identical types.
func Equal(a, b TypeDenoter) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Key(a) == Key(b)
}

// Key returns a canonical key for t. Two structurally identical types
// produce the same key; structures are keyed by name.
func Key(t TypeDenoter) string {
	switch t := Resolve(t).(type) {
	case *Void:
		return "void"
	case *Base:
		return "base:" + strconv.Itoa(int(t.DataType.Kind)) + ":" +
			strconv.Itoa(int(t.DataType.Rows)) + "x" + strconv.Itoa(int(t.DataType.Columns))
	case *Struct:
		return "struct:" + t.Name
	case *Buffer:
		key := "buffer:" + strconv.Itoa(int(t.Kind)) + ":" + strconv.Itoa(t.Size)
		if t.Element != nil {
			key += "<" + Key(t.Element) + ">"
		}
		return key
	case *Sampler:
		return "sampler:" + strconv.Itoa(int(t.Kind))
	case *Array:
		var sb strings.Builder
		sb.WriteString("array:")
		sb.WriteString(Key(t.Element))
		for _, d := range t.Dims {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(d))
		}
		return sb.String()
	case *Alias:
		return "alias:" + t.Name
	default:
		return "unknown"
	}
}
