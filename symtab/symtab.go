// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package symtab maps identifiers to declarations within nested lexical
// scopes.
package symtab

import (
	"errors"

	"github.com/OscarGame/XShaderCompiler/ast"
)

// ErrRedeclared is returned when an override policy rejects a declaration.
var ErrRedeclared = errors.New("identifier is already declared in this scope")

// Kind classifies a symbol.
type Kind uint8

const (
	KindVariable Kind = iota
	KindFunction
	KindStruct
	KindAlias
	KindBuffer
	KindSampler
	KindUniformBuffer
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindStruct:
		return "structure"
	case KindAlias:
		return "type alias"
	case KindBuffer:
		return "buffer"
	case KindSampler:
		return "sampler"
	case KindUniformBuffer:
		return "uniform buffer"
	default:
		return "symbol"
	}
}

// IsType reports whether symbols of kind k name types.
func (k Kind) IsType() bool { return k == KindStruct || k == KindAlias }

// Symbol is a declaration registered under a name.
type Symbol struct {
	Kind   Kind
	Handle ast.SymbolHandle
	Decl   ast.Decl
}

// OverridePolicy decides whether sym may be declared next to the symbols
// already registered under the same name in the current scope. A nil error
// accepts the declaration.
type OverridePolicy func(prev []Symbol, sym Symbol) error

// NoOverride rejects every redeclaration.
func NoOverride(prev []Symbol, sym Symbol) error {
	return ErrRedeclared
}

type scope struct {
	parent  *scope
	symbols map[string][]Symbol
}

func newScope(parent *scope) *scope {
	return &scope{
		parent:  parent,
		symbols: map[string][]Symbol{},
	}
}

// Table is a stack of scopes. A new table has one open global scope.
type Table struct {
	cur   *scope
	depth int
}

// New returns a table with an open global scope.
func New() *Table {
	return &Table{cur: newScope(nil)}
}

// Open enters a nested scope.
func (t *Table) Open() {
	t.cur = newScope(t.cur)
	t.depth++
}

// Close leaves the innermost scope. The global scope is never closed.
func (t *Table) Close() {
	if t.cur.parent != nil {
		t.cur = t.cur.parent
		t.depth--
	}
}

// Depth returns the nesting depth; 0 is the global scope.
func (t *Table) Depth() int { return t.depth }

// IsGlobal reports whether the innermost scope is the global scope.
func (t *Table) IsGlobal() bool { return t.depth == 0 }

// Register declares sym under name in the innermost scope. If the name is
// already declared there, policy decides; a nil policy means NoOverride.
func (t *Table) Register(name string, sym Symbol, policy OverridePolicy) error {
	if prev, ok := t.cur.symbols[name]; ok && len(prev) > 0 {
		if policy == nil {
			policy = NoOverride
		}
		if err := policy(prev, sym); err != nil {
			return err
		}
	}
	t.cur.symbols[name] = append(t.cur.symbols[name], sym)
	return nil
}

// Lookup returns the symbols of the innermost scope declaring name, or nil.
func (t *Table) Lookup(name string) []Symbol {
	for s := t.cur; s != nil; s = s.parent {
		if syms, ok := s.symbols[name]; ok {
			return syms
		}
	}
	return nil
}

// LookupOne returns the first symbol found for name.
func (t *Table) LookupOne(name string) (Symbol, bool) {
	if syms := t.Lookup(name); len(syms) > 0 {
		return syms[0], true
	}
	return Symbol{}, false
}

// LookupCurrent returns the symbols declared under name in the innermost
// scope only.
func (t *Table) LookupCurrent(name string) []Symbol {
	return t.cur.symbols[name]
}

// Shadows reports whether declaring name in the innermost scope would hide
// a declaration of an enclosing scope.
func (t *Table) Shadows(name string) bool {
	for s := t.cur.parent; s != nil; s = s.parent {
		if _, ok := s.symbols[name]; ok {
			return true
		}
	}
	return false
}
