// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "github.com/OscarGame/XShaderCompiler/types"

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Span
}

// Decl is the interface for declarations that can be referenced by name.
type Decl interface {
	Node
	Identifier() string
	declNode()
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expressions.
//
// Every expression caches its type denoter once it has been derived by
// TypeOf. ResetTypeDenoter drops the cached value so the next TypeOf call
// derives it again from the (possibly rewritten) operands.
type Expr interface {
	Node
	ResetTypeDenoter()
	cache() *typeCache
}

// typeCache holds the memoized type denoter of an expression.
type typeCache struct {
	typ types.TypeDenoter
}

func (c *typeCache) cache() *typeCache { return c }

// ResetTypeDenoter invalidates the cached type denoter.
func (c *typeCache) ResetTypeDenoter() { c.typ = nil }

// SymbolHandle references a declaration in a program's symbol arena.
type SymbolHandle uint32

// Program represents an HLSL translation unit.
type Program struct {
	Stmts []Stmt // global statements in source order

	// Set by the analyzer.
	EntryPoint          *FunctionDecl
	SecondaryEntryPoint *FunctionDecl

	LayoutTessControl    TessControlLayout
	LayoutTessEvaluation TessEvaluationLayout
	LayoutGeometry       GeometryLayout
	LayoutFragment       FragmentLayout
	LayoutCompute        ComputeLayout

	symbols []Decl
}

// AddSymbol registers a declaration and returns its handle.
func (p *Program) AddSymbol(d Decl) SymbolHandle {
	h := SymbolHandle(len(p.symbols))
	p.symbols = append(p.symbols, d)
	return h
}

// Symbol returns the declaration for a handle, or nil if h is unknown.
func (p *Program) Symbol(h SymbolHandle) Decl {
	if int(h) >= len(p.symbols) {
		return nil
	}
	return p.symbols[h]
}

// SymbolRef is a convenience for symbol back-references: it registers d and
// returns a pointer to the new handle.
func (p *Program) SymbolRef(d Decl) *SymbolHandle {
	h := p.AddSymbol(d)
	return &h
}

// NumSymbols returns the number of registered declarations.
func (p *Program) NumSymbols() int { return len(p.symbols) }

// Functions returns all global function declarations in source order.
func (p *Program) Functions() []*FunctionDecl {
	var funcs []*FunctionDecl
	for _, s := range p.Stmts {
		if f, ok := s.(*FunctionDecl); ok {
			funcs = append(funcs, f)
		}
	}
	return funcs
}
