// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "github.com/OscarGame/XShaderCompiler/types"

// LiteralExpr represents a literal value (e.g., 1, 2.5f, true).
type LiteralExpr struct {
	typeCache
	Value    string
	DataType types.DataType
	Span     Span
}

func (e *LiteralExpr) Pos() Span { return e.Span }

// TypeSpecifierExpr names a type where an expression is expected, such as
// the prefix of a static member access (Foo::bar).
type TypeSpecifierExpr struct {
	typeCache
	Type types.TypeDenoter
	Span Span
}

func (e *TypeSpecifierExpr) Pos() Span { return e.Span }

// TernaryExpr represents cond ? then : else.
type TernaryExpr struct {
	typeCache
	Cond Expr
	Then Expr
	Else Expr
	Span Span
}

func (e *TernaryExpr) Pos() Span { return e.Span }

// BinaryExpr represents a binary operation.
type BinaryExpr struct {
	typeCache
	Op   BinaryOp
	Lhs  Expr
	Rhs  Expr
	Span Span
}

func (e *BinaryExpr) Pos() Span { return e.Span }

// UnaryExpr represents a prefix unary operation.
type UnaryExpr struct {
	typeCache
	Op      UnaryOp
	Operand Expr
	Span    Span
}

func (e *UnaryExpr) Pos() Span { return e.Span }

// PostUnaryExpr represents a postfix unary operation (x++, x--).
type PostUnaryExpr struct {
	typeCache
	Op      UnaryOp
	Operand Expr
	Span    Span
}

func (e *PostUnaryExpr) Pos() Span { return e.Span }

// FunctionCall holds a call target and its arguments.
//
// Exactly one of Func, Intrinsic or Constructor describes the resolved
// target after analysis.
type FunctionCall struct {
	Ident       string
	Args        []Expr
	Constructor types.TypeDenoter // type constructor call, e.g. float3(...)

	// Set by the analyzer.
	Func       *SymbolHandle     // user function
	Intrinsic  Intrinsic         // built-in function
	ReturnType types.TypeDenoter // intrinsic return type

	Span Span
}

// FunctionCallExpr represents a function call, optionally on an object
// (tex.Sample(...)) or a type (Foo::bar()).
type FunctionCallExpr struct {
	typeCache
	Prefix   Expr // nil for free functions
	IsStatic bool
	Call     *FunctionCall
	Span     Span
}

func (e *FunctionCallExpr) Pos() Span { return e.Span }

// BracketExpr represents a parenthesized expression.
type BracketExpr struct {
	typeCache
	Expr Expr
	Span Span
}

func (e *BracketExpr) Pos() Span { return e.Span }

// SuffixExpr represents an identifier chain applied to the result of an
// arbitrary expression, e.g. "f().xy" or "(a + b).x".
type SuffixExpr struct {
	typeCache
	Expr     Expr
	VarIdent *VarIdent
	Span     Span
}

func (e *SuffixExpr) Pos() Span { return e.Span }

// ArrayAccessExpr represents indexing of an arbitrary expression, e.g. "f()[2]".
type ArrayAccessExpr struct {
	typeCache
	Expr    Expr
	Indices []Expr
	Span    Span
}

func (e *ArrayAccessExpr) Pos() Span { return e.Span }

// CastExpr represents an explicit cast, e.g. "(float3)x".
type CastExpr struct {
	typeCache
	Type types.TypeDenoter
	Expr Expr
	Span Span
}

func (e *CastExpr) Pos() Span { return e.Span }

// VarAccessExpr represents access to a variable through an identifier chain,
// optionally combined with an assignment ("a.b = c").
type VarAccessExpr struct {
	typeCache
	VarIdent   *VarIdent
	AssignOp   AssignOp
	AssignExpr Expr // nil without assignment
	Span       Span
}

func (e *VarAccessExpr) Pos() Span { return e.Span }

// ObjectExpr represents member access on an expression ("p.x") or static
// member access on a type ("Foo::x").
type ObjectExpr struct {
	typeCache
	Prefix   Expr
	Ident    string
	IsStatic bool
	Symbol   *SymbolHandle // set by the analyzer for declared members
	Span     Span
}

func (e *ObjectExpr) Pos() Span { return e.Span }

// AssignExpr represents an assignment to an arbitrary lvalue expression.
type AssignExpr struct {
	typeCache
	Lvalue Expr
	Op     AssignOp
	Rvalue Expr
	Span   Span
}

func (e *AssignExpr) Pos() Span { return e.Span }

// InitializerExpr represents a brace initializer list ({ 1, 2, 3 }).
type InitializerExpr struct {
	typeCache
	Exprs []Expr
	Span  Span
}

func (e *InitializerExpr) Pos() Span { return e.Span }

// SequenceExpr represents a comma-separated expression list.
type SequenceExpr struct {
	typeCache
	Exprs []Expr
	Span  Span
}

func (e *SequenceExpr) Pos() Span { return e.Span }
