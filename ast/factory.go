// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "github.com/OscarGame/XShaderCompiler/types"

// MakeCast wraps e in a cast to the given data type.
func MakeCast(dt types.DataType, e Expr) *CastExpr {
	return &CastExpr{Type: types.NewBase(dt), Expr: e, Span: e.Pos()}
}

// MakeCastOrSuffixCast wraps e in a cast to dt and, if suffix is not nil,
// applies the remaining identifier chain to the cast result.
func MakeCastOrSuffixCast(dt types.DataType, e Expr, suffix *VarIdent) Expr {
	cast := MakeCast(dt, e)
	if suffix == nil {
		return cast
	}
	return &SuffixExpr{Expr: cast, VarIdent: suffix, Span: e.Pos()}
}

// MakeIntrinsicCall creates a call to an intrinsic with a known return type.
func MakeIntrinsicCall(intrinsic Intrinsic, ident string, returnType types.TypeDenoter, args []Expr) *FunctionCallExpr {
	var span Span
	if len(args) > 0 {
		span = args[0].Pos()
	}
	call := &FunctionCall{
		Ident:      ident,
		Args:       args,
		Intrinsic:  intrinsic,
		ReturnType: returnType,
		Span:       span,
	}
	return &FunctionCallExpr{Call: call, Span: span}
}

// MakeBracket wraps e in parentheses.
func MakeBracket(e Expr) *BracketExpr {
	return &BracketExpr{Expr: e, Span: e.Pos()}
}
