// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"fmt"

	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/types"
)

// checkLValue reports an error if e cannot be assigned to. what describes
// the position of e, e.g. "left-hand side of '='".
func (a *Analyzer) checkLValue(e ast.Expr, what string) {
	if e == nil {
		return
	}
	if reason := a.lvalueError(e); reason != "" {
		a.errorf(diag.KindInvalidLValue, e.Pos(), "%s is not an lvalue: %s", what, reason)
	}
}

// lvalueError returns why e is not addressable, or "" if it is.
// Expressions that failed analysis are treated as addressable; their error
// has already been reported.
//
//nolint:gocyclo,cyclop // Lvalue checks require handling all expression kinds
func (a *Analyzer) lvalueError(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.BracketExpr:
		return a.lvalueError(e.Expr)
	case *ast.LiteralExpr:
		return "literal"
	case *ast.TypeSpecifierExpr:
		return "type name"
	case *ast.FunctionCallExpr:
		return "function call result"
	case *ast.CastExpr:
		return "cast expression"
	case *ast.BinaryExpr, *ast.UnaryExpr, *ast.PostUnaryExpr:
		return "arithmetic expression"
	case *ast.TernaryExpr:
		return "conditional expression"
	case *ast.AssignExpr:
		return "assignment result"
	case *ast.InitializerExpr:
		return "initializer list"
	case *ast.SequenceExpr:
		return "expression list"
	case *ast.VarAccessExpr:
		return a.chainLValueError(nil, e.VarIdent)
	case *ast.SuffixExpr:
		if reason := a.lvalueError(e.Expr); reason != "" {
			return reason
		}
		t, err := ast.TypeOf(a.prog, e.Expr)
		if err != nil {
			return ""
		}
		return a.chainLValueError(t, e.VarIdent)
	case *ast.ArrayAccessExpr:
		t, err := ast.TypeOf(a.prog, e.Expr)
		if err != nil {
			return ""
		}
		if buf, ok := types.Resolve(t).(*types.Buffer); ok {
			return bufferElementError(buf)
		}
		return a.lvalueError(e.Expr)
	case *ast.ObjectExpr:
		return a.objectLValueError(e)
	default:
		return ""
	}
}

func (a *Analyzer) objectLValueError(e *ast.ObjectExpr) string {
	if e.Symbol != nil {
		if reason := declLValueError(a.prog.Symbol(*e.Symbol)); reason != "" || e.IsStatic {
			return reason
		}
		return a.lvalueError(e.Prefix)
	}
	t, err := ast.TypeOf(a.prog, e.Prefix)
	if err != nil {
		return ""
	}
	if dt, ok := types.BaseOf(t); ok && !types.IsSwizzleWritable(dt, e.Ident) {
		return fmt.Sprintf("swizzle '%s' selects a component more than once", e.Ident)
	}
	return a.lvalueError(e.Prefix)
}

// chainLValueError checks every segment of an identifier chain applied to
// a value of type prev (nil for a chain starting at a declaration).
func (a *Analyzer) chainLValueError(prev types.TypeDenoter, v *ast.VarIdent) string {
	t := prev
	for seg := v; seg != nil; seg = seg.Next {
		if seg.Symbol != nil {
			d := a.prog.Symbol(*seg.Symbol)
			if reason := declLValueError(d); reason != "" {
				return reason
			}
			t = ast.DeclType(d)
		} else if dt, ok := types.BaseOf(t); ok {
			if !types.IsSwizzleWritable(dt, seg.Ident) {
				if dt.IsScalar() {
					return fmt.Sprintf("swizzle '%s' selects more than the scalar component", seg.Ident)
				}
				return fmt.Sprintf("swizzle '%s' selects a component more than once", seg.Ident)
			}
			sub, err := types.Subscript(dt, seg.Ident)
			if err != nil {
				return ""
			}
			t = types.NewBase(sub)
		} else {
			return ""
		}

		for range seg.ArrayIndices {
			if buf, ok := types.Resolve(t).(*types.Buffer); ok {
				if reason := bufferElementError(buf); reason != "" {
					return reason
				}
			}
			next, err := ast.IndexType(t, 1)
			if err != nil {
				return ""
			}
			t = next
		}
	}

	switch rt := types.Resolve(t).(type) {
	case *types.Buffer:
		return fmt.Sprintf("%s object", rt.Kind)
	case *types.Sampler:
		return fmt.Sprintf("%s object", rt.Kind)
	default:
		return ""
	}
}

func declLValueError(d ast.Decl) string {
	v, ok := d.(*ast.VarDecl)
	if !ok {
		return ""
	}
	switch {
	case v.IsConst():
		return fmt.Sprintf("'%s' is const", v.Ident)
	case v.Flags.Has(ast.VarUniformMember):
		return fmt.Sprintf("'%s' is a uniform buffer member", v.Ident)
	case v.DeclStmt != nil && v.DeclStmt.TypeSpecifier != nil && v.DeclStmt.TypeSpecifier.IsUniform:
		return fmt.Sprintf("'%s' is uniform", v.Ident)
	default:
		return ""
	}
}

func bufferElementError(buf *types.Buffer) string {
	if buf.Kind.IsRW() {
		return ""
	}
	return fmt.Sprintf("element of read-only %s", buf.Kind)
}
