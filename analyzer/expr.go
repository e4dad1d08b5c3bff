// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/types"
)

func (a *Analyzer) analyzeExprs(exprs []ast.Expr) {
	for _, e := range exprs {
		a.analyzeExpr(e)
	}
}

//nolint:gocyclo,cyclop // Expression analysis requires handling all expression kinds
func (a *Analyzer) analyzeExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case nil, *ast.LiteralExpr:
	case *ast.TypeSpecifierExpr:
		e.Type = a.resolveType(e.Type, e.Span)
	case *ast.TernaryExpr:
		a.analyzeCondition(e.Cond)
		a.analyzeExpr(e.Then)
		a.analyzeExpr(e.Else)
		a.checkBranches(e)
	case *ast.BinaryExpr:
		a.analyzeExpr(e.Lhs)
		a.analyzeExpr(e.Rhs)
		a.checkBinary(e)
	case *ast.UnaryExpr:
		a.analyzeExpr(e.Operand)
		if e.Op.IsLValueOp() {
			a.checkLValue(e.Operand, "operand of '"+e.Op.String()+"'")
		}
	case *ast.PostUnaryExpr:
		a.analyzeExpr(e.Operand)
		if e.Op.IsLValueOp() {
			a.checkLValue(e.Operand, "operand of '"+e.Op.String()+"'")
		}
	case *ast.FunctionCallExpr:
		a.analyzeCall(e)
	case *ast.BracketExpr:
		a.analyzeExpr(e.Expr)
	case *ast.SuffixExpr:
		a.analyzeExpr(e.Expr)
		if t, err := ast.TypeOf(a.prog, e.Expr); err == nil {
			a.analyzeChain(t, e.VarIdent)
		}
	case *ast.ArrayAccessExpr:
		a.analyzeExpr(e.Expr)
		a.analyzeExprs(e.Indices)
		if t, err := ast.TypeOf(a.prog, e.Expr); err == nil {
			if _, err := ast.IndexType(t, len(e.Indices)); err != nil {
				a.errorf(diag.KindTypeMismatch, e.Span, "%v", err)
			}
		}
	case *ast.CastExpr:
		a.analyzeCast(e)
	case *ast.VarAccessExpr:
		a.analyzeVarAccess(e)
	case *ast.ObjectExpr:
		a.analyzeObject(e)
	case *ast.AssignExpr:
		a.analyzeExpr(e.Lvalue)
		a.analyzeExpr(e.Rvalue)
		a.checkLValue(e.Lvalue, "left-hand side of '"+e.Op.String()+"'")
		if t, err := ast.TypeOf(a.prog, e.Lvalue); err == nil {
			a.checkAssignable(t, e.Rvalue)
		}
	case *ast.InitializerExpr:
		a.analyzeExprs(e.Exprs)
	case *ast.SequenceExpr:
		a.analyzeExprs(e.Exprs)
	default:
		a.errorf(diag.KindInternal, expr.Pos(), "unexpected expression %T", expr)
	}
}

func (a *Analyzer) checkBranches(e *ast.TernaryExpr) {
	then, err := ast.TypeOf(a.prog, e.Then)
	if err != nil {
		return
	}
	els, err := ast.TypeOf(a.prog, e.Else)
	if err != nil {
		return
	}
	if !convertible(then, els) {
		a.errorf(diag.KindTypeMismatch, e.Span, "conditional branches have incompatible types '%s' and '%s'", then, els)
	}
}

func (a *Analyzer) checkBinary(e *ast.BinaryExpr) {
	lhs, err := ast.TypeOf(a.prog, e.Lhs)
	if err != nil {
		return
	}
	rhs, err := ast.TypeOf(a.prog, e.Rhs)
	if err != nil {
		return
	}
	lt, lok := types.BaseOf(lhs)
	rt, rok := types.BaseOf(rhs)
	if !lok || !rok {
		a.errorf(diag.KindTypeMismatch, e.Span, "invalid operands to '%s': '%s' and '%s'", e.Op, lhs, rhs)
		return
	}
	if e.Op.IsBitwise() && (lt.IsRealType() || rt.IsRealType()) {
		a.errorf(diag.KindTypeMismatch, e.Span, "operator '%s' requires integral operands, got '%s' and '%s'", e.Op, lhs, rhs)
	}
}

func (a *Analyzer) analyzeCast(e *ast.CastExpr) {
	e.Type = a.resolveType(e.Type, e.Span)
	a.analyzeExpr(e.Expr)
	source, err := ast.TypeOf(a.prog, e.Expr)
	if err != nil {
		return
	}
	if _, ok := types.BaseOf(e.Type); !ok {
		return
	}
	if _, ok := types.BaseOf(source); !ok {
		a.errorf(diag.KindTypeMismatch, e.Span, "cannot cast from '%s' to '%s'", source, e.Type)
	}
}

// --- Identifier chains ---

func (a *Analyzer) analyzeVarAccess(e *ast.VarAccessExpr) {
	head := e.VarIdent
	if head == nil {
		a.errorf(diag.KindInternal, e.Span, "variable access without identifier")
		return
	}
	a.analyzeExpr(e.AssignExpr)

	sym, ok := a.lookupValue(head.Ident, head.Span)
	if !ok {
		return
	}
	h := sym.Handle
	head.Symbol = &h
	a.analyzeExprs(head.ArrayIndices)

	t, err := ast.IndexType(ast.DeclType(sym.Decl), len(head.ArrayIndices))
	if err != nil {
		a.errorf(diag.KindTypeMismatch, head.Span, "%v", err)
		return
	}
	if _, ok := a.analyzeChain(t, head.Next); !ok {
		return
	}

	if e.AssignExpr != nil {
		a.checkLValue(e, "left-hand side of '"+e.AssignOp.String()+"'")
		if target, err := ast.TypeOf(a.prog, e); err == nil {
			a.checkAssignable(target, e.AssignExpr)
		}
	}
}

// analyzeChain binds the member segments of an identifier chain applied to
// a value of type t and validates its subscripts. It returns the type of
// the whole chain.
func (a *Analyzer) analyzeChain(t types.TypeDenoter, v *ast.VarIdent) (types.TypeDenoter, bool) {
	for seg := v; seg != nil; seg = seg.Next {
		a.analyzeExprs(seg.ArrayIndices)
		if t == nil {
			return nil, false
		}

		switch rt := types.Resolve(t).(type) {
		case *types.Struct:
			if d, ok := a.memberDecl(rt, seg.Ident); ok {
				seg.Symbol = a.ref(d)
				t = d.TypeDenoter()
			} else if m, ok := rt.Member(seg.Ident); ok {
				t = m.Type
			} else {
				a.errorf(diag.KindUndeclaredIdentifier, seg.Span, "'%s' has no member '%s'", rt, seg.Ident)
				return nil, false
			}
		case *types.Base:
			dt, err := types.Subscript(rt.DataType, seg.Ident)
			if err != nil {
				a.errorf(diag.KindInvalidSubscript, seg.Span, "%v", err)
				return nil, false
			}
			t = types.NewBase(dt)
		default:
			a.errorf(diag.KindTypeMismatch, seg.Span, "type '%s' has no member '%s'", t, seg.Ident)
			return nil, false
		}

		next, err := ast.IndexType(t, len(seg.ArrayIndices))
		if err != nil {
			a.errorf(diag.KindTypeMismatch, seg.Span, "%v", err)
			return nil, false
		}
		t = next
	}
	return t, true
}

// --- Member and static access ---

// typePrefix reports whether prefix names a type rather than a value, and
// returns that type.
func (a *Analyzer) typePrefix(prefix ast.Expr) (types.TypeDenoter, bool) {
	switch p := prefix.(type) {
	case *ast.TypeSpecifierExpr:
		p.Type = a.resolveType(p.Type, p.Span)
		return p.Type, true
	case *ast.VarAccessExpr:
		v := p.VarIdent
		if v == nil || v.Next != nil || len(v.ArrayIndices) > 0 || p.AssignExpr != nil {
			return nil, false
		}
		if sym, ok := a.lookupType(v.Ident); ok {
			return ast.DeclType(sym.Decl), true
		}
	}
	return nil, false
}

func (a *Analyzer) analyzeObject(e *ast.ObjectExpr) {
	if t, ok := a.typePrefix(e.Prefix); ok {
		a.analyzeStaticAccess(e, t)
		return
	}
	if e.IsStatic {
		a.errorf(diag.KindTypeMismatch, e.Span, "static access to '%s' requires a type name prefix", e.Ident)
		return
	}

	a.analyzeExpr(e.Prefix)
	t, err := ast.TypeOf(a.prog, e.Prefix)
	if err != nil {
		return
	}
	switch rt := types.Resolve(t).(type) {
	case *types.Struct:
		d, ok := a.memberDecl(rt, e.Ident)
		if !ok {
			if _, ok := rt.Member(e.Ident); !ok {
				a.errorf(diag.KindUndeclaredIdentifier, e.Span, "'%s' has no member '%s'", rt, e.Ident)
			}
			return
		}
		e.Symbol = a.ref(d)
	case *types.Base:
		if _, err := types.Subscript(rt.DataType, e.Ident); err != nil {
			a.errorf(diag.KindInvalidSubscript, e.Span, "%v", err)
		}
	default:
		a.errorf(diag.KindTypeMismatch, e.Span, "type '%s' has no member '%s'", t, e.Ident)
	}
}

func (a *Analyzer) analyzeStaticAccess(e *ast.ObjectExpr, t types.TypeDenoter) {
	if !e.IsStatic {
		a.errorf(diag.KindTypeMismatch, e.Span, "instance member '%s' accessed on type '%s'", e.Ident, t)
		return
	}
	st, ok := types.Resolve(t).(*types.Struct)
	if !ok {
		a.errorf(diag.KindTypeMismatch, e.Span, "type '%s' has no static members", t)
		return
	}
	d, ok := a.memberDecl(st, e.Ident)
	if !ok {
		a.errorf(diag.KindUndeclaredIdentifier, e.Span, "'%s' has no member '%s'", st, e.Ident)
		return
	}
	if !d.IsStatic() {
		a.errorf(diag.KindTypeMismatch, e.Span, "member '%s' of '%s' is not static", e.Ident, st)
		return
	}
	e.Symbol = a.ref(d)
}
