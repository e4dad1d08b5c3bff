// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"fmt"

	"github.com/OscarGame/XShaderCompiler/types"
)

// TypeOf returns the type denoter of an expression.
// The result is cached on the expression until ResetTypeDenoter is called.
func TypeOf(p *Program, e Expr) (types.TypeDenoter, error) {
	if e == nil {
		return nil, fmt.Errorf("missing expression")
	}
	c := e.cache()
	if c.typ != nil {
		return c.typ, nil
	}
	t, err := deriveType(p, e)
	if err != nil {
		return nil, err
	}
	c.typ = t
	return t, nil
}

//nolint:gocyclo,cyclop // Type derivation requires handling all expression kinds
func deriveType(p *Program, e Expr) (types.TypeDenoter, error) {
	switch e := e.(type) {
	case *LiteralExpr:
		return types.NewBase(e.DataType), nil
	case *TypeSpecifierExpr:
		return e.Type, nil
	case *TernaryExpr:
		return TypeOf(p, e.Then)
	case *BinaryExpr:
		return binaryType(p, e)
	case *UnaryExpr:
		t, err := TypeOf(p, e.Operand)
		if err != nil {
			return nil, err
		}
		if dt, ok := types.BaseOf(t); ok && e.Op == UnaryLogicalNot {
			return types.NewBase(dt.WithKind(types.ScalarBool)), nil
		}
		return t, nil
	case *PostUnaryExpr:
		return TypeOf(p, e.Operand)
	case *FunctionCallExpr:
		return callType(p, e.Call)
	case *BracketExpr:
		return TypeOf(p, e.Expr)
	case *SuffixExpr:
		t, err := TypeOf(p, e.Expr)
		if err != nil {
			return nil, err
		}
		return ChainType(p, t, e.VarIdent)
	case *ArrayAccessExpr:
		t, err := TypeOf(p, e.Expr)
		if err != nil {
			return nil, err
		}
		return IndexType(t, len(e.Indices))
	case *CastExpr:
		return e.Type, nil
	case *VarAccessExpr:
		return ChainType(p, nil, e.VarIdent)
	case *ObjectExpr:
		if e.Symbol != nil {
			return symbolType(p, *e.Symbol, e.Ident)
		}
		t, err := TypeOf(p, e.Prefix)
		if err != nil {
			return nil, err
		}
		return MemberType(t, e.Ident)
	case *AssignExpr:
		return TypeOf(p, e.Lvalue)
	case *InitializerExpr:
		if len(e.Exprs) == 0 {
			return nil, fmt.Errorf("cannot derive type of empty initializer list")
		}
		elem, err := TypeOf(p, e.Exprs[0])
		if err != nil {
			return nil, err
		}
		return &types.Array{Element: elem, Dims: []int{len(e.Exprs)}}, nil
	case *SequenceExpr:
		if len(e.Exprs) == 0 {
			return nil, fmt.Errorf("cannot derive type of empty expression list")
		}
		return TypeOf(p, e.Exprs[len(e.Exprs)-1])
	default:
		return nil, fmt.Errorf("unsupported expression %T", e)
	}
}

func binaryType(p *Program, e *BinaryExpr) (types.TypeDenoter, error) {
	lhs, err := TypeOf(p, e.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := TypeOf(p, e.Rhs)
	if err != nil {
		return nil, err
	}
	common := types.Common(lhs, rhs)
	if e.Op.IsCompare() || e.Op.IsLogical() {
		if dt, ok := types.BaseOf(common); ok {
			return types.NewBase(dt.WithKind(types.ScalarBool)), nil
		}
		return types.NewBase(types.Bool), nil
	}
	return common, nil
}

func callType(p *Program, call *FunctionCall) (types.TypeDenoter, error) {
	switch {
	case call == nil:
		return nil, fmt.Errorf("missing function call")
	case call.Func != nil:
		f, ok := p.Symbol(*call.Func).(*FunctionDecl)
		if !ok {
			return nil, fmt.Errorf("'%s' does not name a function", call.Ident)
		}
		return f.ReturnTypeDenoter(), nil
	case call.ReturnType != nil:
		return call.ReturnType, nil
	case call.Constructor != nil:
		return call.Constructor, nil
	default:
		return nil, fmt.Errorf("unresolved function call '%s'", call.Ident)
	}
}

// DeclType returns the type a declaration denotes when used as a value.
// It returns nil for declarations without a value type.
func DeclType(d Decl) types.TypeDenoter {
	switch d := d.(type) {
	case *VarDecl:
		return d.TypeDenoter()
	case *BufferDecl:
		if d.Type != nil {
			return d.Type
		}
		if d.DeclStmt != nil && d.DeclStmt.Type != nil {
			return d.DeclStmt.Type
		}
	case *SamplerDecl:
		if d.Type != nil {
			return d.Type
		}
		if d.DeclStmt != nil && d.DeclStmt.Type != nil {
			return d.DeclStmt.Type
		}
	case *StructDecl:
		if d.Type != nil {
			return d.Type
		}
	case *AliasDecl:
		return d.Type
	case *FunctionDecl:
		return d.ReturnTypeDenoter()
	}
	return nil
}

func symbolType(p *Program, h SymbolHandle, ident string) (types.TypeDenoter, error) {
	t := DeclType(p.Symbol(h))
	if t == nil {
		return nil, fmt.Errorf("'%s' does not denote a value", ident)
	}
	return t, nil
}

// SegmentType returns the type of one identifier chain segment, given the
// type of the value it is applied to (nil for the first segment), including
// its array subscripts.
func SegmentType(p *Program, prev types.TypeDenoter, seg *VarIdent) (types.TypeDenoter, error) {
	var (
		t   types.TypeDenoter
		err error
	)
	switch {
	case seg.Symbol != nil:
		t, err = symbolType(p, *seg.Symbol, seg.Ident)
	case prev == nil:
		err = fmt.Errorf("undeclared identifier '%s'", seg.Ident)
	default:
		t, err = MemberType(prev, seg.Ident)
	}
	if err != nil {
		return nil, err
	}
	return IndexType(t, len(seg.ArrayIndices))
}

// ChainType returns the type of a full identifier chain applied to prev.
func ChainType(p *Program, prev types.TypeDenoter, v *VarIdent) (types.TypeDenoter, error) {
	if v == nil {
		if prev == nil {
			return nil, fmt.Errorf("empty identifier chain")
		}
		return prev, nil
	}
	t := prev
	for seg := v; seg != nil; seg = seg.Next {
		var err error
		if t, err = SegmentType(p, t, seg); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MemberType returns the type of a structure member or vector/matrix
// subscript named ident on a value of type t.
func MemberType(t types.TypeDenoter, ident string) (types.TypeDenoter, error) {
	switch rt := types.Resolve(t).(type) {
	case *types.Struct:
		if m, ok := rt.Member(ident); ok {
			return m.Type, nil
		}
		return nil, fmt.Errorf("'%s' has no member '%s'", rt.Name, ident)
	case *types.Base:
		dt, err := types.Subscript(rt.DataType, ident)
		if err != nil {
			return nil, err
		}
		return types.NewBase(dt), nil
	default:
		return nil, fmt.Errorf("type '%s' has no member '%s'", t, ident)
	}
}

// IndexType returns the type produced by applying n array subscripts to a
// value of type t.
func IndexType(t types.TypeDenoter, n int) (types.TypeDenoter, error) {
	for ; n > 0; n-- {
		switch rt := types.Resolve(t).(type) {
		case *types.Array:
			t = rt.Indexed(1)
		case *types.Buffer:
			t = rt.ElementType()
		case *types.Base:
			switch {
			case rt.DataType.IsMatrix():
				t = types.NewBase(types.Vector(rt.DataType.Kind, int(rt.DataType.Columns)))
			case rt.DataType.IsVector():
				t = types.NewBase(rt.DataType.Base())
			default:
				return nil, fmt.Errorf("cannot index scalar type '%s'", rt)
			}
		default:
			return nil, fmt.Errorf("cannot index type '%s'", t)
		}
	}
	return t, nil
}
