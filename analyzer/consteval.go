// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/types"
)

type constKind uint8

const (
	constInt constKind = iota
	constFloat
	constBool
)

// constant is the value of a constant expression.
type constant struct {
	kind constKind
	i    int64
	f    float64
	b    bool
}

func (c constant) asFloat() float64 {
	switch c.kind {
	case constFloat:
		return c.f
	case constBool:
		if c.b {
			return 1
		}
		return 0
	default:
		return float64(c.i)
	}
}

func (c constant) asInt() int64 {
	switch c.kind {
	case constFloat:
		return int64(c.f)
	case constBool:
		if c.b {
			return 1
		}
		return 0
	default:
		return c.i
	}
}

func (c constant) asBool() bool {
	switch c.kind {
	case constFloat:
		return c.f != 0
	case constBool:
		return c.b
	default:
		return c.i != 0
	}
}

var (
	errNotConstant    = errors.New("expression is not constant")
	errDivisionByZero = errors.New("division by zero in constant expression")
)

// constEvaluator folds constant expressions: literals, operators, casts
// and references to initialized const variables.
type constEvaluator struct {
	prog     *ast.Program
	visiting map[*ast.VarDecl]bool
}

// evalInt evaluates e as an integral constant.
func (a *Analyzer) evalInt(e ast.Expr) (int64, error) {
	c, err := a.evalConst(e)
	if err != nil {
		return 0, err
	}
	if c.kind == constFloat {
		return 0, fmt.Errorf("expected integral constant, got %g", c.f)
	}
	return c.asInt(), nil
}

// evalFloat evaluates e as a numeric constant.
func (a *Analyzer) evalFloat(e ast.Expr) (float64, error) {
	c, err := a.evalConst(e)
	if err != nil {
		return 0, err
	}
	return c.asFloat(), nil
}

func (a *Analyzer) evalConst(e ast.Expr) (constant, error) {
	ev := &constEvaluator{prog: a.prog, visiting: make(map[*ast.VarDecl]bool)}
	return ev.eval(e)
}

//nolint:gocyclo,cyclop // Constant folding requires handling all foldable expression kinds
func (ev *constEvaluator) eval(expr ast.Expr) (constant, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return parseLiteral(e)
	case *ast.BracketExpr:
		return ev.eval(e.Expr)
	case *ast.UnaryExpr:
		v, err := ev.eval(e.Operand)
		if err != nil {
			return constant{}, err
		}
		return unaryConst(e.Op, v)
	case *ast.BinaryExpr:
		lhs, err := ev.eval(e.Lhs)
		if err != nil {
			return constant{}, err
		}
		rhs, err := ev.eval(e.Rhs)
		if err != nil {
			return constant{}, err
		}
		return binaryConst(e.Op, lhs, rhs)
	case *ast.TernaryExpr:
		cond, err := ev.eval(e.Cond)
		if err != nil {
			return constant{}, err
		}
		if cond.asBool() {
			return ev.eval(e.Then)
		}
		return ev.eval(e.Else)
	case *ast.CastExpr:
		v, err := ev.eval(e.Expr)
		if err != nil {
			return constant{}, err
		}
		dt, ok := types.BaseOf(e.Type)
		if !ok || !dt.IsScalar() {
			return constant{}, errNotConstant
		}
		return convertConst(v, dt.Kind), nil
	case *ast.VarAccessExpr:
		v := e.VarIdent
		if v == nil || v.Next != nil || len(v.ArrayIndices) > 0 || v.Symbol == nil || e.AssignExpr != nil {
			return constant{}, errNotConstant
		}
		return ev.evalDecl(ev.prog.Symbol(*v.Symbol))
	case *ast.ObjectExpr:
		if e.Symbol == nil {
			return constant{}, errNotConstant
		}
		return ev.evalDecl(ev.prog.Symbol(*e.Symbol))
	default:
		return constant{}, errNotConstant
	}
}

func (ev *constEvaluator) evalDecl(d ast.Decl) (constant, error) {
	v, ok := d.(*ast.VarDecl)
	if !ok || !v.IsConst() || v.Initializer == nil {
		return constant{}, errNotConstant
	}
	if ev.visiting[v] {
		return constant{}, fmt.Errorf("constant '%s' depends on itself", v.Ident)
	}
	ev.visiting[v] = true
	defer delete(ev.visiting, v)

	c, err := ev.eval(v.Initializer)
	if err != nil {
		return constant{}, err
	}
	if dt, ok := types.BaseOf(v.TypeDenoter()); ok && dt.IsScalar() {
		c = convertConst(c, dt.Kind)
	}
	return c, nil
}

func parseLiteral(e *ast.LiteralExpr) (constant, error) {
	text := strings.TrimSpace(e.Value)
	switch {
	case e.DataType.IsBoolType():
		b, err := strconv.ParseBool(text)
		if err != nil {
			return constant{}, fmt.Errorf("invalid bool literal %q", e.Value)
		}
		return constant{kind: constBool, b: b}, nil
	case e.DataType.IsIntegralType():
		text = strings.TrimRight(text, "uUlL")
		if e.DataType.IsUIntType() {
			u, err := strconv.ParseUint(text, 0, 64)
			if err != nil {
				return constant{}, fmt.Errorf("invalid integer literal %q: %w", e.Value, err)
			}
			return constant{kind: constInt, i: int64(u)}, nil
		}
		i, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return constant{}, fmt.Errorf("invalid integer literal %q: %w", e.Value, err)
		}
		return constant{kind: constInt, i: i}, nil
	case e.DataType.IsRealType():
		text = strings.TrimRight(text, "fFhHlL")
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return constant{}, fmt.Errorf("invalid float literal %q: %w", e.Value, err)
		}
		return constant{kind: constFloat, f: f}, nil
	default:
		return constant{}, errNotConstant
	}
}

func convertConst(c constant, kind types.ScalarKind) constant {
	switch kind {
	case types.ScalarBool:
		return constant{kind: constBool, b: c.asBool()}
	case types.ScalarInt:
		return constant{kind: constInt, i: c.asInt()}
	case types.ScalarUInt:
		return constant{kind: constInt, i: int64(uint32(c.asInt()))}
	default:
		return constant{kind: constFloat, f: c.asFloat()}
	}
}

func unaryConst(op ast.UnaryOp, v constant) (constant, error) {
	switch op {
	case ast.UnaryNop:
		return v, nil
	case ast.UnaryNegate:
		if v.kind == constFloat {
			return constant{kind: constFloat, f: -v.f}, nil
		}
		return constant{kind: constInt, i: -v.asInt()}, nil
	case ast.UnaryLogicalNot:
		return constant{kind: constBool, b: !v.asBool()}, nil
	case ast.UnaryNot:
		if v.kind == constFloat {
			return constant{}, fmt.Errorf("operator '~' requires an integral operand")
		}
		return constant{kind: constInt, i: ^v.asInt()}, nil
	default:
		return constant{}, errNotConstant
	}
}

//nolint:gocyclo,cyclop // Constant folding requires handling all binary operators
func binaryConst(op ast.BinaryOp, lhs, rhs constant) (constant, error) {
	switch {
	case op.IsLogical():
		if op == ast.BinaryLogicalAnd {
			return constant{kind: constBool, b: lhs.asBool() && rhs.asBool()}, nil
		}
		return constant{kind: constBool, b: lhs.asBool() || rhs.asBool()}, nil
	case op.IsCompare():
		return constant{kind: constBool, b: compareConst(op, lhs, rhs)}, nil
	case op.IsBitwise():
		if lhs.kind == constFloat || rhs.kind == constFloat {
			return constant{}, fmt.Errorf("operator '%s' requires integral operands", op)
		}
		l, r := lhs.asInt(), rhs.asInt()
		switch op {
		case ast.BinaryOr:
			return constant{kind: constInt, i: l | r}, nil
		case ast.BinaryXor:
			return constant{kind: constInt, i: l ^ r}, nil
		case ast.BinaryAnd:
			return constant{kind: constInt, i: l & r}, nil
		case ast.BinaryLShift:
			return constant{kind: constInt, i: l << uint(r&63)}, nil
		default:
			return constant{kind: constInt, i: l >> uint(r&63)}, nil
		}
	}

	if lhs.kind == constFloat || rhs.kind == constFloat {
		l, r := lhs.asFloat(), rhs.asFloat()
		switch op {
		case ast.BinaryAdd:
			return constant{kind: constFloat, f: l + r}, nil
		case ast.BinarySub:
			return constant{kind: constFloat, f: l - r}, nil
		case ast.BinaryMul:
			return constant{kind: constFloat, f: l * r}, nil
		case ast.BinaryDiv:
			return constant{kind: constFloat, f: l / r}, nil
		default:
			return constant{}, errNotConstant
		}
	}

	l, r := lhs.asInt(), rhs.asInt()
	switch op {
	case ast.BinaryAdd:
		return constant{kind: constInt, i: l + r}, nil
	case ast.BinarySub:
		return constant{kind: constInt, i: l - r}, nil
	case ast.BinaryMul:
		return constant{kind: constInt, i: l * r}, nil
	case ast.BinaryDiv, ast.BinaryMod:
		if r == 0 {
			return constant{}, errDivisionByZero
		}
		if op == ast.BinaryDiv {
			return constant{kind: constInt, i: l / r}, nil
		}
		return constant{kind: constInt, i: l % r}, nil
	default:
		return constant{}, errNotConstant
	}
}

func compareConst(op ast.BinaryOp, lhs, rhs constant) bool {
	l, r := lhs.asFloat(), rhs.asFloat()
	switch op {
	case ast.BinaryEqual:
		return l == r
	case ast.BinaryNotEqual:
		return l != r
	case ast.BinaryLess:
		return l < r
	case ast.BinaryGreater:
		return l > r
	case ast.BinaryLessEqual:
		return l <= r
	default:
		return l >= r
	}
}
