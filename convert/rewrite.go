// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package convert

import (
	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/types"
)

// The rewrites below replace the expression stored in a slot. Everything a
// rewrite needs from the old expression is read before the slot is
// overwritten.

// VectorSubscript materializes swizzles applied to scalar values, e.g.
// "f().xx.y" becomes "((float2)f()).y". It repeats until no scalar swizzle
// remains. An invalid swizzle is returned as an error and leaves the slot
// unchanged.
func VectorSubscript(p *ast.Program, slot *ast.Expr) error {
	switch e := (*slot).(type) {
	case *ast.SuffixExpr:
		return vectorSubscriptSuffix(p, slot, e)
	case *ast.VarAccessExpr:
		if e.AssignExpr != nil {
			return nil
		}
		return vectorSubscriptVarIdent(p, slot, e)
	default:
		return nil
	}
}

func vectorSubscriptSuffix(p *ast.Program, slot *ast.Expr, suffix *ast.SuffixExpr) error {
	t, err := ast.TypeOf(p, suffix.Expr)
	if err != nil {
		return nil
	}

	ref := &suffix.VarIdent
	for seg := suffix.VarIdent; seg != nil; seg = seg.Next {
		switch {
		case seg.Symbol != nil, types.IsVector(t), types.IsMatrix(t):
			if t, err = ast.SegmentType(p, t, seg); err != nil {
				return nil
			}
			ref = &seg.Next
		case types.IsScalar(t):
			dt, _ := types.BaseOf(t)
			vectorType, err := types.Subscript(dt, seg.Ident)
			if err != nil {
				return err
			}
			if len(seg.ArrayIndices) > 0 {
				return nil
			}

			// Detach the swizzle; without a preceding segment the suffix
			// expression disappears entirely.
			*ref = nil
			var value ast.Expr = suffix
			if suffix.VarIdent == nil {
				value = suffix.Expr
			} else {
				suffix.ResetTypeDenoter()
			}
			*slot = ast.MakeCastOrSuffixCast(vectorType, value, seg.Next)
			return VectorSubscript(p, slot)
		default:
			return nil
		}
	}
	return nil
}

func vectorSubscriptVarIdent(p *ast.Program, slot *ast.Expr, access *ast.VarAccessExpr) error {
	if access.VarIdent == nil {
		return nil
	}
	t, err := ast.SegmentType(p, nil, access.VarIdent)
	if err != nil {
		return nil
	}

	for seg := access.VarIdent; seg.Next != nil; seg = seg.Next {
		next := seg.Next
		if next.Symbol == nil && types.IsScalar(t) {
			dt, _ := types.BaseOf(t)
			vectorType, err := types.Subscript(dt, next.Ident)
			if err != nil {
				return err
			}
			if len(next.ArrayIndices) > 0 {
				return nil
			}

			seg.Next = nil
			access.ResetTypeDenoter()
			*slot = ast.MakeCastOrSuffixCast(vectorType, access, next.Next)
			return VectorSubscript(p, slot)
		}
		if t, err = ast.SegmentType(p, t, next); err != nil {
			return nil
		}
	}
	return nil
}

// compareIntrinsics maps relational operators to vector comparison
// intrinsics.
var compareIntrinsics = map[ast.BinaryOp]ast.Intrinsic{
	ast.BinaryEqual:        ast.IntrinsicEqual,
	ast.BinaryNotEqual:     ast.IntrinsicNotEqual,
	ast.BinaryLess:         ast.IntrinsicLessThan,
	ast.BinaryGreater:      ast.IntrinsicGreaterThan,
	ast.BinaryLessEqual:    ast.IntrinsicLessThanEqual,
	ast.BinaryGreaterEqual: ast.IntrinsicGreaterThanEqual,
}

// CompareOpToIntrinsic returns the vector comparison intrinsic for a
// relational operator, or IntrinsicUndefined for any other operator.
func CompareOpToIntrinsic(op ast.BinaryOp) ast.Intrinsic {
	if intr, ok := compareIntrinsics[op]; ok {
		return intr
	}
	return ast.IntrinsicUndefined
}

// VectorCompare replaces a relational operation on vectors with a call to
// the matching comparison intrinsic. Scalar comparisons are left alone.
func VectorCompare(p *ast.Program, slot *ast.Expr) {
	bin, ok := (*slot).(*ast.BinaryExpr)
	if !ok || !bin.Op.IsCompare() {
		return
	}
	t, err := ast.TypeOf(p, bin)
	if err != nil || !types.IsVector(t) {
		return
	}
	call := ast.MakeIntrinsicCall(CompareOpToIntrinsic(bin.Op), "vec_compare", t, []ast.Expr{bin.Lhs, bin.Rhs})
	call.Span = bin.Span
	call.Call.Span = bin.Span
	*slot = call
}

// CastIfRequired wraps the expression in a cast when its type must be
// converted explicitly to target.
func CastIfRequired(p *ast.Program, slot *ast.Expr, target types.DataType, matchTypeSize bool) {
	source, err := ast.TypeOf(p, *slot)
	if err != nil {
		return
	}
	sourceType, ok := types.BaseOf(source)
	if !ok {
		return
	}
	if dt, ok := types.MustCastToDataType(target, sourceType, matchTypeSize); ok {
		*slot = ast.MakeCast(dt, *slot)
	}
}

// CastIfRequiredTo is CastIfRequired for a target type denoter. Non-base
// targets never cause a cast.
func CastIfRequiredTo(p *ast.Program, slot *ast.Expr, target types.TypeDenoter, matchTypeSize bool) {
	if target == nil {
		return
	}
	source, err := ast.TypeOf(p, *slot)
	if err != nil {
		return
	}
	if dt, ok := types.MustCast(target, source, matchTypeSize); ok {
		*slot = ast.MakeCast(dt, *slot)
	}
}

// WrapInBracket parenthesizes the expression.
func WrapInBracket(slot *ast.Expr) {
	*slot = ast.MakeBracket(*slot)
}
