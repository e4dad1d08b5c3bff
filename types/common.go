// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// CommonDataType returns the widening join of two data types.
//
// The scalar kind is the higher ranked of the two. The shape follows the
// implicit conversion rules of HLSL binary operators: a scalar adopts the
// other operand's shape, two vectors truncate to the smaller dimension, two
// matrices keep the left shape and a vector combined with a matrix yields the
// vector.
func CommonDataType(a, b DataType) DataType {
	kind := a.Kind
	if b.Kind > kind {
		kind = b.Kind
	}

	switch {
	case a.IsScalar():
		return b.WithKind(kind)
	case b.IsScalar():
		return a.WithKind(kind)
	case a.IsVector() && b.IsVector():
		if b.Rows < a.Rows {
			return b.WithKind(kind)
		}
		return a.WithKind(kind)
	case a.IsMatrix() && b.IsMatrix():
		return a.WithKind(kind)
	case a.IsVector():
		return a.WithKind(kind)
	default:
		return b.WithKind(kind)
	}
}

// Common returns the common type denoter of two operands.
// Only base types are joined; for any other pair the left operand is
// returned unchanged.
func Common(a, b TypeDenoter) TypeDenoter {
	dtA, okA := BaseOf(a)
	dtB, okB := BaseOf(b)
	if !okA || !okB {
		return a
	}
	return NewBase(CommonDataType(dtA, dtB))
}
