// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// MustCastToDataType decides whether a value of type source must be cast
// explicitly before it can be used where target is expected.
//
// A cast is needed when the dimensions differ and matchTypeSize is set,
// when signedness of integers differs, when a real type meets an integral
// type, or when exactly one side is double precision. The returned cast type
// is target, except when only the kind differs and matchTypeSize is unset:
// then the target kind is combined with the source's shape.
//
// The second result is false when no cast is needed.
func MustCastToDataType(target, source DataType, matchTypeSize bool) (DataType, bool) {
	targetDim := target.VectorDim()
	sourceDim := source.VectorDim()
	sizeMismatch := targetDim != sourceDim

	needed := (sizeMismatch && matchTypeSize) ||
		(target.IsUIntType() && source.IsIntType()) ||
		(target.IsIntType() && source.IsUIntType()) ||
		(target.IsRealType() && source.IsIntegralType()) ||
		(target.IsIntegralType() && source.IsRealType()) ||
		(target.IsDoubleRealType() && !source.IsDoubleRealType()) ||
		(!target.IsDoubleRealType() && source.IsDoubleRealType())
	if !needed {
		return DataType{}, false
	}

	if sizeMismatch && !matchTypeSize {
		return source.WithKind(target.Kind), true
	}
	return target, true
}

// MustCast is MustCastToDataType over type denoters.
// Only base type denoters take part in implicit casts; any other pair never
// requires one.
func MustCast(target, source TypeDenoter, matchTypeSize bool) (DataType, bool) {
	targetType, ok := BaseOf(target)
	if !ok {
		return DataType{}, false
	}
	sourceType, ok := BaseOf(source)
	if !ok {
		return DataType{}, false
	}
	return MustCastToDataType(targetType, sourceType, matchTypeSize)
}
