// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ScalarKind represents scalar type kinds.
// The declaration order is the widening rank used by Common.
type ScalarKind uint8

const (
	ScalarBool   ScalarKind = iota // Boolean
	ScalarInt                      // Signed integer
	ScalarUInt                     // Unsigned integer
	ScalarHalf                     // 16-bit floating point
	ScalarFloat                    // 32-bit floating point
	ScalarDouble                   // 64-bit floating point
)

// scalarNames holds the HLSL spelling of each scalar kind.
var scalarNames = [...]string{
	ScalarBool:   "bool",
	ScalarInt:    "int",
	ScalarUInt:   "uint",
	ScalarHalf:   "half",
	ScalarFloat:  "float",
	ScalarDouble: "double",
}

// String returns the HLSL name of the scalar kind.
func (k ScalarKind) String() string {
	if int(k) < len(scalarNames) {
		return scalarNames[k]
	}
	return "unknown"
}

// DataType is a base data type: a scalar kind combined with an arity.
//
// Scalars are 1x1, vectors are Nx1 and matrices are RxC with C >= 2.
// The zero value is not a valid data type; use Scalar, Vector or Matrix.
type DataType struct {
	Kind    ScalarKind
	Rows    uint8 // vector size or matrix rows
	Columns uint8 // matrix columns, 1 for scalars and vectors
}

// Scalar returns the scalar data type of the given kind.
func Scalar(kind ScalarKind) DataType {
	return DataType{Kind: kind, Rows: 1, Columns: 1}
}

// Vector returns the vector data type with n components.
// A size of 1 yields the scalar type.
func Vector(kind ScalarKind, n int) DataType {
	if n <= 1 {
		return Scalar(kind)
	}
	return DataType{Kind: kind, Rows: uint8(n), Columns: 1}
}

// Matrix returns the matrix data type with the given rows and columns.
// A single column yields a vector, a 1x1 matrix yields a scalar.
func Matrix(kind ScalarKind, rows, columns int) DataType {
	if columns <= 1 {
		return Vector(kind, rows)
	}
	return DataType{Kind: kind, Rows: uint8(rows), Columns: uint8(columns)}
}

// Common data types.
var (
	Bool   = Scalar(ScalarBool)
	Int    = Scalar(ScalarInt)
	UInt   = Scalar(ScalarUInt)
	Half   = Scalar(ScalarHalf)
	Float  = Scalar(ScalarFloat)
	Double = Scalar(ScalarDouble)

	Float2   = Vector(ScalarFloat, 2)
	Float3   = Vector(ScalarFloat, 3)
	Float4   = Vector(ScalarFloat, 4)
	Int2     = Vector(ScalarInt, 2)
	Int3     = Vector(ScalarInt, 3)
	Int4     = Vector(ScalarInt, 4)
	UInt3    = Vector(ScalarUInt, 3)
	Float4x4 = Matrix(ScalarFloat, 4, 4)
)

// IsValid reports whether the data type has a usable shape.
func (t DataType) IsValid() bool {
	return t.Kind <= ScalarDouble && t.Rows >= 1 && t.Rows <= 4 && t.Columns >= 1 && t.Columns <= 4
}

// IsScalar reports whether t is a scalar type.
func (t DataType) IsScalar() bool { return t.Rows == 1 && t.Columns == 1 }

// IsVector reports whether t is a vector type with at least two components.
func (t DataType) IsVector() bool { return t.Rows > 1 && t.Columns == 1 }

// IsMatrix reports whether t is a matrix type.
func (t DataType) IsMatrix() bool { return t.Columns > 1 }

// VectorDim returns the number of vector components:
// 1 for scalars, N for vectors and 0 for matrices.
func (t DataType) VectorDim() int {
	if t.IsMatrix() {
		return 0
	}
	return int(t.Rows)
}

// Base returns the scalar type of t's components.
func (t DataType) Base() DataType { return Scalar(t.Kind) }

// WithKind returns t's shape with a different scalar kind.
func (t DataType) WithKind(kind ScalarKind) DataType {
	t.Kind = kind
	return t
}

// Components returns the total number of scalar components.
func (t DataType) Components() int { return int(t.Rows) * int(t.Columns) }

// IsBoolType reports whether t is built from booleans.
func (t DataType) IsBoolType() bool { return t.Kind == ScalarBool }

// IsIntType reports whether t is built from signed integers.
func (t DataType) IsIntType() bool { return t.Kind == ScalarInt }

// IsUIntType reports whether t is built from unsigned integers.
func (t DataType) IsUIntType() bool { return t.Kind == ScalarUInt }

// IsIntegralType reports whether t is built from signed or unsigned integers.
func (t DataType) IsIntegralType() bool { return t.IsIntType() || t.IsUIntType() }

// IsRealType reports whether t is built from floating point values.
func (t DataType) IsRealType() bool {
	return t.Kind == ScalarHalf || t.Kind == ScalarFloat || t.Kind == ScalarDouble
}

// IsDoubleRealType reports whether t is built from 64-bit floats.
func (t DataType) IsDoubleRealType() bool { return t.Kind == ScalarDouble }

// String returns the HLSL spelling of t, e.g. "float", "int3", "float4x4".
func (t DataType) String() string {
	name := t.Kind.String()
	switch {
	case t.IsMatrix():
		return fmt.Sprintf("%s%dx%d", name, t.Rows, t.Columns)
	case t.IsVector():
		return name + strconv.Itoa(int(t.Rows))
	default:
		return name
	}
}

// scalarAliases maps HLSL scalar spellings to kinds.
var scalarAliases = map[string]ScalarKind{
	"bool":   ScalarBool,
	"int":    ScalarInt,
	"dword":  ScalarUInt,
	"uint":   ScalarUInt,
	"half":   ScalarHalf,
	"float":  ScalarFloat,
	"double": ScalarDouble,

	// Minimum precision types map to their storage kind.
	"min16float": ScalarHalf,
	"min10float": ScalarHalf,
	"min16int":   ScalarInt,
	"min12int":   ScalarInt,
	"min16uint":  ScalarUInt,
}

// ParseDataType parses an HLSL base type name such as "float", "uint2" or
// "half3x4".
func ParseDataType(name string) (DataType, error) {
	if kind, ok := scalarAliases[name]; ok {
		return Scalar(kind), nil
	}

	// Split the trailing shape suffix ("3" or "4x4") from the scalar name.
	i := len(name)
	for i > 0 && (name[i-1] == 'x' || (name[i-1] >= '1' && name[i-1] <= '4')) {
		i--
	}
	kind, ok := scalarAliases[name[:i]]
	if !ok {
		return DataType{}, fmt.Errorf("unknown data type %q", name)
	}

	suffix := name[i:]
	rowsText, colsText, isMatrix := strings.Cut(suffix, "x")
	if len(rowsText) != 1 || (isMatrix && len(colsText) != 1) {
		return DataType{}, fmt.Errorf("malformed data type %q", name)
	}
	rows := int(rowsText[0] - '0')
	if !isMatrix {
		return Vector(kind, rows), nil
	}
	return Matrix(kind, rows, int(colsText[0]-'0')), nil
}
