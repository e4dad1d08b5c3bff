// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import "fmt"

// SubscriptError describes an invalid vector or matrix subscript.
type SubscriptError struct {
	Subscript string
	Type      DataType
	Reason    string
}

func (e *SubscriptError) Error() string {
	return fmt.Sprintf("invalid subscript '%s' for type '%s': %s", e.Subscript, e.Type, e.Reason)
}

// Subscript returns the type produced by applying a swizzle to a value of
// type t. Scalars and vectors accept "xyzw" or "rgba" component names;
// matrices accept "_mRC" (zero-based) or "_RC" (one-based) element names.
// A scalar is swizzled as its promoted four-component vector, so "yy" on a
// float yields float2. One selected component yields a scalar, several yield
// a vector.
func Subscript(t DataType, swizzle string) (DataType, error) {
	components, err := swizzleComponents(t, swizzle, true)
	if err != nil {
		return DataType{}, err
	}
	return Vector(t.Kind, len(components)), nil
}

// IsSwizzleWritable reports whether swizzle can be used as an assignment
// target on a value of type t, i.e. it is valid and selects no component
// twice. A scalar target only has its own component.
func IsSwizzleWritable(t DataType, swizzle string) bool {
	components, err := swizzleComponents(t, swizzle, false)
	if err != nil {
		return false
	}
	seen := make(map[int]bool, len(components))
	for _, c := range components {
		if seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

// swizzleComponents returns the selected component indices.
// Matrix elements are encoded as row*4+column. With promoteScalar set, a
// scalar accepts all four component names.
func swizzleComponents(t DataType, swizzle string, promoteScalar bool) ([]int, error) {
	fail := func(reason string) ([]int, error) {
		return nil, &SubscriptError{Subscript: swizzle, Type: t, Reason: reason}
	}
	if swizzle == "" {
		return fail("empty subscript")
	}
	if t.IsMatrix() {
		components, reason := matrixComponents(t, swizzle)
		if reason != "" {
			return fail(reason)
		}
		return components, nil
	}

	if len(swizzle) > 4 {
		return fail("too many components")
	}
	dim := t.VectorDim()
	if promoteScalar && t.IsScalar() {
		dim = 4
	}
	components := make([]int, 0, len(swizzle))
	var set byte // 'x' for xyzw, 'r' for rgba
	for i := 0; i < len(swizzle); i++ {
		idx, s := componentIndex(swizzle[i])
		if idx < 0 {
			return fail(fmt.Sprintf("unknown component '%c'", swizzle[i]))
		}
		if set == 0 {
			set = s
		} else if set != s {
			return fail("mixed component sets")
		}
		if idx >= dim {
			return fail(fmt.Sprintf("component '%c' out of range", swizzle[i]))
		}
		components = append(components, idx)
	}
	return components, nil
}

func componentIndex(c byte) (int, byte) {
	switch c {
	case 'x':
		return 0, 'x'
	case 'y':
		return 1, 'x'
	case 'z':
		return 2, 'x'
	case 'w':
		return 3, 'x'
	case 'r':
		return 0, 'r'
	case 'g':
		return 1, 'r'
	case 'b':
		return 2, 'r'
	case 'a':
		return 3, 'r'
	default:
		return -1, 0
	}
}

func matrixComponents(t DataType, swizzle string) ([]int, string) {
	var components []int
	zeroBased := len(swizzle) > 1 && swizzle[1] == 'm'
	for s := swizzle; s != ""; {
		if s[0] != '_' {
			return nil, "expected '_' in matrix subscript"
		}
		s = s[1:]
		base := 1
		if zeroBased {
			if s == "" || s[0] != 'm' {
				return nil, "mixed matrix subscript forms"
			}
			s = s[1:]
			base = 0
		}
		if len(s) < 2 || !isDigit(s[0]) || !isDigit(s[1]) {
			return nil, "expected row and column digits"
		}
		row, col := int(s[0]-'0')-base, int(s[1]-'0')-base
		if row < 0 || col < 0 || row >= int(t.Rows) || col >= int(t.Columns) {
			return nil, "matrix element out of range"
		}
		components = append(components, row*4+col)
		s = s[2:]
	}
	if len(components) > 4 {
		return nil, "too many components"
	}
	return components, ""
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
