// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package convert

import (
	"fmt"
	"strings"
)

// Flags selects the rewrite categories applied by the converter.
type Flags uint8

const (
	// ConvertVectorSubscripts materializes swizzles on scalar values as
	// casts to the implied vector type.
	ConvertVectorSubscripts Flags = 1 << iota

	// ConvertVectorCompare lowers relational operators on vectors to
	// comparison intrinsics.
	ConvertVectorCompare

	// ConvertImplicitCasts inserts casts where the target dialect has no
	// implicit conversion.
	ConvertImplicitCasts

	// WrapUnaryExpr parenthesizes a unary expression nested in another.
	WrapUnaryExpr

	// All enables every rewrite.
	All = ConvertVectorSubscripts | ConvertVectorCompare | ConvertImplicitCasts | WrapUnaryExpr
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{ConvertVectorSubscripts, "vector-subscripts"},
	{ConvertVectorCompare, "vector-compare"},
	{ConvertImplicitCasts, "implicit-casts"},
	{WrapUnaryExpr, "wrap-unary"},
}

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Names returns the textual names of the set flags.
func (f Flags) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

// String returns the set flags joined by '|', or "none".
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	return strings.Join(f.Names(), "|")
}

// ParseFlag parses one textual flag name. "all" selects every rewrite and
// "none" selects nothing.
func ParseFlag(name string) (Flags, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "all":
		return All, nil
	case "none":
		return 0, nil
	default:
		for _, fn := range flagNames {
			if fn.name == n {
				return fn.flag, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown conversion flag %q", name)
}

// ParseFlags combines several textual flag names.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, name := range names {
		v, err := ParseFlag(name)
		if err != nil {
			return 0, err
		}
		f |= v
	}
	return f, nil
}
