// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package types defines the semantic type model shared by the analyzer and
// the expression converter.
//
// # Structure
//
// The model is organized around two layers:
//   - DataType: a comparable value encoding scalar kind and arity
//     (scalar, vector-N, matrix-RxC)
//   - TypeDenoter: a closed set of semantic types (Void, Base, Struct,
//     Buffer, Sampler, Array, Alias) that wrap data types and user types
//
// On top of the model the package provides the widening join used for
// binary operators (Common), swizzle projection (Subscript) and the cast
// rule engine (MustCastToDataType, MustCast) that decides whether an
// implicit conversion must become an explicit cast in the target dialect.
//
// All functions in this package are pure: they never mutate their inputs.
package types
