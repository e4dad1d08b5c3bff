// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ast defines the HLSL abstract syntax tree consumed by the analyzer
// and rewritten by the expression converter.
//
// # Components
//
//   - Nodes: declarations, statements and expressions as pointer structs
//     implementing the Decl, Stmt and Expr interfaces
//   - VarIdent: identifier chains such as "light.color.rgb"
//   - Symbols: an arena on Program indexing declarations by SymbolHandle
//   - TypeOf: derivation and caching of expression type denoters
//   - Factory: constructors for nodes synthesized by rewrites
//
// # Ownership
//
// Tree edges are ordinary Go pointers and every node has exactly one
// parent. Resolved identifiers refer back to their declaration through a
// SymbolHandle, never through a tree edge, so rewriting a subtree never
// invalidates a symbol reference.
//
// A parser (not part of this module) builds the tree; type references to
// user types are placeholders (types.Struct with only a Name, types.Alias
// without a Target) until the analyzer binds them.
package ast
