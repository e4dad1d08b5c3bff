// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/symtab"
	"github.com/OscarGame/XShaderCompiler/types"
)

// --- Type resolution ---

// resolveType binds the unresolved structure and alias references in t to
// their declarations.
func (a *Analyzer) resolveType(t types.TypeDenoter, span ast.Span) types.TypeDenoter {
	switch t := t.(type) {
	case *types.Struct:
		if _, ok := a.structs[t]; ok || t.Members != nil || t.Name == "" {
			return t
		}
		return a.resolveTypeName(t.Name, t, span)
	case *types.Alias:
		if t.Target != nil {
			return t
		}
		return a.resolveTypeName(t.Name, t, span)
	case *types.Array:
		elem := a.resolveType(t.Element, span)
		if elem == t.Element {
			return t
		}
		return &types.Array{Element: elem, Dims: t.Dims}
	case *types.Buffer:
		if t.Element == nil {
			return t
		}
		elem := a.resolveType(t.Element, span)
		if elem == t.Element {
			return t
		}
		resolved := *t
		resolved.Element = elem
		return &resolved
	default:
		return t
	}
}

// resolveTypeName returns the type declared under name. On failure the
// error is reported and fallback is returned.
func (a *Analyzer) resolveTypeName(name string, fallback types.TypeDenoter, span ast.Span) types.TypeDenoter {
	syms := a.scopes.Lookup(name)
	if len(syms) == 0 {
		a.errorf(diag.KindUndeclaredIdentifier, span, "undeclared type '%s'", name)
		return fallback
	}
	switch d := syms[0].Decl.(type) {
	case *ast.StructDecl:
		return d.Type
	case *ast.AliasDecl:
		return &types.Alias{Name: d.Ident, Target: d.Type}
	default:
		a.errorf(diag.KindTypeMismatch, span, "'%s' does not name a type", name)
		return fallback
	}
}

// arrayDims evaluates array dimension expressions. Only the outermost
// dimension may be left unsized.
func (a *Analyzer) arrayDims(dims []ast.Expr, span ast.Span) []int {
	if len(dims) == 0 {
		return nil
	}
	sizes := make([]int, len(dims))
	for i, dim := range dims {
		if dim == nil {
			if i > 0 {
				a.errorf(diag.KindTypeMismatch, span, "only the outermost array dimension may be unsized")
			}
			continue
		}
		a.analyzeExpr(dim)
		v, err := a.evalInt(dim)
		switch {
		case err != nil:
			a.errorf(diag.KindTypeMismatch, dim.Pos(), "array dimension must be a constant integer expression: %v", err)
		case v < 0:
			a.errorf(diag.KindTypeMismatch, dim.Pos(), "array dimension must not be negative, got %d", v)
		default:
			sizes[i] = int(v)
		}
	}
	return sizes
}

func wrapArray(t types.TypeDenoter, dims []int) types.TypeDenoter {
	if len(dims) == 0 || t == nil {
		return t
	}
	return &types.Array{Element: t, Dims: dims}
}

// convertible reports whether a value of type source can be used where
// target is expected, possibly through an implicit conversion.
func convertible(target, source types.TypeDenoter) bool {
	if types.Equal(target, source) {
		return true
	}
	_, targetIsBase := types.BaseOf(target)
	_, sourceIsBase := types.BaseOf(source)
	return targetIsBase && sourceIsBase
}

// checkAssignable reports an error if value cannot initialize or be
// assigned to a location of type target.
func (a *Analyzer) checkAssignable(target types.TypeDenoter, value ast.Expr) {
	if target == nil || value == nil {
		return
	}
	if _, ok := value.(*ast.InitializerExpr); ok {
		return
	}
	source, err := ast.TypeOf(a.prog, value)
	if err != nil {
		return
	}
	if !convertible(target, source) {
		a.errorf(diag.KindTypeMismatch, value.Pos(), "cannot convert from '%s' to '%s'", source, target)
	}
}

// --- Variables ---

func (a *Analyzer) analyzeVarDeclStmt(stmt *ast.VarDeclStmt, flags ast.VarFlags) {
	spec := stmt.TypeSpecifier
	if spec == nil {
		a.errorf(diag.KindInternal, stmt.Span, "variable declaration without type specifier")
		return
	}
	spec.Type = a.resolveType(spec.Type, spec.Span)
	if types.IsVoid(spec.Type) {
		a.errorf(diag.KindTypeMismatch, spec.Span, "variables cannot have type 'void'")
	}
	for _, decl := range stmt.Decls {
		decl.DeclStmt = stmt
		a.analyzeVarDecl(decl, flags)
	}
}

func (a *Analyzer) analyzeVarDecl(decl *ast.VarDecl, flags ast.VarFlags) {
	spec := decl.DeclStmt.TypeSpecifier
	decl.Type = wrapArray(spec.Type, a.arrayDims(decl.ArrayDims, decl.Span))
	decl.Flags |= flags
	if a.funcs.InsideEntryPoint() {
		decl.Flags |= ast.VarEntryPointLocal
	}

	if decl.Initializer != nil {
		a.analyzeExpr(decl.Initializer)
		a.checkAssignable(decl.Type, decl.Initializer)
	}
	a.declare(decl.Ident, symtab.KindVariable, decl, decl.Span, nil)
}

// --- Types ---

func (a *Analyzer) analyzeStructDecl(decl *ast.StructDecl) {
	if decl == nil {
		return
	}
	if decl.Type == nil {
		decl.Type = &types.Struct{}
	}
	st := decl.Type
	st.Name = decl.Ident
	st.Members = make([]types.Member, 0, len(decl.Members))
	a.structs[st] = decl

	if decl.BaseIdent != "" {
		base := a.resolveTypeName(decl.BaseIdent, nil, decl.Span)
		if bs, ok := types.Resolve(base).(*types.Struct); ok {
			st.Base = bs
		} else if base != nil {
			a.errorf(diag.KindTypeMismatch, decl.Span, "base type '%s' of '%s' is not a structure", decl.BaseIdent, decl.Ident)
		}
	}

	members := make(map[string]*ast.VarDecl)
	for _, stmt := range decl.Members {
		spec := stmt.TypeSpecifier
		if spec == nil {
			continue
		}
		spec.Type = a.resolveType(spec.Type, spec.Span)
		for _, m := range stmt.Decls {
			m.DeclStmt = stmt
			_, inherited := a.memberDecl(st.Base, m.Ident)
			if _, dup := members[m.Ident]; dup || inherited {
				a.errorf(diag.KindRedeclaration, m.Span, "duplicate member '%s' in structure '%s'", m.Ident, st)
				continue
			}
			m.Type = wrapArray(spec.Type, a.arrayDims(m.ArrayDims, m.Span))
			m.Flags |= ast.VarStructMember
			if m.Initializer != nil {
				a.analyzeExpr(m.Initializer)
				a.checkAssignable(m.Type, m.Initializer)
			}
			members[m.Ident] = m
			st.Members = append(st.Members, types.Member{Name: m.Ident, Type: m.Type})
			a.handle(m)
		}
	}
	a.members[st] = members

	a.declare(decl.Ident, symtab.KindStruct, decl, decl.Span, nil)
}

func (a *Analyzer) analyzeAliasDeclStmt(stmt *ast.AliasDeclStmt) {
	if stmt.StructDecl != nil {
		a.analyzeStructDecl(stmt.StructDecl)
	}
	for _, d := range stmt.Decls {
		if d.Type == nil && stmt.StructDecl != nil {
			d.Type = stmt.StructDecl.Type
		}
		d.Type = a.resolveType(d.Type, d.Span)
		a.declare(d.Ident, symtab.KindAlias, d, d.Span, nil)
	}
}

// --- Objects ---

func (a *Analyzer) analyzeBufferDeclStmt(stmt *ast.BufferDeclStmt) {
	if stmt.Type == nil {
		a.errorf(diag.KindInternal, stmt.Span, "buffer declaration without type")
		return
	}
	if buf, ok := a.resolveType(stmt.Type, stmt.Span).(*types.Buffer); ok {
		stmt.Type = buf
	}
	if stmt.Type.Kind.IsTexture() && !a.input.ShaderModel.SupportsTextureObjects() {
		a.errorf(diag.KindUnsupportedFeature, stmt.Span, "texture objects require SM 4.0 or higher, target is %s", a.input.ShaderModel)
	}
	for _, d := range stmt.Decls {
		d.DeclStmt = stmt
		d.Type = wrapArray(stmt.Type, a.arrayDims(d.ArrayDims, d.Span))
		a.declare(d.Ident, symtab.KindBuffer, d, d.Span, nil)
	}
}

func (a *Analyzer) analyzeSamplerDeclStmt(stmt *ast.SamplerDeclStmt) {
	if stmt.Type == nil {
		a.errorf(diag.KindInternal, stmt.Span, "sampler declaration without type")
		return
	}
	for _, d := range stmt.Decls {
		d.DeclStmt = stmt
		d.Type = wrapArray(stmt.Type, a.arrayDims(d.ArrayDims, d.Span))
		a.declare(d.Ident, symtab.KindSampler, d, d.Span, nil)
	}
}

func (a *Analyzer) analyzeUniformBufferDecl(decl *ast.UniformBufferDecl) {
	a.declare(decl.Ident, symtab.KindUniformBuffer, decl, decl.Span, nil)
	for _, stmt := range decl.Members {
		a.analyzeVarDeclStmt(stmt, ast.VarUniformMember)
	}
}

// --- Functions ---

func (a *Analyzer) analyzeFunctionDecl(fn *ast.FunctionDecl) {
	if fn.ReturnType != nil {
		fn.ReturnType.Type = a.resolveType(fn.ReturnType.Type, fn.ReturnType.Span)
	}
	for _, param := range fn.Params {
		spec := param.TypeSpecifier
		if spec == nil {
			continue
		}
		spec.Type = a.resolveType(spec.Type, spec.Span)
		for _, d := range param.Decls {
			d.DeclStmt = param
			d.Type = wrapArray(spec.Type, a.arrayDims(d.ArrayDims, d.Span))
		}
	}

	a.declare(fn.Ident, symtab.KindFunction, fn, fn.Span, functionPolicy)

	isEntryPoint := fn.Body != nil && fn.Ident == a.input.EntryPoint
	if isEntryPoint {
		if a.prog.EntryPoint != nil {
			a.errorf(diag.KindDuplicateEntryPoint, fn.Span, "entry point '%s' is defined more than once", fn.Ident)
			isEntryPoint = false
		} else {
			a.prog.EntryPoint = fn
			fn.Flags |= ast.FuncEntryPoint
			a.analyzeEntryPoint(fn)
		}
	}

	a.funcs.Push(fn)
	a.scopes.Open()
	for _, param := range fn.Params {
		for _, d := range param.Decls {
			if isEntryPoint {
				d.Flags |= ast.VarEntryPointLocal
			}
			if d.Initializer != nil {
				a.analyzeExpr(d.Initializer)
				a.checkAssignable(d.Type, d.Initializer)
			}
			a.declare(d.Ident, symtab.KindVariable, d, d.Span, nil)
		}
	}
	if fn.Body != nil {
		a.analyzeStmts(fn.Body.Stmts)
	}
	a.scopes.Close()
	a.funcs.Pop()
}
