// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/shader"
	"github.com/OscarGame/XShaderCompiler/types"
)

// analyzeEntryPoint validates the main entry point against the target
// stage and binds its input/output semantics.
func (a *Analyzer) analyzeEntryPoint(fn *ast.FunctionDecl) {
	a.checkEntryPointAttributes(fn)

	switch a.input.Stage {
	case shader.StageGeometry:
		a.requireVoid(fn)
		a.geometryParams(fn)
	case shader.StageCompute:
		a.requireVoid(fn)
	}

	a.bindEntryPointIO(fn)
}

func (a *Analyzer) requireVoid(fn *ast.FunctionDecl) {
	if ret := fn.ReturnTypeDenoter(); !types.IsVoid(ret) {
		a.errorf(diag.KindTypeMismatch, fn.Span, "%s entry point '%s' must return void, not '%s'",
			a.input.Stage, fn.Ident, ret)
	}
}

// geometryParams finds the output stream and the input primitive of a
// geometry entry point.
func (a *Analyzer) geometryParams(fn *ast.FunctionDecl) {
	layout := &a.prog.LayoutGeometry
	for _, param := range fn.Params {
		spec := param.TypeSpecifier
		if spec == nil {
			continue
		}
		if buf, ok := types.Resolve(spec.Type).(*types.Buffer); ok && buf.Kind.IsStream() {
			if !spec.IsOutput {
				a.errorf(diag.KindTypeMismatch, param.Span, "stream output parameter of '%s' must be declared inout", fn.Ident)
			}
			layout.OutputPrimitive = buf.Kind
		}
		if spec.Primitive != ast.PrimitiveUndefined {
			layout.InputPrimitive = spec.Primitive
		}
	}
	if layout.OutputPrimitive == types.BufferUndefined {
		a.errorf(diag.KindTypeMismatch, fn.Span, "geometry entry point '%s' requires a stream output parameter", fn.Ident)
	}
	if layout.InputPrimitive == ast.PrimitiveUndefined {
		a.errorf(diag.KindTypeMismatch, fn.Span, "geometry entry point '%s' requires an input parameter with a primitive type", fn.Ident)
	}
}

// ioBinder collects the interface variables of one entry point.
type ioBinder struct {
	a       *Analyzer
	fn      *ast.FunctionDecl
	outputs map[string]bool
}

// bindEntryPointIO binds every parameter and the return value of fn to the
// shader interface.
func (a *Analyzer) bindEntryPointIO(fn *ast.FunctionDecl) {
	b := &ioBinder{a: a, fn: fn, outputs: make(map[string]bool)}
	fn.InputSemantics = nil
	fn.OutputSemantics = nil

	for _, param := range fn.Params {
		spec := param.TypeSpecifier
		if spec == nil || spec.IsUniform {
			continue
		}
		var dir ioDirection
		if spec.IsInput || !spec.IsOutput {
			dir |= dirIn
		}
		if spec.IsOutput {
			dir |= dirOut
		}
		for _, d := range param.Decls {
			b.bind(d, d.TypeDenoter(), dir)
		}
	}

	ret := fn.ReturnTypeDenoter()
	switch types.Resolve(ret).(type) {
	case *types.Void:
	case *types.Struct:
		b.bindStruct(ret, dirOut)
	default:
		result := &ast.VarDecl{Semantic: fn.Semantic, Type: ret, Span: fn.Span}
		b.bind(result, ret, dirOut)
	}
}

func (b *ioBinder) bind(d *ast.VarDecl, t types.TypeDenoter, dir ioDirection) {
	switch rt := types.Resolve(t).(type) {
	case *types.Struct:
		b.bindStruct(rt, dir)
	case *types.Array:
		b.bind(d, rt.Element, dir)
	case *types.Buffer:
		switch {
		case rt.Kind.IsStream():
			b.bind(d, rt.ElementType(), dirOut)
		case rt.Kind.IsPatch():
			b.bind(d, rt.ElementType(), dirIn)
		}
	case *types.Base:
		b.bindBase(d, dir)
	}
}

// bindStruct binds every member of a structure, inherited members first.
func (b *ioBinder) bindStruct(t types.TypeDenoter, dir ioDirection) {
	st, ok := types.Resolve(t).(*types.Struct)
	if !ok {
		return
	}
	if st.Base != nil {
		b.bindStruct(st.Base, dir)
	}
	decl, ok := b.a.structs[st]
	if !ok {
		return
	}
	for _, stmt := range decl.Members {
		for _, m := range stmt.Decls {
			b.bind(m, m.TypeDenoter(), dir)
		}
	}
}

func (b *ioBinder) bindBase(d *ast.VarDecl, dir ioDirection) {
	a, fn := b.a, b.fn
	sem := d.Semantic
	if !sem.IsValid() {
		a.errorf(diag.KindInvalidSemantic, d.Span, "missing semantic for %s of entry point '%s'", quoteName(d.Ident), fn.Ident)
		return
	}
	if !semanticAllowed(a.input.Stage, sem, dir) {
		if sem.IsSystemValue() {
			a.errorf(diag.KindInvalidSemantic, d.Span, "system value '%s' is not a valid %s of %s shaders", sem, dir, a.input.Stage)
		} else {
			a.errorf(diag.KindInvalidSemantic, d.Span, "user-defined semantic '%s' is not a valid %s of %s shaders", sem, dir, a.input.Stage)
		}
		return
	}
	if sem.IsSystemValue() {
		d.Flags |= ast.VarSystemValue
	}

	if dir&dirIn != 0 {
		d.Flags |= ast.VarShaderInput
		fn.InputSemantics = append(fn.InputSemantics, d)
	}
	if dir&dirOut != 0 {
		if b.outputs[sem.Key()] {
			a.errorf(diag.KindInvalidSemantic, d.Span, "duplicate output semantic '%s' in entry point '%s'", sem, fn.Ident)
			return
		}
		b.outputs[sem.Key()] = true
		d.Flags |= ast.VarShaderOutput
		fn.OutputSemantics = append(fn.OutputSemantics, d)
	}
}

func quoteName(ident string) string {
	if ident == "" {
		return "return value"
	}
	return "'" + ident + "'"
}
