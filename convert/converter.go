// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package convert rewrites analyzed expressions into a form the GLSL
// emitter can print directly.
//
// The converter walks the program depth-first and applies its rewrites
// after the children of a node have been converted:
//   - swizzles on scalar values become casts to the implied vector type
//   - relational operators on vectors become comparison intrinsic calls
//   - implicit conversions become explicit casts
//   - nested unary expressions are parenthesized
package convert

import (
	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/types"
)

// Converter applies the rewrites selected by its flags to a program.
// A Converter may be reused for several programs but not concurrently.
type Converter struct {
	flags Flags
	sink  diag.Sink

	prog  *ast.Program
	funcs ast.FunctionStack
	diags diag.List
}

// New creates a converter. Diagnostics are collected and, if sink is not
// nil, forwarded to it as they are found.
func New(flags Flags, sink diag.Sink) *Converter {
	return &Converter{flags: flags, sink: sink}
}

// Convert rewrites prog in place with the given flags.
func Convert(prog *ast.Program, flags Flags) error {
	return New(flags, nil).Convert(prog)
}

// Flags returns the rewrite selection of the converter.
func (c *Converter) Flags() Flags { return c.flags }

// Convert rewrites prog in place. It returns the collected diagnostics as a
// diag.List if any error was reported.
func (c *Converter) Convert(prog *ast.Program) error {
	c.prog = prog
	c.funcs = ast.FunctionStack{}
	c.diags = nil

	if c.flags == 0 || prog == nil {
		return nil
	}
	for _, stmt := range prog.Stmts {
		c.convertStmt(stmt)
	}
	if c.diags.HasErrors() {
		return c.diags
	}
	return nil
}

// Diagnostics returns the diagnostics of the last Convert call.
func (c *Converter) Diagnostics() diag.List { return c.diags }

func (c *Converter) report(d *diag.Diagnostic) {
	c.diags.Report(d)
	if c.sink != nil {
		c.sink.Report(d)
	}
}

// --- Statements ---

//nolint:gocyclo,cyclop // Statement conversion requires handling all statement kinds
func (c *Converter) convertStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case nil, *ast.NullStmt, *ast.CtrlTransferStmt, *ast.BufferDeclStmt, *ast.SamplerDeclStmt:
	case *ast.CodeBlockStmt:
		c.convertBlock(s)
	case *ast.FunctionDecl:
		c.convertFunctionDecl(s)
	case *ast.VarDeclStmt:
		c.convertVarDeclStmt(s)
	case *ast.StructDeclStmt:
		c.convertStructDecl(s.StructDecl)
	case *ast.AliasDeclStmt:
		c.convertStructDecl(s.StructDecl)
	case *ast.UniformBufferDecl:
		for _, member := range s.Members {
			c.convertVarDeclStmt(member)
		}
	case *ast.ForLoopStmt:
		c.convertStmt(s.Init)
		c.convertExpr(s.Cond)
		c.convertExpr(s.Iter)
		c.convertStmt(s.Body)
		c.subscriptAndCompare(&s.Cond)
		c.subscriptAndCompare(&s.Iter)
	case *ast.WhileLoopStmt:
		c.convertExpr(s.Cond)
		c.convertStmt(s.Body)
		c.subscriptAndCompare(&s.Cond)
	case *ast.DoWhileLoopStmt:
		c.convertStmt(s.Body)
		c.convertExpr(s.Cond)
		c.subscriptAndCompare(&s.Cond)
	case *ast.IfStmt:
		c.convertExpr(s.Cond)
		c.convertStmt(s.Body)
		c.convertStmt(s.Else)
		c.subscriptAndCompare(&s.Cond)
	case *ast.SwitchStmt:
		c.convertExpr(s.Selector)
		for _, sc := range s.Cases {
			c.convertExpr(sc.Expr)
			for _, st := range sc.Stmts {
				c.convertStmt(st)
			}
		}
		c.vectorSubscript(&s.Selector)
	case *ast.ExprStmt:
		c.convertExpr(s.Expr)
		c.subscriptAndCompare(&s.Expr)
	case *ast.ReturnStmt:
		c.convertExpr(s.Expr)
		if s.Expr != nil {
			c.vectorSubscript(&s.Expr)
			if fn := c.funcs.Active(); fn != nil {
				c.castIfRequired(&s.Expr, fn.ReturnTypeDenoter(), true)
			}
		}
	}
}

func (c *Converter) convertBlock(block *ast.CodeBlockStmt) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		c.convertStmt(stmt)
	}
}

func (c *Converter) convertFunctionDecl(fn *ast.FunctionDecl) {
	c.funcs.Push(fn)
	defer c.funcs.Pop()

	for _, param := range fn.Params {
		c.convertVarDeclStmt(param)
	}
	c.convertBlock(fn.Body)
}

func (c *Converter) convertStructDecl(decl *ast.StructDecl) {
	if decl == nil {
		return
	}
	for _, member := range decl.Members {
		c.convertVarDeclStmt(member)
	}
}

func (c *Converter) convertVarDeclStmt(stmt *ast.VarDeclStmt) {
	if stmt == nil {
		return
	}
	for _, decl := range stmt.Decls {
		if decl.Initializer == nil {
			continue
		}
		c.convertExpr(decl.Initializer)
		c.subscriptAndCompare(&decl.Initializer)
		c.castIfRequired(&decl.Initializer, decl.TypeDenoter(), true)
	}
}

// --- Expressions ---

// convertExpr converts the children of e. Rewrites of e itself are applied
// by its parent, which owns the slot e is stored in.
//
//nolint:gocyclo,cyclop // Expression conversion requires handling all expression kinds
func (c *Converter) convertExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case nil, *ast.LiteralExpr, *ast.TypeSpecifierExpr:
	case *ast.TernaryExpr:
		c.convertExpr(e.Cond)
		c.convertExpr(e.Then)
		c.convertExpr(e.Else)
		c.subscriptAndCompare(&e.Cond)
		c.subscriptAndCompare(&e.Then)
		c.subscriptAndCompare(&e.Else)
	case *ast.BinaryExpr:
		c.convertBinary(e)
	case *ast.UnaryExpr:
		c.convertExpr(e.Operand)
		c.subscriptAndCompare(&e.Operand)
		if _, nested := e.Operand.(*ast.UnaryExpr); nested && c.flags.Has(WrapUnaryExpr) {
			WrapInBracket(&e.Operand)
		}
	case *ast.PostUnaryExpr:
		c.convertExpr(e.Operand)
	case *ast.FunctionCallExpr:
		c.convertExpr(e.Prefix)
		c.convertCall(e.Call)
	case *ast.BracketExpr:
		c.convertExpr(e.Expr)
		c.subscriptAndCompare(&e.Expr)
	case *ast.CastExpr:
		c.convertExpr(e.Expr)
		c.subscriptAndCompare(&e.Expr)
	case *ast.SuffixExpr:
		c.convertExpr(e.Expr)
		c.convertVarIdent(e.VarIdent)
	case *ast.ArrayAccessExpr:
		c.convertExpr(e.Expr)
		for i := range e.Indices {
			c.convertExpr(e.Indices[i])
			c.subscriptAndCompare(&e.Indices[i])
		}
	case *ast.VarAccessExpr:
		c.convertVarIdent(e.VarIdent)
		if e.AssignExpr != nil {
			c.convertExpr(e.AssignExpr)
			c.subscriptAndCompare(&e.AssignExpr)
			if t, err := ast.TypeOf(c.prog, e); err == nil {
				c.castIfRequired(&e.AssignExpr, t, true)
			}
		}
	case *ast.ObjectExpr:
		c.convertExpr(e.Prefix)
	case *ast.AssignExpr:
		c.convertExpr(e.Lvalue)
		c.convertExpr(e.Rvalue)
		c.subscriptAndCompare(&e.Rvalue)
		if t, err := ast.TypeOf(c.prog, e.Lvalue); err == nil {
			c.castIfRequired(&e.Rvalue, t, true)
		}
	case *ast.InitializerExpr:
		c.convertList(e.Exprs)
	case *ast.SequenceExpr:
		c.convertList(e.Exprs)
	}
}

func (c *Converter) convertList(exprs []ast.Expr) {
	for i := range exprs {
		c.convertExpr(exprs[i])
		c.subscriptAndCompare(&exprs[i])
	}
}

func (c *Converter) convertVarIdent(v *ast.VarIdent) {
	for seg := v; seg != nil; seg = seg.Next {
		for i := range seg.ArrayIndices {
			c.convertExpr(seg.ArrayIndices[i])
			c.subscriptAndCompare(&seg.ArrayIndices[i])
		}
	}
}

func (c *Converter) convertCall(call *ast.FunctionCall) {
	if call == nil {
		return
	}
	for i := range call.Args {
		c.convertExpr(call.Args[i])
		c.vectorSubscript(&call.Args[i])
	}

	if call.Func == nil {
		return
	}
	fn, ok := c.prog.Symbol(*call.Func).(*ast.FunctionDecl)
	if !ok {
		return
	}
	for i := range call.Args {
		param := fn.Param(i)
		if param == nil {
			break
		}
		// Output arguments must stay addressable.
		if param.DeclStmt != nil && param.DeclStmt.TypeSpecifier != nil && param.DeclStmt.TypeSpecifier.IsOutput {
			continue
		}
		c.castIfRequired(&call.Args[i], param.TypeDenoter(), true)
	}
}

func (c *Converter) convertBinary(e *ast.BinaryExpr) {
	c.convertExpr(e.Lhs)
	c.convertExpr(e.Rhs)
	c.subscriptAndCompare(&e.Lhs)
	c.subscriptAndCompare(&e.Rhs)

	// Scalar-vector products and quotients need no dimension match.
	matchTypeSize := e.Op != ast.BinaryMul && e.Op != ast.BinaryDiv

	lhs, err := ast.TypeOf(c.prog, e.Lhs)
	if err != nil {
		return
	}
	rhs, err := ast.TypeOf(c.prog, e.Rhs)
	if err != nil {
		return
	}
	common := types.Common(lhs, rhs)
	c.castIfRequired(&e.Lhs, common, matchTypeSize)
	c.castIfRequired(&e.Rhs, common, matchTypeSize)

	e.ResetTypeDenoter()
}

// --- Flag-gated rewrites ---

func (c *Converter) subscriptAndCompare(slot *ast.Expr) {
	c.vectorSubscript(slot)
	c.vectorCompare(slot)
}

func (c *Converter) vectorSubscript(slot *ast.Expr) {
	if !c.flags.Has(ConvertVectorSubscripts) || *slot == nil {
		return
	}
	if err := VectorSubscript(c.prog, slot); err != nil {
		c.report(diag.Errorf(diag.KindInvalidSubscript, (*slot).Pos(), "%v", err))
	}
}

func (c *Converter) vectorCompare(slot *ast.Expr) {
	if !c.flags.Has(ConvertVectorCompare) || *slot == nil {
		return
	}
	VectorCompare(c.prog, slot)
}

func (c *Converter) castIfRequired(slot *ast.Expr, target types.TypeDenoter, matchTypeSize bool) {
	if !c.flags.Has(ConvertImplicitCasts) || *slot == nil {
		return
	}
	CastIfRequiredTo(c.prog, slot, target, matchTypeSize)
}
