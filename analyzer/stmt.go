// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/types"
)

func (a *Analyzer) analyzeStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		a.analyzeStmt(stmt)
	}
}

//nolint:gocyclo,cyclop // Statement analysis requires handling all statement kinds
func (a *Analyzer) analyzeStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case nil, *ast.NullStmt:
	case *ast.CodeBlockStmt:
		a.scopes.Open()
		a.analyzeStmts(s.Stmts)
		a.scopes.Close()
	case *ast.FunctionDecl:
		if a.funcs.InsideFunction() {
			a.errorf(diag.KindInvalidStatement, s.Span, "function '%s' cannot be declared inside another function", s.Ident)
			return
		}
		a.analyzeFunctionDecl(s)
	case *ast.VarDeclStmt:
		a.analyzeVarDeclStmt(s, 0)
	case *ast.StructDeclStmt:
		a.analyzeStructDecl(s.StructDecl)
	case *ast.AliasDeclStmt:
		a.analyzeAliasDeclStmt(s)
	case *ast.BufferDeclStmt:
		a.analyzeBufferDeclStmt(s)
	case *ast.SamplerDeclStmt:
		a.analyzeSamplerDeclStmt(s)
	case *ast.UniformBufferDecl:
		if a.funcs.InsideFunction() {
			a.errorf(diag.KindInvalidStatement, s.Span, "uniform buffer '%s' cannot be declared inside a function", s.Ident)
			return
		}
		a.analyzeUniformBufferDecl(s)
	case *ast.ForLoopStmt:
		a.scopes.Open()
		a.analyzeStmt(s.Init)
		if s.Cond != nil {
			a.analyzeCondition(s.Cond)
		}
		a.analyzeExpr(s.Iter)
		a.analyzeLoopBody(s.Body)
		a.scopes.Close()
	case *ast.WhileLoopStmt:
		a.analyzeCondition(s.Cond)
		a.analyzeLoopBody(s.Body)
	case *ast.DoWhileLoopStmt:
		a.analyzeLoopBody(s.Body)
		a.analyzeCondition(s.Cond)
	case *ast.IfStmt:
		a.analyzeCondition(s.Cond)
		a.analyzeStmt(s.Body)
		a.analyzeStmt(s.Else)
	case *ast.SwitchStmt:
		a.analyzeSwitch(s)
	case *ast.ExprStmt:
		a.analyzeExpr(s.Expr)
	case *ast.ReturnStmt:
		a.analyzeReturn(s)
	case *ast.CtrlTransferStmt:
		a.analyzeCtrlTransfer(s)
	default:
		a.errorf(diag.KindInternal, stmt.Pos(), "unexpected statement %T", stmt)
	}
}

func (a *Analyzer) analyzeLoopBody(body ast.Stmt) {
	a.loopDepth++
	a.analyzeStmt(body)
	a.loopDepth--
}

// analyzeCondition analyzes a branch or loop condition, which must have a
// scalar or vector type.
func (a *Analyzer) analyzeCondition(cond ast.Expr) {
	if cond == nil {
		a.errorf(diag.KindInternal, ast.Span{}, "missing condition")
		return
	}
	a.analyzeExpr(cond)
	t, err := ast.TypeOf(a.prog, cond)
	if err != nil {
		return
	}
	if _, ok := types.BaseOf(t); !ok {
		a.errorf(diag.KindTypeMismatch, cond.Pos(), "condition of type '%s' is not a scalar or vector", t)
	}
}

func (a *Analyzer) analyzeSwitch(s *ast.SwitchStmt) {
	a.analyzeExpr(s.Selector)
	if t, err := ast.TypeOf(a.prog, s.Selector); err == nil {
		if dt, ok := types.BaseOf(t); !ok || !dt.IsScalar() {
			a.errorf(diag.KindTypeMismatch, s.Selector.Pos(), "switch selector of type '%s' is not a scalar", t)
		}
	}

	a.switchDepth++
	a.scopes.Open()
	seen := make(map[int64]bool)
	hasDefault := false
	for _, c := range s.Cases {
		if c.Expr == nil {
			if hasDefault {
				a.errorf(diag.KindInvalidStatement, c.Span, "multiple default labels in one switch")
			}
			hasDefault = true
		} else {
			a.analyzeExpr(c.Expr)
			v, err := a.evalInt(c.Expr)
			switch {
			case err != nil:
				a.errorf(diag.KindTypeMismatch, c.Expr.Pos(), "case label must be a constant integer expression: %v", err)
			case seen[v]:
				a.errorf(diag.KindInvalidStatement, c.Expr.Pos(), "duplicate case value %d", v)
			default:
				seen[v] = true
			}
		}
		a.analyzeStmts(c.Stmts)
	}
	a.scopes.Close()
	a.switchDepth--
}

func (a *Analyzer) analyzeReturn(s *ast.ReturnStmt) {
	fn := a.funcs.Active()
	if fn == nil {
		a.errorf(diag.KindInvalidStatement, s.Span, "return statement outside of a function")
		return
	}

	ret := fn.ReturnTypeDenoter()
	if s.Expr == nil {
		if !types.IsVoid(ret) {
			a.errorf(diag.KindInvalidStatement, s.Span, "function '%s' must return a value of type '%s'", fn.Ident, ret)
		}
		return
	}

	a.analyzeExpr(s.Expr)
	if types.IsVoid(ret) {
		a.errorf(diag.KindInvalidStatement, s.Span, "void function '%s' must not return a value", fn.Ident)
		return
	}
	a.checkAssignable(ret, s.Expr)
}

func (a *Analyzer) analyzeCtrlTransfer(s *ast.CtrlTransferStmt) {
	switch s.Transfer {
	case ast.CtrlBreak:
		if a.loopDepth == 0 && a.switchDepth == 0 {
			a.errorf(diag.KindInvalidStatement, s.Span, "'break' outside of a loop or switch")
		}
	case ast.CtrlContinue:
		if a.loopDepth == 0 {
			a.errorf(diag.KindInvalidStatement, s.Span, "'continue' outside of a loop")
		}
	case ast.CtrlDiscard:
		fn := a.funcs.Active()
		if fn == nil {
			a.errorf(diag.KindInvalidStatement, s.Span, "'discard' outside of a function")
			return
		}
		a.discards = append(a.discards, discardStmt{fn: fn, stmt: s})
	}
}
