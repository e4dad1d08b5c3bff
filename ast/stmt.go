// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

// NullStmt represents an empty statement (";").
type NullStmt struct {
	Span Span
}

func (s *NullStmt) Pos() Span { return s.Span }
func (s *NullStmt) stmtNode() {}

// CodeBlockStmt represents a braced statement list.
type CodeBlockStmt struct {
	Stmts []Stmt
	Span  Span
}

func (s *CodeBlockStmt) Pos() Span { return s.Span }
func (s *CodeBlockStmt) stmtNode() {}

// ForLoopStmt represents for (init; cond; iter) body.
type ForLoopStmt struct {
	Init Stmt // may be nil
	Cond Expr // may be nil
	Iter Expr // may be nil
	Body Stmt
	Span Span
}

func (s *ForLoopStmt) Pos() Span { return s.Span }
func (s *ForLoopStmt) stmtNode() {}

// WhileLoopStmt represents while (cond) body.
type WhileLoopStmt struct {
	Cond Expr
	Body Stmt
	Span Span
}

func (s *WhileLoopStmt) Pos() Span { return s.Span }
func (s *WhileLoopStmt) stmtNode() {}

// DoWhileLoopStmt represents do body while (cond);
type DoWhileLoopStmt struct {
	Body Stmt
	Cond Expr
	Span Span
}

func (s *DoWhileLoopStmt) Pos() Span { return s.Span }
func (s *DoWhileLoopStmt) stmtNode() {}

// IfStmt represents if (cond) body [else Else].
type IfStmt struct {
	Cond Expr
	Body Stmt
	Else Stmt // may be nil
	Span Span
}

func (s *IfStmt) Pos() Span { return s.Span }
func (s *IfStmt) stmtNode() {}

// SwitchStmt represents a switch statement.
type SwitchStmt struct {
	Selector Expr
	Cases    []*SwitchCase
	Span     Span
}

func (s *SwitchStmt) Pos() Span { return s.Span }
func (s *SwitchStmt) stmtNode() {}

// SwitchCase is one case label and its statements. A nil Expr marks the
// default case.
type SwitchCase struct {
	Expr  Expr
	Stmts []Stmt
	Span  Span
}

// ExprStmt represents an expression evaluated for its side effects.
type ExprStmt struct {
	Expr Expr
	Span Span
}

func (s *ExprStmt) Pos() Span { return s.Span }
func (s *ExprStmt) stmtNode() {}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Expr Expr // nil for "return;"
	Span Span
}

func (s *ReturnStmt) Pos() Span { return s.Span }
func (s *ReturnStmt) stmtNode() {}

// CtrlTransfer is a control transfer keyword.
type CtrlTransfer uint8

const (
	CtrlBreak CtrlTransfer = iota
	CtrlContinue
	CtrlDiscard
)

func (c CtrlTransfer) String() string {
	switch c {
	case CtrlBreak:
		return "break"
	case CtrlContinue:
		return "continue"
	case CtrlDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// CtrlTransferStmt represents break, continue or discard.
type CtrlTransferStmt struct {
	Transfer CtrlTransfer
	Span     Span
}

func (s *CtrlTransferStmt) Pos() Span { return s.Span }
func (s *CtrlTransferStmt) stmtNode() {}
