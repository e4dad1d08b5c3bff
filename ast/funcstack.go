// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

// FunctionStack tracks the function declarations a tree walk is inside of.
// The zero value is an empty stack.
type FunctionStack struct {
	decls []*FunctionDecl
}

// Push enters a function.
func (s *FunctionStack) Push(f *FunctionDecl) { s.decls = append(s.decls, f) }

// Pop leaves the innermost function.
func (s *FunctionStack) Pop() {
	if len(s.decls) > 0 {
		s.decls = s.decls[:len(s.decls)-1]
	}
}

// Active returns the innermost function, or nil outside of any function.
func (s *FunctionStack) Active() *FunctionDecl {
	if len(s.decls) == 0 {
		return nil
	}
	return s.decls[len(s.decls)-1]
}

// InsideFunction reports whether the walk is inside a function body.
func (s *FunctionStack) InsideFunction() bool { return len(s.decls) > 0 }

// InsideEntryPoint reports whether any function on the stack is the entry
// point.
func (s *FunctionStack) InsideEntryPoint() bool {
	for _, f := range s.decls {
		if f.Flags.Has(FuncEntryPoint) {
			return true
		}
	}
	return false
}
