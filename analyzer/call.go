// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"fmt"
	"strings"

	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/symtab"
	"github.com/OscarGame/XShaderCompiler/types"
)

func (a *Analyzer) analyzeCall(e *ast.FunctionCallExpr) {
	call := e.Call
	if call == nil {
		a.errorf(diag.KindInternal, e.Span, "function call expression without call")
		return
	}
	a.analyzeExprs(call.Args)

	switch {
	case call.Constructor != nil:
		a.analyzeConstructor(call)
	case e.Prefix != nil:
		a.analyzeMethodCall(e)
	default:
		a.analyzeFreeCall(call)
	}
}

// argTypes returns the types of all call arguments. It fails if any
// argument could not be typed; that error has already been reported.
func (a *Analyzer) argTypes(args []ast.Expr) ([]types.TypeDenoter, bool) {
	ts := make([]types.TypeDenoter, len(args))
	for i, arg := range args {
		t, err := ast.TypeOf(a.prog, arg)
		if err != nil {
			return nil, false
		}
		ts[i] = t
	}
	return ts, true
}

func (a *Analyzer) analyzeConstructor(call *ast.FunctionCall) {
	call.Constructor = a.resolveType(call.Constructor, call.Span)
	target, ok := types.BaseOf(call.Constructor)
	if !ok {
		return
	}
	args, ok := a.argTypes(call.Args)
	if !ok {
		return
	}

	components := 0
	for i, t := range args {
		dt, ok := types.BaseOf(t)
		if !ok {
			a.errorf(diag.KindTypeMismatch, call.Args[i].Pos(), "cannot construct '%s' from '%s'", target, t)
			return
		}
		components += dt.Components()
	}
	if len(args) == 1 && components == 1 {
		return
	}
	if components != target.Components() {
		a.errorf(diag.KindTypeMismatch, call.Span, "constructor '%s' expects %d components, got %d",
			target, target.Components(), components)
	}
}

func (a *Analyzer) analyzeMethodCall(e *ast.FunctionCallExpr) {
	call := e.Call
	if _, ok := a.typePrefix(e.Prefix); ok || e.IsStatic {
		a.errorf(diag.KindUnsupportedFeature, e.Span, "static member function '%s' is not supported", call.Ident)
		return
	}

	a.analyzeExpr(e.Prefix)
	t, err := ast.TypeOf(a.prog, e.Prefix)
	if err != nil {
		return
	}
	switch rt := types.Resolve(t).(type) {
	case *types.Buffer:
		ent, ok := LookupMethod(rt.Kind, call.Ident)
		if !ok {
			a.errorf(diag.KindUnresolvedCall, e.Span, "'%s' has no method '%s'", rt, call.Ident)
			return
		}
		a.bindIntrinsic(call, ent, rt)
	case *types.Struct:
		a.errorf(diag.KindUnsupportedFeature, e.Span, "member function '%s' of '%s' is not supported", call.Ident, rt)
	default:
		a.errorf(diag.KindTypeMismatch, e.Span, "type '%s' has no method '%s'", t, call.Ident)
	}
}

func (a *Analyzer) analyzeFreeCall(call *ast.FunctionCall) {
	syms := a.scopes.Lookup(call.Ident)
	if len(syms) > 0 {
		if syms[0].Kind == symtab.KindFunction {
			a.resolveOverload(call, syms)
		} else {
			a.errorf(diag.KindTypeMismatch, call.Span, "%s '%s' is not a function", syms[0].Kind, call.Ident)
		}
		return
	}

	ent, ok := LookupIntrinsic(call.Ident)
	if !ok {
		a.errorf(diag.KindUndeclaredIdentifier, call.Span, "undeclared function '%s'", call.Ident)
		return
	}
	if !a.input.PreferWrappers {
		if inner, ok := wrapperTarget(ent.Intrinsic, len(call.Args)); ok {
			call.Ident = inner.Intrinsic.String()
			ent = inner
		}
	}
	a.bindIntrinsic(call, ent, nil)
}

// bindIntrinsic checks the arguments of an intrinsic call and records its
// target and return type.
func (a *Analyzer) bindIntrinsic(call *ast.FunctionCall, ent IntrinsicEntry, object *types.Buffer) {
	n := len(call.Args)
	if n < ent.MinArgs || n > ent.MaxArgs {
		want := fmt.Sprint(ent.MinArgs)
		if ent.MaxArgs != ent.MinArgs {
			want = fmt.Sprintf("%d to %d", ent.MinArgs, ent.MaxArgs)
		}
		a.errorf(diag.KindUnresolvedCall, call.Span, "intrinsic '%s' expects %s arguments, got %d", call.Ident, want, n)
		return
	}
	if a.input.ShaderModel < ent.MinShaderModel {
		a.errorf(diag.KindUnsupportedFeature, call.Span, "intrinsic '%s' requires %s or higher, target is %s",
			call.Ident, ent.MinShaderModel, a.input.ShaderModel)
		return
	}

	args, ok := a.argTypes(call.Args)
	if !ok {
		return
	}
	ret, err := ent.Return.apply(args, object)
	if err != nil {
		a.errorf(diag.KindTypeMismatch, call.Span, "invalid call to '%s': %v", call.Ident, err)
		return
	}
	call.Intrinsic = ent.Intrinsic
	call.ReturnType = ret
}

// --- Overload resolution ---

type candidate struct {
	fn   *ast.FunctionDecl
	cost int
}

// resolveOverload selects the user function a call binds to: candidates
// are filtered by argument count, then the one with the cheapest implicit
// conversions wins.
func (a *Analyzer) resolveOverload(call *ast.FunctionCall, syms []symtab.Symbol) {
	args, ok := a.argTypes(call.Args)
	if !ok {
		return
	}

	var viable []candidate
	for _, sym := range syms {
		fn, ok := sym.Decl.(*ast.FunctionDecl)
		if !ok || (fn.IsForwardDecl() && fn.Definition != nil) {
			continue
		}
		if len(args) < fn.NumMinArgs() || len(args) > len(fn.Params) {
			continue
		}
		if cost, ok := signatureCost(fn, args); ok {
			viable = append(viable, candidate{fn: fn, cost: cost})
		}
	}

	if len(viable) == 0 {
		a.errorf(diag.KindUnresolvedCall, call.Span, "no overload of '%s' takes arguments (%s)", call.Ident, typeList(args))
		return
	}
	best := viable[0]
	tie := false
	for _, c := range viable[1:] {
		switch {
		case c.cost < best.cost:
			best, tie = c, false
		case c.cost == best.cost:
			tie = true
		}
	}
	if tie {
		a.errorf(diag.KindAmbiguousCall, call.Span, "call to '%s' with arguments (%s) is ambiguous", call.Ident, typeList(args))
		return
	}

	fn := best.fn
	call.Func = a.ref(fn)
	for i, arg := range call.Args {
		if isOutputParam(fn.Param(i)) {
			a.checkLValue(arg, fmt.Sprintf("argument %d of '%s'", i+1, fn.Ident))
		}
	}
	if caller := a.funcs.Active(); caller != nil {
		a.calls[caller] = append(a.calls[caller], fn)
	}
}

func isOutputParam(p *ast.VarDecl) bool {
	return p != nil && p.DeclStmt != nil && p.DeclStmt.TypeSpecifier != nil && p.DeclStmt.TypeSpecifier.IsOutput
}

func signatureCost(fn *ast.FunctionDecl, args []types.TypeDenoter) (int, bool) {
	total := 0
	for i, arg := range args {
		p := fn.Param(i)
		if p == nil {
			return 0, false
		}
		c, ok := conversionCost(p.TypeDenoter(), arg)
		if !ok {
			return 0, false
		}
		total += c
	}
	return total, true
}

// conversionCost rates the implicit conversion of an argument to a
// parameter type: 0 for an exact match, 1 for a kind change, 2 for scalar
// promotion, 3 for vector truncation.
func conversionCost(param, arg types.TypeDenoter) (int, bool) {
	if types.Equal(param, arg) {
		return 0, true
	}
	p, ok := types.BaseOf(param)
	if !ok {
		return 0, false
	}
	q, ok := types.BaseOf(arg)
	if !ok {
		return 0, false
	}
	switch {
	case p.Rows == q.Rows && p.Columns == q.Columns:
		return 1, true
	case q.IsScalar():
		return 2, true
	case p.IsVector() && q.IsVector() && p.Rows < q.Rows, p.IsScalar() && q.IsVector():
		return 3, true
	default:
		return 0, false
	}
}

func typeList(ts []types.TypeDenoter) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
