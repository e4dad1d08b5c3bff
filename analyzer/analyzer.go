// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package analyzer performs semantic analysis of HLSL programs.
//
// The analyzer resolves identifiers against nested scopes, binds type
// names and function calls (user overloads and intrinsics), checks
// assignment targets and validates the entry point of the target stage: its
// attributes and its input/output semantics. Results are stored in the AST
// (symbol references, resolved types, call targets and layouts) so that
// later passes can rely on them.
//
// All independent errors are reported in one pass; Analyze fails if any
// error was reported.
package analyzer

import (
	"errors"

	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/shader"
	"github.com/OscarGame/XShaderCompiler/symtab"
	"github.com/OscarGame/XShaderCompiler/types"
)

// DefaultEntryPoint is used when Input.EntryPoint is empty.
const DefaultEntryPoint = "main"

// Input describes the shader being analyzed.
type Input struct {
	Stage       shader.Stage
	ShaderModel shader.ShaderModel

	// EntryPoint names the main entry point.
	EntryPoint string

	// SecondaryEntryPoint names the patch constant function whose
	// tessellation attributes a domain shader inherits.
	SecondaryEntryPoint string

	// PreferWrappers keeps legacy sampler intrinsics (tex2D etc.) instead
	// of replacing them with texture object methods.
	PreferWrappers bool

	// WarnShadowing reports local declarations that hide outer ones.
	WarnShadowing bool
}

// VertexSemantic assigns an explicit location to a vertex input semantic.
type VertexSemantic struct {
	Semantic string `json:"semantic" yaml:"semantic"`
	Location int    `json:"location" yaml:"location"`
}

// Output describes the expected shader interface.
type Output struct {
	VertexSemantics []VertexSemantic
}

// Analyzer holds the state of one analysis. It is not safe for concurrent
// use; separate Analyzers may analyze separate programs concurrently.
type Analyzer struct {
	input  Input
	output Output
	sink   diag.Sink

	prog    *ast.Program
	scopes  *symtab.Table
	funcs   ast.FunctionStack
	handles map[ast.Decl]ast.SymbolHandle
	structs map[*types.Struct]*ast.StructDecl
	members map[*types.Struct]map[string]*ast.VarDecl
	diags   diag.List

	loopDepth   int
	switchDepth int

	// Call graph and discard statements, for fragment reachability.
	calls    map[*ast.FunctionDecl][]*ast.FunctionDecl
	discards []discardStmt
}

type discardStmt struct {
	fn   *ast.FunctionDecl
	stmt *ast.CtrlTransferStmt
}

// New creates an analyzer. Diagnostics are collected and, if sink is not
// nil, forwarded to it as they are found.
func New(input Input, output Output, sink diag.Sink) *Analyzer {
	if input.EntryPoint == "" {
		input.EntryPoint = DefaultEntryPoint
	}
	return &Analyzer{input: input, output: output, sink: sink}
}

// Analyze runs a new Analyzer on prog.
func Analyze(prog *ast.Program, input Input, output Output, sink diag.Sink) error {
	return New(input, output, sink).Analyze(prog)
}

// Analyze decorates prog in place. It returns the collected diagnostics as
// a diag.List if any error was reported.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	a.reset(prog)

	a.checkTarget()
	a.checkOutput()
	for _, stmt := range prog.Stmts {
		a.analyzeStmt(stmt)
	}
	a.finishEntryPoints()
	a.markFragmentReachable()
	a.bindVertexSemantics()

	if a.diags.HasErrors() {
		return a.diags
	}
	return nil
}

// CheckConfiguration validates the input and output descriptors without a
// program: the stage against the shader model and the vertex semantic
// locations. Analyze performs the same checks.
func (a *Analyzer) CheckConfiguration() error {
	a.diags = nil
	a.checkTarget()
	a.checkOutput()
	if a.diags.HasErrors() {
		return a.diags
	}
	return nil
}

// CheckConfiguration runs a new Analyzer's CheckConfiguration.
func CheckConfiguration(input Input, output Output, sink diag.Sink) error {
	return New(input, output, sink).CheckConfiguration()
}

// Diagnostics returns the diagnostics of the last Analyze call.
func (a *Analyzer) Diagnostics() diag.List { return a.diags }

func (a *Analyzer) reset(prog *ast.Program) {
	a.prog = prog
	a.scopes = symtab.New()
	a.funcs = ast.FunctionStack{}
	a.handles = make(map[ast.Decl]ast.SymbolHandle)
	a.structs = make(map[*types.Struct]*ast.StructDecl)
	a.members = make(map[*types.Struct]map[string]*ast.VarDecl)
	a.calls = make(map[*ast.FunctionDecl][]*ast.FunctionDecl)
	a.diags = nil
	a.discards = nil
	a.loopDepth = 0
	a.switchDepth = 0

	prog.EntryPoint = nil
	prog.SecondaryEntryPoint = nil
	prog.LayoutTessControl = ast.TessControlLayout{}
	prog.LayoutTessEvaluation = ast.TessEvaluationLayout{}
	prog.LayoutGeometry = ast.GeometryLayout{}
	prog.LayoutFragment = ast.FragmentLayout{}
	prog.LayoutCompute = ast.ComputeLayout{}
}

func (a *Analyzer) checkTarget() {
	stage, sm := a.input.Stage, a.input.ShaderModel
	switch {
	case stage == shader.StageUndefined:
		a.errorf(diag.KindUnsupportedFeature, ast.Span{}, "shader stage is not specified")
	case !stage.SupportedBy(sm):
		a.errorf(diag.KindUnsupportedFeature, ast.Span{}, "%s shaders require %s or higher, profile %s does not exist",
			stage, stage.MinShaderModel(), stage.Profile(sm))
	}
	if a.input.SecondaryEntryPoint != "" && stage != shader.StageTessEvaluation {
		a.warnf(diag.KindUnsupportedFeature, ast.Span{}, "secondary entry point '%s' is ignored for %s shaders",
			a.input.SecondaryEntryPoint, stage)
	}
}

// checkOutput validates the vertex semantic table: every entry names a
// semantic once and locations are distinct and non-negative.
func (a *Analyzer) checkOutput() {
	vss := a.output.VertexSemantics
	if len(vss) > 0 && a.input.Stage != shader.StageVertex {
		a.warnf(diag.KindInvalidSemantic, ast.Span{}, "vertex semantics are ignored for %s shaders", a.input.Stage)
	}
	semantics := make(map[string]bool, len(vss))
	locations := make(map[int]string, len(vss))
	for _, vs := range vss {
		sem := ast.ParseSemantic(vs.Semantic)
		switch {
		case !sem.IsValid():
			a.errorf(diag.KindInvalidSemantic, ast.Span{}, "vertex semantic at location %d has no name", vs.Location)
			continue
		case semantics[sem.Key()]:
			a.errorf(diag.KindInvalidSemantic, ast.Span{}, "vertex semantic '%s' is listed more than once", vs.Semantic)
		}
		semantics[sem.Key()] = true

		if vs.Location < 0 {
			a.errorf(diag.KindInvalidSemantic, ast.Span{}, "vertex semantic '%s' has negative location %d", vs.Semantic, vs.Location)
			continue
		}
		if prev, ok := locations[vs.Location]; ok {
			a.errorf(diag.KindInvalidSemantic, ast.Span{}, "vertex semantics '%s' and '%s' share location %d",
				prev, vs.Semantic, vs.Location)
			continue
		}
		locations[vs.Location] = vs.Semantic
	}
}

// --- Diagnostics ---

func (a *Analyzer) report(d *diag.Diagnostic) {
	a.diags.Report(d)
	if a.sink != nil {
		a.sink.Report(d)
	}
}

func (a *Analyzer) errorf(kind diag.Kind, span ast.Span, format string, args ...any) {
	a.report(diag.Errorf(kind, span, format, args...))
}

func (a *Analyzer) warnf(kind diag.Kind, span ast.Span, format string, args ...any) {
	a.report(diag.Warningf(kind, span, format, args...))
}

// --- Symbols ---

// handle returns the arena handle of d, adding d on first use.
func (a *Analyzer) handle(d ast.Decl) ast.SymbolHandle {
	if h, ok := a.handles[d]; ok {
		return h
	}
	h := a.prog.AddSymbol(d)
	a.handles[d] = h
	return h
}

// ref returns a new back-reference to d.
func (a *Analyzer) ref(d ast.Decl) *ast.SymbolHandle {
	h := a.handle(d)
	return &h
}

var errFunctionRedefined = errors.New("function is already defined")

// declare registers d under name in the innermost scope.
func (a *Analyzer) declare(name string, kind symtab.Kind, d ast.Decl, span ast.Span, policy symtab.OverridePolicy) {
	if name == "" {
		return
	}
	if a.input.WarnShadowing && !a.scopes.IsGlobal() && a.scopes.Shadows(name) {
		a.warnf(diag.KindRedeclaration, span, "declaration of '%s' shadows a previous declaration", name)
	}

	sym := symtab.Symbol{Kind: kind, Handle: a.handle(d), Decl: d}
	err := a.scopes.Register(name, sym, policy)
	switch {
	case err == nil:
	case errors.Is(err, errFunctionRedefined):
		a.errorf(diag.KindRedeclaration, span, "redefinition of function '%s'", name)
	default:
		prev := a.scopes.LookupCurrent(name)
		a.errorf(diag.KindRedeclaration, span, "redefinition of '%s' (previously declared as %s)", name, prev[0].Kind)
	}
}

// functionPolicy accepts function overloads with distinct parameter types
// and links forward declarations to their definition.
func functionPolicy(prev []symtab.Symbol, sym symtab.Symbol) error {
	fn, ok := sym.Decl.(*ast.FunctionDecl)
	if !ok {
		return symtab.ErrRedeclared
	}
	for _, p := range prev {
		other, ok := p.Decl.(*ast.FunctionDecl)
		if !ok {
			return symtab.ErrRedeclared
		}
		if !sameSignature(fn, other) {
			continue
		}
		switch {
		case other.IsForwardDecl() && !fn.IsForwardDecl():
			other.Definition = fn
		case !other.IsForwardDecl() && fn.IsForwardDecl():
			fn.Definition = other
		case other.IsForwardDecl() && fn.IsForwardDecl():
		default:
			return errFunctionRedefined
		}
	}
	return nil
}

func sameSignature(f1, f2 *ast.FunctionDecl) bool {
	if len(f1.Params) != len(f2.Params) {
		return false
	}
	for i := range f1.Params {
		p1, p2 := f1.Param(i), f2.Param(i)
		if p1 == nil || p2 == nil || !types.Equal(p1.TypeDenoter(), p2.TypeDenoter()) {
			return false
		}
	}
	return true
}

// lookupValue resolves an identifier used as a value.
func (a *Analyzer) lookupValue(name string, span ast.Span) (symtab.Symbol, bool) {
	syms := a.scopes.Lookup(name)
	if len(syms) == 0 {
		a.errorf(diag.KindUndeclaredIdentifier, span, "undeclared identifier '%s'", name)
		return symtab.Symbol{}, false
	}
	sym := syms[0]
	switch sym.Kind {
	case symtab.KindVariable, symtab.KindBuffer, symtab.KindSampler:
		return sym, true
	default:
		a.errorf(diag.KindTypeMismatch, span, "%s '%s' cannot be used as a value", sym.Kind, name)
		return symtab.Symbol{}, false
	}
}

// lookupType returns the type symbol declared under name, if the innermost
// declaration of name is a type.
func (a *Analyzer) lookupType(name string) (symtab.Symbol, bool) {
	syms := a.scopes.Lookup(name)
	if len(syms) == 0 || !syms[0].Kind.IsType() {
		return symtab.Symbol{}, false
	}
	return syms[0], true
}

// memberDecl finds the declaration of a structure member, including
// inherited members.
func (a *Analyzer) memberDecl(st *types.Struct, name string) (*ast.VarDecl, bool) {
	for cur := st; cur != nil; cur = cur.Base {
		if d, ok := a.members[cur][name]; ok {
			return d, true
		}
	}
	return nil, false
}

// --- Post-pass ---

func (a *Analyzer) finishEntryPoints() {
	if a.prog.EntryPoint == nil {
		a.errorf(diag.KindMissingEntryPoint, ast.Span{}, "entry point '%s' not found", a.input.EntryPoint)
	}
	switch {
	case a.input.Stage == shader.StageTessEvaluation && a.input.SecondaryEntryPoint != "":
		a.analyzeSecondaryEntryPoint(a.input.SecondaryEntryPoint)
	case a.input.Stage == shader.StageTessControl && a.prog.SecondaryEntryPoint != nil:
		// The patch constant function may be declared after the entry point.
		a.bindEntryPointIO(a.prog.SecondaryEntryPoint)
	}
}

// markFragmentReachable flags every function reachable from a fragment
// entry point and warns about discard statements elsewhere.
func (a *Analyzer) markFragmentReachable() {
	if a.input.Stage == shader.StageFragment && a.prog.EntryPoint != nil {
		var visit func(fn *ast.FunctionDecl)
		visit = func(fn *ast.FunctionDecl) {
			if fn == nil || fn.Flags.Has(ast.FuncFragmentReachable) {
				return
			}
			fn.Flags |= ast.FuncFragmentReachable
			visit(fn.Definition)
			for _, callee := range a.calls[fn] {
				visit(callee)
			}
		}
		visit(a.prog.EntryPoint)
	}

	for _, d := range a.discards {
		if !d.fn.Flags.Has(ast.FuncFragmentReachable) {
			a.warnf(diag.KindInvalidStatement, d.stmt.Span,
				"'discard' in function '%s' which is not reachable from a fragment shader entry point", d.fn.Ident)
		}
	}
}

// bindVertexSemantics assigns the locations of the output descriptor to
// the matching vertex shader inputs.
func (a *Analyzer) bindVertexSemantics() {
	ep := a.prog.EntryPoint
	if a.input.Stage != shader.StageVertex || ep == nil {
		return
	}
	for _, vs := range a.output.VertexSemantics {
		want := ast.ParseSemantic(vs.Semantic)
		found := false
		for _, in := range ep.InputSemantics {
			if in.Semantic.Key() == want.Key() {
				loc := vs.Location
				in.Location = &loc
				found = true
			}
		}
		if !found {
			a.warnf(diag.KindInvalidSemantic, ep.Span,
				"vertex semantic '%s' does not match any input of entry point '%s'", vs.Semantic, ep.Ident)
		}
	}
}
