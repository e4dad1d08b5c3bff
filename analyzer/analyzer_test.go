// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/shader"
	"github.com/OscarGame/XShaderCompiler/types"
)

// --- AST fixtures ---

func baseSpec(dt types.DataType) *ast.TypeSpecifier {
	return &ast.TypeSpecifier{Type: types.NewBase(dt)}
}

func intLit(v int) *ast.LiteralExpr {
	return &ast.LiteralExpr{Value: strconv.Itoa(v), DataType: types.Int}
}

func floatLit(v string) *ast.LiteralExpr {
	return &ast.LiteralExpr{Value: v, DataType: types.Float}
}

func boolLit(v bool) *ast.LiteralExpr {
	return &ast.LiteralExpr{Value: strconv.FormatBool(v), DataType: types.Bool}
}

func strLit(s string) *ast.LiteralExpr {
	return &ast.LiteralExpr{Value: strconv.Quote(s)}
}

func ref(path string) *ast.VarAccessExpr {
	return &ast.VarAccessExpr{VarIdent: ast.NewVarIdent(path, ast.Span{})}
}

func assign(path string, value ast.Expr) *ast.VarAccessExpr {
	e := ref(path)
	e.AssignOp = ast.AssignSet
	e.AssignExpr = value
	return e
}

func local(name string, dt types.DataType, init ast.Expr) *ast.VarDeclStmt {
	return ast.NewVarDeclStmt(baseSpec(dt), &ast.VarDecl{Ident: name, Initializer: init})
}

func constLocal(name string, dt types.DataType, init ast.Expr) *ast.VarDeclStmt {
	spec := baseSpec(dt)
	spec.IsConst = true
	spec.IsStatic = true
	return ast.NewVarDeclStmt(spec, &ast.VarDecl{Ident: name, Initializer: init})
}

func param(name string, dt types.DataType, semantic string) *ast.VarDeclStmt {
	return ast.NewVarDeclStmt(baseSpec(dt), &ast.VarDecl{Ident: name, Semantic: ast.ParseSemantic(semantic)})
}

func outParam(name string, dt types.DataType, semantic string) *ast.VarDeclStmt {
	p := param(name, dt, semantic)
	p.TypeSpecifier.IsOutput = true
	return p
}

func call(name string, args ...ast.Expr) *ast.FunctionCallExpr {
	return &ast.FunctionCallExpr{Call: &ast.FunctionCall{Ident: name, Args: args}}
}

func exprStmt(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Expr: e} }

func block(stmts ...ast.Stmt) *ast.CodeBlockStmt { return &ast.CodeBlockStmt{Stmts: stmts} }

func attr(name string, args ...ast.Expr) *ast.Attribute {
	return ast.NewAttribute(name, ast.Span{}, args...)
}

// vertexMain declares "float4 main(params) : SV_Position { body }".
func vertexMain(params []*ast.VarDeclStmt, body ...ast.Stmt) *ast.FunctionDecl {
	return &ast.FunctionDecl{
		Ident:      "main",
		ReturnType: baseSpec(types.Float4),
		Params:     params,
		Semantic:   ast.ParseSemantic("SV_Position"),
		Body:       block(body...),
	}
}

func voidFunc(name string, params []*ast.VarDeclStmt, body ...ast.Stmt) *ast.FunctionDecl {
	return &ast.FunctionDecl{Ident: name, Params: params, Body: block(body...)}
}

func structDecl(name string, members ...*ast.VarDeclStmt) *ast.StructDeclStmt {
	return &ast.StructDeclStmt{StructDecl: &ast.StructDecl{Ident: name, Members: members}}
}

var (
	vertexInput   = Input{Stage: shader.StageVertex, ShaderModel: shader.ShaderModel5_0}
	fragmentInput = Input{Stage: shader.StageFragment, ShaderModel: shader.ShaderModel5_0}
	computeInput  = Input{Stage: shader.StageCompute, ShaderModel: shader.ShaderModel5_0}
)

func analyze(input Input, stmts ...ast.Stmt) (*ast.Program, diag.List, error) {
	prog := &ast.Program{Stmts: stmts}
	a := New(input, Output{}, nil)
	err := a.Analyze(prog)
	return prog, a.Diagnostics(), err
}

// requireKind asserts that analysis failed with at least one error of the
// given kind.
func requireKind(t *testing.T, err error, diags diag.List, kind diag.Kind) {
	t.Helper()
	require.Error(t, err)
	var list diag.List
	require.ErrorAs(t, err, &list)
	assert.NotEmpty(t, diags.Errors().ByKind(kind), "expected a %s error, got: %v", kind, diags)
}

// --- Target and entry point ---

func TestAnalyze_Target(t *testing.T) {
	_, diags, err := analyze(Input{ShaderModel: shader.ShaderModel5_0}, vertexMain(nil))
	requireKind(t, err, diags, diag.KindUnsupportedFeature)

	_, diags, err = analyze(Input{Stage: shader.StageGeometry, ShaderModel: shader.ShaderModel3_0}, vertexMain(nil))
	requireKind(t, err, diags, diag.KindUnsupportedFeature)
}

func TestAnalyze_EntryPoint(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		main := vertexMain(nil)
		prog, _, err := analyze(vertexInput, main)
		require.NoError(t, err)
		assert.Same(t, main, prog.EntryPoint)
		assert.True(t, main.Flags.Has(ast.FuncEntryPoint))
	})

	t.Run("custom name", func(t *testing.T) {
		vs := vertexMain(nil)
		vs.Ident = "VS"
		input := vertexInput
		input.EntryPoint = "VS"
		prog, _, err := analyze(input, vs)
		require.NoError(t, err)
		assert.Same(t, vs, prog.EntryPoint)
	})

	t.Run("missing", func(t *testing.T) {
		_, diags, err := analyze(vertexInput, voidFunc("helper", nil))
		requireKind(t, err, diags, diag.KindMissingEntryPoint)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, diags, err := analyze(vertexInput, vertexMain(nil), vertexMain(nil))
		requireKind(t, err, diags, diag.KindDuplicateEntryPoint)
		requireKind(t, err, diags, diag.KindRedeclaration)
	})
}

// --- Compute ---

func TestCompute_NumThreads(t *testing.T) {
	n := constLocal("N", types.Int, intLit(4))
	main := voidFunc("main", nil)
	main.Attributes = []*ast.Attribute{
		attr("numthreads", &ast.BinaryExpr{Op: ast.BinaryMul, Lhs: ref("N"), Rhs: intLit(2)}, intLit(8), intLit(1)),
	}

	prog, diags, err := analyze(computeInput, n, main)
	require.NoError(t, err, "%v", diags)
	assert.Equal(t, [3]int{8, 8, 1}, prog.LayoutCompute.NumThreads)
}

func TestCompute_NumThreadsErrors(t *testing.T) {
	tests := []struct {
		name  string
		attrs []*ast.Attribute
		kind  diag.Kind
	}{
		{"missing", nil, diag.KindMissingAttribute},
		{"too few arguments", []*ast.Attribute{attr("numthreads", intLit(8), intLit(8))}, diag.KindInvalidAttributeValue},
		{"negative", []*ast.Attribute{attr("numthreads", intLit(8), &ast.UnaryExpr{Op: ast.UnaryNegate, Operand: intLit(1)}, intLit(1))}, diag.KindInvalidAttributeValue},
		{"not constant", []*ast.Attribute{attr("numthreads", floatLit("2.5"), intLit(1), intLit(1))}, diag.KindInvalidAttributeValue},
		{"wrong stage attribute", []*ast.Attribute{attr("numthreads", intLit(1), intLit(1), intLit(1)), attr("earlydepthstencil")}, diag.KindInvalidAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main := voidFunc("main", nil)
			main.Attributes = tt.attrs
			_, diags, err := analyze(computeInput, main)
			requireKind(t, err, diags, tt.kind)
		})
	}
}

func TestCompute_MustReturnVoid(t *testing.T) {
	main := vertexMain(nil)
	main.Attributes = []*ast.Attribute{attr("numthreads", intLit(1), intLit(1), intLit(1))}
	main.Semantic = ast.IndexedSemantic{}
	_, diags, err := analyze(computeInput, main)
	requireKind(t, err, diags, diag.KindTypeMismatch)
}

func TestAttributes_Unknown(t *testing.T) {
	main := vertexMain(nil)
	main.Attributes = []*ast.Attribute{attr("fancy")}
	_, diags, err := analyze(vertexInput, main)
	require.NoError(t, err)
	assert.Len(t, diags.Warnings().ByKind(diag.KindInvalidAttribute), 1)
}

// --- Tessellation ---

func patchConstantFunc() *ast.FunctionDecl {
	tess := outParam("tess", types.Float, "SV_TessFactor")
	tess.Decls[0].ArrayDims = []ast.Expr{intLit(3)}
	inner := outParam("inner", types.Float, "SV_InsideTessFactor")
	return voidFunc("PatchConst", []*ast.VarDeclStmt{tess, inner})
}

func hullMain(attrs ...*ast.Attribute) *ast.FunctionDecl {
	main := vertexMain(nil)
	main.Semantic = ast.ParseSemantic("POSITION")
	main.Attributes = attrs
	return main
}

func hullAttrs() []*ast.Attribute {
	return []*ast.Attribute{
		attr("domain", strLit("tri")),
		attr("partitioning", strLit("fractional_odd")),
		attr("outputtopology", strLit("triangle_cw")),
		attr("outputcontrolpoints", intLit(3)),
		attr("patchconstantfunc", strLit("PatchConst")),
		attr("maxtessfactor", floatLit("64.0")),
	}
}

func TestHull_Attributes(t *testing.T) {
	pcf := patchConstantFunc()
	input := Input{Stage: shader.StageTessControl, ShaderModel: shader.ShaderModel5_0}
	prog, diags, err := analyze(input, pcf, hullMain(hullAttrs()...))
	require.NoError(t, err, "%v", diags)

	assert.Equal(t, ast.TessEvaluationLayout{
		Domain:         ast.DomainTri,
		Partitioning:   ast.PartitioningFractionalOdd,
		OutputTopology: ast.OutputTopologyTriangleCW,
	}, prog.LayoutTessEvaluation)
	assert.Equal(t, 3, prog.LayoutTessControl.OutputControlPoints)
	assert.InDelta(t, 64.0, prog.LayoutTessControl.MaxTessFactor, 1e-9)
	assert.Same(t, pcf, prog.LayoutTessControl.PatchConstFunc)
	assert.Same(t, pcf, prog.SecondaryEntryPoint)
	assert.True(t, pcf.Flags.Has(ast.FuncSecondaryEntryPoint))
	assert.Len(t, pcf.OutputSemantics, 2)
}

func TestHull_AttributeErrors(t *testing.T) {
	replace := func(kind ast.AttributeKind, a *ast.Attribute) []*ast.Attribute {
		var out []*ast.Attribute
		for _, h := range hullAttrs() {
			switch {
			case h.Kind != kind:
				out = append(out, h)
			case a != nil:
				out = append(out, a)
			}
		}
		return out
	}

	tests := []struct {
		name  string
		attrs []*ast.Attribute
		kind  diag.Kind
	}{
		{"invalid domain", replace(ast.AttributeDomain, attr("domain", strLit("hexagon"))), diag.KindInvalidAttributeValue},
		{"invalid partitioning", replace(ast.AttributePartitioning, attr("partitioning", strLit("pow3"))), diag.KindInvalidAttributeValue},
		{"invalid topology", replace(ast.AttributeOutputTopology, attr("outputtopology", strLit("quad"))), diag.KindInvalidAttributeValue},
		{"too many control points", replace(ast.AttributeOutputControlPoints, attr("outputcontrolpoints", intLit(33))), diag.KindInvalidAttributeValue},
		{"non-string domain", replace(ast.AttributeDomain, attr("domain", intLit(3))), diag.KindInvalidAttributeValue},
		{"unknown patch function", replace(ast.AttributePatchConstantFunc, attr("patchconstantfunc", strLit("Nope"))), diag.KindInvalidAttributeValue},
		{"missing partitioning", replace(ast.AttributePartitioning, nil), diag.KindMissingAttribute},
		{"missing patch function", replace(ast.AttributePatchConstantFunc, nil), diag.KindMissingAttribute},
	}

	input := Input{Stage: shader.StageTessControl, ShaderModel: shader.ShaderModel5_0}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags, err := analyze(input, patchConstantFunc(), hullMain(tt.attrs...))
			requireKind(t, err, diags, tt.kind)
		})
	}
}

func TestDomain_SecondaryEntryPoint(t *testing.T) {
	pcf := patchConstantFunc()
	pcf.Attributes = []*ast.Attribute{
		attr("domain", strLit("quad")),
		attr("partitioning", strLit("integer")),
	}
	main := hullMain(attr("domain", strLit("tri")))
	main.Params = []*ast.VarDeclStmt{param("uvw", types.Float3, "SV_DomainLocation")}

	input := Input{
		Stage:               shader.StageTessEvaluation,
		ShaderModel:         shader.ShaderModel5_0,
		SecondaryEntryPoint: "PatchConst",
	}
	prog, diags, err := analyze(input, pcf, main)
	require.NoError(t, err, "%v", diags)
	assert.Same(t, pcf, prog.SecondaryEntryPoint)
	assert.Equal(t, ast.DomainTri, prog.LayoutTessEvaluation.Domain)
	assert.Equal(t, ast.PartitioningInteger, prog.LayoutTessEvaluation.Partitioning)

	input.SecondaryEntryPoint = "Missing"
	_, diags, err = analyze(input, patchConstantFunc(), hullMain(attr("domain", strLit("tri"))))
	requireKind(t, err, diags, diag.KindMissingEntryPoint)
}

// --- Geometry ---

func TestGeometry_EntryPoint(t *testing.T) {
	gsOut := structDecl("GSOut", param("pos", types.Float4, "SV_Position"))

	input := param("input", types.Float4, "SV_Position")
	input.TypeSpecifier.Primitive = ast.PrimitiveTriangle
	input.Decls[0].ArrayDims = []ast.Expr{intLit(3)}

	stream := ast.NewVarDeclStmt(&ast.TypeSpecifier{
		Type:     &types.Buffer{Kind: types.BufferTriangleStream, Element: &types.Struct{Name: "GSOut"}},
		IsInput:  true,
		IsOutput: true,
	}, &ast.VarDecl{Ident: "stream"})

	main := voidFunc("main", []*ast.VarDeclStmt{input, stream})
	main.Attributes = []*ast.Attribute{attr("maxvertexcount", intLit(3))}

	gsInput := Input{Stage: shader.StageGeometry, ShaderModel: shader.ShaderModel5_0}
	prog, diags, err := analyze(gsInput, gsOut, main)
	require.NoError(t, err, "%v", diags)
	assert.Equal(t, ast.GeometryLayout{
		MaxVertices:     3,
		InputPrimitive:  ast.PrimitiveTriangle,
		OutputPrimitive: types.BufferTriangleStream,
	}, prog.LayoutGeometry)
	require.Len(t, main.InputSemantics, 1)
	require.Len(t, main.OutputSemantics, 1)
	assert.Equal(t, "pos", main.OutputSemantics[0].Ident)

	bare := voidFunc("main", nil)
	bare.Attributes = []*ast.Attribute{attr("maxvertexcount", intLit(3))}
	_, diags, err = analyze(gsInput, bare)
	requireKind(t, err, diags, diag.KindTypeMismatch)
}

// --- Semantics ---

func TestSemantics_Vertex(t *testing.T) {
	main := vertexMain([]*ast.VarDeclStmt{
		param("pos", types.Float4, "POSITION"),
		param("id", types.UInt, "SV_VertexID"),
	})
	_, diags, err := analyze(vertexInput, main)
	require.NoError(t, err, "%v", diags)

	require.Len(t, main.InputSemantics, 2)
	pos := main.InputSemantics[0]
	assert.Equal(t, "pos", pos.Ident)
	assert.True(t, pos.Flags.Has(ast.VarShaderInput|ast.VarEntryPointLocal))
	assert.False(t, pos.Flags.Has(ast.VarSystemValue))
	assert.True(t, main.InputSemantics[1].Flags.Has(ast.VarSystemValue))

	require.Len(t, main.OutputSemantics, 1)
	ret := main.OutputSemantics[0]
	assert.Equal(t, ast.SemanticPosition, ret.Semantic.Semantic)
	assert.True(t, ret.Flags.Has(ast.VarShaderOutput|ast.VarSystemValue))
}

func TestSemantics_Errors(t *testing.T) {
	withTarget := vertexMain(nil)
	withTarget.Semantic = ast.ParseSemantic("SV_Target")

	noSemantic := vertexMain([]*ast.VarDeclStmt{param("pos", types.Float4, "")})

	dup := structDecl("VSOut",
		param("a", types.Float4, "SV_Position"),
		param("b", types.Float4, "SV_Position"),
	)
	dupMain := vertexMain(nil)
	dupMain.ReturnType = &ast.TypeSpecifier{Type: &types.Struct{Name: "VSOut"}}
	dupMain.Semantic = ast.IndexedSemantic{}

	computeUser := voidFunc("main", []*ast.VarDeclStmt{param("x", types.Float, "TEXCOORD0")})
	computeUser.Attributes = []*ast.Attribute{attr("numthreads", intLit(1), intLit(1), intLit(1))}

	tests := []struct {
		name  string
		input Input
		stmts []ast.Stmt
	}{
		{"system value wrong stage", vertexInput, []ast.Stmt{withTarget}},
		{"missing semantic", vertexInput, []ast.Stmt{noSemantic}},
		{"duplicate output", vertexInput, []ast.Stmt{dup, dupMain}},
		{"user-defined compute input", computeInput, []ast.Stmt{computeUser}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags, err := analyze(tt.input, tt.stmts...)
			requireKind(t, err, diags, diag.KindInvalidSemantic)
		})
	}
}

func TestSemantics_ComputeSystemValues(t *testing.T) {
	main := voidFunc("main", []*ast.VarDeclStmt{param("id", types.UInt3, "SV_DispatchThreadID")})
	main.Attributes = []*ast.Attribute{attr("numthreads", intLit(64), intLit(1), intLit(1))}
	_, diags, err := analyze(computeInput, main)
	require.NoError(t, err, "%v", diags)
	assert.Len(t, main.InputSemantics, 1)
}

func TestSemantics_UniformParameterIsNotIO(t *testing.T) {
	scale := param("scale", types.Float, "")
	scale.TypeSpecifier.IsUniform = true
	main := vertexMain([]*ast.VarDeclStmt{scale})
	_, diags, err := analyze(vertexInput, main)
	require.NoError(t, err, "%v", diags)
	assert.Empty(t, main.InputSemantics)
}

func TestVertexSemantics_Locations(t *testing.T) {
	main := vertexMain([]*ast.VarDeclStmt{param("pos", types.Float4, "POSITION")})
	prog := &ast.Program{Stmts: []ast.Stmt{main}}
	output := Output{VertexSemantics: []VertexSemantic{
		{Semantic: "position", Location: 3},
		{Semantic: "NORMAL", Location: 1},
	}}

	var forwarded diag.List
	err := Analyze(prog, vertexInput, output, &forwarded)
	require.NoError(t, err)

	loc := main.InputSemantics[0].Location
	require.NotNil(t, loc)
	assert.Equal(t, 3, *loc)
	assert.Len(t, forwarded.Warnings().ByKind(diag.KindInvalidSemantic), 1)
}

func TestCheckConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		output   []VertexSemantic
		wantErr  bool
		warnings int
	}{
		{name: "valid", input: vertexInput, output: []VertexSemantic{{"POSITION", 0}, {"TEXCOORD0", 1}}},
		{name: "stage not in shader model", input: Input{Stage: shader.StageTessControl, ShaderModel: shader.ShaderModel4_1}, wantErr: true},
		{name: "undefined stage", input: Input{ShaderModel: shader.ShaderModel5_0}, wantErr: true},
		{name: "shared location", input: vertexInput, output: []VertexSemantic{{"POSITION", 0}, {"NORMAL", 0}}, wantErr: true},
		{name: "negative location", input: vertexInput, output: []VertexSemantic{{"POSITION", -1}}, wantErr: true},
		{name: "repeated semantic", input: vertexInput, output: []VertexSemantic{{"position", 0}, {"POSITION", 1}}, wantErr: true},
		{name: "unnamed semantic", input: vertexInput, output: []VertexSemantic{{"", 0}}, wantErr: true},
		{name: "semantics on fragment stage", input: fragmentInput, output: []VertexSemantic{{"POSITION", 0}}, warnings: 1},
		{name: "secondary entry point outside domain stage", input: Input{Stage: shader.StageVertex, ShaderModel: shader.ShaderModel5_0, SecondaryEntryPoint: "PC"}, warnings: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var forwarded diag.List
			err := CheckConfiguration(tt.input, Output{VertexSemantics: tt.output}, &forwarded)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, forwarded.HasErrors())
				return
			}
			require.NoError(t, err, "%v", forwarded)
			assert.Len(t, forwarded.Warnings(), tt.warnings)
		})
	}
}

func TestAnalyze_ChecksConfiguration(t *testing.T) {
	main := vertexMain([]*ast.VarDeclStmt{param("pos", types.Float4, "POSITION")})
	output := Output{VertexSemantics: []VertexSemantic{{"POSITION", 0}, {"NORMAL", 0}}}
	a := New(vertexInput, output, nil)
	err := a.Analyze(&ast.Program{Stmts: []ast.Stmt{main}})
	requireKind(t, err, a.Diagnostics(), diag.KindInvalidSemantic)
}

// --- Declarations and scopes ---

func TestDeclarations_Redeclaration(t *testing.T) {
	_, diags, err := analyze(vertexInput,
		local("a", types.Float, nil),
		local("a", types.Int, nil),
		vertexMain(nil),
	)
	requireKind(t, err, diags, diag.KindRedeclaration)
}

func TestDeclarations_Shadowing(t *testing.T) {
	input := vertexInput
	input.WarnShadowing = true
	_, diags, err := analyze(input,
		local("a", types.Float, nil),
		vertexMain(nil, local("a", types.Int, nil)),
	)
	require.NoError(t, err)
	assert.Len(t, diags.Warnings().ByKind(diag.KindRedeclaration), 1)
}

func TestDeclarations_ScopesClose(t *testing.T) {
	_, diags, err := analyze(vertexInput, vertexMain(nil,
		block(local("inner", types.Float, nil)),
		exprStmt(ref("inner")),
	))
	requireKind(t, err, diags, diag.KindUndeclaredIdentifier)
}

func TestDeclarations_BatchErrors(t *testing.T) {
	_, diags, err := analyze(vertexInput, vertexMain(nil,
		exprStmt(ref("x")),
		exprStmt(ref("y")),
	))
	require.Error(t, err)
	assert.Len(t, diags.ByKind(diag.KindUndeclaredIdentifier), 2)
}

func TestDeclarations_UnknownType(t *testing.T) {
	v := ast.NewVarDeclStmt(&ast.TypeSpecifier{Type: &types.Struct{Name: "Light"}}, &ast.VarDecl{Ident: "l"})
	_, diags, err := analyze(vertexInput, v, vertexMain(nil))
	requireKind(t, err, diags, diag.KindUndeclaredIdentifier)
}

func TestDeclarations_StructMembers(t *testing.T) {
	light := structDecl("Light",
		param("color", types.Float3, ""),
		param("intensity", types.Float, ""),
	)
	l := ast.NewVarDeclStmt(&ast.TypeSpecifier{Type: &types.Struct{Name: "Light"}}, &ast.VarDecl{Ident: "l"})
	access := ref("l.color.rg")
	main := vertexMain(nil, exprStmt(access))

	prog, diags, err := analyze(vertexInput, light, l, main)
	require.NoError(t, err, "%v", diags)

	member := access.VarIdent.Next
	require.NotNil(t, member.Symbol)
	decl, ok := prog.Symbol(*member.Symbol).(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "color", decl.Ident)
	assert.True(t, decl.Flags.Has(ast.VarStructMember))
	assert.Nil(t, member.Next.Symbol)

	typ, err := ast.TypeOf(prog, access)
	require.NoError(t, err)
	assert.Equal(t, types.NewBase(types.Float2), typ)

	dup := structDecl("Bad", param("x", types.Float, ""), param("x", types.Int, ""))
	_, diags, err = analyze(vertexInput, dup, vertexMain(nil))
	requireKind(t, err, diags, diag.KindRedeclaration)

	l2 := ast.NewVarDeclStmt(&ast.TypeSpecifier{Type: &types.Struct{Name: "Light"}}, &ast.VarDecl{Ident: "l"})
	_, diags, err = analyze(vertexInput, structDecl("Light", param("color", types.Float3, "")), l2,
		vertexMain(nil, exprStmt(ref("l.radius"))))
	requireKind(t, err, diags, diag.KindUndeclaredIdentifier)
}

func TestDeclarations_InvalidSwizzle(t *testing.T) {
	_, diags, err := analyze(vertexInput, vertexMain(nil,
		local("v", types.Float2, nil),
		exprStmt(ref("v.z")),
	))
	requireKind(t, err, diags, diag.KindInvalidSubscript)
}

func TestDeclarations_ScalarSwizzle(t *testing.T) {
	read := &ast.ExprStmt{Expr: ref("s.yy")}
	prog, diags, err := analyze(vertexInput, vertexMain(nil,
		local("s", types.Float, nil),
		read,
	))
	require.NoError(t, err, "%v", diags)
	td, err := ast.TypeOf(prog, read.Expr)
	require.NoError(t, err)
	assert.True(t, types.Equal(types.NewBase(types.Float2), td), "got %s", td)

	_, diags, err = analyze(vertexInput, vertexMain(nil,
		local("s", types.Float, nil),
		exprStmt(ref("s.xyzwx")),
	))
	requireKind(t, err, diags, diag.KindInvalidSubscript)
}

func TestDeclarations_ArrayDims(t *testing.T) {
	n := constLocal("N", types.Int, intLit(4))
	arr := local("arr", types.Float, nil)
	arr.Decls[0].ArrayDims = []ast.Expr{&ast.BinaryExpr{Op: ast.BinaryAdd, Lhs: ref("N"), Rhs: intLit(1)}}

	_, diags, err := analyze(vertexInput, n, arr, vertexMain(nil))
	require.NoError(t, err, "%v", diags)
	assert.Equal(t, &types.Array{Element: types.NewBase(types.Float), Dims: []int{5}}, arr.Decls[0].Type)

	bad := local("bad", types.Float, nil)
	bad.Decls[0].ArrayDims = []ast.Expr{ref("undefinedSize")}
	_, diags, err = analyze(vertexInput, bad, vertexMain(nil))
	requireKind(t, err, diags, diag.KindTypeMismatch)
}

func TestStaticMemberAccess(t *testing.T) {
	k := constLocal("k", types.Int, intLit(2))
	s := structDecl("S", k, param("v", types.Float, ""))
	typePrefix := func() ast.Expr { return &ast.TypeSpecifierExpr{Type: &types.Struct{Name: "S"}} }

	ok := &ast.ObjectExpr{Prefix: typePrefix(), Ident: "k", IsStatic: true}
	prog, diags, err := analyze(vertexInput, s, vertexMain(nil, exprStmt(ok)))
	require.NoError(t, err, "%v", diags)
	require.NotNil(t, ok.Symbol)
	assert.Same(t, k.Decls[0], prog.Symbol(*ok.Symbol))

	tests := []struct {
		name string
		expr *ast.ObjectExpr
	}{
		{"non-static member", &ast.ObjectExpr{Prefix: typePrefix(), Ident: "v", IsStatic: true}},
		{"instance access on type", &ast.ObjectExpr{Prefix: typePrefix(), Ident: "k"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := structDecl("S", constLocal("k", types.Int, intLit(2)), param("v", types.Float, ""))
			_, diags, err := analyze(vertexInput, s, vertexMain(nil, exprStmt(tt.expr)))
			requireKind(t, err, diags, diag.KindTypeMismatch)
		})
	}
}

// --- Calls ---

func TestCalls_OverloadResolution(t *testing.T) {
	build := func(args ...ast.Expr) (*ast.FunctionDecl, *ast.FunctionDecl, *ast.FunctionCallExpr, []ast.Stmt) {
		fFloat := voidFunc("f", []*ast.VarDeclStmt{param("x", types.Float, "")})
		fInt := voidFunc("f", []*ast.VarDeclStmt{param("x", types.Int, "")})
		c := call("f", args...)
		return fFloat, fInt, c, []ast.Stmt{fFloat, fInt, vertexMain(nil, exprStmt(c))}
	}

	t.Run("exact match wins", func(t *testing.T) {
		_, fInt, c, stmts := build(intLit(1))
		prog, diags, err := analyze(vertexInput, stmts...)
		require.NoError(t, err, "%v", diags)
		require.NotNil(t, c.Call.Func)
		assert.Same(t, fInt, prog.Symbol(*c.Call.Func))
	})

	t.Run("float literal", func(t *testing.T) {
		fFloat, _, c, stmts := build(floatLit("1.0"))
		prog, _, err := analyze(vertexInput, stmts...)
		require.NoError(t, err)
		assert.Same(t, fFloat, prog.Symbol(*c.Call.Func))
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, _, _, stmts := build(boolLit(true))
		_, diags, err := analyze(vertexInput, stmts...)
		requireKind(t, err, diags, diag.KindAmbiguousCall)
	})

	t.Run("no match", func(t *testing.T) {
		_, _, _, stmts := build(intLit(1), intLit(2))
		_, diags, err := analyze(vertexInput, stmts...)
		requireKind(t, err, diags, diag.KindUnresolvedCall)
	})
}

func TestCalls_DefaultArguments(t *testing.T) {
	scale := param("scale", types.Float, "")
	scale.Decls[0].Initializer = floatLit("1.0")
	f := voidFunc("f", []*ast.VarDeclStmt{param("x", types.Float, ""), scale})
	c := call("f", floatLit("2.0"))

	prog, diags, err := analyze(vertexInput, f, vertexMain(nil, exprStmt(c)))
	require.NoError(t, err, "%v", diags)
	assert.Same(t, f, prog.Symbol(*c.Call.Func))
}

func TestCalls_ForwardDeclaration(t *testing.T) {
	fwd := &ast.FunctionDecl{Ident: "g"}
	def := voidFunc("g", nil)
	c := call("g")

	prog, diags, err := analyze(vertexInput, fwd, def, vertexMain(nil, exprStmt(c)))
	require.NoError(t, err, "%v", diags)
	assert.Same(t, def, fwd.Definition)
	assert.Same(t, def, prog.Symbol(*c.Call.Func))

	_, diags, err = analyze(vertexInput, voidFunc("g", nil), voidFunc("g", nil), vertexMain(nil))
	requireKind(t, err, diags, diag.KindRedeclaration)
}

func TestCalls_Undeclared(t *testing.T) {
	_, diags, err := analyze(vertexInput, vertexMain(nil, exprStmt(call("nothing"))))
	requireKind(t, err, diags, diag.KindUndeclaredIdentifier)

	_, diags, err = analyze(vertexInput, vertexMain(nil,
		local("v", types.Float, nil),
		exprStmt(call("v")),
	))
	requireKind(t, err, diags, diag.KindTypeMismatch)
}

func TestCalls_OutputArgumentMustBeLValue(t *testing.T) {
	f := voidFunc("f", []*ast.VarDeclStmt{outParam("result", types.Float, "")})
	_, diags, err := analyze(vertexInput, f, vertexMain(nil, exprStmt(call("f", floatLit("1.0")))))
	requireKind(t, err, diags, diag.KindInvalidLValue)

	_, diags, err = analyze(vertexInput, voidFunc("f", []*ast.VarDeclStmt{outParam("result", types.Float, "")}),
		vertexMain(nil, local("r", types.Float, nil), exprStmt(call("f", ref("r")))))
	require.NoError(t, err, "%v", diags)
}

func TestCalls_Intrinsics(t *testing.T) {
	c := call("dot", ref("a"), ref("b"))
	_, diags, err := analyze(vertexInput, vertexMain(nil,
		local("a", types.Float3, nil),
		local("b", types.Float3, nil),
		exprStmt(c),
	))
	require.NoError(t, err, "%v", diags)
	assert.Equal(t, ast.IntrinsicDot, c.Call.Intrinsic)
	assert.Equal(t, types.NewBase(types.Float), c.Call.ReturnType)

	_, diags, err = analyze(vertexInput, vertexMain(nil, exprStmt(call("dot", floatLit("1.0")))))
	requireKind(t, err, diags, diag.KindUnresolvedCall)

	sm4 := vertexInput
	sm4.ShaderModel = shader.ShaderModel4_0
	_, diags, err = analyze(sm4, vertexMain(nil,
		local("u", types.UInt, nil),
		exprStmt(call("countbits", ref("u"))),
	))
	requireKind(t, err, diags, diag.KindUnsupportedFeature)
}

func TestCalls_WrapperInlining(t *testing.T) {
	build := func() (*ast.FunctionCallExpr, []ast.Stmt) {
		sampler := &ast.SamplerDeclStmt{
			Type:  &types.Sampler{Kind: types.Sampler2D},
			Decls: []*ast.SamplerDecl{{Ident: "s"}},
		}
		c := call("tex2D", ref("s"), ref("uv"))
		main := vertexMain(nil, local("uv", types.Float2, nil), exprStmt(c))
		return c, []ast.Stmt{sampler, main}
	}

	c, stmts := build()
	_, diags, err := analyze(vertexInput, stmts...)
	require.NoError(t, err, "%v", diags)
	assert.Equal(t, ast.IntrinsicTextureSample, c.Call.Intrinsic)
	assert.Equal(t, "Sample", c.Call.Ident)
	assert.Equal(t, types.NewBase(types.Float4), c.Call.ReturnType)

	c, stmts = build()
	input := vertexInput
	input.PreferWrappers = true
	_, diags, err = analyze(input, stmts...)
	require.NoError(t, err, "%v", diags)
	assert.Equal(t, ast.IntrinsicTex2D, c.Call.Intrinsic)
	assert.Equal(t, "tex2D", c.Call.Ident)
}

func TestCalls_ObjectMethods(t *testing.T) {
	build := func(method string, args ...ast.Expr) (*ast.FunctionCallExpr, []ast.Stmt) {
		tex := &ast.BufferDeclStmt{
			Type:  &types.Buffer{Kind: types.BufferTexture2D, Element: types.NewBase(types.Float)},
			Decls: []*ast.BufferDecl{{Ident: "tex"}},
		}
		sampler := &ast.SamplerDeclStmt{
			Type:  &types.Sampler{Kind: types.SamplerState},
			Decls: []*ast.SamplerDecl{{Ident: "ss"}},
		}
		c := &ast.FunctionCallExpr{Prefix: ref("tex"), Call: &ast.FunctionCall{Ident: method, Args: args}}
		main := vertexMain(nil, local("uv", types.Float2, nil), exprStmt(c))
		return c, []ast.Stmt{tex, sampler, main}
	}

	c, stmts := build("Sample", ref("ss"), ref("uv"))
	_, diags, err := analyze(vertexInput, stmts...)
	require.NoError(t, err, "%v", diags)
	assert.Equal(t, ast.IntrinsicTextureSample, c.Call.Intrinsic)
	assert.Equal(t, types.NewBase(types.Float), c.Call.ReturnType)

	_, stmts = build("Append", ref("uv"))
	_, diags, err = analyze(vertexInput, stmts...)
	requireKind(t, err, diags, diag.KindUnresolvedCall)

	sm3 := vertexInput
	sm3.ShaderModel = shader.ShaderModel3_0
	_, stmts = build("Sample", ref("ss"), ref("uv"))
	_, diags, err = analyze(sm3, stmts...)
	requireKind(t, err, diags, diag.KindUnsupportedFeature)
}

func TestCalls_Constructor(t *testing.T) {
	ctor := func(args ...ast.Expr) *ast.FunctionCallExpr {
		return &ast.FunctionCallExpr{Call: &ast.FunctionCall{Ident: "float3", Constructor: types.NewBase(types.Float3), Args: args}}
	}

	_, diags, err := analyze(vertexInput, vertexMain(nil,
		local("xy", types.Float2, nil),
		exprStmt(ctor(ref("xy"), floatLit("1.0"))),
		exprStmt(ctor(floatLit("0.0"))),
	))
	require.NoError(t, err, "%v", diags)

	_, diags, err = analyze(vertexInput, vertexMain(nil, exprStmt(ctor(floatLit("1.0"), floatLit("2.0")))))
	requireKind(t, err, diags, diag.KindTypeMismatch)
}

// --- Lvalues ---

func TestLValues(t *testing.T) {
	cbuffer := &ast.UniformBufferDecl{
		Ident:   "Params",
		Members: []*ast.VarDeclStmt{local("scale", types.Float, nil)},
	}
	buffer := func(kind types.BufferKind) *ast.BufferDeclStmt {
		return &ast.BufferDeclStmt{Type: &types.Buffer{Kind: kind}, Decls: []*ast.BufferDecl{{Ident: "buf"}}}
	}
	element := func() *ast.VarAccessExpr {
		e := assign("buf", floatLit("1.0"))
		e.VarIdent.ArrayIndices = []ast.Expr{intLit(0)}
		return e
	}

	tests := []struct {
		name    string
		globals []ast.Stmt
		body    []ast.Stmt
		wantErr bool
	}{
		{
			name:    "literal",
			body:    []ast.Stmt{exprStmt(&ast.AssignExpr{Lvalue: intLit(1), Op: ast.AssignSet, Rvalue: intLit(2)})},
			wantErr: true,
		},
		{
			name:    "const variable",
			body:    []ast.Stmt{constLocal("c", types.Float, floatLit("1.0")), exprStmt(assign("c", floatLit("2.0")))},
			wantErr: true,
		},
		{
			name:    "uniform buffer member",
			globals: []ast.Stmt{cbuffer},
			body:    []ast.Stmt{exprStmt(assign("scale", floatLit("2.0")))},
			wantErr: true,
		},
		{
			name:    "repeated swizzle component",
			body:    []ast.Stmt{local("v", types.Float4, nil), exprStmt(assign("v.xx", floatLit("1.0")))},
			wantErr: true,
		},
		{
			name:    "swizzle",
			body:    []ast.Stmt{local("v", types.Float4, nil), exprStmt(assign("v.xy", floatLit("1.0")))},
			wantErr: false,
		},
		{
			name:    "scalar swizzle",
			body:    []ast.Stmt{local("s", types.Float, nil), exprStmt(assign("s.x", floatLit("1.0")))},
			wantErr: false,
		},
		{
			name:    "promoted scalar swizzle",
			body:    []ast.Stmt{local("s", types.Float, nil), exprStmt(assign("s.y", floatLit("1.0")))},
			wantErr: true,
		},
		{
			name: "call result",
			body: []ast.Stmt{exprStmt(&ast.AssignExpr{
				Lvalue: call("abs", floatLit("1.0")), Op: ast.AssignSet, Rvalue: floatLit("2.0"),
			})},
			wantErr: true,
		},
		{
			name: "increment of cast",
			body: []ast.Stmt{local("f", types.Float, nil), exprStmt(&ast.PostUnaryExpr{
				Op: ast.UnaryInc, Operand: &ast.CastExpr{Type: types.NewBase(types.Int), Expr: ref("f")},
			})},
			wantErr: true,
		},
		{
			name:    "increment of variable",
			body:    []ast.Stmt{local("i", types.Int, nil), exprStmt(&ast.UnaryExpr{Op: ast.UnaryInc, Operand: ref("i")})},
			wantErr: false,
		},
		{
			name:    "read-only buffer element",
			globals: []ast.Stmt{buffer(types.BufferBuffer)},
			body:    []ast.Stmt{exprStmt(element())},
			wantErr: true,
		},
		{
			name:    "rw buffer element",
			globals: []ast.Stmt{buffer(types.BufferRWBuffer)},
			body:    []ast.Stmt{exprStmt(element())},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := append(tt.globals, vertexMain(nil, tt.body...))
			_, diags, err := analyze(vertexInput, stmts...)
			if tt.wantErr {
				requireKind(t, err, diags, diag.KindInvalidLValue)
				return
			}
			require.NoError(t, err, "%v", diags)
		})
	}
}

func TestTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		body []ast.Stmt
	}{
		{"struct initialized from float", []ast.Stmt{
			ast.NewVarDeclStmt(&ast.TypeSpecifier{Type: &types.Struct{Name: "S"}}, &ast.VarDecl{Ident: "t", Initializer: floatLit("1.0")}),
		}},
		{"struct arithmetic", []ast.Stmt{exprStmt(&ast.BinaryExpr{Op: ast.BinaryAdd, Lhs: ref("s"), Rhs: floatLit("1.0")})}},
		{"bitwise on float", []ast.Stmt{exprStmt(&ast.BinaryExpr{Op: ast.BinaryAnd, Lhs: floatLit("1.0"), Rhs: intLit(1)})}},
		{"cast struct to float", []ast.Stmt{exprStmt(&ast.CastExpr{Type: types.NewBase(types.Float), Expr: ref("s")})}},
		{"struct condition", []ast.Stmt{&ast.IfStmt{Cond: ref("s"), Body: block()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := structDecl("S", param("v", types.Float, ""))
			sVar := ast.NewVarDeclStmt(&ast.TypeSpecifier{Type: &types.Struct{Name: "S"}}, &ast.VarDecl{Ident: "s"})
			_, diags, err := analyze(vertexInput, s, sVar, vertexMain(nil, tt.body...))
			requireKind(t, err, diags, diag.KindTypeMismatch)
		})
	}
}

// --- Control flow ---

func TestControlFlow(t *testing.T) {
	brk := func() ast.Stmt { return &ast.CtrlTransferStmt{Transfer: ast.CtrlBreak} }
	cont := func() ast.Stmt { return &ast.CtrlTransferStmt{Transfer: ast.CtrlContinue} }

	tests := []struct {
		name    string
		stmts   []ast.Stmt
		wantErr bool
	}{
		{"break outside loop", []ast.Stmt{vertexMain(nil, brk())}, true},
		{"continue outside loop", []ast.Stmt{vertexMain(nil, cont())}, true},
		{"break and continue in loop", []ast.Stmt{vertexMain(nil,
			&ast.WhileLoopStmt{Cond: boolLit(true), Body: block(brk(), cont())},
		)}, false},
		{"for loop scope", []ast.Stmt{vertexMain(nil,
			&ast.ForLoopStmt{
				Init: local("i", types.Int, intLit(0)),
				Cond: &ast.BinaryExpr{Op: ast.BinaryLess, Lhs: ref("i"), Rhs: intLit(4)},
				Iter: &ast.PostUnaryExpr{Op: ast.UnaryInc, Operand: ref("i")},
				Body: block(brk()),
			},
		)}, false},
		{"break in switch", []ast.Stmt{vertexMain(nil, &ast.SwitchStmt{
			Selector: intLit(1),
			Cases:    []*ast.SwitchCase{{Expr: intLit(1), Stmts: []ast.Stmt{brk()}}, {Stmts: []ast.Stmt{brk()}}},
		})}, false},
		{"continue in switch", []ast.Stmt{vertexMain(nil, &ast.SwitchStmt{
			Selector: intLit(1),
			Cases:    []*ast.SwitchCase{{Expr: intLit(1), Stmts: []ast.Stmt{cont()}}},
		})}, true},
		{"duplicate case", []ast.Stmt{vertexMain(nil, &ast.SwitchStmt{
			Selector: intLit(1),
			Cases:    []*ast.SwitchCase{{Expr: intLit(1)}, {Expr: intLit(1)}},
		})}, true},
		{"two defaults", []ast.Stmt{vertexMain(nil, &ast.SwitchStmt{
			Selector: intLit(1),
			Cases:    []*ast.SwitchCase{{}, {}},
		})}, true},
		{"value returned from void function", []ast.Stmt{
			voidFunc("h", nil, &ast.ReturnStmt{Expr: intLit(1)}),
			vertexMain(nil),
		}, true},
		{"missing return value", []ast.Stmt{vertexMain(nil, &ast.ReturnStmt{})}, true},
		{"return of undeclared value", []ast.Stmt{vertexMain(nil, &ast.ReturnStmt{Expr: ref("p")})}, true},
		{"nested function", []ast.Stmt{vertexMain(nil, voidFunc("inner", nil))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags, err := analyze(vertexInput, tt.stmts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.NotEmpty(t, diags.Errors())
				return
			}
			require.NoError(t, err, "%v", diags)
		})
	}
}

func TestFragment_DiscardReachability(t *testing.T) {
	kill := func() *ast.FunctionDecl {
		return voidFunc("kill", nil, &ast.CtrlTransferStmt{Transfer: ast.CtrlDiscard})
	}
	fragMain := func(body ...ast.Stmt) *ast.FunctionDecl {
		main := vertexMain(nil, body...)
		main.Semantic = ast.ParseSemantic("SV_Target")
		return main
	}

	reachable := kill()
	_, diags, err := analyze(fragmentInput, reachable, fragMain(exprStmt(call("kill"))))
	require.NoError(t, err, "%v", diags)
	assert.True(t, reachable.Flags.Has(ast.FuncFragmentReachable))
	assert.Empty(t, diags.Warnings())

	unreachable := kill()
	_, diags, err = analyze(fragmentInput, unreachable, fragMain())
	require.NoError(t, err, "%v", diags)
	assert.False(t, unreachable.Flags.Has(ast.FuncFragmentReachable))
	assert.Len(t, diags.Warnings().ByKind(diag.KindInvalidStatement), 1)
}

func TestFragment_EarlyDepthStencil(t *testing.T) {
	main := vertexMain(nil)
	main.Semantic = ast.ParseSemantic("SV_Target")
	main.Attributes = []*ast.Attribute{attr("earlydepthstencil")}
	prog, diags, err := analyze(fragmentInput, main)
	require.NoError(t, err, "%v", diags)
	assert.True(t, prog.LayoutFragment.EarlyDepthStencil)
}

func TestAnalyze_SinkReceivesDiagnostics(t *testing.T) {
	var got []*diag.Diagnostic
	sink := diag.SinkFunc(func(d *diag.Diagnostic) { got = append(got, d) })
	prog := &ast.Program{Stmts: []ast.Stmt{vertexMain(nil, exprStmt(ref("x")))}}

	a := New(vertexInput, Output{}, sink)
	err := a.Analyze(prog)
	require.Error(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, diag.KindUndeclaredIdentifier, got[0].Kind)
	assert.Equal(t, a.Diagnostics(), diag.List(got))
}
