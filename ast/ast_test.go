// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"testing"

	"github.com/OscarGame/XShaderCompiler/types"
)

// declareVar registers a variable of type t and returns an access expression
// for it.
func declareVar(p *Program, name string, t types.TypeDenoter) (*VarDecl, *VarAccessExpr) {
	decl := &VarDecl{Ident: name, Type: t}
	NewVarDeclStmt(&TypeSpecifier{Type: t}, decl)
	v := &VarIdent{Ident: name, Symbol: p.SymbolRef(decl)}
	return decl, &VarAccessExpr{VarIdent: v}
}

func TestProgram_Symbols(t *testing.T) {
	p := &Program{}
	a := &VarDecl{Ident: "a"}
	f := &FunctionDecl{Ident: "main"}

	ha := p.AddSymbol(a)
	hf := p.AddSymbol(f)
	if ha == hf {
		t.Fatal("handles must be distinct")
	}
	if p.Symbol(ha) != a || p.Symbol(hf) != f {
		t.Error("Symbol() returned the wrong declaration")
	}
	if p.Symbol(SymbolHandle(99)) != nil {
		t.Error("unknown handle should yield nil")
	}
	if p.NumSymbols() != 2 {
		t.Errorf("NumSymbols = %d, want 2", p.NumSymbols())
	}
}

func TestTypeOf_Binary(t *testing.T) {
	tests := []struct {
		name string
		op   BinaryOp
		lhs  types.DataType
		rhs  types.DataType
		want types.DataType
	}{
		{"float add int", BinaryAdd, types.Float, types.Int, types.Float},
		{"vector mul scalar", BinaryMul, types.Float3, types.Float, types.Float3},
		{"scalar compare", BinaryLess, types.Float, types.Int, types.Bool},
		{"vector compare", BinaryEqual, types.Float3, types.Float3, types.Vector(types.ScalarBool, 3)},
		{"logical", BinaryLogicalAnd, types.Bool, types.Bool, types.Bool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Program{}
			_, lhs := declareVar(p, "a", types.NewBase(tt.lhs))
			_, rhs := declareVar(p, "b", types.NewBase(tt.rhs))
			e := &BinaryExpr{Op: tt.op, Lhs: lhs, Rhs: rhs}

			got, err := TypeOf(p, e)
			if err != nil {
				t.Fatalf("TypeOf() error: %v", err)
			}
			if dt, ok := types.BaseOf(got); !ok || dt != tt.want {
				t.Errorf("TypeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeOf_CacheAndReset(t *testing.T) {
	p := &Program{}
	_, a := declareVar(p, "a", types.NewBase(types.Float))
	_, b := declareVar(p, "b", types.NewBase(types.Int))
	e := &BinaryExpr{Op: BinaryAdd, Lhs: a, Rhs: b}

	first, err := TypeOf(p, e)
	if err != nil {
		t.Fatalf("TypeOf() error: %v", err)
	}

	// Rewriting an operand does not change the cached type until reset.
	e.Lhs = &LiteralExpr{Value: "1.0", DataType: types.Double}
	cached, _ := TypeOf(p, e)
	if cached != first {
		t.Error("TypeOf() should return the cached denoter")
	}

	e.ResetTypeDenoter()
	recomputed, err := TypeOf(p, e)
	if err != nil {
		t.Fatalf("TypeOf() error: %v", err)
	}
	if dt, _ := types.BaseOf(recomputed); dt != types.Double {
		t.Errorf("recomputed type = %v, want double", recomputed)
	}
}

func TestTypeOf_Chains(t *testing.T) {
	p := &Program{}

	light := &types.Struct{Name: "Light", Members: []types.Member{
		{Name: "color", Type: types.NewBase(types.Float4)},
		{Name: "weights", Type: &types.Array{Element: types.NewBase(types.Float2), Dims: []int{4}}},
	}}
	lightDecl, _ := declareVar(p, "light", light)
	colorDecl := &VarDecl{Ident: "color", Type: types.NewBase(types.Float4)}
	weightsDecl := &VarDecl{Ident: "weights", Type: light.Members[1].Type}

	// light.color.rgb
	chain := &VarIdent{Ident: "light", Symbol: p.SymbolRef(lightDecl),
		Next: &VarIdent{Ident: "color", Symbol: p.SymbolRef(colorDecl),
			Next: &VarIdent{Ident: "rgb"}}}
	got, err := TypeOf(p, &VarAccessExpr{VarIdent: chain})
	if err != nil {
		t.Fatalf("TypeOf(light.color.rgb) error: %v", err)
	}
	if dt, _ := types.BaseOf(got); dt != types.Float3 {
		t.Errorf("TypeOf(light.color.rgb) = %v, want float3", got)
	}

	// light.weights[1].y
	idx := &LiteralExpr{Value: "1", DataType: types.Int}
	chain = &VarIdent{Ident: "light", Symbol: p.SymbolRef(lightDecl),
		Next: &VarIdent{Ident: "weights", Symbol: p.SymbolRef(weightsDecl), ArrayIndices: []Expr{idx},
			Next: &VarIdent{Ident: "y"}}}
	got, err = TypeOf(p, &VarAccessExpr{VarIdent: chain})
	if err != nil {
		t.Fatalf("TypeOf(light.weights[1].y) error: %v", err)
	}
	if dt, _ := types.BaseOf(got); dt != types.Float {
		t.Errorf("TypeOf(light.weights[1].y) = %v, want float", got)
	}

	// Unresolved member names fall back to the structure layout.
	got, err = TypeOf(p, &ObjectExpr{Prefix: &VarAccessExpr{VarIdent: &VarIdent{Ident: "light", Symbol: p.SymbolRef(lightDecl)}}, Ident: "color"})
	if err != nil || !types.Equal(got, types.NewBase(types.Float4)) {
		t.Errorf("TypeOf(light.color) = %v, %v", got, err)
	}

	if _, err := TypeOf(p, &VarAccessExpr{VarIdent: &VarIdent{Ident: "missing"}}); err == nil {
		t.Error("unresolved identifier should fail")
	}
}

func TestTypeOf_Calls(t *testing.T) {
	p := &Program{}
	f := &FunctionDecl{Ident: "f", ReturnType: &TypeSpecifier{Type: types.NewBase(types.Float)}}

	call := &FunctionCallExpr{Call: &FunctionCall{Ident: "f", Func: p.SymbolRef(f)}}
	if got, err := TypeOf(p, call); err != nil || !types.Equal(got, types.NewBase(types.Float)) {
		t.Errorf("TypeOf(f()) = %v, %v", got, err)
	}

	ctor := &FunctionCallExpr{Call: &FunctionCall{Ident: "float3", Constructor: types.NewBase(types.Float3)}}
	if got, err := TypeOf(p, ctor); err != nil || !types.Equal(got, types.NewBase(types.Float3)) {
		t.Errorf("TypeOf(float3()) = %v, %v", got, err)
	}

	unresolved := &FunctionCallExpr{Call: &FunctionCall{Ident: "g"}}
	if _, err := TypeOf(p, unresolved); err == nil {
		t.Error("unresolved call should fail")
	}

	// f().xx
	suffix := &SuffixExpr{Expr: call, VarIdent: &VarIdent{Ident: "xx"}}
	if got, err := TypeOf(p, suffix); err != nil || !types.Equal(got, types.NewBase(types.Float2)) {
		t.Errorf("TypeOf(f().xx) = %v, %v", got, err)
	}
}

func TestIndexType(t *testing.T) {
	tests := []struct {
		name    string
		t       types.TypeDenoter
		n       int
		want    types.TypeDenoter
		wantErr bool
	}{
		{"array", &types.Array{Element: types.NewBase(types.Int), Dims: []int{2, 3}}, 2, types.NewBase(types.Int), false},
		{"partial array", &types.Array{Element: types.NewBase(types.Int), Dims: []int{2, 3}}, 1, &types.Array{Element: types.NewBase(types.Int), Dims: []int{3}}, false},
		{"buffer", &types.Buffer{Kind: types.BufferStructuredBuffer, Element: types.NewBase(types.UInt)}, 1, types.NewBase(types.UInt), false},
		{"texture default element", &types.Buffer{Kind: types.BufferRWTexture2D}, 1, types.NewBase(types.Float4), false},
		{"matrix row", types.NewBase(types.Float4x4), 1, types.NewBase(types.Float4), false},
		{"vector element", types.NewBase(types.Int3), 1, types.NewBase(types.Int), false},
		{"scalar", types.NewBase(types.Float), 1, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IndexType(tt.t, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IndexType() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !types.Equal(got, tt.want) {
				t.Errorf("IndexType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFactory(t *testing.T) {
	span := Span{Start: Position{Line: 3, Column: 7}}
	lit := &LiteralExpr{Value: "1", DataType: types.Int, Span: span}

	cast := MakeCast(types.Float, lit)
	if cast.Expr != lit || cast.Pos() != span {
		t.Error("MakeCast should wrap the expression and keep its span")
	}

	if _, ok := MakeCastOrSuffixCast(types.Float2, lit, nil).(*CastExpr); !ok {
		t.Error("MakeCastOrSuffixCast without suffix should yield a cast")
	}
	suffix := MakeCastOrSuffixCast(types.Float2, lit, &VarIdent{Ident: "x"})
	if s, ok := suffix.(*SuffixExpr); !ok || s.VarIdent.Ident != "x" {
		t.Errorf("MakeCastOrSuffixCast with suffix = %#v", suffix)
	}

	br := MakeBracket(lit)
	if br.Expr != lit || br.Pos() != span {
		t.Error("MakeBracket should wrap the expression and keep its span")
	}

	call := MakeIntrinsicCall(IntrinsicEqual, "vec_compare", types.NewBase(types.Bool), []Expr{lit, lit})
	if call.Call.Intrinsic != IntrinsicEqual || len(call.Call.Args) != 2 || call.Pos() != span {
		t.Errorf("MakeIntrinsicCall = %#v", call.Call)
	}
}

func TestFunctionStack(t *testing.T) {
	var s FunctionStack
	if s.Active() != nil || s.InsideFunction() {
		t.Fatal("empty stack should have no active function")
	}
	main := &FunctionDecl{Ident: "main", Flags: FuncEntryPoint}
	helper := &FunctionDecl{Ident: "helper"}

	s.Push(main)
	s.Push(helper)
	if s.Active() != helper {
		t.Error("Active() should be the innermost function")
	}
	if !s.InsideEntryPoint() {
		t.Error("InsideEntryPoint() should see the entry point below")
	}
	s.Pop()
	if s.Active() != main {
		t.Error("Pop() should restore the outer function")
	}
	s.Pop()
	s.Pop()
	if s.InsideFunction() {
		t.Error("stack should be empty")
	}
}

func TestParseSemantic(t *testing.T) {
	tests := []struct {
		text       string
		want       Semantic
		wantIndex  int
		wantString string
	}{
		{"SV_Position", SemanticPosition, 0, "SV_Position"},
		{"sv_target1", SemanticTarget, 1, "SV_Target1"},
		{"SV_DispatchThreadID", SemanticDispatchThreadID, 0, "SV_DispatchThreadID"},
		{"TEXCOORD3", SemanticUserDefined, 3, "TEXCOORD3"},
		{"normal", SemanticUserDefined, 0, "NORMAL0"},
		{"SV_Unknown", SemanticUserDefined, 0, "SV_UNKNOWN0"},
		{"", SemanticUndefined, 0, "<undefined>"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseSemantic(tt.text)
			if got.Semantic != tt.want || got.Index != tt.wantIndex {
				t.Errorf("ParseSemantic(%q) = %v/%d, want %v/%d", tt.text, got.Semantic, got.Index, tt.want, tt.wantIndex)
			}
			if s := got.String(); s != tt.wantString {
				t.Errorf("String() = %q, want %q", s, tt.wantString)
			}
		})
	}

	if ParseSemantic("COLOR0").Key() != ParseSemantic("color").Key() {
		t.Error("COLOR0 and color should denote the same slot")
	}
}

func TestParseAttributeKind(t *testing.T) {
	if got := ParseAttributeKind("NumThreads"); got != AttributeNumThreads {
		t.Errorf("ParseAttributeKind(NumThreads) = %v", got)
	}
	if got := ParseAttributeKind("unknown"); got != AttributeUnknown {
		t.Errorf("ParseAttributeKind(unknown) = %v", got)
	}
	if got := NewAttribute("maxvertexcount", Span{}).Kind; got != AttributeMaxVertexCount {
		t.Errorf("NewAttribute kind = %v", got)
	}
}

func TestIntrinsicNames(t *testing.T) {
	for i := IntrinsicUndefined + 1; i < intrinsicCount; i++ {
		if i.String() == "<unknown>" {
			t.Errorf("intrinsic %d has no name", i)
		}
	}
	if !IntrinsicLessThan.IsVectorCompare() || IntrinsicMul.IsVectorCompare() {
		t.Error("IsVectorCompare classification is wrong")
	}
	if !IntrinsicTextureSample.IsMethod() || IntrinsicTex2D.IsMethod() {
		t.Error("IsMethod classification is wrong")
	}
}

func TestVarIdent(t *testing.T) {
	v := NewVarIdent("a.b.xy", Span{})
	if v.Len() != 3 || v.Last().Ident != "xy" {
		t.Errorf("NewVarIdent chain = %s", v)
	}
	if s := v.String(); s != "a.b.xy" {
		t.Errorf("String() = %q", s)
	}
}
