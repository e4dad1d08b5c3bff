// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "github.com/OscarGame/XShaderCompiler/types"

// TypeSpecifier is the type part of a declaration statement together with
// its modifiers.
type TypeSpecifier struct {
	Type types.TypeDenoter

	IsInput   bool // "in" or "inout" parameter
	IsOutput  bool // "out" or "inout" parameter
	IsUniform bool
	IsConst   bool
	IsStatic  bool

	Primitive PrimitiveType // geometry shader input primitive

	Span Span
}

// IsInputOnly reports whether a parameter is only read (no "out").
func (t *TypeSpecifier) IsInputOnly() bool { return !t.IsOutput }

// IsConstant reports whether the declared value cannot be modified.
func (t *TypeSpecifier) IsConstant() bool { return t.IsConst }

// VarFlags describes how a variable takes part in the shader interface.
type VarFlags uint8

const (
	VarShaderInput     VarFlags = 1 << iota // bound to an input semantic
	VarShaderOutput                         // bound to an output semantic
	VarSystemValue                          // semantic is a system value
	VarEntryPointLocal                      // parameter or local of the entry point
	VarUniformMember                        // member of a cbuffer/tbuffer
	VarStructMember                         // member of a structure
)

// Has reports whether all bits of f2 are set.
func (f VarFlags) Has(f2 VarFlags) bool { return f&f2 == f2 }

// VarDecl declares one variable, parameter or structure member.
type VarDecl struct {
	Ident       string
	ArrayDims   []Expr // nil entries are unsized dimensions
	Semantic    IndexedSemantic
	Initializer Expr

	DeclStmt *VarDeclStmt // owning statement

	// Set by the analyzer.
	Type     types.TypeDenoter // declared type including array dimensions
	Flags    VarFlags
	Location *int // explicit vertex input location

	Span Span
}

func (d *VarDecl) Pos() Span          { return d.Span }
func (d *VarDecl) Identifier() string { return d.Ident }
func (d *VarDecl) declNode()          {}

// TypeDenoter returns the declared type of the variable. Before analysis it
// falls back to the type specifier of the owning statement.
func (d *VarDecl) TypeDenoter() types.TypeDenoter {
	if d.Type != nil {
		return d.Type
	}
	if d.DeclStmt != nil && d.DeclStmt.TypeSpecifier != nil {
		return d.DeclStmt.TypeSpecifier.Type
	}
	return nil
}

// IsConst reports whether the variable was declared const.
func (d *VarDecl) IsConst() bool {
	return d.DeclStmt != nil && d.DeclStmt.TypeSpecifier != nil && d.DeclStmt.TypeSpecifier.IsConst
}

// IsStatic reports whether the variable was declared static.
func (d *VarDecl) IsStatic() bool {
	return d.DeclStmt != nil && d.DeclStmt.TypeSpecifier != nil && d.DeclStmt.TypeSpecifier.IsStatic
}

// VarDeclStmt declares one or more variables sharing a type specifier.
// Function parameters are VarDeclStmts with a single VarDecl.
type VarDeclStmt struct {
	TypeSpecifier *TypeSpecifier
	Decls         []*VarDecl
	Span          Span
}

func (s *VarDeclStmt) Pos() Span { return s.Span }
func (s *VarDeclStmt) stmtNode() {}

// NewVarDeclStmt creates a declaration statement and links each VarDecl
// back to it.
func NewVarDeclStmt(spec *TypeSpecifier, decls ...*VarDecl) *VarDeclStmt {
	s := &VarDeclStmt{TypeSpecifier: spec, Decls: decls}
	if spec != nil {
		s.Span = spec.Span
	}
	for _, d := range decls {
		d.DeclStmt = s
	}
	return s
}

// StructDecl declares a structure type.
type StructDecl struct {
	Ident     string
	BaseIdent string // inherited structure, "" if none
	Members   []*VarDeclStmt

	// Set by the analyzer.
	Type *types.Struct

	Span Span
}

func (d *StructDecl) Pos() Span          { return d.Span }
func (d *StructDecl) Identifier() string { return d.Ident }
func (d *StructDecl) declNode()          {}

// StructDeclStmt is a standalone structure declaration.
type StructDeclStmt struct {
	StructDecl *StructDecl
	Span       Span
}

func (s *StructDeclStmt) Pos() Span { return s.Span }
func (s *StructDeclStmt) stmtNode() {}

// BufferDecl declares one buffer or texture object.
type BufferDecl struct {
	Ident     string
	ArrayDims []Expr
	DeclStmt  *BufferDeclStmt

	// Set by the analyzer.
	Type types.TypeDenoter

	Span Span
}

func (d *BufferDecl) Pos() Span          { return d.Span }
func (d *BufferDecl) Identifier() string { return d.Ident }
func (d *BufferDecl) declNode()          {}

// BufferDeclStmt declares buffer objects sharing a buffer type.
type BufferDeclStmt struct {
	Type  *types.Buffer
	Decls []*BufferDecl
	Span  Span
}

func (s *BufferDeclStmt) Pos() Span { return s.Span }
func (s *BufferDeclStmt) stmtNode() {}

// SamplerDecl declares one sampler state object.
type SamplerDecl struct {
	Ident     string
	ArrayDims []Expr
	DeclStmt  *SamplerDeclStmt

	// Set by the analyzer.
	Type types.TypeDenoter

	Span Span
}

func (d *SamplerDecl) Pos() Span          { return d.Span }
func (d *SamplerDecl) Identifier() string { return d.Ident }
func (d *SamplerDecl) declNode()          {}

// SamplerDeclStmt declares sampler objects sharing a sampler type.
type SamplerDeclStmt struct {
	Type  *types.Sampler
	Decls []*SamplerDecl
	Span  Span
}

func (s *SamplerDeclStmt) Pos() Span { return s.Span }
func (s *SamplerDeclStmt) stmtNode() {}

// UniformBufferKind distinguishes cbuffer from tbuffer.
type UniformBufferKind uint8

const (
	ConstantBuffer UniformBufferKind = iota // cbuffer
	TextureBuffer                           // tbuffer
)

// UniformBufferDecl declares a cbuffer or tbuffer block.
// Its members are visible in the global scope.
type UniformBufferDecl struct {
	Ident   string
	Kind    UniformBufferKind
	Members []*VarDeclStmt
	Span    Span
}

func (d *UniformBufferDecl) Pos() Span          { return d.Span }
func (d *UniformBufferDecl) Identifier() string { return d.Ident }
func (d *UniformBufferDecl) declNode()          {}
func (d *UniformBufferDecl) stmtNode()          {}

// AliasDecl declares one typedef name.
type AliasDecl struct {
	Ident string
	Type  types.TypeDenoter
	Span  Span
}

func (d *AliasDecl) Pos() Span          { return d.Span }
func (d *AliasDecl) Identifier() string { return d.Ident }
func (d *AliasDecl) declNode()          {}

// AliasDeclStmt is a typedef statement, optionally declaring a structure
// inline ("typedef struct { ... } Foo;").
type AliasDeclStmt struct {
	StructDecl *StructDecl
	Decls      []*AliasDecl
	Span       Span
}

func (s *AliasDeclStmt) Pos() Span { return s.Span }
func (s *AliasDeclStmt) stmtNode() {}

// FuncFlags marks the role of a function in the pipeline.
type FuncFlags uint8

const (
	FuncEntryPoint          FuncFlags = 1 << iota // the main entry point
	FuncSecondaryEntryPoint                       // patch constant function
	FuncFragmentReachable                         // callable from a fragment entry point
)

// Has reports whether all bits of f2 are set.
func (f FuncFlags) Has(f2 FuncFlags) bool { return f&f2 == f2 }

// FunctionDecl declares or defines a function.
// A nil Body marks a forward declaration.
type FunctionDecl struct {
	Ident      string
	ReturnType *TypeSpecifier
	Params     []*VarDeclStmt
	Semantic   IndexedSemantic
	Attributes []*Attribute
	Body       *CodeBlockStmt

	// Set by the analyzer.
	Flags           FuncFlags
	InputSemantics  []*VarDecl
	OutputSemantics []*VarDecl
	Definition      *FunctionDecl // definition of a forward declaration

	Span Span
}

func (d *FunctionDecl) Pos() Span          { return d.Span }
func (d *FunctionDecl) Identifier() string { return d.Ident }
func (d *FunctionDecl) declNode()          {}
func (d *FunctionDecl) stmtNode()          {}

// IsForwardDecl reports whether d has no body.
func (d *FunctionDecl) IsForwardDecl() bool { return d.Body == nil }

// ReturnTypeDenoter returns the declared return type, void if unset.
func (d *FunctionDecl) ReturnTypeDenoter() types.TypeDenoter {
	if d.ReturnType == nil || d.ReturnType.Type == nil {
		return &types.Void{}
	}
	return d.ReturnType.Type
}

// Param returns the i-th parameter declaration.
func (d *FunctionDecl) Param(i int) *VarDecl {
	if i < 0 || i >= len(d.Params) || len(d.Params[i].Decls) == 0 {
		return nil
	}
	return d.Params[i].Decls[0]
}

// NumMinArgs returns the number of parameters without default value.
func (d *FunctionDecl) NumMinArgs() int {
	n := 0
	for i := range d.Params {
		if p := d.Param(i); p != nil && p.Initializer == nil {
			n++
		}
	}
	return n
}

// AttributeOf returns the first attribute of the given kind.
func (d *FunctionDecl) AttributeOf(kind AttributeKind) *Attribute {
	for _, a := range d.Attributes {
		if a.Kind == kind {
			return a
		}
	}
	return nil
}
