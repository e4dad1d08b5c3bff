// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/diag"
	"github.com/OscarGame/XShaderCompiler/shader"
)

// maxOutputControlPoints is the largest patch size a hull shader may emit.
const maxOutputControlPoints = 32

// stageAttributes lists the entry point attributes each stage accepts.
var stageAttributes = map[shader.Stage][]ast.AttributeKind{
	shader.StageTessControl: {
		ast.AttributeDomain, ast.AttributePartitioning, ast.AttributeOutputTopology,
		ast.AttributeOutputControlPoints, ast.AttributePatchConstantFunc, ast.AttributeMaxTessFactor,
	},
	shader.StageTessEvaluation: {ast.AttributeDomain},
	shader.StageGeometry:       {ast.AttributeMaxVertexCount, ast.AttributeInstance},
	shader.StageFragment:       {ast.AttributeEarlyDepthStencil},
	shader.StageCompute:        {ast.AttributeNumThreads},
}

var (
	domains       = []ast.Domain{ast.DomainTri, ast.DomainQuad, ast.DomainIsoline}
	partitionings = []ast.Partitioning{
		ast.PartitioningInteger, ast.PartitioningPow2,
		ast.PartitioningFractionalEven, ast.PartitioningFractionalOdd,
	}
	outputTopologies = []ast.OutputTopology{
		ast.OutputTopologyPoint, ast.OutputTopologyLine,
		ast.OutputTopologyTriangleCW, ast.OutputTopologyTriangleCCW,
	}
)

func allowsAttribute(stage shader.Stage, kind ast.AttributeKind) bool {
	for _, k := range stageAttributes[stage] {
		if k == kind {
			return true
		}
	}
	return false
}

// checkEntryPointAttributes validates the attributes of the main entry
// point and records the layout they describe.
func (a *Analyzer) checkEntryPointAttributes(fn *ast.FunctionDecl) {
	stage := a.input.Stage
	seen := make(map[ast.AttributeKind]bool)
	for _, attr := range fn.Attributes {
		a.analyzeExprs(attr.Args)
		switch {
		case attr.Kind == ast.AttributeUnknown:
			a.warnf(diag.KindInvalidAttribute, attr.Span, "unknown attribute '%s'", attr.Ident)
		case attr.Kind >= ast.AttributeBranch:
			a.errorf(diag.KindInvalidAttribute, attr.Span, "attribute '%s' cannot be applied to a function", attr.Kind)
		case !allowsAttribute(stage, attr.Kind):
			a.errorf(diag.KindInvalidAttribute, attr.Span, "attribute '%s' is not valid for %s shaders", attr.Kind, stage)
		case seen[attr.Kind]:
			a.errorf(diag.KindInvalidAttribute, attr.Span, "duplicate attribute '%s'", attr.Kind)
		}
		seen[attr.Kind] = true
	}

	switch stage {
	case shader.StageTessControl:
		a.hullAttributes(fn)
	case shader.StageTessEvaluation:
		if d, ok := stringAttribute(a, fn, ast.AttributeDomain, domains, true); ok {
			a.prog.LayoutTessEvaluation.Domain = d
		}
	case shader.StageGeometry:
		a.geometryAttributes(fn)
	case shader.StageFragment:
		if _, ok := a.attribute(fn, ast.AttributeEarlyDepthStencil, 0, false); ok {
			a.prog.LayoutFragment.EarlyDepthStencil = true
		}
	case shader.StageCompute:
		a.computeAttributes(fn)
	}
}

// attribute returns the attribute of the given kind if it is present with
// numArgs arguments. A missing required attribute is reported.
func (a *Analyzer) attribute(fn *ast.FunctionDecl, kind ast.AttributeKind, numArgs int, required bool) (*ast.Attribute, bool) {
	attr := fn.AttributeOf(kind)
	if attr == nil {
		if required {
			a.errorf(diag.KindMissingAttribute, fn.Span, "missing '[%s]' attribute for entry point '%s'", kind, fn.Ident)
		}
		return nil, false
	}
	if len(attr.Args) != numArgs {
		a.errorf(diag.KindInvalidAttributeValue, attr.Span, "attribute '%s' expects %d argument(s), got %d",
			kind, numArgs, len(attr.Args))
		return nil, false
	}
	return attr, true
}

// stringArg returns the value of a string literal attribute argument.
func (a *Analyzer) stringArg(attr *ast.Attribute, i int) (string, bool) {
	if lit, ok := attr.Args[i].(*ast.LiteralExpr); ok {
		if s, err := strconv.Unquote(lit.Value); err == nil {
			return s, true
		}
	}
	a.errorf(diag.KindInvalidAttributeValue, attr.Args[i].Pos(),
		"argument %d of attribute '%s' must be a string literal", i+1, attr.Kind)
	return "", false
}

// intArg evaluates an integral attribute argument within [lo, hi].
func (a *Analyzer) intArg(attr *ast.Attribute, i int, lo, hi int64) (int, bool) {
	v, err := a.evalInt(attr.Args[i])
	switch {
	case err != nil:
		a.errorf(diag.KindInvalidAttributeValue, attr.Args[i].Pos(),
			"argument %d of attribute '%s' must be an integral constant: %v", i+1, attr.Kind, err)
		return 0, false
	case v < lo || v > hi:
		a.errorf(diag.KindInvalidAttributeValue, attr.Args[i].Pos(),
			"argument %d of attribute '%s' is out of range [%d, %d]: %d", i+1, attr.Kind, lo, hi, v)
		return 0, false
	}
	return int(v), true
}

// stringAttribute parses a single-string attribute against an allow-list.
func stringAttribute[T fmt.Stringer](a *Analyzer, fn *ast.FunctionDecl, kind ast.AttributeKind, allowed []T, required bool) (T, bool) {
	var zero T
	attr, ok := a.attribute(fn, kind, 1, required)
	if !ok {
		return zero, false
	}
	name, ok := a.stringArg(attr, 0)
	if !ok {
		return zero, false
	}
	if v, ok := lookupName(allowed, name); ok {
		return v, true
	}
	names := make([]string, len(allowed))
	for i, v := range allowed {
		names[i] = strconv.Quote(v.String())
	}
	a.errorf(diag.KindInvalidAttributeValue, attr.Args[0].Pos(),
		"invalid value %q for attribute '%s', expected one of %s", name, kind, strings.Join(names, ", "))
	return zero, false
}

func lookupName[T fmt.Stringer](values []T, name string) (T, bool) {
	for _, v := range values {
		if strings.EqualFold(v.String(), name) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (a *Analyzer) hullAttributes(fn *ast.FunctionDecl) {
	te := &a.prog.LayoutTessEvaluation
	if d, ok := stringAttribute(a, fn, ast.AttributeDomain, domains, true); ok {
		te.Domain = d
	}
	if p, ok := stringAttribute(a, fn, ast.AttributePartitioning, partitionings, true); ok {
		te.Partitioning = p
	}
	if t, ok := stringAttribute(a, fn, ast.AttributeOutputTopology, outputTopologies, true); ok {
		te.OutputTopology = t
	}

	tc := &a.prog.LayoutTessControl
	if attr, ok := a.attribute(fn, ast.AttributeOutputControlPoints, 1, true); ok {
		if n, ok := a.intArg(attr, 0, 0, maxOutputControlPoints); ok {
			tc.OutputControlPoints = n
		}
	}
	if attr, ok := a.attribute(fn, ast.AttributeMaxTessFactor, 1, false); ok {
		f, err := a.evalFloat(attr.Args[0])
		if err != nil {
			a.errorf(diag.KindInvalidAttributeValue, attr.Args[0].Pos(),
				"argument of attribute '%s' must be a constant: %v", attr.Kind, err)
		} else {
			tc.MaxTessFactor = f
		}
	}
	if attr, ok := a.attribute(fn, ast.AttributePatchConstantFunc, 1, true); ok {
		name, ok := a.stringArg(attr, 0)
		if !ok {
			return
		}
		pcf := a.findFunction(name)
		if pcf == nil {
			a.errorf(diag.KindInvalidAttributeValue, attr.Args[0].Pos(), "patch constant function '%s' not found", name)
			return
		}
		pcf.Flags |= ast.FuncSecondaryEntryPoint
		a.prog.SecondaryEntryPoint = pcf
		tc.PatchConstFunc = pcf
	}
}

func (a *Analyzer) geometryAttributes(fn *ast.FunctionDecl) {
	if attr, ok := a.attribute(fn, ast.AttributeMaxVertexCount, 1, true); ok {
		if n, ok := a.intArg(attr, 0, 0, 1<<31-1); ok {
			a.prog.LayoutGeometry.MaxVertices = n
		}
	}
	if attr, ok := a.attribute(fn, ast.AttributeInstance, 1, false); ok {
		a.intArg(attr, 0, 1, 1<<31-1)
	}
}

func (a *Analyzer) computeAttributes(fn *ast.FunctionDecl) {
	attr, ok := a.attribute(fn, ast.AttributeNumThreads, 3, true)
	if !ok {
		return
	}
	for i := range attr.Args {
		if n, ok := a.intArg(attr, i, 0, 1<<31-1); ok {
			a.prog.LayoutCompute.NumThreads[i] = n
		}
	}
}

// findFunction returns the global function definition with the given name.
func (a *Analyzer) findFunction(name string) *ast.FunctionDecl {
	for _, fn := range a.prog.Functions() {
		if fn.Ident == name && fn.Body != nil {
			return fn
		}
	}
	return nil
}

// analyzeSecondaryEntryPoint resolves the patch constant function a domain
// shader inherits its tessellator configuration from. Its attributes are
// optional and only fill layout fields the entry point left undefined.
func (a *Analyzer) analyzeSecondaryEntryPoint(name string) {
	fn := a.findFunction(name)
	if fn == nil {
		a.errorf(diag.KindMissingEntryPoint, ast.Span{}, "secondary entry point '%s' not found", name)
		return
	}
	fn.Flags |= ast.FuncSecondaryEntryPoint
	a.prog.SecondaryEntryPoint = fn

	for _, attr := range fn.Attributes {
		a.analyzeExprs(attr.Args)
	}
	te := &a.prog.LayoutTessEvaluation
	if d, ok := stringAttribute(a, fn, ast.AttributeDomain, domains, false); ok && te.Domain == ast.DomainUndefined {
		te.Domain = d
	}
	if p, ok := stringAttribute(a, fn, ast.AttributePartitioning, partitionings, false); ok && te.Partitioning == ast.PartitioningUndefined {
		te.Partitioning = p
	}
	if t, ok := stringAttribute(a, fn, ast.AttributeOutputTopology, outputTopologies, false); ok && te.OutputTopology == ast.OutputTopologyUndefined {
		te.OutputTopology = t
	}
}
