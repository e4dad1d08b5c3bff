// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/shader"
)

// ioDirection is the direction of an entry point interface variable.
type ioDirection uint8

const (
	dirIn ioDirection = 1 << iota
	dirOut
)

func (d ioDirection) String() string {
	switch d {
	case dirIn:
		return "input"
	case dirOut:
		return "output"
	default:
		return "input/output"
	}
}

type stageSet uint8

func stages(ss ...shader.Stage) stageSet {
	var set stageSet
	for _, s := range ss {
		set |= 1 << s
	}
	return set
}

func (set stageSet) has(s shader.Stage) bool { return set&(1<<s) != 0 }

const (
	vs = shader.StageVertex
	hs = shader.StageTessControl
	ds = shader.StageTessEvaluation
	gs = shader.StageGeometry
	ps = shader.StageFragment
	cs = shader.StageCompute
)

// systemValues lists the stages in which each system value may be read
// and written.
var systemValues = map[ast.Semantic]struct{ in, out stageSet }{
	ast.SemanticClipDistance:           {stages(hs, ds, gs, ps), stages(vs, hs, ds, gs)},
	ast.SemanticCullDistance:           {stages(hs, ds, gs, ps), stages(vs, hs, ds, gs)},
	ast.SemanticCoverage:               {stages(ps), stages(ps)},
	ast.SemanticDepth:                  {0, stages(ps)},
	ast.SemanticDepthGreaterEqual:      {0, stages(ps)},
	ast.SemanticDepthLessEqual:         {0, stages(ps)},
	ast.SemanticDispatchThreadID:       {stages(cs), 0},
	ast.SemanticDomainLocation:         {stages(ds), 0},
	ast.SemanticGroupID:                {stages(cs), 0},
	ast.SemanticGroupIndex:             {stages(cs), 0},
	ast.SemanticGroupThreadID:          {stages(cs), 0},
	ast.SemanticGSInstanceID:           {stages(gs), 0},
	ast.SemanticInsideTessFactor:       {stages(ds), stages(hs)},
	ast.SemanticInstanceID:             {stages(vs, hs, ds, gs, ps), stages(vs, hs, ds, gs)},
	ast.SemanticIsFrontFace:            {stages(ps), stages(gs)},
	ast.SemanticOutputControlPointID:   {stages(hs), 0},
	ast.SemanticPosition:               {stages(vs, hs, ds, gs, ps), stages(vs, hs, ds, gs)},
	ast.SemanticPrimitiveID:            {stages(hs, ds, gs, ps), stages(gs)},
	ast.SemanticRenderTargetArrayIndex: {stages(ps), stages(vs, ds, gs)},
	ast.SemanticSampleIndex:            {stages(ps), 0},
	ast.SemanticStencilRef:             {0, stages(ps)},
	ast.SemanticTarget:                 {0, stages(ps)},
	ast.SemanticTessFactor:             {stages(ds), stages(hs)},
	ast.SemanticVertexID:               {stages(vs), 0},
	ast.SemanticViewportArrayIndex:     {stages(ps), stages(vs, ds, gs)},
}

// semanticAllowed reports whether sem may be used in the given direction
// by an entry point of the given stage.
func semanticAllowed(stage shader.Stage, sem ast.IndexedSemantic, dir ioDirection) bool {
	if !sem.IsSystemValue() {
		if stage == shader.StageCompute {
			return false
		}
		return sem.IsUserDefined()
	}
	sv, ok := systemValues[sem.Semantic]
	if !ok {
		return false
	}
	if dir&dirIn != 0 && !sv.in.has(stage) {
		return false
	}
	if dir&dirOut != 0 && !sv.out.has(stage) {
		return false
	}
	return true
}
