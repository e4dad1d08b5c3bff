// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "github.com/OscarGame/XShaderCompiler/types"

// PrimitiveType is the input primitive of a geometry shader parameter.
type PrimitiveType uint8

const (
	PrimitiveUndefined PrimitiveType = iota
	PrimitivePoint
	PrimitiveLine
	PrimitiveLineAdj
	PrimitiveTriangle
	PrimitiveTriangleAdj
)

func (p PrimitiveType) String() string {
	switch p {
	case PrimitivePoint:
		return "point"
	case PrimitiveLine:
		return "line"
	case PrimitiveLineAdj:
		return "lineadj"
	case PrimitiveTriangle:
		return "triangle"
	case PrimitiveTriangleAdj:
		return "triangleadj"
	default:
		return "undefined"
	}
}

// Domain is a tessellation patch domain.
type Domain uint8

const (
	DomainUndefined Domain = iota
	DomainTri
	DomainQuad
	DomainIsoline
)

func (d Domain) String() string {
	switch d {
	case DomainTri:
		return "tri"
	case DomainQuad:
		return "quad"
	case DomainIsoline:
		return "isoline"
	default:
		return "undefined"
	}
}

// Partitioning is a tessellation partitioning scheme.
type Partitioning uint8

const (
	PartitioningUndefined Partitioning = iota
	PartitioningInteger
	PartitioningPow2
	PartitioningFractionalEven
	PartitioningFractionalOdd
)

func (p Partitioning) String() string {
	switch p {
	case PartitioningInteger:
		return "integer"
	case PartitioningPow2:
		return "pow2"
	case PartitioningFractionalEven:
		return "fractional_even"
	case PartitioningFractionalOdd:
		return "fractional_odd"
	default:
		return "undefined"
	}
}

// OutputTopology is the primitive topology produced by the tessellator.
type OutputTopology uint8

const (
	OutputTopologyUndefined OutputTopology = iota
	OutputTopologyPoint
	OutputTopologyLine
	OutputTopologyTriangleCW
	OutputTopologyTriangleCCW
)

func (t OutputTopology) String() string {
	switch t {
	case OutputTopologyPoint:
		return "point"
	case OutputTopologyLine:
		return "line"
	case OutputTopologyTriangleCW:
		return "triangle_cw"
	case OutputTopologyTriangleCCW:
		return "triangle_ccw"
	default:
		return "undefined"
	}
}

// TessControlLayout records hull shader attributes.
type TessControlLayout struct {
	OutputControlPoints int
	MaxTessFactor       float64
	PatchConstFunc      *FunctionDecl
}

// TessEvaluationLayout records tessellator configuration.
type TessEvaluationLayout struct {
	Domain         Domain
	Partitioning   Partitioning
	OutputTopology OutputTopology
}

// GeometryLayout records geometry shader configuration.
type GeometryLayout struct {
	MaxVertices     int
	InputPrimitive  PrimitiveType
	OutputPrimitive types.BufferKind // PointStream, LineStream or TriangleStream
}

// FragmentLayout records fragment shader configuration.
type FragmentLayout struct {
	EarlyDepthStencil bool
}

// ComputeLayout records the compute thread-group size.
type ComputeLayout struct {
	NumThreads [3]int
}
