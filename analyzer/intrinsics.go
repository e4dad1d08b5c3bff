// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analyzer

import (
	"fmt"
	"sort"

	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/shader"
	"github.com/OscarGame/XShaderCompiler/types"
)

// ReturnRule derives the return type of an intrinsic call from its
// argument types and, for methods, the object type.
type ReturnRule uint8

const (
	ReturnVoid           ReturnRule = iota
	ReturnCommon                    // common type of all arguments
	ReturnScalar                    // scalar of the common kind
	ReturnBoolShape                 // bool with the shape of the first argument
	ReturnBool                      // scalar bool
	ReturnIntShape                  // int with the shape of the first argument
	ReturnUIntShape                 // uint with the shape of the first argument
	ReturnFloatShape                // float with the shape of the first argument
	ReturnDoubleShape               // double with the shape of the first argument
	ReturnMul                       // matrix/vector product
	ReturnTranspose                 // transposed matrix
	ReturnFloat4                    // float4
	ReturnFloat                     // scalar float
	ReturnTextureElement            // texel type of the object, float4 without object
	ReturnGather                    // four components of the texel kind
	ReturnBufferElement             // element type of the object
	ReturnUInt                      // scalar uint
)

// IntrinsicEntry describes one built-in function or object method.
type IntrinsicEntry struct {
	Intrinsic      ast.Intrinsic
	MinArgs        int
	MaxArgs        int
	Return         ReturnRule
	MinShaderModel shader.ShaderModel
}

func entry(i ast.Intrinsic, minArgs, maxArgs int, ret ReturnRule) IntrinsicEntry {
	return IntrinsicEntry{Intrinsic: i, MinArgs: minArgs, MaxArgs: maxArgs, Return: ret, MinShaderModel: shader.ShaderModel3_0}
}

func sm5(e IntrinsicEntry) IntrinsicEntry {
	e.MinShaderModel = shader.ShaderModel5_0
	return e
}

func table(entries ...IntrinsicEntry) map[string]IntrinsicEntry {
	m := make(map[string]IntrinsicEntry, len(entries))
	for _, e := range entries {
		m[e.Intrinsic.String()] = e
	}
	return m
}

var globalIntrinsics = table(
	entry(ast.IntrinsicAbort, 0, 0, ReturnVoid),
	entry(ast.IntrinsicAbs, 1, 1, ReturnCommon),
	entry(ast.IntrinsicACos, 1, 1, ReturnCommon),
	entry(ast.IntrinsicAll, 1, 1, ReturnBool),
	sm5(entry(ast.IntrinsicAllMemoryBarrier, 0, 0, ReturnVoid)),
	sm5(entry(ast.IntrinsicAllMemoryBarrierWithGroupSync, 0, 0, ReturnVoid)),
	entry(ast.IntrinsicAny, 1, 1, ReturnBool),
	entry(ast.IntrinsicAsDouble, 2, 2, ReturnDoubleShape),
	entry(ast.IntrinsicAsFloat, 1, 1, ReturnFloatShape),
	entry(ast.IntrinsicASin, 1, 1, ReturnCommon),
	entry(ast.IntrinsicAsInt, 1, 1, ReturnIntShape),
	entry(ast.IntrinsicAsUInt, 1, 3, ReturnUIntShape),
	entry(ast.IntrinsicATan, 1, 1, ReturnCommon),
	entry(ast.IntrinsicATan2, 2, 2, ReturnCommon),
	entry(ast.IntrinsicCeil, 1, 1, ReturnCommon),
	entry(ast.IntrinsicClamp, 3, 3, ReturnCommon),
	entry(ast.IntrinsicClip, 1, 1, ReturnVoid),
	entry(ast.IntrinsicCos, 1, 1, ReturnCommon),
	entry(ast.IntrinsicCosH, 1, 1, ReturnCommon),
	sm5(entry(ast.IntrinsicCountBits, 1, 1, ReturnUIntShape)),
	entry(ast.IntrinsicCross, 2, 2, ReturnCommon),
	entry(ast.IntrinsicDDX, 1, 1, ReturnCommon),
	sm5(entry(ast.IntrinsicDDXCoarse, 1, 1, ReturnCommon)),
	sm5(entry(ast.IntrinsicDDXFine, 1, 1, ReturnCommon)),
	entry(ast.IntrinsicDDY, 1, 1, ReturnCommon),
	sm5(entry(ast.IntrinsicDDYCoarse, 1, 1, ReturnCommon)),
	sm5(entry(ast.IntrinsicDDYFine, 1, 1, ReturnCommon)),
	entry(ast.IntrinsicDegrees, 1, 1, ReturnCommon),
	entry(ast.IntrinsicDeterminant, 1, 1, ReturnScalar),
	sm5(entry(ast.IntrinsicDeviceMemoryBarrier, 0, 0, ReturnVoid)),
	sm5(entry(ast.IntrinsicDeviceMemoryBarrierWithGroupSync, 0, 0, ReturnVoid)),
	entry(ast.IntrinsicDistance, 2, 2, ReturnScalar),
	entry(ast.IntrinsicDot, 2, 2, ReturnScalar),
	entry(ast.IntrinsicExp, 1, 1, ReturnCommon),
	entry(ast.IntrinsicExp2, 1, 1, ReturnCommon),
	sm5(entry(ast.IntrinsicF16ToF32, 1, 1, ReturnFloatShape)),
	sm5(entry(ast.IntrinsicF32ToF16, 1, 1, ReturnUIntShape)),
	entry(ast.IntrinsicFaceForward, 3, 3, ReturnCommon),
	sm5(entry(ast.IntrinsicFirstBitHigh, 1, 1, ReturnCommon)),
	sm5(entry(ast.IntrinsicFirstBitLow, 1, 1, ReturnCommon)),
	entry(ast.IntrinsicFloor, 1, 1, ReturnCommon),
	sm5(entry(ast.IntrinsicFMA, 3, 3, ReturnCommon)),
	entry(ast.IntrinsicFMod, 2, 2, ReturnCommon),
	entry(ast.IntrinsicFrac, 1, 1, ReturnCommon),
	entry(ast.IntrinsicFrExp, 2, 2, ReturnCommon),
	entry(ast.IntrinsicFWidth, 1, 1, ReturnCommon),
	sm5(entry(ast.IntrinsicGroupMemoryBarrier, 0, 0, ReturnVoid)),
	sm5(entry(ast.IntrinsicGroupMemoryBarrierWithGroupSync, 0, 0, ReturnVoid)),
	sm5(entry(ast.IntrinsicInterlockedAdd, 2, 3, ReturnVoid)),
	sm5(entry(ast.IntrinsicInterlockedAnd, 2, 3, ReturnVoid)),
	sm5(entry(ast.IntrinsicInterlockedCompareExchange, 4, 4, ReturnVoid)),
	sm5(entry(ast.IntrinsicInterlockedCompareStore, 3, 3, ReturnVoid)),
	sm5(entry(ast.IntrinsicInterlockedExchange, 3, 3, ReturnVoid)),
	sm5(entry(ast.IntrinsicInterlockedMax, 2, 3, ReturnVoid)),
	sm5(entry(ast.IntrinsicInterlockedMin, 2, 3, ReturnVoid)),
	sm5(entry(ast.IntrinsicInterlockedOr, 2, 3, ReturnVoid)),
	sm5(entry(ast.IntrinsicInterlockedXor, 2, 3, ReturnVoid)),
	entry(ast.IntrinsicIsFinite, 1, 1, ReturnBoolShape),
	entry(ast.IntrinsicIsInf, 1, 1, ReturnBoolShape),
	entry(ast.IntrinsicIsNaN, 1, 1, ReturnBoolShape),
	entry(ast.IntrinsicLdExp, 2, 2, ReturnCommon),
	entry(ast.IntrinsicLength, 1, 1, ReturnScalar),
	entry(ast.IntrinsicLerp, 3, 3, ReturnCommon),
	entry(ast.IntrinsicLit, 3, 3, ReturnFloat4),
	entry(ast.IntrinsicLog, 1, 1, ReturnCommon),
	entry(ast.IntrinsicLog10, 1, 1, ReturnCommon),
	entry(ast.IntrinsicLog2, 1, 1, ReturnCommon),
	entry(ast.IntrinsicMAD, 3, 3, ReturnCommon),
	entry(ast.IntrinsicMax, 2, 2, ReturnCommon),
	entry(ast.IntrinsicMin, 2, 2, ReturnCommon),
	entry(ast.IntrinsicModF, 2, 2, ReturnCommon),
	entry(ast.IntrinsicMul, 2, 2, ReturnMul),
	entry(ast.IntrinsicNormalize, 1, 1, ReturnCommon),
	entry(ast.IntrinsicPow, 2, 2, ReturnCommon),
	entry(ast.IntrinsicRadians, 1, 1, ReturnCommon),
	sm5(entry(ast.IntrinsicRcp, 1, 1, ReturnCommon)),
	entry(ast.IntrinsicReflect, 2, 2, ReturnCommon),
	entry(ast.IntrinsicRefract, 3, 3, ReturnCommon),
	sm5(entry(ast.IntrinsicReverseBits, 1, 1, ReturnCommon)),
	entry(ast.IntrinsicRound, 1, 1, ReturnCommon),
	entry(ast.IntrinsicRSqrt, 1, 1, ReturnCommon),
	entry(ast.IntrinsicSaturate, 1, 1, ReturnCommon),
	entry(ast.IntrinsicSign, 1, 1, ReturnIntShape),
	entry(ast.IntrinsicSin, 1, 1, ReturnCommon),
	entry(ast.IntrinsicSinCos, 3, 3, ReturnVoid),
	entry(ast.IntrinsicSinH, 1, 1, ReturnCommon),
	entry(ast.IntrinsicSmoothStep, 3, 3, ReturnCommon),
	entry(ast.IntrinsicSqrt, 1, 1, ReturnCommon),
	entry(ast.IntrinsicStep, 2, 2, ReturnCommon),
	entry(ast.IntrinsicTan, 1, 1, ReturnCommon),
	entry(ast.IntrinsicTanH, 1, 1, ReturnCommon),
	entry(ast.IntrinsicTranspose, 1, 1, ReturnTranspose),
	entry(ast.IntrinsicTrunc, 1, 1, ReturnCommon),

	entry(ast.IntrinsicTex1D, 2, 4, ReturnTextureElement),
	entry(ast.IntrinsicTex1DGrad, 4, 4, ReturnTextureElement),
	entry(ast.IntrinsicTex1DLod, 2, 2, ReturnTextureElement),
	entry(ast.IntrinsicTex2D, 2, 4, ReturnTextureElement),
	entry(ast.IntrinsicTex2DGrad, 4, 4, ReturnTextureElement),
	entry(ast.IntrinsicTex2DLod, 2, 2, ReturnTextureElement),
	entry(ast.IntrinsicTex3D, 2, 4, ReturnTextureElement),
	entry(ast.IntrinsicTex3DGrad, 4, 4, ReturnTextureElement),
	entry(ast.IntrinsicTex3DLod, 2, 2, ReturnTextureElement),
	entry(ast.IntrinsicTexCube, 2, 4, ReturnTextureElement),
	entry(ast.IntrinsicTexCubeGrad, 4, 4, ReturnTextureElement),
	entry(ast.IntrinsicTexCubeLod, 2, 2, ReturnTextureElement),
)

var (
	textureMethods = table(
		entry(ast.IntrinsicTextureGetDimensions, 1, 5, ReturnVoid),
		entry(ast.IntrinsicTextureLoad, 1, 3, ReturnTextureElement),
		entry(ast.IntrinsicTextureSample, 2, 4, ReturnTextureElement),
		entry(ast.IntrinsicTextureSampleBias, 3, 5, ReturnTextureElement),
		entry(ast.IntrinsicTextureSampleCmp, 3, 5, ReturnFloat),
		entry(ast.IntrinsicTextureSampleCmpLevelZero, 3, 4, ReturnFloat),
		entry(ast.IntrinsicTextureSampleGrad, 4, 6, ReturnTextureElement),
		entry(ast.IntrinsicTextureSampleLevel, 3, 5, ReturnTextureElement),
		entry(ast.IntrinsicTextureGather, 2, 4, ReturnGather),
	)
	multisampledTextureMethods = table(
		entry(ast.IntrinsicTextureGetDimensions, 3, 4, ReturnVoid),
		entry(ast.IntrinsicTextureLoad, 2, 3, ReturnTextureElement),
	)
	rwTextureMethods = table(
		entry(ast.IntrinsicTextureGetDimensions, 1, 4, ReturnVoid),
		entry(ast.IntrinsicTextureLoad, 1, 2, ReturnTextureElement),
	)
	bufferMethods = table(
		entry(ast.IntrinsicBufferGetDimensions, 1, 2, ReturnVoid),
		entry(ast.IntrinsicBufferLoad, 1, 2, ReturnBufferElement),
	)
	byteAddressMethods = table(
		entry(ast.IntrinsicBufferGetDimensions, 1, 1, ReturnVoid),
		entry(ast.IntrinsicBufferLoad, 1, 2, ReturnUInt),
	)
	rwByteAddressMethods = table(
		entry(ast.IntrinsicBufferGetDimensions, 1, 1, ReturnVoid),
		entry(ast.IntrinsicBufferLoad, 1, 2, ReturnUInt),
		entry(ast.IntrinsicBufferStore, 2, 2, ReturnVoid),
	)
	appendMethods = table(
		entry(ast.IntrinsicBufferAppend, 1, 1, ReturnVoid),
		entry(ast.IntrinsicBufferGetDimensions, 2, 2, ReturnVoid),
	)
	consumeMethods = table(
		entry(ast.IntrinsicBufferConsume, 0, 0, ReturnBufferElement),
		entry(ast.IntrinsicBufferGetDimensions, 2, 2, ReturnVoid),
	)
	streamMethods = table(
		entry(ast.IntrinsicStreamOutputAppend, 1, 1, ReturnVoid),
		entry(ast.IntrinsicStreamOutputRestartStrip, 0, 0, ReturnVoid),
	)
)

// LookupIntrinsic returns the global intrinsic with the given name.
func LookupIntrinsic(name string) (IntrinsicEntry, bool) {
	e, ok := globalIntrinsics[name]
	return e, ok
}

// Intrinsics returns the global intrinsics sorted by name.
func Intrinsics() []IntrinsicEntry {
	entries := make([]IntrinsicEntry, 0, len(globalIntrinsics))
	for _, e := range globalIntrinsics {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Intrinsic.String() < entries[j].Intrinsic.String()
	})
	return entries
}

// LookupMethod returns the method of objects of the given buffer kind.
func LookupMethod(kind types.BufferKind, name string) (IntrinsicEntry, bool) {
	e, ok := methodTable(kind)[name]
	return e, ok
}

func methodTable(kind types.BufferKind) map[string]IntrinsicEntry {
	switch {
	case kind.IsStream():
		return streamMethods
	case kind == types.BufferAppendStructuredBuffer:
		return appendMethods
	case kind == types.BufferConsumeStructuredBuffer:
		return consumeMethods
	case kind == types.BufferRWByteAddressBuffer:
		return rwByteAddressMethods
	case kind == types.BufferByteAddressBuffer:
		return byteAddressMethods
	case kind.IsStorage():
		return bufferMethods
	case kind.IsMultisampled():
		return multisampledTextureMethods
	case kind.IsTexture() && kind.IsRW():
		return rwTextureMethods
	case kind.IsTexture():
		return textureMethods
	default:
		return nil
	}
}

// wrapperTarget returns the texture method a legacy sampler intrinsic with
// numArgs arguments is inlined to.
func wrapperTarget(i ast.Intrinsic, numArgs int) (IntrinsicEntry, bool) {
	switch i {
	case ast.IntrinsicTex1D, ast.IntrinsicTex2D, ast.IntrinsicTex3D, ast.IntrinsicTexCube:
		switch numArgs {
		case 2:
			return textureMethods[ast.IntrinsicTextureSample.String()], true
		case 4:
			return textureMethods[ast.IntrinsicTextureSampleGrad.String()], true
		}
	case ast.IntrinsicTex1DGrad, ast.IntrinsicTex2DGrad, ast.IntrinsicTex3DGrad, ast.IntrinsicTexCubeGrad:
		if numArgs == 4 {
			return textureMethods[ast.IntrinsicTextureSampleGrad.String()], true
		}
	}
	return IntrinsicEntry{}, false
}

// apply derives the return type for the given argument types. object is
// the buffer the method is called on, or nil.
//
//nolint:gocyclo,cyclop // Return type derivation requires handling all rules
func (r ReturnRule) apply(args []types.TypeDenoter, object *types.Buffer) (types.TypeDenoter, error) {
	switch r {
	case ReturnVoid:
		return &types.Void{}, nil
	case ReturnBool:
		return types.NewBase(types.Bool), nil
	case ReturnFloat4:
		return types.NewBase(types.Float4), nil
	case ReturnFloat:
		return types.NewBase(types.Float), nil
	case ReturnUInt:
		return types.NewBase(types.UInt), nil
	case ReturnTextureElement, ReturnBufferElement:
		if object == nil {
			return types.NewBase(types.Float4), nil
		}
		return object.ElementType(), nil
	case ReturnGather:
		kind := types.ScalarFloat
		if object != nil {
			if dt, ok := types.BaseOf(object.ElementType()); ok {
				kind = dt.Kind
			}
		}
		return types.NewBase(types.Vector(kind, 4)), nil
	}

	dts := make([]types.DataType, len(args))
	for i, t := range args {
		dt, ok := types.BaseOf(t)
		if !ok {
			return nil, fmt.Errorf("argument %d of type '%s' is not a scalar, vector or matrix", i+1, t)
		}
		dts[i] = dt
	}
	if len(dts) == 0 {
		return nil, fmt.Errorf("missing arguments")
	}

	first := dts[0]
	common := first
	for _, dt := range dts[1:] {
		common = types.CommonDataType(common, dt)
	}

	switch r {
	case ReturnCommon:
		return types.NewBase(common), nil
	case ReturnScalar:
		return types.NewBase(common.Base()), nil
	case ReturnBoolShape:
		return types.NewBase(first.WithKind(types.ScalarBool)), nil
	case ReturnIntShape:
		return types.NewBase(first.WithKind(types.ScalarInt)), nil
	case ReturnUIntShape:
		return types.NewBase(first.WithKind(types.ScalarUInt)), nil
	case ReturnFloatShape:
		return types.NewBase(first.WithKind(types.ScalarFloat)), nil
	case ReturnDoubleShape:
		return types.NewBase(first.WithKind(types.ScalarDouble)), nil
	case ReturnTranspose:
		return types.NewBase(types.Matrix(first.Kind, int(first.Columns), int(first.Rows))), nil
	case ReturnMul:
		if len(dts) != 2 {
			return nil, fmt.Errorf("mul expects 2 arguments")
		}
		return types.NewBase(mulType(dts[0], dts[1])), nil
	default:
		return nil, fmt.Errorf("unknown return rule %d", r)
	}
}

// mulType returns the result type of mul(a, b). Vectors are treated as row
// vectors on the left and column vectors on the right.
func mulType(a, b types.DataType) types.DataType {
	kind := a.Kind
	if b.Kind > kind {
		kind = b.Kind
	}
	switch {
	case a.IsScalar():
		return b.WithKind(kind)
	case b.IsScalar():
		return a.WithKind(kind)
	case a.IsVector() && b.IsVector():
		return types.Scalar(kind)
	case a.IsVector():
		return types.Vector(kind, int(b.Columns))
	case b.IsVector():
		return types.Vector(kind, int(a.Rows))
	default:
		return types.Matrix(kind, int(a.Rows), int(b.Columns))
	}
}
