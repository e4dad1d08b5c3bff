// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

// Intrinsic identifies a built-in function.
type Intrinsic uint16

const (
	IntrinsicUndefined Intrinsic = iota

	// Global functions
	IntrinsicAbort
	IntrinsicAbs
	IntrinsicACos
	IntrinsicAll
	IntrinsicAllMemoryBarrier
	IntrinsicAllMemoryBarrierWithGroupSync
	IntrinsicAny
	IntrinsicAsDouble
	IntrinsicAsFloat
	IntrinsicASin
	IntrinsicAsInt
	IntrinsicAsUInt
	IntrinsicATan
	IntrinsicATan2
	IntrinsicCeil
	IntrinsicClamp
	IntrinsicClip
	IntrinsicCos
	IntrinsicCosH
	IntrinsicCountBits
	IntrinsicCross
	IntrinsicDDX
	IntrinsicDDXCoarse
	IntrinsicDDXFine
	IntrinsicDDY
	IntrinsicDDYCoarse
	IntrinsicDDYFine
	IntrinsicDegrees
	IntrinsicDeterminant
	IntrinsicDeviceMemoryBarrier
	IntrinsicDeviceMemoryBarrierWithGroupSync
	IntrinsicDistance
	IntrinsicDot
	IntrinsicExp
	IntrinsicExp2
	IntrinsicF16ToF32
	IntrinsicF32ToF16
	IntrinsicFaceForward
	IntrinsicFirstBitHigh
	IntrinsicFirstBitLow
	IntrinsicFloor
	IntrinsicFMA
	IntrinsicFMod
	IntrinsicFrac
	IntrinsicFrExp
	IntrinsicFWidth
	IntrinsicGroupMemoryBarrier
	IntrinsicGroupMemoryBarrierWithGroupSync
	IntrinsicInterlockedAdd
	IntrinsicInterlockedAnd
	IntrinsicInterlockedCompareExchange
	IntrinsicInterlockedCompareStore
	IntrinsicInterlockedExchange
	IntrinsicInterlockedMax
	IntrinsicInterlockedMin
	IntrinsicInterlockedOr
	IntrinsicInterlockedXor
	IntrinsicIsFinite
	IntrinsicIsInf
	IntrinsicIsNaN
	IntrinsicLdExp
	IntrinsicLength
	IntrinsicLerp
	IntrinsicLit
	IntrinsicLog
	IntrinsicLog10
	IntrinsicLog2
	IntrinsicMAD
	IntrinsicMax
	IntrinsicMin
	IntrinsicModF
	IntrinsicMul
	IntrinsicNormalize
	IntrinsicPow
	IntrinsicRadians
	IntrinsicRcp
	IntrinsicReflect
	IntrinsicRefract
	IntrinsicReverseBits
	IntrinsicRound
	IntrinsicRSqrt
	IntrinsicSaturate
	IntrinsicSign
	IntrinsicSin
	IntrinsicSinCos
	IntrinsicSinH
	IntrinsicSmoothStep
	IntrinsicSqrt
	IntrinsicStep
	IntrinsicTan
	IntrinsicTanH
	IntrinsicTranspose
	IntrinsicTrunc

	// Legacy D3D9 sampler functions
	IntrinsicTex1D
	IntrinsicTex1DGrad
	IntrinsicTex1DLod
	IntrinsicTex2D
	IntrinsicTex2DGrad
	IntrinsicTex2DLod
	IntrinsicTex3D
	IntrinsicTex3DGrad
	IntrinsicTex3DLod
	IntrinsicTexCube
	IntrinsicTexCubeGrad
	IntrinsicTexCubeLod

	// Texture object methods
	IntrinsicTextureGetDimensions
	IntrinsicTextureLoad
	IntrinsicTextureSample
	IntrinsicTextureSampleBias
	IntrinsicTextureSampleCmp
	IntrinsicTextureSampleCmpLevelZero
	IntrinsicTextureSampleGrad
	IntrinsicTextureSampleLevel
	IntrinsicTextureGather

	// Buffer object methods
	IntrinsicBufferAppend
	IntrinsicBufferConsume
	IntrinsicBufferGetDimensions
	IntrinsicBufferLoad
	IntrinsicBufferStore

	// Stream output object methods
	IntrinsicStreamOutputAppend
	IntrinsicStreamOutputRestartStrip

	// Target-only vector comparisons
	IntrinsicEqual
	IntrinsicNotEqual
	IntrinsicLessThan
	IntrinsicGreaterThan
	IntrinsicLessThanEqual
	IntrinsicGreaterThanEqual

	intrinsicCount
)

var intrinsicNames = [...]string{
	IntrinsicUndefined:                        "<undefined>",
	IntrinsicAbort:                            "abort",
	IntrinsicAbs:                              "abs",
	IntrinsicACos:                             "acos",
	IntrinsicAll:                              "all",
	IntrinsicAllMemoryBarrier:                 "AllMemoryBarrier",
	IntrinsicAllMemoryBarrierWithGroupSync:    "AllMemoryBarrierWithGroupSync",
	IntrinsicAny:                              "any",
	IntrinsicAsDouble:                         "asdouble",
	IntrinsicAsFloat:                          "asfloat",
	IntrinsicASin:                             "asin",
	IntrinsicAsInt:                            "asint",
	IntrinsicAsUInt:                           "asuint",
	IntrinsicATan:                             "atan",
	IntrinsicATan2:                            "atan2",
	IntrinsicCeil:                             "ceil",
	IntrinsicClamp:                            "clamp",
	IntrinsicClip:                             "clip",
	IntrinsicCos:                              "cos",
	IntrinsicCosH:                             "cosh",
	IntrinsicCountBits:                        "countbits",
	IntrinsicCross:                            "cross",
	IntrinsicDDX:                              "ddx",
	IntrinsicDDXCoarse:                        "ddx_coarse",
	IntrinsicDDXFine:                          "ddx_fine",
	IntrinsicDDY:                              "ddy",
	IntrinsicDDYCoarse:                        "ddy_coarse",
	IntrinsicDDYFine:                          "ddy_fine",
	IntrinsicDegrees:                          "degrees",
	IntrinsicDeterminant:                      "determinant",
	IntrinsicDeviceMemoryBarrier:              "DeviceMemoryBarrier",
	IntrinsicDeviceMemoryBarrierWithGroupSync: "DeviceMemoryBarrierWithGroupSync",
	IntrinsicDistance:                         "distance",
	IntrinsicDot:                              "dot",
	IntrinsicExp:                              "exp",
	IntrinsicExp2:                             "exp2",
	IntrinsicF16ToF32:                         "f16tof32",
	IntrinsicF32ToF16:                         "f32tof16",
	IntrinsicFaceForward:                      "faceforward",
	IntrinsicFirstBitHigh:                     "firstbithigh",
	IntrinsicFirstBitLow:                      "firstbitlow",
	IntrinsicFloor:                            "floor",
	IntrinsicFMA:                              "fma",
	IntrinsicFMod:                             "fmod",
	IntrinsicFrac:                             "frac",
	IntrinsicFrExp:                            "frexp",
	IntrinsicFWidth:                           "fwidth",
	IntrinsicGroupMemoryBarrier:               "GroupMemoryBarrier",
	IntrinsicGroupMemoryBarrierWithGroupSync:  "GroupMemoryBarrierWithGroupSync",
	IntrinsicInterlockedAdd:                   "InterlockedAdd",
	IntrinsicInterlockedAnd:                   "InterlockedAnd",
	IntrinsicInterlockedCompareExchange:       "InterlockedCompareExchange",
	IntrinsicInterlockedCompareStore:          "InterlockedCompareStore",
	IntrinsicInterlockedExchange:              "InterlockedExchange",
	IntrinsicInterlockedMax:                   "InterlockedMax",
	IntrinsicInterlockedMin:                   "InterlockedMin",
	IntrinsicInterlockedOr:                    "InterlockedOr",
	IntrinsicInterlockedXor:                   "InterlockedXor",
	IntrinsicIsFinite:                         "isfinite",
	IntrinsicIsInf:                            "isinf",
	IntrinsicIsNaN:                            "isnan",
	IntrinsicLdExp:                            "ldexp",
	IntrinsicLength:                           "length",
	IntrinsicLerp:                             "lerp",
	IntrinsicLit:                              "lit",
	IntrinsicLog:                              "log",
	IntrinsicLog10:                            "log10",
	IntrinsicLog2:                             "log2",
	IntrinsicMAD:                              "mad",
	IntrinsicMax:                              "max",
	IntrinsicMin:                              "min",
	IntrinsicModF:                             "modf",
	IntrinsicMul:                              "mul",
	IntrinsicNormalize:                        "normalize",
	IntrinsicPow:                              "pow",
	IntrinsicRadians:                          "radians",
	IntrinsicRcp:                              "rcp",
	IntrinsicReflect:                          "reflect",
	IntrinsicRefract:                          "refract",
	IntrinsicReverseBits:                      "reversebits",
	IntrinsicRound:                            "round",
	IntrinsicRSqrt:                            "rsqrt",
	IntrinsicSaturate:                         "saturate",
	IntrinsicSign:                             "sign",
	IntrinsicSin:                              "sin",
	IntrinsicSinCos:                           "sincos",
	IntrinsicSinH:                             "sinh",
	IntrinsicSmoothStep:                       "smoothstep",
	IntrinsicSqrt:                             "sqrt",
	IntrinsicStep:                             "step",
	IntrinsicTan:                              "tan",
	IntrinsicTanH:                             "tanh",
	IntrinsicTranspose:                        "transpose",
	IntrinsicTrunc:                            "trunc",
	IntrinsicTex1D:                            "tex1D",
	IntrinsicTex1DGrad:                        "tex1Dgrad",
	IntrinsicTex1DLod:                         "tex1Dlod",
	IntrinsicTex2D:                            "tex2D",
	IntrinsicTex2DGrad:                        "tex2Dgrad",
	IntrinsicTex2DLod:                         "tex2Dlod",
	IntrinsicTex3D:                            "tex3D",
	IntrinsicTex3DGrad:                        "tex3Dgrad",
	IntrinsicTex3DLod:                         "tex3Dlod",
	IntrinsicTexCube:                          "texCUBE",
	IntrinsicTexCubeGrad:                      "texCUBEgrad",
	IntrinsicTexCubeLod:                       "texCUBElod",
	IntrinsicTextureGetDimensions:             "GetDimensions",
	IntrinsicTextureLoad:                      "Load",
	IntrinsicTextureSample:                    "Sample",
	IntrinsicTextureSampleBias:                "SampleBias",
	IntrinsicTextureSampleCmp:                 "SampleCmp",
	IntrinsicTextureSampleCmpLevelZero:        "SampleCmpLevelZero",
	IntrinsicTextureSampleGrad:                "SampleGrad",
	IntrinsicTextureSampleLevel:               "SampleLevel",
	IntrinsicTextureGather:                    "Gather",
	IntrinsicBufferAppend:                     "Append",
	IntrinsicBufferConsume:                    "Consume",
	IntrinsicBufferGetDimensions:              "GetDimensions",
	IntrinsicBufferLoad:                       "Load",
	IntrinsicBufferStore:                      "Store",
	IntrinsicStreamOutputAppend:               "Append",
	IntrinsicStreamOutputRestartStrip:         "RestartStrip",
	IntrinsicEqual:                            "equal",
	IntrinsicNotEqual:                         "notEqual",
	IntrinsicLessThan:                         "lessThan",
	IntrinsicGreaterThan:                      "greaterThan",
	IntrinsicLessThanEqual:                    "lessThanEqual",
	IntrinsicGreaterThanEqual:                 "greaterThanEqual",
}

// String returns the source name of the intrinsic.
func (i Intrinsic) String() string {
	if int(i) < len(intrinsicNames) && intrinsicNames[i] != "" {
		return intrinsicNames[i]
	}
	return "<unknown>"
}

// IsTextureMethod reports whether i is a texture object method.
func (i Intrinsic) IsTextureMethod() bool {
	return i >= IntrinsicTextureGetDimensions && i <= IntrinsicTextureGather
}

// IsBufferMethod reports whether i is a buffer object method.
func (i Intrinsic) IsBufferMethod() bool {
	return i >= IntrinsicBufferAppend && i <= IntrinsicBufferStore
}

// IsStreamOutputMethod reports whether i is a stream output method.
func (i Intrinsic) IsStreamOutputMethod() bool {
	return i == IntrinsicStreamOutputAppend || i == IntrinsicStreamOutputRestartStrip
}

// IsMethod reports whether i is called on an object.
func (i Intrinsic) IsMethod() bool {
	return i.IsTextureMethod() || i.IsBufferMethod() || i.IsStreamOutputMethod()
}

// IsLegacySampler reports whether i is a D3D9 texN function.
func (i Intrinsic) IsLegacySampler() bool {
	return i >= IntrinsicTex1D && i <= IntrinsicTexCubeLod
}

// IsVectorCompare reports whether i is a target-only vector comparison.
func (i Intrinsic) IsVectorCompare() bool {
	return i >= IntrinsicEqual && i <= IntrinsicGreaterThanEqual
}

// IsBarrier reports whether i is a memory barrier.
func (i Intrinsic) IsBarrier() bool {
	switch i {
	case IntrinsicAllMemoryBarrier, IntrinsicAllMemoryBarrierWithGroupSync,
		IntrinsicDeviceMemoryBarrier, IntrinsicDeviceMemoryBarrierWithGroupSync,
		IntrinsicGroupMemoryBarrier, IntrinsicGroupMemoryBarrierWithGroupSync:
		return true
	default:
		return false
	}
}

// IsInterlocked reports whether i is an atomic Interlocked* function.
func (i Intrinsic) IsInterlocked() bool {
	return i >= IntrinsicInterlockedAdd && i <= IntrinsicInterlockedXor
}
