// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// BufferKind represents the kind of a buffer, texture, stream or patch object.
type BufferKind uint8

const (
	BufferUndefined BufferKind = iota

	// Typed and structured buffers
	BufferBuffer
	BufferStructuredBuffer
	BufferByteAddressBuffer
	BufferRWBuffer
	BufferRWStructuredBuffer
	BufferRWByteAddressBuffer
	BufferAppendStructuredBuffer
	BufferConsumeStructuredBuffer

	// Read-only textures
	BufferTexture1D
	BufferTexture1DArray
	BufferTexture2D
	BufferTexture2DArray
	BufferTexture3D
	BufferTextureCube
	BufferTextureCubeArray
	BufferTexture2DMS
	BufferTexture2DMSArray

	// Read-write textures
	BufferRWTexture1D
	BufferRWTexture1DArray
	BufferRWTexture2D
	BufferRWTexture2DArray
	BufferRWTexture3D

	// Tessellation patches
	BufferInputPatch
	BufferOutputPatch

	// Geometry shader output streams
	BufferPointStream
	BufferLineStream
	BufferTriangleStream
)

// bufferKindNames maps buffer kinds to their HLSL spelling.
var bufferKindNames = map[BufferKind]string{
	BufferBuffer:                  "Buffer",
	BufferStructuredBuffer:        "StructuredBuffer",
	BufferByteAddressBuffer:       "ByteAddressBuffer",
	BufferRWBuffer:                "RWBuffer",
	BufferRWStructuredBuffer:      "RWStructuredBuffer",
	BufferRWByteAddressBuffer:     "RWByteAddressBuffer",
	BufferAppendStructuredBuffer:  "AppendStructuredBuffer",
	BufferConsumeStructuredBuffer: "ConsumeStructuredBuffer",
	BufferTexture1D:               "Texture1D",
	BufferTexture1DArray:          "Texture1DArray",
	BufferTexture2D:               "Texture2D",
	BufferTexture2DArray:          "Texture2DArray",
	BufferTexture3D:               "Texture3D",
	BufferTextureCube:             "TextureCube",
	BufferTextureCubeArray:        "TextureCubeArray",
	BufferTexture2DMS:             "Texture2DMS",
	BufferTexture2DMSArray:        "Texture2DMSArray",
	BufferRWTexture1D:             "RWTexture1D",
	BufferRWTexture1DArray:        "RWTexture1DArray",
	BufferRWTexture2D:             "RWTexture2D",
	BufferRWTexture2DArray:        "RWTexture2DArray",
	BufferRWTexture3D:             "RWTexture3D",
	BufferInputPatch:              "InputPatch",
	BufferOutputPatch:             "OutputPatch",
	BufferPointStream:             "PointStream",
	BufferLineStream:              "LineStream",
	BufferTriangleStream:          "TriangleStream",
}

// String returns the HLSL name of the buffer kind.
func (k BufferKind) String() string {
	if name, ok := bufferKindNames[k]; ok {
		return name
	}
	return "undefined"
}

// ParseBufferKind looks up a buffer kind by its HLSL name.
func ParseBufferKind(name string) (BufferKind, bool) {
	for kind, n := range bufferKindNames {
		if n == name {
			return kind, true
		}
	}
	return BufferUndefined, false
}

// IsTexture reports whether k is a texture kind.
func (k BufferKind) IsTexture() bool {
	return k >= BufferTexture1D && k <= BufferRWTexture3D
}

// IsMultisampled reports whether k is a multisampled texture kind.
func (k BufferKind) IsMultisampled() bool {
	return k == BufferTexture2DMS || k == BufferTexture2DMSArray
}

// IsRW reports whether objects of kind k can be written.
func (k BufferKind) IsRW() bool {
	switch k {
	case BufferRWBuffer, BufferRWStructuredBuffer, BufferRWByteAddressBuffer,
		BufferAppendStructuredBuffer,
		BufferRWTexture1D, BufferRWTexture1DArray, BufferRWTexture2D,
		BufferRWTexture2DArray, BufferRWTexture3D:
		return true
	default:
		return false
	}
}

// IsStorage reports whether k is a (non-texture) storage buffer kind.
func (k BufferKind) IsStorage() bool {
	return k >= BufferBuffer && k <= BufferConsumeStructuredBuffer
}

// IsByteAddress reports whether k is a raw byte address buffer.
func (k BufferKind) IsByteAddress() bool {
	return k == BufferByteAddressBuffer || k == BufferRWByteAddressBuffer
}

// IsPatch reports whether k is a tessellation patch kind.
func (k BufferKind) IsPatch() bool {
	return k == BufferInputPatch || k == BufferOutputPatch
}

// IsStream reports whether k is a geometry shader output stream kind.
func (k BufferKind) IsStream() bool {
	return k >= BufferPointStream && k <= BufferTriangleStream
}

// TextureDim returns the number of coordinate components needed to address
// a texel of a texture kind (including the array layer), or 0 otherwise.
func (k BufferKind) TextureDim() int {
	switch k {
	case BufferTexture1D, BufferRWTexture1D:
		return 1
	case BufferTexture1DArray, BufferRWTexture1DArray, BufferTexture2D, BufferRWTexture2D,
		BufferTexture2DMS:
		return 2
	case BufferTexture2DArray, BufferRWTexture2DArray, BufferTexture3D, BufferRWTexture3D,
		BufferTextureCube, BufferTexture2DMSArray:
		return 3
	case BufferTextureCubeArray:
		return 4
	default:
		return 0
	}
}

// SamplerKind represents sampler state kinds.
type SamplerKind uint8

const (
	SamplerUndefined SamplerKind = iota

	// D3D10+ sampler states
	SamplerState
	SamplerComparisonState

	// D3D9 combined samplers
	Sampler1D
	Sampler2D
	Sampler3D
	SamplerCube
)

// String returns the HLSL name of the sampler kind.
func (k SamplerKind) String() string {
	switch k {
	case SamplerState:
		return "SamplerState"
	case SamplerComparisonState:
		return "SamplerComparisonState"
	case Sampler1D:
		return "sampler1D"
	case Sampler2D:
		return "sampler2D"
	case Sampler3D:
		return "sampler3D"
	case SamplerCube:
		return "samplerCUBE"
	default:
		return "undefined"
	}
}

// IsLegacy reports whether k is a D3D9 combined sampler.
func (k SamplerKind) IsLegacy() bool {
	return k >= Sampler1D && k <= SamplerCube
}
