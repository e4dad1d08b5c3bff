// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"strconv"
	"strings"
)

// Semantic identifies a pipeline input/output slot.
type Semantic uint8

const (
	SemanticUndefined   Semantic = iota
	SemanticUserDefined          // e.g. TEXCOORD0

	SemanticClipDistance
	SemanticCullDistance
	SemanticCoverage
	SemanticDepth
	SemanticDepthGreaterEqual
	SemanticDepthLessEqual
	SemanticDispatchThreadID
	SemanticDomainLocation
	SemanticGroupID
	SemanticGroupIndex
	SemanticGroupThreadID
	SemanticGSInstanceID
	SemanticInsideTessFactor
	SemanticInstanceID
	SemanticIsFrontFace
	SemanticOutputControlPointID
	SemanticPosition
	SemanticPrimitiveID
	SemanticRenderTargetArrayIndex
	SemanticSampleIndex
	SemanticStencilRef
	SemanticTarget
	SemanticTessFactor
	SemanticVertexID
	SemanticViewportArrayIndex
)

// systemValueNames holds the canonical spelling of each system value.
var systemValueNames = [...]string{
	SemanticClipDistance:           "SV_ClipDistance",
	SemanticCullDistance:           "SV_CullDistance",
	SemanticCoverage:               "SV_Coverage",
	SemanticDepth:                  "SV_Depth",
	SemanticDepthGreaterEqual:      "SV_DepthGreaterEqual",
	SemanticDepthLessEqual:         "SV_DepthLessEqual",
	SemanticDispatchThreadID:       "SV_DispatchThreadID",
	SemanticDomainLocation:         "SV_DomainLocation",
	SemanticGroupID:                "SV_GroupID",
	SemanticGroupIndex:             "SV_GroupIndex",
	SemanticGroupThreadID:          "SV_GroupThreadID",
	SemanticGSInstanceID:           "SV_GSInstanceID",
	SemanticInsideTessFactor:       "SV_InsideTessFactor",
	SemanticInstanceID:             "SV_InstanceID",
	SemanticIsFrontFace:            "SV_IsFrontFace",
	SemanticOutputControlPointID:   "SV_OutputControlPointID",
	SemanticPosition:               "SV_Position",
	SemanticPrimitiveID:            "SV_PrimitiveID",
	SemanticRenderTargetArrayIndex: "SV_RenderTargetArrayIndex",
	SemanticSampleIndex:            "SV_SampleIndex",
	SemanticStencilRef:             "SV_StencilRef",
	SemanticTarget:                 "SV_Target",
	SemanticTessFactor:             "SV_TessFactor",
	SemanticVertexID:               "SV_VertexID",
	SemanticViewportArrayIndex:     "SV_ViewportArrayIndex",
}

// lookupSystemValue finds a system value by case-insensitive name.
func lookupSystemValue(name string) (Semantic, bool) {
	for sem, n := range systemValueNames {
		if n != "" && strings.EqualFold(n, name) {
			return Semantic(sem), true
		}
	}
	return SemanticUndefined, false
}

// String returns the canonical HLSL name of the semantic.
func (s Semantic) String() string {
	switch {
	case s == SemanticUndefined:
		return "<undefined>"
	case s == SemanticUserDefined:
		return "<user-defined>"
	case int(s) < len(systemValueNames):
		return systemValueNames[s]
	default:
		return "<unknown>"
	}
}

// IsSystemValue reports whether s is an SV_ semantic.
func (s Semantic) IsSystemValue() bool { return s > SemanticUserDefined }

// IndexedSemantic is a semantic with its slot index, e.g. SV_Target1 or
// TEXCOORD3.
type IndexedSemantic struct {
	Semantic    Semantic
	Index       int
	UserDefined string // name without index for user-defined semantics
}

// ParseSemantic parses a semantic as written in source. An empty string
// yields the undefined semantic.
func ParseSemantic(text string) IndexedSemantic {
	if text == "" {
		return IndexedSemantic{}
	}

	// Split the trailing slot index.
	i := len(text)
	for i > 0 && text[i-1] >= '0' && text[i-1] <= '9' {
		i--
	}
	name := text[:i]
	index := 0
	if i < len(text) {
		index, _ = strconv.Atoi(text[i:])
	}

	if sem, ok := lookupSystemValue(name); ok {
		return IndexedSemantic{Semantic: sem, Index: index}
	}
	return IndexedSemantic{Semantic: SemanticUserDefined, Index: index, UserDefined: strings.ToUpper(name)}
}

// IsValid reports whether a semantic was specified.
func (s IndexedSemantic) IsValid() bool { return s.Semantic != SemanticUndefined }

// IsSystemValue reports whether s is an SV_ semantic.
func (s IndexedSemantic) IsSystemValue() bool { return s.Semantic.IsSystemValue() }

// IsUserDefined reports whether s is a user-defined semantic.
func (s IndexedSemantic) IsUserDefined() bool { return s.Semantic == SemanticUserDefined }

// String returns the semantic with its index, e.g. "SV_Target1" or "TEXCOORD0".
func (s IndexedSemantic) String() string {
	switch {
	case s.IsUserDefined():
		return s.UserDefined + strconv.Itoa(s.Index)
	case s.Index > 0:
		return s.Semantic.String() + strconv.Itoa(s.Index)
	default:
		return s.Semantic.String()
	}
}

// Key returns a value identifying the slot, used for duplicate detection.
func (s IndexedSemantic) Key() string {
	if s.IsUserDefined() {
		return s.UserDefined + "#" + strconv.Itoa(s.Index)
	}
	return "SV#" + strconv.Itoa(int(s.Semantic)) + "#" + strconv.Itoa(s.Index)
}
