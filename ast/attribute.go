// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "strings"

// AttributeKind identifies a function or statement attribute.
type AttributeKind uint8

const (
	AttributeUnknown AttributeKind = iota

	// Entry point attributes
	AttributeDomain
	AttributeEarlyDepthStencil
	AttributeInstance
	AttributeMaxTessFactor
	AttributeMaxVertexCount
	AttributeNumThreads
	AttributeOutputControlPoints
	AttributeOutputTopology
	AttributePartitioning
	AttributePatchConstantFunc

	// Statement attributes
	AttributeBranch
	AttributeFlatten
	AttributeLoop
	AttributeUnroll
)

var attributeNames = [...]string{
	AttributeUnknown:             "unknown",
	AttributeDomain:              "domain",
	AttributeEarlyDepthStencil:   "earlydepthstencil",
	AttributeInstance:            "instance",
	AttributeMaxTessFactor:       "maxtessfactor",
	AttributeMaxVertexCount:      "maxvertexcount",
	AttributeNumThreads:          "numthreads",
	AttributeOutputControlPoints: "outputcontrolpoints",
	AttributeOutputTopology:      "outputtopology",
	AttributePartitioning:        "partitioning",
	AttributePatchConstantFunc:   "patchconstantfunc",
	AttributeBranch:              "branch",
	AttributeFlatten:             "flatten",
	AttributeLoop:                "loop",
	AttributeUnroll:              "unroll",
}

func (k AttributeKind) String() string {
	if int(k) < len(attributeNames) {
		return attributeNames[k]
	}
	return "unknown"
}

// ParseAttributeKind looks up an attribute by its case-insensitive name.
func ParseAttributeKind(name string) AttributeKind {
	for k, n := range attributeNames {
		if strings.EqualFold(n, name) && AttributeKind(k) != AttributeUnknown {
			return AttributeKind(k)
		}
	}
	return AttributeUnknown
}

// Attribute represents an attribute such as [numthreads(8, 8, 1)].
type Attribute struct {
	Kind  AttributeKind
	Ident string // as written in source
	Args  []Expr
	Span  Span
}

// NewAttribute creates an attribute, deriving its kind from the name.
func NewAttribute(ident string, span Span, args ...Expr) *Attribute {
	return &Attribute{Kind: ParseAttributeKind(ident), Ident: ident, Args: args, Span: span}
}
