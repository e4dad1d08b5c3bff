// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

// BinaryOp represents binary operators.
type BinaryOp uint8

const (
	BinaryUndefined BinaryOp = iota

	BinaryLogicalAnd // &&
	BinaryLogicalOr  // ||

	BinaryOr     // |
	BinaryXor    // ^
	BinaryAnd    // &
	BinaryLShift // <<
	BinaryRShift // >>

	BinaryAdd // +
	BinarySub // -
	BinaryMul // *
	BinaryDiv // /
	BinaryMod // %

	BinaryEqual        // ==
	BinaryNotEqual     // !=
	BinaryLess         // <
	BinaryGreater      // >
	BinaryLessEqual    // <=
	BinaryGreaterEqual // >=
)

var binaryOpSpellings = [...]string{
	BinaryUndefined:    "?",
	BinaryLogicalAnd:   "&&",
	BinaryLogicalOr:    "||",
	BinaryOr:           "|",
	BinaryXor:          "^",
	BinaryAnd:          "&",
	BinaryLShift:       "<<",
	BinaryRShift:       ">>",
	BinaryAdd:          "+",
	BinarySub:          "-",
	BinaryMul:          "*",
	BinaryDiv:          "/",
	BinaryMod:          "%",
	BinaryEqual:        "==",
	BinaryNotEqual:     "!=",
	BinaryLess:         "<",
	BinaryGreater:      ">",
	BinaryLessEqual:    "<=",
	BinaryGreaterEqual: ">=",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpSpellings) {
		return binaryOpSpellings[op]
	}
	return "?"
}

// IsCompare reports whether op is a relational or equality operator.
func (op BinaryOp) IsCompare() bool {
	return op >= BinaryEqual && op <= BinaryGreaterEqual
}

// IsLogical reports whether op is && or ||.
func (op BinaryOp) IsLogical() bool {
	return op == BinaryLogicalAnd || op == BinaryLogicalOr
}

// IsBitwise reports whether op only accepts integral operands.
func (op BinaryOp) IsBitwise() bool {
	return op >= BinaryOr && op <= BinaryRShift
}

// UnaryOp represents prefix and postfix unary operators.
type UnaryOp uint8

const (
	UnaryUndefined  UnaryOp = iota
	UnaryLogicalNot         // !
	UnaryNot                // ~
	UnaryNop                // +
	UnaryNegate             // -
	UnaryInc                // ++
	UnaryDec                // --
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryLogicalNot:
		return "!"
	case UnaryNot:
		return "~"
	case UnaryNop:
		return "+"
	case UnaryNegate:
		return "-"
	case UnaryInc:
		return "++"
	case UnaryDec:
		return "--"
	default:
		return "?"
	}
}

// IsLValueOp reports whether op modifies its operand.
func (op UnaryOp) IsLValueOp() bool { return op == UnaryInc || op == UnaryDec }

// AssignOp represents assignment operators.
type AssignOp uint8

const (
	AssignUndefined AssignOp = iota
	AssignSet                // =
	AssignAdd                // +=
	AssignSub                // -=
	AssignMul                // *=
	AssignDiv                // /=
	AssignMod                // %=
	AssignLShift             // <<=
	AssignRShift             // >>=
	AssignOr                 // |=
	AssignAnd                // &=
	AssignXor                // ^=
)

var assignOpSpellings = [...]string{
	AssignUndefined: "?",
	AssignSet:       "=",
	AssignAdd:       "+=",
	AssignSub:       "-=",
	AssignMul:       "*=",
	AssignDiv:       "/=",
	AssignMod:       "%=",
	AssignLShift:    "<<=",
	AssignRShift:    ">>=",
	AssignOr:        "|=",
	AssignAnd:       "&=",
	AssignXor:       "^=",
}

func (op AssignOp) String() string {
	if int(op) < len(assignOpSpellings) {
		return assignOpSpellings[op]
	}
	return "?"
}

// BinaryOp returns the binary operator applied by a compound assignment,
// or BinaryUndefined for plain assignment.
func (op AssignOp) BinaryOp() BinaryOp {
	switch op {
	case AssignAdd:
		return BinaryAdd
	case AssignSub:
		return BinarySub
	case AssignMul:
		return BinaryMul
	case AssignDiv:
		return BinaryDiv
	case AssignMod:
		return BinaryMod
	case AssignLShift:
		return BinaryLShift
	case AssignRShift:
		return BinaryRShift
	case AssignOr:
		return BinaryOr
	case AssignAnd:
		return BinaryAnd
	case AssignXor:
		return BinaryXor
	default:
		return BinaryUndefined
	}
}
