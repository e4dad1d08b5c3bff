// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package xsc translates HLSL shader programs into a form ready for GLSL
// emission.
//
// The pipeline takes a parsed program and runs two passes over it:
//  1. Analyze: resolve identifiers, bind calls and types, validate the
//     entry point and its interface (package analyzer)
//  2. Convert: rewrite expressions GLSL cannot express directly, such as
//     swizzles on scalars and relational operators on vectors (package
//     convert)
//
// Both passes decorate the program in place. The converter only runs on
// programs that analyzed without errors.
//
// Example usage:
//
//	opts := xsc.DefaultOptions()
//	opts.Stage = shader.StageFragment
//	res, err := xsc.Translate(prog, opts)
//	if err != nil {
//	    fmt.Print(res.Diagnostics.FormatAll(source))
//	    return err
//	}
//
// Options can also be loaded from YAML or JSON files, see LoadOptionsFile.
package xsc

import (
	"errors"
	"fmt"

	"github.com/OscarGame/XShaderCompiler/analyzer"
	"github.com/OscarGame/XShaderCompiler/ast"
	"github.com/OscarGame/XShaderCompiler/convert"
	"github.com/OscarGame/XShaderCompiler/diag"
)

// Result is the outcome of a translation.
type Result struct {
	// Program is the decorated and rewritten program.
	Program *ast.Program

	// Diagnostics holds every diagnostic of both passes, warnings
	// included, in the order they were reported.
	Diagnostics diag.List
}

// ErrNilProgram is returned by Translate when no program is given.
var ErrNilProgram = errors.New("xsc: nil program")

// Translate analyzes prog for the target described by opts and, if the
// analysis succeeds, applies the conversion rewrites selected by
// opts.Conversion.
//
// The returned Result is never nil for a non-nil program, so diagnostics
// are available even when an error is returned.
func Translate(prog *ast.Program, opts Options) (*Result, error) {
	if prog == nil {
		return nil, ErrNilProgram
	}
	res := &Result{Program: prog}

	if err := analyzer.Analyze(prog, opts.analyzerInput(), opts.analyzerOutput(), &res.Diagnostics); err != nil {
		return res, fmt.Errorf("analysis error: %w", err)
	}
	if err := convert.New(opts.Conversion, &res.Diagnostics).Convert(prog); err != nil {
		return res, fmt.Errorf("conversion error: %w", err)
	}
	return res, nil
}

// Analyze runs only the analysis pass. It is useful for validating a
// program without rewriting it.
func Analyze(prog *ast.Program, opts Options) (diag.List, error) {
	if prog == nil {
		return nil, ErrNilProgram
	}
	var diags diag.List
	err := analyzer.Analyze(prog, opts.analyzerInput(), opts.analyzerOutput(), &diags)
	return diags, err
}

// Check validates opts without a program: the stage must exist in the
// shader model and the vertex semantic table must be consistent. Warnings
// are returned even when err is nil.
func Check(opts Options) (diag.List, error) {
	var diags diag.List
	err := analyzer.CheckConfiguration(opts.analyzerInput(), opts.analyzerOutput(), &diags)
	return diags, err
}
