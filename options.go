// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package xsc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/OscarGame/XShaderCompiler/analyzer"
	"github.com/OscarGame/XShaderCompiler/convert"
	"github.com/OscarGame/XShaderCompiler/shader"
)

// Options configures a translation.
type Options struct {
	// Stage is the pipeline stage of the entry point.
	Stage shader.Stage

	// ShaderModel is the HLSL shader model the source targets (default: 5.0).
	ShaderModel shader.ShaderModel

	// EntryPoint names the main entry point (default: "main").
	EntryPoint string

	// SecondaryEntryPoint names the patch constant function a domain shader
	// inherits its tessellator configuration from.
	SecondaryEntryPoint string

	// PreferWrappers keeps legacy sampler intrinsics such as tex2D instead
	// of inlining them as texture object methods.
	PreferWrappers bool

	// WarnShadowing reports local declarations that hide outer ones.
	WarnShadowing bool

	// Conversion selects the rewrites applied after analysis (default: all).
	Conversion convert.Flags

	// VertexSemantics assigns explicit locations to vertex shader inputs.
	VertexSemantics []analyzer.VertexSemantic
}

// DefaultOptions returns options for a vertex shader entry point "main"
// targeting shader model 5.0 with every conversion enabled.
func DefaultOptions() Options {
	return Options{
		Stage:       shader.StageVertex,
		ShaderModel: shader.ShaderModel5_0,
		EntryPoint:  analyzer.DefaultEntryPoint,
		Conversion:  convert.All,
	}
}

func (o Options) analyzerInput() analyzer.Input {
	return analyzer.Input{
		Stage:               o.Stage,
		ShaderModel:         o.ShaderModel,
		EntryPoint:          o.EntryPoint,
		SecondaryEntryPoint: o.SecondaryEntryPoint,
		PreferWrappers:      o.PreferWrappers,
		WarnShadowing:       o.WarnShadowing,
	}
}

func (o Options) analyzerOutput() analyzer.Output {
	return analyzer.Output{VertexSemantics: o.VertexSemantics}
}

// Format is the encoding of an options file.
type Format uint8

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// FormatForPath selects the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unsupported options file extension %q", filepath.Ext(path))
	}
}

// optionsDoc is the file form of Options. Enumerations are textual and the
// conversion flags are a list of names.
type optionsDoc struct {
	Stage               shader.Stage              `json:"stage" yaml:"stage"`
	ShaderModel         shader.ShaderModel        `json:"shader_model" yaml:"shader_model"`
	EntryPoint          string                    `json:"entry_point" yaml:"entry_point"`
	SecondaryEntryPoint string                    `json:"secondary_entry_point" yaml:"secondary_entry_point"`
	PreferWrappers      bool                      `json:"prefer_wrappers" yaml:"prefer_wrappers"`
	WarnShadowing       bool                      `json:"warn_shadowing" yaml:"warn_shadowing"`
	Conversion          []string                  `json:"conversion" yaml:"conversion"`
	VertexSemantics     []analyzer.VertexSemantic `json:"vertex_semantics" yaml:"vertex_semantics"`
}

func newOptionsDoc(o Options) optionsDoc {
	conversion := o.Conversion.Names()
	if conversion == nil {
		conversion = []string{}
	}
	return optionsDoc{
		Stage:               o.Stage,
		ShaderModel:         o.ShaderModel,
		EntryPoint:          o.EntryPoint,
		SecondaryEntryPoint: o.SecondaryEntryPoint,
		PreferWrappers:      o.PreferWrappers,
		WarnShadowing:       o.WarnShadowing,
		Conversion:          conversion,
		VertexSemantics:     o.VertexSemantics,
	}
}

func (d optionsDoc) options() (Options, error) {
	flags, err := convert.ParseFlags(d.Conversion)
	if err != nil {
		return Options{}, err
	}
	if d.Stage == shader.StageUndefined {
		return Options{}, errors.New("stage must not be undefined")
	}
	return Options{
		Stage:               d.Stage,
		ShaderModel:         d.ShaderModel,
		EntryPoint:          d.EntryPoint,
		SecondaryEntryPoint: d.SecondaryEntryPoint,
		PreferWrappers:      d.PreferWrappers,
		WarnShadowing:       d.WarnShadowing,
		Conversion:          flags,
		VertexSemantics:     d.VertexSemantics,
	}, nil
}

// LoadOptions decodes options from r. Fields absent from the document keep
// their DefaultOptions value and an empty document yields DefaultOptions;
// unknown fields are rejected.
func LoadOptions(r io.Reader, format Format) (Options, error) {
	if format != FormatYAML && format != FormatJSON {
		return Options{}, fmt.Errorf("unknown format %s", format)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Options{}, fmt.Errorf("read %s options: %w", format, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return DefaultOptions(), nil
	}

	doc := newOptionsDoc(DefaultOptions())
	if format == FormatYAML {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// A document holding only comments decodes to nothing.
		if err = dec.Decode(&doc); errors.Is(err, io.EOF) {
			err = nil
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	}
	if err != nil {
		return Options{}, fmt.Errorf("decode %s options: %w", format, err)
	}

	opts, err := doc.options()
	if err != nil {
		return Options{}, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

// LoadOptionsFile reads options from a YAML (.yaml, .yml) or JSON (.json)
// file.
func LoadOptionsFile(path string) (Options, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Options{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	opts, err := LoadOptions(bytes.NewReader(data), format)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Marshal encodes the options in the given format. The result can be read
// back with LoadOptions.
func (o Options) Marshal(format Format) ([]byte, error) {
	doc := newOptionsDoc(o)
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}
