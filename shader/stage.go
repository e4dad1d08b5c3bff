// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shader describes the compilation target: the pipeline stage of the
// entry point and the shader model of the source program.
package shader

import (
	"fmt"
	"strings"
)

// Stage is a programmable pipeline stage.
type Stage uint8

const (
	StageUndefined Stage = iota
	StageVertex
	StageTessControl    // hull shader
	StageTessEvaluation // domain shader
	StageGeometry
	StageFragment // pixel shader
	StageCompute
)

var stageNames = [...]string{
	StageUndefined:      "undefined",
	StageVertex:         "vertex",
	StageTessControl:    "tess-control",
	StageTessEvaluation: "tess-evaluation",
	StageGeometry:       "geometry",
	StageFragment:       "fragment",
	StageCompute:        "compute",
}

// stageAliases maps accepted spellings to stages.
var stageAliases = map[string]Stage{
	"vertex": StageVertex, "vert": StageVertex, "vs": StageVertex,
	"tess-control": StageTessControl, "tesc": StageTessControl, "hull": StageTessControl, "hs": StageTessControl,
	"tess-evaluation": StageTessEvaluation, "tese": StageTessEvaluation, "domain": StageTessEvaluation, "ds": StageTessEvaluation,
	"geometry": StageGeometry, "geom": StageGeometry, "gs": StageGeometry,
	"fragment": StageFragment, "frag": StageFragment, "pixel": StageFragment, "ps": StageFragment,
	"compute": StageCompute, "comp": StageCompute, "cs": StageCompute,
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// ProfilePrefix returns the HLSL profile prefix, e.g. "vs" or "cs".
func (s Stage) ProfilePrefix() string {
	switch s {
	case StageVertex:
		return "vs"
	case StageTessControl:
		return "hs"
	case StageTessEvaluation:
		return "ds"
	case StageGeometry:
		return "gs"
	case StageFragment:
		return "ps"
	case StageCompute:
		return "cs"
	default:
		return ""
	}
}

// Profile returns the HLSL profile name for the stage, e.g. "ps_5_0".
func (s Stage) Profile(sm ShaderModel) string {
	return s.ProfilePrefix() + "_" + sm.ProfileSuffix()
}

// IsTessellation reports whether s is a hull or domain stage.
func (s Stage) IsTessellation() bool {
	return s == StageTessControl || s == StageTessEvaluation
}

// MinShaderModel returns the lowest shader model providing the stage.
func (s Stage) MinShaderModel() ShaderModel {
	switch s {
	case StageGeometry, StageCompute:
		return ShaderModel4_0
	case StageTessControl, StageTessEvaluation:
		return ShaderModel5_0
	default:
		return ShaderModel3_0
	}
}

// SupportedBy reports whether shader model sm provides the stage.
func (s Stage) SupportedBy(sm ShaderModel) bool {
	switch {
	case s == StageUndefined:
		return false
	case s == StageGeometry:
		return sm.SupportsGeometryShaders()
	case s.IsTessellation():
		return sm.SupportsTessellation()
	case s == StageCompute:
		return sm.SupportsCompute()
	default:
		return true
	}
}

// ParseStage parses a stage name such as "fragment", "ps" or "hull".
func ParseStage(name string) (Stage, error) {
	if s, ok := stageAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return StageUndefined, fmt.Errorf("unknown shader stage %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stage) UnmarshalText(text []byte) error {
	v, err := ParseStage(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
