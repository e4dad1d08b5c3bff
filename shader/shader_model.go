// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"fmt"
	"strings"
)

// ShaderModel represents a DirectX Shader Model version.
// Shader Models define the feature set available to the source program.
type ShaderModel uint8

// Supported Shader Model versions.
const (
	// ShaderModel3_0 is the Direct3D 9 model with combined samplers.
	ShaderModel3_0 ShaderModel = iota

	// ShaderModel4_0 introduces geometry shaders (DirectX 10).
	ShaderModel4_0

	// ShaderModel4_1 adds cube map arrays and Gather.
	ShaderModel4_1

	// ShaderModel5_0 introduces tessellation and compute shaders (DirectX 11).
	ShaderModel5_0

	// ShaderModel5_1 provides improved resource binding.
	ShaderModel5_1

	// ShaderModel6_0 introduces wave intrinsics and DXIL.
	ShaderModel6_0

	// ShaderModel6_1 adds SV_ViewID and barycentrics.
	ShaderModel6_1

	// ShaderModel6_2 adds float16 and denorm control.
	ShaderModel6_2

	// ShaderModel6_3 adds DirectX Raytracing (DXR).
	ShaderModel6_3

	// ShaderModel6_4 adds variable rate shading and library subobjects.
	ShaderModel6_4

	// ShaderModel6_5 adds mesh shaders and sampler feedback.
	ShaderModel6_5

	// ShaderModel6_6 adds 64-bit atomics and dynamic resources.
	ShaderModel6_6

	// ShaderModel6_7 adds advanced mesh shaders and work graphs.
	ShaderModel6_7
)

// DefaultShaderModel is used when no shader model is configured.
const DefaultShaderModel = ShaderModel5_0

var shaderModelVersions = [...][2]uint8{
	ShaderModel3_0: {3, 0},
	ShaderModel4_0: {4, 0},
	ShaderModel4_1: {4, 1},
	ShaderModel5_0: {5, 0},
	ShaderModel5_1: {5, 1},
	ShaderModel6_0: {6, 0},
	ShaderModel6_1: {6, 1},
	ShaderModel6_2: {6, 2},
	ShaderModel6_3: {6, 3},
	ShaderModel6_4: {6, 4},
	ShaderModel6_5: {6, 5},
	ShaderModel6_6: {6, 6},
	ShaderModel6_7: {6, 7},
}

// String returns a human-readable representation of the shader model.
// Example: "SM 5.0", "SM 6.0"
func (sm ShaderModel) String() string {
	major, minor := sm.version()
	return fmt.Sprintf("SM %d.%d", major, minor)
}

// ProfileSuffix returns the shader profile suffix for this model.
// Example: "5_0", "4_1"
// Used to construct profiles like "vs_5_0", "cs_4_0".
func (sm ShaderModel) ProfileSuffix() string {
	major, minor := sm.version()
	return fmt.Sprintf("%d_%d", major, minor)
}

// version returns the major and minor version numbers.
func (sm ShaderModel) version() (major, minor uint8) {
	if int(sm) < len(shaderModelVersions) {
		v := shaderModelVersions[sm]
		return v[0], v[1]
	}
	return 5, 0 // Default to 5.0 for unknown
}

// Major returns the major version number.
func (sm ShaderModel) Major() uint8 {
	major, _ := sm.version()
	return major
}

// Minor returns the minor version number.
func (sm ShaderModel) Minor() uint8 {
	_, minor := sm.version()
	return minor
}

// SupportsGeometryShaders returns true if geometry shaders are available.
// Geometry shaders were introduced in Shader Model 4.0.
func (sm ShaderModel) SupportsGeometryShaders() bool {
	return sm >= ShaderModel4_0
}

// SupportsTessellation returns true if hull and domain shaders are available.
// Tessellation was introduced in Shader Model 5.0.
func (sm ShaderModel) SupportsTessellation() bool {
	return sm >= ShaderModel5_0
}

// SupportsCompute returns true if compute shaders are available.
// Shader Model 4.x offers a restricted compute profile (cs_4_0, cs_4_1).
func (sm ShaderModel) SupportsCompute() bool {
	return sm >= ShaderModel4_0
}

// SupportsTextureObjects returns true if textures and samplers are separate
// objects. Shader Model 3.0 only has combined samplers.
func (sm ShaderModel) SupportsTextureObjects() bool {
	return sm >= ShaderModel4_0
}

// ParseShaderModel parses versions such as "5.0", "5_0", "50" or "SM 5.1".
func ParseShaderModel(s string) (ShaderModel, error) {
	text := strings.TrimSpace(strings.ToLower(s))
	text = strings.TrimPrefix(text, "sm")
	text = strings.TrimSpace(text)
	text = strings.NewReplacer(".", "", "_", "").Replace(text)
	if len(text) == 1 {
		text += "0"
	}
	if len(text) == 2 {
		for sm, v := range shaderModelVersions {
			if text[0] == '0'+v[0] && text[1] == '0'+v[1] {
				return ShaderModel(sm), nil
			}
		}
	}
	return 0, fmt.Errorf("unknown shader model %q", s)
}

// MarshalText implements encoding.TextMarshaler ("5.0").
func (sm ShaderModel) MarshalText() ([]byte, error) {
	major, minor := sm.version()
	return []byte(fmt.Sprintf("%d.%d", major, minor)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (sm *ShaderModel) UnmarshalText(text []byte) error {
	v, err := ParseShaderModel(string(text))
	if err != nil {
		return err
	}
	*sm = v
	return nil
}
