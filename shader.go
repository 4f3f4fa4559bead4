package polyvolume

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/volume.wgsl
var volumeShaderSource string

//go:embed shaders/volume_lit.wgsl
var volumeLitShaderSource string

// ShaderSource returns WGSL preview shader source that reads a buffer laid out
// by Mesh.VertexBufferLayout for the given format. Formats with normals get
// Lambert shading; others are drawn flat.
//
// Both shaders take one uniform buffer at group 0, binding 0: a view-projection
// matrix followed by an RGBA color and, for the shaded variant, a light
// direction.
func ShaderSource(f VertexFormat) string {
	if f.Normal {
		return volumeLitShaderSource
	}
	return volumeShaderSource
}

// CompileShader compiles the preview shader for the given format to SPIR-V.
func CompileShader(f VertexFormat) ([]byte, error) {
	spirv, err := naga.Compile(ShaderSource(f))
	if err != nil {
		return nil, fmt.Errorf("polyvolume: compile %s shader: %w", f, err)
	}
	return spirv, nil
}
