package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxLights is the number of lights the mesh shader reads.
	MaxLights = 4

	// meshVertexStride is the byte size of common.MeshVertex.
	meshVertexStride = 44

	// meshUniformSize is the byte size of the WGSL MeshUniforms struct.
	meshUniformSize = 240

	// uniformSlotSize is the dynamic offset stride; WebGPU requires 256-byte alignment.
	uniformSlotSize = 256

	// maxDrawsPerFrame bounds the mesh draws recorded between BeginFrame and EndFrame.
	maxDrawsPerFrame = 1024
)

// MeshUniforms holds the per-draw inputs of the lit mesh pipeline.
type MeshUniforms struct {
	// Modelview maps object space to eye space.
	Modelview mgl32.Mat4
	// Projection maps eye space to clip space.
	Projection mgl32.Mat4
	// Color is the base color; alpha is written through.
	Color common.Color
	// Lights are eye-space light positions. Entries past MaxLights are ignored.
	Lights []mgl32.Vec3
	// Checker modulates the base color with a procedural checkerboard from the UVs.
	Checker bool
	// CheckerCells is the checker frequency per UV unit.
	CheckerCells float32
	// Ambient, Diffuse and Specular weight the shading terms; Shininess is the specular exponent.
	Ambient   float32
	Diffuse   float32
	Specular  float32
	Shininess float32
	// Flat shades each triangle with its face normal instead of the vertex normals.
	Flat bool
}

// DefaultMeshUniforms returns uniforms with the standard shading weights and a white base color.
//
// Parameters:
//   - modelview: the object to eye transform
//   - projection: the eye to clip transform
//
// Returns:
//   - MeshUniforms: the uniforms
func DefaultMeshUniforms(modelview, projection mgl32.Mat4) MeshUniforms {
	return MeshUniforms{
		Modelview:    modelview,
		Projection:   projection,
		Color:        common.RGB(1, 1, 1),
		CheckerCells: 8,
		Ambient:      0.2,
		Diffuse:      0.8,
		Specular:     0.5,
		Shininess:    50,
	}
}

// EyeLights transforms world-space light positions into eye space.
//
// Parameters:
//   - view: the world to eye transform
//   - lights: world-space positions
//
// Returns:
//   - []mgl32.Vec3: eye-space positions, at most MaxLights
func EyeLights(view mgl32.Mat4, lights []mgl32.Vec3) []mgl32.Vec3 {
	n := min(len(lights), MaxLights)
	out := make([]mgl32.Vec3, n)
	for i := range n {
		out[i] = view.Mul4x1(lights[i].Vec4(1)).Vec3()
	}
	return out
}

// Marshal encodes the uniforms in the WGSL uniform layout.
//
// Returns:
//   - []byte: meshUniformSize bytes, little-endian
func (u MeshUniforms) Marshal() []byte {
	buf := make([]byte, meshUniformSize)
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}

	for _, v := range u.Modelview {
		put(v)
	}
	for _, v := range u.Projection {
		put(v)
	}
	for _, v := range u.Color {
		put(v)
	}
	n := min(len(u.Lights), MaxLights)
	for i := range MaxLights {
		if i < n {
			put(u.Lights[i][0])
			put(u.Lights[i][1])
			put(u.Lights[i][2])
		} else {
			off += 12
		}
		put(1)
	}
	put(float32(n))
	put(flag(u.Checker))
	put(u.CheckerCells)
	put(u.Ambient)
	put(u.Diffuse)
	put(u.Specular)
	put(u.Shininess)
	put(flag(u.Flat))
	return buf
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
