// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Color is a linear RGBA color with components in [0, 1].
type Color [4]float32

// RGB builds an opaque Color.
//
// Parameters:
//   - r, g, b: color components in [0, 1]
//
// Returns:
//   - Color: the opaque color
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// WithAlpha returns a copy of the color with its alpha replaced.
//
// Parameters:
//   - a: the new opacity in [0, 1]
//
// Returns:
//   - Color: the modified color
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// OverlayVertex is the GPU layout of a screen-space overlay vertex.
// Size: 28 bytes (vec3<f32> position in NDC followed by vec4<f32> color).
type OverlayVertex struct {
	// Position is the vertex in normalized device coordinates; z is always 0.
	Position [3]float32
	// Color is the straight-alpha RGBA color.
	Color [4]float32
}

// MeshVertex is the GPU layout of a lit mesh vertex.
// Size: 44 bytes (vec3<f32> position, vec3<f32> normal, vec2<f32> uv, vec3<f32> color).
type MeshVertex struct {
	// Position is the object-space vertex position.
	Position [3]float32
	// Normal is the object-space unit normal.
	Normal [3]float32
	// UV is the texture coordinate.
	UV [2]float32
	// Color multiplies the draw's base color.
	Color [3]float32
}
