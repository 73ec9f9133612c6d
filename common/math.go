package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Perspective creates a perspective projection matrix.
// Depth maps to the WebGPU clip range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Viewport is a window-space rectangle in pixels. Y grows downward, matching GLFW cursor coordinates.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Aspect returns width / height. Dimensions below 1 are treated as 1.
//
// Returns:
//   - float32: the aspect ratio
func (v Viewport) Aspect() float32 {
	return float32(max(v.Width, 1)) / float32(max(v.Height, 1))
}

// Center returns the viewport center in window pixels.
//
// Returns:
//   - mgl32.Vec2: the center point
func (v Viewport) Center() mgl32.Vec2 {
	return mgl32.Vec2{
		float32(v.X) + float32(v.Width)/2,
		float32(v.Y) + float32(v.Height)/2,
	}
}

// ScreenToNDC converts a window pixel position into normalized device coordinates in [-1, 1].
// Window y grows downward while NDC y grows upward.
//
// Parameters:
//   - v: the viewport the pixel lies in
//   - x, y: window pixel coordinates
//
// Returns:
//   - mgl32.Vec2: NDC x and y
func ScreenToNDC(v Viewport, x, y float32) mgl32.Vec2 {
	w := float32(max(v.Width, 1))
	h := float32(max(v.Height, 1))
	return mgl32.Vec2{
		2*(x-float32(v.X))/w - 1,
		1 - 2*(y-float32(v.Y))/h,
	}
}

// NDCToScreen is the inverse of ScreenToNDC.
//
// Parameters:
//   - v: the target viewport
//   - ndc: normalized device x and y
//
// Returns:
//   - mgl32.Vec2: window pixel coordinates
func NDCToScreen(v Viewport, ndc mgl32.Vec2) mgl32.Vec2 {
	w := float32(max(v.Width, 1))
	h := float32(max(v.Height, 1))
	return mgl32.Vec2{
		float32(v.X) + (ndc[0]+1)*w/2,
		float32(v.Y) + (1-ndc[1])*h/2,
	}
}

// ProjectToScreen transforms a world-space point by a combined projection-view matrix
// into window pixels. ok is false when the point lies at or behind the eye (clip w <= 0).
//
// Parameters:
//   - v: the target viewport
//   - fullview: projection * view
//   - p: the world-space point
//
// Returns:
//   - mgl32.Vec2: window pixel coordinates
//   - float32: NDC depth of the point
//   - bool: false when the point cannot be projected
func ProjectToScreen(v Viewport, fullview mgl32.Mat4, p mgl32.Vec3) (mgl32.Vec2, float32, bool) {
	clip := fullview.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return mgl32.Vec2{}, 0, false
	}
	ndc := mgl32.Vec2{clip[0] / clip[3], clip[1] / clip[3]}
	return NDCToScreen(v, ndc), clip[2] / clip[3], true
}

// Clamp limits value to [lo, hi].
//
// Parameters:
//   - value: the value to clamp
//   - lo, hi: inclusive bounds
//
// Returns:
//   - T: the clamped value
func Clamp[T int | float32 | float64](value, lo, hi T) T {
	return max(lo, min(value, hi))
}

// WithinPixels reports whether the world-space point p projects within radius pixels of (x, y).
// Points behind the eye never match.
//
// Parameters:
//   - v: the viewport
//   - fullview: projection * view
//   - p: the world-space point
//   - x, y: window pixel coordinates
//   - radius: hit radius in pixels
//
// Returns:
//   - bool: true when the projected point is within radius
func WithinPixels(v Viewport, fullview mgl32.Mat4, p mgl32.Vec3, x, y, radius float32) bool {
	s, _, ok := ProjectToScreen(v, fullview, p)
	if !ok {
		return false
	}
	return s.Sub(mgl32.Vec2{x, y}).Len() <= radius
}
