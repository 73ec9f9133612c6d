package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// SignedDistance returns the signed distance from the plane to p. Positive values lie on the normal side.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - float32: signed distance
func (pl Plane) SignedDistance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.Distance
}

// Frustum represents the six planes of a view frustum.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a projection * view matrix
// using the Gribb/Hartmann method. The near plane follows the WebGPU [0, 1] depth range
// produced by Perspective, so it is row2 alone rather than row3 + row2.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - fullview: the combined projection * view matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(fullview mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 { return fullview.Row(i) }
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	planes := [6]mgl32.Vec4{
		r3.Add(r0),
		r3.Sub(r0),
		r3.Add(r1),
		r3.Sub(r1),
		r2,
		r3.Sub(r2),
	}

	var f Frustum
	for i, p := range planes {
		f.Planes[i] = Plane{Normal: p.Vec3(), Distance: p[3]}
		f.normalizePlane(i)
	}
	return f
}

// InFrontOfNear reports whether p lies strictly on the visible side of the near plane.
//
// Parameters:
//   - p: world-space point
//
// Returns:
//   - bool: true when p is beyond the near plane
func (f *Frustum) InFrontOfNear(p mgl32.Vec3) bool {
	return f.Planes[FrustumNear].SignedDistance(p) > 0
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := p.Normal.Len()
	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
}
