package mesh

import "github.com/go-gl/mathgl/mgl32"

var boxFaces = [6]struct {
	normal, u, v mgl32.Vec3
}{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

// Box builds an axis-aligned box centered on the origin with flat per-face normals.
//
// Parameters:
//   - size: edge lengths along x, y and z
//
// Returns:
//   - *Mesh: 24 vertices and 12 triangles
func Box(size mgl32.Vec3) *Mesh {
	half := size.Mul(0.5)
	m := &Mesh{}
	for _, f := range boxFaces {
		base := uint32(len(m.Points))
		center := mul(f.normal, half)
		du, dv := mul(f.u, half), mul(f.v, half)
		corners := [4]struct {
			su, sv float32
		}{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			m.Points = append(m.Points, center.Add(du.Mul(c.su)).Add(dv.Mul(c.sv)))
			m.Normals = append(m.Normals, f.normal)
			m.UVs = append(m.UVs, mgl32.Vec2{(c.su + 1) / 2, (c.sv + 1) / 2})
		}
		m.Triangles = append(m.Triangles, [3]uint32{base, base + 1, base + 2}, [3]uint32{base, base + 2, base + 3})
	}
	return m
}

// Transform applies t to every point and its inverse transpose to every normal.
//
// Parameters:
//   - t: the transform
func (m *Mesh) Transform(t mgl32.Mat4) {
	normalMat := t.Mat3().Inv().Transpose()
	for i, p := range m.Points {
		m.Points[i] = mgl32.TransformCoordinate(p, t)
	}
	for i, n := range m.Normals {
		if tn := normalMat.Mul3x1(n); tn.Len() > 0 {
			m.Normals[i] = tn.Normalize()
		}
	}
}

// Merge concatenates meshes into one, re-basing triangle indices.
//
// Parameters:
//   - meshes: the meshes to combine
//
// Returns:
//   - *Mesh: the combined mesh
func Merge(meshes ...*Mesh) *Mesh {
	out := &Mesh{}
	for _, m := range meshes {
		base := uint32(len(out.Points))
		out.Points = append(out.Points, m.Points...)
		out.Normals = append(out.Normals, m.Normals...)
		out.UVs = append(out.UVs, m.UVs...)
		for _, tri := range m.Triangles {
			out.Triangles = append(out.Triangles, [3]uint32{tri[0] + base, tri[1] + base, tri[2] + base})
		}
	}
	return out
}

// Airplane builds a blocky airplane body with its nose toward +X.
func Airplane() *Mesh {
	part := func(size, at mgl32.Vec3) *Mesh {
		b := Box(size)
		b.Transform(mgl32.Translate3D(at[0], at[1], at[2]))
		return b
	}
	return Merge(
		part(mgl32.Vec3{1.6, 0.22, 0.22}, mgl32.Vec3{0, 0, 0}),
		part(mgl32.Vec3{0.35, 0.04, 1.6}, mgl32.Vec3{0.1, 0, 0}),
		part(mgl32.Vec3{0.2, 0.03, 0.6}, mgl32.Vec3{-0.7, 0.05, 0}),
		part(mgl32.Vec3{0.2, 0.3, 0.03}, mgl32.Vec3{-0.7, 0.2, 0}),
	)
}

// Propeller builds a two-bladed propeller spinning about Z.
func Propeller() *Mesh {
	return Merge(
		Box(mgl32.Vec3{0.12, 1.4, 0.05}),
		Box(mgl32.Vec3{0.2, 0.2, 0.1}),
	)
}

func mul(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
