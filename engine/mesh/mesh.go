// Package mesh holds indexed triangle meshes on the CPU and builds them from parametric surfaces.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrIndexOutOfRange is returned by Validate when a triangle references a missing vertex.
var ErrIndexOutOfRange = errors.New("triangle index out of range")

// Mesh is an indexed triangle mesh. Normals, UVs and Colors, when present, are per vertex.
type Mesh struct {
	Points    []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Colors    []mgl32.Vec3
	Triangles [][3]uint32
}

// Validate checks every triangle index and the attribute lengths.
//
// Returns:
//   - error: ErrIndexOutOfRange or a length mismatch, nil when the mesh is drawable
func (m *Mesh) Validate() error {
	n := uint32(len(m.Points))
	for i, tri := range m.Triangles {
		for _, idx := range tri {
			if idx >= n {
				return fmt.Errorf("triangle %d index %d of %d vertices: %w", i, idx, n, ErrIndexOutOfRange)
			}
		}
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Points) {
		return fmt.Errorf("%d normals for %d vertices", len(m.Normals), len(m.Points))
	}
	if len(m.UVs) != 0 && len(m.UVs) != len(m.Points) {
		return fmt.Errorf("%d uvs for %d vertices", len(m.UVs), len(m.Points))
	}
	if len(m.Colors) != 0 && len(m.Colors) != len(m.Points) {
		return fmt.Errorf("%d colors for %d vertices", len(m.Colors), len(m.Points))
	}
	return nil
}

// SmoothNormals replaces the vertex normals with the area-weighted average of the
// normals of the triangles sharing each vertex. Vertices on no triangle get +Y.
func (m *Mesh) SmoothNormals() {
	normals := make([]mgl32.Vec3, len(m.Points))
	for _, tri := range m.Triangles {
		p0, p1, p2 := m.Points[tri[0]], m.Points[tri[1]], m.Points[tri[2]]
		// Cross product length is twice the triangle area.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		for _, idx := range tri {
			normals[idx] = normals[idx].Add(n)
		}
	}
	for i, n := range normals {
		if n.Len() == 0 {
			normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize()
	}
	m.Normals = normals
}

// Standardize centers the mesh bounding box on the origin and scales it uniformly so the
// largest dimension spans [-scale, scale].
//
// Parameters:
//   - scale: half the target size of the largest dimension
func (m *Mesh) Standardize(scale float32) {
	if len(m.Points) == 0 {
		return
	}
	lo, hi := m.Bounds()
	center := lo.Add(hi).Mul(0.5)
	extent := hi.Sub(lo)
	largest := max(extent[0], extent[1], extent[2])
	s := float32(1)
	if largest > 0 {
		s = 2 * scale / largest
	}
	for i, p := range m.Points {
		m.Points[i] = p.Sub(center).Mul(s)
	}
}

// Bounds returns the axis-aligned bounding box of the points.
//
// Returns:
//   - mgl32.Vec3: minimum corner
//   - mgl32.Vec3: maximum corner
func (m *Mesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(m.Points) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo, hi := m.Points[0], m.Points[0]
	for _, p := range m.Points[1:] {
		for k := range 3 {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}

// Interleave packs the vertex attributes into the GPU vertex layout. Missing normals or
// UVs are written as zero, missing colors as white.
//
// Returns:
//   - []common.MeshVertex: one vertex per point
func (m *Mesh) Interleave() []common.MeshVertex {
	out := make([]common.MeshVertex, len(m.Points))
	for i, p := range m.Points {
		out[i].Position = [3]float32(p)
		if i < len(m.Normals) {
			out[i].Normal = [3]float32(m.Normals[i])
		}
		if i < len(m.UVs) {
			out[i].UV = [2]float32(m.UVs[i])
		}
		out[i].Color = [3]float32{1, 1, 1}
		if i < len(m.Colors) {
			out[i].Color = [3]float32(m.Colors[i])
		}
	}
	return out
}

// Indices flattens the triangle list for an index buffer.
//
// Returns:
//   - []uint32: three indices per triangle
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, 3*len(m.Triangles))
	for _, tri := range m.Triangles {
		out = append(out, tri[0], tri[1], tri[2])
	}
	return out
}
