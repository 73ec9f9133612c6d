package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad() *Mesh {
	return &Mesh{
		Points:    []mgl32.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0}},
		Triangles: [][3]uint32{{0, 1, 2}, {0, 2, 3}},
	}
}

func TestMeshValidate(t *testing.T) {
	m := quad()
	require.NoError(t, m.Validate())

	m.Triangles = append(m.Triangles, [3]uint32{0, 1, 4})
	assert.ErrorIs(t, m.Validate(), ErrIndexOutOfRange)

	m = quad()
	m.Normals = make([]mgl32.Vec3, 3)
	assert.Error(t, m.Validate())
}

func TestSmoothNormalsFlatQuad(t *testing.T) {
	m := quad()
	m.Points = append(m.Points, mgl32.Vec3{9, 9, 9})
	m.SmoothNormals()

	require.Len(t, m.Normals, 5)
	for i := range 4 {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, m.Normals[i])
	}
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.Normals[4], "unreferenced vertex")
}

func TestSmoothNormalsAreaWeighted(t *testing.T) {
	// A large triangle facing +Z and a small one facing +X share vertex 0.
	m := &Mesh{
		Points: []mgl32.Vec3{
			{0, 0, 0}, {10, 0, 0}, {0, 10, 0},
			{0, 1, 0}, {0, 0, 1},
		},
		Triangles: [][3]uint32{{0, 1, 2}, {0, 3, 4}},
	}
	m.SmoothNormals()

	n := m.Normals[0]
	assert.InDelta(t, 1, n.Len(), 1e-6)
	assert.Greater(t, n[2], n[0])
	assert.Greater(t, n[0], float32(0))
}

func TestStandardize(t *testing.T) {
	m := &Mesh{Points: []mgl32.Vec3{{1, 1, 1}, {5, 2, 3}, {3, 3, 2}}}
	m.Standardize(1)

	lo, hi := m.Bounds()
	assert.InDelta(t, -1, lo[0], 1e-6)
	assert.InDelta(t, 1, hi[0], 1e-6)
	assert.InDelta(t, 0, lo[1]+hi[1], 1e-6)
	assert.InDelta(t, 0, lo[2]+hi[2], 1e-6)
	assert.InDelta(t, 0.5, hi[1], 1e-6)

	single := &Mesh{Points: []mgl32.Vec3{{4, 5, 6}}}
	single.Standardize(1)
	assert.Equal(t, mgl32.Vec3{}, single.Points[0])
}

func TestInterleaveAndIndices(t *testing.T) {
	m := quad()
	m.SmoothNormals()
	m.UVs = []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	verts := m.Interleave()
	require.Len(t, verts, 4)
	assert.Equal(t, [3]float32{2, 2, 0}, verts[2].Position)
	assert.Equal(t, [3]float32{0, 0, 1}, verts[2].Normal)
	assert.Equal(t, [2]float32{1, 1}, verts[2].UV)
	assert.Equal(t, [3]float32{1, 1, 1}, verts[2].Color)

	m.Colors = []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}}
	require.NoError(t, m.Validate())
	assert.Equal(t, [3]float32{0, 0, 1}, m.Interleave()[2].Color)

	m.Colors = m.Colors[:2]
	assert.Error(t, m.Validate())

	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices())
}

func TestBox(t *testing.T) {
	b := Box(mgl32.Vec3{2, 4, 6})
	require.NoError(t, b.Validate())
	assert.Len(t, b.Points, 24)
	assert.Len(t, b.Triangles, 12)

	lo, hi := b.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, lo)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, hi)

	// Counter-clockwise winding seen from outside.
	for _, tri := range b.Triangles {
		p0, p1, p2 := b.Points[tri[0]], b.Points[tri[1]], b.Points[tri[2]]
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		assert.Greater(t, face.Dot(b.Normals[tri[0]]), float32(0))
	}
}

func TestMergeRebasesIndices(t *testing.T) {
	a, b := quad(), quad()
	m := Merge(a, b)

	require.NoError(t, m.Validate())
	assert.Len(t, m.Points, 8)
	assert.Equal(t, [3]uint32{4, 5, 6}, m.Triangles[2])
}

func TestTransformMovesPointsAndNormals(t *testing.T) {
	b := Box(mgl32.Vec3{1, 1, 1})
	b.Transform(mgl32.Translate3D(3, 0, 0).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90))))

	lo, hi := b.Bounds()
	assert.InDelta(t, 2.5, lo[0], 1e-5)
	assert.InDelta(t, 3.5, hi[0], 1e-5)
	// The +X face now faces +Y.
	assert.InDelta(t, 1, b.Normals[0][1], 1e-5)
}

func TestAirplaneAndPropellerAreValid(t *testing.T) {
	require.NoError(t, Airplane().Validate())
	require.NoError(t, Propeller().Validate())
}
