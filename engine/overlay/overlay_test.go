package overlay

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = common.RGB(1, 0, 0)

func TestLineTessellatesToNDC(t *testing.T) {
	b := NewBatch(common.Viewport{Width: 800, Height: 600})
	b.Line(mgl32.Vec2{0, 300}, mgl32.Vec2{800, 300}, 2, red)

	verts := b.Vertices()
	require.Len(t, verts, 6)
	for _, v := range verts {
		assert.InDelta(t, 1, abs(v.Position[0]), 1e-6)
		assert.InDelta(t, 0, v.Position[1], 2.0/600+1e-6)
		assert.Equal(t, float32(0), v.Position[2])
		assert.Equal(t, [4]float32(red), v.Color)
	}
}

func TestZeroLengthPrimitivesEmitNothing(t *testing.T) {
	b := NewBatch(common.Viewport{Width: 100, Height: 100})
	b.Line(mgl32.Vec2{5, 5}, mgl32.Vec2{5, 5}, 1, red)
	b.LineDash(mgl32.Vec2{5, 5}, mgl32.Vec2{5, 5}, 1, red, red, 10, 0.5)
	b.Disk(mgl32.Vec2{5, 5}, 0, red)
	b.Ring(mgl32.Vec2{5, 5}, 0, 1, red)
	assert.Empty(t, b.Vertices())
}

func TestLineDash(t *testing.T) {
	b := NewBatch(common.Viewport{Width: 100, Height: 100})

	// 100 px at a 20 px period: five dashes, gaps left empty.
	b.LineDash(mgl32.Vec2{0, 50}, mgl32.Vec2{100, 50}, 1, red, common.Color{}, 20, 0.5)
	assert.Len(t, b.Vertices(), 5*6)

	b.Reset()
	b.LineDash(mgl32.Vec2{0, 50}, mgl32.Vec2{100, 50}, 1, red, red.WithAlpha(0.5), 20, 0.5)
	assert.Len(t, b.Vertices(), 10*6)

	b.Reset()
	b.LineDash(mgl32.Vec2{0, 50}, mgl32.Vec2{100, 50}, 1, red, red, 0, 0.5)
	assert.Len(t, b.Vertices(), 6, "non-positive period draws a solid line")
}

func TestDiskAndRing(t *testing.T) {
	b := NewBatch(common.Viewport{Width: 200, Height: 200})
	b.Disk(mgl32.Vec2{100, 100}, 20, red)
	require.Len(t, b.Vertices(), diskSegments*3)
	for _, v := range b.Vertices() {
		assert.LessOrEqual(t, mgl32.Vec2{v.Position[0], v.Position[1]}.Len(), float32(0.1+1e-5))
	}

	b.Reset()
	b.Ring(mgl32.Vec2{100, 100}, 50, 2, red)
	assert.Len(t, b.Vertices(), diskSegments*3*6)
}

func TestWorldPrimitivesSkipPointsBehindEye(t *testing.T) {
	b := NewBatch(common.Viewport{Width: 800, Height: 800})
	fullview := mgl32.Perspective(mgl32.DegToRad(30), 1, 0.1, 100).Mul4(mgl32.Translate3D(0, 0, -5))

	b.LineWorld(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, fullview, 1, red)
	assert.Len(t, b.Vertices(), 6)

	b.Reset()
	b.LineWorld(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 10}, fullview, 1, red)
	b.DiskWorld(mgl32.Vec3{0, 0, 10}, fullview, 10, red)
	b.StarWorld(mgl32.Vec3{0, 0, 10}, fullview, 9, red, red)
	assert.Empty(t, b.Vertices())

	b.StarWorld(mgl32.Vec3{}, fullview, 9, red, red)
	assert.NotEmpty(t, b.Vertices())
}

func TestSetViewport(t *testing.T) {
	b := NewBatch(common.Viewport{Width: 100, Height: 100})
	b.SetViewport(common.Viewport{X: 10, Width: 300, Height: 200})
	assert.Equal(t, common.Viewport{X: 10, Width: 300, Height: 200}, b.Viewport())
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
