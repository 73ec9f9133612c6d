package curve

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loopPath(t *testing.T) *Path {
	t.Helper()
	p, err := NewPath([]mgl32.Vec3{
		{2.0 / 3, 0, 2.0 / 3}, {1, 0, 1.0 / 3}, {1, 0.1, -1.0 / 3},
		{2.0 / 3, 0.1, -2.0 / 3}, {1.0 / 3, 0.1, -1}, {-1.0 / 3, 0.4, -1},
		{-2.0 / 3, 0.4, -2.0 / 3}, {-1, 0.4, -1.0 / 3}, {-1, 0, 1.0 / 3},
		{-2.0 / 3, 0, 2.0 / 3}, {-1.0 / 3, 0, 1}, {1.0 / 3, 0, 1},
		{2.0 / 3, 0, 2.0 / 3},
	})
	require.NoError(t, err)
	return p
}

func TestNewPathValidatesCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 5, 6, 8} {
		_, err := NewPath(make([]mgl32.Vec3, n))
		assert.ErrorIs(t, err, ErrControlPointCount, "n=%d", n)
	}
	p, err := NewPath(make([]mgl32.Vec3, 7))
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
}

func TestPathSegmentsShareEndpoints(t *testing.T) {
	p := loopPath(t)
	require.Equal(t, 4, p.Len())
	for i := 1; i < p.Len(); i++ {
		assert.Equal(t, p.Segment(i-1).Points[3], p.Segment(i).Points[0])
	}
}

func TestPathSample(t *testing.T) {
	p := loopPath(t)

	tests := []struct {
		elapsed float32
		segment int
		param   float32
	}{
		{0, 0, 0},
		{0.375, 0, 0.5},
		{0.75, 1, 0},
		{2.625, 3, 0.5},
		{3, 0, 0},
		{3.375, 0, 0.5},
		{-0.375, 3, 0.5},
	}
	for _, tt := range tests {
		i, u := p.Sample(tt.elapsed, 3)
		assert.Equal(t, tt.segment, i, "elapsed %v", tt.elapsed)
		assert.InDelta(t, tt.param, u, 1e-5, "elapsed %v", tt.elapsed)
	}

	i, u := p.Sample(1, 0)
	assert.Zero(t, i)
	assert.Zero(t, u)
}

func TestPathPointsAreShared(t *testing.T) {
	p := loopPath(t)
	p.Points()[3] = mgl32.Vec3{5, 5, 5}

	assert.Equal(t, mgl32.Vec3{5, 5, 5}, p.Segment(0).Points[3])
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, p.Segment(1).Points[0])
}

func TestPathFrameFollowsPosition(t *testing.T) {
	p := loopPath(t)
	f := p.Frame(1.1, 3)
	want := p.Position(1.1, 3)
	got := f.Col(3).Vec3()
	for k := range 3 {
		assert.InDelta(t, want[k], got[k], 1e-6)
	}
}
