package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoverDragsInScreenPlane(t *testing.T) {
	c := newTestCamera(WithClipPlanes(0.1, 100))
	m := NewMover()
	point := mgl32.Vec3{}

	require.NoError(t, m.Down(&point, 400, 400, c.View(), c.Projection(), c.Viewport()))
	assert.True(t, m.Dragging())
	assert.Same(t, &point, m.Point())

	m.Drag(500, 400, c.View(), c.Projection(), c.Viewport())

	perPixel := 2 * 5 * math.Tan(float64(mgl32.DegToRad(15))) / 800
	assert.InDelta(t, 100*perPixel, point[0], 1e-3)
	assert.InDelta(t, 0, point[1], 1e-3)
	assert.InDelta(t, 0, point[2], 1e-3)

	// Re-derived from the Down state, so returning to the start pixel restores the point.
	m.Drag(400, 400, c.View(), c.Projection(), c.Viewport())
	assert.InDelta(t, 0, point[0], 1e-4)

	m.Up()
	assert.False(t, m.Dragging())
	assert.Nil(t, m.Point())
}

func TestMoverKeepsScreenDepth(t *testing.T) {
	c := newTestCamera(WithClipPlanes(0.1, 100), WithRotation(mgl32.Vec3{15, -15, 0}))
	m := NewMover()
	point := mgl32.Vec3{0.3, 0.2, -0.4}

	_, depth, ok := common.ProjectToScreen(c.Viewport(), c.FullView(), point)
	require.True(t, ok)

	require.NoError(t, m.Down(&point, 410, 390, c.View(), c.Projection(), c.Viewport()))
	m.Drag(470, 300, c.View(), c.Projection(), c.Viewport())

	_, moved, ok := common.ProjectToScreen(c.Viewport(), c.FullView(), point)
	require.True(t, ok)
	assert.InDelta(t, depth, moved, 1e-4)
}

func TestMoverRejectsPointsBehindCamera(t *testing.T) {
	c := newTestCamera()
	m := NewMover()

	tests := []struct {
		name  string
		point mgl32.Vec3
	}{
		{"behind the eye", mgl32.Vec3{0, 0, 10}},
		{"at the eye", mgl32.Vec3{0, 0, 5}},
		{"inside the near plane", mgl32.Vec3{0, 0, 4.999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.point
			err := m.Down(&p, 400, 400, c.View(), c.Projection(), c.Viewport())
			require.ErrorIs(t, err, ErrBehindCamera)
			assert.False(t, m.Dragging())

			m.Drag(600, 600, c.View(), c.Projection(), c.Viewport())
			assert.Equal(t, tt.point, p)
		})
	}
}
