package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera(options ...CameraBuilderOption) Camera {
	base := []CameraBuilderOption{
		WithViewport(0, 0, 800, 800),
		WithFov(30),
		WithTranslation(mgl32.Vec3{0, 0, -5}),
	}
	return NewCamera(append(base, options...)...)
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, common.Viewport{Width: 800, Height: 800}, c.Viewport())
	assert.Equal(t, float32(30), c.Fov())
	assert.Equal(t, float32(5), c.Distance())
	assert.Equal(t, GestureIdle, c.Gesture())
	assert.Equal(t, mgl32.Vec2{400, 400}, c.Arcball().Center())

	eye := c.Eye()
	assert.InDelta(t, 0, eye[0], 1e-5)
	assert.InDelta(t, 0, eye[1], 1e-5)
	assert.InDelta(t, 5, eye[2], 1e-5)
}

func TestCameraHorizontalDragRotatesAboutY(t *testing.T) {
	c := newTestCamera()

	c.Down(400, 400, false, false)
	assert.Equal(t, GestureRotating, c.Gesture())
	c.Drag(450, 400)
	c.Up()
	assert.Equal(t, GestureIdle, c.Gesture())

	q := c.Rotation()
	assert.Less(t, q.W, float32(1))
	assert.InDelta(t, 0, q.V[0], 1e-6)
	assert.InDelta(t, 0, q.V[2], 1e-6)
	assert.Greater(t, q.V[1], float32(0))

	// 50 px on a 320 px arcball.
	want := math.Acos(math.Sqrt(1 - (50.0/320)*(50.0/320)))
	assert.InDelta(t, want, 2*math.Acos(float64(q.W)), 1e-4)
}

func TestCameraIdentityDrag(t *testing.T) {
	tests := []struct {
		name        string
		shift, ctrl bool
	}{
		{"rotate", false, false},
		{"constrained rotate", false, true},
		{"pan", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCamera(WithRotation(mgl32.Vec3{15, -15, 0}), WithPan(0.2, -0.1))
			rot, pan, dist := c.Rotation(), c.Pan(), c.Distance()
			view := c.View()

			c.Down(217, 391, tt.shift, tt.ctrl)
			c.Up()

			assert.Equal(t, rot, c.Rotation())
			assert.Equal(t, pan, c.Pan())
			assert.Equal(t, dist, c.Distance())
			assert.Equal(t, view, c.View())
		})
	}
}

func TestCameraRotationRoundTrip(t *testing.T) {
	c := newTestCamera(WithRotation(mgl32.Vec3{15, -15, 0}))
	start := c.Rotation()
	startView := c.View()

	c.Down(300, 300, false, false)
	c.Drag(380, 310)
	c.Drag(520, 460)
	c.Drag(300, 300)
	c.Up()

	assert.Equal(t, start, c.Rotation())
	assert.Equal(t, startView, c.View())
}

func TestCameraResizeIsIdempotent(t *testing.T) {
	c := newTestCamera()

	c.Resize(640, 480)
	first := c.Projection()
	c.Resize(640, 480)

	assert.Equal(t, first, c.Projection())
	assert.Equal(t, mgl32.Vec2{320, 240}, c.Arcball().Center())
	assert.InDelta(t, 0.8*240, c.Arcball().Radius(), 1e-4)
}

func TestCameraResizeDuringRotationKeepsDrag(t *testing.T) {
	c := newTestCamera()

	c.Down(400, 400, false, false)
	c.Drag(450, 400)
	before := c.Rotation()

	c.Resize(1600, 800)
	assert.Equal(t, mgl32.Vec2{400, 400}, c.Arcball().Center())
	c.Drag(450, 400)
	assert.True(t, before.ApproxEqualThreshold(c.Rotation(), 1e-6))
	assert.Equal(t, 1600, c.Viewport().Width)

	c.Up()
	assert.Equal(t, mgl32.Vec2{800, 400}, c.Arcball().Center())
	assert.InDelta(t, 0.8*400, c.Arcball().Radius(), 1e-4)
	assert.True(t, before.ApproxEqualThreshold(c.Rotation(), 1e-6))
}

func TestCameraResizeClampsDegenerateSize(t *testing.T) {
	c := newTestCamera()
	c.Resize(0, -20)

	assert.Equal(t, 1, c.Viewport().Width)
	assert.Equal(t, 1, c.Viewport().Height)
	for _, v := range c.Projection() {
		assert.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0))
	}
}

func TestCameraWheelIsMonotonicAndClamped(t *testing.T) {
	c := newTestCamera(WithDistanceBounds(0.5, 100))

	prev := c.Distance()
	reachedMin := false
	for range 100 {
		c.Wheel(1, false)
		d := c.Distance()
		if reachedMin {
			assert.Equal(t, prev, d)
			continue
		}
		if d == 0.5 {
			reachedMin = true
		} else {
			assert.Less(t, d, prev)
		}
		prev = d
	}
	require.True(t, reachedMin)

	c.Wheel(-1, false)
	assert.InDelta(t, 0.55, c.Distance(), 1e-5)
}

func TestCameraShiftWheelAdjustsFov(t *testing.T) {
	c := newTestCamera()
	before := c.Projection()
	dist := c.Distance()

	c.Wheel(5, true)
	assert.Equal(t, float32(25), c.Fov())
	assert.Equal(t, dist, c.Distance())
	assert.NotEqual(t, before, c.Projection())

	c.Wheel(100, true)
	assert.Equal(t, float32(minFov), c.Fov())
	c.Wheel(-1000, true)
	assert.Equal(t, float32(maxFov), c.Fov())
}

func TestCameraPanTracksPointer(t *testing.T) {
	c := newTestCamera()

	c.Down(400, 400, true, false)
	assert.Equal(t, GesturePanning, c.Gesture())
	c.Drag(500, 350)

	screen, _, ok := common.ProjectToScreen(c.Viewport(), c.FullView(), mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 500, screen[0], 1e-2)
	assert.InDelta(t, 350, screen[1], 1e-2)
	assert.Equal(t, mgl32.QuatIdent(), c.Rotation())

	c.Up()
	pan := c.Pan()
	c.Drag(0, 0)
	assert.Equal(t, pan, c.Pan())
}

func TestCameraWheelDuringGestureKeepsState(t *testing.T) {
	c := newTestCamera()
	c.Down(400, 400, false, false)
	c.Wheel(2, false)

	assert.Equal(t, GestureRotating, c.Gesture())
	assert.Less(t, c.Distance(), float32(5))
}

func TestCameraFullViewIsProjectionTimesView(t *testing.T) {
	c := newTestCamera(WithRotation(mgl32.Vec3{15, -15, 0}), WithTarget(mgl32.Vec3{1, 0, 0}))
	c.Down(100, 100, false, false)
	c.Drag(200, 150)

	want := c.Projection().Mul4(c.View())
	assert.True(t, want.ApproxEqualThreshold(c.FullView(), 1e-5))

	// The target projects to the viewport center regardless of rotation.
	screen, _, ok := common.ProjectToScreen(c.Viewport(), c.FullView(), c.Target())
	require.True(t, ok)
	assert.InDelta(t, 400, screen[0], 1e-2)
	assert.InDelta(t, 400, screen[1], 1e-2)
}

func TestCameraWithModelview(t *testing.T) {
	m := mgl32.Translate3D(0.1, -0.2, -3).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(30))).Mul4(mgl32.Scale3D(2, 2, 2))
	c := newTestCamera(WithModelview(m))

	assert.InDelta(t, 3, c.Distance(), 1e-5)
	assert.True(t, m.ApproxEqualThreshold(c.View(), 1e-4))
}

func TestCameraDrawShowsArcballWhileRotating(t *testing.T) {
	c := newTestCamera()
	batch := overlay.NewBatch(c.Viewport())

	c.Draw(batch, false)
	assert.Empty(t, batch.Vertices())

	c.Down(400, 400, true, false)
	c.Draw(batch, false)
	assert.Empty(t, batch.Vertices())
	c.Up()

	c.Down(400, 400, false, false)
	c.Draw(batch, false)
	assert.NotEmpty(t, batch.Vertices())
}
