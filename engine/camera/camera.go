package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

const (
	minFov = 5.0
	maxFov = 150.0
)

// Gesture is the pointer interaction currently driving the camera.
type Gesture int

const (
	GestureIdle Gesture = iota
	GestureRotating
	GesturePanning
)

func (g Gesture) String() string {
	switch g {
	case GestureRotating:
		return "rotating"
	case GesturePanning:
		return "panning"
	default:
		return "idle"
	}
}

type cameraImpl struct {
	logger zerolog.Logger

	viewport common.Viewport
	fov      float32 // vertical, degrees
	near     float32
	far      float32

	arcball      Arcball
	arcballScale float32
	// arcballStale defers re-centering the sphere until a rotation in progress ends.
	arcballStale bool

	target      mgl32.Vec3
	scale       float32
	pan         mgl32.Vec3
	panStart    mgl32.Vec3
	downPos     mgl32.Vec2
	distance    float32
	minDistance float32
	maxDistance float32
	zoomFactor  float32

	gesture Gesture

	view       mgl32.Mat4
	projection mgl32.Mat4
	fullview   mgl32.Mat4
}

// Camera owns the view and projection transforms of an orbiting viewer and the pointer
// state machine that drives them. Rotation is always about the target point.
//
// Camera holds no locks. It is owned by the thread running the event loop.
type Camera interface {
	// Down begins a gesture. Shift starts a pan; otherwise the arcball starts a rotation,
	// locked to the dominant drag axis when ctrl is held.
	//
	// Parameters:
	//   - x, y: pointer position in window pixels
	//   - shiftHeld: begin a pan instead of a rotation
	//   - ctrlHeld: constrain the rotation to one screen axis
	Down(x, y float32, shiftHeld, ctrlHeld bool)

	// Drag updates the active gesture from the current pointer position and recomputes the view.
	// Does nothing when idle.
	//
	// Parameters:
	//   - x, y: pointer position in window pixels
	Drag(x, y float32)

	// Up ends the active gesture.
	Up()

	// Wheel dollies toward the target by zoomFactor^spin, or with Shift narrows the
	// field of view by spin degrees. Accepted in any gesture state.
	//
	// Parameters:
	//   - spin: scroll steps; positive zooms in
	//   - shiftHeld: adjust the field of view instead of the distance
	Wheel(spin float32, shiftHeld bool)

	// Resize updates the viewport size, re-centers the arcball and recomputes the projection.
	// Dimensions below 1 are clamped to 1. During a rotation the arcball keeps its sphere
	// until Up so the drag does not jump.
	//
	// Parameters:
	//   - width, height: the new viewport size in pixels
	Resize(width, height int)

	// Draw emits the arcball overlay while rotating. The grid is also drawn for constrained drags.
	//
	// Parameters:
	//   - batch: the overlay batch to draw into
	//   - drawGrid: draw the rotated sphere's great circles
	Draw(batch overlay.Batch, drawGrid bool)

	// SetRotation replaces the current orientation.
	//
	// Parameters:
	//   - q: the new orientation
	SetRotation(q mgl32.Quat)

	// View returns the world to eye transform.
	//
	// Returns:
	//   - mgl32.Mat4: T(pan) · T(0,0,-distance) · R · S · T(-target)
	View() mgl32.Mat4

	// Projection returns the perspective transform for the current viewport and fov.
	//
	// Returns:
	//   - mgl32.Mat4: the projection with WebGPU [0, 1] depth
	Projection() mgl32.Mat4

	// FullView returns Projection() * View().
	//
	// Returns:
	//   - mgl32.Mat4: the combined transform
	FullView() mgl32.Mat4

	// Eye returns the world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye point
	Eye() mgl32.Vec3

	// Viewport returns the current viewport.
	//
	// Returns:
	//   - common.Viewport: the viewport
	Viewport() common.Viewport

	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: the field of view
	Fov() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Distance returns the eye to target distance.
	//
	// Returns:
	//   - float32: the distance
	Distance() float32

	// Pan returns the eye-space pan offset.
	//
	// Returns:
	//   - mgl32.Vec3: the offset
	Pan() mgl32.Vec3

	// Target returns the point the camera orbits.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// Rotation returns the current orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation
	Rotation() mgl32.Quat

	// Gesture returns the active gesture.
	//
	// Returns:
	//   - Gesture: the gesture state
	Gesture() Gesture

	// Arcball returns the camera's arcball.
	//
	// Returns:
	//   - Arcball: the arcball
	Arcball() Arcball
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera looking down -Z at the origin from a distance of 5,
// with an 800x800 viewport and a 30 degree field of view unless overridden.
// All derived matrices are valid on return.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		logger:       zerolog.Nop(),
		viewport:     common.Viewport{Width: 800, Height: 800},
		fov:          30,
		near:         0.01,
		far:          500,
		arcballScale: 0.8,
		scale:        1,
		distance:     5,
		minDistance:  0.05,
		maxDistance:  250,
		zoomFactor:   1.1,
	}
	c.arcball = NewArcball(mgl32.Vec2{}, 1)
	for _, option := range options {
		option(c)
	}
	c.viewport.Width = max(c.viewport.Width, 1)
	c.viewport.Height = max(c.viewport.Height, 1)
	c.distance = common.Clamp(c.distance, c.minDistance, c.maxDistance)
	c.fov = common.Clamp(c.fov, minFov, maxFov)
	c.resetArcball()
	c.updateProjection()
	return c
}

func (c *cameraImpl) Down(x, y float32, shiftHeld, ctrlHeld bool) {
	if c.gesture != GestureIdle {
		c.Up()
	}
	c.downPos = mgl32.Vec2{x, y}
	if shiftHeld {
		c.panStart = c.pan
		c.gesture = GesturePanning
	} else {
		c.arcball.Down(x, y, ctrlHeld)
		c.gesture = GestureRotating
	}
	c.logger.Debug().Stringer("gesture", c.gesture).Float32("x", x).Float32("y", y).Msg("gesture started")
}

func (c *cameraImpl) Drag(x, y float32) {
	switch c.gesture {
	case GesturePanning:
		perPixel := 2 * c.distance * float32(math.Tan(float64(mgl32.DegToRad(c.fov))/2)) / float32(c.viewport.Height)
		dx, dy := x-c.downPos[0], y-c.downPos[1]
		c.pan = c.panStart.Add(mgl32.Vec3{dx, -dy, 0}.Mul(perPixel))
	case GestureRotating:
		c.arcball.Drag(x, y)
	default:
		return
	}
	c.updateView()
}

func (c *cameraImpl) Up() {
	if c.gesture == GestureRotating {
		c.arcball.Up()
		if c.arcballStale {
			c.resetArcball()
		}
	}
	if c.gesture != GestureIdle {
		c.logger.Debug().Stringer("gesture", c.gesture).Msg("gesture ended")
	}
	c.gesture = GestureIdle
}

func (c *cameraImpl) Wheel(spin float32, shiftHeld bool) {
	if shiftHeld {
		c.fov = common.Clamp(c.fov-spin, minFov, maxFov)
		c.updateProjection()
		return
	}
	factor := float32(math.Pow(float64(c.zoomFactor), float64(spin)))
	c.distance = common.Clamp(c.distance/factor, c.minDistance, c.maxDistance)
	c.updateView()
}

func (c *cameraImpl) Resize(width, height int) {
	c.viewport.Width = max(width, 1)
	c.viewport.Height = max(height, 1)
	if c.gesture == GestureRotating {
		c.arcballStale = true
	} else {
		c.resetArcball()
	}
	c.updateProjection()
}

func (c *cameraImpl) Draw(batch overlay.Batch, drawGrid bool) {
	if c.gesture != GestureRotating {
		return
	}
	c.arcball.Draw(batch, drawGrid || c.arcball.Constrained())
}

func (c *cameraImpl) SetRotation(q mgl32.Quat) {
	c.arcball.Reset(q)
	c.updateView()
}

func (c *cameraImpl) View() mgl32.Mat4 {
	return c.view
}

func (c *cameraImpl) Projection() mgl32.Mat4 {
	return c.projection
}

func (c *cameraImpl) FullView() mgl32.Mat4 {
	return c.fullview
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	inv := c.view.Inv()
	return inv.Col(3).Vec3()
}

func (c *cameraImpl) Viewport() common.Viewport {
	return c.viewport
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) Distance() float32 {
	return c.distance
}

func (c *cameraImpl) Pan() mgl32.Vec3 {
	return c.pan
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Rotation() mgl32.Quat {
	return c.arcball.Rotation()
}

func (c *cameraImpl) Gesture() Gesture {
	return c.gesture
}

func (c *cameraImpl) Arcball() Arcball {
	return c.arcball
}

// resetArcball centers the arcball sphere on the viewport.
func (c *cameraImpl) resetArcball() {
	radius := c.arcballScale * float32(min(c.viewport.Width, c.viewport.Height)) / 2
	c.arcball.Set(c.viewport.Center(), radius)
	c.arcballStale = false
}

// updateProjection recomputes the projection and everything derived from it.
func (c *cameraImpl) updateProjection() {
	var p [16]float32
	common.Perspective(p[:], mgl32.DegToRad(c.fov), c.viewport.Aspect(), c.near, c.far)
	c.projection = mgl32.Mat4(p)
	c.updateView()
}

// updateView recomputes the view and the combined fullview matrix.
func (c *cameraImpl) updateView() {
	rot := c.arcball.Rotation().Mat4()
	c.view = mgl32.Translate3D(c.pan[0], c.pan[1], c.pan[2]-c.distance).
		Mul4(rot).
		Mul4(mgl32.Scale3D(c.scale, c.scale, c.scale)).
		Mul4(mgl32.Translate3D(-c.target[0], -c.target[1], -c.target[2]))
	c.fullview = c.projection.Mul4(c.view)
}
