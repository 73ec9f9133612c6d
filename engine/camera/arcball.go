package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/go-gl/mathgl/mgl32"
)

// arcballGridSamples is the number of samples per great circle drawn by Draw.
const arcballGridSamples = 48

var (
	arcballRingColor = common.Color{0.2, 0.4, 1, 0.45}
	arcballGridColor = common.Color{0.2, 0.4, 1, 0.3}
)

// Arcball maps a 2D pointer drag to a 3D rotation by projecting pointer positions
// onto a virtual hemisphere facing the viewer.
type Arcball interface {
	// Set establishes the screen-space center and radius of the virtual sphere.
	// A radius below 1 pixel is clamped to 1.
	//
	// Parameters:
	//   - center: sphere center in window pixels
	//   - radius: sphere radius in pixels
	Set(center mgl32.Vec2, radius float32)

	// Reset replaces the current rotation and leaves any drag in progress.
	//
	// Parameters:
	//   - rotation: the new rotation (normalized before use)
	Reset(rotation mgl32.Quat)

	// Down records the drag-start pointer position and the current rotation, and enters the dragging state.
	//
	// Parameters:
	//   - x, y: pointer position in window pixels
	//   - constrain: lock the drag to its dominant screen axis
	Down(x, y float32, constrain bool)

	// Drag recomputes the rotation from the drag-start state and the current pointer position.
	// Does nothing unless dragging.
	//
	// Parameters:
	//   - x, y: pointer position in window pixels
	//
	// Returns:
	//   - mgl32.Quat: the resulting rotation
	Drag(x, y float32) mgl32.Quat

	// Up leaves the dragging state. The rotation is retained.
	Up()

	// Draw emits the translucent ring, and optionally the rotated sphere's great circles,
	// into batch. Emits nothing unless dragging.
	//
	// Parameters:
	//   - batch: the overlay batch to draw into
	//   - drawGrid: also draw the rotated sphere's great circles
	Draw(batch overlay.Batch, drawGrid bool)

	// Rotation returns the current rotation.
	//
	// Returns:
	//   - mgl32.Quat: unit quaternion
	Rotation() mgl32.Quat

	// Dragging reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true between Down and Up
	Dragging() bool

	// Constrained reports whether the current drag is locked to one screen axis.
	//
	// Returns:
	//   - bool: the constrain flag given to Down
	Constrained() bool

	// Center returns the sphere center in window pixels.
	//
	// Returns:
	//   - mgl32.Vec2: the center
	Center() mgl32.Vec2

	// Radius returns the sphere radius in pixels.
	//
	// Returns:
	//   - float32: the radius
	Radius() float32
}

type arcballImpl struct {
	center mgl32.Vec2
	radius float32

	rotation      mgl32.Quat
	startRotation mgl32.Quat
	start         mgl32.Vec2

	dragging  bool
	constrain bool
}

var _ Arcball = &arcballImpl{}

// NewArcball creates an Arcball with an identity rotation.
//
// Parameters:
//   - center: sphere center in window pixels
//   - radius: sphere radius in pixels
//
// Returns:
//   - Arcball: the new arcball
func NewArcball(center mgl32.Vec2, radius float32) Arcball {
	a := &arcballImpl{
		rotation:      mgl32.QuatIdent(),
		startRotation: mgl32.QuatIdent(),
	}
	a.Set(center, radius)
	return a
}

func (a *arcballImpl) Set(center mgl32.Vec2, radius float32) {
	a.center = center
	a.radius = max(radius, 1)
}

func (a *arcballImpl) Reset(rotation mgl32.Quat) {
	a.rotation = rotation.Normalize()
	a.startRotation = a.rotation
}

func (a *arcballImpl) Down(x, y float32, constrain bool) {
	a.start = mgl32.Vec2{x, y}
	a.startRotation = a.rotation
	a.constrain = constrain
	a.dragging = true
}

func (a *arcballImpl) Drag(x, y float32) mgl32.Quat {
	if !a.dragging {
		return a.rotation
	}

	if a.constrain {
		dx, dy := x-a.start[0], y-a.start[1]
		if abs32(dx) >= abs32(dy) {
			y = a.start[1]
		} else {
			x = a.start[0]
		}
	}

	if x == a.start[0] && y == a.start[1] {
		a.rotation = a.startRotation
		return a.rotation
	}

	a.rotation = a.increment(a.ballPoint(a.start[0], a.start[1]), a.ballPoint(x, y)).Mul(a.startRotation).Normalize()
	return a.rotation
}

func (a *arcballImpl) Up() {
	a.dragging = false
	a.constrain = false
}

func (a *arcballImpl) Draw(batch overlay.Batch, drawGrid bool) {
	if !a.dragging {
		return
	}
	batch.Ring(a.center, a.radius, 2, arcballRingColor)
	if !drawGrid {
		return
	}

	// Great circles in the rotated sphere's XY, YZ and ZX planes, front hemisphere only.
	planes := [3][2]mgl32.Vec3{
		{{1, 0, 0}, {0, 1, 0}},
		{{0, 1, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}},
	}
	for _, pl := range planes {
		u := a.rotation.Rotate(pl[0])
		v := a.rotation.Rotate(pl[1])
		var prev mgl32.Vec3
		for i := 0; i <= arcballGridSamples; i++ {
			t := 2 * math.Pi * float64(i) / arcballGridSamples
			p := u.Mul(float32(math.Cos(t))).Add(v.Mul(float32(math.Sin(t))))
			if i > 0 && p[2] >= 0 && prev[2] >= 0 {
				batch.Line(a.toScreen(prev), a.toScreen(p), 1, arcballGridColor)
			}
			prev = p
		}
	}
}

func (a *arcballImpl) Rotation() mgl32.Quat {
	return a.rotation
}

func (a *arcballImpl) Dragging() bool {
	return a.dragging
}

func (a *arcballImpl) Constrained() bool {
	return a.constrain
}

func (a *arcballImpl) Center() mgl32.Vec2 {
	return a.center
}

func (a *arcballImpl) Radius() float32 {
	return a.radius
}

// ballPoint projects a window pixel onto the unit hemisphere facing the viewer.
// Pixels outside the sphere's radius map to the nearest point on its equator.
func (a *arcballImpl) ballPoint(x, y float32) mgl32.Vec3 {
	px := (x - a.center[0]) / a.radius
	py := (a.center[1] - y) / a.radius
	d2 := px*px + py*py
	if d2 > 1 {
		inv := 1 / float32(math.Sqrt(float64(d2)))
		return mgl32.Vec3{px * inv, py * inv, 0}
	}
	return mgl32.Vec3{px, py, float32(math.Sqrt(float64(1 - d2)))}
}

// increment returns the rotation carrying v0 onto v1 about their common normal.
// Coincident points yield the identity; antipodal equator points rotate half a turn
// about the in-screen axis perpendicular to v0.
func (a *arcballImpl) increment(v0, v1 mgl32.Vec3) mgl32.Quat {
	dot := common.Clamp(v0.Dot(v1), -1, 1)
	axis := v0.Cross(v1)
	if axis.Len() < 1e-7 {
		if dot > 0 {
			return mgl32.QuatIdent()
		}
		axis = v0.Cross(mgl32.Vec3{0, 0, 1})
		if axis.Len() < 1e-7 {
			return mgl32.QuatIdent()
		}
	}
	return mgl32.QuatRotate(float32(math.Acos(float64(dot))), axis.Normalize())
}

// toScreen maps a unit-sphere point back to window pixels by orthographic projection.
func (a *arcballImpl) toScreen(p mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{a.center[0] + p[0]*a.radius, a.center[1] - p[1]*a.radius}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
