package camera

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrBehindCamera is returned by Mover.Down when the point lies at or behind the eye or the near plane,
// where constant-depth unprojection is undefined.
var ErrBehindCamera = errors.New("point is behind the camera")

// ErrSingularView is returned when the combined view and projection cannot be inverted.
var ErrSingularView = errors.New("view projection is singular")

type moverImpl struct {
	point    *mgl32.Vec3
	start    mgl32.Vec3
	downPos  mgl32.Vec2
	depth    float32 // NDC depth captured at Down
	dragging bool
}

// Mover drags a single world-space point in the plane parallel to the screen through the point.
// The point is not owned by the Mover.
type Mover interface {
	// Down captures the point and its NDC depth under the given matrices and begins a drag.
	//
	// Parameters:
	//   - point: the point to move
	//   - x, y: pointer position in window pixels
	//   - view, projection: the camera transforms in effect
	//   - viewport: the viewport the pointer lies in
	//
	// Returns:
	//   - error: ErrBehindCamera when the point cannot be unprojected at constant depth
	Down(point *mgl32.Vec3, x, y float32, view, projection mgl32.Mat4, viewport common.Viewport) error

	// Drag moves the point by the world-space delta between the Down pointer and (x, y)
	// at the captured depth. Does nothing unless dragging.
	//
	// Parameters:
	//   - x, y: pointer position in window pixels
	//   - view, projection: the camera transforms in effect
	//   - viewport: the viewport the pointer lies in
	Drag(x, y float32, view, projection mgl32.Mat4, viewport common.Viewport)

	// Up ends the drag and releases the point.
	Up()

	// Dragging reports whether a point is held.
	//
	// Returns:
	//   - bool: true between a successful Down and Up
	Dragging() bool

	// Point returns the held point or nil.
	//
	// Returns:
	//   - *mgl32.Vec3: the point being moved
	Point() *mgl32.Vec3
}

var _ Mover = &moverImpl{}

// NewMover creates an idle Mover.
//
// Returns:
//   - Mover: the new mover
func NewMover() Mover {
	return &moverImpl{}
}

func (m *moverImpl) Down(point *mgl32.Vec3, x, y float32, view, projection mgl32.Mat4, viewport common.Viewport) error {
	m.Up()
	if point == nil {
		return nil
	}
	fullview := projection.Mul4(view)
	clip := fullview.Mul4x1(point.Vec4(1))
	if clip[3] <= 0 {
		return ErrBehindCamera
	}
	frustum := common.ExtractFrustumFromMatrix(fullview)
	if !frustum.InFrontOfNear(*point) {
		return ErrBehindCamera
	}
	m.point = point
	m.start = *point
	m.downPos = mgl32.Vec2{x, y}
	m.depth = clip[2] / clip[3]
	m.dragging = true
	return nil
}

func (m *moverImpl) Drag(x, y float32, view, projection mgl32.Mat4, viewport common.Viewport) {
	if !m.dragging {
		return
	}
	inv, err := inverseFullview(projection.Mul4(view))
	if err != nil {
		return
	}
	from := unproject(inv, viewport, m.downPos[0], m.downPos[1], m.depth)
	to := unproject(inv, viewport, x, y, m.depth)
	*m.point = m.start.Add(to.Sub(from))
}

func (m *moverImpl) Up() {
	m.point = nil
	m.dragging = false
}

func (m *moverImpl) Dragging() bool {
	return m.dragging
}

func (m *moverImpl) Point() *mgl32.Vec3 {
	return m.point
}

func inverseFullview(fullview mgl32.Mat4) (mgl32.Mat4, error) {
	if fullview.Det() == 0 {
		return mgl32.Mat4{}, ErrSingularView
	}
	return fullview.Inv(), nil
}

// unproject maps a window pixel at the given NDC depth back to world space.
func unproject(inv mgl32.Mat4, viewport common.Viewport, x, y, depth float32) mgl32.Vec3 {
	ndc := common.ScreenToNDC(viewport, x, y)
	p := inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], depth, 1})
	return p.Vec3().Mul(1 / p[3])
}
