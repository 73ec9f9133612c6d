package interaction

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultHitRadius is the pixel distance within which a point counts as under the cursor.
const DefaultHitRadius = 12

// MouseOver reports whether world projects within radius pixels of the cursor.
//
// Parameters:
//   - x, y: cursor position in window pixels
//   - world: the world-space point
//   - fullview: projection * view
//   - viewport: the viewport
//   - radius: hit radius in pixels
//
// Returns:
//   - bool: true when the point is under the cursor
func MouseOver(x, y float32, world mgl32.Vec3, fullview mgl32.Mat4, viewport common.Viewport, radius float32) bool {
	return common.WithinPixels(viewport, fullview, world, x, y, radius)
}

// ScreenPoint projects world to window pixels. ok is false for points behind the eye.
//
// Parameters:
//   - world: the world-space point
//   - fullview: projection * view
//   - viewport: the viewport
//
// Returns:
//   - mgl32.Vec2: window pixel position
//   - bool: false when the point cannot be projected
func ScreenPoint(world mgl32.Vec3, fullview mgl32.Mat4, viewport common.Viewport) (mgl32.Vec2, bool) {
	s, _, ok := common.ProjectToScreen(viewport, fullview, world)
	return s, ok
}
