// Package curve evaluates cubic Bézier curves and chains of them, including the moving
// reference frames used to animate objects along a path.
package curve

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrControlPointCount is returned when a curve or path is built from the wrong number of control points.
var ErrControlPointCount = errors.New("wrong number of control points")

const degenerateEpsilon = 1e-6

var (
	worldUp     = mgl32.Vec3{0, 1, 0}
	alternateUp = mgl32.Vec3{0, 0, 1}
)

// Bezier is a cubic Bézier curve. The zero value is a degenerate curve at the origin.
type Bezier struct {
	Points [4]mgl32.Vec3
}

// NewBezier builds a curve from exactly four control points.
//
// Parameters:
//   - points: the control points P0..P3
//
// Returns:
//   - Bezier: the curve
//   - error: ErrControlPointCount when len(points) != 4
func NewBezier(points []mgl32.Vec3) (Bezier, error) {
	if len(points) != 4 {
		return Bezier{}, fmt.Errorf("cubic bezier: got %d points: %w", len(points), ErrControlPointCount)
	}
	var b Bezier
	copy(b.Points[:], points)
	return b, nil
}

// Position evaluates the curve at t with the Bernstein basis. t = 0 and t = 1 return P0 and P3 exactly.
//
// Parameters:
//   - t: curve parameter in [0, 1]
//
// Returns:
//   - mgl32.Vec3: the point on the curve
func (b Bezier) Position(t float32) mgl32.Vec3 {
	switch {
	case t <= 0:
		return b.Points[0]
	case t >= 1:
		return b.Points[3]
	}
	s := 1 - t
	b0 := s * s * s
	b1 := 3 * s * s * t
	b2 := 3 * s * t * t
	b3 := t * t * t
	return b.Points[0].Mul(b0).
		Add(b.Points[1].Mul(b1)).
		Add(b.Points[2].Mul(b2)).
		Add(b.Points[3].Mul(b3))
}

// Velocity evaluates the first derivative of the curve at t.
//
// Parameters:
//   - t: curve parameter in [0, 1]
//
// Returns:
//   - mgl32.Vec3: dP/dt
func (b Bezier) Velocity(t float32) mgl32.Vec3 {
	t2 := t * t
	return b.Points[0].Mul(-3*t2 + 6*t - 3).
		Add(b.Points[1].Mul(9*t2 - 12*t + 3)).
		Add(b.Points[2].Mul(6*t - 9*t2)).
		Add(b.Points[3].Mul(3 * t2))
}

// Tangent returns the unit direction of travel at t. A vanishing velocity falls back
// to the chord P3 - P0, and a degenerate chord to -Z.
//
// Parameters:
//   - t: curve parameter in [0, 1]
//
// Returns:
//   - mgl32.Vec3: unit tangent
func (b Bezier) Tangent(t float32) mgl32.Vec3 {
	if v := b.Velocity(t); v.Len() > degenerateEpsilon {
		return v.Normalize()
	}
	if chord := b.Points[3].Sub(b.Points[0]); chord.Len() > degenerateEpsilon {
		return chord.Normalize()
	}
	return mgl32.Vec3{0, 0, -1}
}

// Frame returns the moving frame at t as a matrix whose columns are the normal, the
// binormal, the negated tangent and the position. An object modeled looking down -Z
// and transformed by the frame flies along the curve.
// The normal is tangent x up; when the tangent is parallel to +Y the up vector switches to +Z.
//
// Parameters:
//   - t: curve parameter in [0, 1]
//
// Returns:
//   - mgl32.Mat4: the frame
func (b Bezier) Frame(t float32) mgl32.Mat4 {
	return frame(b.Tangent(t), b.Position(t))
}

// Polyline samples the curve into res straight segments.
//
// Parameters:
//   - res: number of segments (at least 1)
//
// Returns:
//   - []mgl32.Vec3: res+1 points from P0 to P3
func (b Bezier) Polyline(res int) []mgl32.Vec3 {
	res = max(res, 1)
	pts := make([]mgl32.Vec3, res+1)
	for i := range pts {
		pts[i] = b.Position(float32(i) / float32(res))
	}
	return pts
}

// Draw emits the curve, its dashed control polygon and its control points into batch.
//
// Parameters:
//   - batch: the overlay batch
//   - fullview: projection * view
//   - style: colors, widths and resolution
func (b Bezier) Draw(batch overlay.Batch, fullview mgl32.Mat4, style Style) {
	if style.ShowPolygon {
		for i := range 3 {
			batch.LineDashWorld(b.Points[i], b.Points[i+1], fullview, style.PolygonWidth,
				style.PolygonColor, common.Color{}, style.DashLength, style.DashPercent)
		}
	}
	if style.ShowPoints {
		for _, p := range b.Points {
			batch.DiskWorld(p, fullview, style.PointDiameter, style.PointColor)
		}
	}
	pts := b.Polyline(style.Segments)
	for i := 1; i < len(pts); i++ {
		batch.LineWorld(pts[i-1], pts[i], fullview, style.CurveWidth, style.CurveColor)
	}
}

// PingPong maps elapsed time onto a parameter that eases back and forth across [0, 1]
// once per duration.
//
// Parameters:
//   - elapsed: seconds since the animation started
//   - duration: seconds per full oscillation (> 0)
//
// Returns:
//   - float32: (sin(2*pi*elapsed/duration) + 1) / 2, or 0 for a non-positive duration
func PingPong(elapsed, duration float32) float32 {
	if duration <= 0 {
		return 0
	}
	return float32((math.Sin(2*math.Pi*float64(elapsed)/float64(duration)) + 1) / 2)
}

func frame(tangent, position mgl32.Vec3) mgl32.Mat4 {
	n := tangent.Cross(worldUp)
	if n.Len() < degenerateEpsilon {
		n = tangent.Cross(alternateUp)
	}
	n = n.Normalize()
	bn := n.Cross(tangent).Normalize()
	return mgl32.Mat4FromCols(
		n.Vec4(0),
		bn.Vec4(0),
		tangent.Mul(-1).Vec4(0),
		position.Vec4(1),
	)
}
