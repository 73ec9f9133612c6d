package curve

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/go-gl/mathgl/mgl32"
)

// Path is a chain of cubic segments where segment i uses points 3i..3i+3, so
// consecutive segments share an endpoint. A closed loop repeats the first point last.
type Path struct {
	points []mgl32.Vec3
}

// NewPath builds a path from 3n+1 control points, n >= 1. The points are copied.
//
// Parameters:
//   - points: the control points
//
// Returns:
//   - *Path: the path
//   - error: ErrControlPointCount when the count is not 3n+1
func NewPath(points []mgl32.Vec3) (*Path, error) {
	if len(points) < 4 || (len(points)-1)%3 != 0 {
		return nil, fmt.Errorf("bezier path: got %d points, want 3n+1: %w", len(points), ErrControlPointCount)
	}
	return &Path{points: append([]mgl32.Vec3(nil), points...)}, nil
}

// Points returns the control points. Elements may be modified in place, e.g. by a Mover.
func (p *Path) Points() []mgl32.Vec3 {
	return p.points
}

// Len returns the number of cubic segments.
func (p *Path) Len() int {
	return (len(p.points) - 1) / 3
}

// Segment returns segment i.
func (p *Path) Segment(i int) Bezier {
	var b Bezier
	copy(b.Points[:], p.points[3*i:3*i+4])
	return b
}

// Sample maps elapsed time to a segment and local parameter. All segments take
// duration/Len seconds and the path loops.
//
// Parameters:
//   - elapsed: seconds since the animation started
//   - duration: seconds for one traversal of the whole path
//
// Returns:
//   - int: segment index
//   - float32: parameter within the segment in [0, 1)
func (p *Path) Sample(elapsed, duration float32) (int, float32) {
	n := p.Len()
	if duration <= 0 {
		return 0, 0
	}
	alpha := float64(n) * float64(elapsed) / float64(duration)
	beta := math.Mod(alpha, float64(n))
	if beta < 0 {
		beta += float64(n)
	}
	i := min(int(math.Floor(beta)), n-1)
	return i, float32(beta - float64(i))
}

// Position returns the point reached after elapsed seconds.
func (p *Path) Position(elapsed, duration float32) mgl32.Vec3 {
	i, t := p.Sample(elapsed, duration)
	return p.Segment(i).Position(t)
}

// Frame returns the moving frame reached after elapsed seconds. See Bezier.Frame.
func (p *Path) Frame(elapsed, duration float32) mgl32.Mat4 {
	i, t := p.Sample(elapsed, duration)
	return p.Segment(i).Frame(t)
}

// Draw emits every segment into batch.
//
// Parameters:
//   - batch: the overlay batch
//   - fullview: projection * view
//   - style: colors, widths and resolution
func (p *Path) Draw(batch overlay.Batch, fullview mgl32.Mat4, style Style) {
	for i := range p.Len() {
		p.Segment(i).Draw(batch, fullview, style)
	}
}
