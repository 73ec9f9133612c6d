// Package overlay collects immediate-mode 2D primitives (lines, dashed lines, disks, rings)
// in window pixels and tessellates them into NDC triangles for the renderer's overlay pipeline.
package overlay

import (
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// diskSegments is the number of triangle-fan slices used for disks and rings.
const diskSegments = 24

// Batch accumulates overlay triangles for a single frame.
// A Batch is reset and refilled every frame; it is not safe for concurrent use.
type Batch interface {
	// Viewport returns the viewport the batch converts pixels against.
	//
	// Returns:
	//   - common.Viewport: the current viewport
	Viewport() common.Viewport

	// SetViewport replaces the viewport used for pixel to NDC conversion.
	//
	// Parameters:
	//   - v: the new viewport
	SetViewport(v common.Viewport)

	// Reset discards all accumulated vertices while keeping capacity.
	Reset()

	// Vertices returns the accumulated triangle-list vertices.
	//
	// Returns:
	//   - []common.OverlayVertex: three vertices per triangle
	Vertices() []common.OverlayVertex

	// Line draws a solid segment between two window-pixel points.
	//
	// Parameters:
	//   - a, b: endpoints in window pixels
	//   - width: stroke width in pixels
	//   - color: stroke color
	Line(a, b mgl32.Vec2, width float32, color common.Color)

	// LineDash draws a dashed segment alternating between two colors.
	//
	// Parameters:
	//   - a, b: endpoints in window pixels
	//   - width: stroke width in pixels
	//   - on, off: colors of the dash and gap; a fully transparent off color leaves gaps empty
	//   - dashLen: length in pixels of one dash + gap period
	//   - percentDash: fraction of the period drawn with the on color
	LineDash(a, b mgl32.Vec2, width float32, on, off common.Color, dashLen, percentDash float32)

	// Disk draws a filled circle.
	//
	// Parameters:
	//   - center: center in window pixels
	//   - diameter: diameter in pixels
	//   - color: fill color
	Disk(center mgl32.Vec2, diameter float32, color common.Color)

	// Ring draws a circle outline.
	//
	// Parameters:
	//   - center: center in window pixels
	//   - radius: radius in pixels
	//   - width: stroke width in pixels
	//   - color: stroke color
	Ring(center mgl32.Vec2, radius, width float32, color common.Color)

	// Star draws a small four-armed marker, used for light positions.
	//
	// Parameters:
	//   - center: center in window pixels
	//   - size: arm length in pixels
	//   - inner, outer: colors of the center disk and arms
	Star(center mgl32.Vec2, size float32, inner, outer common.Color)

	// LineWorld projects both endpoints with fullview and draws a segment.
	// Segments with an endpoint behind the eye are skipped.
	//
	// Parameters:
	//   - a, b: world-space endpoints
	//   - fullview: projection * view
	//   - width: stroke width in pixels
	//   - color: stroke color
	LineWorld(a, b mgl32.Vec3, fullview mgl32.Mat4, width float32, color common.Color)

	// LineDashWorld is the world-space counterpart of LineDash.
	//
	// Parameters:
	//   - a, b: world-space endpoints
	//   - fullview: projection * view
	//   - width: stroke width in pixels
	//   - on, off: dash and gap colors
	//   - dashLen: dash period in pixels
	//   - percentDash: fraction of the period drawn
	LineDashWorld(a, b mgl32.Vec3, fullview mgl32.Mat4, width float32, on, off common.Color, dashLen, percentDash float32)

	// DiskWorld projects center with fullview and draws a disk. Skipped when behind the eye.
	//
	// Parameters:
	//   - center: world-space center
	//   - fullview: projection * view
	//   - diameter: diameter in pixels
	//   - color: fill color
	DiskWorld(center mgl32.Vec3, fullview mgl32.Mat4, diameter float32, color common.Color)

	// StarWorld projects center with fullview and draws a star marker.
	//
	// Parameters:
	//   - center: world-space center
	//   - fullview: projection * view
	//   - size: arm length in pixels
	//   - inner, outer: marker colors
	StarWorld(center mgl32.Vec3, fullview mgl32.Mat4, size float32, inner, outer common.Color)
}

type batchImpl struct {
	viewport common.Viewport
	vertices []common.OverlayVertex
}

var _ Batch = &batchImpl{}

// NewBatch creates an empty Batch for the given viewport.
//
// Parameters:
//   - v: the viewport used to convert pixels to NDC
//
// Returns:
//   - Batch: the new batch
func NewBatch(v common.Viewport) Batch {
	return &batchImpl{
		viewport: v,
		vertices: make([]common.OverlayVertex, 0, 1024),
	}
}

func (b *batchImpl) Viewport() common.Viewport {
	return b.viewport
}

func (b *batchImpl) SetViewport(v common.Viewport) {
	b.viewport = v
}

func (b *batchImpl) Reset() {
	b.vertices = b.vertices[:0]
}

func (b *batchImpl) Vertices() []common.OverlayVertex {
	return b.vertices
}

func (b *batchImpl) Line(a, c mgl32.Vec2, width float32, color common.Color) {
	d := c.Sub(a)
	length := d.Len()
	if length == 0 {
		return
	}
	n := mgl32.Vec2{-d[1], d[0]}.Mul(max(width, 1) / (2 * length))
	p0, p1 := a.Add(n), a.Sub(n)
	p2, p3 := c.Sub(n), c.Add(n)
	b.triangle(p0, p1, p2, color)
	b.triangle(p0, p2, p3, color)
}

func (b *batchImpl) LineDash(a, c mgl32.Vec2, width float32, on, off common.Color, dashLen, percentDash float32) {
	d := c.Sub(a)
	length := d.Len()
	if length == 0 {
		return
	}
	if dashLen <= 0 {
		b.Line(a, c, width, on)
		return
	}
	percentDash = common.Clamp(percentDash, 0, 1)
	dir := d.Mul(1 / length)
	for s := float32(0); s < length; s += dashLen {
		mid := min(s+dashLen*percentDash, length)
		end := min(s+dashLen, length)
		b.Line(a.Add(dir.Mul(s)), a.Add(dir.Mul(mid)), width, on)
		if off[3] > 0 && mid < end {
			b.Line(a.Add(dir.Mul(mid)), a.Add(dir.Mul(end)), width, off)
		}
	}
}

func (b *batchImpl) Disk(center mgl32.Vec2, diameter float32, color common.Color) {
	r := diameter / 2
	if r <= 0 {
		return
	}
	prev := center.Add(mgl32.Vec2{r, 0})
	for i := 1; i <= diskSegments; i++ {
		next := center.Add(circlePoint(i, r))
		b.triangle(center, prev, next, color)
		prev = next
	}
}

func (b *batchImpl) Ring(center mgl32.Vec2, radius, width float32, color common.Color) {
	if radius <= 0 {
		return
	}
	segments := diskSegments * 3
	prev := center.Add(mgl32.Vec2{radius, 0})
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		next := center.Add(mgl32.Vec2{radius * float32(math.Cos(a)), radius * float32(math.Sin(a))})
		b.Line(prev, next, width, color)
		prev = next
	}
}

func (b *batchImpl) Star(center mgl32.Vec2, size float32, inner, outer common.Color) {
	for _, dir := range []mgl32.Vec2{{1, 0}, {0, 1}, {0.7071, 0.7071}, {0.7071, -0.7071}} {
		arm := dir.Mul(size)
		b.Line(center.Sub(arm), center.Add(arm), 1.5, outer)
	}
	b.Disk(center, size*0.6, inner)
}

func (b *batchImpl) LineWorld(a, c mgl32.Vec3, fullview mgl32.Mat4, width float32, color common.Color) {
	sa, _, okA := common.ProjectToScreen(b.viewport, fullview, a)
	sc, _, okC := common.ProjectToScreen(b.viewport, fullview, c)
	if okA && okC {
		b.Line(sa, sc, width, color)
	}
}

func (b *batchImpl) LineDashWorld(a, c mgl32.Vec3, fullview mgl32.Mat4, width float32, on, off common.Color, dashLen, percentDash float32) {
	sa, _, okA := common.ProjectToScreen(b.viewport, fullview, a)
	sc, _, okC := common.ProjectToScreen(b.viewport, fullview, c)
	if okA && okC {
		b.LineDash(sa, sc, width, on, off, dashLen, percentDash)
	}
}

func (b *batchImpl) DiskWorld(center mgl32.Vec3, fullview mgl32.Mat4, diameter float32, color common.Color) {
	if s, _, ok := common.ProjectToScreen(b.viewport, fullview, center); ok {
		b.Disk(s, diameter, color)
	}
}

func (b *batchImpl) StarWorld(center mgl32.Vec3, fullview mgl32.Mat4, size float32, inner, outer common.Color) {
	if s, _, ok := common.ProjectToScreen(b.viewport, fullview, center); ok {
		b.Star(s, size, inner, outer)
	}
}

// triangle appends one triangle given in window pixels.
func (b *batchImpl) triangle(p0, p1, p2 mgl32.Vec2, color common.Color) {
	for _, p := range [3]mgl32.Vec2{p0, p1, p2} {
		ndc := common.ScreenToNDC(b.viewport, p[0], p[1])
		b.vertices = append(b.vertices, common.OverlayVertex{
			Position: [3]float32{ndc[0], ndc[1], 0},
			Color:    [4]float32(color),
		})
	}
}

func circlePoint(i int, r float32) mgl32.Vec2 {
	a := 2 * math.Pi * float64(i) / diskSegments
	return mgl32.Vec2{r * float32(math.Cos(a)), r * float32(math.Sin(a))}
}
