package curve

import "github.com/Carmen-Shannon/oxy-view/common"

// Style controls how a curve is drawn into an overlay batch.
type Style struct {
	Segments      int
	CurveWidth    float32
	CurveColor    common.Color
	ShowPolygon   bool
	PolygonWidth  float32
	PolygonColor  common.Color
	DashLength    float32
	DashPercent   float32
	ShowPoints    bool
	PointDiameter float32
	PointColor    common.Color
}

// DefaultStyle draws a dark red curve over a dashed blue control polygon with green control points.
func DefaultStyle() Style {
	return Style{
		Segments:      100,
		CurveWidth:    2,
		CurveColor:    common.RGB(0.75, 0, 0),
		ShowPolygon:   true,
		PolygonWidth:  1,
		PolygonColor:  common.RGB(0, 0, 1),
		DashLength:    20,
		DashPercent:   0.5,
		ShowPoints:    true,
		PointDiameter: 25,
		PointColor:    common.RGB(0, 1, 0),
	}
}

// PathStyle is the thinner purple look used for flight paths.
func PathStyle() Style {
	s := DefaultStyle()
	s.Segments = 50
	s.CurveWidth = 3.5
	s.CurveColor = common.RGB(0.7, 0.2, 0.5)
	s.PolygonWidth = 2.5
	s.PointDiameter = 17.5
	s.PointColor = common.RGB(0, 0.7, 0)
	return s
}
