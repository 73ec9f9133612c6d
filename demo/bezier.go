package demo

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/curve"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

const markerDiameter = 12

// BezierDemo draws one editable cubic curve and a marker easing back and forth along it.
type BezierDemo struct {
	scene
	points [4]mgl32.Vec3
	style  curve.Style
}

var _ Demo = &BezierDemo{}

// NewBezierDemo creates the curve editing scene.
func NewBezierDemo(settings Settings, logger zerolog.Logger) Demo {
	style := curve.DefaultStyle()
	style.CurveWidth = 1
	return &BezierDemo{
		scene: newScene("bezier", settings, logger),
		points: [4]mgl32.Vec3{
			{-1, 1, 0},
			{-1, -1, 0},
			{1, 1, 0},
			{1, -1, 0},
		},
		style: style,
	}
}

func (d *BezierDemo) Name() string           { return "bezier" }
func (d *BezierDemo) Title() string          { return "Bezier Curve" }
func (d *BezierDemo) WindowSize() (int, int) { return 800, 800 }

func (d *BezierDemo) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithViewport(0, 0, 800, 800),
		camera.WithRotation(mgl32.Vec3{15, -15, 0}),
		camera.WithTranslation(mgl32.Vec3{0, 0, -5}),
		camera.WithFov(30),
	}
}

func (d *BezierDemo) Setup(ctx interaction.Context, r MeshRenderer) error {
	d.attach(ctx, r)
	r.SetClearColor(common.RGB(1, 1, 1))
	for i := range d.points {
		ctx.AddPoint(&d.points[i])
	}
	return nil
}

func (d *BezierDemo) Apply(settings Settings) {
	d.settings = settings
}

func (d *BezierDemo) Tick(dt float32) {
	d.elapsed += dt
}

// Marker returns the point the moving marker sits on.
func (d *BezierDemo) Marker() mgl32.Vec3 {
	b := curve.Bezier{Points: d.points}
	return b.Position(curve.PingPong(d.elapsed, d.settings.BezierDuration))
}

func (d *BezierDemo) Render(batch overlay.Batch) {
	fullview := d.ctx.Camera().FullView()
	b := curve.Bezier{Points: d.points}
	b.Draw(batch, fullview, d.style)
	batch.DiskWorld(d.Marker(), fullview, markerDiameter, common.RGB(1, 0, 0))
}

func (d *BezierDemo) Release() {}
