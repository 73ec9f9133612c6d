package demo

import (
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/curve"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// propellerSpin is the propeller rate in degrees per second.
const propellerSpin = 1500

// flightPath is a closed loop of four cubic segments.
var flightPath = []mgl32.Vec3{
	{2.0 / 3, 0, 2.0 / 3},
	{1, 0, 1.0 / 3},
	{1, 0.1, -1.0 / 3},
	{2.0 / 3, 0.1, -2.0 / 3},
	{1.0 / 3, 0.1, -1},
	{-1.0 / 3, 0.4, -1},
	{-2.0 / 3, 0.4, -2.0 / 3},
	{-1, 0.4, -1.0 / 3},
	{-1, 0, 1.0 / 3},
	{-2.0 / 3, 0, 2.0 / 3},
	{-1.0 / 3, 0, 1},
	{1.0 / 3, 0, 1},
	{2.0 / 3, 0, 2.0 / 3},
}

// AnimationDemo flies an airplane with a spinning propeller around a Bezier loop.
type AnimationDemo struct {
	scene
	path     *curve.Path
	showPath bool

	body, prop               *renderer.GPUMesh
	bodyToWorld, propToWorld mgl32.Mat4
}

var _ Demo = &AnimationDemo{}

// NewAnimationDemo creates the flight scene.
func NewAnimationDemo(settings Settings, logger zerolog.Logger) Demo {
	d := &AnimationDemo{
		scene:    newScene("animation", settings, logger),
		showPath: true,
	}
	d.lights = []mgl32.Vec3{{1, -0.2, 0.4}, {-0.7, 0.8, 1}, {-0.5, -0.2, 1}}
	d.path = mustPath(flightPath)
	d.pose()
	return d
}

// mustPath builds a path from fixed control points and panics if they are malformed.
func mustPath(points []mgl32.Vec3) *curve.Path {
	p, err := curve.NewPath(points)
	if err != nil {
		panic(err)
	}
	return p
}

func (d *AnimationDemo) Name() string           { return "animation" }
func (d *AnimationDemo) Title() string          { return "Aerial Animation" }
func (d *AnimationDemo) WindowSize() (int, int) { return 800, 800 }

func (d *AnimationDemo) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithViewport(0, 0, 800, 800),
		camera.WithRotation(mgl32.Vec3{15, -15, 0}),
		camera.WithTranslation(mgl32.Vec3{0, 0, -5}),
		camera.WithFov(30),
	}
}

func (d *AnimationDemo) Setup(ctx interaction.Context, r MeshRenderer) error {
	d.attach(ctx, r)
	r.SetClearColor(common.RGB(1, 1, 1))

	var err error
	if d.body, err = d.upload("airplane-body", mesh.Airplane()); err != nil {
		return err
	}
	if d.prop, err = d.upload("airplane-propeller", mesh.Propeller()); err != nil {
		return err
	}

	ctx.BindKey(common.KeyP, func() {
		d.showPath = !d.showPath
		d.logger.Debug().Bool("show_path", d.showPath).Msg("flight path toggled")
	})
	return nil
}

func (d *AnimationDemo) Apply(settings Settings) {
	d.settings = settings
}

func (d *AnimationDemo) Tick(dt float32) {
	d.elapsed += dt
	d.pose()
}

// pose places the body on the path frame and the propeller on the body's nose.
func (d *AnimationDemo) pose() {
	frame := d.path.Frame(d.elapsed, d.settings.FlightDuration)
	d.bodyToWorld = frame.
		Mul4(mgl32.Scale3D(0.35, 0.35, 0.35)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90)))

	spin := float32(math.Mod(float64(propellerSpin*d.elapsed), 360))
	d.propToWorld = d.bodyToWorld.
		Mul4(mgl32.Translate3D(0.85, 0, 0)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))).
		Mul4(mgl32.Scale3D(0.25, 0.25, 0.25)).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(spin)))
}

// BodyToWorld returns the airplane body transform for the current frame.
func (d *AnimationDemo) BodyToWorld() mgl32.Mat4 {
	return d.bodyToWorld
}

// PropellerToWorld returns the propeller transform for the current frame.
func (d *AnimationDemo) PropellerToWorld() mgl32.Mat4 {
	return d.propToWorld
}

// ShowPath reports whether the flight path overlay is drawn.
func (d *AnimationDemo) ShowPath() bool {
	return d.showPath
}

func (d *AnimationDemo) Render(batch overlay.Batch) {
	d.draw(d.body, d.uniforms(d.bodyToWorld, common.RGB(0, 1, 0)))
	d.draw(d.prop, d.uniforms(d.propToWorld, common.RGB(1, 0, 0)))

	if d.showPath {
		d.path.Draw(batch, d.ctx.Camera().FullView(), curve.PathStyle())
	}
}

func (d *AnimationDemo) Release() {
	d.releaseMeshes()
	d.body, d.prop = nil, nil
}
