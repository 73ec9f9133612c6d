package demo

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// LightsDemo shades a smooth-normal torus under two lights the user can drag.
type LightsDemo struct {
	scene
	surface     *renderer.GPUMesh
	checker     bool
	showMarkers bool
}

var _ Demo = &LightsDemo{}

// NewLightsDemo creates the lighting scene.
func NewLightsDemo(settings Settings, logger zerolog.Logger) Demo {
	d := &LightsDemo{
		scene:       newScene("lights", settings, logger),
		showMarkers: true,
	}
	d.lights = []mgl32.Vec3{{0.5, 0, 1}, {1, 1, 0}}
	return d
}

func (d *LightsDemo) Name() string           { return "lights" }
func (d *LightsDemo) Title() string          { return "Smooth Mesh" }
func (d *LightsDemo) WindowSize() (int, int) { return 800, 800 }

func (d *LightsDemo) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithViewport(0, 0, 800, 800),
		camera.WithRotation(mgl32.Vec3{15, -30, 0}),
		camera.WithTranslation(mgl32.Vec3{0, 0, -5}),
		camera.WithFov(30),
	}
}

func (d *LightsDemo) Setup(ctx interaction.Context, r MeshRenderer) error {
	d.attach(ctx, r)
	r.SetClearColor(common.RGB(1, 1, 1))

	var err error
	if d.surface, err = d.upload("smooth-torus", smoothTorus(d.settings.Resolution)); err != nil {
		return err
	}
	d.movableLights()

	ctx.BindKey(common.KeyG, func() { d.checker = !d.checker })
	ctx.BindKey(common.KeyL, func() { d.showMarkers = !d.showMarkers })
	return nil
}

// smoothTorus tessellates a torus and rebuilds its normals from the triangles.
func smoothTorus(res int) *mesh.Mesh {
	m := mesh.Tessellate(res, mesh.ConeTorus(1, 0.5, 1), nil)
	m.SmoothNormals()
	m.Standardize(1)
	return m
}

// Lights returns the world-space light positions.
func (d *LightsDemo) Lights() []mgl32.Vec3 {
	return d.lights
}

func (d *LightsDemo) Apply(settings Settings) {
	d.settings = settings
}

func (d *LightsDemo) Tick(dt float32) {
	d.elapsed += dt
}

func (d *LightsDemo) Render(batch overlay.Batch) {
	u := d.uniforms(mgl32.Ident4(), common.RGB(0.9, 0.9, 0.9))
	u.Checker = d.checker
	d.draw(d.surface, u)
	if d.showMarkers {
		d.drawLights(batch, 8, common.RGB(1, 0.8, 0), common.RGB(0, 0, 1))
	}
}

func (d *LightsDemo) Release() {
	d.releaseMeshes()
	d.surface = nil
}
