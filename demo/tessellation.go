package demo

import (
	"github.com/Carmen-Shannon/automation/tools/worker"
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

const (
	coneTorusInner = 1
	coneTorusOuter = 1
)

// TessellationDemo morphs a cone into a torus, re-tessellating the blend every frame.
type TessellationDemo struct {
	scene
	pool    worker.DynamicWorkerPool
	workers int

	surface *renderer.GPUMesh
	alpha   float32
	stale   bool
	paused  bool
}

var _ Demo = &TessellationDemo{}

// NewTessellationDemo creates the tessellation scene.
func NewTessellationDemo(settings Settings, logger zerolog.Logger) Demo {
	d := &TessellationDemo{
		scene: newScene("tessellation", settings, logger),
		stale: true,
	}
	d.lights = []mgl32.Vec3{{-1.4, 1, 1}}
	d.alpha = curve.PingPong(0, settings.BezierDuration)
	return d
}

func (d *TessellationDemo) Name() string           { return "tessellation" }
func (d *TessellationDemo) Title() string          { return "Cone to Torus" }
func (d *TessellationDemo) WindowSize() (int, int) { return 800, 600 }

func (d *TessellationDemo) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithViewport(0, 0, 800, 600),
		camera.WithTranslation(mgl32.Vec3{0, 0, -6}),
		camera.WithFov(30),
	}
}

func (d *TessellationDemo) Setup(ctx interaction.Context, r MeshRenderer) error {
	d.attach(ctx, r)
	r.SetClearColor(common.RGB(0.6, 0.6, 0.6))
	d.movableLights()
	ctx.BindKey(common.KeySpace, func() { d.paused = !d.paused })
	d.startPool()
	return d.retessellate()
}

func (d *TessellationDemo) startPool() {
	if d.pool != nil {
		d.pool.Stop()
	}
	d.workers = d.settings.Workers
	d.pool = mesh.NewTessellationPool(d.workers)
}

func (d *TessellationDemo) Apply(settings Settings) {
	resized := settings.Resolution != d.settings.Resolution
	d.settings = settings
	if d.pool != nil && settings.Workers != d.workers {
		d.startPool()
	}
	if resized {
		d.stale = true
		d.logger.Info().Int("resolution", settings.Resolution).Msg("resolution changed")
	}
}

func (d *TessellationDemo) Tick(dt float32) {
	if !d.paused {
		d.elapsed += dt
	}
	alpha := curve.PingPong(d.elapsed, d.settings.BezierDuration)
	if alpha != d.alpha {
		d.alpha = alpha
		d.stale = true
	}
	if d.renderer == nil {
		return
	}
	if err := d.retessellate(); err != nil {
		d.logger.Error().Err(err).Msg("tessellation failed")
	}
}

func (d *TessellationDemo) retessellate() error {
	if !d.stale {
		return nil
	}
	m := mesh.Tessellate(d.settings.Resolution, mesh.ConeTorus(d.alpha, coneTorusInner, coneTorusOuter), d.pool)
	gm, err := d.replace(d.surface, "cone-torus", m)
	if err != nil {
		return err
	}
	d.surface = gm
	d.stale = false
	return nil
}

// Alpha returns the current cone to torus blend.
func (d *TessellationDemo) Alpha() float32 {
	return d.alpha
}

func (d *TessellationDemo) Render(batch overlay.Batch) {
	u := d.uniforms(mgl32.Ident4(), common.RGB(1, 1, 1))
	u.Checker = true
	d.draw(d.surface, u)
	d.drawLights(batch, 9, common.RGB(1, 0, 0), common.RGB(0, 0, 1))
}

func (d *TessellationDemo) Release() {
	d.releaseMeshes()
	d.surface = nil
	if d.pool != nil {
		d.pool.Stop()
		d.pool = nil
	}
}
