package demo

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/hierarchy"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

const (
	originDiameter = 10
	frameLength    = 0.2
)

// Preset transforms, row major.
var (
	hierarchyView = mgl32.Mat4FromRows(
		mgl32.Vec4{-0.63, 1.68, 0.05, -0.44},
		mgl32.Vec4{-0.64, -0.29, 1.65, -0.02},
		mgl32.Vec4{1.55, 0.56, 0.70, -5.00},
		mgl32.Vec4{0, 0, 0, 1},
	)
	dogToWorld = mgl32.Mat4FromRows(
		mgl32.Vec4{1, 0, 0, -1.10},
		mgl32.Vec4{0, 1, 0, 0},
		mgl32.Vec4{0, 0, 1, -0.19},
		mgl32.Vec4{0, 0, 0, 1},
	)
	birdToWorld = mgl32.Mat4FromRows(
		mgl32.Vec4{-0.07, -0.22, -0.02, -1.07},
		mgl32.Vec4{0.22, -0.07, 0.02, 0.36},
		mgl32.Vec4{-0.03, -0.01, 0.23, 0.22},
		mgl32.Vec4{0, 0, 0, 1},
	)
	hatToWorld = mgl32.Mat4FromRows(
		mgl32.Vec4{0.04, 0.01, 0.02, -1.02},
		mgl32.Vec4{0.02, 0, -0.04, 0.22},
		mgl32.Vec4{-0.01, 0.05, 0, 0.37},
		mgl32.Vec4{0, 0, 0, 1},
	)
)

type part struct {
	name    string
	build   func() *mesh.Mesh
	toWorld mgl32.Mat4
	color   common.Color
}

// HierarchyDemo shows a dog carrying a bird wearing a hat. Transforming a node moves its descendants.
type HierarchyDemo struct {
	scene
	nodes hierarchy.Arena[*renderer.GPUMesh]
	parts []part
}

var _ Demo = &HierarchyDemo{}

// NewHierarchyDemo creates the hierarchy scene.
func NewHierarchyDemo(settings Settings, logger zerolog.Logger) Demo {
	d := &HierarchyDemo{
		scene: newScene("hierarchy", settings, logger),
		nodes: hierarchy.NewArena[*renderer.GPUMesh](),
		parts: []part{
			{"dog", dogMesh, dogToWorld, common.RGB(0.8, 0.6, 0.4)},
			{"bird", birdMesh, birdToWorld, common.RGB(0.3, 0.5, 0.9)},
			{"hat", hatMesh, hatToWorld, common.RGB(0.9, 0.2, 0.2)},
		},
	}
	d.lights = []mgl32.Vec3{{1, -0.2, 0.4}, {-0.7, 0.8, 1}, {-0.5, -0.2, 1}}
	return d
}

func (d *HierarchyDemo) Name() string           { return "hierarchy" }
func (d *HierarchyDemo) Title() string          { return "Mesh Hierarchy" }
func (d *HierarchyDemo) WindowSize() (int, int) { return 1000, 800 }

func (d *HierarchyDemo) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithViewport(0, 0, 1000, 800),
		camera.WithModelview(hierarchyView),
		camera.WithFov(30),
	}
}

func (d *HierarchyDemo) Setup(ctx interaction.Context, r MeshRenderer) error {
	d.attach(ctx, r)
	r.SetClearColor(common.RGB(0.4, 0.4, 0.8))

	parent := hierarchy.NoNode
	for _, p := range d.parts {
		gm, err := d.upload(p.name, p.build())
		if err != nil {
			return err
		}
		id, err := d.nodes.Add(p.name, gm, p.toWorld, parent)
		if err != nil {
			return err
		}
		parent = id
	}
	ctx.SetNodes(d.nodes)

	ctx.BindKey(common.KeyR, func() {
		d.nodes.ResetAll()
		d.logger.Info().Msg("transforms reset")
	})
	ctx.BindKey(common.KeyP, d.logTransforms)
	return nil
}

// Nodes returns the scene hierarchy.
func (d *HierarchyDemo) Nodes() hierarchy.Arena[*renderer.GPUMesh] {
	return d.nodes
}

func (d *HierarchyDemo) Apply(settings Settings) {
	d.settings = settings
}

func (d *HierarchyDemo) Tick(dt float32) {
	d.elapsed += dt
	d.ctx.ApplyHeldKeys()
}

func (d *HierarchyDemo) Render(batch overlay.Batch) {
	selected, hasSelection := d.ctx.Selection().Node()
	fullview := d.ctx.Camera().FullView()

	i := 0
	d.nodes.Each(func(_ hierarchy.NodeID, _ string, gm *renderer.GPUMesh, toWorld mgl32.Mat4) {
		d.draw(gm, d.uniformsFor(i, toWorld))
		i++
	})

	white, red := common.RGB(1, 1, 1), common.RGB(1, 0, 0)
	d.nodes.Each(func(id hierarchy.NodeID, _ string, _ *renderer.GPUMesh, toWorld mgl32.Mat4) {
		origin := toWorld.Col(3).Vec3()
		isSelected := hasSelection && selected == id
		if isSelected {
			for axis := range 3 {
				tip := origin.Add(toWorld.Col(axis).Vec3().Normalize().Mul(frameLength))
				batch.LineWorld(origin, tip, fullview, 2, white)
			}
		}
		color := white
		if isSelected {
			color = red
		}
		batch.DiskWorld(origin, fullview, originDiameter, color)
	})
}

func (d *HierarchyDemo) uniformsFor(i int, toWorld mgl32.Mat4) renderer.MeshUniforms {
	u := d.uniforms(toWorld, d.parts[i].color)
	u.Checker = true
	return u
}

func (d *HierarchyDemo) logTransforms() {
	d.nodes.Each(func(_ hierarchy.NodeID, name string, _ *renderer.GPUMesh, toWorld mgl32.Mat4) {
		d.logger.Info().Str("node", name).Floats32("rows", rows(toWorld)).Msg("transform")
	})
	d.logger.Info().Str("node", "modelview").Floats32("rows", rows(d.ctx.Camera().View())).Msg("transform")
}

func rows(m mgl32.Mat4) []float32 {
	out := make([]float32, 0, 16)
	for r := range 4 {
		row := m.Row(r)
		out = append(out, row[:]...)
	}
	return out
}

// dogMesh is a box body on four legs with a head, standing on y = 0 and facing +X.
func dogMesh() *mesh.Mesh {
	box := func(size, at mgl32.Vec3) *mesh.Mesh {
		b := mesh.Box(size)
		b.Transform(mgl32.Translate3D(at[0], at[1], at[2]))
		return b
	}
	return mesh.Merge(
		box(mgl32.Vec3{1.2, 0.4, 0.4}, mgl32.Vec3{0, 0.6, 0}),
		box(mgl32.Vec3{0.35, 0.35, 0.35}, mgl32.Vec3{0.7, 0.9, 0}),
		box(mgl32.Vec3{0.12, 0.4, 0.12}, mgl32.Vec3{0.45, 0.2, 0.14}),
		box(mgl32.Vec3{0.12, 0.4, 0.12}, mgl32.Vec3{0.45, 0.2, -0.14}),
		box(mgl32.Vec3{0.12, 0.4, 0.12}, mgl32.Vec3{-0.45, 0.2, 0.14}),
		box(mgl32.Vec3{0.12, 0.4, 0.12}, mgl32.Vec3{-0.45, 0.2, -0.14}),
	)
}

func birdMesh() *mesh.Mesh {
	m := mesh.Airplane()
	m.Standardize(1)
	return m
}

func hatMesh() *mesh.Mesh {
	m := mesh.Tessellate(24, mesh.ConeTorus(0, 1, 1), nil)
	m.Standardize(1)
	return m
}
