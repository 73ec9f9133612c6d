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

// letterDepth is the extrusion depth, in outline units.
const letterDepth = 50

// Spin rates of the rotating letter, in degrees per second.
const (
	letterSpinY = 45
	letterSpinX = 30
)

// letterOutline is the front face of the letter in pixel-like units.
var letterOutline = []mgl32.Vec2{
	{200, 200}, {150, 250}, {150, 150}, {50, 250}, {50, 350}, {150, 350},
	{50, 150}, {50, 50}, {150, 50}, {250, 150}, {250, 250}, {250, 350},
	{350, 350}, {350, 250}, {350, 150}, {350, 50}, {250, 50},
}

var letterColors = []mgl32.Vec3{
	{1, 0.5, 0.5}, {1, 0.6, 0.4}, {0.9, 0.7, 0.4}, {0.4, 1, 0.6}, {0.4, 1, 0.8}, {0.8, 0.6, 0.4},
	{0.4, 0.8, 1}, {0.6, 0.6, 1}, {0.8, 0.4, 1}, {1, 0.5, 0.5}, {1, 0.6, 0.6}, {1, 0.7, 0.7},
	{0.9, 0.8, 1}, {0.8, 0.8, 1}, {0.6, 1, 0.8}, {1, 0.9, 0.6}, {1, 0.8, 0.5},
}

var letterFace = [][3]uint32{
	{0, 1, 2}, {0, 2, 9}, {0, 9, 10}, {0, 1, 10},
	{1, 4, 5}, {1, 3, 4}, {1, 2, 3}, {2, 3, 6},
	{2, 6, 7}, {2, 7, 8}, {9, 15, 16}, {9, 14, 15},
	{9, 10, 13}, {9, 13, 14}, {10, 11, 12}, {10, 12, 13},
}

// letterSides joins outline edges of the front face to the back face, as pairs of
// front indices. Each edge becomes two triangles.
var letterSides = [][2]uint32{
	{1, 10}, {1, 2}, {1, 5}, {2, 8}, {2, 9}, {3, 4}, {3, 6}, {4, 5},
	{6, 7}, {7, 8}, {9, 10}, {10, 11}, {11, 12}, {12, 13}, {13, 14}, {14, 15},
	{15, 16}, {16, 9},
}

// flatLetter is the colored front face, fitted to [-0.8, 0.8].
func flatLetter() *mesh.Mesh {
	m := &mesh.Mesh{
		Points:    make([]mgl32.Vec3, len(letterOutline)),
		Colors:    append([]mgl32.Vec3(nil), letterColors...),
		Triangles: append([][3]uint32(nil), letterFace...),
	}
	for i, p := range letterOutline {
		m.Points[i] = mgl32.Vec3{p[0], p[1], 0}
	}
	m.Standardize(0.8)
	return m
}

// extrudedLetter is the letter extruded backward along -Z, fitted to [-0.8, 0.8]. The back
// face winds opposite to the front. UVs map the x/y extent onto [0, 1].
func extrudedLetter() *mesh.Mesh {
	n := uint32(len(letterOutline))
	m := &mesh.Mesh{
		Points: make([]mgl32.Vec3, 0, 2*n),
		Colors: make([]mgl32.Vec3, 0, 2*n),
	}
	for _, z := range []float32{0, -letterDepth} {
		for i, p := range letterOutline {
			m.Points = append(m.Points, mgl32.Vec3{p[0], p[1], z})
			m.Colors = append(m.Colors, letterColors[i])
		}
	}
	m.Triangles = append(m.Triangles, letterFace...)
	for _, t := range letterFace {
		m.Triangles = append(m.Triangles, [3]uint32{t[0] + n, t[2] + n, t[1] + n})
	}
	for _, e := range letterSides {
		a, b := e[0], e[1]
		m.Triangles = append(m.Triangles, [3]uint32{a, b, a + n}, [3]uint32{a + n, b, b + n})
	}
	m.Standardize(0.8)

	lo, hi := m.Bounds()
	size := hi.Sub(lo)
	m.UVs = make([]mgl32.Vec2, len(m.Points))
	for i, p := range m.Points {
		m.UVs[i] = mgl32.Vec2{(p[0] - lo[0]) / size[0], (p[1] - lo[1]) / size[1]}
	}
	return m
}

type letterStyle int

const (
	letterShaded letterStyle = iota
	letterTextured
	letterRotating
)

// LetterDemo shows the letter in one of three styles: a flat-shaded extrusion under a
// fixed light, a checker-textured extrusion under movable lights, or the flat outline
// spinning on its own.
type LetterDemo struct {
	scene
	name  string
	style letterStyle

	letter  *renderer.GPUMesh
	paused  bool
	toWorld mgl32.Mat4
}

var _ Demo = &LetterDemo{}

func newLetterDemo(name string, style letterStyle, settings Settings, logger zerolog.Logger) *LetterDemo {
	d := &LetterDemo{
		scene:   newScene(name, settings, logger),
		name:    name,
		style:   style,
		toWorld: mgl32.Ident4(),
	}
	switch style {
	case letterShaded:
		// Eye space, so the light stays put while the camera turns.
		d.lights = []mgl32.Vec3{{1, 1, 1}}
	case letterTextured:
		d.lights = []mgl32.Vec3{{0.5, 0, 1}, {1, 1, 0}}
	}
	return d
}

// NewLetterDemo creates the flat-shaded, vertex-colored 3D letter.
func NewLetterDemo(settings Settings, logger zerolog.Logger) Demo {
	return newLetterDemo("letter", letterShaded, settings, logger)
}

// NewTexturedLetterDemo creates the checker-textured 3D letter with two movable lights.
func NewTexturedLetterDemo(settings Settings, logger zerolog.Logger) Demo {
	return newLetterDemo("textured-letter", letterTextured, settings, logger)
}

// NewRotatingLetterDemo creates the flat letter spinning about X and Y.
func NewRotatingLetterDemo(settings Settings, logger zerolog.Logger) Demo {
	return newLetterDemo("rotate-letter", letterRotating, settings, logger)
}

func (d *LetterDemo) Name() string { return d.name }

func (d *LetterDemo) Title() string {
	switch d.style {
	case letterTextured:
		return "Texture 3d Letter"
	case letterRotating:
		return "Rotate Letter"
	default:
		return "Shade 3d Letter"
	}
}

func (d *LetterDemo) WindowSize() (int, int) { return 800, 800 }

func (d *LetterDemo) CameraOptions() []camera.CameraBuilderOption {
	opts := []camera.CameraBuilderOption{
		camera.WithViewport(0, 0, 800, 800),
		camera.WithTranslation(mgl32.Vec3{0, 0, -5}),
		camera.WithFov(30),
	}
	if d.style != letterRotating {
		opts = append(opts, camera.WithRotation(mgl32.Vec3{15, -30, 0}))
	}
	return opts
}

func (d *LetterDemo) Setup(ctx interaction.Context, r MeshRenderer) error {
	d.attach(ctx, r)
	r.SetClearColor(common.RGB(1, 1, 1))

	m := extrudedLetter()
	if d.style == letterRotating {
		m = flatLetter()
	}
	var err error
	if d.letter, err = d.upload(d.name, m); err != nil {
		return err
	}

	switch d.style {
	case letterTextured:
		d.movableLights()
	case letterRotating:
		ctx.BindKey(common.KeySpace, func() { d.paused = !d.paused })
	}
	return nil
}

func (d *LetterDemo) Apply(settings Settings) {
	d.settings = settings
}

func (d *LetterDemo) Tick(dt float32) {
	if d.style != letterRotating {
		return
	}
	if !d.paused {
		d.elapsed += dt
	}
	d.toWorld = mgl32.HomogRotate3DY(mgl32.DegToRad(letterSpinY * d.elapsed)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(letterSpinX * d.elapsed)))
}

// ToWorld returns the letter's current object to world transform.
func (d *LetterDemo) ToWorld() mgl32.Mat4 {
	return d.toWorld
}

func (d *LetterDemo) Render(batch overlay.Batch) {
	u := d.uniforms(d.toWorld, common.RGB(1, 1, 1))
	u.Flat = true
	switch d.style {
	case letterShaded:
		u.Lights = d.lights
		u.Ambient, u.Diffuse, u.Specular, u.Shininess = 0.3, 0.8, 0.7, 100
	case letterTextured:
		u.Color = common.RGB(0.35, 0.7, 0.35)
		u.Checker = true
		u.Ambient, u.Diffuse, u.Specular, u.Shininess = 0.3, 0.8, 0.7, 100
	case letterRotating:
		// Unlit: vertex colors only.
		u.Lights = nil
		u.Ambient, u.Diffuse, u.Specular = 1, 0, 0
	}
	d.draw(d.letter, u)

	if d.style == letterTextured {
		d.drawLights(batch, 8, common.RGB(1, 0.8, 0), common.RGB(0, 0, 1))
	}
}

func (d *LetterDemo) Release() {
	d.releaseMeshes()
	d.letter = nil
}
