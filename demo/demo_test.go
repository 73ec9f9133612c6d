package demo

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/curve"
	"github.com/Carmen-Shannon/oxy-view/engine/hierarchy"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpload = errors.New("upload refused")

type fakeRenderer struct {
	clear      common.Color
	uploads    []string
	released   int
	draws      []renderer.MeshUniforms
	failUpload bool
}

func (f *fakeRenderer) SetClearColor(color common.Color) {
	f.clear = color
}

func (f *fakeRenderer) UploadMesh(label string, m *mesh.Mesh) (*renderer.GPUMesh, error) {
	if f.failUpload {
		return nil, errUpload
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	f.uploads = append(f.uploads, label)
	return &renderer.GPUMesh{}, nil
}

func (f *fakeRenderer) ReleaseMesh(m *renderer.GPUMesh) {
	if m != nil {
		f.released++
	}
}

func (f *fakeRenderer) DrawMesh(_ *renderer.GPUMesh, uniforms renderer.MeshUniforms) error {
	f.draws = append(f.draws, uniforms)
	return nil
}

func setup(t *testing.T, d Demo) (interaction.Context, *fakeRenderer) {
	t.Helper()
	cam := camera.NewCamera(d.CameraOptions()...)
	ctx := interaction.NewContext(cam)
	r := &fakeRenderer{}
	require.NoError(t, d.Setup(ctx, r))
	t.Cleanup(d.Release)
	return ctx, r
}

func press(ctx interaction.Context, code int) {
	ctx.Key(code, true, false, false)
}

func assertVecNear(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d", i)
	}
}

func TestEntries(t *testing.T) {
	entries := Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		assert.NotEmpty(t, e.Short)
		assert.Equal(t, e.Name, e.New(DefaultSettings(), zerolog.Nop()).Name())
	}
	assert.Equal(t, []string{
		"animation", "bezier", "hierarchy", "letter", "lights", "rotate-letter", "tessellation", "textured-letter",
	}, names)

	_, err := Lookup("teapot")
	assert.Error(t, err)
	e, err := Lookup("bezier")
	require.NoError(t, err)
	assert.Equal(t, "bezier", e.Name)
}

func TestEveryDemoReleasesWhatItUploads(t *testing.T) {
	for _, e := range Entries() {
		t.Run(e.Name, func(t *testing.T) {
			d := e.New(DefaultSettings(), zerolog.Nop())
			cam := camera.NewCamera(d.CameraOptions()...)
			w, h := d.WindowSize()
			assert.Equal(t, common.Viewport{Width: w, Height: h}, cam.Viewport())
			assert.NotEmpty(t, d.Title())

			r := &fakeRenderer{}
			require.NoError(t, d.Setup(interaction.NewContext(cam), r))

			batch := overlay.NewBatch(cam.Viewport())
			for range 3 {
				d.Tick(0.25)
				batch.Reset()
				d.Render(batch)
			}
			d.Release()
			assert.Equal(t, len(r.uploads), r.released)
		})
	}
}

func TestSetupReportsUploadFailure(t *testing.T) {
	for _, name := range []string{"animation", "hierarchy", "tessellation", "lights", "letter", "textured-letter", "rotate-letter"} {
		t.Run(name, func(t *testing.T) {
			e, err := Lookup(name)
			require.NoError(t, err)
			d := e.New(DefaultSettings(), zerolog.Nop())
			ctx := interaction.NewContext(camera.NewCamera(d.CameraOptions()...))

			err = d.Setup(ctx, &fakeRenderer{failUpload: true})
			assert.ErrorIs(t, err, errUpload)
			d.Release()
		})
	}
}

func TestBezierMarkerFollowsEditedPoints(t *testing.T) {
	d := NewBezierDemo(DefaultSettings(), zerolog.Nop()).(*BezierDemo)
	ctx, r := setup(t, d)

	assert.Equal(t, common.RGB(1, 1, 1), r.clear)
	require.Len(t, ctx.Points(), 4)

	// Symmetric control points put the curve midpoint at the origin.
	assertVecNear(t, mgl32.Vec3{}, d.Marker(), 1e-6)

	// A quarter of the sweep reaches the end of the curve.
	d.Tick(1)
	assertVecNear(t, mgl32.Vec3{1, -1, 0}, d.Marker(), 1e-5)

	*ctx.Points()[3] = mgl32.Vec3{2, -1, 0}
	assertVecNear(t, mgl32.Vec3{2, -1, 0}, d.Marker(), 1e-5)

	batch := overlay.NewBatch(ctx.Camera().Viewport())
	d.Render(batch)
	assert.NotEmpty(t, batch.Vertices())
	assert.Empty(t, r.draws)
}

func TestBezierAppliesDuration(t *testing.T) {
	d := NewBezierDemo(DefaultSettings(), zerolog.Nop()).(*BezierDemo)
	setup(t, d)

	s := DefaultSettings()
	s.BezierDuration = 8
	d.Apply(s)
	d.Tick(2)
	assertVecNear(t, mgl32.Vec3{1, -1, 0}, d.Marker(), 1e-5)
}

func TestAnimationFollowsPath(t *testing.T) {
	d := NewAnimationDemo(DefaultSettings(), zerolog.Nop()).(*AnimationDemo)
	ctx, r := setup(t, d)
	assert.Equal(t, []string{"airplane-body", "airplane-propeller"}, r.uploads)

	path, err := curve.NewPath(flightPath)
	require.NoError(t, err)

	for _, dt := range []float32{0, 0.4, 1.3} {
		d.Tick(dt)
		want := path.Position(d.elapsed, d.settings.FlightDuration)
		assertVecNear(t, want, d.BodyToWorld().Col(3).Vec3(), 1e-4)
	}

	// The propeller rides with the body.
	before := d.PropellerToWorld()
	d.Tick(0.01)
	assert.False(t, before.ApproxEqualThreshold(d.PropellerToWorld(), 1e-6))

	batch := overlay.NewBatch(ctx.Camera().Viewport())
	d.Render(batch)
	require.Len(t, r.draws, 2)
	assert.Equal(t, common.RGB(0, 1, 0), r.draws[0].Color)
	assert.Equal(t, common.RGB(1, 0, 0), r.draws[1].Color)
	assert.Len(t, r.draws[0].Lights, 3)
	withPath := len(batch.Vertices())
	assert.NotZero(t, withPath)

	press(ctx, common.KeyP)
	assert.False(t, d.ShowPath())
	batch.Reset()
	d.Render(batch)
	assert.Empty(t, batch.Vertices())
}

func TestMustPathRejectsMalformedPoints(t *testing.T) {
	assert.NotPanics(t, func() { mustPath(flightPath) })
	assert.Panics(t, func() { mustPath(flightPath[:5]) })
}

func TestAnimationLightsAreInEyeSpace(t *testing.T) {
	d := NewAnimationDemo(DefaultSettings(), zerolog.Nop()).(*AnimationDemo)
	ctx, r := setup(t, d)

	d.Render(overlay.NewBatch(ctx.Camera().Viewport()))
	require.NotEmpty(t, r.draws)

	view := ctx.Camera().View()
	for i, l := range d.lights {
		assertVecNear(t, view.Mul4x1(l.Vec4(1)).Vec3(), r.draws[0].Lights[i], 1e-5)
	}
}

func TestHierarchyTransformsPropagate(t *testing.T) {
	d := NewHierarchyDemo(DefaultSettings(), zerolog.Nop()).(*HierarchyDemo)
	ctx, r := setup(t, d)
	nodes := d.Nodes()

	require.Equal(t, 3, nodes.Len())
	parent, err := nodes.Parent(2)
	require.NoError(t, err)
	assert.Equal(t, hierarchy.NodeID(1), parent)

	cam := ctx.Camera()
	dogOrigin, err := nodes.Origin(0)
	require.NoError(t, err)
	screen, _, ok := common.ProjectToScreen(cam.Viewport(), cam.FullView(), dogOrigin)
	require.True(t, ok)

	ctx.MouseButton(screen[0], screen[1], false, true, false, false)
	require.Equal(t, interaction.PickedNode(0), ctx.Selection())

	birdBefore, err := nodes.Origin(1)
	require.NoError(t, err)

	ctx.Key(common.KeyX, true, false, false)
	ctx.Key(common.KeyRight, true, false, false)
	d.Tick(1.0 / 60)

	birdAfter, err := nodes.Origin(1)
	require.NoError(t, err)
	assert.InDelta(t, birdBefore[0]+0.01, birdAfter[0], 1e-5)

	batch := overlay.NewBatch(cam.Viewport())
	d.Render(batch)
	require.Len(t, r.draws, 3)
	for _, u := range r.draws {
		assert.True(t, u.Checker)
	}
	assert.NotEmpty(t, batch.Vertices())

	ctx.Key(common.KeyRight, false, false, false)
	press(ctx, common.KeyR)
	for id := range hierarchy.NodeID(3) {
		m, err := nodes.ToWorld(id)
		require.NoError(t, err)
		assert.Equal(t, mgl32.Ident4(), m)
	}
}

func TestTessellationRetessellatesOnChange(t *testing.T) {
	d := NewTessellationDemo(DefaultSettings(), zerolog.Nop()).(*TessellationDemo)
	ctx, r := setup(t, d)

	require.Len(t, r.uploads, 1)
	assert.Len(t, ctx.Points(), 1)
	assert.InDelta(t, 0.5, d.Alpha(), 1e-6)

	d.Tick(1)
	assert.InDelta(t, 1, d.Alpha(), 1e-6)
	assert.Len(t, r.uploads, 2)
	assert.Equal(t, 1, r.released)

	press(ctx, common.KeySpace)
	d.Tick(1)
	assert.InDelta(t, 1, d.Alpha(), 1e-6)
	assert.Len(t, r.uploads, 2)

	s := DefaultSettings()
	s.Resolution = 8
	s.Workers = 2
	d.Apply(s)
	d.Tick(1)
	assert.Len(t, r.uploads, 3)
	assert.Equal(t, 2, r.released)

	d.Render(overlay.NewBatch(ctx.Camera().Viewport()))
	require.Len(t, r.draws, 1)
	assert.Len(t, r.draws[0].Lights, 1)
}

func TestLightsToggles(t *testing.T) {
	d := NewLightsDemo(DefaultSettings(), zerolog.Nop()).(*LightsDemo)
	ctx, r := setup(t, d)
	batch := overlay.NewBatch(ctx.Camera().Viewport())

	require.Len(t, ctx.Points(), 2)
	*ctx.Points()[1] = mgl32.Vec3{0, 2, 0}
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, d.Lights()[1])

	d.Render(batch)
	require.Len(t, r.draws, 1)
	assert.False(t, r.draws[0].Checker)
	assert.NotEmpty(t, batch.Vertices())

	press(ctx, common.KeyG)
	press(ctx, common.KeyL)
	batch.Reset()
	d.Render(batch)
	require.Len(t, r.draws, 2)
	assert.True(t, r.draws[1].Checker)
	assert.Empty(t, batch.Vertices())
}

func TestSmoothTorusNormalsAreUnit(t *testing.T) {
	m := smoothTorus(16)
	require.NoError(t, m.Validate())
	for _, n := range m.Normals {
		assert.InDelta(t, 1, n.Len(), 1e-4)
	}
	lo, hi := m.Bounds()
	assert.InDelta(t, 2, max(hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2]), 1e-4)
}

func faceNormal(m *mesh.Mesh, tri int) mgl32.Vec3 {
	t := m.Triangles[tri]
	p0, p1, p2 := m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
	return p1.Sub(p0).Cross(p2.Sub(p0))
}

func TestLetterMeshes(t *testing.T) {
	flat := flatLetter()
	require.NoError(t, flat.Validate())
	assert.Len(t, flat.Points, 17)
	assert.Len(t, flat.Triangles, 16)
	assert.Len(t, flat.Colors, 17)
	for _, p := range flat.Points {
		assert.Zero(t, p[2])
	}

	solid := extrudedLetter()
	require.NoError(t, solid.Validate())
	assert.Len(t, solid.Points, 34)
	assert.Len(t, solid.Colors, 34)
	assert.Len(t, solid.Triangles, 16+16+2*len(letterSides))
	assert.Equal(t, solid.Colors[3], solid.Colors[3+17])

	lo, hi := solid.Bounds()
	assertVecNear(t, mgl32.Vec3{-0.8, -0.8, -0.4 / 3}, lo, 1e-5)
	assertVecNear(t, mgl32.Vec3{0.8, 0.8, 0.4 / 3}, hi, 1e-5)

	// The back face winds opposite to the front.
	front, back := faceNormal(solid, 0), faceNormal(solid, 16)
	assert.Less(t, front.Dot(back), float32(0))

	for _, uv := range solid.UVs {
		assert.GreaterOrEqual(t, uv[0], float32(0))
		assert.LessOrEqual(t, uv[0], float32(1))
		assert.GreaterOrEqual(t, uv[1], float32(0))
		assert.LessOrEqual(t, uv[1], float32(1))
	}
	assert.Equal(t, solid.UVs[7], solid.UVs[7+17])
}

func TestLetterShadesFlatUnderFixedLight(t *testing.T) {
	d := NewLetterDemo(DefaultSettings(), zerolog.Nop()).(*LetterDemo)
	ctx, r := setup(t, d)
	assert.Equal(t, []string{"letter"}, r.uploads)
	assert.Empty(t, ctx.Points())

	batch := overlay.NewBatch(ctx.Camera().Viewport())
	d.Render(batch)
	require.Len(t, r.draws, 1)
	u := r.draws[0]
	assert.True(t, u.Flat)
	assert.False(t, u.Checker)
	assert.Equal(t, []mgl32.Vec3{{1, 1, 1}}, u.Lights)
	assert.Equal(t, float32(100), u.Shininess)
	assert.Empty(t, batch.Vertices())

	// Camera rotation does not move an eye-space light.
	ctx.Camera().SetRotation(mgl32.QuatRotate(1, mgl32.Vec3{0, 1, 0}))
	d.Render(batch)
	assert.Equal(t, []mgl32.Vec3{{1, 1, 1}}, r.draws[1].Lights)
}

func TestTexturedLetterMovesLights(t *testing.T) {
	d := NewTexturedLetterDemo(DefaultSettings(), zerolog.Nop()).(*LetterDemo)
	ctx, r := setup(t, d)
	require.Len(t, ctx.Points(), 2)

	*ctx.Points()[0] = mgl32.Vec3{0, 0, 2}
	batch := overlay.NewBatch(ctx.Camera().Viewport())
	d.Render(batch)

	require.Len(t, r.draws, 1)
	u := r.draws[0]
	assert.True(t, u.Checker)
	assert.True(t, u.Flat)
	require.Len(t, u.Lights, 2)
	view := ctx.Camera().View()
	assertVecNear(t, view.Mul4x1(mgl32.Vec4{0, 0, 2, 1}).Vec3(), u.Lights[0], 1e-5)
	assert.NotEmpty(t, batch.Vertices())
}

func TestRotatingLetterSpinsUntilPaused(t *testing.T) {
	d := NewRotatingLetterDemo(DefaultSettings(), zerolog.Nop()).(*LetterDemo)
	ctx, r := setup(t, d)
	assert.Equal(t, mgl32.Ident4(), d.ToWorld())

	d.Tick(2)
	want := mgl32.HomogRotate3DY(mgl32.DegToRad(90)).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(60)))
	assert.True(t, want.ApproxEqualThreshold(d.ToWorld(), 1e-5))

	press(ctx, common.KeySpace)
	d.Tick(1)
	assert.True(t, want.ApproxEqualThreshold(d.ToWorld(), 1e-5))

	d.Render(overlay.NewBatch(ctx.Camera().Viewport()))
	require.Len(t, r.draws, 1)
	u := r.draws[0]
	assert.Empty(t, u.Lights)
	assert.Equal(t, float32(1), u.Ambient)
	assert.Zero(t, u.Diffuse)
	assert.Zero(t, u.Specular)
	view := ctx.Camera().View()
	assert.True(t, view.Mul4(want).ApproxEqualThreshold(u.Modelview, 1e-5))
}
