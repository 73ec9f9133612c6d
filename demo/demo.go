// Package demo holds the interactive scenes served by the oxy-view command.
//
// Every scene runs on the event loop thread: Setup once after the GPU is ready, then Tick and
// Render once per frame, and Release on shutdown. Scenes keep their own elapsed time, fed
// from the frame delta, so playback is deterministic under test.
package demo

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// MeshRenderer is the part of renderer.Renderer a scene draws through.
type MeshRenderer interface {
	SetClearColor(color common.Color)
	UploadMesh(label string, m *mesh.Mesh) (*renderer.GPUMesh, error)
	ReleaseMesh(m *renderer.GPUMesh)
	DrawMesh(m *renderer.GPUMesh, uniforms renderer.MeshUniforms) error
}

// Settings are the reloadable playback parameters shared by all scenes.
type Settings struct {
	FlightDuration float32 // seconds per flight path loop
	BezierDuration float32 // seconds per ping-pong sweep
	Resolution     int     // tessellation cells per side
	Workers        int     // tessellation goroutines
}

// DefaultSettings matches the config defaults.
func DefaultSettings() Settings {
	return Settings{
		FlightDuration: 3,
		BezierDuration: 4,
		Resolution:     64,
		Workers:        4,
	}
}

// Demo is one interactive scene.
type Demo interface {
	// Name returns the command name of the scene.
	Name() string

	// Title returns the window title.
	Title() string

	// WindowSize returns the initial framebuffer size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	WindowSize() (int, int)

	// CameraOptions returns the scene's initial framing. Later options override these.
	//
	// Returns:
	//   - []camera.CameraBuilderOption: the options
	CameraOptions() []camera.CameraBuilderOption

	// Setup uploads meshes, registers movable points and binds keys.
	//
	// Parameters:
	//   - ctx: the interaction context
	//   - r: the renderer meshes are uploaded to
	//
	// Returns:
	//   - error: an upload error
	Setup(ctx interaction.Context, r MeshRenderer) error

	// Apply replaces the playback settings. Call it on the event loop thread.
	//
	// Parameters:
	//   - settings: the new settings
	Apply(settings Settings)

	// Tick advances the scene by dt seconds.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	Tick(dt float32)

	// Render issues mesh draws and fills the overlay batch.
	//
	// Parameters:
	//   - batch: the overlay batch for this frame
	Render(batch overlay.Batch)

	// Release frees the scene's GPU meshes and workers.
	Release()
}

// Factory builds a scene.
type Factory func(settings Settings, logger zerolog.Logger) Demo

// Entry describes one registered scene.
type Entry struct {
	Name  string
	Short string
	New   Factory
}

var registry = map[string]Entry{}

func register(e Entry) {
	registry[e.Name] = e
}

func init() {
	register(Entry{Name: "bezier", Short: "Edit a cubic Bezier curve with a moving marker", New: NewBezierDemo})
	register(Entry{Name: "animation", Short: "Fly an airplane along a looping Bezier path", New: NewAnimationDemo})
	register(Entry{Name: "hierarchy", Short: "Pick and transform a dog, bird and hat hierarchy", New: NewHierarchyDemo})
	register(Entry{Name: "tessellation", Short: "Morph a tessellated cone into a torus", New: NewTessellationDemo})
	register(Entry{Name: "lights", Short: "Shade a smooth mesh with movable lights", New: NewLightsDemo})
	register(Entry{Name: "letter", Short: "Orbit a flat-shaded, vertex-colored 3D letter", New: NewLetterDemo})
	register(Entry{Name: "textured-letter", Short: "Light a checker-textured 3D letter with movable lights", New: NewTexturedLetterDemo})
	register(Entry{Name: "rotate-letter", Short: "Spin a colored flat letter", New: NewRotatingLetterDemo})
}

// Entries lists the registered scenes sorted by name.
func Entries() []Entry {
	out := make([]Entry, 0, len(registry))
	for _, e := range registry {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a registered scene by name.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - Entry: the scene
//   - error: an error naming the unknown scene
func Lookup(name string) (Entry, error) {
	e, ok := registry[name]
	if !ok {
		return Entry{}, fmt.Errorf("unknown demo %q", name)
	}
	return e, nil
}

// scene carries what every demo shares: the context, the renderer, elapsed time and lights.
type scene struct {
	logger   zerolog.Logger
	settings Settings

	ctx      interaction.Context
	renderer MeshRenderer
	uploaded []*renderer.GPUMesh

	elapsed float32
	lights  []mgl32.Vec3
}

func newScene(name string, settings Settings, logger zerolog.Logger) scene {
	return scene{
		logger:   logger.With().Str("component", "demo").Str("demo", name).Logger(),
		settings: settings,
	}
}

func (s *scene) attach(ctx interaction.Context, r MeshRenderer) {
	s.ctx = ctx
	s.renderer = r
}

func (s *scene) upload(label string, m *mesh.Mesh) (*renderer.GPUMesh, error) {
	gm, err := s.renderer.UploadMesh(label, m)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	s.uploaded = append(s.uploaded, gm)
	return gm, nil
}

// replace swaps an uploaded mesh for a new upload of m, releasing the old one.
func (s *scene) replace(old *renderer.GPUMesh, label string, m *mesh.Mesh) (*renderer.GPUMesh, error) {
	gm, err := s.upload(label, m)
	if err != nil {
		return old, err
	}
	if old != nil {
		for i, u := range s.uploaded {
			if u == old {
				s.uploaded = append(s.uploaded[:i], s.uploaded[i+1:]...)
				break
			}
		}
		s.renderer.ReleaseMesh(old)
	}
	return gm, nil
}

func (s *scene) releaseMeshes() {
	if s.renderer == nil {
		return
	}
	for _, gm := range s.uploaded {
		s.renderer.ReleaseMesh(gm)
	}
	s.uploaded = nil
}

// movableLights registers every light as a draggable point.
func (s *scene) movableLights() {
	for i := range s.lights {
		s.ctx.AddPoint(&s.lights[i])
	}
}

func (s *scene) uniforms(toWorld mgl32.Mat4, color common.Color) renderer.MeshUniforms {
	cam := s.ctx.Camera()
	view := cam.View()
	u := renderer.DefaultMeshUniforms(view.Mul4(toWorld), cam.Projection())
	u.Color = color
	u.Lights = renderer.EyeLights(view, s.lights)
	return u
}

func (s *scene) draw(gm *renderer.GPUMesh, u renderer.MeshUniforms) {
	if gm == nil {
		return
	}
	if err := s.renderer.DrawMesh(gm, u); err != nil {
		s.logger.Debug().Err(err).Str("mesh", gm.Label()).Msg("draw skipped")
	}
}

func (s *scene) drawLights(batch overlay.Batch, size float32, inner, outer common.Color) {
	fullview := s.ctx.Camera().FullView()
	for _, l := range s.lights {
		batch.StarWorld(l, fullview, size, inner, outer)
	}
}
