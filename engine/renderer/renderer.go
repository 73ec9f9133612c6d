package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
	"github.com/rs/zerolog"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	logger zerolog.Logger

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           common.Color
}

// Renderer draws lit triangle meshes and a 2D overlay into a window surface.
//
// A frame is BeginFrame, any number of DrawMesh calls, at most one DrawOverlay, EndFrame and Present.
// The overlay is composited last with alpha blending and without depth testing.
type Renderer interface {
	// Resize reconfigures the surface and depth buffer for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetClearColor sets the background color.
	//
	// Parameters:
	//   - color: the clear color
	SetClearColor(color common.Color)

	// UploadMesh validates a mesh, interleaves it and creates its GPU buffers.
	//
	// Parameters:
	//   - label: debug label
	//   - m: the mesh
	//
	// Returns:
	//   - *GPUMesh: the uploaded mesh
	//   - error: a validation or buffer creation error
	UploadMesh(label string, m *mesh.Mesh) (*GPUMesh, error)

	// ReleaseMesh frees an uploaded mesh. Safe to call with nil.
	//
	// Parameters:
	//   - m: the mesh to release
	ReleaseMesh(m *GPUMesh)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawMesh draws one mesh with the given transforms, color and lights.
	//
	// Parameters:
	//   - m: the mesh
	//   - uniforms: the per-draw uniforms
	//
	// Returns:
	//   - error: an error if the draw could not be recorded
	DrawMesh(m *GPUMesh, uniforms MeshUniforms) error

	// DrawOverlay draws NDC overlay triangles above the meshes.
	//
	// Parameters:
	//   - vertices: the overlay triangle list
	//
	// Returns:
	//   - error: an error if the overlay could not be uploaded
	DrawOverlay(vertices []common.OverlayVertex) error

	// EndFrame ends the render pass and submits it. Call Present afterwards.
	EndFrame()

	// Present displays the frame.
	Present()

	// Release frees every GPU resource held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to the window's surface and configures it to the window size.
//
// Parameters:
//   - backendType: the GPU backend
//   - win: the window providing the surface
//   - options: functional options
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if no adapter, device or pipeline could be created
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		logger:      zerolog.Nop(),
		backendType: backendType,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		clearColor:  common.RGB(0.1, 0.1, 0.1),
	}

	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}
	if err != nil {
		return nil, fmt.Errorf("create renderer backend: %w", err)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	if err := r.backend.ConfigureSurface(win.Width(), win.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	r.logger.Info().Int("msaa", int(r.msaa)).Int("width", win.Width()).Int("height", win.Height()).Msg("renderer ready")
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.logger.Error().Err(err).Int("width", width).Int("height", height).Msg("resize failed")
	}
}

func (r *renderer) SetClearColor(color common.Color) {
	r.backend.SetClearColor(color)
}

func (r *renderer) UploadMesh(label string, m *mesh.Mesh) (*GPUMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	g, err := r.backend.UploadMesh(label, m.Interleave(), m.Indices())
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	r.logger.Debug().Str("mesh", label).Int("vertices", len(m.Points)).Int("triangles", len(m.Triangles)).Msg("mesh uploaded")
	return g, nil
}

func (r *renderer) ReleaseMesh(m *GPUMesh) {
	r.backend.ReleaseMesh(m)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawMesh(m *GPUMesh, uniforms MeshUniforms) error {
	return r.backend.DrawMesh(m, uniforms)
}

func (r *renderer) DrawOverlay(vertices []common.OverlayVertex) error {
	return r.backend.DrawOverlay(vertices)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.backend.Release()
}
