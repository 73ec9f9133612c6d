package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/Carmen-Shannon/oxy-view/engine/profiler"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
	"github.com/rs/zerolog"
)

type engine struct {
	logger zerolog.Logger
	now    func() time.Time

	window   window.Window
	renderer renderer.Renderer
	context  interaction.Context
	batch    overlay.Batch

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
}

// Engine drives one interactive view on the window's thread: each iteration polls input,
// ticks the application, renders and presents, then updates the profiler.
type Engine interface {
	// Window returns the window hosting the engine.
	//
	// Returns:
	//   - window.Window: the window
	Window() window.Window

	// Renderer returns the renderer, or nil when the engine runs headless.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Context returns the interaction context receiving the window's input.
	//
	// Returns:
	//   - interaction.Context: the context
	Context() interaction.Context

	// Overlay returns the batch drawn over the frame. It is cleared before each render callback.
	//
	// Returns:
	//   - overlay.Batch: the overlay batch
	Overlay() overlay.Batch

	// EnableProfiler turns on periodic frame statistics.
	EnableProfiler()

	// DisableProfiler turns off frame statistics.
	DisableProfiler()

	// SetTickCallback sets the per-frame update run before rendering.
	//
	// Parameters:
	//   - callback: receives the seconds since the previous frame
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback sets the function that issues draws between BeginFrame and EndFrame.
	//
	// Parameters:
	//   - callback: receives the seconds since the previous frame
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit caps the frame rate. Pass 0 to uncap.
	//
	// Parameters:
	//   - fps: maximum frames per second
	SetRenderFrameLimit(fps float64)

	// Run blocks in the window's message loop until the window closes.
	Run()

	// Quit closes the window, ending Run.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine and routes the window's input and resize events to the context and renderer.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Engine: the engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger: zerolog.Nop(),
		now:    time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.logger)
	}
	viewport := common.Viewport{Width: 800, Height: 800}
	if e.context != nil {
		viewport = e.context.Camera().Viewport()
	}
	e.batch = overlay.NewBatch(viewport)

	if e.window != nil {
		e.bindWindow()
	}
	return e
}

func (e *engine) bindWindow() {
	e.window.SetResizeCallback(func(width, height int) {
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
		if e.context != nil {
			e.context.Resize(width, height)
			e.batch.SetViewport(e.context.Camera().Viewport())
		} else {
			e.batch.SetViewport(common.Viewport{Width: max(width, 1), Height: max(height, 1)})
		}
	})
	e.window.SetUpdateCallback(e.frame)

	if e.context == nil {
		return
	}
	ctx := e.context
	e.window.SetMouseButtonCallback(ctx.MouseButton)
	e.window.SetMouseMoveCallback(ctx.MouseMove)
	e.window.SetScrollCallback(ctx.MouseWheel)
	e.window.SetKeyCallback(ctx.Key)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Context() interaction.Context {
	return e.context
}

func (e *engine) Overlay() overlay.Batch {
	return e.batch
}

func (e *engine) Run() {
	if e.window == nil {
		e.logger.Error().Msg("engine has no window")
		return
	}
	e.lastFrame = e.now()
	e.logger.Info().Msg("engine running")
	e.window.ProcessMessages()
	e.logger.Info().Msg("engine stopped")
}

func (e *engine) Quit() {
	if e.window != nil && e.window.IsRunning() {
		if err := e.window.Close(); err != nil {
			e.logger.Warn().Err(err).Msg("close window")
		}
	}
}

// frame runs one iteration after the window has polled its events.
func (e *engine) frame() {
	start := e.now()
	if e.lastFrame.IsZero() {
		e.lastFrame = start
	}
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	e.render(dt)

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) render(dt float32) {
	e.batch.Reset()

	if e.renderer == nil {
		if e.renderCallback != nil {
			e.renderCallback(dt)
		}
		return
	}

	if err := e.renderer.BeginFrame(); err != nil {
		e.logger.Debug().Err(err).Msg("frame skipped")
		return
	}
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	if e.context != nil {
		e.context.Draw(e.batch)
	}
	if err := e.renderer.DrawOverlay(e.batch.Vertices()); err != nil {
		e.logger.Error().Err(err).Msg("overlay draw failed")
	}
	e.renderer.EndFrame()
	e.renderer.Present()
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
