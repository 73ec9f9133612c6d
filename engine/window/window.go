package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"
)

// Window provides platform windowing and input event handling.
// Pointer positions are reported in framebuffer pixels with y growing downward.
type Window interface {
	// SetUpdateCallback sets the function called after each event poll.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical scroll steps and whether Shift is held
	SetScrollCallback(callback func(spin float32, shift bool))

	// SetKeyCallback sets the callback for key transitions. Repeats are reported as presses.
	//
	// Parameters:
	//   - callback: function receiving the key code, press state and modifiers
	SetKeyCallback(callback func(code int, press, shift, ctrl bool))

	// SetMouseButtonCallback sets the callback for left and right button transitions.
	//
	// Parameters:
	//   - callback: function receiving cursor position, button, press state and modifiers
	SetMouseButtonCallback(callback func(x, y float32, left, down, shift, ctrl bool))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving cursor position and button state
	SetMouseMoveCallback(callback func(x, y float32, leftDown, rightDown bool))

	// KeyDown reports whether a key is held, outside of any callback.
	//
	// Parameters:
	//   - code: the key code
	//
	// Returns:
	//   - bool: true while the key is held
	KeyDown(code int) bool

	// Shift reports whether either Shift key is held.
	Shift() bool

	// Control reports whether either Control key is held.
	Control() bool

	// SetTitle replaces the title bar text.
	SetTitle(title string)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate and is created by the wgpuglfw bridge.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor, or nil if the window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the message loop on the calling thread until the window closes,
	// polling events and then calling the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

type engineWindow struct {
	logger zerolog.Logger

	title string

	minWidth, minHeight int
	maxWidth, maxHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(spin float32, shift bool)
	onKey         func(code int, press, shift, ctrl bool)
	onMouseButton func(x, y float32, left, down, shift, ctrl bool)
	onMouseMove   func(x, y float32, leftDown, rightDown bool)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a Window. Platform failures panic, since nothing can run without a window.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		logger:    zerolog.Nop(),
		title:     "oxy-view",
		minWidth:  200,
		minHeight: 200,
		maxWidth:  3840,
		maxHeight: 2160,
		width:     800,
		height:    800,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	w.logger.Info().Str("title", w.title).Int("width", w.width).Int("height", w.height).Msg("window created")
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(spin float32, shift bool)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyCallback(callback func(code int, press, shift, ctrl bool)) {
	w.onKey = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(x, y float32, left, down, shift, ctrl bool)) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32, leftDown, rightDown bool)) {
	w.onMouseMove = callback
}

func (w *engineWindow) KeyDown(code int) bool {
	return platformKeyDown(w, code)
}

func (w *engineWindow) Shift() bool {
	return platformShift(w)
}

func (w *engineWindow) Control() bool {
	return platformControl(w)
}

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
