package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// The WebGPU surface replaces the OpenGL context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		if w.onKey == nil || key == glfw.KeyUnknown {
			return
		}
		press := action == glfw.Press || action == glfw.Repeat
		w.onKey(int(key), press, mods&glfw.ModShift != 0, mods&glfw.ModControl != 0)
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff), platformShift(w))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if w.onMouseButton == nil {
			return
		}
		if button != glfw.MouseButtonLeft && button != glfw.MouseButtonRight {
			return
		}
		x, y := gw.cursorPixels()
		w.onMouseButton(x, y, button == glfw.MouseButtonLeft, action == glfw.Press,
			mods&glfw.ModShift != 0, mods&glfw.ModControl != 0)
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, _, _ float64) {
		if w.onMouseMove == nil {
			return
		}
		x, y := gw.cursorPixels()
		w.onMouseMove(x, y,
			win.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press,
			win.GetMouseButton(glfw.MouseButtonRight) == glfw.Press)
	})

	// Framebuffer size, not window size: on high-DPI displays they differ and the
	// surface needs pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// cursorPixels returns the cursor position scaled from screen coordinates to framebuffer pixels.
func (gw *glfwWindow) cursorPixels() (float32, float32) {
	x, y := gw.window.GetCursorPos()
	winW, winH := gw.window.GetSize()
	sx, sy := 1.0, 1.0
	if winW > 0 && winH > 0 {
		sx = float64(gw.parent.width) / float64(winW)
		sy = float64(gw.parent.height) / float64(winH)
	}
	return float32(x * sx), float32(y * sy)
}

func platformKeyDown(w *engineWindow, code int) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.window.GetKey(glfw.Key(code)) == glfw.Press
}

func platformShift(w *engineWindow) bool {
	return platformKeyDown(w, common.KeyLeftShift) || platformKeyDown(w, common.KeyRightShift)
}

func platformControl(w *engineWindow) bool {
	return platformKeyDown(w, common.KeyLeftControl) || platformKeyDown(w, common.KeyRightControl)
}

func platformSetTitle(w *engineWindow, title string) {
	if w.internalWindow == nil {
		return
	}
	w.internalWindow.(*glfwWindow).window.SetTitle(title)
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking, dispatching every
// queued input callback before returning.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
