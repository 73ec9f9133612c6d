// Package interaction routes window input to the camera, the point mover and a node selection.
// A Context replaces per-program global state and is owned by the event loop thread.
package interaction

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/hierarchy"
	"github.com/Carmen-Shannon/oxy-view/engine/overlay"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// NodeSet is the part of a hierarchy the context drives: picking by origin and key transforms.
type NodeSet interface {
	Pick(x, y float32, fullview mgl32.Mat4, viewport common.Viewport, radius float32) (hierarchy.NodeID, bool)
	Origin(id hierarchy.NodeID) (mgl32.Vec3, error)
	ApplyTransform(id hierarchy.NodeID, m mgl32.Mat4) error
}

type contextImpl struct {
	logger zerolog.Logger

	camera    camera.Camera
	mover     camera.Mover
	points    []*mgl32.Vec3
	nodes     NodeSet
	hitRadius float32

	drag      Picked
	selection Picked

	held        map[int]bool
	shift, ctrl bool
	bindings    map[int][]func()
}

// Context is the per-application interaction state passed to every input callback.
type Context interface {
	// MouseButton handles a button transition. A left press grabs the movable point under the cursor,
	// or starts a camera gesture when there is none. A right press selects the node whose origin is
	// under the cursor. Any left release ends the active drag.
	//
	// Parameters:
	//   - x, y: cursor position in window pixels
	//   - left: true for the left button, false for the right
	//   - down: true on press
	//   - shift, ctrl: modifier state at the event
	MouseButton(x, y float32, left, down, shift, ctrl bool)

	// MouseMove drags the grabbed point or the camera while the left button is held.
	//
	// Parameters:
	//   - x, y: cursor position in window pixels
	//   - leftDown, rightDown: button state
	MouseMove(x, y float32, leftDown, rightDown bool)

	// MouseWheel forwards scroll to the camera.
	//
	// Parameters:
	//   - spin: scroll steps, positive away from the user
	//   - shift: adjust the field of view instead of the distance
	MouseWheel(spin float32, shift bool)

	// Resize forwards a framebuffer resize to the camera.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// Key records a key transition and runs the handlers bound to the key on press.
	//
	// Parameters:
	//   - code: the key code (see common key codes)
	//   - press: true on press or repeat, false on release
	//   - shift, ctrl: modifier state at the event
	Key(code int, press, shift, ctrl bool)

	// BindKey registers fn to run whenever code is pressed.
	//
	// Parameters:
	//   - code: the key code
	//   - fn: the handler
	BindKey(code int, fn func())

	// KeyDown reports whether a key is currently held.
	KeyDown(code int) bool

	// Shift reports whether Shift is held.
	Shift() bool

	// Control reports whether Control is held.
	Control() bool

	// HeldKeys snapshots the keys that drive node transforms: X, Y or Z selects the axis,
	// the arrows move and rotate, and S scales.
	//
	// Returns:
	//   - hierarchy.KeyState: the snapshot
	HeldKeys() hierarchy.KeyState

	// ApplyHeldKeys transforms the selected node from the held keys. Does nothing without a selection.
	//
	// Returns:
	//   - bool: true when a transform was applied
	ApplyHeldKeys() bool

	// AddPoint registers a movable point and returns its index. The point is not owned by the context.
	AddPoint(p *mgl32.Vec3) int

	// Points returns the registered movable points.
	Points() []*mgl32.Vec3

	// SetNodes attaches the hierarchy used for right-button selection.
	SetNodes(nodes NodeSet)

	// Picked returns the target of the active left-button drag.
	Picked() Picked

	// Selection returns the selected node, or PickedNone.
	Selection() Picked

	// ClearSelection drops the node selection.
	ClearSelection()

	// Camera returns the camera.
	Camera() camera.Camera

	// Mover returns the point mover.
	Mover() camera.Mover

	// Draw emits the camera's arcball overlay. Holding Control also draws the arcball grid.
	//
	// Parameters:
	//   - batch: the overlay batch
	Draw(batch overlay.Batch)
}

var _ Context = &contextImpl{}

// NewContext creates a Context around cam.
//
// Parameters:
//   - cam: the camera driven by pointer gestures
//   - options: functional options
//
// Returns:
//   - Context: the new context
func NewContext(cam camera.Camera, options ...ContextBuilderOption) Context {
	c := &contextImpl{
		logger:    zerolog.Nop(),
		camera:    cam,
		mover:     camera.NewMover(),
		hitRadius: DefaultHitRadius,
		held:      make(map[int]bool),
		bindings:  make(map[int][]func()),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *contextImpl) MouseButton(x, y float32, left, down, shift, ctrl bool) {
	c.shift, c.ctrl = shift, ctrl

	if !left {
		if down && c.nodes != nil {
			if id, ok := c.nodes.Pick(x, y, c.camera.FullView(), c.camera.Viewport(), c.hitRadius); ok {
				c.selection = PickedNode(id)
			} else {
				c.selection = PickedNone()
			}
			c.logger.Debug().Stringer("selection", c.selection).Msg("selection changed")
		}
		return
	}

	if !down {
		c.release()
		return
	}

	c.release()
	if i := c.pointUnder(x, y); i >= 0 {
		err := c.mover.Down(c.points[i], x, y, c.camera.View(), c.camera.Projection(), c.camera.Viewport())
		if err == nil {
			c.drag = PickedMover(i)
			return
		}
		if !errors.Is(err, camera.ErrBehindCamera) {
			c.logger.Error().Err(err).Int("point", i).Msg("failed to grab point")
		} else {
			c.logger.Warn().Err(err).Int("point", i).Msg("point cannot be dragged, moving camera instead")
		}
	}
	c.drag = PickedCamera()
	c.camera.Down(x, y, shift, ctrl)
}

func (c *contextImpl) MouseMove(x, y float32, leftDown, _ bool) {
	if !leftDown {
		return
	}
	switch c.drag.Kind() {
	case PickedKindMover:
		c.mover.Drag(x, y, c.camera.View(), c.camera.Projection(), c.camera.Viewport())
	case PickedKindCamera:
		c.camera.Drag(x, y)
	}
}

func (c *contextImpl) MouseWheel(spin float32, shift bool) {
	c.camera.Wheel(spin, shift)
}

func (c *contextImpl) Resize(width, height int) {
	c.camera.Resize(width, height)
	c.logger.Debug().Int("width", width).Int("height", height).Msg("resized")
}

func (c *contextImpl) Key(code int, press, shift, ctrl bool) {
	c.shift, c.ctrl = shift, ctrl
	switch code {
	case common.KeyLeftShift, common.KeyRightShift:
		c.shift = press || c.held[otherShift(code)]
	case common.KeyLeftControl, common.KeyRightControl:
		c.ctrl = press || c.held[otherControl(code)]
	}

	wasHeld := c.held[code]
	if press {
		c.held[code] = true
	} else {
		delete(c.held, code)
	}
	if press && !wasHeld {
		for _, fn := range c.bindings[code] {
			fn()
		}
	}
}

func (c *contextImpl) BindKey(code int, fn func()) {
	c.bindings[code] = append(c.bindings[code], fn)
}

func (c *contextImpl) KeyDown(code int) bool {
	return c.held[code]
}

func (c *contextImpl) Shift() bool {
	return c.shift
}

func (c *contextImpl) Control() bool {
	return c.ctrl
}

func (c *contextImpl) HeldKeys() hierarchy.KeyState {
	k := hierarchy.KeyState{
		Left:  c.held[common.KeyLeft],
		Right: c.held[common.KeyRight],
		Up:    c.held[common.KeyUp],
		Down:  c.held[common.KeyDown],
		Scale: c.held[common.KeyS],
		Shift: c.shift,
	}
	switch {
	case c.held[common.KeyX]:
		k.Axis = hierarchy.AxisX
	case c.held[common.KeyY]:
		k.Axis = hierarchy.AxisY
	case c.held[common.KeyZ]:
		k.Axis = hierarchy.AxisZ
	}
	return k
}

func (c *contextImpl) ApplyHeldKeys() bool {
	id, ok := c.selection.Node()
	if !ok || c.nodes == nil {
		return false
	}
	keys := c.HeldKeys()
	if !keys.Any() {
		return false
	}
	origin, err := c.nodes.Origin(id)
	if err != nil {
		c.logger.Warn().Err(err).Msg("selected node vanished")
		c.selection = PickedNone()
		return false
	}
	if err := c.nodes.ApplyTransform(id, hierarchy.KeyTransform(origin, keys)); err != nil {
		c.logger.Warn().Err(err).Msg("failed to transform node")
		return false
	}
	return true
}

func (c *contextImpl) AddPoint(p *mgl32.Vec3) int {
	c.points = append(c.points, p)
	return len(c.points) - 1
}

func (c *contextImpl) Points() []*mgl32.Vec3 {
	return c.points
}

func (c *contextImpl) SetNodes(nodes NodeSet) {
	c.nodes = nodes
	c.selection = PickedNone()
}

func (c *contextImpl) Picked() Picked {
	return c.drag
}

func (c *contextImpl) Selection() Picked {
	return c.selection
}

func (c *contextImpl) ClearSelection() {
	c.selection = PickedNone()
}

func (c *contextImpl) Camera() camera.Camera {
	return c.camera
}

func (c *contextImpl) Mover() camera.Mover {
	return c.mover
}

func (c *contextImpl) Draw(batch overlay.Batch) {
	if c.drag.Kind() == PickedKindCamera {
		c.camera.Draw(batch, c.ctrl)
	}
}

// pointUnder returns the last registered point under the cursor, or -1.
func (c *contextImpl) pointUnder(x, y float32) int {
	hit := -1
	fullview, viewport := c.camera.FullView(), c.camera.Viewport()
	for i, p := range c.points {
		if p != nil && MouseOver(x, y, *p, fullview, viewport, c.hitRadius) {
			hit = i
		}
	}
	return hit
}

// release ends whichever drag is active.
func (c *contextImpl) release() {
	switch c.drag.Kind() {
	case PickedKindMover:
		c.mover.Up()
	case PickedKindCamera:
		c.camera.Up()
	}
	c.drag = PickedNone()
}

func otherShift(code int) int {
	if code == common.KeyLeftShift {
		return common.KeyRightShift
	}
	return common.KeyLeftShift
}

func otherControl(code int) int {
	if code == common.KeyLeftControl {
		return common.KeyRightControl
	}
	return common.KeyLeftControl
}
