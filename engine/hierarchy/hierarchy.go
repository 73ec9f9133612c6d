// Package hierarchy stores a mesh hierarchy as an arena of nodes addressed by index.
// A transform applied to a node is applied to every descendant as well.
package hierarchy

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownNode is returned when a NodeID does not address a node in the arena.
var ErrUnknownNode = errors.New("unknown node")

// NodeID addresses a node within one Arena.
type NodeID int

// NoNode is the parent of root nodes.
const NoNode NodeID = -1

type node[T any] struct {
	name     string
	value    T
	toWorld  mgl32.Mat4
	parent   NodeID
	children []NodeID
}

type arenaImpl[T any] struct {
	nodes []node[T]
}

// Arena owns a forest of nodes, each carrying a value of type T and a transform to world space.
// Nodes are never removed, so a NodeID stays valid for the arena's lifetime.
type Arena[T any] interface {
	// Add appends a node under parent, or as a root when parent is NoNode.
	//
	// Parameters:
	//   - name: a label used in logs and listings
	//   - value: the node payload
	//   - toWorld: the initial transform to world space
	//   - parent: the parent node or NoNode
	//
	// Returns:
	//   - NodeID: the new node
	//   - error: ErrUnknownNode when parent does not exist
	Add(name string, value T, toWorld mgl32.Mat4, parent NodeID) (NodeID, error)

	// ApplyTransform pre-multiplies m onto the node and every descendant.
	//
	// Parameters:
	//   - id: the subtree root
	//   - m: the transform, applied in world space
	//
	// Returns:
	//   - error: ErrUnknownNode when id does not exist
	ApplyTransform(id NodeID, m mgl32.Mat4) error

	// SetToWorld replaces a single node's transform without touching its descendants.
	SetToWorld(id NodeID, m mgl32.Mat4) error

	// ResetAll sets every node's transform to the identity.
	ResetAll()

	// ToWorld returns the node's transform to world space.
	ToWorld(id NodeID) (mgl32.Mat4, error)

	// Origin returns the world-space position of the node's local origin.
	Origin(id NodeID) (mgl32.Vec3, error)

	// Name returns the node's label.
	Name(id NodeID) (string, error)

	// Value returns the node's payload.
	Value(id NodeID) (T, error)

	// Parent returns the node's parent, NoNode for roots.
	Parent(id NodeID) (NodeID, error)

	// Children returns a copy of the node's child list in insertion order.
	Children(id NodeID) ([]NodeID, error)

	// Len returns the number of nodes.
	Len() int

	// Each calls fn for every node in insertion order.
	Each(fn func(id NodeID, name string, value T, toWorld mgl32.Mat4))

	// Pick returns the last-added node whose origin projects within radius pixels of (x, y).
	//
	// Parameters:
	//   - x, y: window pixel coordinates
	//   - fullview: projection * view
	//   - viewport: the viewport
	//   - radius: hit radius in pixels
	//
	// Returns:
	//   - NodeID: the picked node
	//   - bool: false when no origin is under the cursor
	Pick(x, y float32, fullview mgl32.Mat4, viewport common.Viewport, radius float32) (NodeID, bool)
}

var _ Arena[int] = &arenaImpl[int]{}

// NewArena creates an empty Arena.
//
// Returns:
//   - Arena[T]: the new arena
func NewArena[T any]() Arena[T] {
	return &arenaImpl[T]{}
}

func (a *arenaImpl[T]) Add(name string, value T, toWorld mgl32.Mat4, parent NodeID) (NodeID, error) {
	if parent != NoNode {
		if err := a.check(parent); err != nil {
			return NoNode, fmt.Errorf("add %q: %w", name, err)
		}
	}
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, node[T]{
		name:    name,
		value:   value,
		toWorld: toWorld,
		parent:  parent,
	})
	if parent != NoNode {
		a.nodes[parent].children = append(a.nodes[parent].children, id)
	}
	return id, nil
}

func (a *arenaImpl[T]) ApplyTransform(id NodeID, m mgl32.Mat4) error {
	if err := a.check(id); err != nil {
		return err
	}
	stack := []NodeID{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a.nodes[n].toWorld = m.Mul4(a.nodes[n].toWorld)
		stack = append(stack, a.nodes[n].children...)
	}
	return nil
}

func (a *arenaImpl[T]) SetToWorld(id NodeID, m mgl32.Mat4) error {
	if err := a.check(id); err != nil {
		return err
	}
	a.nodes[id].toWorld = m
	return nil
}

func (a *arenaImpl[T]) ResetAll() {
	for i := range a.nodes {
		a.nodes[i].toWorld = mgl32.Ident4()
	}
}

func (a *arenaImpl[T]) ToWorld(id NodeID) (mgl32.Mat4, error) {
	if err := a.check(id); err != nil {
		return mgl32.Mat4{}, err
	}
	return a.nodes[id].toWorld, nil
}

func (a *arenaImpl[T]) Origin(id NodeID) (mgl32.Vec3, error) {
	if err := a.check(id); err != nil {
		return mgl32.Vec3{}, err
	}
	return a.nodes[id].toWorld.Col(3).Vec3(), nil
}

func (a *arenaImpl[T]) Name(id NodeID) (string, error) {
	if err := a.check(id); err != nil {
		return "", err
	}
	return a.nodes[id].name, nil
}

func (a *arenaImpl[T]) Value(id NodeID) (T, error) {
	if err := a.check(id); err != nil {
		var zero T
		return zero, err
	}
	return a.nodes[id].value, nil
}

func (a *arenaImpl[T]) Parent(id NodeID) (NodeID, error) {
	if err := a.check(id); err != nil {
		return NoNode, err
	}
	return a.nodes[id].parent, nil
}

func (a *arenaImpl[T]) Children(id NodeID) ([]NodeID, error) {
	if err := a.check(id); err != nil {
		return nil, err
	}
	return append([]NodeID(nil), a.nodes[id].children...), nil
}

func (a *arenaImpl[T]) Len() int {
	return len(a.nodes)
}

func (a *arenaImpl[T]) Each(fn func(id NodeID, name string, value T, toWorld mgl32.Mat4)) {
	for i, n := range a.nodes {
		fn(NodeID(i), n.name, n.value, n.toWorld)
	}
}

func (a *arenaImpl[T]) Pick(x, y float32, fullview mgl32.Mat4, viewport common.Viewport, radius float32) (NodeID, bool) {
	picked := NoNode
	for i, n := range a.nodes {
		if common.WithinPixels(viewport, fullview, n.toWorld.Col(3).Vec3(), x, y, radius) {
			picked = NodeID(i)
		}
	}
	return picked, picked != NoNode
}

func (a *arenaImpl[T]) check(id NodeID) error {
	if id < 0 || int(id) >= len(a.nodes) {
		return fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return nil
}
