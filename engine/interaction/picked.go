package interaction

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/engine/hierarchy"
)

// PickedKind discriminates the Picked variant.
type PickedKind int

const (
	PickedKindNone PickedKind = iota
	PickedKindCamera
	PickedKindMover
	PickedKindNode
)

// Picked names what a pointer gesture or selection currently refers to.
// The zero value is PickedNone.
type Picked struct {
	kind  PickedKind
	index int
}

// PickedNone refers to nothing.
func PickedNone() Picked {
	return Picked{}
}

// PickedCamera refers to the camera gesture.
func PickedCamera() Picked {
	return Picked{kind: PickedKindCamera}
}

// PickedMover refers to the movable point at index i.
func PickedMover(i int) Picked {
	return Picked{kind: PickedKindMover, index: i}
}

// PickedNode refers to a hierarchy node.
func PickedNode(id hierarchy.NodeID) Picked {
	return Picked{kind: PickedKindNode, index: int(id)}
}

// Kind returns the variant.
func (p Picked) Kind() PickedKind {
	return p.kind
}

// Index returns the movable point index for PickedKindMover, the node id for PickedKindNode, and -1 otherwise.
func (p Picked) Index() int {
	switch p.kind {
	case PickedKindMover, PickedKindNode:
		return p.index
	default:
		return -1
	}
}

// Node returns the node id when p is a PickedNode.
func (p Picked) Node() (hierarchy.NodeID, bool) {
	if p.kind != PickedKindNode {
		return hierarchy.NoNode, false
	}
	return hierarchy.NodeID(p.index), true
}

func (p Picked) String() string {
	switch p.kind {
	case PickedKindCamera:
		return "camera"
	case PickedKindMover:
		return fmt.Sprintf("mover(%d)", p.index)
	case PickedKindNode:
		return fmt.Sprintf("node(%d)", p.index)
	default:
		return "none"
	}
}
