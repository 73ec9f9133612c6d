package interaction

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/engine/hierarchy"
	"github.com/stretchr/testify/assert"
)

func TestPickedVariants(t *testing.T) {
	tests := []struct {
		picked Picked
		kind   PickedKind
		index  int
		str    string
	}{
		{Picked{}, PickedKindNone, -1, "none"},
		{PickedNone(), PickedKindNone, -1, "none"},
		{PickedCamera(), PickedKindCamera, -1, "camera"},
		{PickedMover(3), PickedKindMover, 3, "mover(3)"},
		{PickedNode(7), PickedKindNode, 7, "node(7)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.picked.Kind())
		assert.Equal(t, tt.index, tt.picked.Index())
		assert.Equal(t, tt.str, tt.picked.String())
	}

	id, ok := PickedNode(2).Node()
	assert.True(t, ok)
	assert.Equal(t, hierarchy.NodeID(2), id)

	id, ok = PickedMover(2).Node()
	assert.False(t, ok)
	assert.Equal(t, hierarchy.NoNode, id)

	assert.Equal(t, PickedNone(), Picked{})
	assert.NotEqual(t, PickedMover(0), PickedNone())
}
