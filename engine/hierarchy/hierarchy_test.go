package hierarchy

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dog -> bird -> hat, plus a second child of dog.
func buildArena(t *testing.T) (Arena[string], []NodeID) {
	t.Helper()
	a := NewArena[string]()
	dog, err := a.Add("dog", "Dog1.obj", mgl32.Translate3D(-1.1, 0, -0.19), NoNode)
	require.NoError(t, err)
	bird, err := a.Add("bird", "Bird.obj", mgl32.Translate3D(-1.07, 0.36, 0.22), dog)
	require.NoError(t, err)
	hat, err := a.Add("hat", "Hat.obj", mgl32.Translate3D(-1.02, 0.22, 0.37), bird)
	require.NoError(t, err)
	tail, err := a.Add("tail", "", mgl32.Ident4(), dog)
	require.NoError(t, err)
	return a, []NodeID{dog, bird, hat, tail}
}

func TestArenaAdd(t *testing.T) {
	a, ids := buildArena(t)
	dog, bird, hat, tail := ids[0], ids[1], ids[2], ids[3]

	assert.Equal(t, 4, a.Len())

	children, err := a.Children(dog)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{bird, tail}, children)

	parent, err := a.Parent(hat)
	require.NoError(t, err)
	assert.Equal(t, bird, parent)

	parent, err = a.Parent(dog)
	require.NoError(t, err)
	assert.Equal(t, NoNode, parent)

	name, err := a.Name(bird)
	require.NoError(t, err)
	assert.Equal(t, "bird", name)

	value, err := a.Value(hat)
	require.NoError(t, err)
	assert.Equal(t, "Hat.obj", value)
}

func TestArenaUnknownNode(t *testing.T) {
	a, _ := buildArena(t)

	_, err := a.Add("orphan", "", mgl32.Ident4(), 42)
	assert.ErrorIs(t, err, ErrUnknownNode)
	assert.Equal(t, 4, a.Len())

	assert.ErrorIs(t, a.ApplyTransform(-2, mgl32.Ident4()), ErrUnknownNode)
	_, err = a.Origin(4)
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = a.Children(99)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestArenaApplyTransformPropagatesToDescendants(t *testing.T) {
	a, ids := buildArena(t)
	dog, bird, hat, tail := ids[0], ids[1], ids[2], ids[3]

	before := make(map[NodeID]mgl32.Mat4)
	for _, id := range ids {
		m, err := a.ToWorld(id)
		require.NoError(t, err)
		before[id] = m
	}

	m := mgl32.Translate3D(0, 1, 0).Mul4(mgl32.HomogRotate3DY(0.5))
	require.NoError(t, a.ApplyTransform(bird, m))

	for _, id := range []NodeID{bird, hat} {
		got, _ := a.ToWorld(id)
		assert.True(t, m.Mul4(before[id]).ApproxEqualThreshold(got, 1e-6), "node %d", id)
	}
	for _, id := range []NodeID{dog, tail} {
		got, _ := a.ToWorld(id)
		assert.Equal(t, before[id], got, "node %d", id)
	}

	require.NoError(t, a.ApplyTransform(dog, mgl32.Translate3D(2, 0, 0)))
	for _, id := range ids {
		origin, _ := a.Origin(id)
		prev, _ := a.ToWorld(id)
		assert.Equal(t, prev.Col(3).Vec3(), origin)
	}
	tailOrigin, _ := a.Origin(tail)
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, tailOrigin)
}

func TestArenaResetAll(t *testing.T) {
	a, ids := buildArena(t)
	a.ResetAll()
	for _, id := range ids {
		m, _ := a.ToWorld(id)
		assert.Equal(t, mgl32.Ident4(), m)
	}
}

func TestArenaEachVisitsInOrder(t *testing.T) {
	a, _ := buildArena(t)
	var names []string
	a.Each(func(_ NodeID, name string, _ string, _ mgl32.Mat4) {
		names = append(names, name)
	})
	assert.Equal(t, []string{"dog", "bird", "hat", "tail"}, names)
}

func TestArenaPick(t *testing.T) {
	a := NewArena[int]()
	first, _ := a.Add("first", 0, mgl32.Ident4(), NoNode)
	second, _ := a.Add("second", 1, mgl32.Ident4(), first)
	_, _ = a.Add("aside", 2, mgl32.Translate3D(1, 0, 0), NoNode)

	v := common.Viewport{Width: 800, Height: 800}
	fullview := mgl32.Perspective(mgl32.DegToRad(30), 1, 0.1, 100).Mul4(mgl32.Translate3D(0, 0, -5))

	id, ok := a.Pick(405, 396, fullview, v, 12)
	require.True(t, ok)
	assert.Equal(t, second, id, "coincident origins resolve to the last node")

	_, ok = a.Pick(100, 100, fullview, v, 12)
	assert.False(t, ok)
}
