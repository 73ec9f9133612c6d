package hierarchy

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestKeyTransform(t *testing.T) {
	origin := mgl32.Vec3{1, 2, 3}

	tests := []struct {
		name string
		keys KeyState
		in   mgl32.Vec3
		want mgl32.Vec3
	}{
		{"no keys", KeyState{}, origin, origin},
		{"arrows without axis", KeyState{Left: true, Up: true}, origin, origin},
		{"left along x", KeyState{Axis: AxisX, Left: true}, origin, mgl32.Vec3{0.99, 2, 3}},
		{"right along y", KeyState{Axis: AxisY, Right: true}, origin, mgl32.Vec3{1, 2.01, 3}},
		{"left along z", KeyState{Axis: AxisZ, Left: true}, origin, mgl32.Vec3{1, 2, 2.99}},
		{"rotation keeps origin fixed", KeyState{Axis: AxisY, Up: true}, origin, origin},
		{"rotation about y through origin", KeyState{Axis: AxisY, Up: true}, mgl32.Vec3{2, 2, 3}, mgl32.Vec3{1.5, 2, 3 - 0.8660254}},
		{"scale up", KeyState{Scale: true}, origin, origin.Mul(1.1)},
		{"scale down with shift", KeyState{Scale: true, Shift: true}, origin, origin.Mul(0.9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := KeyTransform(origin, tt.keys)
			got := mgl32.TransformCoordinate(tt.in, m)
			for i := range 3 {
				assert.InDelta(t, tt.want[i], got[i], 1e-5)
			}
		})
	}
}

func TestKeyStateAny(t *testing.T) {
	assert.False(t, KeyState{}.Any())
	assert.False(t, KeyState{Left: true}.Any())
	assert.False(t, KeyState{Axis: AxisX}.Any())
	assert.True(t, KeyState{Axis: AxisX, Down: true}.Any())
	assert.True(t, KeyState{Scale: true}.Any())
}
