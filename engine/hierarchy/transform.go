package hierarchy

import "github.com/go-gl/mathgl/mgl32"

const (
	translationStep = 0.01
	rotationStep    = 60 // degrees
	scaleUp         = 1.1
	scaleDown       = 0.9
)

// Axis selects which world axis the arrow keys act on.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

// KeyState is the held-key snapshot that drives KeyTransform.
type KeyState struct {
	Axis                  Axis
	Left, Right, Up, Down bool
	Scale                 bool
	Shift                 bool
}

// Any reports whether the snapshot produces a transform.
func (k KeyState) Any() bool {
	return k.Scale || (k.Axis != AxisNone && (k.Left || k.Right || k.Up || k.Down))
}

// KeyTransform builds the world-space transform for one frame of held keys.
// Left and Right translate along the axis, Up and Down rotate about the axis through origin,
// and Scale scales by 1.1, or 0.9 with Shift, about the world origin.
//
// Parameters:
//   - origin: the picked node's origin
//   - keys: the held keys
//
// Returns:
//   - mgl32.Mat4: the transform to pass to ApplyTransform
func KeyTransform(origin mgl32.Vec3, keys KeyState) mgl32.Mat4 {
	m := mgl32.Ident4()
	if keys.Axis != AxisNone {
		dir := axisVector(keys.Axis)
		if keys.Left {
			m = translate(dir.Mul(-translationStep)).Mul4(m)
		}
		if keys.Right {
			m = translate(dir.Mul(translationStep)).Mul4(m)
		}
		if keys.Up {
			m = rotateAbout(origin, dir, mgl32.DegToRad(rotationStep)).Mul4(m)
		}
		if keys.Down {
			m = rotateAbout(origin, dir, -mgl32.DegToRad(rotationStep)).Mul4(m)
		}
	}
	if keys.Scale {
		s := float32(scaleUp)
		if keys.Shift {
			s = scaleDown
		}
		m = mgl32.Scale3D(s, s, s).Mul4(m)
	}
	return m
}

func axisVector(a Axis) mgl32.Vec3 {
	switch a {
	case AxisX:
		return mgl32.Vec3{1, 0, 0}
	case AxisY:
		return mgl32.Vec3{0, 1, 0}
	default:
		return mgl32.Vec3{0, 0, 1}
	}
}

func translate(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(v[0], v[1], v[2])
}

func rotateAbout(origin, axis mgl32.Vec3, angle float32) mgl32.Mat4 {
	return translate(origin).Mul4(mgl32.HomogRotate3D(angle, axis)).Mul4(translate(origin.Mul(-1)))
}
