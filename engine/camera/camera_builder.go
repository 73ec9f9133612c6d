package camera

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

type CameraBuilderOption func(*cameraImpl)

// WithViewport sets the camera's viewport in window pixels.
//
// Parameters:
//   - x, y: viewport origin
//   - width, height: viewport size (clamped to at least 1)
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport
func WithViewport(x, y, width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewport = common.Viewport{X: x, Y: y, Width: width, Height: height}
	}
}

// WithRotation sets the initial orientation from Euler angles in degrees, applied X then Y then Z.
//
// Parameters:
//   - degrees: rotation about X, Y and Z
//
// Returns:
//   - CameraBuilderOption: a function that sets the orientation
func WithRotation(degrees mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		q := mgl32.AnglesToQuat(
			mgl32.DegToRad(degrees[0]),
			mgl32.DegToRad(degrees[1]),
			mgl32.DegToRad(degrees[2]),
			mgl32.XYZ,
		)
		c.arcball.Reset(q)
	}
}

// WithQuat sets the initial orientation directly.
//
// Parameters:
//   - q: the orientation
//
// Returns:
//   - CameraBuilderOption: a function that sets the orientation
func WithQuat(q mgl32.Quat) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.arcball.Reset(q)
	}
}

// WithDistance sets the eye to target distance.
//
// Parameters:
//   - distance: a positive distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the distance
func WithDistance(distance float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.distance = distance
	}
}

// WithTranslation sets pan and distance from an eye-space translation such as (0, 0, -5).
// A non-negative z leaves the distance unchanged.
//
// Parameters:
//   - t: the eye-space translation
//
// Returns:
//   - CameraBuilderOption: a function that sets pan and distance
func WithTranslation(t mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pan = mgl32.Vec3{t[0], t[1], 0}
		if t[2] < 0 {
			c.distance = -t[2]
		}
	}
}

// WithModelview decomposes a rigid transform with uniform scale into orientation, scale,
// pan and distance. The target is reset to the origin.
//
// Parameters:
//   - m: an eye-from-world transform
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera from m
func WithModelview(m mgl32.Mat4) CameraBuilderOption {
	return func(c *cameraImpl) {
		s := m.Col(0).Vec3().Len()
		if s == 0 {
			return
		}
		rot := m.Mat3().Mul(1 / s).Mat4()
		c.arcball.Reset(mgl32.Mat4ToQuat(rot))
		c.scale = s
		c.target = mgl32.Vec3{}
		t := m.Col(3).Vec3()
		c.pan = mgl32.Vec3{t[0], t[1], 0}
		if t[2] < 0 {
			c.distance = -t[2]
		}
	}
}

// WithPan sets the initial eye-space pan offset.
//
// Parameters:
//   - x, y: the offset
//
// Returns:
//   - CameraBuilderOption: a function that sets the pan
func WithPan(x, y float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pan = mgl32.Vec3{x, y, 0}
	}
}

// WithTarget sets the point the camera orbits.
//
// Parameters:
//   - target: the world-space pivot
//
// Returns:
//   - CameraBuilderOption: a function that sets the target
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithFov sets the vertical field of view in degrees, clamped to [5, 150].
//
// Parameters:
//   - degrees: the field of view
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view
func WithFov(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = degrees
	}
}

// WithClipPlanes sets the near and far clipping distances.
//
// Parameters:
//   - near: near plane distance (> 0)
//   - far: far plane distance (> near)
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if near > 0 && far > near {
			c.near, c.far = near, far
		}
	}
}

// WithZoomFactor sets the per-step dolly factor used by Wheel.
//
// Parameters:
//   - factor: a factor greater than 1
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom factor
func WithZoomFactor(factor float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if factor > 1 {
			c.zoomFactor = factor
		}
	}
}

// WithDistanceBounds sets the dolly limits.
//
// Parameters:
//   - minDistance: the closest allowed distance (> 0)
//   - maxDistance: the farthest allowed distance (>= minDistance)
//
// Returns:
//   - CameraBuilderOption: a function that sets the limits
func WithDistanceBounds(minDistance, maxDistance float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if minDistance > 0 && maxDistance >= minDistance {
			c.minDistance, c.maxDistance = minDistance, maxDistance
		}
	}
}

// WithArcballScale sets the arcball radius as a fraction of half the smaller viewport side.
//
// Parameters:
//   - scale: the fraction
//
// Returns:
//   - CameraBuilderOption: a function that sets the arcball scale
func WithArcballScale(scale float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if scale > 0 {
			c.arcballScale = scale
		}
	}
}

// WithLogger sets the logger used for gesture transitions.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - CameraBuilderOption: a function that sets the logger
func WithLogger(logger zerolog.Logger) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.logger = logger.With().Str("component", "camera").Logger()
	}
}
