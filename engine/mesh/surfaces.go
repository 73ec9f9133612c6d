package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// rotateAboutY sweeps a profile point in the xy plane about the Y axis.
func rotateAboutY(p mgl32.Vec2, radians float64) mgl32.Vec3 {
	c, s := float32(math.Cos(radians)), float32(math.Sin(radians))
	return mgl32.Vec3{c * p[0], p[1], s * p[0]}
}

// coneProfile is the cone's slanted side, from radius inner at y = -1 to the apex at y = 1.
func coneProfile(v, inner float32) (mgl32.Vec2, mgl32.Vec2) {
	p := mgl32.Vec2{(1 - v) * inner, 2*v - 1}
	n := mgl32.Vec2{2, inner}.Normalize()
	return p, n
}

// torusProfile is the torus tube cross-section, a circle of radius inner centered at x = outer.
func torusProfile(v, inner, outer float32) (mgl32.Vec2, mgl32.Vec2) {
	angle := 2*math.Pi*float64(v) - math.Pi
	c, s := float32(math.Cos(angle)), float32(math.Sin(angle))
	return mgl32.Vec2{inner*c + outer, inner * s}, mgl32.Vec2{c, s}
}

// ConeTorus blends a cone (alpha = 0) into a torus (alpha = 1). u sweeps the longitude and
// v walks the profile. Points are mixed linearly and normals are mixed then renormalized.
//
// Parameters:
//   - alpha: blend factor in [0, 1]
//   - inner: cone base radius and torus tube radius
//   - outer: torus ring radius
//
// Returns:
//   - Surface: the blended surface
func ConeTorus(alpha, inner, outer float32) Surface {
	return func(u, v float32) (mgl32.Vec3, mgl32.Vec3) {
		sweep := float64(u) * 2 * math.Pi
		cp, cn := coneProfile(v, inner)
		tp, tn := torusProfile(v, inner, outer)

		p := mix(rotateAboutY(cp, sweep), rotateAboutY(tp, sweep), alpha)
		n := mix(rotateAboutY(cn, sweep), rotateAboutY(tn, sweep), alpha)
		if n.Len() == 0 {
			n = mgl32.Vec3{0, 1, 0}
		}
		return p, n.Normalize()
	}
}

// Sphere is a UV sphere of the given radius centered at the origin.
func Sphere(radius float32) Surface {
	return func(u, v float32) (mgl32.Vec3, mgl32.Vec3) {
		lon := float64(u) * 2 * math.Pi
		lat := float64(v)*math.Pi - math.Pi/2
		n := mgl32.Vec3{
			float32(math.Cos(lat) * math.Cos(lon)),
			float32(math.Sin(lat)),
			float32(math.Cos(lat) * math.Sin(lon)),
		}
		return n.Mul(radius), n
	}
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
