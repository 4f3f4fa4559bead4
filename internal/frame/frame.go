// Package frame places copies of a 2-D cross-section in 3-D space.
//
// A Frame is an origin plus an orthonormal basis. Shape x maps onto Side,
// shape y onto Up, and the cross-section plane normal is Side x Up. Frames
// built by New stand upright: Up is the local up direction and the plane
// normal is the part of Tangent orthogonal to it. A counter-clockwise shape
// placed by a frame is counter-clockwise when seen from ahead.
package frame

import (
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// Frame is the placement of one ring.
type Frame struct {
	// Origin is where the shape origin lands.
	Origin vec3.T

	// Tangent is the along-path direction reported in vertex attributes.
	Tangent vec3.T

	// Side and Up span the cross-section plane.
	Side vec3.T
	Up   vec3.T

	// Stretch scales shape x before it is mapped onto Side. It is 1 except
	// on miter rings, where the cross-section is cut obliquely.
	Stretch float64
}

// New returns the frame at origin for travel along tangent, with up being
// the local reference up direction. The ring stands on the plane spanned by
// up and Side, so a sloped tangent does not tilt it; Tangent keeps the full
// direction for vertex attributes. tangent must not be parallel to up.
func New(origin, tangent, up vec3.T) Frame {
	t := tangent.Normalized()
	u := up.Normalized()
	side := vec3.Cross(&u, &t)
	side.Normalize()
	return Frame{
		Origin:  origin,
		Tangent: t,
		Side:    side,
		Up:      u,
		Stretch: 1,
	}
}

// PlaneNormal returns the normal of the cross-section plane.
func (f *Frame) PlaneNormal() vec3.T {
	return vec3.Cross(&f.Side, &f.Up)
}

// Point maps a shape point into 3-D.
func (f *Frame) Point(p vec2.T) vec3.T {
	x := f.Side.Scaled(p[0] * f.Stretch)
	y := f.Up.Scaled(p[1])
	out := vec3.Add(&f.Origin, &x)
	return *out.Add(&y)
}

// Transport maps every shape point into 3-D, writing x, y, z triples into dst.
// dst must hold at least 3*len(pts) values.
func (f *Frame) Transport(pts []vec2.T, dst []float64) {
	for i, p := range pts {
		q := f.Point(p)
		dst[i*3] = q[0]
		dst[i*3+1] = q[1]
		dst[i*3+2] = q[2]
	}
}

// AttributeBasis returns the side and up axes perpendicular to Tangent.
// They equal Side and Up except on miter rings, where the placement plane is
// oblique and attributes follow the adjacent wall instead.
func (f *Frame) AttributeBasis() (side, up vec3.T) {
	side = vec3.Cross(&f.Up, &f.Tangent)
	side.Normalize()
	up = vec3.Cross(&f.Tangent, &side)
	return side, up
}

// Normal maps a 2-D shape normal into 3-D through the attribute basis.
func (f *Frame) Normal(n vec2.T) vec3.T {
	side, up := f.AttributeBasis()
	side.Scale(n[0])
	up.Scale(n[1])
	out := vec3.Add(&side, &up)
	return out.Normalized()
}
