// Package ellipsoid converts between geodetic (cartographic) coordinates and
// ellipsoid-fixed Cartesian coordinates.
//
// It is the reference-surface collaborator of polyvolume: path positions are
// supplied in the Cartesian frame of an [Ellipsoid], and the sweep uses the
// ellipsoid's geodetic surface normal as the local "up" direction at every
// ring.
//
// # Usage
//
//	positions := ellipsoid.WGS84.CartographicArrayToCartesianArray([]ellipsoid.Cartographic{
//	    ellipsoid.FromDegrees(90, -30, 0),
//	    ellipsoid.FromDegrees(90, -35, 0),
//	})
package ellipsoid

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

const (
	// centerToleranceSquared is the squared scaled distance from the center
	// below which ScaleToGeodeticSurface gives up on the Newton iteration.
	centerToleranceSquared = 0.1

	// convergence is the Newton iteration tolerance.
	convergence = 1e-12
)

// Cartographic is a position given as longitude and latitude in radians and a
// height in meters above the ellipsoid surface.
type Cartographic struct {
	Longitude float64
	Latitude  float64
	Height    float64
}

// FromDegrees returns a Cartographic from longitude and latitude in degrees.
func FromDegrees(longitude, latitude, height float64) Cartographic {
	return Cartographic{
		Longitude: longitude * math.Pi / 180,
		Latitude:  latitude * math.Pi / 180,
		Height:    height,
	}
}

// Degrees returns the longitude and latitude in degrees.
func (c Cartographic) Degrees() (longitude, latitude float64) {
	return c.Longitude * 180 / math.Pi, c.Latitude * 180 / math.Pi
}

// Ellipsoid is a triaxial ellipsoid centered at the origin.
// An Ellipsoid is immutable and safe for concurrent use.
type Ellipsoid struct {
	radii               vec3.T
	radiiSquared        vec3.T
	oneOverRadii        vec3.T
	oneOverRadiiSquared vec3.T
	maximumRadius       float64
	minimumRadius       float64
	centerTolerance     float64
}

var (
	// WGS84 is the World Geodetic System 1984 ellipsoid.
	WGS84 = New(6378137.0, 6378137.0, 6356752.3142451793)

	// UnitSphere is a sphere of radius 1.
	UnitSphere = New(1, 1, 1)
)

// New returns an ellipsoid with the given radii along x, y and z.
// All radii must be positive.
func New(x, y, z float64) *Ellipsoid {
	return &Ellipsoid{
		radii:               vec3.T{x, y, z},
		radiiSquared:        vec3.T{x * x, y * y, z * z},
		oneOverRadii:        vec3.T{1 / x, 1 / y, 1 / z},
		oneOverRadiiSquared: vec3.T{1 / (x * x), 1 / (y * y), 1 / (z * z)},
		maximumRadius:       math.Max(x, math.Max(y, z)),
		minimumRadius:       math.Min(x, math.Min(y, z)),
		centerTolerance:     centerToleranceSquared,
	}
}

// Radii returns the radii along x, y and z.
func (e *Ellipsoid) Radii() vec3.T { return e.radii }

// MaximumRadius returns the largest of the three radii.
func (e *Ellipsoid) MaximumRadius() float64 { return e.maximumRadius }

// MinimumRadius returns the smallest of the three radii.
func (e *Ellipsoid) MinimumRadius() float64 { return e.minimumRadius }

// GeodeticSurfaceNormal returns the unit normal of the ellipsoid surface
// through p. The result is undefined for p at the origin.
func (e *Ellipsoid) GeodeticSurfaceNormal(p vec3.T) vec3.T {
	n := vec3.T{
		p[0] * e.oneOverRadiiSquared[0],
		p[1] * e.oneOverRadiiSquared[1],
		p[2] * e.oneOverRadiiSquared[2],
	}
	return n.Normalized()
}

// GeodeticSurfaceNormalCartographic returns the unit surface normal at the
// given longitude and latitude.
func (e *Ellipsoid) GeodeticSurfaceNormalCartographic(c Cartographic) vec3.T {
	cosLat := math.Cos(c.Latitude)
	n := vec3.T{
		cosLat * math.Cos(c.Longitude),
		cosLat * math.Sin(c.Longitude),
		math.Sin(c.Latitude),
	}
	return n.Normalized()
}

// CartographicToCartesian converts a geodetic position to Cartesian.
func (e *Ellipsoid) CartographicToCartesian(c Cartographic) vec3.T {
	n := e.GeodeticSurfaceNormalCartographic(c)
	k := vec3.T{e.radiiSquared[0] * n[0], e.radiiSquared[1] * n[1], e.radiiSquared[2] * n[2]}
	gamma := math.Sqrt(vec3.Dot(&n, &k))
	k.Scale(1 / gamma)
	n.Scale(c.Height)
	return vec3.Add(&k, &n)
}

// CartographicArrayToCartesianArray converts every position in cs.
func (e *Ellipsoid) CartographicArrayToCartesianArray(cs []Cartographic) []vec3.T {
	out := make([]vec3.T, len(cs))
	for i, c := range cs {
		out[i] = e.CartographicToCartesian(c)
	}
	return out
}

// ScaleToGeodeticSurface projects p along the geodetic surface normal onto
// the ellipsoid surface. It reports false when p is too close to the center
// for the projection to be well defined.
func (e *Ellipsoid) ScaleToGeodeticSurface(p vec3.T) (vec3.T, bool) {
	px, py, pz := p[0], p[1], p[2]
	ox, oy, oz := e.oneOverRadii[0], e.oneOverRadii[1], e.oneOverRadii[2]

	x2 := px * px * ox * ox
	y2 := py * py * oy * oy
	z2 := pz * pz * oz * oz

	squaredNorm := x2 + y2 + z2
	ratio := math.Sqrt(1 / squaredNorm)
	if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return vec3.T{}, false
	}

	// Initial guess: the point where the ray from the center meets the surface.
	intersection := p.Scaled(ratio)
	if squaredNorm < e.centerTolerance {
		return intersection, false
	}

	sx, sy, sz := e.oneOverRadiiSquared[0], e.oneOverRadiiSquared[1], e.oneOverRadiiSquared[2]
	gradient := vec3.T{intersection[0] * sx * 2, intersection[1] * sy * 2, intersection[2] * sz * 2}

	lambda := (1 - ratio) * p.Length() / (0.5 * gradient.Length())
	correction := 0.0

	var xm, ym, zm, fn float64
	for range 64 {
		lambda -= correction

		xm = 1 / (1 + lambda*sx)
		ym = 1 / (1 + lambda*sy)
		zm = 1 / (1 + lambda*sz)

		xm2, ym2, zm2 := xm*xm, ym*ym, zm*zm
		xm3, ym3, zm3 := xm2*xm, ym2*ym, zm2*zm

		fn = x2*xm2 + y2*ym2 + z2*zm2 - 1
		if math.Abs(fn) <= convergence {
			break
		}

		denominator := x2*xm3*sx + y2*ym3*sy + z2*zm3*sz
		derivative := -2 * denominator
		correction = fn / derivative
	}

	return vec3.T{px * xm, py * ym, pz * zm}, true
}

// ScaleToGeodeticHeight moves p along its geodetic surface normal so that it
// sits height meters above the surface.
func (e *Ellipsoid) ScaleToGeodeticHeight(p vec3.T, height float64) (vec3.T, bool) {
	s, ok := e.ScaleToGeodeticSurface(p)
	if !ok {
		return p, false
	}
	n := e.GeodeticSurfaceNormal(s)
	n.Scale(height)
	return vec3.Add(&s, &n), true
}

// Height returns the signed geodetic height of p above the surface.
func (e *Ellipsoid) Height(p vec3.T) (float64, bool) {
	s, ok := e.ScaleToGeodeticSurface(p)
	if !ok {
		return 0, false
	}
	h := vec3.Sub(&p, &s)
	n := e.GeodeticSurfaceNormal(s)
	return vec3.Dot(&h, &n), true
}

// CartesianToCartographic converts a Cartesian position to geodetic
// coordinates. It reports false for positions near the center.
func (e *Ellipsoid) CartesianToCartographic(p vec3.T) (Cartographic, bool) {
	s, ok := e.ScaleToGeodeticSurface(p)
	if !ok {
		return Cartographic{}, false
	}
	n := e.GeodeticSurfaceNormal(s)
	h := vec3.Sub(&p, &s)

	height := h.Length()
	if vec3.Dot(&h, &p) < 0 {
		height = -height
	}
	return Cartographic{
		Longitude: math.Atan2(n[1], n[0]),
		Latitude:  math.Asin(n[2]),
		Height:    height,
	}, true
}
