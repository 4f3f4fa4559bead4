// Package polyline validates and subdivides sweep paths given in
// ellipsoid-fixed Cartesian coordinates.
package polyline

import (
	"errors"
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

const (
	relativeEpsilon = 1e-10
	absoluteEpsilon = 1e-7

	// parallelEpsilon is the tolerance on |cos| for treating two projected
	// directions as parallel.
	parallelEpsilon = 1e-7

	// MaxPieces bounds the number of pieces Subdivide splits one run into.
	MaxPieces = 1 << 16
)

var (
	// ErrTooFewPositions reports a path with fewer than two distinct positions.
	ErrTooFewPositions = errors.New("polyline: fewer than 2 distinct positions")

	// ErrReversal reports a corner where the path doubles back on itself.
	ErrReversal = errors.New("polyline: path reverses direction")

	// ErrVerticalSegment reports a segment parallel to the local surface normal.
	ErrVerticalSegment = errors.New("polyline: segment has no horizontal direction")

	// ErrNoSurfaceNormal reports a position too close to the center of the
	// surface to have a defined up direction.
	ErrNoSurfaceNormal = errors.New("polyline: position has no surface normal")
)

// Surface is the reference surface the path is defined over.
// *ellipsoid.Ellipsoid implements it.
type Surface interface {
	GeodeticSurfaceNormal(p vec3.T) vec3.T
	ScaleToGeodeticSurface(p vec3.T) (vec3.T, bool)
	MaximumRadius() float64
}

// RemoveDuplicates returns a copy of positions without consecutive duplicates.
func RemoveDuplicates(positions []vec3.T) []vec3.T {
	out := make([]vec3.T, 0, len(positions))
	for _, p := range positions {
		if len(out) > 0 && equal(&out[len(out)-1], &p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func equal(a, b *vec3.T) bool {
	for i := range 3 {
		d := math.Abs(a[i] - b[i])
		if d <= absoluteEpsilon {
			continue
		}
		if d > relativeEpsilon*math.Max(math.Abs(a[i]), math.Abs(b[i])) {
			return false
		}
	}
	return true
}

// Validate checks a deduplicated path. It rejects paths with fewer than two
// positions, positions near the center of s, segments without a horizontal
// component and corners that turn back by 180 degrees.
func Validate(positions []vec3.T, s Surface) error {
	if len(positions) < 2 {
		return ErrTooFewPositions
	}

	for _, p := range positions {
		if _, ok := s.ScaleToGeodeticSurface(p); !ok {
			return ErrNoSurfaceNormal
		}
	}

	for i := 0; i+1 < len(positions); i++ {
		up := s.GeodeticSurfaceNormal(positions[i])
		if _, ok := Horizontal(Direction(positions[i], positions[i+1]), up); !ok {
			return ErrVerticalSegment
		}
	}

	for i := 1; i+1 < len(positions); i++ {
		up := s.GeodeticSurfaceNormal(positions[i])
		in, _ := Horizontal(Direction(positions[i-1], positions[i]), up)
		out, _ := Horizontal(Direction(positions[i], positions[i+1]), up)
		if vec3.Dot(&in, &out) < parallelEpsilon-1 {
			return ErrReversal
		}
	}
	return nil
}

// Direction returns the unit vector from a to b.
func Direction(a, b vec3.T) vec3.T {
	d := vec3.Sub(&b, &a)
	return d.Normalized()
}

// Horizontal projects d onto the plane orthogonal to up and normalizes it.
// It reports false when d is parallel to up.
func Horizontal(d, up vec3.T) (vec3.T, bool) {
	v := up.Scaled(vec3.Dot(&d, &up))
	h := vec3.Sub(&d, &v)
	if h.LengthSqr() < parallelEpsilon*parallelEpsilon {
		return vec3.T{}, false
	}
	return h.Normalized(), true
}

// Parallel reports whether two unit directions are parallel within tolerance,
// either way round.
func Parallel(a, b vec3.T) bool {
	return math.Abs(math.Abs(vec3.Dot(&a, &b))-1) <= parallelEpsilon
}

// Subdivide returns the positions of a run from a to b, both included.
// The run is split into pieces no longer than granularity radians at the
// surface's maximum radius, interpolated along the surface with the geodetic
// height varying linearly. Non-positive granularity disables subdivision.
// A run never has more than MaxPieces pieces.
func Subdivide(a, b vec3.T, granularity float64, s Surface) []vec3.T {
	pieces := 1
	if granularity > 0 {
		d := vec3.Sub(&b, &a)
		n := math.Ceil(d.Length() / (granularity * s.MaximumRadius()))
		pieces = int(math.Max(1, math.Min(n, MaxPieces)))
	}

	out := make([]vec3.T, pieces+1)
	out[0], out[pieces] = a, b
	if pieces == 1 {
		return out
	}

	ha, okA := height(a, s)
	hb, okB := height(b, s)
	for i := 1; i < pieces; i++ {
		t := float64(i) / float64(pieces)
		q := vec3.Interpolate(&a, &b, t)
		if okA && okB {
			if sq, ok := s.ScaleToGeodeticSurface(q); ok {
				n := s.GeodeticSurfaceNormal(sq)
				n.Scale(ha + (hb-ha)*t)
				q = vec3.Add(&sq, &n)
			}
		}
		out[i] = q
	}
	return out
}

func height(p vec3.T, s Surface) (float64, bool) {
	sp, ok := s.ScaleToGeodeticSurface(p)
	if !ok {
		return 0, false
	}
	d := vec3.Sub(&p, &sp)
	n := s.GeodeticSurfaceNormal(sp)
	return vec3.Dot(&d, &n), true
}
