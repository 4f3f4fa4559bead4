// Package shape normalizes the 2-D cross-section swept along a path.
//
// A normalized Shape has at least three distinct points, no consecutive
// duplicates and counter-clockwise winding. Every later stage relies on the
// winding: outward wall normals and cap orientation are derived from it.
package shape

import (
	"errors"
	"math"

	"github.com/rclancey/earcut"
	"github.com/ungerik/go3d/float64/vec2"
)

// epsilon is the absolute per-component tolerance for duplicate points.
const epsilon = 1e-7

var (
	// ErrDegenerate reports a shape with fewer than three distinct points or no area.
	ErrDegenerate = errors.New("shape: fewer than 3 distinct points")

	// ErrTriangulation reports that the cap triangulation failed.
	ErrTriangulation = errors.New("shape: triangulation failed")
)

// Shape is an immutable counter-clockwise polygon.
type Shape struct {
	points []vec2.T
}

// Normalize returns a counter-clockwise copy of points with consecutive
// duplicates removed. points is not modified.
func Normalize(points []vec2.T) (Shape, error) {
	pts := RemoveDuplicates(points)
	if len(pts) < 3 {
		return Shape{}, ErrDegenerate
	}

	area := SignedArea(pts)
	if math.Abs(area) <= epsilon*epsilon {
		return Shape{}, ErrDegenerate
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return Shape{points: pts}, nil
}

// RemoveDuplicates returns a copy of points without consecutive duplicates.
// A last point equal to the first is dropped as well.
func RemoveDuplicates(points []vec2.T) []vec2.T {
	out := make([]vec2.T, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && equal(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && equal(out[len(out)-1], out[0]) {
		out = out[:len(out)-1]
	}
	return out
}

func equal(a, b vec2.T) bool {
	return math.Abs(a[0]-b[0]) <= epsilon && math.Abs(a[1]-b[1]) <= epsilon
}

// SignedArea returns the shoelace area of the polygon.
// It is positive for counter-clockwise winding.
func SignedArea(points []vec2.T) float64 {
	area := 0.0
	n := len(points)
	for i := range n {
		a, b := points[i], points[(i+1)%n]
		area += a[0]*b[1] - b[0]*a[1]
	}
	return area / 2
}

// Len returns the number of points.
func (s Shape) Len() int { return len(s.points) }

// Point returns point i.
func (s Shape) Point(i int) vec2.T { return s.points[i] }

// Points returns a copy of the points.
func (s Shape) Points() []vec2.T {
	return append([]vec2.T(nil), s.points...)
}

// Edge returns the endpoints of edge i, which runs from point i to point i+1
// and wraps around at the end.
func (s Shape) Edge(i int) (vec2.T, vec2.T) {
	return s.points[i], s.points[(i+1)%len(s.points)]
}

// EdgeNormal returns the outward unit normal of edge i.
func (s Shape) EdgeNormal(i int) vec2.T {
	a, b := s.Edge(i)
	d := vec2.Sub(&b, &a)
	n := vec2.T{d[1], -d[0]}
	return n.Normalized()
}

// Perimeter returns the cumulative length at the start of each edge and the
// total perimeter. offsets[i] is the distance from point 0 to point i.
func (s Shape) Perimeter() (offsets []float64, total float64) {
	offsets = make([]float64, len(s.points))
	for i := range s.points {
		offsets[i] = total
		a, b := s.Edge(i)
		d := vec2.Sub(&b, &a)
		total += d.Length()
	}
	return offsets, total
}

// Bounds returns the axis-aligned bounding box of the shape.
func (s Shape) Bounds() (lo, hi vec2.T) {
	lo = vec2.T{math.Inf(1), math.Inf(1)}
	hi = vec2.T{math.Inf(-1), math.Inf(-1)}
	for _, p := range s.points {
		lo[0] = math.Min(lo[0], p[0])
		lo[1] = math.Min(lo[1], p[1])
		hi[0] = math.Max(hi[0], p[0])
		hi[1] = math.Max(hi[1], p[1])
	}
	return lo, hi
}

// Extent returns how far the shape reaches from its origin along the x axis
// in the direction of sign (+1 or -1). It is zero when the shape does not
// cross to that side.
func (s Shape) Extent(sign float64) float64 {
	ext := 0.0
	for _, p := range s.points {
		ext = math.Max(ext, p[0]*sign)
	}
	return ext
}

// Triangulate splits the shape into triangles over its point indices.
// Every triangle is returned counter-clockwise.
func (s Shape) Triangulate() ([][3]int, error) {
	coords := make([]float64, 0, len(s.points)*2)
	for _, p := range s.points {
		coords = append(coords, p[0], p[1])
	}

	indices, err := earcut.Earcut(coords, nil, 2)
	if err != nil {
		return nil, errors.Join(ErrTriangulation, err)
	}
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, ErrTriangulation
	}

	tris := make([][3]int, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		tri := [3]int{indices[i], indices[i+1], indices[i+2]}
		a, b, c := s.points[tri[0]], s.points[tri[1]], s.points[tri[2]]
		if (b[0]-a[0])*(c[1]-a[1])-(c[0]-a[0])*(b[1]-a[1]) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		tris = append(tris, tri)
	}
	return tris, nil
}
