// Package mesh assembles ring frames and a cross-section into flat-shaded
// vertex and index buffers.
//
// Every face owns its vertex copies. A ring of a k-point shape holds 2k
// vertices: pair (2j, 2j+1) carries edge j from point j to point j+1, so each
// wall quad has its own normal. The rings are followed by the start cap and
// then the end cap, k vertices each.
package mesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/polyvolume/internal/frame"
	"github.com/gogpu/polyvolume/internal/shape"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// ParallelThreshold is the number of ring vertices from which ring fills are
// handed to a Runner.
const ParallelThreshold = 4096

// chunkVertices is the approximate number of ring vertices per parallel chunk.
const chunkVertices = 1024

// ErrDegenerate reports input that cannot produce a closed volume.
var ErrDegenerate = errors.New("mesh: fewer than 2 rings or 3 shape points")

// Format selects the optional vertex attributes. Positions are always built.
type Format struct {
	ST       bool
	Normal   bool
	Tangent  bool
	Binormal bool
}

// Buffers holds the assembled mesh. Optional buffers are nil unless requested.
type Buffers struct {
	Positions []float64
	ST        []float32
	Normals   []float32
	Tangents  []float32
	Binormals []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (b *Buffers) VertexCount() int {
	return len(b.Positions) / 3
}

// Runner splits [0, n) into chunks of at most grain and calls fn on each,
// returning when all are done. *parallel.WorkerPool implements it.
type Runner interface {
	Range(n, grain int, fn func(lo, hi int))
}

// Sizes returns the vertex and index counts of a mesh with the given number
// of rings, shape points and cap triangles.
func Sizes(rings, points, capTriangles int) (vertices, indices int) {
	vertices = rings*2*points + 2*points
	indices = 3 * ((rings-1)*2*points + 2*capTriangles)
	return vertices, indices
}

type builder struct {
	frames []frame.Frame
	shape  shape.Shape
	format Format
	out    *Buffers

	k         int       // shape points
	stride    int       // vertices per ring
	points    []vec2.T  // shape points, for the caps
	corners   []vec2.T  // both endpoints of every edge, in ring vertex order
	distances []float64 // cumulative ring origin distance
	length    float64
	offsets   []float64 // cumulative perimeter at each point
	perimeter float64
	normals   []vec2.T // outward edge normals
}

// Build assembles the mesh. A nil runner, or a mesh below ParallelThreshold
// ring vertices, is filled on the calling goroutine. The output does not
// depend on the runner.
func Build(frames []frame.Frame, sh shape.Shape, f Format, r Runner) (*Buffers, error) {
	if len(frames) < 2 || sh.Len() < 3 {
		return nil, ErrDegenerate
	}
	tris, err := sh.Triangulate()
	if err != nil {
		return nil, fmt.Errorf("mesh: cap: %w", err)
	}

	b := newBuilder(frames, sh, f, len(tris))
	rings := len(frames)

	if r != nil && rings*b.stride >= ParallelThreshold {
		grain := max(1, chunkVertices/b.stride)
		r.Range(rings, grain, b.fillRings)
	} else {
		b.fillRings(0, rings)
	}
	b.fillCaps(tris)
	return b.out, nil
}

func newBuilder(frames []frame.Frame, sh shape.Shape, f Format, capTriangles int) *builder {
	k := sh.Len()
	vertices, indices := Sizes(len(frames), k, capTriangles)

	out := &Buffers{
		Positions: make([]float64, 3*vertices),
		Indices:   make([]uint32, indices),
	}
	if f.ST {
		out.ST = make([]float32, 2*vertices)
	}
	if f.Normal {
		out.Normals = make([]float32, 3*vertices)
	}
	if f.Tangent {
		out.Tangents = make([]float32, 3*vertices)
	}
	if f.Binormal {
		out.Binormals = make([]float32, 3*vertices)
	}

	b := &builder{
		frames: frames,
		shape:  sh,
		format: f,
		out:    out,
		k:      k,
		stride: 2 * k,
	}

	b.distances = make([]float64, len(frames))
	for i := 1; i < len(frames); i++ {
		d := vec3.Sub(&frames[i].Origin, &frames[i-1].Origin)
		b.distances[i] = b.distances[i-1] + d.Length()
	}
	b.length = b.distances[len(frames)-1]
	b.offsets, b.perimeter = sh.Perimeter()

	b.points = sh.Points()
	b.corners = make([]vec2.T, 0, 2*k)
	b.normals = make([]vec2.T, k)
	for j := range k {
		p0, p1 := sh.Edge(j)
		b.corners = append(b.corners, p0, p1)
		b.normals[j] = sh.EdgeNormal(j)
	}
	return b
}

// fillRings writes the vertices of rings [lo, hi) and the wall triangles
// leaving each of them. Rings write disjoint ranges of every buffer.
func (b *builder) fillRings(lo, hi int) {
	for r := lo; r < hi; r++ {
		b.fillRing(r)
		if r+1 < len(b.frames) {
			b.fillWall(r)
		}
	}
}

func (b *builder) fillRing(r int) {
	f := &b.frames[r]
	base := r * b.stride

	s := 0.0
	if b.length > 0 {
		s = b.distances[r] / b.length
	}

	f.Transport(b.corners, b.out.Positions[3*base:3*(base+b.stride)])

	for j := range b.k {
		v := base + 2*j
		if b.format.ST {
			t0 := b.offsets[j] / b.perimeter
			t1 := 1.0
			if j+1 < b.k {
				t1 = b.offsets[j+1] / b.perimeter
			}
			b.setST(v, s, t0)
			b.setST(v+1, s, t1)
		}

		if b.format.Normal || b.format.Tangent || b.format.Binormal {
			n := f.Normal(b.normals[j])
			t := f.Tangent.Normalized()
			b.setBasis(v, n, t)
			b.setBasis(v+1, n, t)
		}
	}
}

// fillWall writes the two triangles of every edge between ring r and r+1.
func (b *builder) fillWall(r int) {
	idx := r * 6 * b.k
	for j := range b.k {
		a0 := uint32(r*b.stride + 2*j)
		b0 := a0 + 1
		a1 := a0 + uint32(b.stride)
		b1 := b0 + uint32(b.stride)
		copy(b.out.Indices[idx:], []uint32{a0, b0, b1, a0, b1, a1})
		idx += 6
	}
}

// fillCaps writes both caps. The end cap faces ahead of the last ring plane
// and uses the counter-clockwise triangulation as is; the start cap faces
// back and is reversed.
func (b *builder) fillCaps(tris [][3]int) {
	rings := len(b.frames)
	first, last := &b.frames[0], &b.frames[rings-1]
	startBase := rings * b.stride
	endBase := startBase + b.k

	lo, hi := b.shape.Bounds()
	size := vec2.Sub(&hi, &lo)

	back := first.PlaneNormal()
	back.Normalize()
	back.Invert()
	ahead := last.PlaneNormal()
	ahead.Normalize()
	firstSide, _ := first.AttributeBasis()
	lastSide, _ := last.AttributeBasis()

	first.Transport(b.points, b.out.Positions[3*startBase:3*(startBase+b.k)])
	last.Transport(b.points, b.out.Positions[3*endBase:3*(endBase+b.k)])

	for i, p := range b.points {
		if b.format.ST {
			s := (p[0] - lo[0]) / size[0]
			t := (p[1] - lo[1]) / size[1]
			b.setST(startBase+i, s, t)
			b.setST(endBase+i, s, t)
		}
		if b.format.Normal || b.format.Tangent || b.format.Binormal {
			b.setBasis(startBase+i, back, firstSide)
			b.setBasis(endBase+i, ahead, lastSide)
		}
	}

	start := b.out.Indices[(rings-1)*6*b.k:]
	end := start[3*len(tris):]
	for i, tri := range tris {
		start[3*i] = uint32(startBase + tri[0])
		start[3*i+1] = uint32(startBase + tri[2])
		start[3*i+2] = uint32(startBase + tri[1])
		end[3*i] = uint32(endBase + tri[0])
		end[3*i+1] = uint32(endBase + tri[1])
		end[3*i+2] = uint32(endBase + tri[2])
	}
}

func (b *builder) setST(v int, s, t float64) {
	b.out.ST[2*v] = float32(s)
	b.out.ST[2*v+1] = float32(t)
}

func (b *builder) setBasis(v int, n, t vec3.T) {
	if b.format.Normal {
		put3(b.out.Normals, v, n)
	}
	if b.format.Tangent {
		put3(b.out.Tangents, v, t)
	}
	if b.format.Binormal {
		put3(b.out.Binormals, v, vec3.Cross(&n, &t))
	}
}

func put3(dst []float32, v int, x vec3.T) {
	dst[3*v] = float32(x[0])
	dst[3*v+1] = float32(x[1])
	dst[3*v+2] = float32(x[2])
}
