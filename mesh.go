package polyvolume

import (
	"fmt"
	"math"

	"github.com/gogpu/polyvolume/internal/mesh"
	"github.com/ungerik/go3d/float64/vec3"
)

// Attribute is one per-vertex attribute buffer.
type Attribute[T float32 | float64] struct {
	// Name is the attribute name: position, st, normal, tangent or binormal.
	Name string

	// ComponentsPerAttribute is the number of values per vertex.
	ComponentsPerAttribute int

	// Values holds ComponentsPerAttribute values per vertex.
	Values []T
}

// Count returns the number of vertices in the buffer.
func (a *Attribute[T]) Count() int {
	if a == nil || a.ComponentsPerAttribute == 0 {
		return 0
	}
	return len(a.Values) / a.ComponentsPerAttribute
}

// Attributes holds the vertex attribute buffers of a Mesh. Attributes that
// were not requested are nil.
type Attributes struct {
	Position *Attribute[float64]
	ST       *Attribute[float32]
	Normal   *Attribute[float32]
	Tangent  *Attribute[float32]
	Binormal *Attribute[float32]
}

// BoundingSphere encloses every vertex position of a Mesh.
type BoundingSphere struct {
	Center vec3.T
	Radius float64
}

// Mesh is a flat-shaded triangle mesh. Every face owns its vertices, so wall
// faces, corner faces and caps never share a vertex.
//
// A Mesh is not modified after CreateGeometry returns it.
type Mesh struct {
	Attributes     Attributes
	Indices        []uint32
	BoundingSphere BoundingSphere
}

func newMesh(b *mesh.Buffers) *Mesh {
	m := &Mesh{
		Attributes: Attributes{
			Position: &Attribute[float64]{Name: "position", ComponentsPerAttribute: 3, Values: b.Positions},
		},
		Indices: b.Indices,
	}
	if b.ST != nil {
		m.Attributes.ST = &Attribute[float32]{Name: "st", ComponentsPerAttribute: 2, Values: b.ST}
	}
	if b.Normals != nil {
		m.Attributes.Normal = &Attribute[float32]{Name: "normal", ComponentsPerAttribute: 3, Values: b.Normals}
	}
	if b.Tangents != nil {
		m.Attributes.Tangent = &Attribute[float32]{Name: "tangent", ComponentsPerAttribute: 3, Values: b.Tangents}
	}
	if b.Binormals != nil {
		m.Attributes.Binormal = &Attribute[float32]{Name: "binormal", ComponentsPerAttribute: 3, Values: b.Binormals}
	}
	m.BoundingSphere = boundingSphere(b.Positions)
	return m
}

// boundingSphere returns the sphere centered on the bounding box of the
// positions that reaches the farthest position.
func boundingSphere(positions []float64) BoundingSphere {
	if len(positions) < 3 {
		return BoundingSphere{}
	}
	lo := vec3.T{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := vec3.T{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i+2 < len(positions); i += 3 {
		for c := range 3 {
			lo[c] = math.Min(lo[c], positions[i+c])
			hi[c] = math.Max(hi[c], positions[i+c])
		}
	}
	center := vec3.Interpolate(&lo, &hi, 0.5)

	radius := 0.0
	for i := 0; i+2 < len(positions); i += 3 {
		p := vec3.T{positions[i], positions[i+1], positions[i+2]}
		d := vec3.Sub(&p, &center)
		radius = math.Max(radius, d.LengthSqr())
	}
	return BoundingSphere{Center: center, Radius: math.Sqrt(radius)}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return m.Attributes.Position.Count()
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that every present attribute has one entry per vertex and
// that every index refers to a vertex.
func (m *Mesh) Validate() error {
	n := m.VertexCount()
	if n == 0 {
		return fmt.Errorf("%w: no vertices", ErrInvalidGeometry)
	}
	for _, a := range []*Attribute[float32]{m.Attributes.ST, m.Attributes.Normal, m.Attributes.Tangent, m.Attributes.Binormal} {
		if a != nil && a.Count() != n {
			return fmt.Errorf("%w: %s has %d vertices, want %d", ErrInvalidGeometry, a.Name, a.Count(), n)
		}
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrInvalidGeometry, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d is %d, want < %d", ErrInvalidGeometry, i, idx, n)
		}
	}
	return nil
}
