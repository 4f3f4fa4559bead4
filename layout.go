package polyvolume

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Shader locations of the vertex attributes. They are fixed whatever the
// format, so a shader written for one format reads a richer buffer unchanged.
const (
	LocationPosition = 0
	LocationST       = 1
	LocationNormal   = 2
	LocationTangent  = 3
	LocationBinormal = 4
)

// vertexAttributes returns the interleaved attributes present in the mesh,
// in buffer order, with their byte offsets.
func (m *Mesh) vertexAttributes() []gputypes.VertexAttribute {
	attrs := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: LocationPosition},
	}
	offset := gputypes.VertexFormatFloat32x3.Size()

	add := func(present bool, f gputypes.VertexFormat, location uint32) {
		if !present {
			return
		}
		attrs = append(attrs, gputypes.VertexAttribute{Format: f, Offset: offset, ShaderLocation: location})
		offset += f.Size()
	}
	a := &m.Attributes
	add(a.ST != nil, gputypes.VertexFormatFloat32x2, LocationST)
	add(a.Normal != nil, gputypes.VertexFormatFloat32x3, LocationNormal)
	add(a.Tangent != nil, gputypes.VertexFormatFloat32x3, LocationTangent)
	add(a.Binormal != nil, gputypes.VertexFormatFloat32x3, LocationBinormal)
	return attrs
}

// VertexBufferLayout describes the buffer produced by Interleave.
//
// Layout per vertex, each present attribute in order:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	st       (vec2<f32>) =  8 bytes (location 1)
//	normal   (vec3<f32>) = 12 bytes (location 2)
//	tangent  (vec3<f32>) = 12 bytes (location 3)
//	binormal (vec3<f32>) = 12 bytes (location 4)
func (m *Mesh) VertexBufferLayout() gputypes.VertexBufferLayout {
	attrs := m.vertexAttributes()
	last := attrs[len(attrs)-1]
	return gputypes.VertexBufferLayout{
		ArrayStride: last.Offset + last.Format.Size(),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// Interleave packs the vertex attributes into one little-endian float32
// buffer laid out as VertexBufferLayout describes. Positions are written
// relative to BoundingSphere.Center so that float32 keeps centimeter
// precision on ellipsoid-sized coordinates.
func (m *Mesh) Interleave() []byte {
	layout := m.VertexBufferLayout()
	stride := int(layout.ArrayStride)
	n := m.VertexCount()
	buf := make([]byte, n*stride)
	le := binary.LittleEndian

	pos := m.Attributes.Position.Values
	center := m.BoundingSphere.Center
	for v := range n {
		off := v * stride
		for c := range 3 {
			le.PutUint32(buf[off+4*c:], math.Float32bits(float32(pos[3*v+c]-center[c])))
		}
		off += 12

		for _, a := range []*Attribute[float32]{m.Attributes.ST, m.Attributes.Normal, m.Attributes.Tangent, m.Attributes.Binormal} {
			if a == nil {
				continue
			}
			k := a.ComponentsPerAttribute
			for c := range k {
				le.PutUint32(buf[off+4*c:], math.Float32bits(a.Values[k*v+c]))
			}
			off += 4 * k
		}
	}
	return buf
}

// IndexBytes packs the indices into a little-endian uint32 buffer.
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, 4*len(m.Indices))
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[4*i:], idx)
	}
	return buf
}
