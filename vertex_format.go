package polyvolume

import (
	"fmt"
	"strings"

	"github.com/gogpu/polyvolume/internal/mesh"
)

// VertexFormat selects the vertex attributes computed by CreateGeometry.
// Positions are always computed, whatever the value of Position.
type VertexFormat struct {
	Position bool
	ST       bool
	Normal   bool
	Tangent  bool
	Binormal bool
}

// Common vertex formats.
var (
	VertexFormatPositionOnly      = VertexFormat{Position: true}
	VertexFormatPositionAndNormal = VertexFormat{Position: true, Normal: true}
	VertexFormatPositionAndST     = VertexFormat{Position: true, ST: true}
	VertexFormatAll               = VertexFormat{Position: true, ST: true, Normal: true, Tangent: true, Binormal: true}
)

// ParseVertexFormat builds a format from attribute names: "position", "st",
// "normal", "tangent", "binormal", or "all". Names are case-insensitive.
func ParseVertexFormat(names []string) (VertexFormat, error) {
	f := VertexFormatPositionOnly
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "position":
		case "st":
			f.ST = true
		case "normal":
			f.Normal = true
		case "tangent":
			f.Tangent = true
		case "binormal":
			f.Binormal = true
		case "all":
			f = VertexFormatAll
		default:
			return VertexFormat{}, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
		}
	}
	return f, nil
}

// String lists the attribute names of the format, always starting with
// position.
func (f VertexFormat) String() string {
	names := []string{"position"}
	if f.ST {
		names = append(names, "st")
	}
	if f.Normal {
		names = append(names, "normal")
	}
	if f.Tangent {
		names = append(names, "tangent")
	}
	if f.Binormal {
		names = append(names, "binormal")
	}
	return strings.Join(names, "+")
}

func (f VertexFormat) mesh() mesh.Format {
	return mesh.Format{
		ST:       f.ST,
		Normal:   f.Normal,
		Tangent:  f.Tangent,
		Binormal: f.Binormal,
	}
}
