package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/polyvolume"
	"github.com/gogpu/polyvolume/ellipsoid"
)

// Request describes one volume to build.
//
//	path:
//	  - [-90, 0, 0]      # longitude, latitude in degrees, height in meters
//	  - [-90.1, 0, 0]
//	shape: [[-5000, -5000], [5000, -5000], [5000, 5000], [-5000, 5000]]
//	corner: rounded
//	vertex_format: [position, normal]
type Request struct {
	Path         [][]float64  `yaml:"path"`
	Shape        [][2]float64 `yaml:"shape"`
	Corner       string       `yaml:"corner"`
	VertexFormat []string     `yaml:"vertex_format"`
	Ellipsoid    string       `yaml:"ellipsoid"`

	// GranularityDegrees caps the angle between subdivided rings.
	// Zero keeps the default, negative disables subdivision.
	GranularityDegrees float64 `yaml:"granularity_degrees"`

	// Workers enables the parallel ring fill. Negative uses GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// LoadRequest reads a YAML request file.
func LoadRequest(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	return ParseRequest(data)
}

// ParseRequest decodes a YAML request.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	if len(req.Path) == 0 {
		return nil, errors.New("request has no path")
	}
	if len(req.Shape) == 0 {
		return nil, errors.New("request has no shape")
	}
	return &req, nil
}

func (r *Request) ellipsoid() (*ellipsoid.Ellipsoid, error) {
	switch strings.ToLower(strings.TrimSpace(r.Ellipsoid)) {
	case "", "wgs84":
		return ellipsoid.WGS84, nil
	case "unit", "unit_sphere":
		return ellipsoid.UnitSphere, nil
	default:
		return nil, fmt.Errorf("unknown ellipsoid %q", r.Ellipsoid)
	}
}

// Volume converts the request into a polyline volume.
func (r *Request) Volume() (*polyvolume.PolylineVolume, error) {
	e, err := r.ellipsoid()
	if err != nil {
		return nil, err
	}
	corner, err := polyvolume.ParseCornerType(r.Corner)
	if err != nil {
		return nil, err
	}
	format, err := polyvolume.ParseVertexFormat(r.VertexFormat)
	if err != nil {
		return nil, err
	}

	positions := make([]vec3.T, len(r.Path))
	for i, p := range r.Path {
		if len(p) < 2 || len(p) > 3 {
			return nil, fmt.Errorf("path[%d]: want [longitude, latitude] or [longitude, latitude, height], got %d values", i, len(p))
		}
		var height float64
		if len(p) == 3 {
			height = p[2]
		}
		positions[i] = e.CartographicToCartesian(ellipsoid.FromDegrees(p[0], p[1], height))
	}

	shape := make([]vec2.T, len(r.Shape))
	for i, p := range r.Shape {
		shape[i] = vec2.T{p[0], p[1]}
	}

	opts := []polyvolume.Option{
		polyvolume.WithEllipsoid(e),
		polyvolume.WithCornerType(corner),
		polyvolume.WithVertexFormat(format),
	}
	switch {
	case r.GranularityDegrees < 0:
		opts = append(opts, polyvolume.WithGranularity(0))
	case r.GranularityDegrees > 0:
		opts = append(opts, polyvolume.WithGranularity(r.GranularityDegrees*math.Pi/180))
	}
	if r.Workers != 0 {
		opts = append(opts, polyvolume.WithWorkers(r.Workers))
	}
	return polyvolume.New(positions, shape, opts...)
}
