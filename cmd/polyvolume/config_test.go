package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/polyvolume"
)

const sample = `
path:
  - [-90, 0, 0]
  - [-90.1, 0]
  - [-90.1, 0.1, 0]
shape: [[-5000, -5000], [5000, -5000], [5000, 5000], [-5000, 5000]]
corner: rounded
vertex_format: [position, normal]
granularity_degrees: 0.5
workers: 2
`

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(sample))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if len(req.Path) != 3 || len(req.Path[1]) != 2 {
		t.Errorf("Path = %v, want 3 points", req.Path)
	}
	if len(req.Shape) != 4 || req.Shape[1] != [2]float64{5000, -5000} {
		t.Errorf("Shape = %v", req.Shape)
	}
	if req.Corner != "rounded" || req.GranularityDegrees != 0.5 || req.Workers != 2 {
		t.Errorf("Request = %+v", req)
	}
}

func TestParseRequest_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no path", "shape: [[0, 0], [1, 0], [0, 1]]", "no path"},
		{"no shape", "path: [[0, 0]]", "no shape"},
		{"bad yaml", "path: [", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseRequest() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRequest_Volume(t *testing.T) {
	req, err := ParseRequest([]byte(sample))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	v, err := req.Volume()
	if err != nil {
		t.Fatalf("Volume() error = %v", err)
	}
	if v.CornerType() != polyvolume.CornerRounded {
		t.Errorf("CornerType() = %v, want rounded", v.CornerType())
	}
	if v.VertexFormat() != polyvolume.VertexFormatPositionAndNormal {
		t.Errorf("VertexFormat() = %v, want position+normal", v.VertexFormat())
	}
	m, err := v.CreateGeometry()
	if err != nil {
		t.Fatalf("CreateGeometry() error = %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestRequest_VolumeErrors(t *testing.T) {
	base := func() Request {
		return Request{
			Path:  [][]float64{{0, 0}, {1, 0}},
			Shape: [][2]float64{{-1, -1}, {1, -1}, {0, 1}},
		}
	}
	tests := []struct {
		name   string
		modify func(*Request)
		target error
	}{
		{"corner", func(r *Request) { r.Corner = "chamfer" }, polyvolume.ErrUnknownCornerType},
		{"attribute", func(r *Request) { r.VertexFormat = []string{"color"} }, polyvolume.ErrUnknownAttribute},
		{"ellipsoid", func(r *Request) { r.Ellipsoid = "mars" }, nil},
		{"point size", func(r *Request) { r.Path[1] = []float64{1} }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base()
			tt.modify(&r)
			_, err := r.Volume()
			if err == nil {
				t.Fatal("Volume() error = nil")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Volume() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestLoadRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volume.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRequest(path); err != nil {
		t.Errorf("LoadRequest() error = %v", err)
	}
	if _, err := LoadRequest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadRequest(missing) error = nil")
	}
}
