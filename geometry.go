package polyvolume

import (
	"fmt"
	"slices"

	"github.com/gogpu/polyvolume/internal/mesh"
	"github.com/gogpu/polyvolume/internal/parallel"
	"github.com/gogpu/polyvolume/internal/polyline"
	"github.com/gogpu/polyvolume/internal/shape"
	"github.com/gogpu/polyvolume/internal/sweep"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// PolylineVolume is a request for the volume swept by a 2-D shape along a
// path of positions.
//
// Positions are Cartesian coordinates in the frame of the reference
// ellipsoid. The shape lies in the plane across the path: shape x points to
// the left of the direction of travel and shape y points away from the
// ellipsoid surface. Either winding is accepted.
//
// A PolylineVolume holds its own copies of the inputs and is safe for
// concurrent use.
type PolylineVolume struct {
	positions []vec3.T
	shape     []vec2.T
	opts      options
}

// New returns a request for the volume of shape swept along positions.
// It fails with ErrInvalidPath if positions is empty and ErrInvalidShape if
// shape is empty. Further validation happens in CreateGeometry.
func New(positions []vec3.T, shape []vec2.T, opts ...Option) (*PolylineVolume, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: no positions", ErrInvalidPath)
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: no shape positions", ErrInvalidShape)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &PolylineVolume{
		positions: slices.Clone(positions),
		shape:     slices.Clone(shape),
		opts:      o,
	}, nil
}

// CornerType returns the corner policy of the request.
func (v *PolylineVolume) CornerType() CornerType { return v.opts.corner }

// VertexFormat returns the vertex format of the request.
func (v *PolylineVolume) VertexFormat() VertexFormat { return v.opts.format }

// CreateGeometry computes the mesh of the volume. Each call is independent
// and returns a new Mesh.
func (v *PolylineVolume) CreateGeometry() (*Mesh, error) {
	m, err := v.createGeometry()
	if err != nil {
		Logger().Warn("polyvolume: geometry rejected", "err", err)
		return nil, err
	}
	return m, nil
}

// CreateGeometry computes the mesh of v. It is equivalent to
// v.CreateGeometry().
func CreateGeometry(v *PolylineVolume) (*Mesh, error) {
	return v.CreateGeometry()
}

func (v *PolylineVolume) createGeometry() (*Mesh, error) {
	e := v.opts.ellipsoid

	path := polyline.RemoveDuplicates(v.positions)
	if err := polyline.Validate(path, e); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	sh, err := shape.Normalize(v.shape)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}

	frames := sweep.Frames(path, sh, e, sweep.Options{
		Policy:      v.opts.corner.policy(),
		Granularity: v.opts.granularity,
	})

	var runner mesh.Runner
	workers := 0
	if v.opts.parallel && len(frames)*2*sh.Len() >= mesh.ParallelThreshold {
		pool := parallel.NewWorkerPool(v.opts.workers)
		defer pool.Close()
		runner = pool
		workers = pool.Workers()
	}

	buf, err := mesh.Build(frames, sh, v.opts.format.mesh(), runner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGeometry, err)
	}
	m := newMesh(buf)
	if err := m.Validate(); err != nil {
		return nil, err
	}

	Logger().Debug("polyvolume: geometry created",
		"corner", v.opts.corner,
		"format", v.opts.format,
		"positions", len(path),
		"rings", len(frames),
		"vertices", m.VertexCount(),
		"triangles", m.TriangleCount(),
		"workers", workers,
	)
	return m, nil
}
