// Package sweep walks a validated path and emits the placement frame of every
// ring in path order.
//
// The path is split into straight runs separated by corners. Each run places
// a ring at both of its ends and at every granularity step in between. Each
// corner contributes the frames of its joiner. A collinear interior vertex is
// not a corner: the run simply ends there and the next one starts.
package sweep

import (
	"github.com/gogpu/polyvolume/internal/corner"
	"github.com/gogpu/polyvolume/internal/frame"
	"github.com/gogpu/polyvolume/internal/polyline"
	"github.com/gogpu/polyvolume/internal/shape"
	"github.com/ungerik/go3d/float64/vec3"
)

// Options configures a sweep.
type Options struct {
	// Policy selects the corner joiner.
	Policy corner.Policy

	// Granularity is the largest angular length of a run piece in radians,
	// measured at the surface's maximum radius. Zero disables subdivision.
	Granularity float64
}

// walker accumulates frames along the path.
type walker struct {
	surface     polyline.Surface
	granularity float64
	frames      []frame.Frame
}

// Frames returns the ring frames of a sweep of sh along path. The path must
// have passed polyline.Validate against s.
func Frames(path []vec3.T, sh shape.Shape, s polyline.Surface, opts Options) []frame.Frame {
	w := &walker{
		surface:     s,
		granularity: opts.Granularity,
		frames:      make([]frame.Frame, 0, 2*len(path)),
	}
	joiner := corner.For(opts.Policy)

	start, startUp := path[0], w.up(path[0])
	for i := 1; i+1 < len(path); i++ {
		dir := polyline.Direction(path[i-1], path[i])
		c, ok := corner.Compute(path[i-1], path[i], path[i+1], w.up, sh)
		if !ok {
			up := w.up(path[i])
			w.run(start, path[i], dir, startUp, up)
			start, startUp = path[i], up
			continue
		}
		w.run(start, c.Start, dir, startUp, c.Up)
		w.frames = append(w.frames, joiner.Join(&c)...)
		start, startUp = c.End, c.Up
	}

	last := len(path) - 1
	w.run(start, path[last], polyline.Direction(path[last-1], path[last]), startUp, w.up(path[last]))
	return w.frames
}

func (w *walker) up(p vec3.T) vec3.T {
	return w.surface.GeodeticSurfaceNormal(p)
}

// run places rings from a to b. The end rings travel along dir, the segment
// direction, so that a run shortened to nothing by its corners keeps a
// well-defined orientation. They stand on upA and upB, which at a corner is
// the corner's own up so that they line up with the joiner's rings.
// Intermediate rings follow the subdivided curve and the local surface.
func (w *walker) run(a, b, dir, upA, upB vec3.T) {
	pts := polyline.Subdivide(a, b, w.granularity, w.surface)
	last := len(pts) - 1
	for i, p := range pts {
		switch i {
		case 0:
			w.frames = append(w.frames, frame.New(p, dir, upA))
		case last:
			w.frames = append(w.frames, frame.New(p, dir, upB))
		default:
			t := polyline.Direction(pts[i-1], pts[i+1])
			w.frames = append(w.frames, frame.New(p, t, w.up(p)))
		}
	}
}
