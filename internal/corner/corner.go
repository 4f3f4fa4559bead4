// Package corner computes the joining geometry at interior path vertices.
//
// The geometry of a corner is derived once by Compute and then handed to a
// Joiner, one per policy:
//   - Miter: a single oblique ring at the vertex
//   - Round: rings rotated about the inner corner in fixed angular steps
//   - Bevel: two rings, one per adjacent segment, forming a flat chamfer
//
// The run arriving at a corner ends at Corner.Start and the run leaving it
// begins at Corner.End. Both points lie on the horizontal plane through the
// vertex, set back along each segment's horizontal direction by the distance
// at which the inner walls of the two segments meet. Every ring of a corner,
// including the run rings at Start and End, stands upright on the corner's
// Up at that same level. The inner side of the turn therefore collapses onto
// the pivot and only the outer side receives extra geometry.
package corner

import (
	"math"

	"github.com/gogpu/polyvolume/internal/frame"
	"github.com/gogpu/polyvolume/internal/polyline"
	"github.com/gogpu/polyvolume/internal/shape"
	"github.com/ungerik/go3d/float64/quaternion"
	"github.com/ungerik/go3d/float64/vec3"
)

// Policy selects how corners are joined.
type Policy int

const (
	// Mitered joins segments with a single sharp ring on the bisecting plane.
	Mitered Policy = iota
	// Rounded sweeps the outer side of the corner along a circular arc.
	Rounded
	// Beveled cuts the outer side of the corner with a flat face.
	Beveled
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Mitered:
		return "mitered"
	case Rounded:
		return "rounded"
	case Beveled:
		return "beveled"
	default:
		return "unknown"
	}
}

const (
	// DefaultMiterLimit bounds the stretch of a miter ring.
	DefaultMiterLimit = 4.0

	// DefaultRoundStep is the angular increment of rounded corners.
	DefaultRoundStep = 5 * math.Pi / 180
)

// UpFunc returns the local reference up direction at p.
type UpFunc func(p vec3.T) vec3.T

// Corner is the geometry of one interior path vertex.
type Corner struct {
	Point vec3.T

	// In and Out are the unit directions of the incoming and outgoing segments.
	In, Out vec3.T

	// InH and OutH are In and Out projected onto the plane orthogonal to Up.
	InH, OutH vec3.T

	// Up is the reference up direction at Point. All rings of the corner
	// share it.
	Up vec3.T

	// SideIn and SideOut point to the left of InH and OutH.
	SideIn, SideOut vec3.T

	// Angle is the turn angle in radians, in (0, pi).
	Angle float64

	// Turn is +1 for a left turn and -1 for a right turn.
	Turn float64

	// Axis is the unit rotation axis that carries InH onto OutH.
	Axis vec3.T

	Start, End, Pivot vec3.T
}

// Compute returns the corner at p between prev and next. extent is the
// cross-section whose inner half-width sets how far the corner reaches back
// along each segment. It reports false when the path goes straight through p.
func Compute(prev, p, next vec3.T, up UpFunc, extent shape.Shape) (Corner, bool) {
	in := polyline.Direction(prev, p)
	out := polyline.Direction(p, next)
	u := up(p)

	inH, okIn := polyline.Horizontal(in, u)
	outH, okOut := polyline.Horizontal(out, u)
	if !okIn || !okOut || polyline.Parallel(inH, outH) {
		return Corner{}, false
	}

	cos := math.Max(-1, math.Min(1, vec3.Dot(&inH, &outH)))
	angle := math.Acos(cos)

	axis := vec3.Cross(&inH, &outH)
	turn := 1.0
	if vec3.Dot(&axis, &u) < 0 {
		turn = -1
	}
	axis.Normalize()

	sideIn := vec3.Cross(&u, &inH)
	sideIn.Normalize()
	sideOut := vec3.Cross(&u, &outH)
	sideOut.Normalize()

	// The corner lies on the horizontal plane through p. Sloped segments are
	// measured by their horizontal length.
	cosIn := vec3.Dot(&in, &inH)
	cosOut := vec3.Dot(&out, &outH)
	lenIn := vec3.Sub(&p, &prev)
	lenOut := vec3.Sub(&next, &p)
	half := math.Tan(angle / 2)

	// Limited to half of the shorter segment so that neighboring corners
	// never overlap.
	setback := math.Min(extent.Extent(turn)*half, math.Min(lenIn.Length()*cosIn, lenOut.Length()*cosOut)/2)
	radius := setback / half

	back := inH.Scaled(-setback)
	ahead := outH.Scaled(setback)
	start := vec3.Add(&p, &back)
	end := vec3.Add(&p, &ahead)
	toPivot := sideIn.Scaled(turn * radius)
	pivot := vec3.Add(&start, &toPivot)

	return Corner{
		Point:   p,
		In:      in,
		Out:     out,
		InH:     inH,
		OutH:    outH,
		Up:      u,
		SideIn:  sideIn,
		SideOut: sideOut,
		Angle:   angle,
		Turn:    turn,
		Axis:    axis,
		Start:   start,
		End:     end,
		Pivot:   pivot,
	}, true
}

// Joiner emits the placement frames bridging a corner, in path order.
type Joiner interface {
	Join(c *Corner) []frame.Frame
}

// For returns the joiner implementing policy p. Unknown policies miter.
func For(p Policy) Joiner {
	switch p {
	case Rounded:
		return Round{Step: DefaultRoundStep}
	case Beveled:
		return Bevel{}
	default:
		return Miter{Limit: DefaultMiterLimit}
	}
}

// Miter places one ring at the vertex on the plane bisecting the turn.
// The ring is emitted twice, oriented for the incoming and then the outgoing
// segment, so that each adjacent wall owns its vertices.
type Miter struct {
	// Limit is the largest allowed stretch of the ring along its side axis.
	Limit float64
}

// Join implements Joiner.
func (m Miter) Join(c *Corner) []frame.Frame {
	side := vec3.Add(&c.SideIn, &c.SideOut)
	side.Normalize()

	stretch := 1 / vec3.Dot(&side, &c.SideIn)
	if m.Limit > 0 && stretch > m.Limit {
		stretch = m.Limit
	}

	normal := vec3.Add(&c.InH, &c.OutH)
	normal.Normalize()

	in := frame.Frame{
		Origin:  c.Point,
		Tangent: c.In,
		Side:    side,
		Up:      vec3.Cross(&normal, &side),
		Stretch: stretch,
	}
	out := in
	out.Tangent = c.Out
	return []frame.Frame{in, out}
}

// Round rotates the incoming ring about the pivot in steps of at most Step
// radians. Intermediate rings only are emitted, each twice; the rings at
// Start and End belong to the adjacent runs.
type Round struct {
	Step float64
}

// Steps returns the number of intermediate rings for a turn of angle radians.
func (r Round) Steps(angle float64) int {
	return max(1, int(math.Ceil(angle/r.Step)))
}

// Join implements Joiner.
func (r Round) Join(c *Corner) []frame.Frame {
	steps := r.Steps(c.Angle)
	delta := c.Angle / float64(steps+1)
	arm := vec3.Sub(&c.Start, &c.Pivot)

	frames := make([]frame.Frame, 0, 2*steps)
	for k := 1; k <= steps; k++ {
		q := quaternion.FromAxisAngle(&c.Axis, delta*float64(k))
		origin := q.RotatedVec3(&arm)
		origin.Add(&c.Pivot)
		tangent := q.RotatedVec3(&c.In)

		f := frame.New(origin, tangent, c.Up)
		frames = append(frames, f, f)
	}
	return frames
}

// Bevel emits the last ring of the incoming orientation at Start and the
// first ring of the outgoing orientation at End. The band between them is
// the chamfer.
type Bevel struct{}

// Join implements Joiner.
func (Bevel) Join(c *Corner) []frame.Frame {
	return []frame.Frame{
		frame.New(c.Start, c.In, c.Up),
		frame.New(c.End, c.Out, c.Up),
	}
}
