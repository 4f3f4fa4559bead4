package polyvolume

import (
	"math"

	"github.com/gogpu/polyvolume/ellipsoid"
)

// DefaultGranularity is the default largest angular length of a straight
// run piece, in radians.
const DefaultGranularity = math.Pi / 180

// Option configures a PolylineVolume during creation.
//
// Example:
//
//	v, err := polyvolume.New(positions, shape,
//	    polyvolume.WithCornerType(polyvolume.CornerRounded),
//	    polyvolume.WithVertexFormat(polyvolume.VertexFormatAll),
//	)
type Option func(*options)

type options struct {
	corner      CornerType
	format      VertexFormat
	granularity float64
	ellipsoid   *ellipsoid.Ellipsoid
	parallel    bool
	workers     int
}

func defaultOptions() options {
	return options{
		corner:      CornerMitered,
		format:      VertexFormatPositionOnly,
		granularity: DefaultGranularity,
		ellipsoid:   ellipsoid.WGS84,
	}
}

// WithCornerType sets the corner joining policy. The default is CornerMitered.
func WithCornerType(c CornerType) Option {
	return func(o *options) {
		o.corner = c
	}
}

// WithVertexFormat sets the computed vertex attributes.
// The default is VertexFormatPositionOnly.
func WithVertexFormat(f VertexFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithGranularity sets the largest angular length, in radians, of the pieces
// straight runs are split into. Rings are placed at every piece boundary so
// long segments follow the curvature of the ellipsoid. Zero or a negative
// value disables subdivision.
func WithGranularity(radians float64) Option {
	return func(o *options) {
		o.granularity = radians
	}
}

// WithEllipsoid sets the reference ellipsoid whose surface normal is the
// local up direction. The default is ellipsoid.WGS84. nil keeps the default.
func WithEllipsoid(e *ellipsoid.Ellipsoid) Option {
	return func(o *options) {
		if e != nil {
			o.ellipsoid = e
		}
	}
}

// WithWorkers fills the rings of large meshes on a pool of n goroutines.
// If n is 0 or negative, GOMAXPROCS workers are used. The output is identical
// to a sequential build.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.parallel = true
		o.workers = n
	}
}
