// Package preview draws a flat-shaded orthographic picture of a triangle mesh.
//
// The camera looks at the mesh from above its bounding box center, toward
// the origin, with world +z pointing up on screen when possible. Triangles
// are culled when they face away, sorted back to front and filled one by one
// with golang.org/x/image/vector.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/ungerik/go3d/float64/vec3"
	"golang.org/x/image/vector"
)

// Options configures Render.
type Options struct {
	Width, Height int

	// Margin is the empty border in pixels around the mesh.
	Margin int

	Background color.RGBA
	Fill       color.RGBA
}

// DefaultOptions returns a 512x512 view of a light mesh on a dark background.
func DefaultOptions() Options {
	return Options{
		Width:      512,
		Height:     512,
		Margin:     16,
		Background: color.RGBA{R: 24, G: 26, B: 32, A: 255},
		Fill:       color.RGBA{R: 96, G: 170, B: 255, A: 255},
	}
}

type camera struct {
	forward, right, up vec3.T
}

func newCamera(center vec3.T) camera {
	forward := center.Normalized()
	forward.Invert()
	if center.LengthSqr() == 0 {
		forward = vec3.T{0, 0, -1}
	}

	up := vec3.UnitZ
	if math.Abs(vec3.Dot(&up, &forward)) > 0.999 {
		up = vec3.UnitY
	}
	along := forward.Scaled(vec3.Dot(&up, &forward))
	up = vec3.Sub(&up, &along)
	up.Normalize()

	return camera{forward: forward, right: vec3.Cross(&forward, &up), up: up}
}

type face struct {
	pts   [3][2]float64
	depth float64
	shade float64
}

// Render draws the triangles of indices over positions (x, y, z triples).
func Render(positions []float64, indices []uint32, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)
	if len(positions) < 9 || len(indices) < 3 {
		return img
	}

	cam := newCamera(bboxCenter(positions))
	at := func(i uint32) vec3.T {
		return vec3.T{positions[3*i], positions[3*i+1], positions[3*i+2]}
	}

	faces := make([]face, 0, len(indices)/3)
	lo := [2]float64{math.Inf(1), math.Inf(1)}
	hi := [2]float64{math.Inf(-1), math.Inf(-1)}
	for i := 0; i+2 < len(indices); i += 3 {
		p := [3]vec3.T{at(indices[i]), at(indices[i+1]), at(indices[i+2])}
		e1 := vec3.Sub(&p[1], &p[0])
		e2 := vec3.Sub(&p[2], &p[0])
		n := vec3.Cross(&e1, &e2)
		if n.LengthSqr() == 0 {
			continue
		}
		n.Normalize()
		facing := -vec3.Dot(&n, &cam.forward)
		if facing <= 0 {
			continue
		}

		var f face
		for k := range 3 {
			f.pts[k] = [2]float64{vec3.Dot(&p[k], &cam.right), vec3.Dot(&p[k], &cam.up)}
			f.depth += vec3.Dot(&p[k], &cam.forward)
			for c := range 2 {
				lo[c] = math.Min(lo[c], f.pts[k][c])
				hi[c] = math.Max(hi[c], f.pts[k][c])
			}
		}
		f.shade = 0.3 + 0.7*facing
		faces = append(faces, f)
	}
	if len(faces) == 0 {
		return img
	}

	// Far faces first.
	sort.SliceStable(faces, func(a, b int) bool { return faces[a].depth > faces[b].depth })

	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	avail := float64(min(opts.Width, opts.Height) - 2*opts.Margin)
	scale := 1.0
	if span > 0 && avail > 0 {
		scale = avail / span
	}
	cx, cy := (lo[0]+hi[0])/2, (lo[1]+hi[1])/2
	toScreen := func(q [2]float64) (float64, float64) {
		return float64(opts.Width)/2 + (q[0]-cx)*scale, float64(opts.Height)/2 - (q[1]-cy)*scale
	}

	z := vector.NewRasterizer(1, 1)
	for _, f := range faces {
		var xs, ys [3]float64
		for k := range 3 {
			xs[k], ys[k] = toScreen(f.pts[k])
		}
		r := image.Rect(
			int(math.Floor(min(xs[0], xs[1], xs[2]))),
			int(math.Floor(min(ys[0], ys[1], ys[2]))),
			int(math.Ceil(max(xs[0], xs[1], xs[2])))+1,
			int(math.Ceil(max(ys[0], ys[1], ys[2])))+1,
		).Intersect(img.Bounds())
		if r.Empty() {
			continue
		}

		ox, oy := float64(r.Min.X), float64(r.Min.Y)
		z.Reset(r.Dx(), r.Dy())
		z.MoveTo(float32(xs[0]-ox), float32(ys[0]-oy))
		z.LineTo(float32(xs[1]-ox), float32(ys[1]-oy))
		z.LineTo(float32(xs[2]-ox), float32(ys[2]-oy))
		z.ClosePath()
		z.Draw(img, r, &image.Uniform{C: shaded(opts.Fill, f.shade)}, image.Point{})
	}
	return img
}

func bboxCenter(positions []float64) vec3.T {
	lo := vec3.T{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := vec3.T{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i+2 < len(positions); i += 3 {
		for c := range 3 {
			lo[c] = math.Min(lo[c], positions[i+c])
			hi[c] = math.Max(hi[c], positions[i+c])
		}
	}
	return vec3.Interpolate(&lo, &hi, 0.5)
}

func shaded(c color.RGBA, s float64) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(math.Round(float64(v) * s)) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
