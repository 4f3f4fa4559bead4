package preview

import (
	"image/color"
	"testing"
)

// quad is a 2x2 square at x = 100 facing +x, toward a camera above it.
var quad = []float64{
	100, -1, -1,
	100, 1, -1,
	100, 1, 1,
	100, -1, 1,
}

func TestRender_FrontFacing(t *testing.T) {
	opts := DefaultOptions()
	img := Render(quad, []uint32{0, 1, 2, 0, 2, 3}, opts)

	if b := img.Bounds(); b.Dx() != opts.Width || b.Dy() != opts.Height {
		t.Fatalf("bounds = %v, want %dx%d", b, opts.Width, opts.Height)
	}
	// Off the shared diagonal, inside one triangle.
	if got := img.RGBAAt(opts.Width/2, opts.Height/2+40); got != opts.Fill {
		t.Errorf("inside = %v, want %v", got, opts.Fill)
	}
	if got := img.RGBAAt(2, 2); got != opts.Background {
		t.Errorf("corner = %v, want %v", got, opts.Background)
	}
}

func TestRender_BackFacingCulled(t *testing.T) {
	opts := DefaultOptions()
	img := Render(quad, []uint32{0, 2, 1, 0, 3, 2}, opts)

	if got := img.RGBAAt(opts.Width/2, opts.Height/2); got != opts.Background {
		t.Errorf("center = %v, want background %v", got, opts.Background)
	}
}

func TestRender_Empty(t *testing.T) {
	opts := Options{Width: 8, Height: 4, Background: color.RGBA{R: 1, A: 255}}
	img := Render(nil, nil, opts)
	for y := range 4 {
		for x := range 8 {
			if got := img.RGBAAt(x, y); got != opts.Background {
				t.Fatalf("pixel (%d, %d) = %v, want background", x, y, got)
			}
		}
	}
}

func TestShaded(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if got := shaded(c, 0.5); got != (color.RGBA{R: 100, G: 50, B: 25, A: 255}) {
		t.Errorf("shaded() = %v", got)
	}
	if got := shaded(c, 1); got != c {
		t.Errorf("shaded(1) = %v, want %v", got, c)
	}
}
