package corner

import (
	"math"
	"testing"

	"github.com/gogpu/polyvolume/internal/frame"
	"github.com/gogpu/polyvolume/internal/shape"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

func flatUp(vec3.T) vec3.T { return vec3.UnitZ }

func square(t *testing.T, half float64) shape.Shape {
	t.Helper()
	s, err := shape.Normalize([]vec2.T{{-half, -half}, {half, -half}, {half, half}, {-half, half}})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	return s
}

func near(a, b vec3.T, tol float64) bool {
	d := vec3.Sub(&a, &b)
	return d.Length() <= tol
}

// leftTurn is a 90 degree left turn at (10, 0, 0) on the z=0 plane.
func leftTurn(t *testing.T) Corner {
	t.Helper()
	c, ok := Compute(vec3.T{0, 0, 0}, vec3.T{10, 0, 0}, vec3.T{10, 10, 0}, flatUp, square(t, 1))
	if !ok {
		t.Fatal("Compute() reported a straight corner")
	}
	return c
}

func TestCompute_LeftTurn(t *testing.T) {
	c := leftTurn(t)

	if math.Abs(c.Angle-math.Pi/2) > 1e-12 {
		t.Errorf("Angle = %v, want pi/2", c.Angle)
	}
	if c.Turn != 1 {
		t.Errorf("Turn = %v, want 1", c.Turn)
	}
	if !near(c.Axis, vec3.UnitZ, 1e-12) {
		t.Errorf("Axis = %v, want +z", c.Axis)
	}

	checks := []struct {
		name      string
		got, want vec3.T
	}{
		{"Start", c.Start, vec3.T{9, 0, 0}},
		{"End", c.End, vec3.T{10, 1, 0}},
		{"Pivot", c.Pivot, vec3.T{9, 1, 0}},
		{"SideIn", c.SideIn, vec3.UnitY},
		{"SideOut", c.SideOut, vec3.T{-1, 0, 0}},
	}
	for _, tt := range checks {
		if !near(tt.got, tt.want, 1e-9) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCompute_RightTurnUsesOtherExtent(t *testing.T) {
	// Shape reaches 2 to the right (-x) and 1 to the left (+x).
	s, err := shape.Normalize([]vec2.T{{-2, -1}, {1, -1}, {1, 1}, {-2, 1}})
	if err != nil {
		t.Fatal(err)
	}
	c, ok := Compute(vec3.T{0, 0, 0}, vec3.T{10, 0, 0}, vec3.T{10, -10, 0}, flatUp, s)
	if !ok {
		t.Fatal("Compute() reported a straight corner")
	}
	if c.Turn != -1 {
		t.Errorf("Turn = %v, want -1", c.Turn)
	}
	if want := (vec3.T{8, 0, 0}); !near(c.Start, want, 1e-9) {
		t.Errorf("Start = %v, want %v", c.Start, want)
	}
	if want := (vec3.T{8, -2, 0}); !near(c.Pivot, want, 1e-9) {
		t.Errorf("Pivot = %v, want %v", c.Pivot, want)
	}
}

func TestCompute_SetbackLimitedBySegment(t *testing.T) {
	c, ok := Compute(vec3.T{9, 0, 0}, vec3.T{10, 0, 0}, vec3.T{10, 10, 0}, flatUp, square(t, 5))
	if !ok {
		t.Fatal("Compute() reported a straight corner")
	}
	if want := (vec3.T{9.5, 0, 0}); !near(c.Start, want, 1e-9) {
		t.Errorf("Start = %v, want %v", c.Start, want)
	}
}

// slopedTurn is a 90 degree left turn at (10, 0, 0) whose segments climb into
// the vertex and drop away from it.
func slopedTurn(t *testing.T) Corner {
	t.Helper()
	c, ok := Compute(vec3.T{0, 0, -1}, vec3.T{10, 0, 0}, vec3.T{10, 10, -1}, flatUp, square(t, 1))
	if !ok {
		t.Fatal("Compute() reported a straight corner")
	}
	return c
}

func TestCompute_SlopedSegmentsStayLevel(t *testing.T) {
	c := slopedTurn(t)

	checks := []struct {
		name      string
		got, want vec3.T
	}{
		{"Start", c.Start, vec3.T{9, 0, 0}},
		{"End", c.End, vec3.T{10, 1, 0}},
		{"Pivot", c.Pivot, vec3.T{9, 1, 0}},
		{"InH", c.InH, vec3.UnitX},
		{"OutH", c.OutH, vec3.UnitY},
	}
	for _, tt := range checks {
		if !near(tt.got, tt.want, 1e-9) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestJoin_SlopedSegmentsCloseInnerSide(t *testing.T) {
	c := slopedTurn(t)
	// Rings of the adjacent runs, as the sweep places them.
	before := frame.New(c.Start, c.In, c.Up)
	after := frame.New(c.End, c.Out, c.Up)

	for _, p := range []Policy{Mitered, Rounded, Beveled} {
		frames := append([]frame.Frame{before}, For(p).Join(&c)...)
		frames = append(frames, after)
		for i, f := range frames {
			for _, y := range []float64{-1, 1} {
				want := c.Pivot
				want[2] += y
				if got := f.Point(vec2.T{1, y}); !near(got, want, 1e-9) {
					t.Errorf("%v: frames[%d] inner point at y=%v = %v, want %v", p, i, y, got, want)
				}
			}
		}
	}
}

func TestCompute_Straight(t *testing.T) {
	if _, ok := Compute(vec3.T{0, 0, 0}, vec3.T{1, 0, 0}, vec3.T{2, 0, 0}, flatUp, square(t, 1)); ok {
		t.Error("collinear corner should report false")
	}
}

func TestMiter(t *testing.T) {
	c := leftTurn(t)
	frames := Miter{Limit: DefaultMiterLimit}.Join(&c)

	if len(frames) != 2 {
		t.Fatalf("len = %d, want 2", len(frames))
	}
	for i, f := range frames {
		if f.Origin != c.Point {
			t.Errorf("frames[%d].Origin = %v, want %v", i, f.Origin, c.Point)
		}
		if math.Abs(f.Stretch-math.Sqrt2) > 1e-12 {
			t.Errorf("frames[%d].Stretch = %v, want sqrt 2", i, f.Stretch)
		}
		if !near(f.Up, vec3.UnitZ, 1e-12) {
			t.Errorf("frames[%d].Up = %v, want +z", i, f.Up)
		}
	}
	if frames[0].Tangent != c.In || frames[1].Tangent != c.Out {
		t.Error("miter frames should carry the incoming then the outgoing tangent")
	}

	// The outer corner of the incoming wall lands on the miter ring.
	outer := frames[0].Point(vec2.T{-1, 0})
	if want := (vec3.T{11, -1, 0}); !near(outer, want, 1e-9) {
		t.Errorf("outer point = %v, want %v", outer, want)
	}
}

func TestMiter_Limit(t *testing.T) {
	// A 170 degree turn would need a stretch of about 11.5.
	out := vec3.T{10 - 10*math.Cos(10*math.Pi/180), 10 * math.Sin(10*math.Pi/180), 0}
	c, ok := Compute(vec3.T{0, 0, 0}, vec3.T{10, 0, 0}, out, flatUp, square(t, 0.1))
	if !ok {
		t.Fatal("Compute() reported a straight corner")
	}
	frames := Miter{Limit: 4}.Join(&c)
	if frames[0].Stretch != 4 {
		t.Errorf("Stretch = %v, want 4", frames[0].Stretch)
	}
}

func TestRound(t *testing.T) {
	c := leftTurn(t)
	r := Round{Step: DefaultRoundStep}
	frames := r.Join(&c)

	if got, want := r.Steps(c.Angle), 18; got != want {
		t.Fatalf("Steps() = %d, want %d", got, want)
	}
	if len(frames) != 36 {
		t.Fatalf("len = %d, want 36", len(frames))
	}

	prev := c.Start
	for i := 0; i < len(frames); i += 2 {
		f := frames[i]
		if frames[i+1] != f {
			t.Errorf("frames[%d] should repeat frames[%d]", i+1, i)
		}
		d := vec3.Sub(&f.Origin, &c.Pivot)
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Errorf("frames[%d] radius = %v, want 1", i, d.Length())
		}
		// The inner edge of the shape stays on the pivot.
		if inner := f.Point(vec2.T{1, 0}); !near(inner, c.Pivot, 1e-9) {
			t.Errorf("frames[%d] inner point = %v, want %v", i, inner, c.Pivot)
		}
		step := vec3.Sub(&f.Origin, &prev)
		if vec3.Dot(&step, &f.Tangent) <= 0 {
			t.Errorf("frames[%d] does not advance along its tangent", i)
		}
		prev = f.Origin
	}
}

func TestRound_StepsRoundUp(t *testing.T) {
	r := Round{Step: DefaultRoundStep}
	tests := []struct {
		degrees float64
		want    int
	}{
		{1, 1},
		{5.5, 2},
		{89.74, 18},
		{90.26, 19},
	}
	for _, tt := range tests {
		if got := r.Steps(tt.degrees * math.Pi / 180); got != tt.want {
			t.Errorf("Steps(%v deg) = %d, want %d", tt.degrees, got, tt.want)
		}
	}
}

func TestBevel(t *testing.T) {
	c := leftTurn(t)
	frames := Bevel{}.Join(&c)
	if len(frames) != 2 {
		t.Fatalf("len = %d, want 2", len(frames))
	}
	if frames[0].Origin != c.Start || frames[1].Origin != c.End {
		t.Errorf("origins = %v, %v, want %v, %v", frames[0].Origin, frames[1].Origin, c.Start, c.End)
	}
	want := frame.New(c.End, c.Out, vec3.UnitZ)
	if frames[1] != want {
		t.Errorf("frames[1] = %+v, want %+v", frames[1], want)
	}
}

func TestFor(t *testing.T) {
	tests := []struct {
		policy Policy
		want   Joiner
	}{
		{Mitered, Miter{Limit: DefaultMiterLimit}},
		{Rounded, Round{Step: DefaultRoundStep}},
		{Beveled, Bevel{}},
		{Policy(42), Miter{Limit: DefaultMiterLimit}},
	}
	for _, tt := range tests {
		if got := For(tt.policy); got != tt.want {
			t.Errorf("For(%v) = %#v, want %#v", tt.policy, got, tt.want)
		}
	}
}

func TestPolicy_String(t *testing.T) {
	for p, want := range map[Policy]string{Mitered: "mitered", Rounded: "rounded", Beveled: "beveled", 7: "unknown"} {
		if got := p.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(p), got, want)
		}
	}
}
