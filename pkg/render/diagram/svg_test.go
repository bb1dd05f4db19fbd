package diagram

import (
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/render"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

func sampleClassification(t *testing.T) *network.Classification {
	t.Helper()
	tbl, err := waypoint.Parse(waypoint.Sample())
	if err != nil {
		t.Fatal(err)
	}
	sel, _ := network.Range(waypoint.SampleFirst, waypoint.SampleLast)
	g, err := network.Build(tbl, sel)
	if err != nil {
		t.Fatal(err)
	}
	c, err := network.Classify(g)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(sampleClassification(t), WithTitle("Waypoints 23-36 <sample>"))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)

	checks := []struct {
		name string
		want string
		n    int
	}{
		{"markers", `<circle id="wp-`, 14},
		{"labels", `class="wp-label"`, 14},
		{"bidirectional", `class="edge bidirectional"`, 4},
		{"priority", `class="edge priority"`, 2},
		{"subpriority", `class="edge subpriority"`, 4},
		{"backwards", `class="edge backwards"`, 3},
		{"arrows", `marker-end="url(#arrow)"`, 3},
	}
	for _, tt := range checks {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Count(out, tt.want); got != tt.n {
				t.Errorf("count(%s) = %d, want %d", tt.want, got, tt.n)
			}
		})
	}

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		"Waypoints 23-36 &lt;sample&gt;",
		`stroke-dasharray="8,5"`,
		`stroke-dasharray="2,4"`,
		`class="legend"`,
		"X coordinate",
		"Z coordinate",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	c := sampleClassification(t)
	svg, err := RenderSVG(c,
		WithLabels(false),
		WithLegend(false),
		WithSize(400, 300),
		WithPalette(render.Palette{Priority: "purple"}),
		WithMarkers([]waypoint.Marker{{ID: 23, Name: "Yard & Silo"}, {ID: 1, Name: "Outside"}}),
		WithAxisLabels("east", "north"),
	)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)
	if strings.Contains(out, `class="wp-label"`) || strings.Contains(out, `class="legend"`) {
		t.Error("labels or legend drawn although disabled")
	}
	if !strings.Contains(out, `width="400" height="300"`) {
		t.Error("size option ignored")
	}
	if !strings.Contains(out, `stroke="purple"`) {
		t.Error("palette override ignored")
	}
	if !strings.Contains(out, ">east<") || !strings.Contains(out, ">north<") {
		t.Error("axis labels ignored")
	}
	if !strings.Contains(out, "Yard &amp; Silo") || strings.Contains(out, "Outside") {
		t.Error("map markers not filtered to the selection")
	}
}

func TestRenderSVGCanvasTooSmall(t *testing.T) {
	c := sampleClassification(t)
	tests := []struct {
		name string
		w, h float64
	}{
		{"both", 50, 50},
		{"narrow", MinWidth - 1, DefaultHeight},
		{"short", DefaultWidth, MinHeight - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg, err := RenderSVG(c, WithSize(tt.w, tt.h))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
			if svg != nil {
				t.Error("partial SVG returned for an unusable canvas")
			}
		})
	}

	if _, err := RenderSVG(c, WithSize(MinWidth, MinHeight)); err != nil {
		t.Errorf("minimum canvas rejected: %v", err)
	}
}

func TestRenderSVGInvalidPalette(t *testing.T) {
	_, err := RenderSVG(sampleClassification(t), WithPalette(render.Palette{Backwards: "not a color"}))
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("error = %v, want INVALID_STYLE", err)
	}
}

func TestProjectionEqualAspect(t *testing.T) {
	world := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 10}}
	p := NewProjection(world, 0, 0, 500, 500)

	x0, y0 := p.Point(0, 0)
	x1, _ := p.Point(10, 0)
	_, y1 := p.Point(0, 10)
	if dx, dy := x1-x0, y0-y1; math.Abs(dx-dy) > 1e-9 {
		t.Errorf("10 units map to %g px horizontally and %g px vertically", dx, dy)
	}
	if y1 >= y0 {
		t.Errorf("z does not grow upward: y(z=0)=%g, y(z=10)=%g", y0, y1)
	}
	if p.Scale() != 5 {
		t.Errorf("Scale() = %g, want 5", p.Scale())
	}
	// Vertically centered: 10 units tall at scale 5 leaves 225 px above and below.
	if math.Abs(y0-275) > 1e-9 {
		t.Errorf("y(z=0) = %g, want 275", y0)
	}
}

func TestProjectionDegenerate(t *testing.T) {
	p := NewProjection(orb.Bound{Min: orb.Point{5, 5}, Max: orb.Point{5, 5}}, 0, 0, 100, 100)
	x, y := p.Point(5, 5)
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x-50) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("single point projects to (%g, %g), want (50, 50)", x, y)
	}
}
