package network

import (
	"slices"
	"testing"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

func TestNearest(t *testing.T) {
	si := NewSpatialIndex(sampleTable(t))
	if si.Len() != 36 {
		t.Fatalf("Len() = %d, want 36", si.Len())
	}

	tests := []struct {
		name string
		x, z float64
		want waypoint.ID
	}{
		{"on waypoint 23", 39.853, -1677.771, 23},
		{"near waypoint 1", 4.0, -1679.0, 1},
		{"near waypoint 36", 42.0, -1683.0, 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := si.Nearest(tt.x, tt.z)
			if !ok || hit.ID != tt.want {
				t.Errorf("Nearest(%g, %g) = %v, %v; want %d", tt.x, tt.z, hit, ok, tt.want)
			}
		})
	}
}

func TestNearestNOrdered(t *testing.T) {
	si := NewSpatialIndex(sampleTable(t))
	hits := si.NearestN(39.853, -1677.771, 5)
	if len(hits) != 5 {
		t.Fatalf("NearestN returned %d hits, want 5", len(hits))
	}
	if hits[0].ID != 23 || hits[0].Distance != 0 {
		t.Errorf("first hit = %v, want waypoint 23 at distance 0", hits[0])
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Distance < hits[i-1].Distance {
			t.Errorf("hits not sorted: %v", hits)
		}
	}
	if got := si.NearestN(0, 0, 0); got != nil {
		t.Errorf("NearestN(k=0) = %v, want nil", got)
	}
}

func TestInRegion(t *testing.T) {
	tbl := sampleTable(t)
	si := NewSpatialIndex(tbl)

	// Every sample waypoint with x > 29 is in the 23-36 window.
	sel, err := si.InRegion(29, -1690, 60, -1660)
	if err != nil {
		t.Fatalf("InRegion: %v", err)
	}
	want, _ := Range(waypoint.SampleFirst, waypoint.SampleLast)
	if !slices.Equal(sel.IDs(), want.IDs()) {
		t.Errorf("InRegion = %v, want %v", sel.IDs(), want.IDs())
	}

	point, err := si.InRegion(39.853, -1677.771, 39.853, -1677.771)
	if err != nil {
		t.Fatalf("InRegion(point): %v", err)
	}
	if !slices.Equal(point.IDs(), []waypoint.ID{23}) {
		t.Errorf("InRegion(point) = %v, want [23]", point.IDs())
	}

	if _, err := si.InRegion(10, 0, 0, 10); !errors.Is(err, errors.ErrCodeInvalidSelection) {
		t.Errorf("inverted region error = %v, want INVALID_SELECTION", err)
	}
}

func TestParseRegion(t *testing.T) {
	minX, minZ, maxX, maxZ, err := ParseRegion("29, -1690, 60, -1660")
	if err != nil {
		t.Fatalf("ParseRegion: %v", err)
	}
	if minX != 29 || minZ != -1690 || maxX != 60 || maxZ != -1660 {
		t.Errorf("ParseRegion = %g,%g,%g,%g", minX, minZ, maxX, maxZ)
	}
	for _, bad := range []string{"1,2,3", "a,b,c,d", ""} {
		if _, _, _, _, err := ParseRegion(bad); !errors.Is(err, errors.ErrCodeInvalidSelection) {
			t.Errorf("ParseRegion(%q) error = %v, want INVALID_SELECTION", bad, err)
		}
	}
}

func TestNearestNTiesOrderedByID(t *testing.T) {
	// Four waypoints at distance 1 from the origin, inserted in descending id order.
	tbl, err := waypoint.Parse(waypoint.Raw{
		IDs:      "4,3,2,1,9",
		X:        "1,0,-1,0,5",
		Z:        "0,1,0,-1,0",
		Flags:    "0,0,0,0,0",
		Out:      "-1;-1;-1;-1;-1",
		Incoming: "-1;-1;-1;-1;-1",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	si := NewSpatialIndex(tbl)

	tests := []struct {
		k    int
		want []waypoint.ID
	}{
		{1, []waypoint.ID{1}},
		{2, []waypoint.ID{1, 2}},
		{3, []waypoint.ID{1, 2, 3}},
		{4, []waypoint.ID{1, 2, 3, 4}},
		{5, []waypoint.ID{1, 2, 3, 4, 9}},
		{8, []waypoint.ID{1, 2, 3, 4, 9}},
	}
	for _, tt := range tests {
		hits := si.NearestN(0, 0, tt.k)
		got := make([]waypoint.ID, len(hits))
		for i, h := range hits {
			got[i] = h.ID
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("NearestN(0, 0, %d) = %v, want %v", tt.k, got, tt.want)
		}
	}
}
