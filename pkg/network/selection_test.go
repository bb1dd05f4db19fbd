package network

import (
	"slices"
	"testing"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		in      string
		want    []waypoint.ID
		wantErr bool
	}{
		{"23-25", []waypoint.ID{23, 24, 25}, false},
		{"1, 4,10-12", []waypoint.ID{1, 4, 10, 11, 12}, false},
		{"7", []waypoint.ID{7}, false},
		{"3-3,3", []waypoint.ID{3}, false},
		{"", nil, true},
		{"5-2", nil, true},
		{"0-3", nil, true},
		{"a-b", nil, true},
		{"-4", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSelection(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidSelection) {
					t.Fatalf("ParseSelection(%q) error = %v, want INVALID_SELECTION", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSelection(%q) error: %v", tt.in, err)
			}
			if !slices.Equal(got.IDs(), tt.want) {
				t.Errorf("IDs() = %v, want %v", got.IDs(), tt.want)
			}
		})
	}
}

func TestSelectionString(t *testing.T) {
	tests := []struct {
		sel  Selection
		want string
	}{
		{NewSelection(), ""},
		{NewSelection(5), "5"},
		{NewSelection(1, 2, 3, 7, 9, 10), "1-3,7,9-10"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.sel.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if tt.want == "" {
				return
			}
			back, err := ParseSelection(tt.want)
			if err != nil || !slices.Equal(back.IDs(), tt.sel.IDs()) {
				t.Errorf("ParseSelection(String()) = %v, %v", back.IDs(), err)
			}
		})
	}
}

func TestRangeTooWide(t *testing.T) {
	if _, err := Range(1, maxRangeSpan+1); !errors.Is(err, errors.ErrCodeInvalidSelection) {
		t.Errorf("Range error = %v, want INVALID_SELECTION", err)
	}
}

func TestZeroSelection(t *testing.T) {
	var s Selection
	if s.Contains(1) || s.Len() != 0 {
		t.Error("zero Selection is not empty")
	}
	u := s.Union(NewSelection(2))
	if !u.Contains(2) {
		t.Error("Union on zero value lost ids")
	}
}

func TestIntersect(t *testing.T) {
	a := NewSelection(1, 2, 3, 4)
	b := NewSelection(3, 4, 5)
	if got := a.Intersect(b).IDs(); !slices.Equal(got, []waypoint.ID{3, 4}) {
		t.Errorf("Intersect = %v, want [3 4]", got)
	}
	if got := a.Intersect(Selection{}).Len(); got != 0 {
		t.Errorf("Intersect(empty).Len() = %d, want 0", got)
	}
}
