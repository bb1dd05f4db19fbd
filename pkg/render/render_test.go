package render

import (
	"slices"
	"testing"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/network"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr errors.Code
	}{
		{"svg", []string{"svg"}, ""},
		{"SVG, png,svg", []string{"svg", "png"}, ""},
		{"svg,pdf,dot,json", []string{"svg", "pdf", "dot", "json"}, ""},
		{"", nil, errors.ErrCodeInvalidInput},
		{"gif", nil, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseFormats(%q) error = %v, want %s", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormats(%q) error: %v", tt.in, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateType(t *testing.T) {
	for _, ok := range Types {
		if err := ValidateType(ok); err != nil {
			t.Errorf("ValidateType(%q) = %v", ok, err)
		}
	}
	if err := ValidateType("tower"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ValidateType(tower) = %v, want UNSUPPORTED", err)
	}
}

func TestPaletteStyles(t *testing.T) {
	p := DefaultPalette()
	if err := p.Validate(); err != nil {
		t.Fatalf("DefaultPalette().Validate() = %v", err)
	}

	tests := []struct {
		class network.Class
		dash  string
		arrow bool
	}{
		{network.ClassBidirectional, DashSolid, false},
		{network.ClassPriority, DashSolid, false},
		{network.ClassSubPriority, DashDashed, false},
		{network.ClassBackwards, DashDotted, true},
	}
	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			st := p.Style(tt.class)
			if st.Dash != tt.dash || st.Arrow != tt.arrow || st.Label == "" {
				t.Errorf("Style(%s) = %+v", tt.class, st)
			}
		})
	}
}

func TestPaletteMerge(t *testing.T) {
	p := Palette{Priority: "purple"}.Merge(DefaultPalette())
	if p.Priority != "purple" || p.Backwards != DefaultPalette().Backwards {
		t.Errorf("Merge() = %+v", p)
	}
	bad := Palette{SubPriority: "#zzzzzz"}.Merge(DefaultPalette())
	if err := bad.Validate(); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("Validate() = %v, want INVALID_STYLE", err)
	}
}
