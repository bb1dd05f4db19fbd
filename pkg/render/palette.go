package render

import (
	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/network"
)

// Dash patterns.
const (
	DashSolid  = ""
	DashDashed = "8,5"
	DashDotted = "2,4"
)

// Style is the line appearance of one connection class.
type Style struct {
	Color string
	Width float64
	Dash  string // SVG stroke-dasharray, empty for solid
	Arrow bool
	Label string // legend text
}

// Palette holds the line color of each class plus marker and text colors.
type Palette struct {
	Bidirectional string `toml:"bidirectional"`
	Priority      string `toml:"priority"`
	SubPriority   string `toml:"subpriority"`
	Backwards     string `toml:"backwards"`
	Marker        string `toml:"marker"`
	Text          string `toml:"text"`
}

// DefaultPalette returns the standard colors.
func DefaultPalette() Palette {
	return Palette{
		Bidirectional: "#008000",
		Priority:      "#ff0000",
		SubPriority:   "#ffa500",
		Backwards:     "#0000ff",
		Marker:        "#000000",
		Text:          "#222222",
	}
}

// Merge returns p with every empty field taken from base.
func (p Palette) Merge(base Palette) Palette {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Palette{
		Bidirectional: pick(p.Bidirectional, base.Bidirectional),
		Priority:      pick(p.Priority, base.Priority),
		SubPriority:   pick(p.SubPriority, base.SubPriority),
		Backwards:     pick(p.Backwards, base.Backwards),
		Marker:        pick(p.Marker, base.Marker),
		Text:          pick(p.Text, base.Text),
	}
}

// Validate checks every color of p.
func (p Palette) Validate() error {
	for name, c := range map[string]string{
		"bidirectional": p.Bidirectional,
		"priority":      p.Priority,
		"subpriority":   p.SubPriority,
		"backwards":     p.Backwards,
		"marker":        p.Marker,
		"text":          p.Text,
	} {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStyle, err, "palette.%s", name)
		}
	}
	return nil
}

// Style returns the line style for class c.
func (p Palette) Style(c network.Class) Style {
	switch c {
	case network.ClassBidirectional:
		return Style{Color: p.Bidirectional, Width: 2, Label: "Bidirectional"}
	case network.ClassPriority:
		return Style{Color: p.Priority, Width: 1.2, Label: "Priority (target flag 0)"}
	case network.ClassSubPriority:
		return Style{Color: p.SubPriority, Width: 1.2, Dash: DashDashed, Label: "Subpriority (target flag 1)"}
	case network.ClassBackwards:
		return Style{Color: p.Backwards, Width: 1.2, Dash: DashDotted, Arrow: true, Label: "Reverse only"}
	}
	return Style{Color: p.Marker, Width: 1}
}
