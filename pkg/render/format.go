package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/adroutes/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Diagram types.
const (
	TypeDiagram  = "diagram"
	TypeNodelink = "nodelink"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatJSON}

// Types lists every supported diagram type.
var Types = []string{TypeDiagram, TypeNodelink}

// ValidateFormat checks that f is a supported output format.
func ValidateFormat(f string) error {
	if !slices.Contains(Formats, f) {
		return errors.New(errors.ErrCodeUnsupported, "unsupported format %q (want one of %s)", f, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks every format and rejects an empty list.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one output format is required")
	}
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateType checks that t names a diagram type.
func ValidateType(t string) error {
	if !slices.Contains(Types, t) {
		return errors.New(errors.ErrCodeUnsupported, "unsupported diagram type %q (want %s)", t, strings.Join(Types, " or "))
	}
	return nil
}

// ParseFormats splits a comma-separated format list, lowercases and
// de-duplicates it, then validates it.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, ValidateFormats(out)
}
