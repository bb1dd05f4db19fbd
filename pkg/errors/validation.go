package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateSelectionRange validates an inclusive waypoint id range.
// Waypoint ids are positive, so lo must be at least 1 and not exceed hi.
func ValidateSelectionRange(lo, hi int64) error {
	if lo < 1 {
		return New(ErrCodeInvalidSelection, "selection start must be a positive waypoint id, got %d", lo)
	}
	if hi < lo {
		return New(ErrCodeInvalidSelection, "selection end %d is before start %d", hi, lo)
	}
	return nil
}

// ValidateColor validates an SVG color value used in palettes.
// Accepts #rgb / #rrggbb hex values and plain lowercase color keywords.
func ValidateColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidStyle, "color cannot be empty")
	}
	if strings.HasPrefix(c, "#") {
		hex := c[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return New(ErrCodeInvalidStyle, "invalid hex color: %q", c)
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return New(ErrCodeInvalidStyle, "invalid hex color: %q", c)
			}
		}
		return nil
	}
	for _, r := range c {
		if r < 'a' || r > 'z' {
			return New(ErrCodeInvalidStyle, "invalid color keyword: %q", c)
		}
	}
	return nil
}
