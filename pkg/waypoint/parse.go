package waypoint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/adroutes/pkg/errors"
)

// maxTokenInError bounds how much of a bad token is echoed in error messages.
const maxTokenInError = 40

// ParseList splits text on "," and converts every non-empty token with conv.
// Surrounding whitespace is trimmed. The first token that fails to convert
// aborts the parse with an INVALID_FORMAT error.
func ParseList[T any](text string, conv func(string) (T, error)) ([]T, error) {
	var out []T
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := conv(tok)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err,
				"value %q could not be parsed", errors.Truncate(tok, maxTokenInError))
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseIDs parses a comma-separated list of positive waypoint ids.
func ParseIDs(text string) ([]ID, error) {
	return ParseList(text, parseID)
}

// ParseFloats parses a comma-separated list of coordinates.
func ParseFloats(text string) ([]float64, error) {
	return ParseList(text, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// ParseFlags parses a comma-separated list of flags (0 or 1).
func ParseFlags(text string) ([]Flag, error) {
	return ParseList(text, func(s string) (Flag, error) {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		return ParseFlag(v)
	})
}

// ParseNested parses a ";"-separated list of ","-separated id groups, one
// group per waypoint. The sentinel -1 is dropped, so a waypoint without
// connections yields an empty group.
func ParseNested(text string) ([][]ID, error) {
	parts := strings.Split(text, ";")
	out := make([][]ID, len(parts))
	for i, part := range parts {
		ids, err := ParseList(part, parseTarget)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i+1, err)
		}
		group := ids[:0]
		for _, id := range ids {
			if id != Sentinel {
				group = append(group, id)
			}
		}
		out[i] = group
	}
	return out, nil
}

func parseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, fmt.Errorf("waypoint id must be positive")
	}
	return ID(v), nil
}

// parseTarget accepts a positive id or the sentinel.
func parseTarget(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v != int64(Sentinel) && v < 1 {
		return 0, fmt.Errorf("connection target must be a positive id or %d", Sentinel)
	}
	return ID(v), nil
}

// Parse decodes raw waypoint strings into a [Table].
//
// All lists must have the same length as the id list. The optional Y list is
// checked only when present. Any conversion failure, length mismatch,
// duplicate id or undefined flag aborts the parse.
func Parse(raw Raw) (*Table, error) {
	ids, err := ParseIDs(raw.IDs)
	if err != nil {
		return nil, fmt.Errorf("ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "waypoint table is empty")
	}
	xs, err := ParseFloats(raw.X)
	if err != nil {
		return nil, fmt.Errorf("x coordinates: %w", err)
	}
	zs, err := ParseFloats(raw.Z)
	if err != nil {
		return nil, fmt.Errorf("z coordinates: %w", err)
	}
	flags, err := ParseFlags(raw.Flags)
	if err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	outgoing, err := ParseNested(raw.Out)
	if err != nil {
		return nil, fmt.Errorf("out: %w", err)
	}
	incoming, err := ParseNested(raw.Incoming)
	if err != nil {
		return nil, fmt.Errorf("incoming: %w", err)
	}

	var ys []float64
	if strings.TrimSpace(raw.Y) != "" {
		if ys, err = ParseFloats(raw.Y); err != nil {
			return nil, fmt.Errorf("y coordinates: %w", err)
		}
	}

	n := len(ids)
	for _, f := range []struct {
		name string
		len  int
	}{
		{"x", len(xs)},
		{"z", len(zs)},
		{"flags", len(flags)},
		{"out", len(outgoing)},
		{"incoming", len(incoming)},
	} {
		if f.len != n {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"%s has %d entries, expected %d (one per id)", f.name, f.len, n)
		}
	}
	if ys != nil && len(ys) != n {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "y has %d entries, expected %d (one per id)", len(ys), n)
	}

	wps := make([]Waypoint, n)
	for i, id := range ids {
		wps[i] = Waypoint{
			ID:       id,
			X:        xs[i],
			Z:        zs[i],
			Flag:     flags[i],
			Out:      outgoing[i],
			Incoming: incoming[i],
		}
		if ys != nil {
			wps[i].Y = ys[i]
		}
	}

	t, err := NewTable(wps)
	if err != nil {
		return nil, err
	}
	t.hasY = ys != nil
	return t, nil
}
