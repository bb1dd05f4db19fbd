package network

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// maxRangeSpan caps how many ids a single range may expand to.
const maxRangeSpan = 1 << 20

// Selection is the set of waypoints a graph is restricted to.
// The zero value is an empty selection.
type Selection struct {
	ids map[waypoint.ID]struct{}
}

// NewSelection returns a selection holding the given ids.
func NewSelection(ids ...waypoint.ID) Selection {
	s := Selection{ids: make(map[waypoint.ID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Range returns the inclusive id window [lo, hi].
func Range(lo, hi waypoint.ID) (Selection, error) {
	if err := errors.ValidateSelectionRange(int64(lo), int64(hi)); err != nil {
		return Selection{}, err
	}
	if hi-lo >= maxRangeSpan {
		return Selection{}, errors.New(errors.ErrCodeInvalidSelection, "range %d-%d spans more than %d ids", lo, hi, maxRangeSpan)
	}
	s := Selection{ids: make(map[waypoint.ID]struct{}, int(hi-lo)+1)}
	for id := lo; id <= hi; id++ {
		s.ids[id] = struct{}{}
	}
	return s, nil
}

// All selects every waypoint of t.
func All(t *waypoint.Table) Selection {
	return NewSelection(t.IDs()...)
}

// ParseSelection parses a comma-separated list of ids and inclusive ranges,
// for example "23-36" or "1,4,10-12".
func ParseSelection(text string) (Selection, error) {
	s := NewSelection()
	text = strings.TrimSpace(text)
	if text == "" {
		return Selection{}, errors.New(errors.ErrCodeInvalidSelection, "selection is empty")
	}
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := parseSelectionID(lo)
		if err != nil {
			return Selection{}, err
		}
		b := a
		if isRange {
			if b, err = parseSelectionID(hi); err != nil {
				return Selection{}, err
			}
		}
		r, err := Range(a, b)
		if err != nil {
			return Selection{}, err
		}
		s = s.Union(r)
	}
	if s.Len() == 0 {
		return Selection{}, errors.New(errors.ErrCodeInvalidSelection, "selection is empty")
	}
	return s, nil
}

func parseSelectionID(s string) (waypoint.ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidSelection, err, "invalid waypoint id %q", s)
	}
	return waypoint.ID(v), nil
}

// Contains reports whether id is selected.
func (s Selection) Contains(id waypoint.ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s Selection) Len() int { return len(s.ids) }

// IDs returns the selected ids in ascending order.
func (s Selection) IDs() []waypoint.ID {
	return slices.Sorted(maps.Keys(s.ids))
}

// Union returns a new selection containing the ids of both s and o.
func (s Selection) Union(o Selection) Selection {
	out := Selection{ids: maps.Clone(s.ids)}
	if out.ids == nil {
		out.ids = make(map[waypoint.ID]struct{}, len(o.ids))
	}
	maps.Copy(out.ids, o.ids)
	return out
}

// Intersect returns a new selection containing the ids present in both s and o.
func (s Selection) Intersect(o Selection) Selection {
	out := NewSelection()
	for id := range s.ids {
		if o.Contains(id) {
			out.ids[id] = struct{}{}
		}
	}
	return out
}

// Clip returns the subset of s that exists in t, together with the ids that
// were dropped.
func (s Selection) Clip(t *waypoint.Table) (Selection, []waypoint.ID) {
	out := NewSelection()
	var dropped []waypoint.ID
	for _, id := range s.IDs() {
		if t.Has(id) {
			out.ids[id] = struct{}{}
		} else {
			dropped = append(dropped, id)
		}
	}
	return out, dropped
}

// String renders the selection in the compact form accepted by
// [ParseSelection], collapsing consecutive ids into ranges.
func (s Selection) String() string {
	ids := s.IDs()
	var parts []string
	for i := 0; i < len(ids); {
		j := i
		for j+1 < len(ids) && ids[j+1] == ids[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, ids[i].String())
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", ids[i], ids[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
