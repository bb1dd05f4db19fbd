package waypoint

import (
	"slices"
	"strconv"

	"github.com/matzehuels/adroutes/pkg/errors"
)

// ID identifies a waypoint. AutoDrive ids are positive and unique per config.
type ID int64

// String returns the decimal form of the id, as used for labels.
func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// Sentinel is the out/incoming value AutoDrive writes for "no connection".
const Sentinel ID = -1

// Flag is the priority class a waypoint has when it is the destination of a
// connection.
type Flag uint8

const (
	// FlagRegular marks a normal-priority destination (flag 0).
	FlagRegular Flag = 0
	// FlagSubPriority marks a secondary-priority destination (flag 1).
	FlagSubPriority Flag = 1
)

// String returns a short name for the flag.
func (f Flag) String() string {
	switch f {
	case FlagRegular:
		return "regular"
	case FlagSubPriority:
		return "subprio"
	}
	return "flag(" + strconv.Itoa(int(f)) + ")"
}

// ParseFlag converts a raw flag value. Only 0 and 1 are defined.
func ParseFlag(v int64) (Flag, error) {
	switch v {
	case 0:
		return FlagRegular, nil
	case 1:
		return FlagSubPriority, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidFlag, "flag must be 0 or 1, got %d", v)
}

// Valid reports whether f is one of the defined flags.
func (f Flag) Valid() bool { return f == FlagRegular || f == FlagSubPriority }

// Waypoint is one node of the AutoDrive network.
type Waypoint struct {
	ID       ID
	X, Y, Z  float64 // Y is the height; zero when the config has no <y>
	Flag     Flag
	Out      []ID // outgoing targets, sentinel removed
	Incoming []ID // declared incoming sources, sentinel removed
}

// HasIncoming reports whether src is declared in the waypoint's incoming list.
func (w Waypoint) HasIncoming(src ID) bool { return slices.Contains(w.Incoming, src) }

func (w Waypoint) clone() Waypoint {
	w.Out = slices.Clone(w.Out)
	w.Incoming = slices.Clone(w.Incoming)
	return w
}

// Raw holds the undecoded waypoint strings exactly as found in the config.
type Raw struct {
	IDs      string
	X        string
	Y        string // optional
	Z        string
	Out      string
	Incoming string
	Flags    string
}

// Table is an immutable, id-keyed set of waypoints that keeps the order in
// which the waypoints were declared.
type Table struct {
	order []ID
	byID  map[ID]Waypoint
	hasY  bool
}

// NewTable builds a table from already decoded waypoints.
// It rejects non-positive and duplicate ids, undefined flags and out or
// incoming references to ids that are not part of the table.
func NewTable(wps []Waypoint) (*Table, error) {
	t := &Table{
		order: make([]ID, 0, len(wps)),
		byID:  make(map[ID]Waypoint, len(wps)),
	}
	for _, w := range wps {
		if w.ID < 1 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "waypoint id must be positive, got %d", w.ID)
		}
		if _, dup := t.byID[w.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate waypoint id %d", w.ID)
		}
		if !w.Flag.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidFlag, "waypoint %d: flag must be 0 or 1, got %d", w.ID, w.Flag)
		}
		t.order = append(t.order, w.ID)
		t.byID[w.ID] = w.clone()
	}
	for _, id := range t.order {
		w := t.byID[id]
		if err := t.checkRefs(id, "out", w.Out); err != nil {
			return nil, err
		}
		if err := t.checkRefs(id, "incoming", w.Incoming); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) checkRefs(id ID, field string, refs []ID) error {
	for _, ref := range refs {
		if _, ok := t.byID[ref]; !ok {
			return errors.New(errors.ErrCodeUnknownWaypoint, "waypoint %d: %s references unknown waypoint %d", id, field, ref)
		}
	}
	return nil
}

// Len returns the number of waypoints.
func (t *Table) Len() int { return len(t.order) }

// HasY reports whether the source config carried height values.
func (t *Table) HasY() bool { return t.hasY }

// IDs returns the waypoint ids in declaration order.
func (t *Table) IDs() []ID { return slices.Clone(t.order) }

// Has reports whether id exists in the table.
func (t *Table) Has(id ID) bool {
	_, ok := t.byID[id]
	return ok
}

// Get returns the waypoint with the given id.
func (t *Table) Get(id ID) (Waypoint, bool) {
	w, ok := t.byID[id]
	if !ok {
		return Waypoint{}, false
	}
	return w.clone(), true
}

// Position returns the (x, z) ground-plane coordinates of id.
func (t *Table) Position(id ID) (x, z float64, ok bool) {
	w, ok := t.byID[id]
	return w.X, w.Z, ok
}

// Flag returns the priority flag of id.
func (t *Table) Flag(id ID) (Flag, bool) {
	w, ok := t.byID[id]
	return w.Flag, ok
}

// HasIncoming reports whether src appears in the declared incoming list of tgt.
func (t *Table) HasIncoming(tgt, src ID) bool {
	w, ok := t.byID[tgt]
	return ok && w.HasIncoming(src)
}

// Waypoints returns copies of all waypoints in declaration order.
func (t *Table) Waypoints() []Waypoint {
	out := make([]Waypoint, len(t.order))
	for i, id := range t.order {
		out[i] = t.byID[id].clone()
	}
	return out
}
