package waypoint

// Marker is a named map marker attached to a waypoint.
type Marker struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
}

// MarkersFor returns the markers whose waypoint is in ids, keyed by id.
// When several markers share a waypoint the first one wins.
func MarkersFor(markers []Marker, keep func(ID) bool) map[ID]Marker {
	out := make(map[ID]Marker)
	for _, m := range markers {
		if !keep(m.ID) {
			continue
		}
		if _, dup := out[m.ID]; !dup {
			out[m.ID] = m
		}
	}
	return out
}
