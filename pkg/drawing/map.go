package drawing

import (
	"maps"
	"slices"
)

// Map is a complete diagram keyed by drawing ID.
type Map map[string]Drawing

// Put inserts d, replacing any drawing with the same ID.
func (m Map) Put(d Drawing) { m[ID(d)] = d }

// Get returns the drawing with the given ID.
func (m Map) Get(id string) (Drawing, bool) {
	d, ok := m[id]
	return d, ok
}

// IDs returns all drawing IDs in ascending order.
func (m Map) IDs() []string {
	return slices.Sorted(maps.Keys(m))
}

// Sorted returns the drawings ordered by ID.
func (m Map) Sorted() []Drawing {
	out := make([]Drawing, 0, len(m))
	for _, id := range m.IDs() {
		out = append(out, m[id])
	}
	return out
}

// Clone returns a deep copy of m.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for id, d := range m {
		out[id] = Clone(d)
	}
	return out
}

// Dependents returns the IDs of line drawings whose start or end is
// connected to id, in ascending order.
func (m Map) Dependents(id string) []string {
	var out []string
	for _, other := range m.IDs() {
		if slices.Contains(AnchorIDs(m[other]), id) {
			out = append(out, other)
		}
	}
	return out
}
