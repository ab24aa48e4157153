package form

import (
	"cmp"
	"slices"
)

// Ordered returns a copy of fields sorted by Order. Fields sharing an Order
// keep their relative slice position.
func Ordered(fields []Field) []Field {
	out := slices.Clone(fields)
	slices.SortStableFunc(out, func(a, b Field) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

// Sequence returns a copy of fields with Order set to each field's slice index.
func Sequence(fields []Field) []Field {
	out := slices.Clone(fields)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// IndexByID maps field ids to fields. The first field wins when ids repeat.
func IndexByID(fields []Field) map[string]Field {
	idx := make(map[string]Field, len(fields))
	for _, f := range fields {
		if _, exists := idx[f.ID]; exists {
			continue
		}
		idx[f.ID] = f
	}
	return idx
}

// Positions maps field ids to their position in Ordered(fields).
func Positions(fields []Field) map[string]int {
	pos := make(map[string]int, len(fields))
	for i, f := range Ordered(fields) {
		if _, exists := pos[f.ID]; exists {
			continue
		}
		pos[f.ID] = i
	}
	return pos
}

// DuplicateIDs returns every id used by more than one field, in order of
// first repetition.
func DuplicateIDs(fields []Field) []string {
	seen := make(map[string]int, len(fields))
	var dups []string
	for _, f := range fields {
		seen[f.ID]++
		if seen[f.ID] == 2 {
			dups = append(dups, f.ID)
		}
	}
	return dups
}
