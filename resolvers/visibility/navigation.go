package visibility

import "github.com/robbyt/go-formlogic/form"

// NextField returns the field to show after currentID. A fired skip wins;
// otherwise it is the next visible field in form order. When the skip target
// is itself hidden, the first visible field from the target onwards is used.
// The empty string means the form is complete or currentID is unknown.
func NextField(fields []form.Field, res Result, currentID string) string {
	ordered := form.Ordered(fields)
	pos := form.Positions(fields)

	current, ok := pos[currentID]
	if !ok {
		return ""
	}

	start := current + 1
	if target, skipped := res.SkipTargets[currentID]; skipped {
		if p, ok := pos[target]; ok {
			start = p
		}
	}
	for _, f := range ordered[start:] {
		if f.ID != currentID && res.IsVisible(f.ID) {
			return f.ID
		}
	}
	return ""
}
