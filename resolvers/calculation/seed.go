package calculation

import (
	"unicode/utf8"

	"github.com/robbyt/go-formlogic/form"
)

// numericValue coerces an answer into the number a formula sees. The rule
// depends on the type of the answered field:
//   - checkbox: number of selections
//   - dropdown, radio: the option read as a number, or 1 when selected
//   - number, rating, scale: the parsed number
//   - date, time, file: never numeric
//   - anything else: the parsed number, falling back to the text length
func numericValue(v form.Value, t form.FieldType) (float64, bool) {
	if v.IsEmpty() {
		return 0, false
	}
	switch t {
	case form.TypeCheckbox:
		return float64(len(v.List())), true
	case form.TypeDropdown, form.TypeRadio:
		if n, ok := v.Number(); ok {
			return n, true
		}
		return 1, true
	case form.TypeNumber, form.TypeRating, form.TypeScale:
		return v.Number()
	case form.TypeDate, form.TypeTime, form.TypeFile:
		return 0, false
	}

	switch v.Kind() {
	case form.KindList:
		return float64(len(v.List())), true
	case form.KindDate:
		return 0, false
	}
	if n, ok := v.Number(); ok {
		return n, true
	}
	return float64(utf8.RuneCountInString(v.String())), true
}

// seedContext builds the numeric context from responses. Fields with an
// enabled calculation are left out so dependents always see the freshly
// computed value rather than a stale submitted one.
func seedContext(fields []form.Field, responses form.Responses) map[string]float64 {
	types := make(map[string]form.FieldType, len(fields))
	calculated := make(map[string]bool)
	for _, f := range fields {
		if _, seen := types[f.ID]; !seen {
			types[f.ID] = f.Type
		}
		if f.HasCalculation() {
			calculated[f.ID] = true
		}
	}

	ctx := make(map[string]float64, len(responses))
	for id, v := range responses {
		if calculated[id] {
			continue
		}
		if n, ok := numericValue(v, types[id]); ok {
			ctx[id] = n
		}
	}
	return ctx
}
