package visibility

import (
	"github.com/robbyt/go-formlogic/form"
)

// Validate checks show and skip configuration at authoring time.
func Validate(fields []form.Field) form.ValidationResult {
	var rep form.Reporter
	index := form.IndexByID(fields)
	pos := form.Positions(fields)

	for _, f := range form.Ordered(fields) {
		if show := f.ShowConditions(); show != nil {
			if len(show.Conditions) == 0 {
				rep.Warnf(f.ID, form.CodeEmptyConditions, "show logic is enabled without conditions; the field is always visible")
			}
			checkConditions(&rep, f, show.Conditions, index, pos)
		}

		sk := f.SkipConditions()
		if sk == nil {
			continue
		}
		if len(sk.Conditions) == 0 {
			rep.Warnf(f.ID, form.CodeEmptyConditions, "skip logic is enabled without conditions; it never fires")
		}
		checkConditions(&rep, f, sk.Conditions, index, pos)

		switch target := sk.TargetFieldID; {
		case target == "":
			rep.Errorf(f.ID, form.CodeMissingTarget, "skip logic is enabled without a target field")
		case target == f.ID:
			rep.Errorf(f.ID, form.CodeSelfReference, "skip logic targets its own field")
		case !exists(index, target):
			rep.Errorf(f.ID, form.CodeUnknownField, "skip target %q does not match any field", target)
		case pos[target] < pos[f.ID]:
			rep.Warnf(f.ID, form.CodeBackwardSkip, "skip target %q comes before this field", target)
		}
	}
	return rep.Result()
}

func exists(index map[string]form.Field, id string) bool {
	_, ok := index[id]
	return ok
}

func checkConditions(rep *form.Reporter, owner form.Field, conditions []form.Condition, index map[string]form.Field, pos map[string]int) {
	for _, c := range conditions {
		source, ok := index[c.FieldID]
		switch {
		case c.FieldID == owner.ID:
			rep.Errorf(owner.ID, form.CodeSelfReference, "condition references its own field")
		case !ok:
			rep.Errorf(owner.ID, form.CodeUnknownField, "condition references unknown field %q", c.FieldID)
		case pos[c.FieldID] > pos[owner.ID]:
			rep.Warnf(owner.ID, form.CodeForwardReference, "condition references %q which comes later in the form", c.FieldID)
		}

		if !c.Operator.Valid() {
			rep.Errorf(owner.ID, form.CodeUnknownOperator, "operator %q is not supported", c.Operator)
			continue
		}
		if !c.Operator.RequiresValue() {
			continue
		}
		if c.Value.IsEmpty() {
			rep.Warnf(owner.ID, form.CodeMissingValue, "condition on %q has no value to compare against", c.FieldID)
			continue
		}
		if c.Operator.IsNumeric() {
			if _, isNum := c.Value.Number(); !isNum {
				rep.Warnf(owner.ID, form.CodeNonNumericValue, "%s needs a number, got %q", c.Operator, c.Value.String())
			}
			continue
		}
		if ok && source.Type.IsChoice() && len(source.Options) > 0 &&
			(c.Operator == form.OpEquals || c.Operator == form.OpNotEquals) {
			if _, known := source.HasOption(c.Value.String()); !known {
				rep.Warnf(owner.ID, form.CodeUnknownOption, "%q is not an option of %q", c.Value.String(), c.FieldID)
			}
		}
	}
}
