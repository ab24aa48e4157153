package condition

import "github.com/robbyt/go-formlogic/form"

// Fold combines conditions left to right: the first condition's result is
// joined with each following condition using that condition's own
// LogicalOperator, i.e. ((c0 op1 c1) op2 c2) … with no precedence between
// "and" and "or". Evaluation short-circuits the way && and || do, so eval is
// not called for a condition that cannot change the running result.
//
// An empty list folds to true.
func Fold(conditions []form.Condition, eval func(form.Condition) bool) bool {
	if len(conditions) == 0 {
		return true
	}
	result := eval(conditions[0])
	for _, c := range conditions[1:] {
		switch c.LogicalOperator.Normalize() {
		case form.LogicalOr:
			result = result || eval(c)
		default:
			result = result && eval(c)
		}
	}
	return result
}
