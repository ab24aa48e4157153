package condition

import "errors"

// ErrUnknownOperator is returned by Compare for an operator outside form.Operators.
var ErrUnknownOperator = errors.New("unknown operator")
