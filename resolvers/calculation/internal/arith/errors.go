package arith

import "errors"

var (
	ErrEmpty          = errors.New("expression is empty")
	ErrSyntax         = errors.New("expression syntax error")
	ErrDivisionByZero = errors.New("division by zero")
	ErrTooComplex     = errors.New("expression exceeds complexity limits")
	ErrNotFinite      = errors.New("expression result is not finite")
)
