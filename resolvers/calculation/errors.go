package calculation

import "errors"

var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrFunctionArity   = errors.New("wrong number of function arguments")
	ErrUnbalancedCall  = errors.New("function call is missing its closing parenthesis")
	ErrFunctionDomain  = errors.New("function argument out of domain")
)
