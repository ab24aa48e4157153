package options

import "errors"

// ErrInvalidOption is returned by an Option given an unusable value.
var ErrInvalidOption = errors.New("invalid option")
