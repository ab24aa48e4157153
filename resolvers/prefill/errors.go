package prefill

import "errors"

// ErrInvalidBaseURL is returned by GenerateURL when the base URL cannot be parsed.
var ErrInvalidBaseURL = errors.New("invalid base URL")
