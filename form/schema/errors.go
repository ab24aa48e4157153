package schema

import "errors"

// ErrSchemaViolation is returned by Check when a document has the wrong shape.
var ErrSchemaViolation = errors.New("form document does not match schema")
