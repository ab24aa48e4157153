package form

import "errors"

var (
	ErrDocumentEmpty   = errors.New("form document is empty")
	ErrDocumentInvalid = errors.New("form document is invalid")
)
