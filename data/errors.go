package data

import "errors"

var (
	// ErrEmptyContextKey is returned by a ContextProvider without a key.
	ErrEmptyContextKey = errors.New("context key is empty")

	// ErrInvalidData is returned when stored input has an unexpected shape.
	ErrInvalidData = errors.New("invalid evaluation data")

	// ErrUnsupportedType is returned by AddDataToContext for values it cannot store.
	ErrUnsupportedType = errors.New("unsupported data type")
)
