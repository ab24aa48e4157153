package engine

import "errors"

var (
	// ErrNoPreparer is returned by PrepareContext when the data provider
	// cannot store data in a context.
	ErrNoPreparer = errors.New("data provider does not support preparing context")

	// ErrDuplicateField is returned by New when two fields share an id.
	ErrDuplicateField = errors.New("duplicate field id")
)
