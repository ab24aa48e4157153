package loader

import "errors"

var (
	// ErrSchemeUnsupported is returned for sources other than inline content and local files.
	ErrSchemeUnsupported = errors.New("unsupported scheme")
	// ErrDocumentNotAvailable is returned when a source yields no content.
	ErrDocumentNotAvailable = errors.New("form document not available")
	// ErrUnsupportedInput is returned by InferLoader for input it cannot load.
	ErrUnsupportedInput = errors.New("unsupported input type")
)
