// Package loader reads form documents from strings, byte slices, readers and
// files, tagging each source with a URL that carries a content checksum.
package loader

import (
	"fmt"
	"io"
	"net/url"

	"github.com/robbyt/go-formlogic/form"
)

// Loader provides the raw bytes of a form document.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}

// Load reads and decodes the document behind l.
func Load(l Loader) (*form.Document, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: loader is nil", ErrDocumentNotAvailable)
	}
	reader, err := l.GetReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentNotAvailable, err)
	}
	if reader == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrDocumentNotAvailable)
	}
	defer func() { _ = reader.Close() }()

	doc, err := form.DecodeDocument(reader)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", l.GetSourceURL(), err)
	}
	return doc, nil
}

// ReadAll returns the raw content behind l.
func ReadAll(l Loader) ([]byte, error) {
	reader, err := l.GetReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentNotAvailable, err)
	}
	defer func() { _ = reader.Close() }()
	return io.ReadAll(reader)
}
