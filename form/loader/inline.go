package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/internal/helpers"
)

// Inline serves a form document held in memory. The source URL records how
// the document was handed over and a short checksum, with the detected
// format as extension, e.g. string://inline/1a2b3c4d.json.
type Inline struct {
	content   []byte
	format    form.Format
	sourceURL *url.URL
}

// NewFromString creates an Inline loader over trimmed string content.
func NewFromString(content string) (*Inline, error) {
	return newInline("string", []byte(strings.TrimSpace(content)))
}

// NewFromBytes creates an Inline loader over a copy of content.
func NewFromBytes(content []byte) (*Inline, error) {
	return newInline("bytes", bytes.Clone(content))
}

func newInline(scheme string, content []byte) (*Inline, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("%w: %s content is empty", ErrDocumentNotAvailable, scheme)
	}
	format := form.DetectFormat(content)
	return &Inline{
		content: content,
		format:  format,
		sourceURL: &url.URL{
			Scheme: scheme,
			Host:   "inline",
			Path:   "/" + helpers.ShortChecksum(content) + "." + string(format),
		},
	}, nil
}

func (l *Inline) String() string {
	return fmt.Sprintf("loader.Inline{Source: %s, Format: %s, Bytes: %d}",
		l.sourceURL.Scheme, l.format, len(l.content))
}

// Format is the encoding detected from the content.
func (l *Inline) Format() form.Format {
	return l.format
}

// GetReader returns a new reader for the content.
func (l *Inline) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.content)), nil
}

func (l *Inline) GetSourceURL() *url.URL {
	return l.sourceURL
}
